package service

import (
	"Doodly/config"
	"Doodly/models"
	"Doodly/pkg/log"
	"Doodly/pkg/response"
	"Doodly/pkg/snowflake"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const maxArtworkSize int64 = 10 << 20 // 10MB

// Artwork is what the storage layer hands back after an upload.
type Artwork struct {
	ImageKey     string
	ImageURL     string
	ThumbnailURL string
	Media        models.PostMedia
}

var _ IStorageService = (*StorageService)(nil)

type IStorageService interface {
	// UploadArtwork validates and stores one artwork image.
	UploadArtwork(ctx context.Context, childID uint64, timeSlot string, header *multipart.FileHeader) (*Artwork, error)

	// Delete removes stored objects; used for moderation fail-closed cleanup
	// and post deletion.
	Delete(ctx context.Context, objectKeys ...string) error
}

type StorageService struct {
	Client *oss.Client
	Cfg    *config.OssConfig
}

func NewStorageService(client *oss.Client, cfg *config.OssConfig) IStorageService {
	return &StorageService{Client: client, Cfg: cfg}
}

func (s *StorageService) UploadArtwork(ctx context.Context, childID uint64, timeSlot string, header *multipart.FileHeader) (*Artwork, error) {
	if header == nil {
		return nil, response.NewError(http.StatusBadRequest, "missing image")
	}
	// header.Size is client-supplied but works as a first gate
	if header.Size <= 0 || header.Size > maxArtworkSize {
		return nil, response.NewError(http.StatusBadRequest, "image size invalid")
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seeker, ok := f.(io.ReadSeeker)
	if !ok {
		return nil, fmt.Errorf("uploaded file is not seekable")
	}

	// MIME check on the first 512 bytes
	head := make([]byte, 512)
	n, _ := seeker.Read(head)
	contentType := http.DetectContentType(head[:n])
	allowedMime := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
	if !allowedMime[contentType] {
		return nil, response.NewError(http.StatusBadRequest, "unsupported image type: "+contentType)
	}
	_, _ = seeker.Seek(0, io.SeekStart)

	// dimensions + real format without decoding the full image
	cfg, format, err := image.DecodeConfig(seeker)
	if err != nil {
		return nil, response.NewError(http.StatusBadRequest, "invalid image")
	}
	format = strings.ToLower(format)
	allowedFmt := map[string]bool{"jpeg": true, "png": true, "webp": true}
	if !allowedFmt[format] {
		return nil, response.NewError(http.StatusBadRequest, "unsupported image format: "+format)
	}
	_, _ = seeker.Seek(0, io.SeekStart)

	artworkID := snowflake.GenID()
	ext := "." + format
	if format == "jpeg" {
		ext = ".jpg"
	}
	objectKey := fmt.Sprintf("art/%d/%s/%s_%d%s",
		childID,
		time.Now().Format("2006/01/02"),
		timeSlot,
		artworkID,
		ext,
	)

	limited := io.LimitReader(seeker, maxArtworkSize+1)
	if _, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.Cfg.Bucket),
		Key:    oss.Ptr(objectKey),
		Body:   limited,
	}); err != nil {
		return nil, err
	}

	imageURL := s.Cfg.CdnBase + "/" + objectKey
	return &Artwork{
		ImageKey: objectKey,
		ImageURL: imageURL,
		// thumbnail comes from the CDN's resize pipeline, no second object
		ThumbnailURL: imageURL + "?x-oss-process=image/resize,w_400",
		Media: models.PostMedia{
			Width:  cfg.Width,
			Height: cfg.Height,
			Format: format,
			Size:   header.Size,
		},
	}, nil
}

func (s *StorageService) Delete(ctx context.Context, objectKeys ...string) error {
	var firstErr error
	for _, key := range objectKeys {
		if key == "" {
			continue
		}
		_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
			Bucket: oss.Ptr(s.Cfg.Bucket),
			Key:    oss.Ptr(key),
		})
		if err != nil {
			log.L.Error("delete object failed", zap.String("key", key), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
