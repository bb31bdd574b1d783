package service

import (
	"Doodly/dao"
	"Doodly/dao/cache"
	"Doodly/models"
	"Doodly/pkg/events"
	"Doodly/pkg/llm"
	"Doodly/pkg/snowflake"
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory sqlite database. TranslateError must
// stay on so duplicate-key handling behaves like production MySQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// a single connection serializes concurrent writers; sqlite would throw
	// "database is locked" otherwise
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Parent{},
		&models.Child{},
		&models.Prompt{},
		&models.Post{},
		&models.PostLike{},
		&models.PromptStats{},
		&models.UserStats{},
		&models.UserAchievement{},
	))
	return db
}

// deadRedis points at nothing; best-effort cache paths degrade to logged
// errors, which is exactly what the tests want to survive.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
}

func seedChild(t *testing.T, db *gorm.DB, ageGroup string, consent bool) *models.Child {
	t.Helper()
	child := &models.Child{
		ID:              uint64(snowflake.GenID()),
		ParentID:        uint64(snowflake.GenID()),
		Username:        fmt.Sprintf("kid%d", snowflake.GenID()),
		Name:            "Testy",
		AgeGroup:        ageGroup,
		PinHash:         "x",
		ParentalConsent: consent,
	}
	require.NoError(t, db.Create(child).Error)
	return child
}

type fakeStorage struct {
	uploads int
	deleted []string
	failUp  error
}

func (f *fakeStorage) UploadArtwork(_ context.Context, childID uint64, timeSlot string, _ *multipart.FileHeader) (*Artwork, error) {
	if f.failUp != nil {
		return nil, f.failUp
	}
	f.uploads++
	key := fmt.Sprintf("art/%d/%s_%d.png", childID, timeSlot, f.uploads)
	return &Artwork{
		ImageKey:     key,
		ImageURL:     "https://cdn.test/" + key,
		ThumbnailURL: "https://cdn.test/" + key + "?w=400",
		Media:        models.PostMedia{Width: 100, Height: 100, Format: "png", Size: 1234},
	}, nil
}

func (f *fakeStorage) Delete(_ context.Context, objectKeys ...string) error {
	for _, k := range objectKeys {
		if k != "" {
			f.deleted = append(f.deleted, k)
		}
	}
	return nil
}

type fakeModeration struct {
	decision llm.Decision
	err      error
}

func (f *fakeModeration) ReviewImage(context.Context, string) (llm.Decision, error) {
	if f.err != nil {
		return llm.Decision{Outcome: llm.OutcomeReject}, f.err
	}
	return f.decision, nil
}

func newTestPostService(t *testing.T, db *gorm.DB, storage *fakeStorage, mod *fakeModeration) *PostService {
	t.Helper()
	rdb := deadRedis()
	return &PostService{
		DB:          db,
		PostDAO:     dao.NewPostDAO(db),
		ChildDAO:    dao.NewChildDAO(db),
		PromptDAO:   dao.NewPromptDAO(db),
		StatsDAO:    dao.NewUserStatsDAO(db),
		PromptStats: dao.NewPromptStatsDAO(db),
		Leaderboard: cache.NewLeaderboard(rdb),
		Views:       cache.NewViewDedupe(rdb),
		Storage:     storage,
		Moderation:  mod,
		Publisher:   events.NewPublisher(nil),
	}
}

func imageHeader() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "drawing.png", Size: 1234}
}

func approve() *fakeModeration {
	return &fakeModeration{decision: llm.Decision{Outcome: llm.OutcomeApprove}}
}
