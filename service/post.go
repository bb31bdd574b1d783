package service

import (
	"Doodly/dao"
	"Doodly/dao/cache"
	"Doodly/models"
	"Doodly/pkg/events"
	"Doodly/pkg/llm"
	"Doodly/pkg/log"
	"Doodly/pkg/response"
	"Doodly/pkg/sharecode"
	"Doodly/pkg/snowflake"
	"Doodly/pkg/timeutil"
	"Doodly/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	pointsPerPost      = 10
	bothSlotsBonus     = 5
	pointsLikeReceived = 2
)

// SlotTakenError signals the one-upload-per-slot rule; the handler turns it
// into a 429 with the conflicting slot in the payload.
type SlotTakenError struct {
	TimeSlot string
	PostDay  string
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("slot %s already used on %s", e.TimeSlot, e.PostDay)
}

var _ IPostService = (*PostService)(nil)

type IPostService interface {
	Create(ctx context.Context, childID uint64, timeSlot, altText string, header *multipart.FileHeader) (*types.CreatePostResponse, error)
	Get(ctx context.Context, viewerID, postID uint64) (*models.Post, error)
	Delete(ctx context.Context, childID, postID uint64) error
	ListByChild(ctx context.Context, viewerID, childID uint64, limit, offset int) ([]*models.Post, error)
	Gallery(ctx context.Context, f dao.GalleryFilter) ([]types.GalleryItem, error)
	ResolveShareCode(ctx context.Context, code string) (*types.GalleryItem, error)
	RecordView(ctx context.Context, viewerID, postID uint64) error
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Post, error)
	Review(ctx context.Context, postID uint64, approve bool) error
}

type PostService struct {
	DB           *gorm.DB
	PostDAO      *dao.PostDAO
	ChildDAO     *dao.ChildDAO
	PromptDAO    *dao.PromptDAO
	StatsDAO     *dao.UserStatsDAO
	PromptStats  *dao.PromptStatsDAO
	Leaderboard  *cache.Leaderboard
	Views        *cache.ViewDedupe
	Storage      IStorageService
	Moderation   IModerationService
	Publisher    events.Publisher
	Achievements AchievementEvaluator
}

// Create runs the whole upload pipeline: slot check, image validation and
// store, moderation, then the post row plus all counters in one transaction.
func (s *PostService) Create(ctx context.Context, childID uint64, timeSlot, altText string, header *multipart.FileHeader) (*types.CreatePostResponse, error) {
	if !models.ValidSlot(timeSlot) {
		return nil, response.NewError(http.StatusBadRequest, "unknown time slot")
	}
	child, err := s.ChildDAO.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, response.NewError(http.StatusNotFound, "child not found")
	}

	day := timeutil.Today()

	// friendly pre-check; the unique index catches the race below
	taken, err := s.PostDAO.SlotTaken(ctx, childID, day, timeSlot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &SlotTakenError{TimeSlot: timeSlot, PostDay: day}
	}

	artwork, err := s.Storage.UploadArtwork(ctx, childID, timeSlot, header)
	if err != nil {
		// validation failures carry their own code; anything else is the
		// object store misbehaving, which is not the client's fault
		var be *response.BizError
		if errors.As(err, &be) {
			return nil, err
		}
		log.L.Error("artwork upload failed", zap.Error(err), zap.Uint64("child_id", childID))
		return nil, response.NewError(http.StatusBadGateway, "artwork upload failed, try again soon")
	}

	decision, err := s.Moderation.ReviewImage(ctx, artwork.ImageURL)
	if err != nil {
		// fail closed: the image never becomes a post when we cannot screen it
		_ = s.Storage.Delete(ctx, artwork.ImageKey)
		log.L.Error("moderation unavailable", zap.Error(err), zap.Uint64("child_id", childID))
		return nil, response.NewError(http.StatusServiceUnavailable, "artwork check unavailable, try again soon")
	}
	if decision.Rejected() {
		_ = s.Storage.Delete(ctx, artwork.ImageKey)
		log.L.Info("artwork rejected",
			zap.Uint64("child_id", childID), zap.Strings("reasons", decision.Reasons))
		return nil, response.NewError(http.StatusUnprocessableEntity, "this artwork can't be shared")
	}

	status := models.PostStatusApproved
	if !decision.Approved() {
		status = models.PostStatusPending
	}

	postID := uint64(snowflake.GenID())
	code, err := sharecode.Encode(postID)
	if err != nil {
		return nil, err
	}

	mediaJSON, err := json.Marshal(artwork.Media)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:           postID,
		ChildID:      childID,
		PromptID:     s.promptIDFor(ctx, day, child.AgeGroup, timeSlot),
		PostDay:      day,
		TimeSlot:     timeSlot,
		ImageKey:     artwork.ImageKey,
		ImageURL:     artwork.ImageURL,
		ThumbnailURL: artwork.ThumbnailURL,
		AltText:      altText,
		Media:        datatypes.JSON(mediaJSON),
		Status:       status,
		ShareCode:    code,
	}

	var earned int64
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if status != models.PostStatusApproved {
			return nil
		}
		earned, err = s.applyPostStatsTx(tx, childID, day, timeSlot)
		return err
	})
	if err != nil {
		_ = s.Storage.Delete(ctx, artwork.ImageKey)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &SlotTakenError{TimeSlot: timeSlot, PostDay: day}
		}
		return nil, err
	}

	if status == models.PostStatusApproved {
		s.afterApproval(ctx, post, child.AgeGroup, earned, decision)
	} else {
		log.L.Info("post held for review",
			zap.Uint64("post_id", post.ID), zap.Strings("reasons", decision.Reasons))
	}

	return &types.CreatePostResponse{
		Post:         PostToView(post),
		PointsEarned: earned,
	}, nil
}

// applyPostStatsTx bumps the child's counters, streak and points inside the
// post-creation transaction and returns the points earned. day is the post's
// own ET day: a late approval of an old held post still pays out points, but
// must not drag last_post_day backwards or reset a streak the child has kept
// alive since, so streak fields only move when day is at or past the last
// recorded one.
func (s *PostService) applyPostStatsTx(tx *gorm.DB, childID uint64, day, timeSlot string) (int64, error) {
	stats := &models.UserStats{ChildID: childID}
	if err := tx.Where("child_id = ?", childID).FirstOrCreate(stats).Error; err != nil {
		return 0, err
	}

	earned := int64(pointsPerPost)
	if isDailySlot(timeSlot) {
		other := otherDailySlot(timeSlot)
		var n int64
		err := tx.Model(&models.Post{}).
			Where("child_id = ? AND post_day = ? AND time_slot = ? AND status = ?",
				childID, day, other, models.PostStatusApproved).
			Count(&n).Error
		if err != nil {
			return 0, err
		}
		if n > 0 {
			earned += bothSlotsBonus
		}
	}

	updates := map[string]interface{}{
		"total_posts":  gorm.Expr("total_posts + 1"),
		"total_points": gorm.Expr("total_points + ?", earned),
	}
	if day >= stats.LastPostDay {
		current := stats.CurrentStreak
		switch stats.LastPostDay {
		case day:
			// second post today, streak unchanged
		case timeutil.PrevDay(day):
			current++
		default:
			current = 1
		}
		best := stats.BestStreak
		if current > best {
			best = current
		}
		updates["current_streak"] = current
		updates["best_streak"] = best
		updates["last_post_day"] = day
	}

	err := tx.Model(&models.UserStats{}).
		Where("child_id = ?", childID).
		Updates(updates).Error
	return earned, err
}

// afterApproval does the best-effort work that must not fail the upload.
func (s *PostService) afterApproval(ctx context.Context, post *models.Post, ageGroup string, earned int64, decision llm.Decision) {
	week := timeutil.ISOWeek(post.CreatedAt)
	if post.CreatedAt.IsZero() {
		week = timeutil.ISOWeek(time.Now())
	}
	if err := s.Leaderboard.AddPoints(ctx, week, ageGroup, post.ChildID, earned); err != nil {
		log.L.Error("leaderboard update failed", zap.Error(err), zap.Uint64("child_id", post.ChildID))
	}
	if post.PromptID != nil {
		if err := s.PromptStats.IncrPosts(ctx, *post.PromptID, 1); err != nil {
			log.L.Error("prompt stats update failed", zap.Error(err))
		}
	}
	s.Publisher.PublishPostEvent(ctx, events.PostEvent{
		Event:     "post.approved",
		PostID:    post.ID,
		ChildID:   post.ChildID,
		TimeSlot:  post.TimeSlot,
		PostDay:   post.PostDay,
		Reasons:   decision.Reasons,
		CreatedAt: time.Now(),
	})
	if s.Achievements != nil {
		if _, err := s.Achievements.EvaluateAndUnlock(ctx, post.ChildID); err != nil {
			log.L.Error("achievement evaluation failed", zap.Error(err), zap.Uint64("child_id", post.ChildID))
		}
	}
}

func (s *PostService) promptIDFor(ctx context.Context, day, ageGroup, timeSlot string) *uint64 {
	if !isDailySlot(timeSlot) {
		return nil
	}
	prompt, err := s.PromptDAO.GetBySlot(ctx, day, ageGroup, timeSlot)
	if err != nil || prompt == nil {
		return nil
	}
	id := prompt.ID
	return &id
}

// Get enforces visibility: owners see their own posts in any state, everyone
// else only approved posts of consent-granted children.
func (s *PostService) Get(ctx context.Context, viewerID, postID uint64) (*models.Post, error) {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, response.NewError(http.StatusNotFound, "post not found")
	}
	if post.ChildID == viewerID {
		return post, nil
	}
	if post.Status != models.PostStatusApproved {
		return nil, response.NewError(http.StatusNotFound, "post not found")
	}
	owner, err := s.ChildDAO.FindByID(ctx, post.ChildID)
	if err != nil {
		return nil, err
	}
	if owner == nil || !owner.ParentalConsent {
		return nil, response.NewError(http.StatusNotFound, "post not found")
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, childID, postID uint64) error {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return response.NewError(http.StatusNotFound, "post not found")
	}
	if post.ChildID != childID {
		return response.NewError(http.StatusForbidden, "not your post")
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", postID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if post.Status == models.PostStatusApproved {
			return s.StatsDAO.IncrCounterTx(tx, childID, "total_posts", -1)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.Storage.Delete(ctx, post.ImageKey, post.ThumbKey)
	return nil
}

func (s *PostService) ListByChild(ctx context.Context, viewerID, childID uint64, limit, offset int) ([]*models.Post, error) {
	statuses := []string{models.PostStatusApproved}
	if viewerID == childID {
		statuses = nil // owners see pending and rejected too
	} else {
		owner, err := s.ChildDAO.FindByID(ctx, childID)
		if err != nil {
			return nil, err
		}
		if owner == nil || !owner.ParentalConsent {
			return nil, response.NewError(http.StatusNotFound, "child not found")
		}
	}
	return s.PostDAO.FindByChild(ctx, childID, statuses, limit, offset)
}

// Gallery lists the community feed and hydrates each post with its author.
func (s *PostService) Gallery(ctx context.Context, f dao.GalleryFilter) ([]types.GalleryItem, error) {
	if f.Limit <= 0 || f.Limit > 50 {
		f.Limit = 20
	}
	posts, err := s.PostDAO.FindGallery(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ChildID)
	}
	children, err := s.ChildDAO.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*models.Child, len(children))
	for _, c := range children {
		byID[c.ID] = c
	}

	items := make([]types.GalleryItem, 0, len(posts))
	for _, p := range posts {
		c := byID[p.ChildID]
		if c == nil {
			continue
		}
		items = append(items, types.GalleryItem{
			Post:     PostToView(p),
			Username: c.Username,
			Name:     c.Name,
			AgeGroup: c.AgeGroup,
		})
	}
	return items, nil
}

// ResolveShareCode serves the public share link. Only approved posts of
// consent-granted children resolve; everything else is a plain 404.
func (s *PostService) ResolveShareCode(ctx context.Context, code string) (*types.GalleryItem, error) {
	if _, err := sharecode.Decode(code); err != nil {
		return nil, response.NewError(http.StatusNotFound, "artwork not found")
	}
	post, err := s.PostDAO.GetByShareCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status != models.PostStatusApproved {
		return nil, response.NewError(http.StatusNotFound, "artwork not found")
	}
	child, err := s.ChildDAO.FindByID(ctx, post.ChildID)
	if err != nil {
		return nil, err
	}
	if child == nil || !child.ParentalConsent {
		return nil, response.NewError(http.StatusNotFound, "artwork not found")
	}
	return &types.GalleryItem{
		Post:     PostToView(post),
		Username: child.Username,
		Name:     child.Name,
		AgeGroup: child.AgeGroup,
	}, nil
}

// RecordView counts a view once per viewer per day. Self-views never count.
func (s *PostService) RecordView(ctx context.Context, viewerID, postID uint64) error {
	post, err := s.Get(ctx, viewerID, postID)
	if err != nil {
		return err
	}
	if post.ChildID == viewerID {
		return nil
	}

	first, err := s.Views.MarkViewed(ctx, viewerID, postID, timeutil.Today())
	if err != nil {
		return err
	}
	if !first {
		return nil
	}
	if err := s.PostDAO.IncrViewCount(ctx, postID); err != nil {
		return err
	}
	return s.StatsDAO.IncrCounter(ctx, post.ChildID, "views_received", 1)
}

func (s *PostService) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Post, error) {
	switch status {
	case models.PostStatusPending, models.PostStatusApproved, models.PostStatusRejected:
	default:
		return nil, response.NewError(http.StatusBadRequest, "unknown status")
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.PostDAO.FindByStatus(ctx, status, limit, offset)
}

// Review settles a held post. Approving runs the same stats transaction a
// clean upload gets; rejecting an approved post walks its counter back.
func (s *PostService) Review(ctx context.Context, postID uint64, approve bool) error {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return response.NewError(http.StatusNotFound, "post not found")
	}

	if approve {
		if post.Status == models.PostStatusApproved {
			return nil
		}
		var earned int64
		err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Post{}).
				Where("id = ?", postID).
				Update("status", models.PostStatusApproved).Error; err != nil {
				return err
			}
			earned, err = s.applyPostStatsTx(tx, post.ChildID, post.PostDay, post.TimeSlot)
			return err
		})
		if err != nil {
			return err
		}
		child, cerr := s.ChildDAO.FindByID(ctx, post.ChildID)
		ageGroup := ""
		if cerr == nil && child != nil {
			ageGroup = child.AgeGroup
		}
		post.Status = models.PostStatusApproved
		s.afterApproval(ctx, post, ageGroup, earned, llm.Decision{Outcome: llm.OutcomeApprove})
		return nil
	}

	wasApproved := post.Status == models.PostStatusApproved
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Update("status", models.PostStatusRejected).Error; err != nil {
			return err
		}
		if wasApproved {
			return s.StatsDAO.IncrCounterTx(tx, post.ChildID, "total_posts", -1)
		}
		return nil
	})
	if err != nil {
		return err
	}
	_ = s.Storage.Delete(ctx, post.ImageKey, post.ThumbKey)
	s.Publisher.PublishPostEvent(ctx, events.PostEvent{
		Event:     "post.rejected",
		PostID:    post.ID,
		ChildID:   post.ChildID,
		TimeSlot:  post.TimeSlot,
		PostDay:   post.PostDay,
		CreatedAt: time.Now(),
	})
	return nil
}

// PostToView maps the model to its API shape.
func PostToView(p *models.Post) types.PostView {
	return types.PostView{
		ID:           p.ID,
		ChildID:      p.ChildID,
		PromptID:     p.PromptID,
		PostDay:      p.PostDay,
		TimeSlot:     p.TimeSlot,
		ImageURL:     p.ImageURL,
		ThumbnailURL: p.ThumbnailURL,
		AltText:      p.AltText,
		Status:       p.Status,
		ShareCode:    p.ShareCode,
		LikesCount:   p.LikesCount,
		ViewsCount:   p.ViewsCount,
		CreatedAt:    p.CreatedAt,
	}
}

func isDailySlot(slot string) bool {
	return slot == models.SlotDaily1 || slot == models.SlotDaily2
}

func otherDailySlot(slot string) string {
	if slot == models.SlotDaily1 {
		return models.SlotDaily2
	}
	return models.SlotDaily1
}
