package dao

import (
	"Doodly/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostDAO struct {
	Repo[models.Post]
}

func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{Repo: NewRepo[models.Post](db)}
}

// SlotTaken reports whether the child already has an approved-or-pending
// post in the slot for the day. The DB unique index is the real guard; this
// is only the friendly pre-check.
func (d *PostDAO) SlotTaken(ctx context.Context, childID uint64, day, timeSlot string) (bool, error) {
	return d.IsExist(ctx,
		"child_id = ? AND post_day = ? AND time_slot = ? AND status IN ?",
		childID, day, timeSlot, []string{models.PostStatusPending, models.PostStatusApproved})
}

// GalleryFilter narrows the public gallery listing.
type GalleryFilter struct {
	AgeGroup string
	TimeSlot string
	Day      string
	PromptID uint64
	Sort     string // newest | top | trending
	Offset   int
	Limit    int
}

// FindGallery lists approved posts of consent-granted children.
func (d *PostDAO) FindGallery(ctx context.Context, f GalleryFilter) ([]*models.Post, error) {
	q := d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN children ON children.id = posts.child_id").
		Where("posts.status = ?", models.PostStatusApproved).
		Where("children.parental_consent = ?", true)

	if f.AgeGroup != "" {
		q = q.Where("children.age_group = ?", f.AgeGroup)
	}
	if f.TimeSlot != "" {
		q = q.Where("posts.time_slot = ?", f.TimeSlot)
	}
	if f.Day != "" {
		q = q.Where("posts.post_day = ?", f.Day)
	}
	if f.PromptID != 0 {
		q = q.Where("posts.prompt_id = ?", f.PromptID)
	}

	switch f.Sort {
	case "top":
		q = q.Order("posts.likes_count DESC, posts.created_at DESC")
	case "trending":
		// likes weigh triple against views; recency breaks ties
		q = q.Order("(posts.likes_count * 3 + posts.views_count) DESC, posts.created_at DESC")
	default:
		q = q.Order("posts.created_at DESC")
	}

	var posts []*models.Post
	err := q.Offset(f.Offset).Limit(f.Limit).Find(&posts).Error
	return posts, err
}

// FindByChild lists a child's posts filtered by status, newest first.
func (d *PostDAO) FindByChild(ctx context.Context, childID uint64, statuses []string, limit, offset int) ([]*models.Post, error) {
	q := d.Db.WithContext(ctx).Where("child_id = ?", childID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var posts []*models.Post
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

func (d *PostDAO) UpdateStatus(ctx context.Context, postID uint64, status string) error {
	return d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Update("status", status).Error
}

// IncrLikeCount adjusts the denormalized like counter, never below zero.
func (d *PostDAO) IncrLikeCount(ctx context.Context, postID uint64, delta int) error {
	return d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND likes_count + ? >= 0", postID, delta).
		Update("likes_count", gorm.Expr("likes_count + ?", delta)).Error
}

func (d *PostDAO) IncrViewCount(ctx context.Context, postID uint64) error {
	return d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Update("views_count", gorm.Expr("views_count + 1")).Error
}

// GetByShareCode returns nil, nil for unknown codes.
func (d *PostDAO) GetByShareCode(ctx context.Context, code string) (*models.Post, error) {
	var post models.Post
	err := d.Db.WithContext(ctx).Where("share_code = ?", code).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByStatus lists posts by moderation status for admin review.
func (d *PostDAO) FindByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := d.Db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// FindAllByChild loads the complete history for the achievement evaluator.
func (d *PostDAO) FindAllByChild(ctx context.Context, childID uint64, statuses []string) ([]*models.Post, error) {
	q := d.Db.WithContext(ctx).Where("child_id = ?", childID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var posts []*models.Post
	err := q.Order("created_at ASC").Find(&posts).Error
	return posts, err
}
