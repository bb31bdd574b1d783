package dao

import (
	"Doodly/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PromptStatsDAO struct {
	Repo[models.PromptStats]
}

func NewPromptStatsDAO(db *gorm.DB) *PromptStatsDAO {
	return &PromptStatsDAO{Repo: NewRepo[models.PromptStats](db)}
}

// GetByPromptID returns nil, nil when no aggregate exists yet.
func (d *PromptStatsDAO) GetByPromptID(ctx context.Context, promptID uint64) (*models.PromptStats, error) {
	var stats models.PromptStats
	err := d.Db.WithContext(ctx).Where("prompt_id = ?", promptID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stats, err
}

// IncrPosts bumps the prompt's post counter, creating the row on first use.
func (d *PromptStatsDAO) IncrPosts(ctx context.Context, promptID uint64, delta int64) error {
	return d.incr(ctx, promptID, "total_posts", delta)
}

// IncrLikes bumps the prompt's like counter.
func (d *PromptStatsDAO) IncrLikes(ctx context.Context, promptID uint64, delta int64) error {
	return d.incr(ctx, promptID, "total_likes", delta)
}

func (d *PromptStatsDAO) incr(ctx context.Context, promptID uint64, column string, delta int64) error {
	stats := &models.PromptStats{PromptID: promptID}
	if err := d.Db.WithContext(ctx).Where("prompt_id = ?", promptID).FirstOrCreate(stats).Error; err != nil {
		return err
	}
	return d.Db.WithContext(ctx).
		Model(&models.PromptStats{}).
		Where("prompt_id = ?", promptID).
		Update(column, gorm.Expr(
			"CASE WHEN "+column+" + ? < 0 THEN 0 ELSE "+column+" + ? END", delta, delta)).Error
}
