package dao

import (
	"Doodly/models"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementDAO struct {
	Repo[models.UserAchievement]
}

func NewAchievementDAO(db *gorm.DB) *AchievementDAO {
	return &AchievementDAO{Repo: NewRepo[models.UserAchievement](db)}
}

// ListByChild returns the child's unlock ledger.
func (d *AchievementDAO) ListByChild(ctx context.Context, childID uint64) ([]*models.UserAchievement, error) {
	var rows []*models.UserAchievement
	err := d.Db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("unlocked_at ASC").
		Find(&rows).Error
	return rows, err
}

// Unlock records an achievement the first time it is earned. Idempotent:
// the unique (child_id, achievement_id) key absorbs repeat evaluations.
func (d *AchievementDAO) Unlock(ctx context.Context, childID uint64, achievementID string) error {
	row := &models.UserAchievement{
		ChildID:       childID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now(),
	}
	return d.Db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
}
