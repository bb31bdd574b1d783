package dao

import (
	"Doodly/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserStatsDAO struct {
	Repo[models.UserStats]
}

func NewUserStatsDAO(db *gorm.DB) *UserStatsDAO {
	return &UserStatsDAO{
		Repo: NewRepo[models.UserStats](db),
	}
}

// GetOrCreate fetches the child's counter row, creating an empty one if
// missing.
func (d *UserStatsDAO) GetOrCreate(ctx context.Context, childID uint64) (*models.UserStats, error) {
	stats := &models.UserStats{ChildID: childID}
	err := d.Db.WithContext(ctx).
		Where("child_id = ?", childID).
		FirstOrCreate(stats).Error
	return stats, err
}

// GetByChildID returns nil, nil when no row exists yet.
func (d *UserStatsDAO) GetByChildID(ctx context.Context, childID uint64) (*models.UserStats, error) {
	var stats models.UserStats
	err := d.Db.WithContext(ctx).
		Where("child_id = ?", childID).
		First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stats, err
}

// IncrCounter adds delta to a single counter column, flooring at zero. The
// row is created first when absent.
func (d *UserStatsDAO) IncrCounter(ctx context.Context, childID uint64, column string, delta int64) error {
	return d.IncrCounterTx(d.Db.WithContext(ctx), childID, column, delta)
}

// IncrCounterTx is IncrCounter inside a caller-owned transaction. gorm.Expr
// keeps the add atomic under concurrent writers.
func (d *UserStatsDAO) IncrCounterTx(tx *gorm.DB, childID uint64, column string, delta int64) error {
	stats := &models.UserStats{ChildID: childID}
	if err := tx.Where("child_id = ?", childID).FirstOrCreate(stats).Error; err != nil {
		return err
	}
	return tx.Model(&models.UserStats{}).
		Where("child_id = ?", childID).
		Update(column, gorm.Expr(
			"CASE WHEN "+column+" + ? < 0 THEN 0 ELSE "+column+" + ? END", delta, delta)).Error
}
