package dao

import (
	"Doodly/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ParentDAO struct {
	Repo[models.Parent]
}

func NewParentDAO(db *gorm.DB) *ParentDAO {
	return &ParentDAO{Repo: NewRepo[models.Parent](db)}
}

func (d *ParentDAO) Create(ctx context.Context, parent *models.Parent) error {
	return d.Db.WithContext(ctx).Create(parent).Error
}

// GetByEmail returns nil, nil when no account exists for the address.
func (d *ParentDAO) GetByEmail(ctx context.Context, email string) (*models.Parent, error) {
	var parent models.Parent
	err := d.Db.WithContext(ctx).Where("email = ?", email).First(&parent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &parent, nil
}
