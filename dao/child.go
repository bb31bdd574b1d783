package dao

import (
	"Doodly/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ChildDAO struct {
	Repo[models.Child]
}

func NewChildDAO(db *gorm.DB) *ChildDAO {
	return &ChildDAO{Repo: NewRepo[models.Child](db)}
}

func (d *ChildDAO) Create(ctx context.Context, child *models.Child) error {
	return d.Db.WithContext(ctx).Create(child).Error
}

// GetByUsername returns nil, nil when the username is unknown.
func (d *ChildDAO) GetByUsername(ctx context.Context, username string) (*models.Child, error) {
	var child models.Child
	err := d.Db.WithContext(ctx).Where("username = ?", username).First(&child).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &child, nil
}

// FindByParentID lists a parent's children, oldest first.
func (d *ChildDAO) FindByParentID(ctx context.Context, parentID uint64) ([]*models.Child, error) {
	var children []*models.Child
	err := d.Db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&children).Error
	return children, err
}

func (d *ChildDAO) UpdateFields(ctx context.Context, childID uint64, fields map[string]interface{}) error {
	return d.Db.WithContext(ctx).
		Model(&models.Child{}).
		Where("id = ?", childID).
		Updates(fields).Error
}

// FindByIDs loads children in bulk for gallery hydration.
func (d *ChildDAO) FindByIDs(ctx context.Context, ids []uint64) ([]*models.Child, error) {
	if len(ids) == 0 {
		return []*models.Child{}, nil
	}
	var children []*models.Child
	err := d.Db.WithContext(ctx).Where("id IN ?", ids).Find(&children).Error
	return children, err
}
