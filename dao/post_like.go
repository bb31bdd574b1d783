package dao

import (
	"Doodly/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostLikeDAO struct {
	Repo[models.PostLike]
}

func NewPostLikeDAO(db *gorm.DB) *PostLikeDAO {
	return &PostLikeDAO{Repo: NewRepo[models.PostLike](db)}
}

// GetByPostChild returns the like row for the pair, nil when absent.
func (d *PostLikeDAO) GetByPostChild(ctx context.Context, postID, childID uint64) (*models.PostLike, error) {
	var item models.PostLike
	err := d.Db.WithContext(ctx).Where("post_id = ? AND child_id = ?", postID, childID).Limit(1).Find(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

// SetStatus flips the like state, creating the row on first like. The unique
// (post_id, child_id) index keeps concurrent first-likes from doubling.
func (d *PostLikeDAO) SetStatus(ctx context.Context, postID, childID uint64, status uint8) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return d.SetStatusTx(tx, postID, childID, status)
	})
}

// SetStatusTx is SetStatus inside a caller-owned transaction, so the like row
// and the denormalized counters commit together.
func (d *PostLikeDAO) SetStatusTx(tx *gorm.DB, postID, childID uint64, status uint8) error {
	var item models.PostLike
	err := tx.Where("post_id = ? AND child_id = ?", postID, childID).Limit(1).Find(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	if err != nil {
		return err
	}
	if item.ID == 0 {
		item = models.PostLike{PostID: postID, ChildID: childID, Status: status}
		return tx.Create(&item).Error
	}
	return tx.Model(&models.PostLike{}).Where("id = ?", item.ID).Update("status", status).Error
}

// IsLiked reports an active like (status=1).
func (d *PostLikeDAO) IsLiked(ctx context.Context, postID, childID uint64) (bool, error) {
	return d.IsExist(ctx, "post_id = ? AND child_id = ? AND status = 1", postID, childID)
}

// CountGivenBy counts a child's active likes on others' posts.
func (d *PostLikeDAO) CountGivenBy(ctx context.Context, childID uint64) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("child_id = ? AND status = 1", childID).
		Count(&count).Error
	return count, err
}
