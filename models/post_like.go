package models

import "time"

// PostLike is the like join table.
// Unique key: post_id + child_id.
// status: 1=liked, 0=unliked
type PostLike struct {
	ID        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	PostID    uint64    `gorm:"column:post_id;not null;uniqueIndex:uk_post_child,priority:1" json:"post_id"`
	ChildID   uint64    `gorm:"column:child_id;not null;uniqueIndex:uk_post_child,priority:2" json:"child_id"`
	Status    uint8     `gorm:"column:status;not null;default:1" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PostLike) TableName() string { return "post_likes" }
