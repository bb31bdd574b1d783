package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post is one uploaded artwork. PostDay is the Eastern-Time calendar day of
// the upload; the unique index on (child_id, post_day, time_slot) is what
// actually enforces the one-upload-per-slot rule, the handler pre-check only
// exists for a friendly error.
type Post struct {
	ID           uint64         `gorm:"column:id;primary_key" json:"id"`
	ChildID      uint64         `gorm:"column:child_id;not null;uniqueIndex:uk_child_day_slot,priority:1" json:"child_id"`
	PromptID     *uint64        `gorm:"column:prompt_id;index" json:"prompt_id"`
	PostDay      string         `gorm:"column:post_day;type:char(10);not null;uniqueIndex:uk_child_day_slot,priority:2" json:"post_day"`
	TimeSlot     string         `gorm:"column:time_slot;type:varchar(16);not null;uniqueIndex:uk_child_day_slot,priority:3" json:"time_slot"`
	ImageKey     string         `gorm:"column:image_key;type:varchar(512);not null" json:"-"`
	ThumbKey     string         `gorm:"column:thumb_key;type:varchar(512);not null;default:''" json:"-"`
	ImageURL     string         `gorm:"column:image_url;type:varchar(512);not null" json:"image_url"`
	ThumbnailURL string         `gorm:"column:thumbnail_url;type:varchar(512);not null;default:''" json:"thumbnail_url"`
	AltText      string         `gorm:"column:alt_text;type:varchar(300);not null;default:''" json:"alt_text"`
	Media        datatypes.JSON `gorm:"column:media;type:json" json:"media"`
	Status       string         `gorm:"column:status;type:varchar(16);not null;default:'pending';index:idx_status_created,priority:1" json:"status"`
	ShareCode    string         `gorm:"column:share_code;type:varchar(32);not null;default:'';index" json:"share_code"`
	LikesCount   int64          `gorm:"column:likes_count;not null;default:0" json:"likes_count"`
	ViewsCount   int64          `gorm:"column:views_count;not null;default:0" json:"views_count"`
	CreatedAt    time.Time      `gorm:"column:created_at;index:idx_status_created,priority:2" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// PostMedia is stored in the posts.media JSON column.
type PostMedia struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}
