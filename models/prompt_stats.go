package models

import "time"

// PromptStats is the denormalized per-prompt popularity aggregate behind the
// gallery's trending sort. Best effort: counters lag hard deletes.
type PromptStats struct {
	PromptID   uint64    `gorm:"column:prompt_id;primaryKey" json:"prompt_id"`
	TotalPosts int64     `gorm:"column:total_posts;default:0" json:"total_posts"`
	TotalLikes int64     `gorm:"column:total_likes;default:0" json:"total_likes"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PromptStats) TableName() string {
	return "prompt_stats"
}
