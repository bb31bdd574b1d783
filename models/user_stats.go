package models

import "time"

// UserStats is the per-child counter row everything gamified reads from.
// Updated in the same transaction as the action that changes it.
type UserStats struct {
	ID            uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	ChildID       uint64    `gorm:"column:child_id;not null;uniqueIndex" json:"child_id"`
	TotalPosts    int64     `gorm:"column:total_posts;not null;default:0" json:"total_posts"`
	LikesGiven    int64     `gorm:"column:likes_given;not null;default:0" json:"likes_given"`
	LikesReceived int64     `gorm:"column:likes_received;not null;default:0" json:"likes_received"`
	ViewsReceived int64     `gorm:"column:views_received;not null;default:0" json:"views_received"`
	CurrentStreak int64     `gorm:"column:current_streak;not null;default:0" json:"current_streak"`
	BestStreak    int64     `gorm:"column:best_streak;not null;default:0" json:"best_streak"`
	TotalPoints   int64     `gorm:"column:total_points;not null;default:0" json:"total_points"`
	LastPostDay   string    `gorm:"column:last_post_day;type:char(10);not null;default:''" json:"last_post_day"`
	CreatedAt     time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (UserStats) TableName() string {
	return "user_stats"
}

// Level is derived, never stored.
func (s *UserStats) Level() int64 {
	return s.TotalPoints/100 + 1
}
