package models

import "time"

// UserAchievement is the persistent unlock ledger. Progress is recomputed
// from counters on read; this row only records when a badge was first
// earned.
type UserAchievement struct {
	ID            uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	ChildID       uint64    `gorm:"column:child_id;not null;uniqueIndex:uk_child_achievement,priority:1" json:"child_id"`
	AchievementID string    `gorm:"column:achievement_id;type:varchar(32);not null;uniqueIndex:uk_child_achievement,priority:2" json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"column:unlocked_at;not null" json:"unlocked_at"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
