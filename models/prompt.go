package models

import (
	"time"

	"gorm.io/datatypes"
)

// Prompt is one generated drawing challenge. Exactly one row per
// (day, age_group, time_slot); generation upserts on that key.
type Prompt struct {
	ID             uint64         `gorm:"column:id;primary_key" json:"id"`
	Day            string         `gorm:"column:day;type:char(10);not null;uniqueIndex:uk_day_group_slot,priority:1" json:"day"`
	AgeGroup       string         `gorm:"column:age_group;type:varchar(16);not null;uniqueIndex:uk_day_group_slot,priority:2" json:"age_group"`
	TimeSlot       string         `gorm:"column:time_slot;type:varchar(16);not null;uniqueIndex:uk_day_group_slot,priority:3" json:"time_slot"`
	Difficulty     string         `gorm:"column:difficulty;type:varchar(16);not null;default:'easy'" json:"difficulty"`
	PromptText     string         `gorm:"column:prompt_text;type:varchar(512);not null" json:"prompt_text"`
	CommunityTitle string         `gorm:"column:community_title;type:varchar(128);not null;default:''" json:"community_title"`
	ThemeCategory  string         `gorm:"column:theme_category;type:varchar(32);not null;default:''" json:"theme_category"`
	StyleHints     datatypes.JSON `gorm:"column:style_hints;type:json" json:"style_hints"`
	Generated      bool           `gorm:"column:generated;not null;default:1" json:"generated"`
	CreatedAt      time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Prompt) TableName() string {
	return "prompts"
}
