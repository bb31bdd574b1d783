package models

import "time"

// Child is a profile enrolled under a parent account. Username + PIN is the
// child's only credential. ParentalConsent gates public visibility of the
// child's artwork (COPPA).
type Child struct {
	ID              uint64    `gorm:"column:id;primary_key" json:"id"`
	ParentID        uint64    `gorm:"column:parent_id;not null;index" json:"parent_id"`
	Username        string    `gorm:"column:username;type:varchar(32);not null;uniqueIndex" json:"username"`
	Name            string    `gorm:"column:name;type:varchar(64);not null;default:''" json:"name"`
	AgeGroup        string    `gorm:"column:age_group;type:varchar(16);not null" json:"age_group"`
	PinHash         string    `gorm:"column:pin_hash;type:varchar(128);not null" json:"-"`
	AvatarURL       string    `gorm:"column:avatar_url;type:varchar(512);not null;default:''" json:"avatar_url"`
	ParentalConsent bool      `gorm:"column:parental_consent;not null;default:0" json:"parental_consent"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Child) TableName() string {
	return "children"
}
