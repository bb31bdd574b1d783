package types

import "time"

type CreateChildRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=32"`
	Name      string `json:"name" binding:"required,max=64"`
	AgeGroup  string `json:"age_group" binding:"required"`
	Pin       string `json:"pin" binding:"required"`
	AvatarURL string `json:"avatar_url"`
}

type UpdateChildRequest struct {
	Name      *string `json:"name"`
	AgeGroup  *string `json:"age_group"`
	AvatarURL *string `json:"avatar_url"`
	Pin       *string `json:"pin"`
}

type ConsentRequest struct {
	Consent *bool `json:"consent" binding:"required"`
}

type ChildProfile struct {
	ID              uint64    `json:"id"`
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	AgeGroup        string    `json:"age_group"`
	AvatarURL       string    `json:"avatar_url"`
	ParentalConsent bool      `json:"parental_consent"`
	CreatedAt       time.Time `json:"created_at"`
}
