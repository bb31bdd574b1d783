package types

import "time"

type PostView struct {
	ID           uint64    `json:"id"`
	ChildID      uint64    `json:"child_id"`
	PromptID     *uint64   `json:"prompt_id,omitempty"`
	PostDay      string    `json:"post_day"`
	TimeSlot     string    `json:"time_slot"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	AltText      string    `json:"alt_text"`
	Status       string    `json:"status"`
	ShareCode    string    `json:"share_code,omitempty"`
	LikesCount   int64     `json:"likes_count"`
	ViewsCount   int64     `json:"views_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreatePostResponse struct {
	Post         PostView `json:"post"`
	PointsEarned int64    `json:"points_earned"`
}

type PostListResponse struct {
	Posts []PostView `json:"posts"`
}

type LikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// SlotConflict is the 429 payload; the client shows which window is used up.
type SlotConflict struct {
	TimeSlot string `json:"time_slot"`
	PostDay  string `json:"post_day"`
}
