package types

import "time"

type AchievementView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Criteria    string     `json:"criteria"`
	Target      int64      `json:"target"`
	Progress    int64      `json:"progress"`
	Earned      bool       `json:"earned"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

type AchievementListResponse struct {
	Achievements []AchievementView `json:"achievements"`
}
