package types

type StatsResponse struct {
	ChildID       uint64 `json:"child_id"`
	TotalPosts    int64  `json:"total_posts"`
	LikesGiven    int64  `json:"likes_given"`
	LikesReceived int64  `json:"likes_received"`
	ViewsReceived int64  `json:"views_received"`
	CurrentStreak int64  `json:"current_streak"`
	BestStreak    int64  `json:"best_streak"`
	TotalPoints   int64  `json:"total_points"`
	Level         int64  `json:"level"`
}

type LeaderboardRow struct {
	Rank     int    `json:"rank"`
	ChildID  uint64 `json:"child_id"`
	Username string `json:"username"`
	Points   int64  `json:"points"`
}

type LeaderboardResponse struct {
	Week     string           `json:"week"`
	AgeGroup string           `json:"age_group"`
	Rows     []LeaderboardRow `json:"rows"`
}
