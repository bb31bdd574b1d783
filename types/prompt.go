package types

type PromptView struct {
	ID             uint64 `json:"id"`
	Day            string `json:"day"`
	AgeGroup       string `json:"age_group"`
	TimeSlot       string `json:"time_slot"`
	Difficulty     string `json:"difficulty"`
	PromptText     string `json:"prompt_text"`
	CommunityTitle string `json:"community_title"`
}

type TodayPromptsResponse struct {
	Day     string       `json:"day"`
	Prompts []PromptView `json:"prompts"`
}
