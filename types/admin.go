package types

type GeneratePromptsRequest struct {
	Day string `json:"day"` // defaults to today (ET)
}

type GeneratePromptsResponse struct {
	Day       string `json:"day"`
	Generated int    `json:"generated"`
	Fallback  int    `json:"fallback"`
}

type ReviewPostRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}
