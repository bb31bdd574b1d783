package llm

import (
	"Doodly/config"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client wraps the OpenAI-compatible API used for both prompt text
// generation and image moderation.
type Client struct {
	oc              openai.Client
	promptModel     string
	moderationModel string
}

func NewClient(cfg *config.OpenAIConfig) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{
		oc:              openai.NewClient(opts...),
		promptModel:     cfg.PromptModel,
		moderationModel: cfg.ModerationModel,
	}
}
