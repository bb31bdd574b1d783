package config

// OpenAIConfig covers both prompt generation (chat completions) and image
// moderation. BaseURL may point at any OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey          string `json:"api_key" yaml:"api_key"`
	BaseURL         string `json:"base_url" yaml:"base_url"`
	PromptModel     string `json:"prompt_model" yaml:"prompt_model"`
	ModerationModel string `json:"moderation_model" yaml:"moderation_model"`
}

func ProvideOpenAIConfig(cfg *Config) *OpenAIConfig {
	return cfg.OpenAI
}
