package config

type App struct {
	Env     string `json:"env" yaml:"env"`
	Debug   bool   `json:"debug" yaml:"debug"`
	BaseURL string `json:"base_url" yaml:"base_url"`
}
