package config

type RocketMQConfig struct {
	Enabled    bool     `json:"enabled" yaml:"enabled"`
	NameServer []string `json:"nameserver" yaml:"nameserver"`

	Producer Producer `json:"producer" yaml:"producer"`
}

type Producer struct {
	Group string `json:"group" yaml:"group"`
	Retry int    `json:"retry" yaml:"retry"`
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	return cfg.RocketMQ
}
