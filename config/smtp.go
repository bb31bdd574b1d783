package config

type SmtpConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	From     string `json:"from" yaml:"from"`
}

func ProvideSmtpConfig(cfg *Config) *SmtpConfig {
	return cfg.Smtp
}
