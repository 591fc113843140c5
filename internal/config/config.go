package config

type Config interface {
	EnvConfig
	SecurityConfig
	SMTPConfig
	StoreConfig
}

type mainConfig struct {
	EnvVars
	Security
	SMTP
	Store
}

func New() Config {
	return mainConfig{}
}
