package loginfield

import (
	"github.com/caarlos0/env/v11"
)

// EnvConfig reads the login field from the environment
type EnvConfig struct {
	LoginField string `env:"AUTH_LOGIN_FIELD" envDefault:"email"`
}

var _ Config = EnvConfig{}

func (c EnvConfig) GetLoginField() string {
	return c.LoginField
}

// LoadConfig parses EnvConfig from the environment
func LoadConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ConfigureFrom applies cfg to the process wide setting
func ConfigureFrom(cfg Config) (Identifier, error) {
	return defaultSetting.ConfigureFrom(cfg)
}

// ConfigureFrom applies cfg to the setting. An empty field keeps the
// current identifier.
func (s *Setting) ConfigureFrom(cfg Config) (Identifier, error) {
	if cfg == nil || cfg.GetLoginField() == "" {
		return s.Current(), nil
	}
	return s.Configure(cfg.GetLoginField())
}
