package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	BackendURL     string `mapstructure:"PSICOAPP_URL"`
	AnonKey        string `mapstructure:"PSICOAPP_ANON_KEY"`
	AccessToken    string `mapstructure:"PSICOAPP_ACCESS_TOKEN"`
	RefreshToken   string `mapstructure:"PSICOAPP_REFRESH_TOKEN"`
	Env            string `mapstructure:"PSICOAPP_ENV"`
	TimeoutSeconds int    `mapstructure:"PSICOAPP_TIMEOUT_SECONDS"`
	VerifyCert     bool   `mapstructure:"PSICOAPP_VERIFY_CERT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PSICOAPP_ENV", "development")
	v.SetDefault("PSICOAPP_TIMEOUT_SECONDS", 10)
	v.SetDefault("PSICOAPP_VERIFY_CERT", true)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PSICOAPP_URL")
	v.BindEnv("PSICOAPP_ANON_KEY")
	v.BindEnv("PSICOAPP_ACCESS_TOKEN")
	v.BindEnv("PSICOAPP_REFRESH_TOKEN")
	v.BindEnv("PSICOAPP_ENV")
	v.BindEnv("PSICOAPP_TIMEOUT_SECONDS")
	v.BindEnv("PSICOAPP_VERIFY_CERT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("PSICOAPP_URL is required")
	}
	if cfg.AnonKey == "" {
		return nil, fmt.Errorf("PSICOAPP_ANON_KEY is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}
