package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultEnv           = "local"
	defaultTimeout       = 30 * time.Second
)

var ErrInvalidConfig = errors.New("invalid client config")

type Config struct {
	Env           string        `mapstructure:"app_env"`
	ServerAddress string        `mapstructure:"server_address"`
	EnableTLS     bool          `mapstructure:"enable_tls"`
	ShareDomain   string        `mapstructure:"share_domain"`
	Timeout       time.Duration `mapstructure:"request_timeout"`
}

// Load reads .env from the working directory when present, then the
// environment and an optional config file already set on v.
func Load(v *viper.Viper) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v.AutomaticEnv()

	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("server_address", defaultServerAddress)
	v.SetDefault("enable_tls", false)
	v.SetDefault("share_domain", "")
	v.SetDefault("request_timeout", defaultTimeout)

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Env:           v.GetString("app_env"),
		ServerAddress: v.GetString("server_address"),
		EnableTLS:     v.GetBool("enable_tls"),
		ShareDomain:   v.GetString("share_domain"),
		Timeout:       v.GetDuration("request_timeout"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("%w: server_address must not be empty", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// BaseURL is the API root, e.g. https://ots.example.com.
func (c *Config) BaseURL() string {
	if strings.Contains(c.ServerAddress, "://") {
		return strings.TrimRight(c.ServerAddress, "/")
	}
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + strings.TrimRight(c.ServerAddress, "/")
}

// Domain is the origin put into share links; it defaults to the API root.
func (c *Config) Domain() string {
	if c.ShareDomain != "" {
		return strings.TrimRight(c.ShareDomain, "/")
	}
	return c.BaseURL()
}
