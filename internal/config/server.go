package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`

	FeedInterval   time.Duration `env:"FEED_INTERVAL" envDefault:"900ms"`
	ExpiryInterval time.Duration `env:"EXPIRY_INTERVAL" envDefault:"800ms"`
	FeedSeed       int64         `env:"FEED_SEED" envDefault:"0"`
	FeedAutostart  bool          `env:"FEED_AUTOSTART" envDefault:"false"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
