package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type BotConfig struct {
	WSURL     string `env:"WS_URL" envDefault:"ws://localhost:8080/ws"`
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:8080"`
	APIKey    string `env:"API_KEY" envDefault:""`

	Mode         string        `env:"BOT_MODE" envDefault:"watch"`
	FeedInterval time.Duration `env:"BOT_FEED_INTERVAL" envDefault:"900ms"`
	FeedSeed     int64         `env:"BOT_FEED_SEED" envDefault:"0"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
