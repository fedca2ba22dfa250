package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":3000"`

	// Minimum spacing between accepted XP writes for a single wallet.
	XPWriteWindowMS int `env:"XP_WRITE_WINDOW_MS" envDefault:"1000"`

	LeaderboardLimit int `env:"LEADERBOARD_LIMIT" envDefault:"100"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
