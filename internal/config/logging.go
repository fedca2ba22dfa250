package config

import "github.com/caarlos0/env/v11"

// LogConfig drives zerolog for both the API server and the bot. With no
// LOG_FILE set everything goes to stdout, which is what the bot wants;
// the server typically sets a file plus a size cap.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// Emit one of every N events when N > 1. Useful when the bot plays
	// at high action rates.
	SampleEvery int `env:"LOG_SAMPLE_EVERY" envDefault:"0"`

	File  string `env:"LOG_FILE"`
	MaxMB int    `env:"LOG_MAX_MB" envDefault:"10"`
}

// MaxBytes is the log file cap. A non-positive LOG_MAX_MB falls back to
// the default rather than an uncapped file.
func (c LogConfig) MaxBytes() int64 {
	mb := c.MaxMB
	if mb <= 0 {
		mb = 10
	}
	return int64(mb) * 1024 * 1024
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	err := env.Parse(&cfg)
	return cfg, err
}
