package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type ClientConfig struct {
	APIBaseURL   string `env:"API_BASE_URL" envDefault:"http://localhost:3000/api"`
	FallbackURLs string `env:"API_FALLBACK_URLS"`

	RetryAttempts  int           `env:"API_RETRY_ATTEMPTS" envDefault:"3"`
	AttemptTimeout time.Duration `env:"API_ATTEMPT_TIMEOUT" envDefault:"10s"`
	CacheTTL       time.Duration `env:"API_CACHE_TTL" envDefault:"5s"`

	XPWriteInterval time.Duration `env:"XP_WRITE_INTERVAL" envDefault:"1s"`
	XPWriteDebounce time.Duration `env:"XP_WRITE_DEBOUNCE" envDefault:"2s"`
	ProbeInterval   time.Duration `env:"OFFLINE_PROBE_INTERVAL" envDefault:"30s"`

	LocalStorePath string `env:"LOCAL_STORE_PATH" envDefault:"dogpark-local.json"`

	// Whether challenge progress and daily stats reset on day change.
	DailyReset bool `env:"DAILY_RESET" envDefault:"true"`
}

func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	err := env.Parse(&cfg)
	return cfg, err
}

// BaseURLs returns the primary base URL followed by any configured
// fallbacks, in the order they should be tried.
func (c ClientConfig) BaseURLs() []string {
	out := []string{c.APIBaseURL}
	for _, u := range strings.Split(c.FallbackURLs, ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}
