package config

import "github.com/caarlos0/env/v11"

// TestConfig points store integration tests at a disposable database.
// Loading fails when TEST_POSTGRES_DSN is unset; the test helpers turn
// that into a skip so the suite runs without Postgres.
type TestConfig struct {
	PostgresDSN  string `env:"TEST_POSTGRES_DSN,required,notEmpty"`
	SchemaPrefix string `env:"TEST_SCHEMA_PREFIX" envDefault:"dogpark_test"`
}

func LoadTest() (TestConfig, error) {
	var cfg TestConfig
	err := env.Parse(&cfg)
	return cfg, err
}
