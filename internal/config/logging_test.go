package config

import "testing"

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" || cfg.Pretty || cfg.File != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if got := cfg.MaxBytes(); got != 10*1024*1024 {
		t.Fatalf("MaxBytes() = %d, want 10MB default", got)
	}
}

func TestLoadLogFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_SAMPLE_EVERY", "100")
	t.Setenv("LOG_FILE", "dogpark.log")
	t.Setenv("LOG_MAX_MB", "2")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "debug" || cfg.SampleEvery != 100 || cfg.File != "dogpark.log" {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
	if got := cfg.MaxBytes(); got != 2*1024*1024 {
		t.Fatalf("MaxBytes() = %d, want 2MB", got)
	}
}

func TestMaxBytesRejectsNonPositive(t *testing.T) {
	cfg := LogConfig{MaxMB: -1}
	if got := cfg.MaxBytes(); got != 10*1024*1024 {
		t.Fatalf("MaxBytes() = %d, want default for negative cap", got)
	}
}
