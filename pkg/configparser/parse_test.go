package configparser

import (
	"testing"
	"time"
)

type testConfig struct {
	Database struct {
		Host string `env:"TESTCFG_DB_HOST" default:"localhost"`
		Port int    `env:"TESTCFG_DB_PORT" default:"5432"`
	}
	IdleTime time.Duration `env:"TESTCFG_IDLE" default:"15m"`
	Debug    bool          `env:"TESTCFG_DEBUG" default:"true"`
}

func TestParseEnv_Defaults(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("host: got %q, want %q", cfg.Database.Host, "localhost")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("port: got %d, want 5432", cfg.Database.Port)
	}
	if cfg.IdleTime != 15*time.Minute {
		t.Errorf("idle time: got %v, want 15m", cfg.IdleTime)
	}
	if !cfg.Debug {
		t.Error("debug: got false, want true")
	}
}

func TestParseEnv_EnvOverridesDefault(t *testing.T) {
	t.Setenv("TESTCFG_DB_HOST", "db.internal")
	t.Setenv("TESTCFG_IDLE", "1h")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Host != "db.internal" {
		t.Errorf("host: got %q, want %q", cfg.Database.Host, "db.internal")
	}
	if cfg.IdleTime != time.Hour {
		t.Errorf("idle time: got %v, want 1h", cfg.IdleTime)
	}
}

func TestParseEnv_NotAPointer(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(cfg); err == nil {
		t.Fatal("expected error for non-pointer argument")
	}
}
