package main

import (
	"testing"
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/statusx"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACTION_LATENCY", "not-a-duration")

	t.Setenv("DB_DRIVER", "memory")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StatusMode != statusx.ModePermissive {
		t.Fatalf("status mode = %s", cfg.StatusMode)
	}
	if cfg.ActionLatency != 1500*time.Millisecond {
		t.Fatalf("latency = %s", cfg.ActionLatency)
	}
	if cfg.JWTSecret != "s3cret" || cfg.UseS3() {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_DSN", "file:board.db")
	t.Setenv("STATUS_MODE", "strict")
	t.Setenv("ACTION_FAIL", "true")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.StatusMode != statusx.ModeStrict || !cfg.ActionFail {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.RedisDB != 2 || cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("redis db = %d, ttl = %s", cfg.RedisDB, cfg.SessionTTL)
	}
}

func TestLoadConfigRejectsMissingDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error without DB_DSN")
	}
	t.Setenv("DB_DRIVER", "mongo")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
