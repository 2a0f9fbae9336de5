package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Server.Addr)
	}
	if cfg.DB.Path != "paws4pals.db" {
		t.Errorf("expected paws4pals.db, got %q", cfg.DB.Path)
	}
	if cfg.Cache.Enabled {
		t.Error("expected cache disabled by default")
	}
	if cfg.Cache.TTL() != time.Minute {
		t.Errorf("expected 1m TTL, got %v", cfg.Cache.TTL())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAWS_ADDR", ":9090")
	t.Setenv("PAWS_LOG_LEVEL", "DEBUG")
	t.Setenv("PAWS_CACHE_ENABLED", "true")
	t.Setenv("PAWS_REDIS_DB", "3")
	t.Setenv("PAWS_CACHE_TTL_SECONDS", "5")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected :9090, got %q", cfg.Server.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug, got %q", cfg.Log.Level)
	}
	if !cfg.Cache.Enabled || cfg.Cache.RedisDB != 3 {
		t.Errorf("unexpected cache config %+v", cfg.Cache)
	}
	if cfg.Cache.TTL() != 5*time.Second {
		t.Errorf("expected 5s TTL, got %v", cfg.Cache.TTL())
	}
}

func TestLoadFromDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PAWS_DB_PATH=/tmp/from-dotenv.db\nPAWS_BACKUP_CHECK_SECONDS=30\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv sets real environment variables; clear them afterwards.
	t.Setenv("PAWS_DB_PATH", "")
	os.Unsetenv("PAWS_DB_PATH")
	t.Setenv("PAWS_BACKUP_CHECK_SECONDS", "")
	os.Unsetenv("PAWS_BACKUP_CHECK_SECONDS")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Path != "/tmp/from-dotenv.db" {
		t.Errorf("expected path from .env, got %q", cfg.DB.Path)
	}
	if cfg.Backup.CheckInterval() != 30*time.Second {
		t.Errorf("expected 30s, got %v", cfg.Backup.CheckInterval())
	}
}
