package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration, read from PAWS_* environment
// variables and an optional .env file.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
	Cache  CacheConfig
	Backup BackupConfig
}

type ServerConfig struct {
	Addr string
}

type DBConfig struct {
	Path       string
	AdminEmail string
	StaffEmail string
}

type LogConfig struct {
	File  string
	Level string
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTLSeconds    int
}

// TTL returns the cache lifetime, defaulting to one minute.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

type BackupConfig struct {
	CheckSeconds int
}

// CheckInterval is how often the scheduler looks for a due backup.
func (c BackupConfig) CheckInterval() time.Duration {
	if c.CheckSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.CheckSeconds) * time.Second
}

// Load reads the configuration. envFiles are loaded first if they exist;
// variables already set in the environment take precedence.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// A missing .env is fine.
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.SetEnvPrefix("PAWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "paws4pals.db")
	v.SetDefault("admin_email", "admin@paws4pals.local")
	v.SetDefault("staff_email", "staff@paws4pals.local")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("cache_enabled", false)
	v.SetDefault("redis_url", "")
	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl_seconds", 60)
	v.SetDefault("backup_check_seconds", 60)

	cfg := &Config{
		Server: ServerConfig{
			Addr: v.GetString("addr"),
		},
		DB: DBConfig{
			Path:       v.GetString("db_path"),
			AdminEmail: v.GetString("admin_email"),
			StaffEmail: v.GetString("staff_email"),
		},
		Log: LogConfig{
			File:  v.GetString("log_file"),
			Level: strings.ToLower(v.GetString("log_level")),
		},
		Cache: CacheConfig{
			Enabled:       v.GetBool("cache_enabled"),
			RedisURL:      v.GetString("redis_url"),
			RedisAddr:     v.GetString("redis_addr"),
			RedisPassword: v.GetString("redis_password"),
			RedisDB:       v.GetInt("redis_db"),
			TTLSeconds:    v.GetInt("cache_ttl_seconds"),
		},
		Backup: BackupConfig{
			CheckSeconds: v.GetInt("backup_check_seconds"),
		},
	}

	if cfg.DB.Path == "" {
		return nil, fmt.Errorf("PAWS_DB_PATH must not be empty")
	}
	if cfg.Cache.Enabled && cfg.Cache.RedisURL == "" && cfg.Cache.RedisAddr == "" {
		return nil, fmt.Errorf("cache enabled but neither PAWS_REDIS_URL nor PAWS_REDIS_ADDR is set")
	}
	return cfg, nil
}
