package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Catalog
		Log
		Session
		CSRF
		Tasks
		Maintenance
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		Env                      string // "development" switches on console logging
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // gorm logger: silent, error, warn, info
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Catalog struct {
		GenreNameMinCreate int // Minimum genre name length accepted on create
		GenreNameMinUpdate int // Minimum genre name length accepted on update
	}
	Log struct {
		Level string
	}
	Session struct {
		Enabled       bool
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	CSRF struct {
		Enabled bool
		Secret  string // Derived into the 32-byte key; random per process if empty
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Maintenance struct {
		Enabled            bool
		ReconcileSchedule  string // Cron format: "*/30 * * * *" = every 30 minutes
		AuditPruneSchedule string // Cron format: "0 3 * * *" = daily at 03:00
		AuditRetentionDays int
	}
)

// LoadEnvFile loads variables from path into the process environment.
// Variables already set are not overridden and a missing file is ignored.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("app_env", "production")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")
	v.SetDefault("log_level", "info")

	// Catalog rules
	v.SetDefault("genre_name_min_create", 1)
	v.SetDefault("genre_name_min_update", 3)

	// Session (flash messages) defaults
	v.SetDefault("session_enabled", true)
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_secure_cookies", false)

	// CSRF defaults
	v.SetDefault("csrf_enabled", true)
	v.SetDefault("csrf_secret", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Maintenance schedule defaults
	v.SetDefault("maintenance_enabled", true)
	v.SetDefault("reconcile_schedule", "*/30 * * * *")
	v.SetDefault("audit_prune_schedule", "0 3 * * *")
	v.SetDefault("audit_retention_days", 30)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			Env:                      v.GetString("APP_ENV"),
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Catalog: Catalog{
			GenreNameMinCreate: v.GetInt("GENRE_NAME_MIN_CREATE"),
			GenreNameMinUpdate: v.GetInt("GENRE_NAME_MIN_UPDATE"),
		},
		Log: Log{
			Level: v.GetString("LOG_LEVEL"),
		},
		Session: Session{
			Enabled:       v.GetBool("SESSION_ENABLED"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SESSION_SECURE_COOKIES"),
		},
		CSRF: CSRF{
			Enabled: v.GetBool("CSRF_ENABLED"),
			Secret:  v.GetString("CSRF_SECRET"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Maintenance: Maintenance{
			Enabled:            v.GetBool("MAINTENANCE_ENABLED"),
			ReconcileSchedule:  v.GetString("RECONCILE_SCHEDULE"),
			AuditPruneSchedule: v.GetString("AUDIT_PRUNE_SCHEDULE"),
			AuditRetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
	}
}
