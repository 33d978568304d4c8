package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Retention RetentionConfig `yaml:"retention"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// PipelineConfig holds ingestion pipeline limits.
type PipelineConfig struct {
	MaxScopeItems   int `yaml:"max_scope_items"   env:"PIPELINE_MAX_SCOPE_ITEMS"   env-default:"50"`
	MaxInsightChars int `yaml:"max_insight_chars" env:"PIPELINE_MAX_INSIGHT_CHARS" env-default:"8000"`
}

// RetentionConfig holds the data retention windows applied by the cleanup
// command: whispers are archived after ArchiveAfter, processed events are
// purged after PurgeEventsAfter.
type RetentionConfig struct {
	ArchiveAfter     time.Duration `yaml:"archive_after"      env:"RETENTION_ARCHIVE_AFTER"      env-default:"720h"`
	PurgeEventsAfter time.Duration `yaml:"purge_events_after" env:"RETENTION_PURGE_EVENTS_AFTER" env-default:"2160h"`
}
