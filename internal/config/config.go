package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler" validate:"required"`
	Pagination PaginationConfig `mapstructure:"pagination" validate:"required"`
	Study      StudyConfig      `mapstructure:"study" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gt=0"`
}

// SchedulerConfig parameterizes the spaced-repetition function.
type SchedulerConfig struct {
	DesiredRetention float64 `mapstructure:"desired_retention" validate:"gt=0,lte=1"`
	MaximumInterval  int     `mapstructure:"maximum_interval" validate:"gt=0"`
	EnableShortTerm  bool    `mapstructure:"enable_short_term"`
	EnableFuzz       bool    `mapstructure:"enable_fuzz"`
}

// PaginationConfig bounds list and due-card page sizes.
type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size" validate:"gt=0,ltefield=MaxPageSize"`
	MaxPageSize     int `mapstructure:"max_page_size" validate:"gt=0"`
}

// StudyConfig controls study session queues and the session registry.
type StudyConfig struct {
	// QueueLimit caps how many due cards a session loads at start. Zero means no cap.
	QueueLimit         int           `mapstructure:"queue_limit" validate:"gte=0"`
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout" validate:"gt=0"`
}
