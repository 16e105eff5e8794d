// Package config defines and loads the application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Session  SessionConfig  `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// URL is the Postgres connection string. Both postgres:// and
	// postgresql:// schemes are accepted (some platforms hand out the
	// former). When unset the local development database is used.
	URL string `mapstructure:"url" validate:"required"`
}

// SessionConfig contains the session-signing settings.
type SessionConfig struct {
	// Secret signs the session cookie. Loaded once at startup and immutable
	// afterward; changing it across restarts logs every user out.
	Secret string `mapstructure:"secret" validate:"required,min=32"`

	// LifetimeDays is the session expiry in days from issuance.
	LifetimeDays int `mapstructure:"lifetime_days" validate:"required,gt=0"`
}
