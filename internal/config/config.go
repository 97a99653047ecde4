package config

import (
	"github.com/maxviazov/productivity-hub/internal/logger"
)

type Config struct {
	App       AppConfig           `mapstructure:"app"`
	Logger    logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Postgres  PostgresConfig      `mapstructure:"postgres"`
	Redis     RedisConfig         `mapstructure:"redis"`
	Migration MigrationConfig     `mapstructure:"migration"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port    int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	// ShutdownTimeout is in seconds.
	ShutdownTimeout int `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// PostgresConfig holds connection and pool settings. Durations are in seconds.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"gte=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"gte=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime" validate:"gte=0"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time" validate:"gte=0"`
	HealthCheckPeriod int    `mapstructure:"health_check_period" validate:"gte=0"`
	AutoMigrate       bool   `mapstructure:"auto_migrate"`
}

// RedisConfig points at the store holding legacy session blobs.
// InMemory starts an embedded miniredis instead of dialing Addr.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required_unless=InMemory true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	InMemory bool   `mapstructure:"in_memory"`
}

type MigrationConfig struct {
	// Enabled runs the legacy session migration once before the HTTP server starts.
	Enabled bool `mapstructure:"enabled"`
}
