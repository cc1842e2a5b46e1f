package config

import "time"

// DatabaseConfig selects where imported recipe catalogs are stored.
// The resolver reads this store only with --from-db; catalogs on disk stay the default source.
type DatabaseConfig struct {
	// "sqlite" for a local recipe file, "postgres" for a shared catalog server
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// DSN for the postgres recipe store; wins over Host/Port/User/Password/Name.
	// postgresql://resolver:secret@db:5432/recipes
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Recipe database file for sqlite, or ":memory:"
	Path string `mapstructure:"path"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig bounds the connections held open to the recipe store.
// Imports run in one transaction, so small pools are enough.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
