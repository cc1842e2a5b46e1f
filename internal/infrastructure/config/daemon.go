package config

import "time"

// DaemonConfig holds resolver daemon configuration
type DaemonConfig struct {
	// Unix socket path for IPC
	SocketPath string `mapstructure:"socket_path" validate:"required"`

	// PID file location
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// Requests per second accepted by the gRPC server
	RateLimit float64 `mapstructure:"rate_limit" validate:"gt=0"`

	// Burst size for the rate limiter
	Burst int `mapstructure:"burst" validate:"min=1"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
