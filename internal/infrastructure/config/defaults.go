package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Resolver defaults
	if cfg.Resolver.MaxDepth == 0 {
		cfg.Resolver.MaxDepth = 20
	}
	if cfg.Resolver.MaxCombinations == 0 {
		cfg.Resolver.MaxCombinations = 1000
	}

	// Catalog defaults
	if cfg.Catalog.Dir == "" {
		cfg.Catalog.Dir = "./recipes"
	}
	if len(cfg.Catalog.Patterns) == 0 {
		cfg.Catalog.Patterns = []string{"**/*.json", "**/*.yaml", "**/*.yml"}
	}
	if cfg.Catalog.Debounce == 0 {
		cfg.Catalog.Debounce = 500 * time.Millisecond
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "recipes.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "resolver"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "recipes"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Daemon defaults
	if cfg.Daemon.SocketPath == "" {
		cfg.Daemon.SocketPath = "/tmp/recipe-resolver.sock"
	}
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/recipe-resolver.pid"
	}
	if cfg.Daemon.RateLimit == 0 {
		cfg.Daemon.RateLimit = 50
	}
	if cfg.Daemon.Burst == 0 {
		cfg.Daemon.Burst = 100
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 10 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
