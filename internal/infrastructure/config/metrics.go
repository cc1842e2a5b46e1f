package config

// MetricsConfig exposes the daemon's resolver metrics (generation sizes,
// truncations, snapshot reloads) on a Prometheus scrape endpoint.
// The CLI never starts the endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Listen address of the scrape endpoint, localhost:9090 and /metrics by default
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Host string `mapstructure:"host"`
	Path string `mapstructure:"path"`
}
