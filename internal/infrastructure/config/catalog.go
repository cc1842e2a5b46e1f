package config

import "time"

// CatalogConfig describes where recipe catalogs are read from
type CatalogConfig struct {
	// Directory scanned for catalog files
	Dir string `mapstructure:"dir"`

	// Glob patterns relative to Dir, e.g. "**/*.yaml"
	Patterns []string `mapstructure:"patterns" validate:"min=1,dive,globpattern"`

	// Reload the catalog when files under Dir change (daemon only)
	Watch bool `mapstructure:"watch"`

	// Quiet period after the last change before reloading
	Debounce time.Duration `mapstructure:"debounce"`
}
