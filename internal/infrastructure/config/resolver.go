package config

// ResolverConfig holds combination search settings
type ResolverConfig struct {
	// Maximum recursion depth before a branch is pruned
	MaxDepth int `mapstructure:"max_depth" validate:"min=1"`

	// Ceiling on combinations returned per target
	MaxCombinations int `mapstructure:"max_combinations" validate:"min=1"`

	// Treat items matching RawPatterns as raw by default
	TreatAsRaw bool `mapstructure:"treat_as_raw"`

	// Items that are always raw. Empty uses the built-in base resources.
	BaseResources []string `mapstructure:"base_resources"`

	// Glob patterns (doublestar syntax) of items treated as raw when TreatAsRaw is set
	RawPatterns []string `mapstructure:"raw_patterns" validate:"dive,globpattern"`

	// Concurrent targets in a batch; 0 runs every target at once
	BatchConcurrency int `mapstructure:"batch_concurrency" validate:"min=0"`
}
