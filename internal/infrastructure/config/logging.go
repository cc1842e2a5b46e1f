package config

// LoggingConfig controls the slog output of the CLI and the resolver daemon.
// Resolution traces (cycle cuts, recipe fallbacks, limits) are emitted at debug.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// stdout, stderr, or file (then FilePath is required)
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// Adds source file:line to each record
	IncludeCaller bool `mapstructure:"include_caller"`
}
