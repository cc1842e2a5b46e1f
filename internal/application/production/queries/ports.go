package queries

import (
	"errors"
	"time"

	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
)

// ErrInvalidQuery marks a query rejected before any resolution ran
var ErrInvalidQuery = errors.New("invalid query")

// SnapshotProvider exposes the active recipe snapshot
type SnapshotProvider interface {
	Current() *services.Snapshot
}

// ResolutionRecorder receives measurements from completed resolutions.
// The metrics adapter implements it; nil disables recording.
type ResolutionRecorder interface {
	RecordGeneration(result *production.GenerationResult, duration time.Duration)
	RecordCondensation(stats production.CondensationStats)
}

// Limits are the configured defaults applied when a query leaves a bound unset
type Limits struct {
	MaxDepth        int
	MaxCombinations int
}

// DefaultLimits returns the built-in search bounds
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:        services.DefaultMaxDepth,
		MaxCombinations: services.DefaultMaxCombinations,
	}
}

func (l Limits) resolve(maxDepth, maxCombinations int) (int, int) {
	if maxDepth <= 0 {
		maxDepth = l.MaxDepth
	}
	if maxCombinations <= 0 {
		maxCombinations = l.MaxCombinations
	}
	return maxDepth, maxCombinations
}
