package services

import (
	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
)

// ResolutionTracer observes notable events of a combination search.
// Implementations must not influence the search; they only watch it.
type ResolutionTracer interface {
	CycleCut(edge production.CircularEdge, depth int)
	RecipeFallback(item string, recipeID string)
	LimitReached(item string, reason string, depth int)
}

// Limit reasons reported to LimitReached
const (
	LimitDepth        = "max_depth"
	LimitCombinations = "max_combinations"
	LimitWork         = "max_work"
)

// NoopTracer ignores every event
type NoopTracer struct{}

func (NoopTracer) CycleCut(production.CircularEdge, int) {}
func (NoopTracer) RecipeFallback(string, string)         {}
func (NoopTracer) LimitReached(string, string, int)      {}

// LoggerTracer forwards trace events to a logger at DEBUG level
type LoggerTracer struct {
	logger common.Logger
}

// NewLoggerTracer creates a tracer that writes to logger
func NewLoggerTracer(logger common.Logger) *LoggerTracer {
	return &LoggerTracer{logger: logger}
}

func (t *LoggerTracer) CycleCut(edge production.CircularEdge, depth int) {
	t.logger.Log("DEBUG", "Cycle cut during resolution", map[string]interface{}{
		"from":   edge.From,
		"to":     edge.To,
		"recipe": edge.RecipeUsing,
		"depth":  depth,
	})
}

func (t *LoggerTracer) RecipeFallback(item string, recipeID string) {
	t.logger.Log("DEBUG", "Every recipe is circular, falling back to first", map[string]interface{}{
		"item":   item,
		"recipe": recipeID,
	})
}

func (t *LoggerTracer) LimitReached(item string, reason string, depth int) {
	t.logger.Log("DEBUG", "Resolution limit reached", map[string]interface{}{
		"item":   item,
		"reason": reason,
		"depth":  depth,
	})
}
