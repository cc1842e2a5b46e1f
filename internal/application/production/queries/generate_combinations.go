package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
)

// GenerateCombinationsQuery requests every acyclic combination for one target
type GenerateCombinationsQuery struct {
	Target          string // Required: item to produce
	TreatAsRaw      bool   // Optional: stop at items matching the raw override patterns
	MaxDepth        int    // Optional: 0 uses the configured default
	MaxCombinations int    // Optional: 0 uses the configured default
}

// GenerateCombinationsResponse carries the generation result
type GenerateCombinationsResponse struct {
	Result          *production.GenerationResult
	SnapshotVersion int
	Duration        time.Duration
}

// GenerateCombinationsHandler handles the GenerateCombinations query
type GenerateCombinationsHandler struct {
	snapshots SnapshotProvider
	generator *services.CombinationGenerator
	limits    Limits
	recorder  ResolutionRecorder
}

// NewGenerateCombinationsHandler creates a new GenerateCombinationsHandler.
// recorder may be nil.
func NewGenerateCombinationsHandler(
	snapshots SnapshotProvider,
	generator *services.CombinationGenerator,
	limits Limits,
	recorder ResolutionRecorder,
) *GenerateCombinationsHandler {
	return &GenerateCombinationsHandler{
		snapshots: snapshots,
		generator: generator,
		limits:    limits,
		recorder:  recorder,
	}
}

// Handle executes the GenerateCombinations query
func (h *GenerateCombinationsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GenerateCombinationsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GenerateCombinationsQuery")
	}

	if query.Target == "" {
		return nil, fmt.Errorf("%w: target is required", ErrInvalidQuery)
	}

	snapshot := h.snapshots.Current()
	return h.generate(ctx, snapshot, query, nil), nil
}

// generate runs a single target against snapshot. A nil cache gets a fresh one.
func (h *GenerateCombinationsHandler) generate(
	ctx context.Context,
	snapshot *services.Snapshot,
	query *GenerateCombinationsQuery,
	cache *services.MemoCache,
) *GenerateCombinationsResponse {
	logger := common.LoggerFromContext(ctx)
	maxDepth, maxCombinations := h.limits.resolve(query.MaxDepth, query.MaxCombinations)

	start := time.Now()
	result := h.generator.Generate(
		query.Target,
		snapshot.Index,
		snapshot.Analysis,
		query.TreatAsRaw,
		services.GenerateOptions{
			MaxDepth:        maxDepth,
			MaxCombinations: maxCombinations,
			Cache:           cache,
			Tracer:          services.NewLoggerTracer(logger),
		},
	)
	duration := time.Since(start)

	if result.Truncated {
		logger.Log("WARNING", "Combination search truncated", map[string]interface{}{
			"target":           query.Target,
			"combinations":     result.Count(),
			"depth_limited":    result.DepthLimited,
			"max_depth":        maxDepth,
			"max_combinations": maxCombinations,
		})
	}

	logger.Log("INFO", "Combinations generated", map[string]interface{}{
		"target":       query.Target,
		"combinations": result.Count(),
		"explored":     result.Explored,
		"merged":       result.Merged,
		"cache_hits":   result.CacheHits,
		"duration_ms":  duration.Milliseconds(),
	})

	if h.recorder != nil {
		h.recorder.RecordGeneration(result, duration)
	}

	return &GenerateCombinationsResponse{
		Result:          result,
		SnapshotVersion: snapshot.Version,
		Duration:        duration,
	}
}
