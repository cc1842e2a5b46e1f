package queries_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/queries"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
	"github.com/andrescamacho/recipe-resolver/test/helpers"
)

// countingRecorder counts what the handlers report
type countingRecorder struct {
	mu            sync.Mutex
	generations   int
	condensations int
}

func (r *countingRecorder) RecordGeneration(result *production.GenerationResult, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generations++
}

func (r *countingRecorder) RecordCondensation(stats production.CondensationStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.condensations++
}

func newMediator(t *testing.T, limits queries.Limits, lines ...helpers.RecipeLine) (common.Mediator, *countingRecorder) {
	t.Helper()
	recorder := &countingRecorder{}
	m := common.NewMediator()
	err := queries.RegisterHandlers(m, queries.Dependencies{
		Snapshots: services.NewSnapshotStore(helpers.MustIndex(lines...), "test"),
		Limits:    limits,
		Recorder:  recorder,
	})
	require.NoError(t, err)
	return m, recorder
}

func TestAnalyzeCycles(t *testing.T) {
	// Arrange
	m, _ := newMediator(t, queries.Limits{}, helpers.MutualCycleCatalog...)

	// Act
	response, err := m.Send(context.Background(), &queries.AnalyzeCyclesQuery{})

	// Assert
	require.NoError(t, err)
	resp := response.(*queries.AnalyzeCyclesResponse)
	assert.Equal(t, 1, resp.SnapshotVersion)
	assert.Equal(t, 5, resp.ItemCount)
	assert.Equal(t, 5, resp.RecipeCount)
	assert.Equal(t, []string{"A", "B"}, resp.Analysis.SortedCircularItems())
}

func TestGenerateCombinations_RequiresTarget(t *testing.T) {
	m, recorder := newMediator(t, queries.Limits{}, helpers.AcyclicCatalog...)

	_, err := m.Send(context.Background(), &queries.GenerateCombinationsQuery{})

	assert.True(t, errors.Is(err, queries.ErrInvalidQuery))
	assert.Zero(t, recorder.generations)
}

func TestGenerateCombinations_UsesConfiguredLimitsWhenUnset(t *testing.T) {
	// Arrange
	m, recorder := newMediator(t, queries.Limits{MaxDepth: 2}, helpers.AcyclicCatalog...)

	// Act
	limited, err := m.Send(context.Background(), &queries.GenerateCombinationsQuery{Target: "SCREW"})
	require.NoError(t, err)
	overridden, err := m.Send(context.Background(), &queries.GenerateCombinationsQuery{Target: "SCREW", MaxDepth: 10})
	require.NoError(t, err)

	// Assert
	assert.True(t, limited.(*queries.GenerateCombinationsResponse).Result.DepthLimited)
	assert.Zero(t, limited.(*queries.GenerateCombinationsResponse).Result.Count())
	assert.Equal(t, 1, overridden.(*queries.GenerateCombinationsResponse).Result.Count())
	assert.Equal(t, 2, recorder.generations)
}

func TestGenerateCombinationsBatch_KeepsRequestOrder(t *testing.T) {
	// Arrange
	m, recorder := newMediator(t, queries.Limits{}, helpers.AcyclicCatalog...)
	targets := []string{"REINFORCED_PLATE", "IRON_ORE", "SCREW", "IRON_PLATE", "IRON_ROD"}

	// Act
	response, err := m.Send(context.Background(), &queries.GenerateCombinationsBatchQuery{
		Targets:     targets,
		Concurrency: 2,
	})

	// Assert
	require.NoError(t, err)
	resp := response.(*queries.GenerateCombinationsBatchResponse)
	require.Len(t, resp.Results, len(targets))
	for i, target := range targets {
		assert.Equal(t, target, resp.Results[i].Result.Target)
	}
	assert.Zero(t, resp.Results[1].Result.Count())
	assert.Equal(t, 1, resp.Results[0].Result.Count())
	assert.Equal(t, len(targets), recorder.generations)
}

func TestGenerateCombinationsBatch_RejectsEmptyTargets(t *testing.T) {
	m, _ := newMediator(t, queries.Limits{}, helpers.AcyclicCatalog...)

	_, noTargets := m.Send(context.Background(), &queries.GenerateCombinationsBatchQuery{})
	_, blankTarget := m.Send(context.Background(), &queries.GenerateCombinationsBatchQuery{Targets: []string{"SCREW", ""}})

	assert.True(t, errors.Is(noTargets, queries.ErrInvalidQuery))
	assert.True(t, errors.Is(blankTarget, queries.ErrInvalidQuery))
}

func TestGenerateCombinationsBatch_CancelledContext(t *testing.T) {
	m, _ := newMediator(t, queries.Limits{}, helpers.AcyclicCatalog...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Send(ctx, &queries.GenerateCombinationsBatchQuery{Targets: []string{"SCREW"}})

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBuildCondensationGraph(t *testing.T) {
	// Arrange
	m, recorder := newMediator(t, queries.Limits{}, helpers.MutualCycleCatalog...)

	// Act
	response, err := m.Send(context.Background(), &queries.BuildCondensationGraphQuery{Target: "PRODUCT"})

	// Assert
	require.NoError(t, err)
	resp := response.(*queries.BuildCondensationGraphResponse)
	assert.Equal(t, resp.Graph.Stats(), resp.Stats)
	assert.Equal(t, 1, resp.Stats.MetaNodes)
	assert.Equal(t, 1, recorder.condensations)
}

func TestLimits_Defaults(t *testing.T) {
	limits := queries.DefaultLimits()

	assert.Equal(t, 20, limits.MaxDepth)
	assert.Equal(t, 1000, limits.MaxCombinations)
}
