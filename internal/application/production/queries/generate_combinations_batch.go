package queries

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
)

// GenerateCombinationsBatchQuery requests combinations for several targets at once.
// Every target shares the same flags and limits.
type GenerateCombinationsBatchQuery struct {
	Targets         []string
	TreatAsRaw      bool
	MaxDepth        int
	MaxCombinations int
	Concurrency     int // Optional: 0 means one goroutine per target
}

// GenerateCombinationsBatchResponse holds one response per target, in request order
type GenerateCombinationsBatchResponse struct {
	Results         []*GenerateCombinationsResponse
	SnapshotVersion int
}

// GenerateCombinationsBatchHandler fans a batch out over the single-target handler
type GenerateCombinationsBatchHandler struct {
	single *GenerateCombinationsHandler
}

// NewGenerateCombinationsBatchHandler creates a new GenerateCombinationsBatchHandler
func NewGenerateCombinationsBatchHandler(single *GenerateCombinationsHandler) *GenerateCombinationsBatchHandler {
	return &GenerateCombinationsBatchHandler{single: single}
}

// Handle executes the batch. All targets run against the same snapshot, each
// with its own memo cache, since caches are only valid within one generation.
func (h *GenerateCombinationsBatchHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GenerateCombinationsBatchQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GenerateCombinationsBatchQuery")
	}

	if len(query.Targets) == 0 {
		return nil, fmt.Errorf("%w: at least one target is required", ErrInvalidQuery)
	}
	for i, target := range query.Targets {
		if target == "" {
			return nil, fmt.Errorf("%w: target %d is empty", ErrInvalidQuery, i)
		}
	}

	snapshot := h.single.snapshots.Current()
	results := make([]*GenerateCombinationsResponse, len(query.Targets))

	group, groupCtx := errgroup.WithContext(ctx)
	if query.Concurrency > 0 {
		group.SetLimit(query.Concurrency)
	}

	for i, target := range query.Targets {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = h.single.generate(groupCtx, snapshot, &GenerateCombinationsQuery{
				Target:          target,
				TreatAsRaw:      query.TreatAsRaw,
				MaxDepth:        query.MaxDepth,
				MaxCombinations: query.MaxCombinations,
			}, services.NewMemoCache())
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("batch generation cancelled: %w", err)
	}

	return &GenerateCombinationsBatchResponse{
		Results:         results,
		SnapshotVersion: snapshot.Version,
	}, nil
}
