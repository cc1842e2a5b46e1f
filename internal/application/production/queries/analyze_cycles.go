package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
)

// AnalyzeCyclesQuery requests the circular analysis of the loaded recipes
type AnalyzeCyclesQuery struct{}

// AnalyzeCyclesResponse carries the analysis along with the snapshot it came from
type AnalyzeCyclesResponse struct {
	Analysis        *production.CircularAnalysis
	SnapshotVersion int
	ItemCount       int
	RecipeCount     int
}

// AnalyzeCyclesHandler handles the AnalyzeCycles query
type AnalyzeCyclesHandler struct {
	snapshots SnapshotProvider
}

// NewAnalyzeCyclesHandler creates a new AnalyzeCyclesHandler
func NewAnalyzeCyclesHandler(snapshots SnapshotProvider) *AnalyzeCyclesHandler {
	return &AnalyzeCyclesHandler{snapshots: snapshots}
}

// Handle executes the AnalyzeCycles query.
// The analysis is computed when the snapshot is installed, so this only reads it.
func (h *AnalyzeCyclesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*AnalyzeCyclesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *AnalyzeCyclesQuery")
	}

	snapshot := h.snapshots.Current()

	common.LoggerFromContext(ctx).Log("DEBUG", "Circular analysis served", map[string]interface{}{
		"snapshot_version": snapshot.Version,
		"circular_items":   len(snapshot.Analysis.CircularItems),
		"circular_recipes": len(snapshot.Analysis.CircularRecipes),
	})

	return &AnalyzeCyclesResponse{
		Analysis:        snapshot.Analysis,
		SnapshotVersion: snapshot.Version,
		ItemCount:       snapshot.Index.Len(),
		RecipeCount:     snapshot.Index.RecipeCount(),
	}, nil
}
