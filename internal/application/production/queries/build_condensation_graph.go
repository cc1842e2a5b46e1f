package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
)

// BuildCondensationGraphQuery requests the condensed dependency graph.
// An empty Target condenses every item.
type BuildCondensationGraphQuery struct {
	Target string
}

// BuildCondensationGraphResponse carries the graph and its statistics
type BuildCondensationGraphResponse struct {
	Graph           *production.CondensationGraph
	Stats           production.CondensationStats
	SnapshotVersion int
}

// BuildCondensationGraphHandler handles the BuildCondensationGraph query
type BuildCondensationGraphHandler struct {
	snapshots SnapshotProvider
	builder   *services.CondensationBuilder
	recorder  ResolutionRecorder
}

// NewBuildCondensationGraphHandler creates a new BuildCondensationGraphHandler
func NewBuildCondensationGraphHandler(
	snapshots SnapshotProvider,
	builder *services.CondensationBuilder,
	recorder ResolutionRecorder,
) *BuildCondensationGraphHandler {
	return &BuildCondensationGraphHandler{
		snapshots: snapshots,
		builder:   builder,
		recorder:  recorder,
	}
}

// Handle executes the BuildCondensationGraph query
func (h *BuildCondensationGraphHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*BuildCondensationGraphQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuildCondensationGraphQuery")
	}

	snapshot := h.snapshots.Current()
	graph := h.builder.Build(snapshot.Index, snapshot.Analysis, query.Target)
	stats := graph.Stats()

	common.LoggerFromContext(ctx).Log("INFO", "Condensation graph built", map[string]interface{}{
		"target":     query.Target,
		"nodes":      stats.TotalNodes,
		"meta_nodes": stats.MetaNodes,
		"edges":      stats.Edges,
	})

	if h.recorder != nil {
		h.recorder.RecordCondensation(stats)
	}

	return &BuildCondensationGraphResponse{
		Graph:           graph,
		Stats:           stats,
		SnapshotVersion: snapshot.Version,
	}, nil
}
