package grpc

import (
	"time"

	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
)

// GenerateRequest asks for the combinations of one target
type GenerateRequest struct {
	Target          string `json:"target"`
	TreatAsRaw      bool   `json:"treat_as_raw,omitempty"`
	MaxDepth        int    `json:"max_depth,omitempty"`
	MaxCombinations int    `json:"max_combinations,omitempty"`
}

// BatchRequest asks for the combinations of several targets
type BatchRequest struct {
	Targets         []string `json:"targets"`
	TreatAsRaw      bool     `json:"treat_as_raw,omitempty"`
	MaxDepth        int      `json:"max_depth,omitempty"`
	MaxCombinations int      `json:"max_combinations,omitempty"`
	Concurrency     int      `json:"concurrency,omitempty"`
}

// CondensationRequest asks for the condensed graph; an empty target covers every item
type CondensationRequest struct {
	Target string `json:"target,omitempty"`
}

// AnalyzeCyclesReply carries a circular analysis
type AnalyzeCyclesReply struct {
	Analysis        *production.CircularAnalysis `json:"analysis"`
	SnapshotVersion int                          `json:"snapshot_version"`
	ItemCount       int                          `json:"item_count"`
	RecipeCount     int                          `json:"recipe_count"`
}

// GenerateReply carries one generation result
type GenerateReply struct {
	Result          *production.GenerationResult `json:"result"`
	SnapshotVersion int                          `json:"snapshot_version"`
	DurationMS      int64                        `json:"duration_ms"`
}

// BatchReply carries one generation result per requested target, in request order
type BatchReply struct {
	Results         []*GenerateReply `json:"results"`
	SnapshotVersion int              `json:"snapshot_version"`
}

// CondensationReply carries a condensation graph
type CondensationReply struct {
	Graph           *production.CondensationGraph `json:"graph"`
	Stats           production.CondensationStats  `json:"stats"`
	SnapshotVersion int                           `json:"snapshot_version"`
}

// StatusReply describes the daemon and its active snapshot
type StatusReply struct {
	PID             int       `json:"pid"`
	SnapshotVersion int       `json:"snapshot_version"`
	Source          string    `json:"source"`
	LoadedAt        time.Time `json:"loaded_at"`
	Items           int       `json:"items"`
	Recipes         int       `json:"recipes"`
	CircularItems   int       `json:"circular_items"`
	CircularRecipes int       `json:"circular_recipes"`
}
