package production

import (
	"github.com/google/uuid"

	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// combinationNamespace scopes the name-based UUIDs of combinations.
// Identical signatures always map to identical identifiers.
var combinationNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("recipe-resolver/production-combination"))

// CircularEdge records a cycle that was cut during resolution: while expanding
// From with RecipeUsing, the resolver needed To, which was already open on the path.
type CircularEdge struct {
	From        string `json:"from"`
	To          string `json:"to"`
	RecipeUsing string `json:"recipe_using"`
}

// ChainStep is one entry of a linearized production chain
type ChainStep struct {
	Item      string `json:"item"`
	RecipeID  string `json:"recipe_id"`
	Recipe    string `json:"recipe"`
	MachineID string `json:"machine_id"`

	Ingredients []recipe.ItemAmount `json:"ingredients"`
}

// ProductionCombination is one deduplicated, fully resolved way to build a target
type ProductionCombination struct {
	ID            string            `json:"id"`
	Target        string            `json:"target"`
	Recipes       map[string]string `json:"recipes"`
	RawMaterials  []string          `json:"raw_materials"`
	CircularEdges []CircularEdge    `json:"circular_edges"`
	RecipeChain   []ChainStep       `json:"recipe_chain"`

	path RecipePath
}

// NewProductionCombination creates a combination for target from a resolved path.
// The identifier is derived from the path signature.
func NewProductionCombination(
	target string,
	path RecipePath,
	rawMaterials []string,
	edges []CircularEdge,
	chain []ChainStep,
) *ProductionCombination {
	if edges == nil {
		edges = make([]CircularEdge, 0)
	}
	if rawMaterials == nil {
		rawMaterials = make([]string, 0)
	}
	if chain == nil {
		chain = make([]ChainStep, 0)
	}

	return &ProductionCombination{
		ID:            CombinationID(path),
		Target:        target,
		Recipes:       path.AsMap(),
		RawMaterials:  rawMaterials,
		CircularEdges: edges,
		RecipeChain:   chain,
		path:          path,
	}
}

// CombinationID returns the deterministic identifier for a path
func CombinationID(path RecipePath) string {
	return uuid.NewSHA1(combinationNamespace, []byte(path.Signature())).String()
}

// Path returns the underlying recipe path
func (c *ProductionCombination) Path() RecipePath {
	return c.path
}

// HasCycleCut reports whether any cycle was cut while resolving this combination
func (c *ProductionCombination) HasCycleCut() bool {
	return len(c.CircularEdges) > 0
}

// UsesAlternate reports whether any chosen recipe is flagged alternate
func (c *ProductionCombination) UsesAlternate() bool {
	for _, entry := range c.path.entries {
		if entry.Recipe.Alternate {
			return true
		}
	}
	return false
}

// GenerationResult is the outcome of one top-level combination generation.
//
// Truncated is set whenever a limit pruned the search, so callers never mistake
// a partial list for an exhaustive one.
type GenerationResult struct {
	Target       string                   `json:"target"`
	Combinations []*ProductionCombination `json:"combinations"`
	Truncated    bool                     `json:"truncated"`
	DepthLimited bool                     `json:"depth_limited"`
	Explored     int                      `json:"explored"`
	Merged       int                      `json:"merged"`
	CacheHits    int                      `json:"cache_hits"`
}

// Count returns the number of combinations
func (r *GenerationResult) Count() int {
	return len(r.Combinations)
}

// IDs returns the combination identifiers in result order
func (r *GenerationResult) IDs() []string {
	ids := make([]string, 0, len(r.Combinations))
	for _, c := range r.Combinations {
		ids = append(ids, c.ID)
	}
	return ids
}
