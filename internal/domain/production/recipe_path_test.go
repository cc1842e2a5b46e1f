package production_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

func r(id string) *recipe.Recipe {
	return recipe.NewRecipe(id, "", "", 0)
}

func TestRecipePath_WithKeepsReceiverUnchanged(t *testing.T) {
	// Arrange
	base := production.NewPath("B", r("b1"))

	// Act
	left := base.With("A", r("a1"))
	right := base.With("C", r("c1"))

	// Assert
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, "A=a1|B=b1", left.Signature())
	assert.Equal(t, "B=b1|C=c1", right.Signature())
}

func TestRecipePath_WithKeepsExistingAssignment(t *testing.T) {
	path := production.NewPath("A", r("a1")).With("A", r("a2"))

	chosen, ok := path.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "a1", chosen.ID)
}

func TestRecipePath_MergeIsLeftBiasedAndSorted(t *testing.T) {
	// Arrange
	left := production.NewPath("C", r("c1")).With("A", r("a1"))
	right := production.NewPath("B", r("b1")).With("A", r("a2"))

	// Act
	merged := left.Merge(right)

	// Assert
	assert.Equal(t, "A=a1|B=b1|C=c1", merged.Signature())
	assert.Equal(t, map[string]string{"A": "a1", "B": "b1", "C": "c1"}, merged.AsMap())
	assert.Equal(t, 2, left.Len())
	assert.Equal(t, left.Signature(), left.Merge(production.EmptyPath()).Signature())
	assert.Equal(t, right.Signature(), production.EmptyPath().Merge(right).Signature())
}

func TestRecipePath_EmptyPath(t *testing.T) {
	path := production.EmptyPath()

	assert.True(t, path.IsEmpty())
	assert.Equal(t, "", path.Signature())
	_, ok := path.Lookup("A")
	assert.False(t, ok)
}

func TestCombinationID_DependsOnlyOnAssignments(t *testing.T) {
	// Arrange
	first := production.NewPath("A", r("a1")).With("B", r("b1"))
	second := production.NewPath("B", r("b1")).With("A", r("a1"))
	other := production.NewPath("A", r("a2")).With("B", r("b1"))

	// Act & Assert
	assert.Equal(t, production.CombinationID(first), production.CombinationID(second))
	assert.NotEqual(t, production.CombinationID(first), production.CombinationID(other))
}

func TestProductionCombination_Flags(t *testing.T) {
	alternate := r("a_alt")
	alternate.Alternate = true
	path := production.NewPath("A", alternate)

	combination := production.NewProductionCombination("A", path, nil, nil, nil)

	assert.True(t, combination.UsesAlternate())
	assert.False(t, combination.HasCycleCut())
	assert.Empty(t, combination.RawMaterials)
	assert.Equal(t, production.CombinationID(path), combination.ID)
}

func TestCondensationGraph_NodeForSurvivesJSON(t *testing.T) {
	// Arrange
	graph := production.NewCondensationGraph("")
	graph.AddNode(&production.CondensationNode{ID: "cycle-0", Items: []string{"A", "B"}, Meta: true, Circular: true})
	graph.AddNode(&production.CondensationNode{ID: "C", Items: []string{"C"}, RecipeCount: 1})

	data, err := json.Marshal(graph)
	require.NoError(t, err)

	// Act
	var decoded production.CondensationGraph
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Assert
	id, ok := decoded.NodeFor("B")
	require.True(t, ok)
	assert.Equal(t, "cycle-0", id)
	_, ok = decoded.NodeFor("Z")
	assert.False(t, ok)
	assert.Equal(t, production.CondensationStats{TotalNodes: 2, RegularNodes: 1, MetaNodes: 1}, decoded.Stats())
}
