package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/test/helpers"
)

func TestCycleAnalyzer_AcyclicIndexHasOneComponentPerItem(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(helpers.AcyclicCatalog...)

	// Act
	analysis := services.NewCycleAnalyzer().Analyze(index)

	// Assert
	assert.Empty(t, analysis.CircularItems)
	assert.Empty(t, analysis.CircularRecipes)
	assert.Len(t, analysis.Components, index.Len())
	assert.Empty(t, analysis.CircularComponents())
}

func TestCycleAnalyzer_SelfLoopIsCircular(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(
		"grow: SEED -> SEED",
		"harvest: SEED -> FRUIT",
	)

	// Act
	analysis := services.NewCycleAnalyzer().Analyze(index)

	// Assert
	component, ok := analysis.ComponentOf("SEED")
	require.True(t, ok)
	assert.Equal(t, []string{"SEED"}, analysis.Components[component])
	assert.True(t, analysis.IsCircularComponent(component))
	assert.True(t, analysis.IsCircularItem("SEED"))
	assert.True(t, analysis.IsCircularRecipe("grow"))
	assert.False(t, analysis.IsCircularItem("FRUIT"))
	assert.False(t, analysis.IsCircularRecipe("harvest"))
}

func TestCycleAnalyzer_MutualDependencyFormsOneComponent(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(
		"a: B -> A",
		"b: A -> B",
	)

	// Act
	analysis := services.NewCycleAnalyzer().Analyze(index)

	// Assert
	componentA, okA := analysis.ComponentOf("A")
	componentB, okB := analysis.ComponentOf("B")
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, componentA, componentB)
	assert.ElementsMatch(t, []string{"A", "B"}, analysis.Components[componentA])
	assert.Equal(t, []string{"A", "B"}, analysis.SortedCircularItems())
	assert.Equal(t, []string{"a", "b"}, analysis.SortedCircularRecipes())
}

func TestCycleAnalyzer_RecipeLeavingTheCycleIsNotCircular(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(helpers.MutualCycleCatalog...)

	// Act
	analysis := services.NewCycleAnalyzer().Analyze(index)

	// Assert
	assert.True(t, analysis.IsCircularItem("A"))
	assert.True(t, analysis.IsCircularItem("B"))
	assert.True(t, analysis.IsCircularRecipe("a_from_b"))
	assert.True(t, analysis.IsCircularRecipe("b_from_a"))
	assert.False(t, analysis.IsCircularRecipe("a_from_raw"))
	assert.False(t, analysis.IsCircularRecipe("b_from_raw"))
	assert.False(t, analysis.IsCircularItem("PRODUCT"))
	assert.False(t, analysis.IsCircularRecipe("product"))
}

func TestCycleAnalyzer_IsDeterministic(t *testing.T) {
	index := helpers.MustIndex(helpers.MutualCycleCatalog...)
	analyzer := services.NewCycleAnalyzer()

	first := analyzer.Analyze(index)
	second := analyzer.Analyze(index)

	assert.Equal(t, first.Components, second.Components)
	assert.Equal(t, first.ComponentIndex, second.ComponentIndex)
}
