package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
	"github.com/andrescamacho/recipe-resolver/test/helpers"
)

func condense(index *recipe.Index, target string) *production.CondensationGraph {
	analysis := services.NewCycleAnalyzer().Analyze(index)
	return services.NewCondensationBuilder().Build(index, analysis, target)
}

func TestCondensation_AcyclicSubgraphHasNoMetaNodes(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(helpers.AcyclicCatalog...)

	// Act
	graph := condense(index, "REINFORCED_PLATE")
	stats := graph.Stats()

	// Assert
	assert.Zero(t, stats.MetaNodes)
	assert.Equal(t, 6, stats.TotalNodes)
	assert.Equal(t, 6, stats.RegularNodes)
	assert.Equal(t, 6, stats.Edges)
}

func TestCondensation_TargetRestrictsToReachableItems(t *testing.T) {
	index := helpers.MustIndex(helpers.AcyclicCatalog...)

	graph := condense(index, "IRON_PLATE")

	ids := make([]string, 0, len(graph.Nodes))
	for _, node := range graph.Nodes {
		ids = append(ids, node.ID)
	}
	assert.Equal(t, []string{"IRON_PLATE", "IRON_INGOT", "IRON_ORE"}, ids)
}

func TestCondensation_UnknownTargetIsEmpty(t *testing.T) {
	index := helpers.MustIndex(helpers.AcyclicCatalog...)

	graph := condense(index, "NOPE")

	assert.Equal(t, "NOPE", graph.Target)
	assert.Zero(t, graph.Stats().TotalNodes)
}

func TestCondensation_CollapsesCycleIntoMetaNode(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(helpers.MutualCycleCatalog...)

	// Act
	graph := condense(index, "")
	stats := graph.Stats()

	// Assert
	assert.Equal(t, 1, stats.MetaNodes)
	assert.Equal(t, 3, stats.RegularNodes)
	assert.Equal(t, 3, stats.Edges)

	metaA, ok := graph.NodeFor("A")
	require.True(t, ok)
	metaB, _ := graph.NodeFor("B")
	assert.Equal(t, metaA, metaB)

	meta, ok := graph.Node(metaA)
	require.True(t, ok)
	assert.True(t, meta.Meta)
	assert.True(t, meta.Circular)
	assert.ElementsMatch(t, []string{"A", "B"}, meta.Items)
	assert.Equal(t, 4, meta.RecipeCount)

	for _, edge := range graph.Edges {
		assert.NotEqual(t, edge.Source, edge.Target, "self edges are absorbed into meta nodes")
	}
}

func TestCondensation_MergesEdgesFromSeveralRecipes(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(
		"rotor_basic: ROD -> ROTOR",
		"rotor_alt: ROD + SCREW -> ROTOR",
		"rod: IRON_ORE -> ROD",
	)

	// Act
	graph := condense(index, "ROTOR")

	// Assert
	var rotorToRod *production.CondensationEdge
	for _, edge := range graph.Edges {
		if edge.Source == "ROTOR" && edge.Target == "ROD" {
			rotorToRod = edge
		}
	}
	require.NotNil(t, rotorToRod)
	assert.Equal(t, []string{"rotor_basic", "rotor_alt"}, rotorToRod.RecipeIDs)
	assert.True(t, rotorToRod.MultipleRecipes)
	assert.Equal(t, 3, graph.Stats().Edges)
}
