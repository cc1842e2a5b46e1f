package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
	"github.com/andrescamacho/recipe-resolver/test/helpers"
)

func generate(
	t *testing.T,
	index *recipe.Index,
	target string,
	treatAsRaw bool,
	opts services.GenerateOptions,
) *production.GenerationResult {
	t.Helper()
	analysis := services.NewCycleAnalyzer().Analyze(index)
	return services.NewCombinationGenerator(nil).Generate(target, index, analysis, treatAsRaw, opts)
}

// recordingTracer keeps every event it sees
type recordingTracer struct {
	cuts      []production.CircularEdge
	fallbacks []string
	limits    []string
}

func (r *recordingTracer) CycleCut(edge production.CircularEdge, depth int) {
	r.cuts = append(r.cuts, edge)
}

func (r *recordingTracer) RecipeFallback(item string, recipeID string) {
	r.fallbacks = append(r.fallbacks, item+"="+recipeID)
}

func (r *recordingTracer) LimitReached(item string, reason string, depth int) {
	r.limits = append(r.limits, reason)
}

func TestGenerate_RecipeWithoutIngredients(t *testing.T) {
	// Arrange
	index := helpers.MustIndex("pump: -> WATER_TANK")

	// Act
	result := generate(t, index, "WATER_TANK", false, services.GenerateOptions{})

	// Assert
	require.Equal(t, 1, result.Count())
	combination := result.Combinations[0]
	assert.Len(t, combination.RecipeChain, 1)
	assert.Empty(t, combination.RawMaterials)
	assert.False(t, result.Truncated)
}

func TestGenerate_TwoRawIngredients(t *testing.T) {
	// Arrange
	index := helpers.MustIndex("alloy: IRON_ORE + COPPER_ORE -> ALLOY")

	// Act
	result := generate(t, index, "ALLOY", false, services.GenerateOptions{})

	// Assert
	require.Equal(t, 1, result.Count())
	assert.Equal(t, []string{"COPPER_ORE", "IRON_ORE"}, result.Combinations[0].RawMaterials)
	assert.Equal(t, map[string]string{"ALLOY": "alloy"}, result.Combinations[0].Recipes)
}

func TestGenerate_RawTargetYieldsNothing(t *testing.T) {
	index := helpers.MustIndex(helpers.AcyclicCatalog...)

	assert.Zero(t, generate(t, index, "IRON_ORE", false, services.GenerateOptions{}).Count())
	assert.Zero(t, generate(t, index, "UNKNOWN_ITEM", false, services.GenerateOptions{}).Count())
}

func TestGenerate_ChainListsIngredientsBeforeConsumers(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(helpers.AcyclicCatalog...)

	// Act
	result := generate(t, index, "REINFORCED_PLATE", false, services.GenerateOptions{})

	// Assert
	require.Equal(t, 1, result.Count())
	chain := result.Combinations[0].RecipeChain
	position := make(map[string]int, len(chain))
	for i, step := range chain {
		position[step.Item] = i
	}
	require.Len(t, position, 5)
	assert.Less(t, position["IRON_INGOT"], position["IRON_PLATE"])
	assert.Less(t, position["IRON_INGOT"], position["IRON_ROD"])
	assert.Less(t, position["IRON_ROD"], position["SCREW"])
	assert.Equal(t, "REINFORCED_PLATE", chain[len(chain)-1].Item)
	assert.Equal(t, []string{"IRON_ORE"}, result.Combinations[0].RawMaterials)
}

func TestGenerate_CartesianProductOfAlternates(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(alternatesCatalog...)

	// Act
	result := generate(t, index, "FRAME", false, services.GenerateOptions{})

	// Assert
	assert.Equal(t, 9, result.Count())
	assert.False(t, result.Truncated)
	ids := make(map[string]bool)
	for _, id := range result.IDs() {
		ids[id] = true
	}
	assert.Len(t, ids, 9)
}

// Three ways to make each of the two ingredients of FRAME
var alternatesCatalog = []helpers.RecipeLine{
	"frame: PLATE + ROD -> FRAME",
	"plate_1: IRON_ORE -> PLATE",
	"plate_2: COPPER_ORE -> PLATE",
	"plate_3: COAL -> PLATE",
	"rod_1: IRON_ORE -> ROD",
	"rod_2: LIMESTONE -> ROD",
	"rod_3: SULFUR -> ROD",
}

func TestGenerate_CeilingCapsResult(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(alternatesCatalog...)
	tracer := &recordingTracer{}

	// Act
	result := generate(t, index, "FRAME", false, services.GenerateOptions{MaxCombinations: 4, Tracer: tracer})

	// Assert
	assert.Equal(t, 4, result.Count())
	assert.True(t, result.Truncated)
	assert.False(t, result.DepthLimited)
}

func TestGenerate_CeilingAboveTrueCountIsNotTruncated(t *testing.T) {
	index := helpers.MustIndex(alternatesCatalog...)

	result := generate(t, index, "FRAME", false, services.GenerateOptions{MaxCombinations: 9})

	assert.Equal(t, 9, result.Count())
	assert.False(t, result.Truncated)
}

// Both ingredients of T share Z, which has three leaf recipes
var diamondCatalog = []helpers.RecipeLine{
	"top: A + B -> T",
	"a: Z -> A",
	"b: Z -> B",
	"z_1: IRON_ORE -> Z",
	"z_2: COPPER_ORE -> Z",
	"z_3: COAL -> Z",
}

// wideDiamond builds T from four ingredients that all need Z, and gives Z n recipes
func wideDiamond(n int) *recipe.Index {
	lines := []helpers.RecipeLine{
		"top: A + B + C + D -> T",
		"a: Z -> A",
		"b: Z -> B",
		"c: Z -> C",
		"d: Z -> D",
	}
	for i := 1; i <= n; i++ {
		lines = append(lines, helpers.RecipeLine(fmt.Sprintf("z_%d: IRON_ORE -> Z", i)))
	}
	return helpers.MustIndex(lines...)
}

func TestGenerate_SharedIngredientKeepsFirstChoice(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(diamondCatalog...)

	// Act
	result := generate(t, index, "T", false, services.GenerateOptions{})

	// Assert
	require.Equal(t, 3, result.Count())
	assert.False(t, result.Truncated)
	for i, combination := range result.Combinations {
		assert.Equal(t, fmt.Sprintf("z_%d", i+1), combination.Recipes["Z"])
		assert.Equal(t, "a", combination.Recipes["A"])
		assert.Equal(t, "b", combination.Recipes["B"])
	}
	assert.Equal(t, []string{"IRON_ORE"}, result.Combinations[0].RawMaterials)

	// 3 Z products under each of A and B, 3 products for each of A and B, 9 at the root
	assert.Equal(t, 21, result.Merged)
}

func TestGenerate_MergeBudgetBoundsNestedWork(t *testing.T) {
	// Arrange
	index := wideDiamond(30)
	tracer := &recordingTracer{}

	// Act
	result := generate(t, index, "T", false, services.GenerateOptions{MaxWork: 300, Tracer: tracer})

	// Assert
	assert.Equal(t, 300, result.Merged)
	assert.True(t, result.Truncated)
	assert.False(t, result.DepthLimited)
	assert.Contains(t, tracer.limits, services.LimitWork)
	require.Equal(t, 1, result.Count())
	assert.Equal(t, "z_1", result.Combinations[0].Recipes["Z"])
}

func TestGenerate_DefaultCeilingBoundsCollapsingProducts(t *testing.T) {
	// Arrange
	index := wideDiamond(30)

	// Act
	result := generate(t, index, "T", false, services.GenerateOptions{})

	// Assert
	assert.LessOrEqual(t, result.Merged, services.DefaultMaxCombinations*services.DefaultWorkFactor)
	assert.True(t, result.Truncated)
	assert.NotZero(t, result.Count())
}

func TestGenerate_DepthLimitTruncates(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(helpers.AcyclicCatalog...)
	tracer := &recordingTracer{}

	// Act
	result := generate(t, index, "SCREW", false, services.GenerateOptions{MaxDepth: 2, Tracer: tracer})

	// Assert
	assert.Zero(t, result.Count())
	assert.True(t, result.Truncated)
	assert.True(t, result.DepthLimited)
	assert.Contains(t, tracer.limits, services.LimitDepth)
}

func TestGenerate_MutualCycleIsCut(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(
		"a: B -> A",
		"b: A -> B",
	)
	tracer := &recordingTracer{}

	// Act
	result := generate(t, index, "A", false, services.GenerateOptions{Tracer: tracer})

	// Assert
	require.Equal(t, 1, result.Count())
	combination := result.Combinations[0]
	require.Len(t, combination.CircularEdges, 1)
	assert.Equal(t, production.CircularEdge{From: "B", To: "A", RecipeUsing: "b"}, combination.CircularEdges[0])
	assert.Equal(t, map[string]string{"A": "a", "B": "b"}, combination.Recipes)
	assert.Equal(t, []string{"A=a", "B=b"}, tracer.fallbacks)
	assert.Len(t, tracer.cuts, 1)
}

func TestGenerate_PrefersRecipesOutsideTheCycle(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(helpers.MutualCycleCatalog...)

	// Act
	result := generate(t, index, "PRODUCT", false, services.GenerateOptions{})

	// Assert
	require.Equal(t, 1, result.Count())
	combination := result.Combinations[0]
	assert.Equal(t, "a_from_raw", combination.Recipes["A"])
	assert.Equal(t, "b_from_raw", combination.Recipes["B"])
	assert.Empty(t, combination.CircularEdges)
	assert.Equal(t, []string{"COPPER_ORE", "IRON_ORE"}, combination.RawMaterials)
}

func TestGenerate_RawOverrideStopsAtMatchingItems(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(helpers.AcyclicCatalog...)
	analysis := services.NewCycleAnalyzer().Analyze(index)
	policy, err := recipe.NewConfiguredRawPolicy(recipe.DefaultBaseResources, []string{"*_INGOT"})
	require.NoError(t, err)
	generator := services.NewCombinationGenerator(policy)

	// Act
	withOverride := generator.Generate("SCREW", index, analysis, true, services.GenerateOptions{})
	withoutOverride := generator.Generate("SCREW", index, analysis, false, services.GenerateOptions{})

	// Assert
	require.Equal(t, 1, withOverride.Count())
	assert.Equal(t, []string{"IRON_INGOT"}, withOverride.Combinations[0].RawMaterials)
	assert.Len(t, withOverride.Combinations[0].RecipeChain, 2)

	require.Equal(t, 1, withoutOverride.Count())
	assert.Equal(t, []string{"IRON_ORE"}, withoutOverride.Combinations[0].RawMaterials)
	assert.Len(t, withoutOverride.Combinations[0].RecipeChain, 3)
}

func TestGenerate_EveryRawMaterialSatisfiesTheRawRule(t *testing.T) {
	index := helpers.MustIndex(append(helpers.MutualCycleCatalog, alternatesCatalog...)...)
	analysis := services.NewCycleAnalyzer().Analyze(index)
	policy, err := recipe.NewConfiguredRawPolicy(recipe.DefaultBaseResources, []string{"PLATE"})
	require.NoError(t, err)
	generator := services.NewCombinationGenerator(policy)

	for _, treatAsRaw := range []bool{false, true} {
		for _, target := range index.ProducedItems() {
			result := generator.Generate(target, index, analysis, treatAsRaw, services.GenerateOptions{})
			for _, combination := range result.Combinations {
				for _, item := range combination.RawMaterials {
					assert.True(t, recipe.IsRawMaterial(item, index, policy, treatAsRaw),
						"%s is not raw for target %s (treatAsRaw=%t)", item, target, treatAsRaw)
				}
			}
		}
	}
}

func TestGenerate_IsDeterministicWithReusedCache(t *testing.T) {
	// Arrange
	index := helpers.MustIndex(append(helpers.MutualCycleCatalog, alternatesCatalog...)...)
	analysis := services.NewCycleAnalyzer().Analyze(index)
	generator := services.NewCombinationGenerator(nil)
	cache := services.NewMemoCache()

	// Act
	first := generator.Generate("FRAME", index, analysis, false, services.GenerateOptions{Cache: cache})
	require.Positive(t, cache.Len())
	other := generator.Generate("PRODUCT", index, analysis, false, services.GenerateOptions{Cache: cache})
	second := generator.Generate("FRAME", index, analysis, false, services.GenerateOptions{Cache: cache})

	// Assert
	assert.Equal(t, first.IDs(), second.IDs())
	assert.Equal(t, 1, other.Count())
	assert.Equal(t, "PRODUCT", other.Combinations[0].Target)
}
