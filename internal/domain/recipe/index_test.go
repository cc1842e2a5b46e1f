package recipe_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

func ingot() *recipe.Recipe {
	return recipe.NewRecipe("iron_ingot", "Iron Ingot", "smelter", 0).
		AddIngredient("IRON_ORE", 1).
		AddOutput("IRON_INGOT", 1)
}

func alloyIngot() *recipe.Recipe {
	return recipe.NewRecipe("alloy_ingot", "", "foundry", 0).
		AddIngredient("IRON_ORE", 2).
		AddIngredient("COPPER_ORE", 1).
		AddOutput("IRON_INGOT", 3).
		AddOutput("SLAG", 1)
}

func TestIndex_PreservesSourceOrder(t *testing.T) {
	// Arrange
	a, b := ingot(), alloyIngot()

	// Act
	index := recipe.NewIndex([]*recipe.Recipe{a, b})

	// Assert
	assert.Equal(t, []*recipe.Recipe{a, b}, index.Recipes("IRON_INGOT"))
	assert.Equal(t, []string{"IRON_INGOT", "IRON_ORE", "SLAG", "COPPER_ORE"}, index.Items())
	assert.Equal(t, []string{"IRON_INGOT", "SLAG"}, index.ProducedItems())
	assert.Equal(t, []string{"IRON_ORE", "COPPER_ORE"}, index.Ingredients("IRON_INGOT"))
	assert.Equal(t, 4, index.Len())
	assert.Equal(t, 2, index.RecipeCount())
}

func TestIndex_Lookups(t *testing.T) {
	index := recipe.NewIndex([]*recipe.Recipe{ingot(), nil})

	r, ok := index.Recipe("iron_ingot")
	require.True(t, ok)
	assert.Equal(t, "Iron Ingot", r.Label())
	assert.True(t, index.Contains("IRON_ORE"))
	assert.False(t, index.HasRecipes("IRON_ORE"))
	assert.False(t, index.Contains("STEEL"))
	assert.Len(t, index.AllRecipes(), 1)
}

func TestRecipe_LabelFallsBackToID(t *testing.T) {
	assert.Equal(t, "alloy_ingot", alloyIngot().Label())
	assert.True(t, alloyIngot().Produces("SLAG"))
	assert.True(t, alloyIngot().Consumes("COPPER_ORE"))
	assert.Equal(t, []string{"IRON_ORE", "COPPER_ORE"}, alloyIngot().IngredientItems())
}

func TestValidate(t *testing.T) {
	// Arrange
	empty := recipe.NewRecipe("nothing", "", "", 0)

	// Act
	duplicateErr := recipe.Validate([]*recipe.Recipe{ingot(), ingot()})
	emptyErr := recipe.Validate([]*recipe.Recipe{empty})

	// Assert
	var duplicate *recipe.ErrDuplicateRecipe
	require.True(t, errors.As(duplicateErr, &duplicate))
	assert.Equal(t, "iron_ingot", duplicate.RecipeID)

	var emptyRecipe *recipe.ErrEmptyRecipe
	require.True(t, errors.As(emptyErr, &emptyRecipe))
	assert.NoError(t, recipe.Validate([]*recipe.Recipe{ingot(), alloyIngot()}))
}
