package catalog_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-resolver/internal/adapters/catalog"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

const ironYAML = `
recipes:
  - id: iron_ingot
    name: Iron Ingot
    duration_seconds: 2
    machine_id: smelter
    ingredients:
      - {item: IRON_ORE, amount: 1}
    outputs:
      - {item: IRON_INGOT, amount: 1}
  - id: iron_plate
    ingredients:
      - {item: IRON_INGOT, amount: 3}
    outputs:
      - {item: IRON_PLATE, amount: 2}
`

const screwJSON = `[
  {"id": "iron_rod", "ingredients": [{"item": "IRON_INGOT", "amount": 1}], "outputs": [{"item": "IRON_ROD", "amount": 1}]},
  {"id": "screw", "ingredients": [{"item": "IRON_ROD", "amount": 1}], "outputs": [{"item": "SCREW", "amount": 4}]}
]`

func TestLoader_LoadsYAMLAndJSONInPathOrder(t *testing.T) {
	// Arrange
	fsys := fstest.MapFS{
		"b/screws.json":    {Data: []byte(screwJSON)},
		"a/iron.yaml":      {Data: []byte(ironYAML)},
		"notes/readme.txt": {Data: []byte("ignored")},
	}
	loader := catalog.NewFSLoader(fsys, "recipes", []string{"**/*.yaml", "**/*.json"})

	// Act
	result, err := loader.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"a/iron.yaml", "b/screws.json"}, result.Files)
	require.Len(t, result.Recipes, 4)
	assert.Equal(t, "iron_ingot", result.Recipes[0].ID)
	assert.Equal(t, "Iron Ingot", result.Recipes[0].Name)
	assert.Equal(t, "smelter", result.Recipes[0].MachineID)
	assert.Equal(t, float64(2), result.Recipes[0].Duration.Seconds())
	assert.Equal(t, "screw", result.Recipes[3].ID)

	index := result.Index()
	assert.True(t, index.HasRecipes("SCREW"))
	assert.Equal(t, []string{"IRON_INGOT"}, index.Ingredients("IRON_ROD"))
}

func TestLoader_RejectsDuplicateRecipeAcrossFiles(t *testing.T) {
	// Arrange
	fsys := fstest.MapFS{
		"one.json": {Data: []byte(`[{"id": "x", "outputs": [{"item": "X", "amount": 1}]}]`)},
		"two.json": {Data: []byte(`[{"id": "x", "outputs": [{"item": "Y", "amount": 1}]}]`)},
	}
	loader := catalog.NewFSLoader(fsys, "recipes", []string{"*.json"})

	// Act
	_, err := loader.Load(context.Background())

	// Assert
	var dup *recipe.ErrDuplicateRecipe
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "x", dup.RecipeID)
}

func TestLoader_ReportsParseErrorsWithFileName(t *testing.T) {
	// Arrange
	fsys := fstest.MapFS{
		"broken.yaml": {Data: []byte("recipes: [")},
	}
	loader := catalog.NewFSLoader(fsys, "recipes", []string{"*.yaml"})

	// Act
	_, err := loader.Load(context.Background())

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestLoader_Matches(t *testing.T) {
	loader := catalog.NewFSLoader(fstest.MapFS{}, "recipes", []string{"**/*.yaml"})

	assert.True(t, loader.Matches("tier1/iron.yaml"))
	assert.True(t, loader.Matches("iron.yaml"))
	assert.False(t, loader.Matches("iron.json"))
}

func TestEncodeDecode_PreservesRecipeFields(t *testing.T) {
	// Arrange
	original := recipe.NewRecipe("alt_screw", "Cast Screw", "constructor", 0).
		AddIngredient("IRON_INGOT", 5).
		AddOutput("SCREW", 20)
	original.Alternate = true

	// Act
	data, err := catalog.Encode("out.yaml", []*recipe.Recipe{original})
	require.NoError(t, err)
	docs, err := catalog.Decode("out.yaml", data)

	// Assert
	require.NoError(t, err)
	require.Len(t, docs, 1)
	decoded := docs[0].ToRecipe()
	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Ingredients, decoded.Ingredients)
	assert.Equal(t, original.Outputs, decoded.Outputs)
	assert.True(t, decoded.Alternate)
}
