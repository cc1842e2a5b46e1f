package recipe_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

func TestConfiguredRawPolicy_MatchesOverridePatterns(t *testing.T) {
	// Arrange
	policy, err := recipe.NewConfiguredRawPolicy([]string{"IRON_ORE"}, []string{"*_INGOT", "PLASTIC"})
	require.NoError(t, err)

	// Act & Assert
	assert.True(t, policy.IsBaseResource("IRON_ORE"))
	assert.False(t, policy.IsBaseResource("COPPER_ORE"))
	assert.True(t, policy.IsRawOverride("IRON_INGOT"))
	assert.True(t, policy.IsRawOverride("PLASTIC"))
	assert.False(t, policy.IsRawOverride("IRON_PLATE"))
}

func TestConfiguredRawPolicy_RejectsInvalidPattern(t *testing.T) {
	_, err := recipe.NewConfiguredRawPolicy(nil, []string{"[unclosed"})

	var invalid *recipe.ErrInvalidPattern
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "[unclosed", invalid.Pattern)
}

func TestDefaultRawPolicy(t *testing.T) {
	policy := recipe.DefaultRawPolicy()

	for _, item := range recipe.DefaultBaseResources {
		assert.True(t, policy.IsBaseResource(item), item)
	}
	assert.False(t, policy.IsRawOverride("IRON_INGOT"))
}

func TestIsRawMaterial(t *testing.T) {
	// Arrange
	index := recipe.NewIndex([]*recipe.Recipe{ingot()})
	policy, err := recipe.NewConfiguredRawPolicy(recipe.DefaultBaseResources, []string{"*_INGOT"})
	require.NoError(t, err)

	// Act & Assert
	assert.True(t, recipe.IsRawMaterial("IRON_ORE", index, policy, false), "base resource")
	assert.True(t, recipe.IsRawMaterial("MYSTERY", index, policy, false), "no recipe")
	assert.False(t, recipe.IsRawMaterial("IRON_INGOT", index, policy, false), "produced item")
	assert.True(t, recipe.IsRawMaterial("IRON_INGOT", index, policy, true), "raw override")
}
