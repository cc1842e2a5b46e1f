package helpers

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// RecipeLine is a compact recipe description for fixtures:
// "id: A + B -> C" or "id: A, B -> C".
// Amounts default to 1.
type RecipeLine string

// ParseRecipe turns a compact recipe line into a Recipe
func ParseRecipe(raw RecipeLine) (*recipe.Recipe, error) {
	line := strings.TrimSpace(string(raw))
	id, body, ok := strings.Cut(line, ":")
	if !ok {
		return nil, fmt.Errorf("recipe %q: missing id", line)
	}
	inputs, outputs, ok := strings.Cut(body, "->")
	if !ok {
		return nil, fmt.Errorf("recipe %q: missing ->", line)
	}

	id = strings.TrimSpace(id)
	r := recipe.NewRecipe(id, id, "", 0)
	for _, item := range splitItems(inputs) {
		r.AddIngredient(item, 1)
	}
	for _, item := range splitItems(outputs) {
		r.AddOutput(item, 1)
	}
	return r, nil
}

// MustRecipes parses every line, panicking on malformed fixtures
func MustRecipes(lines ...RecipeLine) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, 0, len(lines))
	for _, line := range lines {
		r, err := ParseRecipe(line)
		if err != nil {
			panic(err)
		}
		recipes = append(recipes, r)
	}
	return recipes
}

// MustIndex builds an index from compact recipe lines
func MustIndex(lines ...RecipeLine) *recipe.Index {
	return recipe.NewIndex(MustRecipes(lines...))
}

func splitItems(list string) []string {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == '+' || r == ','
	})
	items := make([]string, 0, len(fields))
	for _, f := range fields {
		if item := strings.TrimSpace(f); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Fixture catalogs used across unit and BDD tests
var (
	// Iron chain with no cycles. Base resources only at the bottom.
	AcyclicCatalog = []RecipeLine{
		"iron_ingot: IRON_ORE -> IRON_INGOT",
		"iron_plate: IRON_INGOT -> IRON_PLATE",
		"iron_rod: IRON_INGOT -> IRON_ROD",
		"screw: IRON_ROD -> SCREW",
		"reinforced_plate: IRON_PLATE + SCREW -> REINFORCED_PLATE",
	}

	// Two alternates for each of A and B where one alternate of each feeds the other
	MutualCycleCatalog = []RecipeLine{
		"a_from_b: B -> A",
		"a_from_raw: IRON_ORE -> A",
		"b_from_a: A -> B",
		"b_from_raw: COPPER_ORE -> B",
		"product: A + B -> PRODUCT",
	}
)
