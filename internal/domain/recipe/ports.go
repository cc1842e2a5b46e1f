package recipe

import "context"

// RecipeRepository defines the persistence interface for normalized recipe data
type RecipeRepository interface {
	// SaveAll replaces the stored catalog with recipes, preserving their order
	SaveAll(ctx context.Context, recipes []*Recipe) error

	// FindAll returns every stored recipe in source order
	FindAll(ctx context.Context) ([]*Recipe, error)

	// FindByOutput returns the recipes producing item in source order
	FindByOutput(ctx context.Context, item string) ([]*Recipe, error)
}

// Validate checks the invariants the core assumes of its input.
// Catalog loaders call it; the resolver itself does not.
func Validate(recipes []*Recipe) error {
	seen := make(map[string]bool, len(recipes))
	for _, r := range recipes {
		if seen[r.ID] {
			return &ErrDuplicateRecipe{RecipeID: r.ID}
		}
		seen[r.ID] = true
		if len(r.Ingredients) == 0 && len(r.Outputs) == 0 {
			return &ErrEmptyRecipe{RecipeID: r.ID}
		}
	}
	return nil
}
