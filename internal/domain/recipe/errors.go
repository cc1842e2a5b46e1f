package recipe

import "fmt"

// Domain errors for recipe catalogs. The resolver core never returns these;
// they surface only while loading or importing recipe data.

// ErrDuplicateRecipe indicates two recipes share an identifier
type ErrDuplicateRecipe struct {
	RecipeID string
	Source   string
}

func (e *ErrDuplicateRecipe) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("duplicate recipe %s in %s", e.RecipeID, e.Source)
	}
	return fmt.Sprintf("duplicate recipe %s", e.RecipeID)
}

// ErrEmptyRecipe indicates a recipe with neither ingredients nor outputs
type ErrEmptyRecipe struct {
	RecipeID string
}

func (e *ErrEmptyRecipe) Error() string {
	return fmt.Sprintf("recipe %s has no ingredients and no outputs", e.RecipeID)
}

// ErrInvalidPattern indicates a raw-override pattern that cannot be matched
type ErrInvalidPattern struct {
	Pattern string
}

func (e *ErrInvalidPattern) Error() string {
	return fmt.Sprintf("invalid raw override pattern: %q", e.Pattern)
}
