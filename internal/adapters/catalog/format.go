package catalog

import (
	"time"

	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// File is the on-disk catalog document, shared by the JSON and YAML encodings
type File struct {
	Recipes []RecipeDocument `json:"recipes" yaml:"recipes"`
}

// RecipeDocument is one recipe as written in a catalog file
type RecipeDocument struct {
	ID              string              `json:"id" yaml:"id"`
	Name            string              `json:"name,omitempty" yaml:"name,omitempty"`
	DurationSeconds float64             `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
	Ingredients     []recipe.ItemAmount `json:"ingredients" yaml:"ingredients"`
	Outputs         []recipe.ItemAmount `json:"outputs" yaml:"outputs"`
	MachineID       string              `json:"machine_id,omitempty" yaml:"machine_id,omitempty"`
	Alternate       bool                `json:"alternate,omitempty" yaml:"alternate,omitempty"`
}

// ToRecipe converts the document to a domain recipe
func (d RecipeDocument) ToRecipe() *recipe.Recipe {
	duration := time.Duration(d.DurationSeconds * float64(time.Second))
	r := recipe.NewRecipe(d.ID, d.Name, d.MachineID, duration)
	r.Alternate = d.Alternate
	for _, in := range d.Ingredients {
		r.AddIngredient(in.Item, in.Amount)
	}
	for _, out := range d.Outputs {
		r.AddOutput(out.Item, out.Amount)
	}
	return r
}

// FromRecipe converts a domain recipe to its document form
func FromRecipe(r *recipe.Recipe) RecipeDocument {
	return RecipeDocument{
		ID:              r.ID,
		Name:            r.Name,
		DurationSeconds: r.Duration.Seconds(),
		Ingredients:     append([]recipe.ItemAmount(nil), r.Ingredients...),
		Outputs:         append([]recipe.ItemAmount(nil), r.Outputs...),
		MachineID:       r.MachineID,
		Alternate:       r.Alternate,
	}
}
