package recipe

import "time"

// ItemAmount pairs an item identifier with the quantity consumed or produced per cycle
type ItemAmount struct {
	Item   string  `json:"item" yaml:"item"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Recipe is a production rule: ingredients in, outputs out, in a given machine.
//
// Recipes are immutable once loaded into an Index. Everything downstream holds
// pointers into the index rather than copies.
type Recipe struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
	Ingredients []ItemAmount  `json:"ingredients" yaml:"ingredients"`
	Outputs     []ItemAmount  `json:"outputs" yaml:"outputs"`
	MachineID   string        `json:"machine_id" yaml:"machine_id"`
	Alternate   bool          `json:"alternate" yaml:"alternate"`
}

// NewRecipe creates a recipe with the given identity and machine.
// Ingredients and outputs are attached with AddIngredient / AddOutput.
func NewRecipe(id, name, machineID string, duration time.Duration) *Recipe {
	return &Recipe{
		ID:          id,
		Name:        name,
		Duration:    duration,
		Ingredients: make([]ItemAmount, 0),
		Outputs:     make([]ItemAmount, 0),
		MachineID:   machineID,
	}
}

// AddIngredient appends an ingredient and returns the recipe for chaining
func (r *Recipe) AddIngredient(item string, amount float64) *Recipe {
	r.Ingredients = append(r.Ingredients, ItemAmount{Item: item, Amount: amount})
	return r
}

// AddOutput appends an output and returns the recipe for chaining
func (r *Recipe) AddOutput(item string, amount float64) *Recipe {
	r.Outputs = append(r.Outputs, ItemAmount{Item: item, Amount: amount})
	return r
}

// Produces reports whether the recipe lists item among its outputs
func (r *Recipe) Produces(item string) bool {
	for _, out := range r.Outputs {
		if out.Item == item {
			return true
		}
	}
	return false
}

// Consumes reports whether the recipe lists item among its ingredients
func (r *Recipe) Consumes(item string) bool {
	for _, in := range r.Ingredients {
		if in.Item == item {
			return true
		}
	}
	return false
}

// IngredientItems returns the ingredient identifiers in source order
func (r *Recipe) IngredientItems() []string {
	items := make([]string, 0, len(r.Ingredients))
	for _, in := range r.Ingredients {
		items = append(items, in.Item)
	}
	return items
}

// Label returns the human label, falling back to the identifier
func (r *Recipe) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}
