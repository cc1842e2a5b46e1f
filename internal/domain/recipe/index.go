package recipe

// Index maps each item to the ordered list of recipes that output it.
//
// Insertion order from the source data is preserved for both the recipes of an
// item and the item iteration order; it is the tie-break order everywhere a
// choice between recipes has to be made. An Index is never mutated after
// NewIndex returns, so it is safe to share between goroutines.
type Index struct {
	byItem    map[string][]*Recipe
	byID      map[string]*Recipe
	items     []string
	seen      map[string]bool
	produced  []string
	ingredOf  map[string][]string
	recipeSeq []*Recipe
}

// NewIndex builds an index from recipes in source order.
// A recipe with several outputs is listed under each of them.
func NewIndex(recipes []*Recipe) *Index {
	idx := &Index{
		byItem:    make(map[string][]*Recipe),
		byID:      make(map[string]*Recipe),
		items:     make([]string, 0),
		seen:      make(map[string]bool),
		produced:  make([]string, 0),
		ingredOf:  make(map[string][]string),
		recipeSeq: make([]*Recipe, 0, len(recipes)),
	}

	for _, r := range recipes {
		if r == nil {
			continue
		}
		idx.recipeSeq = append(idx.recipeSeq, r)
		idx.byID[r.ID] = r

		for _, out := range r.Outputs {
			idx.observe(out.Item)
			if _, exists := idx.byItem[out.Item]; !exists {
				idx.produced = append(idx.produced, out.Item)
			}
			idx.byItem[out.Item] = append(idx.byItem[out.Item], r)
		}
		for _, in := range r.Ingredients {
			idx.observe(in.Item)
		}
	}

	for _, item := range idx.produced {
		idx.ingredOf[item] = distinctIngredients(idx.byItem[item])
	}

	return idx
}

func (idx *Index) observe(item string) {
	if idx.seen[item] {
		return
	}
	idx.seen[item] = true
	idx.items = append(idx.items, item)
}

func distinctIngredients(recipes []*Recipe) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, r := range recipes {
		for _, in := range r.Ingredients {
			if seen[in.Item] {
				continue
			}
			seen[in.Item] = true
			result = append(result, in.Item)
		}
	}
	return result
}

// Recipes returns the recipes producing item in source order.
// The returned slice must not be modified.
func (idx *Index) Recipes(item string) []*Recipe {
	return idx.byItem[item]
}

// HasRecipes reports whether any recipe outputs item
func (idx *Index) HasRecipes(item string) bool {
	return len(idx.byItem[item]) > 0
}

// Contains reports whether item appears anywhere in the index, as output or ingredient
func (idx *Index) Contains(item string) bool {
	return idx.seen[item]
}

// Items returns every item, output or ingredient, in first-seen order
func (idx *Index) Items() []string {
	result := make([]string, len(idx.items))
	copy(result, idx.items)
	return result
}

// ProducedItems returns the items that have at least one recipe, in first-seen order
func (idx *Index) ProducedItems() []string {
	result := make([]string, len(idx.produced))
	copy(result, idx.produced)
	return result
}

// Ingredients returns the distinct ingredient items over every recipe of item.
// These are the outgoing edges of item in the dependency graph.
func (idx *Index) Ingredients(item string) []string {
	return idx.ingredOf[item]
}

// Recipe looks up a recipe by identifier
func (idx *Index) Recipe(id string) (*Recipe, bool) {
	r, ok := idx.byID[id]
	return r, ok
}

// AllRecipes returns every recipe in source order
func (idx *Index) AllRecipes() []*Recipe {
	result := make([]*Recipe, len(idx.recipeSeq))
	copy(result, idx.recipeSeq)
	return result
}

// Len returns the number of distinct items
func (idx *Index) Len() int {
	return len(idx.items)
}

// RecipeCount returns the number of recipes
func (idx *Index) RecipeCount() int {
	return len(idx.recipeSeq)
}
