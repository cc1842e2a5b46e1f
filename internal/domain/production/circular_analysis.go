package production

import "sort"

// CircularAnalysis is the cycle classification of one recipe index snapshot.
//
// It is derived once per index and never mutated afterwards; recompute it
// whenever the index changes.
type CircularAnalysis struct {
	// Components lists every strongly connected component in emission order.
	// Items inside a component keep the order they were popped off the stack.
	Components [][]string `json:"components"`

	// ComponentIndex maps each item to its position in Components
	ComponentIndex map[string]int `json:"component_index"`

	// CircularItems holds items that belong to a circular component
	CircularItems map[string]bool `json:"circular_items"`

	// CircularRecipes holds recipe identifiers whose ingredients close a cycle
	CircularRecipes map[string]bool `json:"circular_recipes"`

	circularComponents map[int]bool
}

// NewCircularAnalysis assembles an analysis from its parts.
// circularComponents holds the positions in components classified as circular.
func NewCircularAnalysis(
	components [][]string,
	componentIndex map[string]int,
	circularComponents map[int]bool,
	circularRecipes map[string]bool,
) *CircularAnalysis {
	circularItems := make(map[string]bool)
	for idx := range circularComponents {
		for _, item := range components[idx] {
			circularItems[item] = true
		}
	}

	return &CircularAnalysis{
		Components:         components,
		ComponentIndex:     componentIndex,
		CircularItems:      circularItems,
		CircularRecipes:    circularRecipes,
		circularComponents: circularComponents,
	}
}

// IsCircularItem reports whether item belongs to a circular component
func (a *CircularAnalysis) IsCircularItem(item string) bool {
	return a.CircularItems[item]
}

// IsCircularRecipe reports whether the recipe closes a cycle
func (a *CircularAnalysis) IsCircularRecipe(recipeID string) bool {
	return a.CircularRecipes[recipeID]
}

// ComponentOf returns the component position of item
func (a *CircularAnalysis) ComponentOf(item string) (int, bool) {
	idx, ok := a.ComponentIndex[item]
	return idx, ok
}

// IsCircularComponent reports whether the component at idx is circular
func (a *CircularAnalysis) IsCircularComponent(idx int) bool {
	if a.circularComponents != nil {
		return a.circularComponents[idx]
	}
	// Deserialized analyses lose the private set; membership of any item is equivalent
	if idx < 0 || idx >= len(a.Components) || len(a.Components[idx]) == 0 {
		return false
	}
	return a.CircularItems[a.Components[idx][0]]
}

// CircularComponents returns the circular components in emission order
func (a *CircularAnalysis) CircularComponents() [][]string {
	result := make([][]string, 0)
	for idx, component := range a.Components {
		if a.IsCircularComponent(idx) {
			result = append(result, component)
		}
	}
	return result
}

// SortedCircularItems returns the circular item set as a sorted list
func (a *CircularAnalysis) SortedCircularItems() []string {
	return sortedKeys(a.CircularItems)
}

// SortedCircularRecipes returns the circular recipe set as a sorted list
func (a *CircularAnalysis) SortedCircularRecipes() []string {
	return sortedKeys(a.CircularRecipes)
}

func sortedKeys(set map[string]bool) []string {
	result := make([]string, 0, len(set))
	for key, member := range set {
		if member {
			result = append(result, key)
		}
	}
	sort.Strings(result)
	return result
}
