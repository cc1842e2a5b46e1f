package services

import (
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// CycleAnalyzer finds the strongly connected components of the item dependency
// graph and classifies which items and recipes take part in a cycle.
//
// An edge A -> B exists whenever some recipe producing A lists B as an ingredient.
// The analyzer is stateless; every Analyze call owns its own bookkeeping.
type CycleAnalyzer struct{}

// NewCycleAnalyzer creates a new cycle analyzer
func NewCycleAnalyzer() *CycleAnalyzer {
	return &CycleAnalyzer{}
}

// tarjanState holds the bookkeeping for one run of Tarjan's algorithm
type tarjanState struct {
	index      *recipe.Index
	counter    int
	stack      []string
	onStack    map[string]bool
	discovery  map[string]int
	lowlink    map[string]int
	components [][]string
}

// Analyze computes the circular analysis of index.
//
// Vertices are visited in the index's first-seen item order, so the output is
// reproducible for a given catalog. The call never fails.
func (a *CycleAnalyzer) Analyze(index *recipe.Index) *production.CircularAnalysis {
	state := &tarjanState{
		index:      index,
		stack:      make([]string, 0),
		onStack:    make(map[string]bool),
		discovery:  make(map[string]int),
		lowlink:    make(map[string]int),
		components: make([][]string, 0),
	}

	for _, item := range index.Items() {
		if _, visited := state.discovery[item]; !visited {
			state.strongConnect(item)
		}
	}

	componentIndex := make(map[string]int)
	for idx, component := range state.components {
		for _, item := range component {
			componentIndex[item] = idx
		}
	}

	circularComponents := make(map[int]bool)
	for idx, component := range state.components {
		if len(component) > 1 || hasSelfLoop(index, component[0]) {
			circularComponents[idx] = true
		}
	}

	circularRecipes := make(map[string]bool)
	for idx := range circularComponents {
		for _, item := range state.components[idx] {
			for _, r := range index.Recipes(item) {
				if closesCycle(r, idx, componentIndex) {
					circularRecipes[r.ID] = true
				}
			}
		}
	}

	return production.NewCircularAnalysis(state.components, componentIndex, circularComponents, circularRecipes)
}

// strongConnect is the recursive part of Tarjan's algorithm
func (s *tarjanState) strongConnect(v string) {
	s.discovery[v] = s.counter
	s.lowlink[v] = s.counter
	s.counter++
	s.stack = append(s.stack, v)
	s.onStack[v] = true

	for _, w := range s.index.Ingredients(v) {
		if _, visited := s.discovery[w]; !visited {
			s.strongConnect(w)
			s.lowlink[v] = min(s.lowlink[v], s.lowlink[w])
		} else if s.onStack[w] {
			s.lowlink[v] = min(s.lowlink[v], s.discovery[w])
		}
	}

	// v is the root of a component: pop it off the stack
	if s.lowlink[v] == s.discovery[v] {
		component := make([]string, 0, 1)
		for {
			w := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			s.onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		s.components = append(s.components, component)
	}
}

// hasSelfLoop reports whether any recipe of item lists item as an ingredient
func hasSelfLoop(index *recipe.Index, item string) bool {
	for _, r := range index.Recipes(item) {
		if r.Consumes(item) {
			return true
		}
	}
	return false
}

// closesCycle reports whether r has an ingredient in the component at idx.
// A recipe can belong to a circular item yet lead entirely out of the cycle.
func closesCycle(r *recipe.Recipe, idx int, componentIndex map[string]int) bool {
	for _, in := range r.Ingredients {
		if c, ok := componentIndex[in.Item]; ok && c == idx {
			return true
		}
	}
	return false
}
