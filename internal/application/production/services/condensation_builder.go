package services

import (
	"fmt"

	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// CondensationBuilder collapses every circular component of the recipe graph
// into a single meta-node, yielding a DAG for structural inspection.
type CondensationBuilder struct{}

// NewCondensationBuilder creates a new condensation builder
func NewCondensationBuilder() *CondensationBuilder {
	return &CondensationBuilder{}
}

// MetaNodeID returns the node identifier used for a collapsed component
func MetaNodeID(component int) string {
	return fmt.Sprintf("cycle-%d", component)
}

// Build condenses the subgraph reachable from target, or the whole index when
// target is empty.
func (b *CondensationBuilder) Build(
	index *recipe.Index,
	analysis *production.CircularAnalysis,
	target string,
) *production.CondensationGraph {
	var relevant []string
	if target != "" {
		if !index.Contains(target) {
			return production.NewCondensationGraph(target)
		}
		relevant = b.reachableFrom(index, target)
	} else {
		relevant = index.Items()
	}

	inScope := make(map[string]bool, len(relevant))
	for _, item := range relevant {
		inScope[item] = true
	}

	graph := production.NewCondensationGraph(target)
	b.addNodes(graph, index, analysis, relevant, inScope)
	b.addEdges(graph, index, relevant, inScope)

	return graph
}

// reachableFrom walks ingredient edges breadth-first from target.
// The visited set makes cycles terminate the walk.
func (b *CondensationBuilder) reachableFrom(index *recipe.Index, target string) []string {
	result := make([]string, 0)
	visited := map[string]bool{target: true}
	queue := []string{target}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, ingredient := range index.Ingredients(current) {
			if visited[ingredient] {
				continue
			}
			visited[ingredient] = true
			queue = append(queue, ingredient)
		}
	}

	return result
}

func (b *CondensationBuilder) addNodes(
	graph *production.CondensationGraph,
	index *recipe.Index,
	analysis *production.CircularAnalysis,
	relevant []string,
	inScope map[string]bool,
) {
	emitted := make(map[int]bool)

	for _, item := range relevant {
		component, ok := analysis.ComponentOf(item)
		if ok && analysis.IsCircularComponent(component) {
			if emitted[component] {
				continue
			}
			emitted[component] = true

			members := make([]string, 0)
			recipeCount := 0
			for _, member := range analysis.Components[component] {
				if !inScope[member] {
					continue
				}
				members = append(members, member)
				recipeCount += len(index.Recipes(member))
			}

			graph.AddNode(&production.CondensationNode{
				ID:          MetaNodeID(component),
				Items:       members,
				RecipeCount: recipeCount,
				Circular:    true,
				Meta:        true,
				Component:   component,
			})
			continue
		}

		if !ok {
			component = -1
		}
		graph.AddNode(&production.CondensationNode{
			ID:          item,
			Items:       []string{item},
			RecipeCount: len(index.Recipes(item)),
			Component:   component,
		})
	}
}

func (b *CondensationBuilder) addEdges(
	graph *production.CondensationGraph,
	index *recipe.Index,
	relevant []string,
	inScope map[string]bool,
) {
	type pair struct{ source, target string }
	edges := make(map[pair]*production.CondensationEdge)
	recipeSeen := make(map[pair]map[string]bool)

	for _, item := range relevant {
		source, ok := graph.NodeFor(item)
		if !ok {
			continue
		}

		for _, r := range index.Recipes(item) {
			for _, in := range r.Ingredients {
				if !inScope[in.Item] {
					continue
				}
				targetID, ok := graph.NodeFor(in.Item)
				if !ok || targetID == source {
					continue
				}

				key := pair{source: source, target: targetID}
				edge, exists := edges[key]
				if !exists {
					edge = &production.CondensationEdge{
						Source:    source,
						Target:    targetID,
						RecipeIDs: make([]string, 0, 1),
					}
					edges[key] = edge
					recipeSeen[key] = make(map[string]bool)
					graph.AddEdge(edge)
				}

				if !recipeSeen[key][r.ID] {
					recipeSeen[key][r.ID] = true
					edge.RecipeIDs = append(edge.RecipeIDs, r.ID)
				}
				edge.MultipleRecipes = len(edge.RecipeIDs) > 1
			}
		}
	}
}
