package production

import "strings"

// CondensationNode is either a single item or a meta-node wrapping one circular component
type CondensationNode struct {
	ID          string   `json:"id"`
	Items       []string `json:"items"`
	RecipeCount int      `json:"recipe_count"`
	Circular    bool     `json:"circular"`
	Meta        bool     `json:"meta"`
	Component   int      `json:"component"`
}

// Label returns a display label for the node
func (n *CondensationNode) Label() string {
	return strings.Join(n.Items, " + ")
}

// CondensationEdge is a dependency between two nodes: Source consumes Target
type CondensationEdge struct {
	Source          string   `json:"source"`
	Target          string   `json:"target"`
	RecipeIDs       []string `json:"recipe_ids"`
	MultipleRecipes bool     `json:"multiple_recipes"`
}

// CondensationStats summarizes a condensation graph
type CondensationStats struct {
	TotalNodes   int `json:"total_nodes"`
	RegularNodes int `json:"regular_nodes"`
	MetaNodes    int `json:"meta_nodes"`
	Edges        int `json:"edges"`
}

// CondensationGraph is the recipe graph with every circular component collapsed
type CondensationGraph struct {
	Target string              `json:"target,omitempty"`
	Nodes  []*CondensationNode `json:"nodes"`
	Edges  []*CondensationEdge `json:"edges"`

	nodeOf map[string]string
}

// NewCondensationGraph creates an empty graph, optionally scoped to a target
func NewCondensationGraph(target string) *CondensationGraph {
	return &CondensationGraph{
		Target: target,
		Nodes:  make([]*CondensationNode, 0),
		Edges:  make([]*CondensationEdge, 0),
		nodeOf: make(map[string]string),
	}
}

// AddNode appends node and maps each of its items to it
func (g *CondensationGraph) AddNode(node *CondensationNode) {
	g.Nodes = append(g.Nodes, node)
	for _, item := range node.Items {
		g.nodeOf[item] = node.ID
	}
}

// AddEdge appends an edge
func (g *CondensationGraph) AddEdge(edge *CondensationEdge) {
	g.Edges = append(g.Edges, edge)
}

// NodeFor returns the node identifier an item was mapped to
func (g *CondensationGraph) NodeFor(item string) (string, bool) {
	if g.nodeOf == nil {
		// Decoded graphs carry no lookup table
		for _, node := range g.Nodes {
			for _, member := range node.Items {
				if member == item {
					return node.ID, true
				}
			}
		}
		return "", false
	}
	id, ok := g.nodeOf[item]
	return id, ok
}

// Node returns the node with the given identifier
func (g *CondensationGraph) Node(id string) (*CondensationNode, bool) {
	for _, node := range g.Nodes {
		if node.ID == id {
			return node, true
		}
	}
	return nil, false
}

// Stats derives the summary counts from the node and edge lists
func (g *CondensationGraph) Stats() CondensationStats {
	stats := CondensationStats{
		TotalNodes: len(g.Nodes),
		Edges:      len(g.Edges),
	}
	for _, node := range g.Nodes {
		if node.Meta {
			stats.MetaNodes++
		} else {
			stats.RegularNodes++
		}
	}
	return stats
}
