package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
)

func TestCondensationNode_Label(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{name: "single item", items: []string{"SCREW"}, want: "SCREW"},
		{name: "meta node", items: []string{"B", "A"}, want: "B + A"},
		{name: "three members", items: []string{"X", "Y", "Z"}, want: "X + Y + Z"},
		{name: "no items", items: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &production.CondensationNode{Items: tt.items}
			assert.Equal(t, tt.want, node.Label())
		})
	}
}

func TestCondensationGraph_StatsSplitMetaNodes(t *testing.T) {
	// Arrange
	graph := production.NewCondensationGraph("")
	graph.AddNode(&production.CondensationNode{ID: "cycle-0", Items: []string{"A", "B"}, Meta: true, Circular: true})
	graph.AddNode(&production.CondensationNode{ID: "PRODUCT", Items: []string{"PRODUCT"}})
	graph.AddEdge(&production.CondensationEdge{Source: "PRODUCT", Target: "cycle-0", RecipeIDs: []string{"product"}})

	// Act
	stats := graph.Stats()

	// Assert
	assert.Equal(t, production.CondensationStats{TotalNodes: 2, RegularNodes: 1, MetaNodes: 1, Edges: 1}, stats)
	id, ok := graph.NodeFor("B")
	assert.True(t, ok)
	assert.Equal(t, "cycle-0", id)
}
