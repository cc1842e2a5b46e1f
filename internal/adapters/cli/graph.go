package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	grpcadapter "github.com/andrescamacho/recipe-resolver/internal/adapters/grpc"
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
)

// NewGraphCommand creates the graph command
func NewGraphCommand() *cobra.Command {
	var (
		target    string
		showEdges bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the condensed dependency graph",
		Long: `Collapse every circular component into a meta-node and show the resulting
acyclic graph, either for the items reachable from --target or for the whole
catalog.

Examples:
  recipe-resolver graph
  recipe-resolver graph --target COMPUTER --edges`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			reply, err := s.api.BuildCondensation(s.ctx, grpcadapter.CondensationRequest{Target: target})
			if err != nil {
				return err
			}
			if done, err := s.printJSON(reply); done {
				return err
			}

			printCondensation(s, reply.Graph, reply.Stats, showEdges)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Restrict the graph to items reachable from this item")
	cmd.Flags().BoolVar(&showEdges, "edges", false, "List edges as well as nodes")

	return cmd
}

func printCondensation(s *session, graph *production.CondensationGraph, stats production.CondensationStats, showEdges bool) {
	title := "Condensation graph"
	if graph.Target != "" {
		title += " for " + graph.Target
	}
	fmt.Fprintln(s.out, s.styles.Heading.Render(title))
	fmt.Fprintf(s.out, "%d nodes (%d regular, %d meta), %d edges\n",
		stats.TotalNodes, stats.RegularNodes, stats.MetaNodes, stats.Edges)

	if stats.TotalNodes == 0 {
		return
	}

	t := newTable(!noColor)
	t.SetOutputMirror(s.out)
	t.AppendHeader(table.Row{"Node", "Items", "Recipes"})
	for _, node := range graph.Nodes {
		id := node.ID
		if node.Meta {
			id = s.styles.Circular.Render(id)
		}
		t.AppendRow(table.Row{id, strings.Join(node.Items, ", "), node.RecipeCount})
	}
	t.Render()

	if !showEdges {
		return
	}

	edges := newTable(!noColor)
	edges.SetOutputMirror(s.out)
	edges.AppendHeader(table.Row{"Consumer", "Ingredient", "Via recipes"})
	for _, edge := range graph.Edges {
		via := strings.Join(edge.RecipeIDs, ", ")
		if edge.MultipleRecipes {
			via = s.styles.Recipe.Render(via)
		}
		edges.AppendRow(table.Row{edge.Source, edge.Target, via})
	}
	edges.Render()
}
