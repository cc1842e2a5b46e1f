package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewCyclesCommand creates the cycles command
func NewCyclesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Show circular dependencies in the recipe catalog",
		Long: `List every circular component of the recipe graph and the recipes that close
a cycle. Items in a circular component can each be produced from the others.

Examples:
  recipe-resolver cycles --catalog ./recipes
  recipe-resolver cycles --daemon -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			reply, err := s.api.AnalyzeCycles(s.ctx)
			if err != nil {
				return err
			}
			if done, err := s.printJSON(reply); done {
				return err
			}

			analysis := reply.Analysis
			fmt.Fprintf(s.out, "%s\n", s.styles.Heading.Render("Circular analysis"))
			fmt.Fprintf(s.out, "Snapshot v%d: %d items, %d recipes\n\n",
				reply.SnapshotVersion, reply.ItemCount, reply.RecipeCount)

			if len(analysis.CircularComponents()) == 0 {
				fmt.Fprintln(s.out, s.styles.Raw.Render("No circular dependencies"))
				return nil
			}

			t := newTable(!noColor)
			t.SetOutputMirror(s.out)
			t.AppendHeader(table.Row{"Component", "Items", "Size"})
			for idx, members := range analysis.Components {
				if !analysis.IsCircularComponent(idx) {
					continue
				}
				t.AppendRow(table.Row{idx, s.styles.Circular.Render(strings.Join(members, ", ")), len(members)})
			}
			t.Render()

			recipes := analysis.SortedCircularRecipes()
			fmt.Fprintf(s.out, "\n%s (%d)\n", s.styles.Heading.Render("Recipes closing a cycle"), len(recipes))
			for _, id := range recipes {
				fmt.Fprintf(s.out, "  %s\n", s.styles.Recipe.Render(id))
			}
			return nil
		},
	}

	return cmd
}
