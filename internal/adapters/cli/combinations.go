package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	grpcadapter "github.com/andrescamacho/recipe-resolver/internal/adapters/grpc"
)

// generationFlags are shared by combinations and batch
type generationFlags struct {
	treatAsRaw      bool
	maxDepth        int
	maxCombinations int
}

func (f *generationFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.treatAsRaw, "treat-as-raw", false,
		"Stop at items matching the configured raw override patterns")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0,
		"Maximum recursion depth (0 uses the configured default)")
	cmd.Flags().IntVar(&f.maxCombinations, "max-combinations", 0,
		"Maximum combinations per target (0 uses the configured default)")
}

// resolveTreatAsRaw returns the flag when given, otherwise the configured default
func (f *generationFlags) resolveTreatAsRaw(cmd *cobra.Command, s *session) bool {
	if cmd.Flags().Changed("treat-as-raw") {
		return f.treatAsRaw
	}
	return s.cfg.Resolver.TreatAsRaw
}

// NewCombinationsCommand creates the combinations command
func NewCombinationsCommand() *cobra.Command {
	var (
		flags    generationFlags
		showTree bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "combinations <item>",
		Short: "Enumerate the acyclic production combinations of an item",
		Long: `Enumerate every distinct way of choosing one recipe per intermediate item to
produce the target. Circular recipes are avoided whenever an alternative exists.

The search is bounded by a depth limit and a combination ceiling; hitting
either marks the result as truncated.

Examples:
  recipe-resolver combinations MODULAR_FRAME
  recipe-resolver combinations COMPUTER --max-combinations 20 --tree
  recipe-resolver combinations PLASTIC --treat-as-raw -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			reply, err := s.api.GenerateCombinations(s.ctx, grpcadapter.GenerateRequest{
				Target:          args[0],
				TreatAsRaw:      flags.resolveTreatAsRaw(cmd, s),
				MaxDepth:        flags.maxDepth,
				MaxCombinations: flags.maxCombinations,
			})
			if err != nil {
				return err
			}
			if done, err := s.printJSON(reply); done {
				return err
			}

			printGeneration(s, reply, showTree, limit)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&showTree, "tree", false, "Render each combination as a dependency tree")
	cmd.Flags().IntVar(&limit, "show", 10, "Number of combinations to print (0 prints all)")

	return cmd
}

func printGeneration(s *session, reply *grpcadapter.GenerateReply, showTree bool, limit int) {
	result := reply.Result
	formatter := NewChainFormatter(s.styles)

	fmt.Fprintf(s.out, "%s %s\n", s.styles.Heading.Render("Combinations for"), s.styles.Item.Render(result.Target))
	fmt.Fprintf(s.out, "%d found, %d items explored, %d cache hits, %dms\n",
		result.Count(), result.Explored, result.CacheHits, reply.DurationMS)
	if result.Truncated {
		reason := "combination ceiling reached"
		if result.DepthLimited {
			reason = "depth limit reached"
		}
		fmt.Fprintln(s.out, s.styles.Warning.Render("Result truncated: "+reason))
	}

	if result.Count() == 0 {
		fmt.Fprintln(s.out, s.styles.Muted.Render("Nothing to manufacture: the item is raw or has no acyclic recipe chain"))
		return
	}

	shown := result.Combinations
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	if showTree {
		for i, c := range shown {
			fmt.Fprintf(s.out, "\n#%d %s (%s)\n", i+1, s.styles.Muted.Render(c.ID), formatter.FormatSummary(c))
			fmt.Fprint(s.out, formatter.FormatTree(c))
		}
	} else {
		t := newTable(!noColor)
		t.SetOutputMirror(s.out)
		t.AppendHeader(table.Row{"#", "Chain", "Raw materials", "Cycles cut"})
		for i, c := range shown {
			t.AppendRow(table.Row{i + 1, formatter.FormatCompactChain(c), strings.Join(c.RawMaterials, ", "), len(c.CircularEdges)})
		}
		t.Render()
	}

	if len(shown) < result.Count() {
		fmt.Fprintf(s.out, "... %d more (use --show 0 to print all)\n", result.Count()-len(shown))
	}
}

