package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	grpcadapter "github.com/andrescamacho/recipe-resolver/internal/adapters/grpc"
)

// NewBatchCommand creates the batch command
func NewBatchCommand() *cobra.Command {
	var (
		flags       generationFlags
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch <item>...",
		Short: "Count production combinations for several items at once",
		Long: `Resolve several targets concurrently against the same recipe snapshot and
summarize the outcome per target.

Examples:
  recipe-resolver batch SCREW ROTOR STATOR MOTOR
  recipe-resolver batch COMPUTER SUPERCOMPUTER --concurrency 2 --daemon`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if !cmd.Flags().Changed("concurrency") {
				concurrency = s.cfg.Resolver.BatchConcurrency
			}

			reply, err := s.api.GenerateBatch(s.ctx, grpcadapter.BatchRequest{
				Targets:         args,
				TreatAsRaw:      flags.resolveTreatAsRaw(cmd, s),
				MaxDepth:        flags.maxDepth,
				MaxCombinations: flags.maxCombinations,
				Concurrency:     concurrency,
			})
			if err != nil {
				return err
			}
			if done, err := s.printJSON(reply); done {
				return err
			}

			fmt.Fprintf(s.out, "%s (snapshot v%d)\n", s.styles.Heading.Render("Batch results"), reply.SnapshotVersion)

			t := newTable(!noColor)
			t.SetOutputMirror(s.out)
			t.AppendHeader(table.Row{"Target", "Combinations", "Truncated", "Explored", "Duration"})
			for _, r := range reply.Results {
				truncated := ""
				if r.Result.Truncated {
					truncated = s.styles.Warning.Render("yes")
				}
				t.AppendRow(table.Row{
					s.styles.Item.Render(r.Result.Target),
					r.Result.Count(),
					truncated,
					r.Result.Explored,
					fmt.Sprintf("%dms", r.DurationMS),
				})
			}
			t.Render()
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Targets resolved at once (0 resolves all together)")

	return cmd
}
