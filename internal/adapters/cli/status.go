package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/pidfile"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the loaded snapshot and daemon state",
		Long: `Show which recipes are loaded: their source, version and size. With --daemon
the running daemon is queried; otherwise the catalog is loaded locally and the
daemon PID file is only inspected.

Examples:
  recipe-resolver status
  recipe-resolver status --daemon -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			reply, err := s.api.Status(s.ctx)
			if err != nil {
				return err
			}
			if done, err := s.printJSON(reply); done {
				return err
			}

			mode := "local"
			if useDaemon {
				mode = fmt.Sprintf("daemon (pid %d)", reply.PID)
			}

			fmt.Fprintln(s.out, s.styles.Heading.Render("Resolver status"))
			fmt.Fprintf(s.out, "Mode:             %s\n", mode)
			fmt.Fprintf(s.out, "Source:           %s\n", reply.Source)
			fmt.Fprintf(s.out, "Snapshot:         v%d loaded %s\n", reply.SnapshotVersion, reply.LoadedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(s.out, "Items:            %d\n", reply.Items)
			fmt.Fprintf(s.out, "Recipes:          %d\n", reply.Recipes)
			fmt.Fprintf(s.out, "Circular items:   %d\n", reply.CircularItems)
			fmt.Fprintf(s.out, "Circular recipes: %d\n", reply.CircularRecipes)

			if !useDaemon {
				fmt.Fprintf(s.out, "Daemon:           %s\n", daemonState(s.cfg.Daemon.PIDFile))
			}
			return nil
		},
	}

	return cmd
}

func daemonState(path string) string {
	pid, err := pidfile.New(path).Running()
	switch {
	case err == nil:
		return fmt.Sprintf("running (pid %d)", pid)
	case errors.Is(err, pidfile.ErrNotRunning):
		return "not running"
	default:
		return fmt.Sprintf("unknown (%v)", err)
	}
}
