package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath   string
	catalogDir   string
	fromDatabase bool
	useDaemon    bool
	socketPath   string
	outputFormat string
	noColor      bool
	verbose      bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "recipe-resolver",
		Short: "Recipe resolver - enumerate production chains over a recipe catalog",
		Long: `Recipe resolver analyzes a catalog of production recipes: it finds circular
dependencies, enumerates every acyclic way to produce an item, and condenses
the dependency graph into a DAG.

Recipes are read from catalog files (JSON or YAML), from a database populated
with 'import', or from a running resolver daemon.

Examples:
  recipe-resolver cycles --catalog ./recipes
  recipe-resolver combinations MODULAR_FRAME --max-combinations 50
  recipe-resolver combinations HEAVY_MODULAR_FRAME --treat-as-raw --tree
  recipe-resolver graph --target COMPUTER
  recipe-resolver batch SCREW ROTOR STATOR --daemon
  recipe-resolver import --catalog ./recipes`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./resolver.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog", "",
		"Catalog directory (overrides config and user default)")
	rootCmd.PersistentFlags().BoolVar(&fromDatabase, "from-db", false,
		"Load recipes from the database instead of catalog files")
	rootCmd.PersistentFlags().BoolVar(&useDaemon, "daemon", false,
		"Query the resolver daemon instead of resolving locally")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", getDefaultSocketPath(),
		"Path to daemon Unix socket")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format: table or json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewCyclesCommand())
	rootCmd.AddCommand(NewCombinationsCommand())
	rootCmd.AddCommand(NewBatchCommand())
	rootCmd.AddCommand(NewGraphCommand())
	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// getDefaultSocketPath returns the default socket path
func getDefaultSocketPath() string {
	if path := os.Getenv("RR_DAEMON_SOCKET_PATH"); path != "" {
		return path
	}
	return "/tmp/recipe-resolver.sock"
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
