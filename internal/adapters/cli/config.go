package cli

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage recipe resolver configuration settings.

Configuration is loaded from multiple sources with priority:
1. Command line flags
2. User preferences (~/.recipe-resolver/config.json)
3. Environment variables (RR_* prefix)
4. Config file (resolver.yaml)
5. Default values

Examples:
  recipe-resolver config show
  recipe-resolver config set-catalog ./recipes
  recipe-resolver config set-treat-as-raw true
  recipe-resolver config clear`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCatalogCommand())
	cmd.AddCommand(newConfigSetTreatAsRawCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := handler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Recipe Resolver Configuration")
			fmt.Fprintln(out, "=============================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", handler.GetConfigPath())
			fmt.Fprintf(out, "  Default catalog:  %s\n", valueOrUnset(userCfg.DefaultCatalog))
			if userCfg.TreatAsRaw != nil {
				fmt.Fprintf(out, "  Treat as raw:     %t\n", *userCfg.TreatAsRaw)
			} else {
				fmt.Fprintf(out, "  Treat as raw:     (not set)\n")
			}

			fmt.Fprintln(out, "\nResolver:")
			fmt.Fprintf(out, "  Max depth:        %d\n", cfg.Resolver.MaxDepth)
			fmt.Fprintf(out, "  Max combinations: %d\n", cfg.Resolver.MaxCombinations)
			fmt.Fprintf(out, "  Treat as raw:     %t\n", cfg.Resolver.TreatAsRaw)
			fmt.Fprintf(out, "  Raw patterns:     %s\n", valueOrUnset(strings.Join(cfg.Resolver.RawPatterns, ", ")))
			fmt.Fprintf(out, "  Batch workers:    %d\n", cfg.Resolver.BatchConcurrency)

			fmt.Fprintln(out, "\nCatalog:")
			fmt.Fprintf(out, "  Directory:        %s\n", cfg.Catalog.Dir)
			fmt.Fprintf(out, "  Patterns:         %s\n", strings.Join(cfg.Catalog.Patterns, ", "))
			fmt.Fprintf(out, "  Watch:            %t (debounce %s)\n", cfg.Catalog.Watch, cfg.Catalog.Debounce)

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}

			fmt.Fprintln(out, "\nDaemon:")
			fmt.Fprintf(out, "  Socket path:      %s\n", cfg.Daemon.SocketPath)
			fmt.Fprintf(out, "  PID file:         %s\n", cfg.Daemon.PIDFile)
			fmt.Fprintf(out, "  Rate limit:       %g req/s (burst: %d)\n", cfg.Daemon.RateLimit, cfg.Daemon.Burst)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			return nil
		},
	}
}

func newConfigSetCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-catalog <dir>",
		Short: "Set the default catalog directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("invalid catalog directory: %w", err)
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetDefaultCatalog(dir); err != nil {
				return fmt.Errorf("failed to set default catalog: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default catalog set to %s\n", dir)
			return nil
		},
	}
}

func newConfigSetTreatAsRawCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-treat-as-raw <true|false>",
		Short: "Set the default for --treat-as-raw",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", args[0])
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetTreatAsRaw(value); err != nil {
				return fmt.Errorf("failed to set treat-as-raw: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Treat as raw defaults to %t\n", value)
			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored user preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.Clear(); err != nil {
				return fmt.Errorf("failed to clear user config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ User preferences cleared")
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
