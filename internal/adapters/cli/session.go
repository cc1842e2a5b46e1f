package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	grpcadapter "github.com/andrescamacho/recipe-resolver/internal/adapters/grpc"
	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/config"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/logging"
)

// session is the per-command environment: configuration, a resolver to
// query and the output settings
type session struct {
	ctx    context.Context
	cfg    *config.Config
	api    grpcadapter.ResolverAPI
	logger *logging.SlogLogger
	styles Styles
	out    io.Writer
}

// loadConfig loads configuration and applies user preferences and global flags on top
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if handler, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := handler.Load(); err == nil {
			if userCfg.DefaultCatalog != "" {
				cfg.Catalog.Dir = userCfg.DefaultCatalog
			}
			if userCfg.TreatAsRaw != nil {
				cfg.Resolver.TreatAsRaw = *userCfg.TreatAsRaw
			}
		}
	}

	if catalogDir != "" {
		cfg.Catalog.Dir = catalogDir
	}
	if socketPath != "" {
		cfg.Daemon.SocketPath = socketPath
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

// openSession prepares a resolver for cmd: the daemon client with --daemon,
// otherwise an in-process resolver over freshly loaded recipes
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	s := &session{
		ctx:    common.WithLogger(cmd.Context(), logger),
		cfg:    cfg,
		logger: logger,
		styles: NewStyles(!noColor && outputFormat != "json"),
		out:    cmd.OutOrStdout(),
	}

	if useDaemon {
		client, err := grpcadapter.NewResolverClient(cfg.Daemon.SocketPath)
		if err != nil {
			logger.Close()
			return nil, err
		}

		pingCtx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx); err != nil {
			client.Close()
			logger.Close()
			return nil, fmt.Errorf("resolver daemon not reachable at %s: %w", cfg.Daemon.SocketPath, err)
		}

		s.api = client
		return s, nil
	}

	source := bootstrap.SourceCatalog
	if fromDatabase {
		source = bootstrap.SourceDatabase
	}

	loaded, err := bootstrap.LoadRecipes(s.ctx, cfg, source)
	if err != nil {
		logger.Close()
		return nil, err
	}

	store := services.NewSnapshotStore(loaded.Index, loaded.Source)
	mediator, err := bootstrap.NewMediator(cfg, store, bootstrap.MediatorOptions{})
	if err != nil {
		logger.Close()
		return nil, err
	}

	s.api = grpcadapter.NewLocalClient(grpcadapter.NewResolverService(mediator, store, nil))
	return s, nil
}

// Close releases the resolver connection and log file
func (s *session) Close() {
	if s.api != nil {
		s.api.Close()
	}
	if s.logger != nil {
		s.logger.Close()
	}
}

// printJSON writes v indented when --output json is selected and reports whether it did
func (s *session) printJSON(v interface{}) (bool, error) {
	if outputFormat != "json" {
		return false, nil
	}
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}
