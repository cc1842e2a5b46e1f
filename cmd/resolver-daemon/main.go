package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/andrescamacho/recipe-resolver/internal/adapters/catalog"
	"github.com/andrescamacho/recipe-resolver/internal/adapters/grpc"
	"github.com/andrescamacho/recipe-resolver/internal/adapters/metrics"
	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/config"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/logging"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/pidfile"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: search ./resolver.yaml)")
	fromDB := flag.Bool("from-db", false, "Load recipes from the database instead of catalog files")
	flag.Parse()

	fmt.Println("Recipe Resolver Daemon v0.1.0")
	fmt.Println("=============================")

	cfg := config.MustLoadConfig(*configPath)

	source := bootstrap.SourceCatalog
	if *fromDB {
		source = bootstrap.SourceDatabase
	}

	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Hold(func() error { return run(cfg, source) }); err != nil {
		log.Printf("Fatal error: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, source bootstrap.RecipeSource) error {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(common.WithLogger(context.Background(), logger))
	defer cancel()

	// 1. Metrics
	var (
		resolverMetrics *metrics.ResolverMetricsCollector
		queryMetrics    *metrics.QueryMetricsCollector
		metricsServer   *metrics.Server
	)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		resolverMetrics = metrics.NewResolverMetricsCollector()
		if err := resolverMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register resolver metrics: %w", err)
		}
		queryMetrics = metrics.NewQueryMetricsCollector()
		if err := queryMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register query metrics: %w", err)
		}

		metricsServer = metrics.NewServer(cfg.Metrics)
		if err := metricsServer.Start(); err != nil {
			return err
		}
		fmt.Printf("Metrics available at http://%s%s\n", metricsServer.Addr(), cfg.Metrics.Path)
	}

	// 2. Recipes
	loaded, err := bootstrap.LoadRecipes(ctx, cfg, source)
	if err != nil {
		return err
	}
	store := services.NewSnapshotStore(loaded.Index, loaded.Source)
	snapshot := store.Current()
	logger.Log("INFO", "Recipes loaded", map[string]interface{}{
		"source":           loaded.Source,
		"files":            loaded.Files,
		"items":            snapshot.Index.Len(),
		"recipes":          snapshot.Index.RecipeCount(),
		"circular_items":   len(snapshot.Analysis.CircularItems),
		"circular_recipes": len(snapshot.Analysis.CircularRecipes),
	})

	// 3. Query handlers
	opts := bootstrap.MediatorOptions{QueryCollector: queryMetrics}
	if resolverMetrics != nil {
		opts.Recorder = resolverMetrics
		resolverMetrics.RecordSnapshot(snapshot)
	}
	med, err := bootstrap.NewMediator(cfg, store, opts)
	if err != nil {
		return err
	}

	// 4. Catalog watcher. Database-backed snapshots only change on restart.
	var reloader grpc.Reloader
	if source == bootstrap.SourceCatalog {
		watcher := catalog.NewWatcher(bootstrap.CatalogLoader(cfg), store, cfg.Catalog.Debounce,
			func(s *services.Snapshot, err error) {
				if resolverMetrics != nil {
					resolverMetrics.RecordReload(s, err)
				}
			})
		reloader = watcher

		if cfg.Catalog.Watch {
			go func() {
				if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
					logger.Log("ERROR", "Catalog watcher stopped", map[string]interface{}{
						"error": err.Error(),
					})
				}
			}()
		}
	}

	// 5. Daemon server
	socketPath := cfg.Daemon.SocketPath
	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	service := grpc.NewResolverService(med, store, reloader)
	daemonServer, err := grpc.NewDaemonServer(service, socketPath, grpc.ServerOptions{
		RateLimit:       cfg.Daemon.RateLimit,
		Burst:           cfg.Daemon.Burst,
		ShutdownTimeout: cfg.Daemon.ShutdownTimeout,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create daemon server: %w", err)
	}

	fmt.Printf("\n✓ Daemon is ready on %s\n", socketPath)
	fmt.Println("Press Ctrl+C to stop")

	if err := daemonServer.Start(); err != nil {
		return fmt.Errorf("daemon server error: %w", err)
	}
	cancel()

	if metricsServer != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Log("WARNING", "Metrics server shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	fmt.Println("\nDaemon stopped")
	return nil
}
