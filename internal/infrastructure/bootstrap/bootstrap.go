package bootstrap

import (
	"context"
	"fmt"

	"github.com/andrescamacho/recipe-resolver/internal/adapters/catalog"
	"github.com/andrescamacho/recipe-resolver/internal/adapters/metrics"
	"github.com/andrescamacho/recipe-resolver/internal/adapters/persistence"
	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/queries"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/config"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/database"
)

// RecipeSource selects where recipes are loaded from
type RecipeSource int

const (
	// SourceCatalog reads catalog files from the configured directory
	SourceCatalog RecipeSource = iota
	// SourceDatabase reads recipes previously imported into the database
	SourceDatabase
)

// LoadedRecipes is an index together with a description of its origin
type LoadedRecipes struct {
	Index  *recipe.Index
	Source string
	Files  int
}

// RawPolicy builds the raw material policy from resolver settings
func RawPolicy(cfg config.ResolverConfig) (recipe.RawMaterialPolicy, error) {
	base := cfg.BaseResources
	if len(base) == 0 {
		base = recipe.DefaultBaseResources
	}
	policy, err := recipe.NewConfiguredRawPolicy(base, cfg.RawPatterns)
	if err != nil {
		return nil, err
	}
	return policy, nil
}

// CatalogLoader returns the loader for the configured catalog directory
func CatalogLoader(cfg *config.Config) *catalog.Loader {
	return catalog.NewLoader(cfg.Catalog.Dir, cfg.Catalog.Patterns)
}

// LoadRecipes reads recipes from source
func LoadRecipes(ctx context.Context, cfg *config.Config, source RecipeSource) (*LoadedRecipes, error) {
	switch source {
	case SourceDatabase:
		db, err := database.Open(&cfg.Database)
		if err != nil {
			return nil, err
		}
		defer database.Close(db)

		recipes, err := persistence.NewGormRecipeRepository(db).FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return &LoadedRecipes{
			Index:  recipe.NewIndex(recipes),
			Source: fmt.Sprintf("%s database", cfg.Database.Type),
		}, nil

	default:
		result, err := CatalogLoader(cfg).Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog from %s: %w", cfg.Catalog.Dir, err)
		}
		return &LoadedRecipes{
			Index:  result.Index(),
			Source: cfg.Catalog.Dir,
			Files:  len(result.Files),
		}, nil
	}
}

// MediatorOptions carries the optional collaborators of NewMediator
type MediatorOptions struct {
	Recorder       queries.ResolutionRecorder
	QueryCollector *metrics.QueryMetricsCollector
}

// NewMediator wires every production query handler behind logging and,
// when a collector is given, metrics middleware
func NewMediator(cfg *config.Config, snapshots queries.SnapshotProvider, opts MediatorOptions) (common.Mediator, error) {
	policy, err := RawPolicy(cfg.Resolver)
	if err != nil {
		return nil, err
	}

	m := common.NewMediator()
	m.RegisterMiddleware(common.LoggingMiddleware())
	if opts.QueryCollector != nil {
		m.RegisterMiddleware(metrics.PrometheusMiddleware(opts.QueryCollector))
	}

	err = queries.RegisterHandlers(m, queries.Dependencies{
		Snapshots: snapshots,
		Policy:    policy,
		Limits: queries.Limits{
			MaxDepth:        cfg.Resolver.MaxDepth,
			MaxCombinations: cfg.Resolver.MaxCombinations,
		},
		Recorder: opts.Recorder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}

	return m, nil
}
