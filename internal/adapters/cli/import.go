package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/recipe-resolver/internal/adapters/persistence"
	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/database"
	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/logging"
)

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import catalog files into the recipe database",
		Long: `Load and validate every catalog file, then replace the recipes stored in the
configured database with them. Later commands can read the database with
--from-db.

Examples:
  recipe-resolver import --catalog ./recipes
  recipe-resolver import --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer logger.Close()

			ctx := common.WithLogger(cmd.Context(), logger)
			styles := NewStyles(!noColor)
			out := cmd.OutOrStdout()

			result, err := bootstrap.CatalogLoader(cfg).Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load catalog from %s: %w", cfg.Catalog.Dir, err)
			}

			fmt.Fprintf(out, "Loaded %d recipes from %d files in %s\n",
				len(result.Recipes), len(result.Files), cfg.Catalog.Dir)
			if dryRun {
				fmt.Fprintln(out, styles.Muted.Render("Dry run: database not modified"))
				return nil
			}

			db, err := database.Open(&cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)

			repo := persistence.NewGormRecipeRepository(db)
			if err := repo.SaveAll(ctx, result.Recipes); err != nil {
				return fmt.Errorf("failed to import recipes: %w", err)
			}

			count, err := repo.Count(ctx)
			if err != nil {
				return err
			}

			logger.Log("INFO", "Catalog imported", map[string]interface{}{
				"recipes":  count,
				"files":    len(result.Files),
				"database": cfg.Database.Type,
			})
			fmt.Fprintf(out, "%s %d recipes stored in %s database\n",
				styles.Raw.Render("✓"), count, cfg.Database.Type)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the catalog without writing to the database")

	return cmd
}
