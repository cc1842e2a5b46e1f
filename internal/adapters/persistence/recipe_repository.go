package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// GormRecipeRepository implements recipe.RecipeRepository using GORM
type GormRecipeRepository struct {
	db    *gorm.DB
	clock func() time.Time
}

// NewGormRecipeRepository creates a new GORM recipe repository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db, clock: time.Now}
}

// SaveAll replaces the stored catalog with recipes, preserving their order
func (r *GormRecipeRepository) SaveAll(ctx context.Context, recipes []*recipe.Recipe) error {
	if err := recipe.Validate(recipes); err != nil {
		return err
	}

	importedAt := r.clock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&RecipeItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipe items: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&RecipeModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipes: %w", err)
		}

		if len(recipes) == 0 {
			return nil
		}

		models := make([]*RecipeModel, 0, len(recipes))
		for i, rec := range recipes {
			models = append(models, r.recipeToModel(rec, i, importedAt))
		}

		if err := tx.CreateInBatches(models, 100).Error; err != nil {
			return fmt.Errorf("failed to save recipes: %w", err)
		}
		return nil
	})
}

// FindAll returns every stored recipe in source order
func (r *GormRecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("position ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", result.Error)
	}

	return r.modelsToRecipes(models), nil
}

// FindByOutput returns the recipes producing item in source order
func (r *GormRecipeRepository) FindByOutput(ctx context.Context, item string) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id IN (?)", r.db.Model(&RecipeItemModel{}).
			Select("recipe_id").
			Where("role = ? AND item = ?", RoleOutput, item)).
		Order("position ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find recipes for %s: %w", item, result.Error)
	}

	return r.modelsToRecipes(models), nil
}

// Count returns the number of stored recipes
func (r *GormRecipeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

func (r *GormRecipeRepository) recipeToModel(rec *recipe.Recipe, position int, importedAt time.Time) *RecipeModel {
	items := make([]RecipeItemModel, 0, len(rec.Ingredients)+len(rec.Outputs))
	for i, in := range rec.Ingredients {
		items = append(items, RecipeItemModel{
			RecipeID: rec.ID,
			Role:     RoleIngredient,
			Item:     in.Item,
			Amount:   in.Amount,
			Position: i,
		})
	}
	for i, out := range rec.Outputs {
		items = append(items, RecipeItemModel{
			RecipeID: rec.ID,
			Role:     RoleOutput,
			Item:     out.Item,
			Amount:   out.Amount,
			Position: i,
		})
	}

	return &RecipeModel{
		ID:         rec.ID,
		Name:       rec.Name,
		DurationMS: rec.Duration.Milliseconds(),
		MachineID:  rec.MachineID,
		Alternate:  rec.Alternate,
		Position:   position,
		Items:      items,
		ImportedAt: importedAt,
	}
}

func (r *GormRecipeRepository) modelsToRecipes(models []RecipeModel) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, 0, len(models))
	for _, m := range models {
		rec := recipe.NewRecipe(m.ID, m.Name, m.MachineID, time.Duration(m.DurationMS)*time.Millisecond)
		rec.Alternate = m.Alternate
		for _, item := range m.Items {
			switch item.Role {
			case RoleIngredient:
				rec.AddIngredient(item.Item, item.Amount)
			case RoleOutput:
				rec.AddOutput(item.Item, item.Amount)
			}
		}
		recipes = append(recipes, rec)
	}
	return recipes
}
