package persistence

import (
	"time"
)

// Item roles stored in recipe_items.role
const (
	RoleIngredient = "ingredient"
	RoleOutput     = "output"
)

// RecipeModel represents the recipes table
type RecipeModel struct {
	ID         string            `gorm:"column:id;primaryKey;not null"`
	Name       string            `gorm:"column:name"`
	DurationMS int64             `gorm:"column:duration_ms;not null;default:0"`
	MachineID  string            `gorm:"column:machine_id;index"`
	Alternate  bool              `gorm:"column:alternate;not null;default:false"`
	Position   int               `gorm:"column:position;not null;index"` // source order
	Items      []RecipeItemModel `gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ImportedAt time.Time         `gorm:"column:imported_at;not null"`
}

func (RecipeModel) TableName() string {
	return "recipes"
}

// RecipeItemModel represents the recipe_items table: one row per ingredient or output
type RecipeItemModel struct {
	ID       uint    `gorm:"column:id;primaryKey;autoIncrement"`
	RecipeID string  `gorm:"column:recipe_id;not null;index"`
	Role     string  `gorm:"column:role;not null;index:idx_recipe_items_role_item"`
	Item     string  `gorm:"column:item;not null;index:idx_recipe_items_role_item"`
	Amount   float64 `gorm:"column:amount;not null"`
	Position int     `gorm:"column:position;not null"`
}

func (RecipeItemModel) TableName() string {
	return "recipe_items"
}
