package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory recipe store owned by t.
// Each call gets its own database, so repository tests never see each other's catalogs.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("open in-memory recipe store: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
