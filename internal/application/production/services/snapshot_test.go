package services_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/test/helpers"
)

func TestSnapshotStore_ReplaceRecomputesAnalysis(t *testing.T) {
	// Arrange
	store := services.NewSnapshotStore(helpers.MustIndex(helpers.AcyclicCatalog...), "acyclic")
	before := store.Current()

	// Act
	after := store.Replace(helpers.MustIndex(helpers.MutualCycleCatalog...), "cyclic")

	// Assert
	assert.Equal(t, 1, before.Version)
	assert.Equal(t, 2, after.Version)
	assert.Equal(t, "cyclic", store.Current().Source)
	assert.Empty(t, before.Analysis.CircularItems)
	assert.True(t, after.Analysis.IsCircularItem("A"))
}

func TestSnapshotStore_NilIndexIsEmpty(t *testing.T) {
	store := services.NewSnapshotStore(nil, "")

	assert.Zero(t, store.Current().Index.Len())
	assert.NotNil(t, store.Current().Analysis)
}

func TestSnapshotStore_ConcurrentReplaceKeepsVersionsUnique(t *testing.T) {
	store := services.NewSnapshotStore(nil, "")
	index := helpers.MustIndex(helpers.AcyclicCatalog...)

	var wg sync.WaitGroup
	versions := make(chan int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			versions <- store.Replace(index, "concurrent").Version
		}()
	}
	wg.Wait()
	close(versions)

	seen := make(map[int]bool)
	for v := range versions {
		assert.False(t, seen[v], "version %d installed twice", v)
		seen[v] = true
	}
	assert.Equal(t, 21, store.Current().Version)
}
