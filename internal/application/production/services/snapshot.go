package services

import (
	"sync"
	"time"

	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// Snapshot pairs a recipe index with the circular analysis derived from it
type Snapshot struct {
	Index    *recipe.Index
	Analysis *production.CircularAnalysis
	Version  int
	LoadedAt time.Time
	Source   string
}

// SnapshotStore holds the current snapshot. Replacing the index always
// recomputes the analysis, so the two can never drift apart.
type SnapshotStore struct {
	mu       sync.RWMutex
	current  *Snapshot
	analyzer *CycleAnalyzer
	clock    func() time.Time
}

// NewSnapshotStore creates a store seeded with index (which may be empty)
func NewSnapshotStore(index *recipe.Index, source string) *SnapshotStore {
	store := &SnapshotStore{
		analyzer: NewCycleAnalyzer(),
		clock:    time.Now,
	}
	if index == nil {
		index = recipe.NewIndex(nil)
	}
	store.current = store.build(index, source, 1)
	return store
}

func (s *SnapshotStore) build(index *recipe.Index, source string, version int) *Snapshot {
	return &Snapshot{
		Index:    index,
		Analysis: s.analyzer.Analyze(index),
		Version:  version,
		LoadedAt: s.clock(),
		Source:   source,
	}
}

// Current returns the active snapshot. Snapshots are immutable and safe to
// use after a later Replace.
func (s *SnapshotStore) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace installs a new index and returns the snapshot built from it
func (s *SnapshotStore) Replace(index *recipe.Index, source string) *Snapshot {
	s.mu.RLock()
	next := s.current.Version + 1
	s.mu.RUnlock()

	// Analysis runs outside the lock; readers keep the old snapshot meanwhile
	snapshot := s.build(index, source, next)

	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot.Version <= s.current.Version {
		snapshot.Version = s.current.Version + 1
	}
	s.current = snapshot
	return snapshot
}
