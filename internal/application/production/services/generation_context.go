package services

// Default safety bounds for a combination search
const (
	DefaultMaxDepth        = 20
	DefaultMaxCombinations = 1000

	// DefaultWorkFactor sizes the merge budget relative to the combination ceiling
	DefaultWorkFactor = 100
)

// GenerateOptions tunes one top-level generation. Zero values fall back to defaults.
type GenerateOptions struct {
	MaxDepth        int
	MaxCombinations int

	// MaxWork caps the product elements built at every depth, duplicates
	// included. Zero means MaxCombinations * DefaultWorkFactor.
	MaxWork int

	// Cache is cleared before use; nil means a fresh cache per call
	Cache *MemoCache

	// Tracer observes the search; nil means no tracing
	Tracer ResolutionTracer
}

func (o GenerateOptions) withDefaults() GenerateOptions {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxCombinations <= 0 {
		o.MaxCombinations = DefaultMaxCombinations
	}
	if o.MaxWork <= 0 {
		o.MaxWork = o.MaxCombinations * DefaultWorkFactor
	}
	if o.Cache == nil {
		o.Cache = NewMemoCache()
	} else {
		o.Cache.Reset()
	}
	if o.Tracer == nil {
		o.Tracer = NoopTracer{}
	}
	return o
}

// generationContext carries the limits and running counters of one top-level
// generation. It is threaded through every recursive call; nothing about a
// search lives outside it.
type generationContext struct {
	maxDepth        int
	maxCombinations int
	maxWork         int

	// produced counts distinct combinations accepted for the target so far
	produced int

	// work counts every product element merged, at any depth, kept or not
	work int

	explored     int
	truncated    bool
	depthLimited bool
	workLimited  bool
}

func newGenerationContext(opts GenerateOptions) *generationContext {
	return &generationContext{
		maxDepth:        opts.MaxDepth,
		maxCombinations: opts.MaxCombinations,
		maxWork:         opts.MaxWork,
	}
}

// remaining returns how many more combinations the budget allows
func (c *generationContext) remaining() int {
	left := c.maxCombinations - c.produced
	if left < 0 {
		return 0
	}
	return left
}

func (c *generationContext) exhausted() bool {
	return c.produced >= c.maxCombinations
}

// workExhausted reports whether the merge budget is spent
func (c *generationContext) workExhausted() bool {
	return c.work >= c.maxWork
}

// branchSet accumulates distinct branches for one item up to a limit.
// The target's set also advances the shared budget as it grows.
type branchSet struct {
	ctx    *generationContext
	limit  int
	isRoot bool
	seen   map[string]bool
	items  []branch
}

func newBranchSet(ctx *generationContext, isRoot bool) *branchSet {
	return &branchSet{
		ctx:    ctx,
		limit:  ctx.remaining(),
		isRoot: isRoot,
		seen:   make(map[string]bool),
		items:  make([]branch, 0),
	}
}

func (s *branchSet) full() bool {
	if s.isRoot {
		return s.ctx.exhausted()
	}
	return len(s.items) >= s.limit
}

// add keeps b unless a branch with the same path signature is already present
func (s *branchSet) add(b branch) {
	signature := b.path.Signature()
	if s.seen[signature] {
		return
	}
	s.seen[signature] = true
	s.items = append(s.items, b)
	if s.isRoot {
		s.ctx.produced++
	}
}
