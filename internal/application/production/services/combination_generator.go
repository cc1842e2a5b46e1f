package services

import (
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// branch is one partial resolution of a subtree: the recipes chosen inside it
// and the cycles cut while choosing them
type branch struct {
	path  production.RecipePath
	edges []production.CircularEdge
}

func (b branch) merge(other branch) branch {
	edges := b.edges
	if len(other.edges) > 0 {
		edges = make([]production.CircularEdge, 0, len(b.edges)+len(other.edges))
		edges = append(edges, b.edges...)
		edges = append(edges, other.edges...)
	}
	return branch{
		path:  b.path.Merge(other.path),
		edges: edges,
	}
}

// CombinationGenerator enumerates the distinct acyclic ways of choosing one
// recipe per item to build a target.
//
// For each item the checks run in a fixed priority order: base resource, raw
// override, cycle, no recipe, then recipe selection and expansion. Ingredient
// result sets are combined by cartesian product. Search is bounded by a depth
// limit and a combination budget; hitting either truncates the result softly.
type CombinationGenerator struct {
	policy recipe.RawMaterialPolicy
}

// NewCombinationGenerator creates a generator using policy to recognise raw materials.
// A nil policy uses recipe.DefaultRawPolicy.
func NewCombinationGenerator(policy recipe.RawMaterialPolicy) *CombinationGenerator {
	if policy == nil {
		policy = recipe.DefaultRawPolicy()
	}
	return &CombinationGenerator{policy: policy}
}

// Policy returns the raw material policy in use
func (g *CombinationGenerator) Policy() recipe.RawMaterialPolicy {
	return g.policy
}

// resolution is the per-call state of one Generate invocation
type resolution struct {
	policy     recipe.RawMaterialPolicy
	index      *recipe.Index
	analysis   *production.CircularAnalysis
	treatAsRaw bool
	cache      *MemoCache
	tracer     ResolutionTracer
	ctx        *generationContext
	stack      *pathStack
}

// Generate returns every distinct combination producing target, up to the limits
// in opts. No combinations is a valid outcome, never an error.
func (g *CombinationGenerator) Generate(
	target string,
	index *recipe.Index,
	analysis *production.CircularAnalysis,
	treatAsRaw bool,
	opts GenerateOptions,
) *production.GenerationResult {
	opts = opts.withDefaults()

	run := &resolution{
		policy:     g.policy,
		index:      index,
		analysis:   analysis,
		treatAsRaw: treatAsRaw,
		cache:      opts.Cache,
		tracer:     opts.Tracer,
		ctx:        newGenerationContext(opts),
		stack:      newPathStack(),
	}

	branches := run.resolve(target, nil)

	return &production.GenerationResult{
		Target:       target,
		Combinations: g.finalize(target, branches, run),
		Truncated:    run.ctx.truncated,
		DepthLimited: run.ctx.depthLimited,
		Explored:     run.ctx.explored,
		Merged:       run.ctx.work,
		CacheHits:    run.cache.Hits(),
	}
}

// leaf is the single empty branch returned for resolution leaves
func leaf() []branch {
	return []branch{{path: production.EmptyPath()}}
}

// resolve returns the branches for item given the currently open path.
// via is the recipe being expanded for the parent (nil for the target).
func (r *resolution) resolve(item string, via *recipe.Recipe) []branch {
	r.ctx.explored++

	if r.policy.IsBaseResource(item) {
		return leaf()
	}

	if r.treatAsRaw && r.policy.IsRawOverride(item) {
		return leaf()
	}

	if r.stack.contains(item) {
		edge := production.CircularEdge{
			From: r.stack.top(),
			To:   item,
		}
		if via != nil {
			edge.RecipeUsing = via.ID
		}
		r.tracer.CycleCut(edge, r.stack.depth())
		return []branch{{
			path:  production.EmptyPath(),
			edges: []production.CircularEdge{edge},
		}}
	}

	recipes := r.index.Recipes(item)
	if len(recipes) == 0 {
		return leaf()
	}

	if r.stack.depth() >= r.ctx.maxDepth {
		r.ctx.truncated = true
		r.ctx.depthLimited = true
		r.tracer.LimitReached(item, LimitDepth, r.stack.depth())
		return nil
	}

	if r.ctx.exhausted() {
		r.ctx.truncated = true
		r.tracer.LimitReached(item, LimitCombinations, r.stack.depth())
		return nil
	}

	if r.ctx.workExhausted() {
		r.limitWork(item)
		return nil
	}

	key := memoKey{item: item, treatAsRaw: r.treatAsRaw, path: r.stack.key()}
	if cached, ok := r.cache.get(key); ok {
		return cached
	}

	results := newBranchSet(r.ctx, r.stack.depth() == 0)

	r.stack.push(item)
	for _, candidate := range r.selectRecipes(item, recipes) {
		if results.full() {
			r.ctx.truncated = true
			break
		}
		r.expand(item, candidate, results)
	}
	r.stack.pop()

	r.cache.put(key, results.items)
	return results.items
}

// selectRecipes prefers recipes that do not close a cycle. When every recipe of
// item is circular the first one in source order is used.
func (r *resolution) selectRecipes(item string, recipes []*recipe.Recipe) []*recipe.Recipe {
	candidates := make([]*recipe.Recipe, 0, len(recipes))
	for _, candidate := range recipes {
		if !r.analysis.IsCircularRecipe(candidate.ID) {
			candidates = append(candidates, candidate)
		}
	}
	if len(candidates) > 0 {
		return candidates
	}

	r.tracer.RecipeFallback(item, recipes[0].ID)
	return recipes[:1]
}

// expand resolves every ingredient of candidate and adds the cartesian product
// of their branches to results
func (r *resolution) expand(item string, candidate *recipe.Recipe, results *branchSet) {
	lists := make([][]branch, 0, len(candidate.Ingredients))
	for _, in := range candidate.Ingredients {
		sub := r.resolve(in.Item, candidate)
		if len(sub) == 0 {
			// An ingredient with no resolution makes this recipe unusable
			return
		}
		lists = append(lists, sub)
	}

	seed := branch{path: production.NewPath(item, candidate)}
	r.product(item, seed, lists, results)
}

// limitWork marks the search truncated by the merge budget, tracing it once
func (r *resolution) limitWork(item string) {
	r.ctx.truncated = true
	if !r.ctx.workLimited {
		r.ctx.workLimited = true
		r.tracer.LimitReached(item, LimitWork, r.stack.depth())
	}
}

// product walks the cartesian product of lists in odometer order, merging each
// combination onto seed. Every element built is charged to the merge budget,
// including those that collapse into a signature already in results. It stops
// as soon as results is full or the budget is spent.
func (r *resolution) product(item string, seed branch, lists [][]branch, results *branchSet) {
	positions := make([]int, len(lists))

	for {
		if results.full() {
			r.ctx.truncated = true
			return
		}
		if r.ctx.workExhausted() {
			r.limitWork(item)
			return
		}

		combined := seed
		for k, list := range lists {
			combined = combined.merge(list[positions[k]])
		}
		r.ctx.work++
		results.add(combined)

		k := len(lists) - 1
		for ; k >= 0; k-- {
			positions[k]++
			if positions[k] < len(lists[k]) {
				break
			}
			positions[k] = 0
		}
		if k < 0 {
			return
		}
	}
}
