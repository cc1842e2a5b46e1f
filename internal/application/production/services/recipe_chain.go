package services

import (
	"sort"

	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// finalize deduplicates raw branches by path signature and turns the survivors
// into combinations with raw materials and a linearized recipe chain.
// A branch with an empty path means the target itself is a leaf: there is
// nothing to manufacture, so it yields no combination.
func (g *CombinationGenerator) finalize(target string, branches []branch, run *resolution) []*production.ProductionCombination {
	seen := make(map[string]bool, len(branches))
	combinations := make([]*production.ProductionCombination, 0, len(branches))

	for _, b := range branches {
		if b.path.IsEmpty() {
			continue
		}
		if len(combinations) >= run.ctx.maxCombinations {
			run.ctx.truncated = true
			break
		}

		signature := b.path.Signature()
		if seen[signature] {
			continue
		}
		seen[signature] = true

		chain := BuildRecipeChain(target, b.path)
		raw := CollectRawMaterials(b.path, run.index, g.policy, run.treatAsRaw)
		combinations = append(combinations, production.NewProductionCombination(target, b.path, raw, b.edges, chain))
	}

	return combinations
}

// BuildRecipeChain orders the recipes of path so that every item appears after
// the ingredients it consumes. Each item is listed once; items without an
// assignment (raw materials) are skipped.
func BuildRecipeChain(target string, path production.RecipePath) []production.ChainStep {
	chain := make([]production.ChainStep, 0, path.Len())
	visited := make(map[string]bool, path.Len())

	var visit func(item string)
	visit = func(item string) {
		if visited[item] {
			return
		}
		visited[item] = true

		r, ok := path.Lookup(item)
		if !ok {
			return
		}
		for _, in := range r.Ingredients {
			visit(in.Item)
		}
		chain = append(chain, production.ChainStep{
			Item:      item,
			RecipeID:  r.ID,
			Recipe:    r.Label(),
			MachineID: r.MachineID,

			Ingredients: r.Ingredients,
		})
	}

	visit(target)
	return chain
}

// CollectRawMaterials returns the sorted, distinct ingredients of path that are
// raw: base resources, items without recipes, or raw overrides when requested
func CollectRawMaterials(
	path production.RecipePath,
	index *recipe.Index,
	policy recipe.RawMaterialPolicy,
	treatAsRaw bool,
) []string {
	materials := make(map[string]bool)
	for _, assignment := range path.Assignments() {
		for _, in := range assignment.Recipe.Ingredients {
			if recipe.IsRawMaterial(in.Item, index, policy, treatAsRaw) {
				materials[in.Item] = true
			}
		}
	}

	result := make([]string, 0, len(materials))
	for material := range materials {
		result = append(result, material)
	}
	sort.Strings(result)
	return result
}
