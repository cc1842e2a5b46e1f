package steps

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/recipe-resolver/internal/adapters/persistence"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
	"github.com/andrescamacho/recipe-resolver/test/helpers"
)

type resolverContext struct {
	recipes  []*recipe.Recipe
	index    *recipe.Index
	analysis *production.CircularAnalysis
	policy   recipe.RawMaterialPolicy

	result   *production.GenerationResult
	previous *production.GenerationResult
	lastRun  func() *production.GenerationResult

	graph *production.CondensationGraph

	repo      *persistence.GormRecipeRepository
	importErr error
}

func (rc *resolverContext) reset() {
	rc.recipes = nil
	rc.index = recipe.NewIndex(nil)
	rc.analysis = nil
	rc.policy = recipe.DefaultRawPolicy()
	rc.result = nil
	rc.previous = nil
	rc.lastRun = nil
	rc.graph = nil
	rc.repo = nil
	rc.importErr = nil
}

func (rc *resolverContext) useRecipes(recipes []*recipe.Recipe) {
	rc.recipes = recipes
	rc.index = recipe.NewIndex(recipes)
	rc.analysis = services.NewCycleAnalyzer().Analyze(rc.index)
}

func (rc *resolverContext) combination(n int) (*production.ProductionCombination, error) {
	if rc.result == nil {
		return nil, fmt.Errorf("no combinations were generated")
	}
	if n < 1 || n > len(rc.result.Combinations) {
		return nil, fmt.Errorf("combination %d requested but only %d generated", n, len(rc.result.Combinations))
	}
	return rc.result.Combinations[n-1], nil
}

func getCellValueFromTable(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	for i, cell := range table.Rows[0].Cells {
		if cell.Value == columnName && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

func splitList(list string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(list, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Catalog steps

func (rc *resolverContext) aRecipeCatalog(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("catalog table needs a header and at least one recipe")
	}

	recipes := make([]*recipe.Recipe, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		line := fmt.Sprintf("%s: %s -> %s",
			getCellValueFromTable(table, row, "id"),
			getCellValueFromTable(table, row, "ingredients"),
			getCellValueFromTable(table, row, "outputs"),
		)
		r, err := helpers.ParseRecipe(helpers.RecipeLine(line))
		if err != nil {
			return err
		}
		recipes = append(recipes, r)
	}

	rc.useRecipes(recipes)
	return nil
}

func (rc *resolverContext) theRawOverridePatterns(patterns string) error {
	policy, err := recipe.NewConfiguredRawPolicy(recipe.DefaultBaseResources, splitList(patterns))
	if err != nil {
		return err
	}
	rc.policy = policy
	return nil
}

// Circular analysis steps

func (rc *resolverContext) iAnalyzeTheCatalogForCycles() error {
	rc.analysis = services.NewCycleAnalyzer().Analyze(rc.index)
	return nil
}

func (rc *resolverContext) thereShouldBeNoCircularItems() error {
	if items := rc.analysis.SortedCircularItems(); len(items) > 0 {
		return fmt.Errorf("expected no circular items, got %v", items)
	}
	return nil
}

func (rc *resolverContext) theCatalogShouldHaveComponents(expected int) error {
	if len(rc.analysis.Components) != expected {
		return fmt.Errorf("expected %d components, got %d", expected, len(rc.analysis.Components))
	}
	return nil
}

func (rc *resolverContext) itemShouldBeCircular(item, negation string) error {
	want := negation == ""
	if rc.analysis.IsCircularItem(item) != want {
		return fmt.Errorf("expected item %s circular=%t", item, want)
	}
	return nil
}

func (rc *resolverContext) recipeShouldBeCircular(recipeID, negation string) error {
	want := negation == ""
	if rc.analysis.IsCircularRecipe(recipeID) != want {
		return fmt.Errorf("expected recipe %s circular=%t", recipeID, want)
	}
	return nil
}

func (rc *resolverContext) theItemsShouldFormOneCircularComponent(list string) error {
	items := splitList(list)
	first, ok := rc.analysis.ComponentOf(items[0])
	if !ok {
		return fmt.Errorf("item %s is not in any component", items[0])
	}
	if !rc.analysis.IsCircularComponent(first) {
		return fmt.Errorf("component of %s is not circular", items[0])
	}
	for _, item := range items[1:] {
		component, ok := rc.analysis.ComponentOf(item)
		if !ok || component != first {
			return fmt.Errorf("item %s is not in the component of %s", item, items[0])
		}
	}
	if len(rc.analysis.Components[first]) != len(items) {
		return fmt.Errorf("component has members %v, expected %v", rc.analysis.Components[first], items)
	}
	return nil
}

// Generation steps

func (rc *resolverContext) generate(target string, treatAsRaw bool, opts services.GenerateOptions) {
	run := func() *production.GenerationResult {
		return services.NewCombinationGenerator(rc.policy).Generate(target, rc.index, rc.analysis, treatAsRaw, opts)
	}
	rc.previous = rc.result
	rc.lastRun = run
	rc.result = run()
}

func (rc *resolverContext) iGenerateCombinationsFor(target string) error {
	rc.generate(target, false, services.GenerateOptions{})
	return nil
}

func (rc *resolverContext) iGenerateCombinationsTreatingOverridesAsRaw(target string) error {
	rc.generate(target, true, services.GenerateOptions{})
	return nil
}

func (rc *resolverContext) iGenerateCombinationsWithAtMost(target string, ceiling int) error {
	rc.generate(target, false, services.GenerateOptions{MaxCombinations: ceiling})
	return nil
}

func (rc *resolverContext) iGenerateCombinationsWithMaxDepth(target string, depth int) error {
	rc.generate(target, false, services.GenerateOptions{MaxDepth: depth})
	return nil
}

func (rc *resolverContext) iGenerateCombinationsAgain(target string) error {
	if rc.lastRun == nil || rc.result == nil || rc.result.Target != target {
		return fmt.Errorf("no previous generation for %s", target)
	}
	rc.previous = rc.result
	rc.result = rc.lastRun()
	return nil
}

func (rc *resolverContext) bothRunsShouldReturnTheSameCombinationIDs() error {
	if rc.previous == nil {
		return fmt.Errorf("only one generation has run")
	}
	if !reflect.DeepEqual(rc.previous.IDs(), rc.result.IDs()) {
		return fmt.Errorf("ids differ: %v vs %v", rc.previous.IDs(), rc.result.IDs())
	}
	return nil
}

func (rc *resolverContext) thereShouldBeCombinations(expected int) error {
	if rc.result == nil {
		return fmt.Errorf("no combinations were generated")
	}
	if rc.result.Count() != expected {
		return fmt.Errorf("expected %d combinations, got %d", expected, rc.result.Count())
	}
	return nil
}

func (rc *resolverContext) theResultShouldBeTruncated(negation string) error {
	want := negation == ""
	if rc.result.Truncated != want {
		return fmt.Errorf("expected truncated=%t, got %t", want, rc.result.Truncated)
	}
	return nil
}

func (rc *resolverContext) theResultShouldBeDepthLimited() error {
	if !rc.result.DepthLimited {
		return fmt.Errorf("expected the depth limit to be reached")
	}
	return nil
}

func (rc *resolverContext) combinationShouldUseRecipeFor(n int, recipeID, item string) error {
	c, err := rc.combination(n)
	if err != nil {
		return err
	}
	if got := c.Recipes[item]; got != recipeID {
		return fmt.Errorf("combination %d uses %q for %s, expected %q", n, got, item, recipeID)
	}
	return nil
}

func (rc *resolverContext) combinationShouldHaveRawMaterials(n int, list string) error {
	c, err := rc.combination(n)
	if err != nil {
		return err
	}
	expected := splitList(list)
	if !reflect.DeepEqual(c.RawMaterials, expected) {
		return fmt.Errorf("combination %d raw materials %v, expected %v", n, c.RawMaterials, expected)
	}
	return nil
}

func (rc *resolverContext) combinationRecipeChainShouldBe(n int, list string) error {
	c, err := rc.combination(n)
	if err != nil {
		return err
	}
	chain := make([]string, 0, len(c.RecipeChain))
	for _, step := range c.RecipeChain {
		chain = append(chain, step.Item)
	}
	expected := splitList(list)
	if !reflect.DeepEqual(chain, expected) {
		return fmt.Errorf("combination %d chain %v, expected %v", n, chain, expected)
	}
	return nil
}

func (rc *resolverContext) combinationShouldHaveCircularEdges(n, expected int) error {
	c, err := rc.combination(n)
	if err != nil {
		return err
	}
	if len(c.CircularEdges) != expected {
		return fmt.Errorf("combination %d has %d circular edges, expected %d", n, len(c.CircularEdges), expected)
	}
	return nil
}

func (rc *resolverContext) combinationShouldCutTheCycle(n int, from, to, via string) error {
	c, err := rc.combination(n)
	if err != nil {
		return err
	}
	want := production.CircularEdge{From: from, To: to, RecipeUsing: via}
	for _, edge := range c.CircularEdges {
		if edge == want {
			return nil
		}
	}
	return fmt.Errorf("combination %d edges %v do not include %v", n, c.CircularEdges, want)
}

// Condensation steps

func (rc *resolverContext) iBuildTheCondensationGraph() error {
	rc.graph = services.NewCondensationBuilder().Build(rc.index, rc.analysis, "")
	return nil
}

func (rc *resolverContext) iBuildTheCondensationGraphFor(target string) error {
	rc.graph = services.NewCondensationBuilder().Build(rc.index, rc.analysis, target)
	return nil
}

func (rc *resolverContext) theGraphShouldHave(nodes, meta, edges int) error {
	stats := rc.graph.Stats()
	if stats.TotalNodes != nodes || stats.MetaNodes != meta || stats.Edges != edges {
		return fmt.Errorf("graph has %d nodes, %d meta nodes and %d edges", stats.TotalNodes, stats.MetaNodes, stats.Edges)
	}
	return nil
}

func (rc *resolverContext) itemsShouldShareAMetaNode(list string) error {
	items := splitList(list)
	first, ok := rc.graph.NodeFor(items[0])
	if !ok {
		return fmt.Errorf("item %s has no node", items[0])
	}
	node, _ := rc.graph.Node(first)
	if !node.Meta {
		return fmt.Errorf("node %s of %s is not a meta node", first, items[0])
	}
	for _, item := range items[1:] {
		id, ok := rc.graph.NodeFor(item)
		if !ok || id != first {
			return fmt.Errorf("item %s is not in node %s", item, first)
		}
	}
	return nil
}

func (rc *resolverContext) findEdge(from, to string) (*production.CondensationEdge, error) {
	source, ok := rc.graph.NodeFor(from)
	if !ok {
		return nil, fmt.Errorf("item %s has no node", from)
	}
	target, ok := rc.graph.NodeFor(to)
	if !ok {
		return nil, fmt.Errorf("item %s has no node", to)
	}
	for _, edge := range rc.graph.Edges {
		if edge.Source == source && edge.Target == target {
			return edge, nil
		}
	}
	return nil, fmt.Errorf("no edge from %s to %s", source, target)
}

func (rc *resolverContext) theEdgeShouldListRecipes(from, to, list string) error {
	edge, err := rc.findEdge(from, to)
	if err != nil {
		return err
	}
	expected := splitList(list)
	if !reflect.DeepEqual(edge.RecipeIDs, expected) {
		return fmt.Errorf("edge %s -> %s lists %v, expected %v", edge.Source, edge.Target, edge.RecipeIDs, expected)
	}
	return nil
}

func (rc *resolverContext) theEdgeShouldBeMarkedAsMultipleRecipes(from, to string) error {
	edge, err := rc.findEdge(from, to)
	if err != nil {
		return err
	}
	if !edge.MultipleRecipes {
		return fmt.Errorf("edge %s -> %s is not marked as multiple recipes", edge.Source, edge.Target)
	}
	return nil
}

// Database steps

func (rc *resolverContext) repository() (*persistence.GormRecipeRepository, error) {
	if rc.repo != nil {
		return rc.repo, nil
	}
	if helpers.SharedTestDB == nil {
		return nil, fmt.Errorf("shared test database not initialized")
	}
	rc.repo = persistence.NewGormRecipeRepository(helpers.SharedTestDB)
	return rc.repo, nil
}

func (rc *resolverContext) iImportTheCatalogIntoTheDatabase() error {
	repo, err := rc.repository()
	if err != nil {
		return err
	}
	return repo.SaveAll(context.Background(), rc.recipes)
}

func (rc *resolverContext) iImportACatalogContainingRecipeTwice(recipeID string) error {
	repo, err := rc.repository()
	if err != nil {
		return err
	}
	original, ok := rc.index.Recipe(recipeID)
	if !ok {
		return fmt.Errorf("recipe %s is not in the catalog", recipeID)
	}
	duplicated := append(append([]*recipe.Recipe{}, rc.recipes...), original)
	rc.importErr = repo.SaveAll(context.Background(), duplicated)
	return nil
}

func (rc *resolverContext) theImportShouldFailWithADuplicateRecipeError() error {
	var duplicate *recipe.ErrDuplicateRecipe
	if !errors.As(rc.importErr, &duplicate) {
		return fmt.Errorf("expected a duplicate recipe error, got %v", rc.importErr)
	}
	return nil
}

func (rc *resolverContext) iLoadRecipesFromTheDatabase() error {
	repo, err := rc.repository()
	if err != nil {
		return err
	}
	recipes, err := repo.FindAll(context.Background())
	if err != nil {
		return err
	}
	rc.useRecipes(recipes)
	return nil
}

func (rc *resolverContext) theDatabaseShouldHoldRecipes(expected int) error {
	repo, err := rc.repository()
	if err != nil {
		return err
	}
	count, err := repo.Count(context.Background())
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("database holds %d recipes, expected %d", count, expected)
	}
	return nil
}

// InitializeResolverScenario registers the catalog, analysis, generation,
// condensation and database steps
func InitializeResolverScenario(ctx *godog.ScenarioContext) {
	rc := &resolverContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		rc.reset()
		if helpers.SharedTestDB != nil {
			if err := helpers.TruncateAllTables(); err != nil {
				return ctx, err
			}
		}
		return ctx, nil
	})

	ctx.Step(`^a recipe catalog:$`, rc.aRecipeCatalog)
	ctx.Step(`^the raw override patterns "([^"]*)"$`, rc.theRawOverridePatterns)

	ctx.Step(`^I analyze the catalog for cycles$`, rc.iAnalyzeTheCatalogForCycles)
	ctx.Step(`^there should be no circular items$`, rc.thereShouldBeNoCircularItems)
	ctx.Step(`^the catalog should have (\d+) components$`, rc.theCatalogShouldHaveComponents)
	ctx.Step(`^item "([^"]*)" should( not)? be circular$`, rc.itemShouldBeCircular)
	ctx.Step(`^recipe "([^"]*)" should( not)? be circular$`, rc.recipeShouldBeCircular)
	ctx.Step(`^the items "([^"]*)" should form one circular component$`, rc.theItemsShouldFormOneCircularComponent)

	ctx.Step(`^I generate combinations for "([^"]*)"$`, rc.iGenerateCombinationsFor)
	ctx.Step(`^I generate combinations for "([^"]*)" treating overrides as raw$`, rc.iGenerateCombinationsTreatingOverridesAsRaw)
	ctx.Step(`^I generate combinations for "([^"]*)" with at most (\d+) combinations$`, rc.iGenerateCombinationsWithAtMost)
	ctx.Step(`^I generate combinations for "([^"]*)" with max depth (\d+)$`, rc.iGenerateCombinationsWithMaxDepth)
	ctx.Step(`^I generate combinations for "([^"]*)" again$`, rc.iGenerateCombinationsAgain)
	ctx.Step(`^both runs should return the same combination ids$`, rc.bothRunsShouldReturnTheSameCombinationIDs)
	ctx.Step(`^there should be (\d+) combinations?$`, rc.thereShouldBeCombinations)
	ctx.Step(`^the result should( not)? be truncated$`, rc.theResultShouldBeTruncated)
	ctx.Step(`^the result should be depth limited$`, rc.theResultShouldBeDepthLimited)
	ctx.Step(`^combination (\d+) should use recipe "([^"]*)" for "([^"]*)"$`, rc.combinationShouldUseRecipeFor)
	ctx.Step(`^combination (\d+) should have raw materials "([^"]*)"$`, rc.combinationShouldHaveRawMaterials)
	ctx.Step(`^combination (\d+) recipe chain should be "([^"]*)"$`, rc.combinationRecipeChainShouldBe)
	ctx.Step(`^combination (\d+) should have (\d+) circular edges?$`, rc.combinationShouldHaveCircularEdges)
	ctx.Step(`^combination (\d+) should cut the cycle from "([^"]*)" to "([^"]*)" via recipe "([^"]*)"$`, rc.combinationShouldCutTheCycle)

	ctx.Step(`^I build the condensation graph$`, rc.iBuildTheCondensationGraph)
	ctx.Step(`^I build the condensation graph for "([^"]*)"$`, rc.iBuildTheCondensationGraphFor)
	ctx.Step(`^the graph should have (\d+) nodes?, (\d+) meta nodes? and (\d+) edges?$`, rc.theGraphShouldHave)
	ctx.Step(`^items "([^"]*)" should share a meta node$`, rc.itemsShouldShareAMetaNode)
	ctx.Step(`^the edge from "([^"]*)" to "([^"]*)" should list recipes "([^"]*)"$`, rc.theEdgeShouldListRecipes)
	ctx.Step(`^the edge from "([^"]*)" to "([^"]*)" should be marked as multiple recipes$`, rc.theEdgeShouldBeMarkedAsMultipleRecipes)

	ctx.Step(`^I import the catalog into the database$`, rc.iImportTheCatalogIntoTheDatabase)
	ctx.Step(`^I import a catalog containing recipe "([^"]*)" twice$`, rc.iImportACatalogContainingRecipeTwice)
	ctx.Step(`^the import should fail with a duplicate recipe error$`, rc.theImportShouldFailWithADuplicateRecipeError)
	ctx.Step(`^I load recipes from the database$`, rc.iLoadRecipesFromTheDatabase)
	ctx.Step(`^the database should hold (\d+) recipes$`, rc.theDatabaseShouldHoldRecipes)
}
