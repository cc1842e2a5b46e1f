package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-resolver/internal/adapters/catalog"
	"github.com/andrescamacho/recipe-resolver/internal/adapters/cli"
	grpcadapter "github.com/andrescamacho/recipe-resolver/internal/adapters/grpc"
	"github.com/andrescamacho/recipe-resolver/test/helpers"
)

// writeCatalog stores lines as a YAML catalog in a fresh directory and
// isolates the user config under a temporary HOME
func writeCatalog(t *testing.T, lines ...helpers.RecipeLine) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	data, err := catalog.Encode("recipes.yaml", helpers.MustRecipes(lines...))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "recipes.yaml"), data, 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return out.String(), err
}

func TestCyclesCommand_ListsCircularComponent(t *testing.T) {
	// Arrange
	dir := writeCatalog(t, helpers.MutualCycleCatalog...)

	// Act
	out, err := run(t, "cycles", "--catalog", dir)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshot v1: 5 items, 5 recipes")
	assert.Contains(t, out, "a_from_b")
	assert.Contains(t, out, "b_from_a")
	assert.NotContains(t, out, "a_from_raw")
}

func TestCyclesCommand_ReportsAcyclicCatalog(t *testing.T) {
	dir := writeCatalog(t, helpers.AcyclicCatalog...)

	out, err := run(t, "cycles", "--catalog", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "No circular dependencies")
}

func TestCombinationsCommand_JSONOutput(t *testing.T) {
	// Arrange
	dir := writeCatalog(t, helpers.MutualCycleCatalog...)

	// Act
	out, err := run(t, "combinations", "PRODUCT", "--catalog", dir, "-o", "json")

	// Assert
	require.NoError(t, err)
	var reply grpcadapter.GenerateReply
	require.NoError(t, json.Unmarshal([]byte(out), &reply))
	require.Equal(t, 1, reply.Result.Count())
	combination := reply.Result.Combinations[0]
	assert.Equal(t, "a_from_raw", combination.Recipes["A"])
	assert.Equal(t, "b_from_raw", combination.Recipes["B"])
	assert.Equal(t, []string{"COPPER_ORE", "IRON_ORE"}, combination.RawMaterials)
}

func TestCombinationsCommand_TreeOutput(t *testing.T) {
	dir := writeCatalog(t, helpers.AcyclicCatalog...)

	out, err := run(t, "combinations", "SCREW", "--catalog", dir, "--tree")

	require.NoError(t, err)
	assert.Contains(t, out, "1 found")
	assert.Contains(t, out, "└── IRON_ROD x1 [iron_rod]")
	assert.Contains(t, out, "IRON_ORE x1 (raw)")
}

func TestCombinationsCommand_RequiresTarget(t *testing.T) {
	dir := writeCatalog(t, helpers.AcyclicCatalog...)

	_, err := run(t, "combinations", "--catalog", dir)

	assert.Error(t, err)
}

func TestBatchCommand_KeepsRequestOrder(t *testing.T) {
	// Arrange
	dir := writeCatalog(t, helpers.AcyclicCatalog...)

	// Act
	out, err := run(t, "batch", "SCREW", "IRON_PLATE", "REINFORCED_PLATE", "--catalog", dir, "-o", "json")

	// Assert
	require.NoError(t, err)
	var reply grpcadapter.BatchReply
	require.NoError(t, json.Unmarshal([]byte(out), &reply))
	require.Len(t, reply.Results, 3)
	assert.Equal(t, "SCREW", reply.Results[0].Result.Target)
	assert.Equal(t, "IRON_PLATE", reply.Results[1].Result.Target)
	assert.Equal(t, "REINFORCED_PLATE", reply.Results[2].Result.Target)
}

func TestGraphCommand_CollapsesCycle(t *testing.T) {
	// Arrange
	dir := writeCatalog(t, helpers.MutualCycleCatalog...)

	// Act
	out, err := run(t, "graph", "--catalog", dir, "--target", "PRODUCT", "-o", "json")

	// Assert
	require.NoError(t, err)
	var reply grpcadapter.CondensationReply
	require.NoError(t, json.Unmarshal([]byte(out), &reply))
	assert.Equal(t, 1, reply.Stats.MetaNodes)
	assert.Equal(t, 3, reply.Stats.RegularNodes)
}

func TestStatusCommand_LocalMode(t *testing.T) {
	dir := writeCatalog(t, helpers.AcyclicCatalog...)
	t.Setenv("RR_DAEMON_PID_FILE", filepath.Join(t.TempDir(), "none.pid"))

	out, err := run(t, "status", "--catalog", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "Mode:             local")
	assert.Contains(t, out, "Recipes:          5")
	assert.Contains(t, out, "Daemon:           not running")
}

func TestImportCommand_StoresRecipesInSQLite(t *testing.T) {
	// Arrange
	dir := writeCatalog(t, helpers.AcyclicCatalog...)
	dbPath := filepath.Join(t.TempDir(), "recipes.db")
	t.Setenv("RR_DATABASE_TYPE", "sqlite")
	t.Setenv("RR_DATABASE_PATH", dbPath)

	// Act
	out, err := run(t, "import", "--catalog", dir)
	require.NoError(t, err)
	loaded, loadErr := run(t, "status", "--from-db", "-o", "json")

	// Assert
	assert.Contains(t, out, "5 recipes stored in sqlite database")
	require.NoError(t, loadErr)
	var status grpcadapter.StatusReply
	require.NoError(t, json.Unmarshal([]byte(loaded), &status))
	assert.Equal(t, 5, status.Recipes)
	assert.Equal(t, "sqlite database", status.Source)
}

func TestConfigCommand_SetAndClearPreferences(t *testing.T) {
	// Arrange
	home := t.TempDir()
	t.Setenv("HOME", home)

	// Act
	_, err := run(t, "config", "set-treat-as-raw", "true")
	require.NoError(t, err)
	shown, err := run(t, "config", "show")
	require.NoError(t, err)
	_, err = run(t, "config", "clear")
	require.NoError(t, err)
	cleared, err := run(t, "config", "show")
	require.NoError(t, err)

	// Assert
	assert.Contains(t, shown, "Treat as raw:     true")
	assert.FileExists(t, filepath.Join(home, ".recipe-resolver", "config.json"))
	assert.Contains(t, cleared, "Treat as raw:     (not set)")
}

func TestConfigCommand_RejectsInvalidBool(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := run(t, "config", "set-treat-as-raw", "maybe")

	assert.Error(t, err)
}
