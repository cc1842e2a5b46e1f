package queries

import (
	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// Dependencies groups what the production handlers need
type Dependencies struct {
	Snapshots SnapshotProvider
	Policy    recipe.RawMaterialPolicy
	Limits    Limits
	Recorder  ResolutionRecorder
}

// RegisterHandlers wires every production query into m
func RegisterHandlers(m common.Mediator, deps Dependencies) error {
	defaults := DefaultLimits()
	if deps.Limits.MaxDepth <= 0 {
		deps.Limits.MaxDepth = defaults.MaxDepth
	}
	if deps.Limits.MaxCombinations <= 0 {
		deps.Limits.MaxCombinations = defaults.MaxCombinations
	}

	generate := NewGenerateCombinationsHandler(
		deps.Snapshots,
		services.NewCombinationGenerator(deps.Policy),
		deps.Limits,
		deps.Recorder,
	)

	if err := common.RegisterHandler[*AnalyzeCyclesQuery](m, NewAnalyzeCyclesHandler(deps.Snapshots)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*GenerateCombinationsQuery](m, generate); err != nil {
		return err
	}
	if err := common.RegisterHandler[*GenerateCombinationsBatchQuery](m, NewGenerateCombinationsBatchHandler(generate)); err != nil {
		return err
	}
	return common.RegisterHandler[*BuildCondensationGraphQuery](m, NewBuildCondensationGraphHandler(
		deps.Snapshots,
		services.NewCondensationBuilder(),
		deps.Recorder,
	))
}
