package grpc

import (
	"context"
	"errors"
	"os"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/recipe-resolver/internal/application/common"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/queries"
	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
)

// Reloader rebuilds the active snapshot from the catalog on demand
type Reloader interface {
	Reload(ctx context.Context) (*services.Snapshot, error)
}

// resolverService implements ResolverServiceServer on top of the mediator
type resolverService struct {
	mediator  common.Mediator
	snapshots queries.SnapshotProvider
	reloader  Reloader
}

// NewResolverService creates the gRPC service. reloader may be nil, in which
// case Reload fails with FailedPrecondition.
func NewResolverService(
	mediator common.Mediator,
	snapshots queries.SnapshotProvider,
	reloader Reloader,
) ResolverServiceServer {
	return &resolverService{
		mediator:  mediator,
		snapshots: snapshots,
		reloader:  reloader,
	}
}

func (s *resolverService) AnalyzeCycles(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	response, err := s.mediator.Send(ctx, &queries.AnalyzeCyclesQuery{})
	if err != nil {
		return nil, toStatusError(err)
	}

	resp := response.(*queries.AnalyzeCyclesResponse)
	return encode(&AnalyzeCyclesReply{
		Analysis:        resp.Analysis,
		SnapshotVersion: resp.SnapshotVersion,
		ItemCount:       resp.ItemCount,
		RecipeCount:     resp.RecipeCount,
	})
}

func (s *resolverService) GenerateCombinations(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req GenerateRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	response, err := s.mediator.Send(ctx, &queries.GenerateCombinationsQuery{
		Target:          req.Target,
		TreatAsRaw:      req.TreatAsRaw,
		MaxDepth:        req.MaxDepth,
		MaxCombinations: req.MaxCombinations,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(toGenerateReply(response.(*queries.GenerateCombinationsResponse)))
}

func (s *resolverService) GenerateBatch(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req BatchRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	response, err := s.mediator.Send(ctx, &queries.GenerateCombinationsBatchQuery{
		Targets:         req.Targets,
		TreatAsRaw:      req.TreatAsRaw,
		MaxDepth:        req.MaxDepth,
		MaxCombinations: req.MaxCombinations,
		Concurrency:     req.Concurrency,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	resp := response.(*queries.GenerateCombinationsBatchResponse)
	reply := &BatchReply{
		Results:         make([]*GenerateReply, 0, len(resp.Results)),
		SnapshotVersion: resp.SnapshotVersion,
	}
	for _, result := range resp.Results {
		reply.Results = append(reply.Results, toGenerateReply(result))
	}
	return encode(reply)
}

func (s *resolverService) BuildCondensation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req CondensationRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	response, err := s.mediator.Send(ctx, &queries.BuildCondensationGraphQuery{Target: req.Target})
	if err != nil {
		return nil, toStatusError(err)
	}

	resp := response.(*queries.BuildCondensationGraphResponse)
	return encode(&CondensationReply{
		Graph:           resp.Graph,
		Stats:           resp.Stats,
		SnapshotVersion: resp.SnapshotVersion,
	})
}

func (s *resolverService) Status(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return encode(statusReply(s.snapshots.Current()))
}

func (s *resolverService) Reload(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if s.reloader == nil {
		return nil, status.Error(codes.FailedPrecondition, "daemon has no catalog to reload")
	}

	snapshot, err := s.reloader.Reload(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "reload failed: %v", err)
	}
	return encode(statusReply(snapshot))
}

func statusReply(snapshot *services.Snapshot) *StatusReply {
	return &StatusReply{
		PID:             os.Getpid(),
		SnapshotVersion: snapshot.Version,
		Source:          snapshot.Source,
		LoadedAt:        snapshot.LoadedAt,
		Items:           snapshot.Index.Len(),
		Recipes:         snapshot.Index.RecipeCount(),
		CircularItems:   len(snapshot.Analysis.CircularItems),
		CircularRecipes: len(snapshot.Analysis.CircularRecipes),
	}
}

func toGenerateReply(resp *queries.GenerateCombinationsResponse) *GenerateReply {
	return &GenerateReply{
		Result:          resp.Result,
		SnapshotVersion: resp.SnapshotVersion,
		DurationMS:      resp.Duration.Milliseconds(),
	}
}

func encode(v interface{}) (*structpb.Struct, error) {
	out, err := ToStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func toStatusError(err error) error {
	switch {
	case errors.Is(err, queries.ErrInvalidQuery):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
