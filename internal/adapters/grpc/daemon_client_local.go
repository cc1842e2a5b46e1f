package grpc

import (
	"context"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// ResolverAPI is what the CLI needs from a resolver, local or remote
type ResolverAPI interface {
	AnalyzeCycles(ctx context.Context) (*AnalyzeCyclesReply, error)
	GenerateCombinations(ctx context.Context, req GenerateRequest) (*GenerateReply, error)
	GenerateBatch(ctx context.Context, req BatchRequest) (*BatchReply, error)
	BuildCondensation(ctx context.Context, req CondensationRequest) (*CondensationReply, error)
	Status(ctx context.Context) (*StatusReply, error)
	Close() error
}

var (
	_ ResolverAPI = (*ResolverClient)(nil)
	_ ResolverAPI = (*LocalClient)(nil)
)

// LocalClient calls a ResolverServiceServer in-process, through the same
// message encoding as the remote client, so local and daemon runs produce
// identical replies.
type LocalClient struct {
	service ResolverServiceServer
}

// NewLocalClient creates a client bound to service
func NewLocalClient(service ResolverServiceServer) *LocalClient {
	return &LocalClient{service: service}
}

// Close is a no-op
func (c *LocalClient) Close() error {
	return nil
}

// AnalyzeCycles returns the circular analysis
func (c *LocalClient) AnalyzeCycles(ctx context.Context) (*AnalyzeCyclesReply, error) {
	var reply AnalyzeCyclesReply
	if err := c.call(ctx, c.service.AnalyzeCycles, struct{}{}, &reply); err != nil {
		return nil, fmt.Errorf("failed to analyze cycles: %w", err)
	}
	return &reply, nil
}

// GenerateCombinations resolves one target
func (c *LocalClient) GenerateCombinations(ctx context.Context, req GenerateRequest) (*GenerateReply, error) {
	var reply GenerateReply
	if err := c.call(ctx, c.service.GenerateCombinations, req, &reply); err != nil {
		return nil, fmt.Errorf("failed to generate combinations for %s: %w", req.Target, err)
	}
	return &reply, nil
}

// GenerateBatch resolves several targets
func (c *LocalClient) GenerateBatch(ctx context.Context, req BatchRequest) (*BatchReply, error) {
	var reply BatchReply
	if err := c.call(ctx, c.service.GenerateBatch, req, &reply); err != nil {
		return nil, fmt.Errorf("failed to generate batch: %w", err)
	}
	return &reply, nil
}

// BuildCondensation returns the condensed graph
func (c *LocalClient) BuildCondensation(ctx context.Context, req CondensationRequest) (*CondensationReply, error) {
	var reply CondensationReply
	if err := c.call(ctx, c.service.BuildCondensation, req, &reply); err != nil {
		return nil, fmt.Errorf("failed to build condensation graph: %w", err)
	}
	return &reply, nil
}

// Status describes the loaded snapshot
func (c *LocalClient) Status(ctx context.Context) (*StatusReply, error) {
	var reply StatusReply
	if err := c.call(ctx, c.service.Status, struct{}{}, &reply); err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return &reply, nil
}

func (c *LocalClient) call(
	ctx context.Context,
	method func(context.Context, *structpb.Struct) (*structpb.Struct, error),
	req interface{},
	reply interface{},
) error {
	in, err := ToStruct(req)
	if err != nil {
		return err
	}

	out, err := method(ctx, in)
	if err != nil {
		return err
	}
	return FromStruct(out, reply)
}
