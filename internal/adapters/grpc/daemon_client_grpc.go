package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/structpb"
)

// ResolverClient talks to the resolver daemon
type ResolverClient struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
}

// NewResolverClient connects to a daemon on a unix domain socket
func NewResolverClient(socketPath string) (*ResolverClient, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon socket: %w", err)
	}
	return NewResolverClientFromConn(conn), nil
}

// NewResolverClientFromConn wraps an existing connection
func NewResolverClientFromConn(conn *grpc.ClientConn) *ResolverClient {
	return &ResolverClient{
		conn:   conn,
		health: healthpb.NewHealthClient(conn),
	}
}

// Close closes the gRPC connection
func (c *ResolverClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Ping checks that the daemon reports SERVING
func (c *ResolverClient) Ping(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return fmt.Errorf("daemon health check failed: %w", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("daemon is %s", resp.Status)
	}
	return nil
}

// AnalyzeCycles fetches the circular analysis of the daemon's catalog
func (c *ResolverClient) AnalyzeCycles(ctx context.Context) (*AnalyzeCyclesReply, error) {
	var reply AnalyzeCyclesReply
	if err := c.call(ctx, MethodAnalyzeCycles, struct{}{}, &reply); err != nil {
		return nil, fmt.Errorf("failed to analyze cycles: %w", err)
	}
	return &reply, nil
}

// GenerateCombinations resolves one target on the daemon
func (c *ResolverClient) GenerateCombinations(ctx context.Context, req GenerateRequest) (*GenerateReply, error) {
	var reply GenerateReply
	if err := c.call(ctx, MethodGenerateCombinations, req, &reply); err != nil {
		return nil, fmt.Errorf("failed to generate combinations for %s: %w", req.Target, err)
	}
	return &reply, nil
}

// GenerateBatch resolves several targets on the daemon
func (c *ResolverClient) GenerateBatch(ctx context.Context, req BatchRequest) (*BatchReply, error) {
	var reply BatchReply
	if err := c.call(ctx, MethodGenerateBatch, req, &reply); err != nil {
		return nil, fmt.Errorf("failed to generate batch: %w", err)
	}
	return &reply, nil
}

// BuildCondensation fetches the condensed graph
func (c *ResolverClient) BuildCondensation(ctx context.Context, req CondensationRequest) (*CondensationReply, error) {
	var reply CondensationReply
	if err := c.call(ctx, MethodBuildCondensation, req, &reply); err != nil {
		return nil, fmt.Errorf("failed to build condensation graph: %w", err)
	}
	return &reply, nil
}

// Status describes the daemon's active snapshot
func (c *ResolverClient) Status(ctx context.Context) (*StatusReply, error) {
	var reply StatusReply
	if err := c.call(ctx, MethodStatus, struct{}{}, &reply); err != nil {
		return nil, fmt.Errorf("failed to get daemon status: %w", err)
	}
	return &reply, nil
}

// Reload asks the daemon to reread its catalog
func (c *ResolverClient) Reload(ctx context.Context) (*StatusReply, error) {
	var reply StatusReply
	if err := c.call(ctx, MethodReload, struct{}{}, &reply); err != nil {
		return nil, fmt.Errorf("failed to reload catalog: %w", err)
	}
	return &reply, nil
}

func (c *ResolverClient) call(ctx context.Context, method string, req interface{}, reply interface{}) error {
	in, err := ToStruct(req)
	if err != nil {
		return err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return err
	}
	return FromStruct(out, reply)
}
