package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "recipe_resolver.v1.ResolverService"

// Full method names
const (
	MethodAnalyzeCycles        = "/" + ServiceName + "/AnalyzeCycles"
	MethodGenerateCombinations = "/" + ServiceName + "/GenerateCombinations"
	MethodGenerateBatch        = "/" + ServiceName + "/GenerateBatch"
	MethodBuildCondensation    = "/" + ServiceName + "/BuildCondensation"
	MethodStatus               = "/" + ServiceName + "/Status"
	MethodReload               = "/" + ServiceName + "/Reload"
)

// ResolverServiceServer is the server API of the resolver daemon.
// Every message is a google.protobuf.Struct holding the JSON form of the
// request and reply types in messages.go.
type ResolverServiceServer interface {
	AnalyzeCycles(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GenerateCombinations(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GenerateBatch(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	BuildCondensation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Status(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Reload(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(srv ResolverServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ResolverServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ResolverServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ResolverServiceDesc describes the service for grpc.Server.RegisterService
var ResolverServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ResolverServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AnalyzeCycles",
			Handler: unaryHandler(MethodAnalyzeCycles, func(srv ResolverServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.AnalyzeCycles(ctx, in)
			}),
		},
		{
			MethodName: "GenerateCombinations",
			Handler: unaryHandler(MethodGenerateCombinations, func(srv ResolverServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.GenerateCombinations(ctx, in)
			}),
		},
		{
			MethodName: "GenerateBatch",
			Handler: unaryHandler(MethodGenerateBatch, func(srv ResolverServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.GenerateBatch(ctx, in)
			}),
		},
		{
			MethodName: "BuildCondensation",
			Handler: unaryHandler(MethodBuildCondensation, func(srv ResolverServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.BuildCondensation(ctx, in)
			}),
		},
		{
			MethodName: "Status",
			Handler: unaryHandler(MethodStatus, func(srv ResolverServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.Status(ctx, in)
			}),
		},
		{
			MethodName: "Reload",
			Handler: unaryHandler(MethodReload, func(srv ResolverServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.Reload(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "recipe_resolver/v1/resolver.proto",
}

// RegisterResolverServiceServer registers srv with s
func RegisterResolverServiceServer(s grpc.ServiceRegistrar, srv ResolverServiceServer) {
	s.RegisterService(&ResolverServiceDesc, srv)
}
