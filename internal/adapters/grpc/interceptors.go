package grpc

import (
	"context"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/recipe-resolver/internal/application/common"
)

// RateLimitInterceptor rejects calls beyond the limiter's rate with ResourceExhausted.
// Health checks are never limited.
func RateLimitInterceptor(limiter *rate.Limiter) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if limiter != nil && info.FullMethod != healthCheckMethod && !limiter.Allow() {
			return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded for %s", info.FullMethod)
		}
		return handler(ctx, req)
	}
}

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// LoggingInterceptor places logger in the request context and logs each call
func LoggingInterceptor(logger common.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx = common.WithLogger(ctx, logger)
		start := time.Now()

		resp, err := handler(ctx, req)

		metadata := map[string]interface{}{
			"method":      info.FullMethod,
			"code":        status.Code(err).String(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log("WARNING", "gRPC call failed", metadata)
		} else {
			logger.Log("DEBUG", "gRPC call served", metadata)
		}
		return resp, err
	}
}
