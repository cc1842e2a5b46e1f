package grpc

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/andrescamacho/recipe-resolver/internal/application/common"
)

// ServerOptions tunes the daemon's gRPC server
type ServerOptions struct {
	RateLimit       float64
	Burst           int
	ShutdownTimeout time.Duration
	Logger          common.Logger
}

// NewGRPCServer builds a gRPC server exposing service and the standard health service
func NewGRPCServer(service ResolverServiceServer, opts ServerOptions) (*grpc.Server, *health.Server) {
	logger := opts.Logger
	if logger == nil {
		logger = common.LoggerFromContext(context.Background())
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(logger),
		RateLimitInterceptor(limiter),
	))
	RegisterResolverServiceServer(server, service)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return server, healthServer
}

// DaemonServer serves the resolver service on a unix domain socket
type DaemonServer struct {
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
	opts     ServerOptions

	// Shutdown coordination
	shutdownChan chan os.Signal
	done         chan struct{}
}

// NewDaemonServer creates a daemon server listening on socketPath
func NewDaemonServer(service ResolverServiceServer, socketPath string, opts ServerOptions) (*DaemonServer, error) {
	// Remove existing socket file if present
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
	}

	// Owner only
	if err := os.Chmod(socketPath, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	server, healthServer := NewGRPCServer(service, opts)

	daemon := &DaemonServer{
		server:       server,
		health:       healthServer,
		listener:     listener,
		opts:         opts,
		shutdownChan: make(chan os.Signal, 1),
		done:         make(chan struct{}),
	}

	signal.Notify(daemon.shutdownChan, os.Interrupt, syscall.SIGTERM)

	return daemon, nil
}

// Start serves until a shutdown signal arrives or Stop is called
func (s *DaemonServer) Start() error {
	if s.opts.Logger != nil {
		s.opts.Logger.Log("INFO", "Resolver daemon listening", map[string]interface{}{
			"socket": s.listener.Addr().String(),
		})
	}

	go s.handleShutdown()

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(s.listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-s.done:
		s.gracefulStop()
		return nil
	}
}

// Stop triggers the same shutdown path as SIGTERM
func (s *DaemonServer) Stop() {
	select {
	case s.shutdownChan <- syscall.SIGTERM:
	default:
	}
}

func (s *DaemonServer) handleShutdown() {
	<-s.shutdownChan
	signal.Stop(s.shutdownChan)
	s.health.Shutdown()
	close(s.done)
}

// gracefulStop drains in-flight calls, forcing a stop after the shutdown timeout
func (s *DaemonServer) gracefulStop() {
	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(timeout):
		s.server.Stop()
	}
}
