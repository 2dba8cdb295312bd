package server

import (
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthv1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer exposes the arena server's health over the standard gRPC
// health checking protocol. It implements Service.
type HealthServer struct {
	addr   string
	grpc   *grpc.Server
	health *health.Server
	logger *zap.Logger

	mu         sync.Mutex
	listenAddr string
}

// NewHealthServer builds a gRPC server on addr serving only the health
// service. The server reports NOT_SERVING until MarkServing is called.
func NewHealthServer(addr string, logger *zap.Logger) *HealthServer {
	h := &HealthServer{
		addr:   addr,
		grpc:   grpc.NewServer(),
		health: health.NewServer(),
		logger: logger,
	}
	h.health.SetServingStatus("", healthv1.HealthCheckResponse_NOT_SERVING)
	healthv1.RegisterHealthServer(h.grpc, h.health)
	return h
}

// MarkServing flips the overall status to SERVING. Call it once startup
// completes.
func (h *HealthServer) MarkServing() {
	h.health.SetServingStatus("", healthv1.HealthCheckResponse_SERVING)
}

// Start listens on the configured address and blocks serving health checks.
func (h *HealthServer) Start() error {
	lis, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", h.addr, err)
	}
	h.mu.Lock()
	h.listenAddr = lis.Addr().String()
	h.mu.Unlock()
	h.logger.Info("health server listening", zap.String("addr", lis.Addr().String()))
	return h.grpc.Serve(lis)
}

// Stop marks the server NOT_SERVING and drains in-flight requests.
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.grpc.GracefulStop()
}
