// Package server manages the arena server's component lifecycle: ordered
// startup, signal handling, and reverse-order graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component of the arena server.
type Service interface {
	// Start runs the service and blocks until it stops or fails.
	Start() error
	// Stop requests a graceful stop; Start returns afterwards.
	Stop()
}

// FuncService adapts a start/stop function pair into a Service.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

func (f *FuncService) Start() error { return f.StartFn() }

func (f *FuncService) Stop() { f.StopFn() }

// Lifecycle starts registered services in order and stops them in reverse
// when a termination signal arrives or any service fails.
type Lifecycle struct {
	logger *zap.Logger

	mu       sync.Mutex
	services []namedService
}

type namedService struct {
	name    string
	service Service
}

// NewLifecycle creates an empty lifecycle manager.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// Add registers a service. Startup follows registration order; shutdown
// reverses it, so dependencies registered first are stopped last.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every registered service and blocks until SIGINT/SIGTERM, a
// service failure, or context cancellation. It then stops all services in
// reverse order before returning. The first service failure, if any, is
// returned.
//
// Postcondition: Every service's Stop has been called when Run returns.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(l.services))
	for _, ns := range l.services {
		ns := ns
		go func() {
			l.logger.Info("starting service", zap.String("service", ns.name))
			if err := ns.service.Start(); err != nil {
				errCh <- fmt.Errorf("service %s: %w", ns.name, err)
				cancel()
			}
		}()
	}
	l.logger.Info("arena server up",
		zap.Int("services", len(l.services)),
		zap.Duration("startup", time.Since(start)),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case runErr = <-errCh:
		l.logger.Error("service failed, shutting down", zap.Error(runErr))
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	l.stopAll()
	l.logger.Info("shutdown complete", zap.Duration("uptime", time.Since(start)))
	return runErr
}

// stopAll stops services in reverse registration order.
func (l *Lifecycle) stopAll() {
	for i := len(l.services) - 1; i >= 0; i-- {
		ns := l.services[i]
		l.logger.Info("stopping service", zap.String("service", ns.name))
		ns.service.Stop()
	}
}
