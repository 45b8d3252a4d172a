// Package grpc exposes the shop's readiness over the standard gRPC health protocol.
package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall "" entry.
const ServiceName = "shop"

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthProbe keeps the gRPC health status in line with database reachability.
type HealthProbe struct {
	server   *health.Server
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

func NewHealthProbe(pinger Pinger, interval, timeout time.Duration, logger *slog.Logger) *HealthProbe {
	srv := health.NewServer()
	srv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	srv.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return &HealthProbe{
		server:   srv,
		pinger:   pinger,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "grpc-health"),
	}
}

// Register adds the health service to a gRPC server.
func (p *HealthProbe) Register(s *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(s, p.server)
}

// Run probes immediately and then on every interval until ctx is done.
func (p *HealthProbe) Run(ctx context.Context) error {
	p.Probe(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.Probe(ctx)
		}
	}
}

// Probe pings the database once and publishes the resulting status.
func (p *HealthProbe) Probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status := grpc_health_v1.HealthCheckResponse_SERVING
	if err := p.pinger.Ping(pingCtx); err != nil {
		p.logger.WarnContext(ctx, "Database ping failed", "error", err)
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	p.server.SetServingStatus("", status)
	p.server.SetServingStatus(ServiceName, status)
}

// Shutdown reports NOT_SERVING to every watcher and ignores later updates.
func (p *HealthProbe) Shutdown() {
	p.server.Shutdown()
}
