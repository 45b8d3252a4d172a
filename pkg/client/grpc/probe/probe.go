// Package probe asks a gRPC health endpoint whether a service is serving.
package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/zhiidetopchubaeva/shop/pkg/client/grpc/interceptors"
	"github.com/zhiidetopchubaeva/shop/pkg/config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type Options struct {
	Retry config.RetryConfig
	// Timeout bounds each attempt.
	Timeout time.Duration
	// DialOptions are appended to the defaults, e.g. a bufconn dialer in tests.
	DialOptions []grpc.DialOption
}

// Check reports an error unless service at target answers SERVING.
// Transient failures are retried with exponential backoff.
func Check(ctx context.Context, target, service string, opts Options) error {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			interceptors.NewRetryInterceptor(opts.Retry),
			interceptors.UnaryClientTimeoutInterceptor(opts.Timeout),
		),
	}, opts.DialOptions...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return fmt.Errorf("failed to create gRPC client for %s: %w", target, err)
	}
	defer func() { _ = conn.Close() }()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("service %q is %s", service, resp.GetStatus())
	}
	return nil
}
