package probe

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zhiidetopchubaeva/shop/pkg/config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// scriptedHealth answers Check with a queue of codes, then with status.
type scriptedHealth struct {
	grpc_health_v1.UnimplementedHealthServer

	mu        sync.Mutex
	callCount int
	responses []codes.Code
	status    grpc_health_v1.HealthCheckResponse_ServingStatus
	delay     time.Duration
}

func (s *scriptedHealth) Check(ctx context.Context, _ *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	s.mu.Lock()
	s.callCount++
	var code codes.Code
	if len(s.responses) > 0 {
		code = s.responses[0]
		s.responses = s.responses[1:]
	}
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, status.FromContextError(ctx.Err()).Err()
		}
	}
	if code != codes.OK {
		return nil, status.Error(code, "scripted failure")
	}
	return &grpc_health_v1.HealthCheckResponse{Status: s.status}, nil
}

func (s *scriptedHealth) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

func startServer(t *testing.T, health *scriptedHealth) Options {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	grpcServer := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, health)
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	t.Cleanup(func() {
		grpcServer.Stop()
		_ = lis.Close()
	})

	return Options{
		Retry:   config.RetryConfig{MaxAttempts: 3, InitialBackoff: 10 * time.Millisecond},
		Timeout: 100 * time.Millisecond,
		DialOptions: []grpc.DialOption{
			grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
				return lis.Dial()
			}),
		},
	}
}

func TestCheck(t *testing.T) {
	testCases := []struct {
		name      string
		health    *scriptedHealth
		wantErr   bool
		wantCalls int
	}{
		{
			name:      "serving",
			health:    &scriptedHealth{status: grpc_health_v1.HealthCheckResponse_SERVING},
			wantCalls: 1,
		},
		{
			name:      "not serving",
			health:    &scriptedHealth{status: grpc_health_v1.HealthCheckResponse_NOT_SERVING},
			wantErr:   true,
			wantCalls: 1,
		},
		{
			name: "retries transient errors",
			health: &scriptedHealth{
				responses: []codes.Code{codes.Unavailable, codes.Unavailable},
				status:    grpc_health_v1.HealthCheckResponse_SERVING,
			},
			wantCalls: 3,
		},
		{
			name:      "no retry on unknown service",
			health:    &scriptedHealth{responses: []codes.Code{codes.NotFound}},
			wantErr:   true,
			wantCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			opts := startServer(t, tc.health)

			// when
			err := Check(context.Background(), "passthrough://bufnet", "shop", opts)

			// then
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.wantCalls, tc.health.calls())
		})
	}
}

func TestCheck_TimeoutPerAttempt(t *testing.T) {
	// given
	health := &scriptedHealth{status: grpc_health_v1.HealthCheckResponse_SERVING, delay: time.Second}
	opts := startServer(t, health)
	opts.Retry.MaxAttempts = 1

	// when
	err := Check(context.Background(), "passthrough://bufnet", "shop", opts)

	// then
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, codes.DeadlineExceeded, st.Code())
}
