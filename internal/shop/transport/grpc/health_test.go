package grpc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type switchPinger struct {
	down atomic.Bool
}

func (s *switchPinger) Ping(context.Context) error {
	if s.down.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func newProbe(pinger Pinger) *HealthProbe {
	return NewHealthProbe(pinger, time.Hour, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func check(t *testing.T, p *HealthProbe, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := p.server.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthProbe_Probe(t *testing.T) {
	// given
	pinger := &switchPinger{}
	probe := newProbe(pinger)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, probe, ""))

	// when
	probe.Probe(context.Background())

	// then
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, probe, ""))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, probe, ServiceName))

	// when
	pinger.down.Store(true)
	probe.Probe(context.Background())

	// then
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, probe, ServiceName))
}

func TestHealthProbe_RunStopsWithContext(t *testing.T) {
	// given
	probe := newProbe(&switchPinger{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// when
	go func() { done <- probe.Run(ctx) }()
	require.Eventually(t, func() bool {
		resp, err := probe.server.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})
		return err == nil && resp.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)
	cancel()

	// then
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("probe did not stop")
	}
	probe.Shutdown()
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, probe, ""))
}
