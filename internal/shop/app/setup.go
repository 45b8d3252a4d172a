// Package app contains the application setup for the shop service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zhiidetopchubaeva/shop/internal/shop/config"
	"github.com/zhiidetopchubaeva/shop/internal/shop/events"
	"github.com/zhiidetopchubaeva/shop/internal/shop/service"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store"
	grpcImpl "github.com/zhiidetopchubaeva/shop/internal/shop/transport/grpc"
	"github.com/zhiidetopchubaeva/shop/internal/shop/transport/rest"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
	"github.com/zhiidetopchubaeva/shop/pkg/messaging"
	natsclient "github.com/zhiidetopchubaeva/shop/pkg/nats"
	"github.com/zhiidetopchubaeva/shop/pkg/server"
	"google.golang.org/grpc"
)

// ServiceName identifies the shop in traces, metrics and environment variables.
const ServiceName = "shop"

type Dependencies struct {
	Services rest.Services
	Pinger   rest.Pinger
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	Logger         *slog.Logger
}

// SetupDependencies builds the store and the services on top of it.
// In idp mode it fetches the JWKS, so ctx bounds that first request.
func SetupDependencies(ctx context.Context, dbPool *pgxpool.Pool, publisher messaging.Publisher, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	pgStore := store.NewPgStore(dbPool,
		store.WithMaxAttempts(cfg.Resilience.Retry.MaxAttempts),
		store.WithBackoff(cfg.Resilience.Retry.InitialBackoff),
	)

	accounts, err := setupAccounts(ctx, pgStore, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Services: rest.Services{
			Accounts:     accounts,
			Products:     service.NewProductService(pgStore),
			Categories:   service.NewCategoryService(pgStore),
			Comments:     service.NewCommentService(pgStore, publisher, logger),
			Interactions: service.NewInteractionService(pgStore, publisher, logger),
		},
		Pinger: pgStore,
		Logger: logger,
	}, nil
}

func setupAccounts(ctx context.Context, users store.UserStore, cfg *config.Config, logger *slog.Logger) (service.AccountService, error) {
	if !cfg.IdPMode() {
		issuer := auth.NewHMACIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		return service.NewLocalAccountService(users, issuer, logger), nil
	}
	verifier, err := auth.NewJWTVerifier(ctx, cfg.IdP)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT verifier: %w", err)
	}
	registrar := service.NewKeycloakRegistrar(cfg.Keycloak, logger)
	return service.NewIdPAccountService(users, verifier, registrar, logger), nil
}

// SetupPublisher connects to NATS and makes sure the event stream exists.
// With NATS disabled events are discarded. The returned func releases the connection.
func SetupPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.NATS.Enabled {
		logger.Info("NATS is disabled, domain events are discarded")
		return messaging.NoopPublisher{}, func() {}, nil
	}
	nc, err := natsclient.NewClient(cfg.NATS.Url, cfg.NATS.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := natsclient.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	if err := natsclient.EnsureStream(ctx, js, cfg.NATS.Stream, events.StreamSubjects); err != nil {
		nc.Close()
		return nil, nil, err
	}
	publisher := messaging.NewBreakerPublisher(natsclient.NewNatsPublisher(js), cfg.Resilience.CircuitBreaker, logger)
	closeFn := func() {
		if err := nc.Drain(); err != nil {
			logger.Warn("Failed to drain NATS connection", "error", err)
		}
	}
	return publisher, closeFn, nil
}

// SetupHttpHandler initializes the router and routes of the shop API.
// Used by tests to get the complete middleware chain.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger, deps.Services.Accounts)
	wireRoutes(mux, deps, cfg)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies, cfg *config.Config) {
	rest.NewHandler(deps.Services, deps.Logger).RegisterRoutes(mux)
	rest.NewHealthHandler(deps.Pinger, cfg.Probes.Timeout, deps.Logger).RegisterRoutes(mux)
	if deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures the HTTP server of the shop API.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps, cfg)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, ServiceName, mux)
}

// SetupGrpcServer creates the gRPC server exposing the health service.
func SetupGrpcServer(deps *Dependencies, cfg *config.Config) (*grpc.Server, *grpcImpl.HealthProbe) {
	probe := grpcImpl.NewHealthProbe(deps.Pinger, cfg.Probes.Interval, cfg.Probes.Timeout, deps.Logger)
	return server.NewGRPCServer(deps.Logger, cfg.GRPC.ReflectionEnabled, probe.Register), probe
}
