// Package main runs the shop service: the REST API, the gRPC health endpoint and optional pprof.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/spf13/pflag"
	"github.com/zhiidetopchubaeva/shop/internal/shop/app"
	"github.com/zhiidetopchubaeva/shop/internal/shop/config"
	grpcImpl "github.com/zhiidetopchubaeva/shop/internal/shop/transport/grpc"
	"github.com/zhiidetopchubaeva/shop/migrations"
	"github.com/zhiidetopchubaeva/shop/pkg/bootstrap"
	"github.com/zhiidetopchubaeva/shop/pkg/client/grpc/probe"
	"github.com/zhiidetopchubaeva/shop/pkg/config/configloader"
	"github.com/zhiidetopchubaeva/shop/pkg/telemetry"
	"github.com/zhiidetopchubaeva/shop/pkg/web"
	"golang.org/x/sync/errgroup"
)

func main() {
	configFile := pflag.String("config", configloader.DefaultConfigFile, "path to the yaml configuration file")
	migrate := pflag.Bool("migrate", false, "apply database migrations on startup")
	healthcheck := pflag.Bool("probe", false, "query the gRPC health endpoint of a running instance and exit")
	pflag.Parse()

	if *healthcheck {
		if err := runProbe(*configFile); err != nil {
			log.Printf("probe failed: %v", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFile, *migrate); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run initializes the application, sets up the database connection, and starts the HTTP, gRPC and pprof servers.
func run(ctx context.Context, configFile string, migrate bool) error {
	cfg, cfgErr := configloader.LoadFile[*config.Config](app.ServiceName, configFile)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level, web.UserIDAttr)
	slog.SetDefault(logger)

	if migrate || cfg.Database.Migrate {
		if err := migrations.Up(cfg.Database.URL); err != nil {
			return err
		}
		logger.Info("Database migrations applied")
	}

	dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout, cfg.Database.MaxConns)
	if err != nil {
		return fmt.Errorf("failed to create database connection pool: %w", err)
	}
	defer dbPool.Close()
	logger.Info("Successfully connected to the database!")

	shutdownFns := make([]func(context.Context) error, 0, 2)
	if cfg.Telemetry.Traces.Enabled {
		tracerProvider, err := telemetry.NewTracerProvider(ctx, app.ServiceName, cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("failed to create tracer provider: %w", err)
		}
		shutdownFns = append(shutdownFns, tracerProvider.Shutdown)
	}
	var metricsHandler http.Handler
	if cfg.Telemetry.Metrics.Enabled {
		meterProvider, handler, err := telemetry.NewMeterProvider(app.ServiceName)
		if err != nil {
			return fmt.Errorf("failed to create meter provider: %w", err)
		}
		metricsHandler = handler
		shutdownFns = append(shutdownFns, meterProvider.Shutdown)
	}

	publisher, closePublisher, err := app.SetupPublisher(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up event publisher: %w", err)
	}
	defer closePublisher()

	deps, err := app.SetupDependencies(ctx, dbPool, publisher, cfg, logger)
	if err != nil {
		return err
	}
	deps.MetricsHandler = metricsHandler

	httpServer := app.SetupHttpServer(deps, cfg)
	grpcServer, healthProbe := app.SetupGrpcServer(deps, cfg)
	pprofServer := &http.Server{
		Addr:              cfg.PProf.Addr,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout.ReadHeader,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start the HTTP server
	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	// Keep the gRPC health status in line with the database
	g.Go(func() error {
		return healthProbe.Run(gCtx)
	})

	// Start the gRPC server
	g.Go(func() error {
		grpcAddr := ":" + cfg.GRPC.Port
		lis, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on gRPC port: %w", err)
		}
		logger.Info("gRPC server listening", slog.String("addr", grpcAddr))
		return grpcServer.Serve(lis)
	})
	// gracefully shutdown gRPC server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down gRPC server...")
		healthProbe.Shutdown()
		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
			logger.Info("gRPC server stopped gracefully.")
			return nil
		case <-time.After(cfg.Shutdown.Timeout):
			logger.Warn("gRPC server graceful stop timed out. Forcing stop.")
			grpcServer.Stop()
			return fmt.Errorf("grpc server graceful stop timed out")
		}
	})

	// Start the pprof server if enabled
	if cfg.PProf.Enabled {
		g.Go(func() error {
			logger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		// gracefully shutdown pprof server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}

	// flush telemetry providers
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		var errs []error
		for _, shutdown := range shutdownFns {
			errs = append(errs, shutdown(shutdownCtx))
		}
		if err := errors.Join(errs...); err != nil {
			return fmt.Errorf("failed to shutdown telemetry: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// runProbe checks the local instance through its gRPC health service, for container health checks.
func runProbe(configFile string) error {
	cfg, err := configloader.LoadFile[*config.Config](app.ServiceName, configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
	defer cancel()
	return probe.Check(ctx, net.JoinHostPort("localhost", cfg.GRPC.Port), grpcImpl.ServiceName, probe.Options{
		Retry:   cfg.Resilience.Retry,
		Timeout: cfg.Probes.Timeout,
	})
}
