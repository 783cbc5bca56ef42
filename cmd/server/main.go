package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appreport "github.com/bizops/reporting/internal/application/report"
	"github.com/bizops/reporting/internal/infrastructure/aggregator"
	"github.com/bizops/reporting/internal/infrastructure/auth"
	"github.com/bizops/reporting/internal/infrastructure/cache"
	"github.com/bizops/reporting/internal/infrastructure/config"
	"github.com/bizops/reporting/internal/infrastructure/logger"
	"github.com/bizops/reporting/internal/infrastructure/telemetry"
	"github.com/bizops/reporting/internal/interfaces/http/handler"
	"github.com/bizops/reporting/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer, err := telemetry.NewTracer(ctx, telemetry.TracerConfig{
		Enabled:            cfg.Telemetry.Enabled,
		ServiceName:        cfg.Telemetry.ServiceName,
		ServiceVersion:     version,
		Environment:        cfg.App.Env,
		ExporterEndpoint:   cfg.Telemetry.CollectorEndpoint,
		Insecure:           cfg.Telemetry.Insecure,
		SamplingRatio:      cfg.Telemetry.SamplingRatio,
		EnableSpanProfiles: cfg.Profiling.Enabled,
	}, log)
	if err != nil {
		return err
	}
	defer tracer.Shutdown(context.Background())

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.App.Name,
		Environment:     cfg.App.Env,
	}, log)
	if err != nil {
		return err
	}
	defer profiler.Stop()

	store, err := cache.NewFactory(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cache.WithLogger(log)).CreateStore(cfg.App.Name)
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := aggregator.NewClient(aggregator.Config{
		BaseURL: cfg.Aggregator.BaseURL,
		APIKey:  cfg.Aggregator.APIKey,
		Timeout: cfg.Aggregator.Timeout,
	}, log)
	if err != nil {
		return err
	}

	branches := appreport.NewAggregatorBranchGateway(client, store, cfg.Cache.BranchTTL, log)
	service := appreport.NewService(client, branches, store, cfg.Cache.ReportTTL, log)
	verifier := auth.NewVerifier(cfg.JWT)

	engine := router.New(cfg, verifier, router.Handlers{
		System:  handler.NewSystemHandler(cfg.App.Name, version, log),
		Reports: handler.NewReportHandler(service, log),
		Finance: handler.NewFinanceHandler(service, log),
	}, log)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
