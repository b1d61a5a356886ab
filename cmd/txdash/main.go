package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"txdash/internal/backend"
	"txdash/internal/cache"
	"txdash/internal/cli"
	"txdash/internal/dashboard"
	apphttp "txdash/internal/http"
	"txdash/internal/log"
	"txdash/internal/metrics"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration",
			log.NewFields().WithError(err, log.ErrorTypeConfiguration).ToSlice()...)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger).CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend",
			append(log.NewFields().WithError(err, log.ErrorTypeConfiguration).ToSlice(),
				log.FieldBackend, cfg.DataBackend)...)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New()
	m.MustRegister(reg)

	session := dashboard.New(result.Backend, result.Backend, dashboard.Options{
		Logger:        logger,
		Metrics:       m,
		ViewCacheSize: cfg.ViewCacheSize,
		ViewCacheTTL:  cfg.ViewCacheTTL,
	})

	cacheManager := cache.NewManager(logger)
	cacheManager.Register(session.ViewCache())
	cacheManager.StartCleanup(cfg.CacheCleanupInterval)

	srv := apphttp.NewServer(":"+cfg.Port, session,
		apphttp.WithLogger(logger),
		apphttp.WithMetrics(m, reg),
		apphttp.WithTrustedProxies(cfg.TrustedProxies),
	)
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cacheManager.Stop()
		if err := result.Close(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	})

	// The page renders a spinner until this finishes.
	go func() {
		_ = session.Load(ctx)
	}()

	logger.Info("Starting txdash server",
		append(log.NewFields().WithOperation(log.OpStartup).ToSlice(),
			"port", cfg.Port, log.FieldBackend, cfg.DataBackend)...)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
