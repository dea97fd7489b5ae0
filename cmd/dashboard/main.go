package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/quake-dashboard/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/quake-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/quake-dashboard/internal/adapter/mapbox"
	"github.com/couchcryptid/quake-dashboard/internal/config"
	"github.com/couchcryptid/quake-dashboard/internal/dashboard"
	"github.com/couchcryptid/quake-dashboard/internal/dataset"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Country backfill is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		cached, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			logger.Error("failed to create geocoder cache", "error", err)
			os.Exit(1)
		}
		geocoder = cached
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox country backfill enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox country backfill disabled")
	}

	var source dataset.Source
	switch cfg.DatasetSource {
	case config.SourceKafka:
		source = kafkaadapter.NewSnapshotReader(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaSnapshotTimeout, logger)
		logger.Info("dataset source", "source", cfg.DatasetSource, "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	default:
		source = csvfile.NewSource(cfg.DatasetPath, cfg.DatasetFooterRows, logger)
		logger.Info("dataset source", "source", cfg.DatasetSource, "path", cfg.DatasetPath)
	}

	transformer := dataset.NewTransformer(geocoder, logger, metrics)
	loader := dataset.NewLoader(source, transformer, logger, metrics)

	pieOrder, _ := domain.ParseSliceOrder(cfg.PieOrder)
	svc := dashboard.NewService(loader, metrics, pieOrder)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, loader, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	go func() {
		if err := loader.Run(ctx); err != nil {
			logger.Error("dataset load error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
