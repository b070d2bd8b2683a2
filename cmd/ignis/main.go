package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/adapter/geojson"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/adapter/htmllist"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/adapter/httpapi"
	kafkaadapter "github.com/dpatangia0001/IGNIS-CAC-sub000/internal/adapter/kafka"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/adapter/rss"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/catalog"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/config"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/detailcache"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/extract"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/observability"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	var sources []pipeline.Source
	if cfg.FeedURL != "" {
		sources = append(sources, geojson.NewClient(cfg.FeedURL, cfg.FetchTimeout, logger))
	}
	if cfg.RSSURL != "" {
		sources = append(sources, rss.NewClient(cfg.RSSURL, cfg.FetchTimeout, logger))
	}
	if cfg.ListingURL != "" {
		sources = append(sources, htmllist.NewClient(cfg.ListingURL, cfg.FetchTimeout, logger))
	}

	store := catalog.NewStore(nil)

	// Kafka publishing is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var publisher pipeline.Publisher
	var kafkaPub *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPub = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPub
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	refresher := pipeline.New(sources, store, publisher, logger, metrics)

	fetcher := detailcache.NewHTTPFetcher(cfg.FetchTimeout)
	engine := extract.NewEngine(logger)
	details := detailcache.New(fetcher, engine, cfg.DetailTTL, nil, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, store, details, fetcher, refresher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the refresh loop (immediate first pass, then periodic) and the
	// detail cache sweep.
	go func() {
		if err := refresher.Run(ctx, cfg.RefreshInterval); err != nil {
			logger.Error("refresh loop error", "error", err)
		}
	}()
	go details.Run(ctx, cfg.DetailTTL)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
