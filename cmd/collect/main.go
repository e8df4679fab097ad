package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	kafkaadapter "github.com/lowceiling/mos-data-etl/internal/adapter/kafka"
	"github.com/lowceiling/mos-data-etl/internal/adapter/noaa"
	"github.com/lowceiling/mos-data-etl/internal/collector"
	"github.com/lowceiling/mos-data-etl/internal/config"
	"github.com/lowceiling/mos-data-etl/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if len(cfg.FetchStations) == 0 {
		slog.Error("FETCH_STATIONS is required for the collector")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := noaa.NewClient(cfg.NOAABaseURL, cfg.NOAATimeout, metrics, logger)
	source := noaa.NewCachedSource(client, cfg.NOAACacheSize, cfg.NOAACacheTTL, metrics)

	// Raw bulletins go to the pipeline's source topic.
	writer := kafkaadapter.NewWriterForTopic(cfg, cfg.KafkaSourceTopic, logger)

	c := collector.New(source, writer, cfg.FetchStations, cfg.FetchReportTypes, cfg.FetchInterval, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := c.Run(ctx); err != nil {
		logger.Error("collector error", "error", err)
	}

	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
