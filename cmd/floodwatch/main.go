package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/terraguard/floodwatch/internal/adapter/httpapi"
	kafkaadapter "github.com/terraguard/floodwatch/internal/adapter/kafka"
	"github.com/terraguard/floodwatch/internal/adapter/mailer"
	"github.com/terraguard/floodwatch/internal/adapter/weatherapi"
	"github.com/terraguard/floodwatch/internal/config"
	"github.com/terraguard/floodwatch/internal/dataset"
	"github.com/terraguard/floodwatch/internal/observability"
	"github.com/terraguard/floodwatch/internal/snapshot"
)

func main() {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	communities, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load community dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}
	logger.Info("community dataset loaded", "path", cfg.DatasetPath, "communities", len(communities))

	fetcher := weatherapi.NewClient(cfg, logger, metrics)

	// Alert delivery (feature-flagged via MAILER_URL).
	var deliverer snapshot.Deliverer
	if cfg.MailerEnabled() {
		deliverer = mailer.NewClient(cfg.MailerURL, cfg.MailerTimeout, logger)
		logger.Info("alert mail delivery enabled", "url", cfg.MailerURL)
	} else {
		logger.Info("alert mail delivery disabled")
	}

	// Alert broadcast (feature-flagged via BROADCAST_ENABLED).
	var broadcaster snapshot.Broadcaster
	var kafkaBroadcaster *kafkaadapter.Broadcaster
	if cfg.BroadcastEnabled {
		kafkaBroadcaster = kafkaadapter.NewBroadcaster(cfg, logger)
		broadcaster = kafkaBroadcaster
		metrics.BroadcastEnabled.Set(1)
		logger.Info("alert broadcast enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAlertTopic)
	} else {
		metrics.BroadcastEnabled.Set(0)
		logger.Info("alert broadcast disabled")
	}

	notifier := snapshot.NewNotifier(deliverer, broadcaster, logger, metrics)
	service := snapshot.NewService(communities, fetcher, notifier, logger, metrics, cfg.WeatherTimeout)

	srv := httpapi.NewServer(cfg.HTTPAddr, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaBroadcaster != nil {
		if err := kafkaBroadcaster.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
