// Package kafka publishes flood alerts to the real-time broadcast topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/terraguard/floodwatch/internal/config"
	"github.com/terraguard/floodwatch/internal/snapshot"
)

// Broadcaster produces alert messages to the configured Kafka topic.
// It implements snapshot.Broadcaster.
type Broadcaster struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewBroadcaster creates a Kafka producer for the alert topic.
func NewBroadcaster(cfg *config.Config, logger *slog.Logger) *Broadcaster {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Broadcaster{writer: w, logger: logger}
}

// Broadcast serializes and publishes one alert notification.
func (b *Broadcaster) Broadcast(ctx context.Context, n snapshot.AlertNotification) error {
	msg, err := serializeToMessage(n)
	if err != nil {
		return err
	}
	return b.writer.WriteMessages(ctx, msg)
}

func (b *Broadcaster) Close() error {
	return b.writer.Close()
}

// serializeToMessage marshals an alert notification into a Kafka message.
// The key is the "<community>_<LGA>" alert key so consumers that compact by
// key keep the latest alert per community.
func serializeToMessage(n snapshot.AlertNotification) (kafkago.Message, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert %s: %w", n.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(n.Alert.Key()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "alert_id", Value: []byte(n.ID)},
			{Key: "risk_tier", Value: []byte(n.Alert.Risk)},
			{Key: "issued_at", Value: []byte(n.IssuedAt.Format(time.RFC3339))},
		},
	}, nil
}
