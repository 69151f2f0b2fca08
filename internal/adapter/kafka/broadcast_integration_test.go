//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/terraguard/floodwatch/internal/config"
	"github.com/terraguard/floodwatch/internal/domain"
	"github.com/terraguard/floodwatch/internal/snapshot"
)

const testTopic = "flood-alerts-test"

func startKafka(t *testing.T) []string {
	t.Helper()
	ctx := context.Background()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("floodwatch-test"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func TestBroadcastRoundTrip(t *testing.T) {
	brokers := startKafka(t)
	createTopic(t, brokers[0], testTopic)

	cfg := &config.Config{
		KafkaBrokers:    brokers,
		KafkaAlertTopic: testTopic,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	broadcaster := NewBroadcaster(cfg, logger)
	defer broadcaster.Close()

	issued := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	sent := snapshot.AlertNotification{
		ID:       "it-alert-1",
		IssuedAt: issued,
		Alert: domain.AlertRecord{
			CommunityName: "Adadama",
			LGA:           "Abi",
			Risk:          domain.RiskHigh,
			Lat:           5.9509,
			Lng:           7.9318,
			Dates: []domain.QualifyingDay{
				{Date: "2026-08-29", RainAmount: 25.0},
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	require.NoError(t, broadcaster.Broadcast(ctx, sent))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: brokers,
		Topic:   testTopic,
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Adadama_Abi", string(msg.Key))

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "it-alert-1", headers["alert_id"])
	assert.Equal(t, "High", headers["risk_tier"])
	assert.Equal(t, "2026-08-28T12:00:00Z", headers["issued_at"])

	var got snapshot.AlertNotification
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, sent.ID, got.ID)
	assert.Equal(t, sent.Alert, got.Alert)
	assert.True(t, sent.IssuedAt.Equal(got.IssuedAt))
}
