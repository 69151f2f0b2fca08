package snapshot

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/terraguard/floodwatch/internal/domain"
	"github.com/terraguard/floodwatch/internal/observability"
)

// AlertNotification wraps an AlertRecord with delivery metadata. The
// evaluator stays pure; IDs and timestamps are attached here, at the
// notification boundary.
type AlertNotification struct {
	ID       string             `json:"alertId"`
	IssuedAt time.Time          `json:"issuedAt"`
	Alert    domain.AlertRecord `json:"alert"`
}

// Deliverer sends one alert to the outbound notification service.
type Deliverer interface {
	SendAlert(ctx context.Context, n AlertNotification) error
}

// Broadcaster publishes one alert to the real-time push channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, n AlertNotification) error
}

// Notifier evaluates a grouped snapshot and fans each alert out to delivery
// and broadcast. Either collaborator may be nil (feature disabled).
type Notifier struct {
	deliverer   Deliverer
	broadcaster Broadcaster
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewNotifier creates a Notifier. Pass nil for a disabled channel.
func NewNotifier(deliverer Deliverer, broadcaster Broadcaster, logger *slog.Logger, metrics *observability.Metrics) *Notifier {
	return &Notifier{
		deliverer:   deliverer,
		broadcaster: broadcaster,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run evaluates the snapshot and processes every alert record in order.
// A delivery failure is logged and does not block the broadcast for that
// alert, nor any later alert.
func (n *Notifier) Run(ctx context.Context, grouped *domain.GroupedResults) {
	alerts := domain.EvaluateAlerts(grouped)
	if len(alerts) == 0 {
		n.logger.Info("no flood risks detected")
		return
	}

	for _, alert := range alerts {
		notification := AlertNotification{
			ID:       uuid.NewString(),
			IssuedAt: time.Now().UTC(),
			Alert:    alert,
		}

		n.metrics.AlertsRaised.Inc()
		n.logger.Warn("flood alert",
			"alert_id", notification.ID,
			"community", alert.CommunityName,
			"lga", alert.LGA,
			"risk", alert.Risk,
			"qualifying_days", len(alert.Dates),
		)

		if n.deliverer != nil {
			if err := n.deliverer.SendAlert(ctx, notification); err != nil {
				n.metrics.AlertDeliveryErrors.Inc()
				n.logger.Warn("alert delivery failed",
					"alert_id", notification.ID,
					"community", alert.CommunityName,
					"error", err,
				)
			}
		}

		// Broadcast fires regardless of delivery outcome.
		if n.broadcaster != nil {
			if err := n.broadcaster.Broadcast(ctx, notification); err != nil {
				n.logger.Warn("alert broadcast failed",
					"alert_id", notification.ID,
					"community", alert.CommunityName,
					"error", err,
				)
				continue
			}
			n.metrics.AlertsBroadcast.Inc()
		}
	}
}
