package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// forecast and alerting pipeline.
type Metrics struct {
	ForecastFetches       *prometheus.CounterVec // labels: outcome={success,error}
	ForecastFetchDuration prometheus.Histogram

	// Snapshot build metrics.
	SnapshotBuilds      prometheus.Counter
	SnapshotCommunities prometheus.Histogram
	SnapshotReady       prometheus.Gauge

	// Alerting metrics.
	AlertsRaised        prometheus.Counter
	AlertDeliveryErrors prometheus.Counter
	AlertsBroadcast     prometheus.Counter
	BroadcastEnabled    prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ForecastFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "forecast_fetches_total",
			Help:      "Forecast provider requests by outcome.",
		}, []string{"outcome"}),
		ForecastFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "floodwatch",
			Name:      "forecast_fetch_duration_seconds",
			Help:      "Forecast provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SnapshotBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "snapshot_builds_total",
			Help:      "Total grouped-snapshot builds completed.",
		}),
		SnapshotCommunities: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "floodwatch",
			Name:      "snapshot_communities",
			Help:      "Number of communities included per snapshot build.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
		}),
		SnapshotReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "floodwatch",
			Name:      "snapshot_ready",
			Help:      "1 when a grouped snapshot is cached, 0 before the first build.",
		}),
		AlertsRaised: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "alerts_raised_total",
			Help:      "Total flood alert records produced by evaluation.",
		}),
		AlertDeliveryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "alert_delivery_errors_total",
			Help:      "Total failed outbound alert deliveries.",
		}),
		AlertsBroadcast: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "alerts_broadcast_total",
			Help:      "Total alerts published to the broadcast topic.",
		}),
		BroadcastEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "floodwatch",
			Name:      "broadcast_enabled",
			Help:      "1 when alert broadcasting is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.ForecastFetches,
		m.ForecastFetchDuration,
		m.SnapshotBuilds,
		m.SnapshotCommunities,
		m.SnapshotReady,
		m.AlertsRaised,
		m.AlertDeliveryErrors,
		m.AlertsBroadcast,
		m.BroadcastEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ForecastFetches:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "floodwatch", Name: "forecast_fetches_total"}, []string{"outcome"}),
		ForecastFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "floodwatch", Name: "forecast_fetch_duration_seconds"}),
		SnapshotBuilds:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodwatch", Name: "snapshot_builds_total"}),
		SnapshotCommunities:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "floodwatch", Name: "snapshot_communities"}),
		SnapshotReady:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "floodwatch", Name: "snapshot_ready"}),
		AlertsRaised:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodwatch", Name: "alerts_raised_total"}),
		AlertDeliveryErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodwatch", Name: "alert_delivery_errors_total"}),
		AlertsBroadcast:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodwatch", Name: "alerts_broadcast_total"}),
		BroadcastEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "floodwatch", Name: "broadcast_enabled"}),
	}
}
