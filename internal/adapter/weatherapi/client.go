// Package weatherapi is the forecast-provider client.
package weatherapi

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"

	"github.com/terraguard/floodwatch/internal/config"
	"github.com/terraguard/floodwatch/internal/domain"
	"github.com/terraguard/floodwatch/internal/observability"
)

// Client fetches multi-day forecasts from the weatherapi.com forecast
// endpoint. Requests run through a circuit breaker so a provider outage
// fails fast instead of stalling every community in a build.
type Client struct {
	http    *resty.Client
	key     string
	days    int
	breaker *gobreaker.CircuitBreaker[domain.ForecastPayload]
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewClient creates a forecast client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.WeatherBaseURL).
		SetTimeout(cfg.WeatherTimeout)

	breaker := gobreaker.NewCircuitBreaker[domain.ForecastPayload](gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		http:    httpClient,
		key:     cfg.WeatherAPIKey,
		days:    cfg.ForecastDays,
		breaker: breaker,
		logger:  logger,
		metrics: metrics,
	}
}

// FetchForecast retrieves one community's forecast. An open breaker counts
// as a fetch failure and is handled upstream like any other skip.
func (c *Client) FetchForecast(ctx context.Context, community domain.Community) (domain.ForecastPayload, error) {
	start := time.Now()
	payload, err := c.breaker.Execute(func() (domain.ForecastPayload, error) {
		return c.fetch(ctx, community)
	})
	c.metrics.ForecastFetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.ForecastFetches.WithLabelValues("error").Inc()
		return domain.ForecastPayload{}, fmt.Errorf("fetch forecast for %s: %w", community.Name, err)
	}

	c.metrics.ForecastFetches.WithLabelValues("success").Inc()
	return payload, nil
}

func (c *Client) fetch(ctx context.Context, community domain.Community) (domain.ForecastPayload, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":  c.key,
			"q":    fmt.Sprintf("%.4f,%.4f", community.Lat, community.Lng),
			"days": strconv.Itoa(c.days),
		}).
		SetResult(&domain.ForecastPayload{}).
		Get("/forecast.json")
	if err != nil {
		return domain.ForecastPayload{}, fmt.Errorf("forecast request: %w", err)
	}

	if resp.IsError() {
		return domain.ForecastPayload{}, fmt.Errorf("weatherapi status %d: %s", resp.StatusCode(), resp.String())
	}

	payload, ok := resp.Result().(*domain.ForecastPayload)
	if !ok || payload == nil {
		return domain.ForecastPayload{}, fmt.Errorf("decode forecast response for %s", community.Name)
	}
	return *payload, nil
}
