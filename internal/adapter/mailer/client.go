// Package mailer delivers flood alerts to the outbound notification service.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/terraguard/floodwatch/internal/snapshot"
)

// Client posts alert notifications to the mail service's send-alert endpoint.
// It implements snapshot.Deliverer.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a mail-delivery client for the given service base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
		logger: logger,
	}
}

// sendAlertRequest is the mail service's wire format: one message per alert,
// listing every qualifying day.
type sendAlertRequest struct {
	AlertID  string         `json:"alertId"`
	Location string         `json:"location"`
	LGA      string         `json:"LGA"`
	Risk     string         `json:"risk"`
	IssuedAt string         `json:"issuedAt"`
	Dates    []riskyDayBody `json:"dates"`
}

type riskyDayBody struct {
	Date         string  `json:"date"`
	RainAmountMM float64 `json:"rainAmountMm"`
}

// SendAlert posts one alert notification. A non-2xx response is an error;
// the caller decides whether to log and move on.
func (c *Client) SendAlert(ctx context.Context, n snapshot.AlertNotification) error {
	body := sendAlertRequest{
		AlertID:  n.ID,
		Location: n.Alert.CommunityName,
		LGA:      n.Alert.LGA,
		Risk:     string(n.Alert.Risk),
		IssuedAt: n.IssuedAt.Format(time.RFC3339),
		Dates:    make([]riskyDayBody, 0, len(n.Alert.Dates)),
	}
	for _, d := range n.Alert.Dates {
		body.Dates = append(body.Dates, riskyDayBody{Date: d.Date, RainAmountMM: d.RainAmount})
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/api/send-alert")
	if err != nil {
		return fmt.Errorf("send alert %s: %w", n.ID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("send alert %s: mailer status %d: %s", n.ID, resp.StatusCode(), resp.String())
	}

	c.logger.Debug("alert mail sent", "alert_id", n.ID, "community", n.Alert.CommunityName)
	return nil
}
