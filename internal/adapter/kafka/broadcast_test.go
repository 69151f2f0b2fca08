package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraguard/floodwatch/internal/domain"
	"github.com/terraguard/floodwatch/internal/snapshot"
)

func TestSerializeToMessage(t *testing.T) {
	issued := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	n := snapshot.AlertNotification{
		ID:       "2f1c9a4e-0000-0000-0000-000000000001",
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

	msg, err := serializeToMessage(n)
	require.NoError(t, err)

	assert.Equal(t, "Adadama_Abi", string(msg.Key))

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, n.ID, headers["alert_id"])
	assert.Equal(t, "High", headers["risk_tier"])
	assert.Equal(t, "2026-08-28T09:30:00Z", headers["issued_at"])

	var decoded snapshot.AlertNotification
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, n.ID, decoded.ID)
	assert.Equal(t, "Adadama", decoded.Alert.CommunityName)
	require.Len(t, decoded.Alert.Dates, 1)
	assert.Equal(t, 25.0, decoded.Alert.Dates[0].RainAmount)
}
