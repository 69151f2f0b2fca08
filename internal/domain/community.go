package domain

import "fmt"

// RiskTier is a community's baseline flood-risk classification.
type RiskTier string

const (
	RiskLow    RiskTier = "Low"
	RiskMedium RiskTier = "Medium"
	RiskHigh   RiskTier = "High"
)

// ParseRiskTier validates a tier string from the reference dataset.
func ParseRiskTier(s string) (RiskTier, error) {
	switch RiskTier(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskTier(s), nil
	default:
		return "", fmt.Errorf("unknown risk tier %q", s)
	}
}

// Community is one entry of the static reference dataset.
type Community struct {
	Name string   `json:"name"`
	LGA  string   `json:"LGA"`
	Lat  float64  `json:"lat"`
	Lng  float64  `json:"lng"`
	Risk RiskTier `json:"risk"`
}
