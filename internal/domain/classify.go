package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativePrecipitation is returned when a precipitation quantity is
// below zero. The provider never reports negative rainfall, so a negative
// value means corrupt input, not a valid bucket.
var ErrNegativePrecipitation = errors.New("negative precipitation")

// precipBucket is one severity band, matched when mm <= Max.
type precipBucket struct {
	Max        float64
	Descriptor string
	Impact     string
}

// precipBuckets are evaluated in ascending Max order, first match wins.
// Boundaries are closed on Max: 5mm is still "Light rain".
var precipBuckets = []precipBucket{
	{Max: 2, Descriptor: "Very light/drizzle", Impact: "Barely even wets the ground"},
	{Max: 5, Descriptor: "Light rain", Impact: "Noticeable showers, damp roads"},
	{Max: 20, Descriptor: "Moderate rain", Impact: "Surface run-off begins"},
	{Max: 50, Descriptor: "Heavy rain", Impact: "Risk of localized flooding"},
	{Max: math.Inf(1), Descriptor: "Torrential", Impact: "High flood risk"},
}

// DescribePrecipitation maps a millimeter total to its severity line,
// formatted "<descriptor>, <impact>".
func DescribePrecipitation(mm float64) (string, error) {
	if mm < 0 {
		return "", fmt.Errorf("describe precipitation: %w (%.2fmm)", ErrNegativePrecipitation, mm)
	}
	for _, b := range precipBuckets {
		if mm <= b.Max {
			return b.Descriptor + ", " + b.Impact, nil
		}
	}
	// Unreachable: the last bucket has Max = +Inf.
	return "", fmt.Errorf("describe precipitation: no bucket for %.2fmm", mm)
}
