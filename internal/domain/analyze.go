package domain

import (
	"fmt"
	"time"
)

// DayResult is the scored outcome for one forecast day. Immutable once produced.
type DayResult struct {
	Date                    string  `json:"date"`
	TotalPrecipitation      float64 `json:"totalPrecipitation"`
	PrecipitationDescriptor string  `json:"precipitationDescriptor"`
	HeavyHourCount          int     `json:"heavyHourCount"`
	FloodProbability        int     `json:"floodProbability"`
	PredictionAccuracy      int     `json:"predictionAccuracy"`
}

// CommunityResult carries a community's identity plus its scored forecast
// days, in provider order.
type CommunityResult struct {
	Name          string      `json:"name"`
	LGA           string      `json:"LGA"`
	Lat           float64     `json:"lat"`
	Lng           float64     `json:"lng"`
	Risk          RiskTier    `json:"risk"`
	DailyForecast []DayResult `json:"dailyForecast"`
	GeneratedAt   time.Time   `json:"generatedAt"`
}

// AnalyzeDay composes the severity descriptor, heavy-hour count, flood score,
// and confidence for a single forecast day.
func AnalyzeDay(block ForecastDay, tier RiskTier) (DayResult, error) {
	descriptor, err := DescribePrecipitation(block.Day.TotalPrecipMM)
	if err != nil {
		return DayResult{}, fmt.Errorf("analyze day %s: %w", block.Date, err)
	}

	return DayResult{
		Date:                    block.Date,
		TotalPrecipitation:      block.Day.TotalPrecipMM,
		PrecipitationDescriptor: descriptor,
		HeavyHourCount:          CountHeavyHours(block.Hours),
		FloodProbability:        FloodScore(block.Day, block.Hours, tier),
		PredictionAccuracy:      Confidence(block.Day, block.Hours),
	}, nil
}

// AnalyzeForecast maps every day block in the payload to a DayResult,
// preserving provider order. The provider sends three days; the length is
// not enforced here.
func AnalyzeForecast(payload ForecastPayload, tier RiskTier) ([]DayResult, error) {
	blocks := payload.Forecast.ForecastDays
	results := make([]DayResult, 0, len(blocks))
	for _, block := range blocks {
		r, err := AnalyzeDay(block, tier)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// AnalyzeCommunity runs the full forecast analysis for one community and
// stamps the result with the current clock time.
func AnalyzeCommunity(c Community, payload ForecastPayload) (CommunityResult, error) {
	days, err := AnalyzeForecast(payload, c.Risk)
	if err != nil {
		return CommunityResult{}, fmt.Errorf("analyze community %s: %w", c.Name, err)
	}

	return CommunityResult{
		Name:          c.Name,
		LGA:           c.LGA,
		Lat:           c.Lat,
		Lng:           c.Lng,
		Risk:          c.Risk,
		DailyForecast: days,
		GeneratedAt:   clock.Now(),
	}, nil
}
