// Command floodcheck scores a saved weatherapi.com forecast response offline.
// It runs the same analysis the service applies to live data, which makes it
// useful for calibrating thresholds against captured payloads without hitting
// the provider.
//
// Usage:
//
//	go run ./cmd/floodcheck -forecast payload.json -risk High
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/terraguard/floodwatch/internal/domain"
)

func main() {
	forecastPath := flag.String("forecast", "", "path to a saved weatherapi.com forecast JSON response")
	risk := flag.String("risk", "Low", "community risk tier (Low, Medium, High)")
	flag.Parse()

	if *forecastPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*forecastPath, *risk); code != 0 {
		os.Exit(code)
	}
}

func run(forecastPath, risk string) int {
	tier, err := domain.ParseRiskTier(risk)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	data, err := os.ReadFile(forecastPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read forecast: %v\n", err)
		return 1
	}

	var payload domain.ForecastPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse forecast: %v\n", err)
		return 1
	}

	days, err := domain.AnalyzeForecast(payload, tier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: analyze forecast: %v\n", err)
		return 1
	}

	fmt.Printf("=== Flood Check (%s tier, %d days) ===\n\n", tier, len(days))
	for _, day := range days {
		fmt.Printf("%s  rain %6.1f mm  heavy hours %2d  probability %3d  accuracy %3d  %s\n",
			day.Date,
			day.TotalPrecipitation,
			day.HeavyHourCount,
			day.FloodProbability,
			day.PredictionAccuracy,
			day.PrecipitationDescriptor,
		)
	}

	grouped := domain.NewGroupedResults()
	grouped.Add(domain.CommunityResult{
		Name:          "floodcheck",
		LGA:           "floodcheck",
		Risk:          tier,
		DailyForecast: days,
	})

	alerts := domain.EvaluateAlerts(grouped)
	fmt.Println()
	if len(alerts) == 0 {
		fmt.Println("No days qualify for an alert at this tier.")
		return 0
	}
	for _, day := range alerts[0].Dates {
		fmt.Printf("ALERT: %s qualifies with %.1f mm\n", day.Date, day.RainAmount)
	}
	return 0
}
