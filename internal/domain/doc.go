// Package domain models flood-risk scoring for community weather forecasts.
//
// # Data Source
//
// Forecasts come from the weatherapi.com 3-day forecast endpoint, queried per
// community by coordinate pair. Each response carries one block per calendar
// day with daily aggregates (total precipitation, humidity, cloud cover, wind,
// UV, condition code, chance of rain) and a 24-entry hourly breakdown.
//
// # Reference Data
//
// Communities are static reference data: name, coordinates, administrative
// area (LGA, Local Government Area), and a baseline flood-risk tier assigned
// by local assessment (Low, Medium, High). The dataset is loaded once at
// startup and is read-only here.
//
// # Flood Probability
//
// [FloodScore] is an additive point system clamped to 100:
//
//	base:        50 for High-tier communities, 20 otherwise
//	total rain:  >80mm +30 | >50mm +20 | >30mm +10 (highest matching tier only)
//	heavy hours: +2 per hour with >5mm precipitation
//	humidity:    >80% +5
//	cloud cover: >70% +3
//	max wind:    >50kph +5
//	condition:   code in [200,300) (rain/thunder band) +10
//	UV index:    <2 +5
//
// Low and Medium tiers share the same base score. That is how the thresholds
// were calibrated in production; do not "fix" it without recalibrating.
//
// # Prediction Confidence
//
// [Confidence] starts at 60 and rewards stable signals:
//
//	hourly precipitation spread <2mm  +10 (skipped when no hourly data exists)
//	daily chance of rain >80%         +10
//	condition code in [200,300)       +5
//
// # Precipitation Severity
//
// [DescribePrecipitation] buckets a millimeter total into a human-readable
// severity line, boundaries closed on the upper bound:
//
//	≤2mm   Very light/drizzle | ≤5mm  Light rain | ≤20mm Moderate rain
//	≤50mm  Heavy rain         | else  Torrential
//
// # Alert Rules
//
// [EvaluateAlerts] applies tier-specific daily rainfall rules:
//
//	Low:    rain > 5mm          (any meaningful rain is unusual)
//	Medium: 30mm ≤ rain ≤ 50mm
//	High:   20mm ≤ rain ≤ 30mm  (saturated ground floods early)
//
// A community with at least one qualifying day yields exactly one
// [AlertRecord] accumulating all qualifying (date, amount) pairs.
package domain
