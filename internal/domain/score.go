package domain

// Threshold constants shared by scoring and severity counting.
const (
	// heavyHourMM is the hourly precipitation above which an hour counts as heavy.
	heavyHourMM = 5.0

	// rainThunderCodeMin and rainThunderCodeMax bound the provider's
	// rain/thunder condition-code band, half-open [min, max).
	rainThunderCodeMin = 200
	rainThunderCodeMax = 300
)

// FloodScore computes the 0-100 flood-probability score for one forecast day.
// It is a pure additive point system; see the package doc for the full table.
func FloodScore(day DayForecast, hours []HourlyObservation, tier RiskTier) int {
	score := 20
	if tier == RiskHigh {
		score = 50
	}

	switch rain := day.TotalPrecipMM; {
	case rain > 80:
		score += 30
	case rain > 50:
		score += 20
	case rain > 30:
		score += 10
	}

	score += 2 * CountHeavyHours(hours)

	if day.AvgHumidity > 80 {
		score += 5
	}
	if day.Cloud > 70 {
		score += 3
	}
	if day.MaxWindKPH > 50 {
		score += 5
	}
	if inRainThunderBand(day.Condition.Code) {
		score += 10
	}
	if day.UV < 2 {
		score += 5
	}

	return clampScore(score)
}

// Confidence computes the 0-100 prediction-confidence score for one forecast
// day. When the hourly sequence is empty the spread bonus is skipped rather
// than comparing against an undefined min/max.
func Confidence(day DayForecast, hours []HourlyObservation) int {
	conf := 60

	if spread, ok := precipSpread(hours); ok && spread < 2 {
		conf += 10
	}
	if day.DailyChanceOfRain > 80 {
		conf += 10
	}
	if inRainThunderBand(day.Condition.Code) {
		conf += 5
	}

	return clampScore(conf)
}

// CountHeavyHours counts hours with precipitation above heavyHourMM.
func CountHeavyHours(hours []HourlyObservation) int {
	n := 0
	for _, h := range hours {
		if h.PrecipMM > heavyHourMM {
			n++
		}
	}
	return n
}

// precipSpread returns max-min hourly precipitation and whether any hours exist.
func precipSpread(hours []HourlyObservation) (float64, bool) {
	if len(hours) == 0 {
		return 0, false
	}
	minMM, maxMM := hours[0].PrecipMM, hours[0].PrecipMM
	for _, h := range hours[1:] {
		if h.PrecipMM < minMM {
			minMM = h.PrecipMM
		}
		if h.PrecipMM > maxMM {
			maxMM = h.PrecipMM
		}
	}
	return maxMM - minMM, true
}

func inRainThunderBand(code int) bool {
	return code >= rainThunderCodeMin && code < rainThunderCodeMax
}

func clampScore(n int) int {
	if n > 100 {
		return 100
	}
	return n
}
