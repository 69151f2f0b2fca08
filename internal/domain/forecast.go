package domain

// ForecastPayload mirrors the weatherapi.com forecast.json response, trimmed
// to the fields scoring reads. Unknown fields are ignored on decode.
type ForecastPayload struct {
	Forecast Forecast `json:"forecast"`
}

// Forecast wraps the provider's list of per-day blocks.
type Forecast struct {
	ForecastDays []ForecastDay `json:"forecastday"`
}

// ForecastDay is one calendar day: its date, daily aggregates, and the
// 24-entry hourly breakdown (length is a provider contract, not enforced).
type ForecastDay struct {
	Date  string              `json:"date"`
	Day   DayForecast         `json:"day"`
	Hours []HourlyObservation `json:"hour"`
}

// DayForecast holds the daily aggregate fields.
type DayForecast struct {
	TotalPrecipMM     float64   `json:"totalprecip_mm"`
	AvgHumidity       float64   `json:"avghumidity"`
	Cloud             float64   `json:"cloud"`
	MaxWindKPH        float64   `json:"maxwind_kph"`
	UV                float64   `json:"uv"`
	DailyChanceOfRain float64   `json:"daily_chance_of_rain"`
	Condition         Condition `json:"condition"`
}

// Condition carries the provider's weather-condition code.
// Codes in [200,300) are the provider's rain/thunder band.
type Condition struct {
	Code int    `json:"code"`
	Text string `json:"text,omitempty"`
}

// HourlyObservation is one hour's forecast slice.
type HourlyObservation struct {
	TimeEpoch int64   `json:"time_epoch,omitempty"`
	PrecipMM  float64 `json:"precip_mm"`
}
