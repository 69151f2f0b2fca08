package domain

// QualifyingDay is one forecast day that matched its community's alert rule.
type QualifyingDay struct {
	Date       string  `json:"date"`
	RainAmount float64 `json:"rainAmount"`
}

// AlertRecord is one community's flood alert, carrying every qualifying day
// of its current forecast. Emitted, never persisted.
type AlertRecord struct {
	CommunityName string          `json:"communityName"`
	LGA           string          `json:"LGA"`
	Risk          RiskTier        `json:"risk"`
	Lat           float64         `json:"lat"`
	Lng           float64         `json:"lng"`
	Dates         []QualifyingDay `json:"dates"`
}

// Key identifies the alert by community and area, matching the
// "<community>_<LGA>" convention of the downstream consumers.
func (a AlertRecord) Key() string {
	return a.CommunityName + "_" + a.LGA
}

// dayQualifies applies the tier-specific daily rainfall rule.
//
// The bands are deliberately different shapes: Low-tier communities alert on
// any meaningful rain, Medium and High alert on closed ranges because their
// thresholds were tuned against historical flood reports.
func dayQualifies(tier RiskTier, rain float64) bool {
	switch tier {
	case RiskLow:
		return rain > 5
	case RiskMedium:
		return rain >= 30 && rain <= 50
	case RiskHigh:
		return rain >= 20 && rain <= 30
	default:
		return false
	}
}

// EvaluateAlerts scans grouped results and returns one AlertRecord per
// community with at least one qualifying day. Output order follows the
// grouping's (LGA, community) traversal order. Pure: identical input yields
// identical output, record order included.
func EvaluateAlerts(grouped *GroupedResults) []AlertRecord {
	var alerts []AlertRecord

	for _, lga := range grouped.Areas() {
		results, _ := grouped.ByArea(lga)
		for _, community := range results {
			var risky []QualifyingDay
			for _, day := range community.DailyForecast {
				if dayQualifies(community.Risk, day.TotalPrecipitation) {
					risky = append(risky, QualifyingDay{
						Date:       day.Date,
						RainAmount: day.TotalPrecipitation,
					})
				}
			}
			if len(risky) == 0 {
				continue
			}
			alerts = append(alerts, AlertRecord{
				CommunityName: community.Name,
				LGA:           lga,
				Risk:          community.Risk,
				Lat:           community.Lat,
				Lng:           community.Lng,
				Dates:         risky,
			})
		}
	}

	return alerts
}
