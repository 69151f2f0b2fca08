// Package dataset loads the static community/LGA reference file.
//
// The file groups communities by administrative area and baseline risk tier:
//
//	{
//	  "low_risk":  [{"LGA": "...", "risk": "Low",  "communities": [{"name","lat","lng"}, ...]}],
//	  "high_risk": [{"LGA": "...", "risk": "High", "communities": [...]}]
//	}
//
// Groups are flattened in file order (low_risk first, then high_risk) with
// inner order preserved, so every downstream build sees communities in the
// same deterministic sequence.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/terraguard/floodwatch/internal/domain"
)

type datasetFile struct {
	LowRisk  []riskGroup `json:"low_risk"`
	HighRisk []riskGroup `json:"high_risk"`
}

type riskGroup struct {
	LGA         string           `json:"LGA" validate:"required"`
	Risk        string           `json:"risk" validate:"required,oneof=Low Medium High"`
	Communities []communityEntry `json:"communities" validate:"required,min=1,dive"`
}

type communityEntry struct {
	Name string  `json:"name" validate:"required"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng  float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Load reads and validates the reference file, returning the flattened
// community list. Any error here is fatal at startup: without valid
// reference data there is nothing to forecast.
func Load(path string) ([]domain.Community, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var file datasetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	validate := validator.New()

	var communities []domain.Community
	for _, group := range append(file.LowRisk, file.HighRisk...) {
		if err := validate.Struct(group); err != nil {
			return nil, fmt.Errorf("invalid dataset group %q: %w", group.LGA, err)
		}
		tier, err := domain.ParseRiskTier(group.Risk)
		if err != nil {
			return nil, fmt.Errorf("dataset group %q: %w", group.LGA, err)
		}
		for _, entry := range group.Communities {
			communities = append(communities, domain.Community{
				Name: entry.Name,
				LGA:  group.LGA,
				Lat:  entry.Lat,
				Lng:  entry.Lng,
				Risk: tier,
			})
		}
	}

	if len(communities) == 0 {
		return nil, fmt.Errorf("dataset %s contains no communities", path)
	}

	return communities, nil
}
