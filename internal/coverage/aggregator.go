// Package coverage aggregates per-record match outcomes into district
// summaries and GeoJSON snapshots for the map frontend.
package coverage

import (
	"math"

	"github.com/alkis-osm-coverage/internal/match"
)

// StatusUnavailable marks a district whose snapshot contained no cadastral
// records at all. Coverage is reported as 100 by convention, but the flag
// keeps "no data" distinguishable from "fully covered" downstream.
const StatusUnavailable = "unavailable"

// Summary is the per-district coverage record published in districts.json.
type Summary struct {
	Name     string  `json:"name"`
	Total    int     `json:"total"`
	Missing  int     `json:"missing"`
	Coverage float64 `json:"coverage"`
	Status   string  `json:"status,omitempty"`
}

// Aggregate computes the summary for one district. The full outcome set is
// returned alongside so the frontend can render matched, corrected and
// ignored records with distinct markers, not just the gaps.
func Aggregate(district string, outcomes []match.Outcome) (Summary, []match.Outcome) {
	missing := 0
	for _, o := range outcomes {
		if o.Classification == match.Unmatched {
			missing++
		}
	}

	s := Summary{
		Name:     district,
		Total:    len(outcomes),
		Missing:  missing,
		Coverage: Percent(len(outcomes), missing),
	}
	if s.Total == 0 {
		s.Status = StatusUnavailable
	}
	return s, outcomes
}

// Percent computes the coverage percentage rounded to two decimals. A total
// of zero yields 100 by convention; callers must pair that with
// StatusUnavailable so it cannot be mistaken for real coverage.
func Percent(total, missing int) float64 {
	if total == 0 {
		return 100
	}
	return math.Round(float64(total-missing)/float64(total)*100*100) / 100
}
