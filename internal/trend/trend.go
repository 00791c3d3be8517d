// Package trend computes rolling-window improvement deltas over the stored
// coverage history.
package trend

import (
	"sort"
	"time"

	"github.com/alkis-osm-coverage/internal/history"
)

// DefaultTopK is the length of the "most improved" ranking.
const DefaultTopK = 10

// Delta is the missing-count reduction of one series over a window.
// A positive delta means improvement. WindowDays reports the span actually
// compared; with sparse history it can exceed the requested window because
// of the oldest-entry fallback.
type Delta struct {
	District       string `json:"district"`
	Delta          int    `json:"delta"`
	PastMissing    int    `json:"past_missing"`
	CurrentMissing int    `json:"current_missing"`
	WindowDays     int    `json:"window_days"`
}

// RollingDelta compares the latest entry of a series against the first entry
// dated at or after (latest date - windowDays). If every entry lies after
// the target date, the oldest entry is used. The "first at-or-after target"
// rule is a deliberate tie-break: it stays deterministic with irregular run
// dates, at the cost of slightly understating the window when runs are
// sparse. Returns false for an empty series.
func RollingDelta(series []history.Entry, windowDays int) (Delta, bool) {
	if len(series) == 0 {
		return Delta{}, false
	}

	current := series[len(series)-1]
	currentDate := parseDate(current.Date)
	target := currentDate.AddDate(0, 0, -windowDays)

	past := series[0]
	for _, e := range series {
		if !parseDate(e.Date).Before(target) {
			past = e
			break
		}
	}

	return Delta{
		Delta:          past.Missing - current.Missing,
		PastMissing:    past.Missing,
		CurrentMissing: current.Missing,
		WindowDays:     int(currentDate.Sub(parseDate(past.Date)).Hours() / 24),
	}, true
}

// MostImproved ranks districts by rolling delta, descending, truncated to
// topK. Ties break on district name so the ranking is stable across runs.
func MostImproved(districts map[string][]history.Entry, windowDays, topK int) []Delta {
	if topK <= 0 {
		topK = DefaultTopK
	}

	deltas := make([]Delta, 0, len(districts))
	for name, series := range districts {
		d, ok := RollingDelta(series, windowDays)
		if !ok {
			continue
		}
		d.District = name
		deltas = append(deltas, d)
	}

	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].Delta != deltas[j].Delta {
			return deltas[i].Delta > deltas[j].Delta
		}
		return deltas[i].District < deltas[j].District
	})

	if len(deltas) > topK {
		deltas = deltas[:topK]
	}
	return deltas
}

// parseDate reads an ISO calendar date; malformed dates collapse to the zero
// time, which sorts before every real entry.
func parseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
