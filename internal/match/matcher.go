// Package match classifies cadastral records against the map address index.
// Matching is strictly binary on normalized equality; there is no partial or
// fuzzy scoring, so every gap in the map data stays visible until a reviewer
// resolves it with an explicit correction.
package match

import (
	"github.com/alkis-osm-coverage/internal/correction"
	"github.com/alkis-osm-coverage/internal/dataset"
)

// Classification is the per-record match outcome category.
type Classification string

const (
	// Unmatched means no normalized map entry exists and no ignore applies.
	Unmatched Classification = "unmatched"
	// MatchedPlain is a direct normalized match with no correction involved.
	MatchedPlain Classification = "matched"
	// MatchedViaCorrection is a match that required a reviewer correction.
	MatchedViaCorrection Classification = "corrected"
	// IgnoredViaCorrection is excluded from the missing count by an ignore
	// correction. It counts as resolved but renders distinctly from genuine
	// matches.
	IgnoredViaCorrection Classification = "ignored"
)

// Outcome is the per-record result consumed by the aggregator and the
// GeoJSON snapshot. Street and Housenumber are the effective values used for
// the lookup; the originals are retained whenever a correction rewrote them.
type Outcome struct {
	District            string
	Matched             bool
	Classification      Classification
	Street              string
	Housenumber         string
	OriginalStreet      string
	OriginalHousenumber string
	Comment             string
	AlkisID             string
	Lat                 float64
	Lon                 float64
}

// Match looks the overlaid record up in the map index and classifies it.
func Match(res correction.Result, ix *dataset.Index) Outcome {
	rec := res.Record
	out := Outcome{
		District:            rec.District,
		Street:              rec.Street,
		Housenumber:         rec.Housenumber,
		OriginalStreet:      res.OriginalStreet,
		OriginalHousenumber: res.OriginalHousenumber,
		AlkisID:             rec.StableID,
		Lat:                 rec.Lat,
		Lon:                 rec.Lon,
	}
	if res.Applied != nil {
		out.Comment = res.Applied.Comment
	}

	if res.Ignored {
		// Ignored records count as resolved for coverage regardless of any
		// map entry.
		out.Matched = true
		out.Classification = IgnoredViaCorrection
		return out
	}

	if _, ok := ix.Lookup(rec.Street, rec.Housenumber); ok {
		out.Matched = true
		if res.Applied != nil {
			out.Classification = MatchedViaCorrection
		} else {
			out.Classification = MatchedPlain
		}
		return out
	}

	out.Classification = Unmatched
	return out
}

// All matches a full overlaid record set against the index.
func All(results []correction.Result, ix *dataset.Index) []Outcome {
	outcomes := make([]Outcome, len(results))
	for i, res := range results {
		outcomes[i] = Match(res, ix)
	}
	return outcomes
}
