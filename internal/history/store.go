// Package history persists the coverage time series: one entry per run date
// per district, plus a global series. This file is the only state that
// accumulates across runs and the sole input to trend analytics.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/alkis-osm-coverage/internal/fsutil"
)

// Entry is one dated data point in a series. Date is an ISO calendar date
// (YYYY-MM-DD); dates need not be contiguous since runs may be skipped.
type Entry struct {
	Date     string  `json:"date"`
	Total    int     `json:"total"`
	Missing  int     `json:"missing"`
	Coverage float64 `json:"coverage"`
}

// Store holds the full history document. The global series is written once
// per run from the district sums, never recomputed at read time, so old
// snapshots stay fixed even if district definitions change later.
type Store struct {
	path      string
	Global    []Entry
	Districts map[string][]Entry
}

// Load reads the history file. A missing file yields an empty store. Legacy
// layouts (a flat global-only array, or entries using the old field
// spellings) are translated here once; everything downstream sees only the
// canonical schema.
func Load(path string) (*Store, error) {
	s := &Store{path: path, Districts: make(map[string][]Entry)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var doc struct {
		Global    []legacyEntry            `json:"global"`
		Districts map[string][]legacyEntry `json:"districts"`
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		s.Global = translate(doc.Global)
		for name, series := range doc.Districts {
			s.Districts[name] = translate(series)
		}
		return s, nil
	}

	// Oldest layout: a bare array holding the global series.
	var flat []legacyEntry
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	s.Global = translate(flat)
	return s, nil
}

// AppendOrReplaceGlobal records the global entry for a run date.
func (s *Store) AppendOrReplaceGlobal(e Entry) {
	s.Global = appendOrReplace(s.Global, e)
}

// AppendOrReplaceDistrict records a district entry for a run date.
func (s *Store) AppendOrReplaceDistrict(name string, e Entry) {
	s.Districts[name] = appendOrReplace(s.Districts[name], e)
}

// DistrictSeries returns a district's series, nil when unknown.
func (s *Store) DistrictSeries(name string) []Entry {
	return s.Districts[name]
}

// Save writes the document atomically. The previous file content is never
// lost on a failed write.
func (s *Store) Save() error {
	doc := struct {
		Global    []Entry            `json:"global"`
		Districts map[string][]Entry `json:"districts"`
	}{Global: s.Global, Districts: s.Districts}

	if err := fsutil.WriteJSONAtomic(s.path, doc); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// appendOrReplace keeps the series sorted ascending by date with at most one
// entry per date. Re-running the pipeline on the same date replaces that
// day's entry instead of duplicating it.
func appendOrReplace(series []Entry, e Entry) []Entry {
	for i := range series {
		if series[i].Date == e.Date {
			series[i] = e
			return series
		}
	}
	series = append(series, e)
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// legacyEntry accepts every historical field spelling. Pointers distinguish
// an absent field from a genuine zero.
type legacyEntry struct {
	Date            string   `json:"date"`
	Total           *int     `json:"total"`
	Alkis           *int     `json:"alkis"`
	Missing         *int     `json:"missing"`
	MissingCount    *int     `json:"missing_count"`
	Coverage        *float64 `json:"coverage"`
	CoveragePercent *float64 `json:"coverage_percent"`
}

func translate(series []legacyEntry) []Entry {
	if series == nil {
		return nil
	}
	out := make([]Entry, 0, len(series))
	for _, le := range series {
		e := Entry{Date: le.Date}
		switch {
		case le.Total != nil:
			e.Total = *le.Total
		case le.Alkis != nil:
			e.Total = *le.Alkis
		}
		switch {
		case le.Missing != nil:
			e.Missing = *le.Missing
		case le.MissingCount != nil:
			e.Missing = *le.MissingCount
		}
		switch {
		case le.Coverage != nil:
			e.Coverage = *le.Coverage
		case le.CoveragePercent != nil:
			e.Coverage = *le.CoveragePercent
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
