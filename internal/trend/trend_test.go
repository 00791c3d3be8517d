package trend

import (
	"testing"

	"github.com/alkis-osm-coverage/internal/history"
)

func TestRollingDeltaFirstAtOrAfterTarget(t *testing.T) {
	// Entries on days 0, 3 and 10. Window 7 as of day 10 targets day 3;
	// the first entry dated at or after day 3 is the day-3 entry.
	series := []history.Entry{
		{Date: "2026-08-01", Missing: 50},
		{Date: "2026-08-04", Missing: 40},
		{Date: "2026-08-11", Missing: 25},
	}

	d, ok := RollingDelta(series, 7)
	if !ok {
		t.Fatal("expected a delta")
	}
	if d.PastMissing != 40 || d.CurrentMissing != 25 {
		t.Errorf("past/current = %d/%d, want 40/25", d.PastMissing, d.CurrentMissing)
	}
	if d.Delta != 15 {
		t.Errorf("delta = %d, want 15", d.Delta)
	}
	if d.WindowDays != 7 {
		t.Errorf("window = %d, want 7", d.WindowDays)
	}
}

func TestRollingDeltaFallbackToOldest(t *testing.T) {
	// Every entry lies after the target date; the oldest entry is used and
	// the reported window shrinks accordingly.
	series := []history.Entry{
		{Date: "2026-08-09", Missing: 30},
		{Date: "2026-08-11", Missing: 20},
	}

	d, ok := RollingDelta(series, 30)
	if !ok {
		t.Fatal("expected a delta")
	}
	if d.PastMissing != 30 || d.Delta != 10 {
		t.Errorf("past/delta = %d/%d, want 30/10", d.PastMissing, d.Delta)
	}
	if d.WindowDays != 2 {
		t.Errorf("window = %d, want actual span 2", d.WindowDays)
	}
}

func TestRollingDeltaSingleEntry(t *testing.T) {
	d, ok := RollingDelta([]history.Entry{{Date: "2026-08-11", Missing: 20}}, 7)
	if !ok {
		t.Fatal("expected a delta")
	}
	if d.Delta != 0 || d.WindowDays != 0 {
		t.Errorf("single entry must compare against itself: %+v", d)
	}
}

func TestRollingDeltaEmptySeries(t *testing.T) {
	if _, ok := RollingDelta(nil, 7); ok {
		t.Error("empty series must not produce a delta")
	}
}

func TestRollingDeltaNegativeOnRegression(t *testing.T) {
	series := []history.Entry{
		{Date: "2026-08-01", Missing: 10},
		{Date: "2026-08-08", Missing: 25},
	}
	d, _ := RollingDelta(series, 7)
	if d.Delta != -15 {
		t.Errorf("delta = %d, want -15 for regression", d.Delta)
	}
}

func TestMostImproved(t *testing.T) {
	districts := map[string][]history.Entry{
		"Adorf": {
			{Date: "2026-08-01", Missing: 100},
			{Date: "2026-08-08", Missing: 70},
		},
		"Bedorf": {
			{Date: "2026-08-01", Missing: 100},
			{Date: "2026-08-08", Missing: 95},
		},
		"Cedorf": {
			{Date: "2026-08-01", Missing: 100},
			{Date: "2026-08-08", Missing: 70},
		},
		"Leer": {},
	}

	ranked := MostImproved(districts, 7, 10)
	if len(ranked) != 3 {
		t.Fatalf("got %d entries, want 3 (empty series skipped)", len(ranked))
	}

	// Adorf and Cedorf tie on delta 30; the name breaks the tie.
	wantOrder := []string{"Adorf", "Cedorf", "Bedorf"}
	for i, want := range wantOrder {
		if ranked[i].District != want {
			t.Errorf("rank %d = %s, want %s", i, ranked[i].District, want)
		}
	}
}

func TestMostImprovedTruncatesToTopK(t *testing.T) {
	districts := map[string][]history.Entry{
		"A": {{Date: "2026-08-01", Missing: 5}, {Date: "2026-08-08", Missing: 1}},
		"B": {{Date: "2026-08-01", Missing: 5}, {Date: "2026-08-08", Missing: 2}},
		"C": {{Date: "2026-08-01", Missing: 5}, {Date: "2026-08-08", Missing: 3}},
	}
	ranked := MostImproved(districts, 7, 2)
	if len(ranked) != 2 {
		t.Fatalf("got %d entries, want 2", len(ranked))
	}
	if ranked[0].District != "A" || ranked[1].District != "B" {
		t.Errorf("unexpected ranking: %+v", ranked)
	}
}
