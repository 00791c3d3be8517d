package correction

import (
	"testing"

	"github.com/alkis-osm-coverage/internal/dataset"
)

func record(street, hnr string) dataset.CadastralRecord {
	return dataset.CadastralRecord{
		District:    "Beispielstadt",
		Street:      street,
		Housenumber: hnr,
		StableID:    street + "/" + hnr,
	}
}

func TestOverlayStreetCorrection(t *testing.T) {
	overlay := NewOverlay([]Correction{
		{Type: TypeStreet, City: "Beispielstadt", Street: "Hauptstr.", ToStreet: "Hauptstraße"},
	})

	// Applies to every house number on the street.
	for _, hnr := range []string{"1", "2", "17a"} {
		res := overlay.Apply(record("Hauptstr.", hnr))
		if res.Applied == nil {
			t.Fatalf("hnr %s: no correction applied", hnr)
		}
		if res.Record.Street != "Hauptstraße" {
			t.Errorf("hnr %s: street = %q, want Hauptstraße", hnr, res.Record.Street)
		}
		if res.Record.Housenumber != hnr {
			t.Errorf("hnr %s: housenumber changed to %q", hnr, res.Record.Housenumber)
		}
		if res.OriginalStreet != "Hauptstr." {
			t.Errorf("hnr %s: original street not retained: %q", hnr, res.OriginalStreet)
		}
	}

	// Never affects a different street.
	res := overlay.Apply(record("Nebenweg", "5"))
	if res.Applied != nil {
		t.Errorf("correction leaked to different street: %+v", res)
	}
}

func TestOverlayMatchesNormalizedSpelling(t *testing.T) {
	// Correction entered as "Hauptstraße" must catch the registry spelling
	// "Hauptstrasse" too.
	overlay := NewOverlay([]Correction{
		{Type: TypePoint, City: "Beispielstadt", Street: "Hauptstraße", Housenumber: "12 a",
			ToStreet: "Hauptallee", ToHousenumber: "12a"},
	})

	res := overlay.Apply(record("Hauptstrasse", "12A"))
	if res.Applied == nil {
		t.Fatal("normalized spelling variant not matched")
	}
	if res.Record.Street != "Hauptallee" || res.Record.Housenumber != "12a" {
		t.Errorf("substitution wrong: %+v", res.Record)
	}
}

func TestOverlayLatestWins(t *testing.T) {
	tests := []struct {
		name        string
		corrections []Correction
		wantStreet  string
		wantIgnored bool
	}{
		{
			name: "Later Point Overrides Earlier Point",
			corrections: []Correction{
				{Type: TypePoint, City: "B", Street: "Hauptstr.", Housenumber: "1", ToStreet: "Erster Weg", ToHousenumber: "1"},
				{Type: TypePoint, City: "B", Street: "Hauptstr.", Housenumber: "1", ToStreet: "Zweiter Weg", ToHousenumber: "1"},
			},
			wantStreet: "Zweiter Weg",
		},
		{
			name: "Later Street Overrides Earlier Point",
			corrections: []Correction{
				{Type: TypePoint, City: "B", Street: "Hauptstr.", Housenumber: "1", ToStreet: "Punktweg", ToHousenumber: "1"},
				{Type: TypeStreet, City: "B", Street: "Hauptstr.", ToStreet: "Straßenweg"},
			},
			wantStreet: "Straßenweg",
		},
		{
			name: "Later Point Overrides Earlier Street",
			corrections: []Correction{
				{Type: TypeStreet, City: "B", Street: "Hauptstr.", ToStreet: "Straßenweg"},
				{Type: TypePoint, City: "B", Street: "Hauptstr.", Housenumber: "1", ToStreet: "Punktweg", ToHousenumber: "1"},
			},
			wantStreet: "Punktweg",
		},
		{
			name: "Later Ignore Overrides Earlier Point",
			corrections: []Correction{
				{Type: TypePoint, City: "B", Street: "Hauptstr.", Housenumber: "1", ToStreet: "Punktweg", ToHousenumber: "1"},
				{Type: TypeIgnore, City: "B", Street: "Hauptstr.", Housenumber: "1"},
			},
			wantStreet:  "Hauptstr.",
			wantIgnored: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overlay := NewOverlay(tt.corrections)
			res := overlay.Apply(record("Hauptstr.", "1"))
			if res.Applied == nil {
				t.Fatal("no correction applied")
			}
			if res.Record.Street != tt.wantStreet {
				t.Errorf("street = %q, want %q", res.Record.Street, tt.wantStreet)
			}
			if res.Ignored != tt.wantIgnored {
				t.Errorf("ignored = %v, want %v", res.Ignored, tt.wantIgnored)
			}
		})
	}
}

func TestOverlayNoChaining(t *testing.T) {
	// The street rename rewrites to "Neuer Weg", but the point correction
	// on "Neuer Weg" must not fire on the rewritten value.
	overlay := NewOverlay([]Correction{
		{Type: TypeStreet, City: "B", Street: "Alter Weg", ToStreet: "Neuer Weg"},
		{Type: TypePoint, City: "B", Street: "Neuer Weg", Housenumber: "1", ToStreet: "Ganz Neuer Weg", ToHousenumber: "1"},
	})

	res := overlay.Apply(record("Alter Weg", "1"))
	if res.Record.Street != "Neuer Weg" {
		t.Errorf("street = %q, want single application result Neuer Weg", res.Record.Street)
	}
}

func TestOverlayPassThrough(t *testing.T) {
	overlay := NewOverlay(nil)
	rec := record("Hauptstr.", "1")
	res := overlay.Apply(rec)
	if res.Applied != nil || res.Ignored {
		t.Errorf("unexpected correction: %+v", res)
	}
	if res.Record != rec {
		t.Errorf("record modified without correction: %+v", res.Record)
	}
	if res.OriginalStreet != "" {
		t.Errorf("original street set without correction: %q", res.OriginalStreet)
	}
}
