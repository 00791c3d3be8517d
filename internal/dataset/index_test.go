package dataset

import "testing"

func TestIndexLookupNormalizes(t *testing.T) {
	ix := BuildIndex([]MapAddress{
		{Street: "Hauptstrasse", Housenumber: "12 a", Lat: 53.1, Lon: 8.1},
	})

	tests := []struct {
		name    string
		street  string
		hnr     string
		wantHit bool
	}{
		{name: "Exact", street: "Hauptstrasse", hnr: "12 a", wantHit: true},
		{name: "Sharp S Variant", street: "Hauptstraße", hnr: "12a", wantHit: true},
		{name: "Abbreviated", street: "Hauptstr.", hnr: "12A", wantHit: true},
		{name: "Wrong Number", street: "Hauptstraße", hnr: "13", wantHit: false},
		{name: "Wrong Street", street: "Nebenweg", hnr: "12a", wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, ok := ix.Lookup(tt.street, tt.hnr)
			if ok != tt.wantHit {
				t.Fatalf("Lookup(%q, %q) hit = %v, want %v", tt.street, tt.hnr, ok, tt.wantHit)
			}
			if ok && (loc.Lat != 53.1 || loc.Lon != 8.1) {
				t.Errorf("location = %+v", loc)
			}
		})
	}

	if ix.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ix.Len())
	}
}

func TestDuplicateMapAddressesCollapse(t *testing.T) {
	ix := BuildIndex([]MapAddress{
		{Street: "Hauptstraße", Housenumber: "1"},
		{Street: "Hauptstrasse", Housenumber: "1"},
	})
	if ix.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after normalization collapse", ix.Len())
	}
}
