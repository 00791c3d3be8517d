package dataset

import (
	"fmt"

	"github.com/alkis-osm-coverage/internal/normalize"
)

// CadastralRecord is one authoritative address row from the ALKIS snapshot.
// Records are immutable; every run rebuilds them from the current snapshot.
type CadastralRecord struct {
	District    string
	Street      string
	Housenumber string
	Lat         float64
	Lon         float64
	StableID    string
}

// MapAddress is one address entry extracted from the OSM snapshot.
type MapAddress struct {
	Street      string
	Housenumber string
	Lat         float64
	Lon         float64
}

// Location is a WGS84 point.
type Location struct {
	Lat float64
	Lon float64
}

// Index is the map-side address index for one district: normalized
// (street, housenumber) keys to locations. Built once per run and read-only
// during matching.
type Index struct {
	entries map[string]Location
}

// BuildIndex builds the lookup index from the map-side records.
func BuildIndex(addrs []MapAddress) *Index {
	ix := &Index{entries: make(map[string]Location, len(addrs))}
	for _, a := range addrs {
		ix.entries[normalize.Key(a.Street, a.Housenumber)] = Location{Lat: a.Lat, Lon: a.Lon}
	}
	return ix
}

// Lookup reports whether a normalized match for the given street and house
// number exists in the index.
func (ix *Index) Lookup(street, housenumber string) (Location, bool) {
	loc, ok := ix.entries[normalize.Key(street, housenumber)]
	return loc, ok
}

// Len returns the number of indexed addresses.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Source provides the two address datasets for a run. Implementations must
// return a consistent snapshot for the duration of the run.
type Source interface {
	Districts() ([]string, error)
	CadastralRecords(district string) ([]CadastralRecord, error)
	MapAddresses(district string) ([]MapAddress, error)
}

// SourceDataError marks a district whose source data is missing or unreadable.
// The run skips the district and leaves its previous artifacts untouched, so
// a data outage can never masquerade as full coverage.
type SourceDataError struct {
	District string
	Err      error
}

func (e *SourceDataError) Error() string {
	return fmt.Sprintf("source data for district %q: %v", e.District, e.Err)
}

func (e *SourceDataError) Unwrap() error {
	return e.Err
}
