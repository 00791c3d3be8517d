package correction

import (
	"github.com/alkis-osm-coverage/internal/dataset"
	"github.com/alkis-osm-coverage/internal/normalize"
)

// Overlay applies a district's corrections to cadastral records before
// matching. The original list-scan precedence ("latest matching correction
// wins") is made explicit here: the list is folded once into two keyed
// lookups where later entries overwrite earlier ones, and a point-level hit
// and a street-level hit are arbitrated by insertion sequence.
type Overlay struct {
	point  map[string]overlayEntry // key: street \x00 housenumber (normalized)
	street map[string]overlayEntry // key: street (normalized)
}

type overlayEntry struct {
	correction Correction
	seq        int
}

// Result is one cadastral record after overlay application. Record carries
// the effective street and house number used for matching; the original
// spelling is retained for display whenever a correction was applied.
type Result struct {
	Record              dataset.CadastralRecord
	OriginalStreet      string
	OriginalHousenumber string
	Applied             *Correction
	Ignored             bool
}

// NewOverlay folds an ordered correction list into keyed lookups.
func NewOverlay(corrections []Correction) *Overlay {
	o := &Overlay{
		point:  make(map[string]overlayEntry),
		street: make(map[string]overlayEntry),
	}
	for i, c := range corrections {
		entry := overlayEntry{correction: c, seq: i}
		switch c.Type {
		case TypeStreet:
			o.street[normalize.Street(c.Street)] = entry
		case TypePoint, TypeIgnore:
			o.point[pointKey(c.Street, c.Housenumber)] = entry
		}
	}
	return o
}

// Apply returns the record with at most one correction applied. When both a
// point-level and a street-level correction match, the most recently added
// one wins; there is no chaining.
func (o *Overlay) Apply(rec dataset.CadastralRecord) Result {
	res := Result{Record: rec}

	entry, ok := o.point[pointKey(rec.Street, rec.Housenumber)]
	if se, sok := o.street[normalize.Street(rec.Street)]; sok && (!ok || se.seq > entry.seq) {
		entry, ok = se, true
	}
	if !ok {
		return res
	}

	c := entry.correction
	res.Applied = &c
	res.OriginalStreet = rec.Street
	res.OriginalHousenumber = rec.Housenumber

	switch c.Type {
	case TypePoint:
		res.Record.Street = c.ToStreet
		res.Record.Housenumber = c.ToHousenumber
	case TypeStreet:
		res.Record.Street = c.ToStreet
	case TypeIgnore:
		res.Ignored = true
	}
	return res
}

// ApplyAll runs the overlay over a full record set.
func (o *Overlay) ApplyAll(records []dataset.CadastralRecord) []Result {
	results := make([]Result, len(records))
	for i, rec := range records {
		results[i] = o.Apply(rec)
	}
	return results
}

func pointKey(street, housenumber string) string {
	return normalize.Street(street) + "\x00" + normalize.HouseNumber(housenumber)
}
