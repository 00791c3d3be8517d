package coverage

import "github.com/alkis-osm-coverage/internal/match"

// FeatureCollection is the GeoJSON document written per district. The
// property names are a fixed contract with the map renderer; changing them
// breaks marker coloring.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one address marker.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry is a GeoJSON point, coordinates ordered lon, lat.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Properties carries the classification state for marker styling.
// CorrectionType is "corrected", "ignored" or null.
type Properties struct {
	Street              string  `json:"street"`
	Housenumber         string  `json:"housenumber"`
	Matched             bool    `json:"matched"`
	CorrectionType      *string `json:"correction_type"`
	OriginalStreet      string  `json:"original_street,omitempty"`
	OriginalHousenumber string  `json:"original_housenumber,omitempty"`
	Comment             string  `json:"comment,omitempty"`
	AlkisID             string  `json:"alkis_id,omitempty"`
}

// Snapshot builds the feature collection for a district's outcomes.
func Snapshot(outcomes []match.Outcome) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(outcomes))}
	for _, o := range outcomes {
		props := Properties{
			Street:              o.Street,
			Housenumber:         o.Housenumber,
			Matched:             o.Matched,
			CorrectionType:      correctionType(o.Classification),
			OriginalStreet:      o.OriginalStreet,
			OriginalHousenumber: o.OriginalHousenumber,
			Comment:             o.Comment,
			AlkisID:             o.AlkisID,
		}
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   Geometry{Type: "Point", Coordinates: [2]float64{o.Lon, o.Lat}},
			Properties: props,
		})
	}
	return fc
}

func correctionType(c match.Classification) *string {
	switch c {
	case match.MatchedViaCorrection:
		s := "corrected"
		return &s
	case match.IgnoredViaCorrection:
		s := "ignored"
		return &s
	}
	return nil
}
