// Package correction implements the reviewer-maintained overlay that
// resolves known spelling mismatches between the cadastral registry and the
// map dataset. Corrections are append-only: they are re-applied from their
// stored values on every run, never baked into the datasets.
package correction

import "fmt"

// Type discriminates the three correction variants.
type Type string

const (
	// TypePoint rewrites street and house number of a single address.
	TypePoint Type = "point"
	// TypeStreet renames a street for every house number on it.
	TypeStreet Type = "street"
	// TypeIgnore excludes an address from the missing count without
	// requiring a map match (demolished buildings, registry artifacts).
	TypeIgnore Type = "ignore"
)

// Correction is one reviewer-submitted rule, scoped to a district.
// Street/Housenumber identify the cadastral record as spelled in the
// registry; ToStreet/ToHousenumber carry the replacement for the point and
// street variants.
type Correction struct {
	Type          Type   `json:"type"`
	City          string `json:"city"`
	Street        string `json:"street"`
	Housenumber   string `json:"housenumber,omitempty"`
	ToStreet      string `json:"to_street,omitempty"`
	ToHousenumber string `json:"to_housenumber,omitempty"`
	Comment       string `json:"comment,omitempty"`
	AlkisID       string `json:"alkis_id,omitempty"`
}

// ValidationError rejects a malformed correction at submission time.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid correction: %s %s", e.Field, e.Reason)
}

// Validate checks the fields required for the correction's variant.
func (c *Correction) Validate() error {
	if c.City == "" {
		return &ValidationError{Field: "city", Reason: "is required"}
	}
	if c.Street == "" {
		return &ValidationError{Field: "street", Reason: "is required"}
	}
	switch c.Type {
	case TypePoint:
		if c.Housenumber == "" {
			return &ValidationError{Field: "housenumber", Reason: "is required for point corrections"}
		}
		if c.ToStreet == "" || c.ToHousenumber == "" {
			return &ValidationError{Field: "to_street/to_housenumber", Reason: "are required for point corrections"}
		}
	case TypeStreet:
		if c.ToStreet == "" {
			return &ValidationError{Field: "to_street", Reason: "is required for street corrections"}
		}
	case TypeIgnore:
		if c.Housenumber == "" {
			return &ValidationError{Field: "housenumber", Reason: "is required for ignore corrections"}
		}
	default:
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown value %q", c.Type)}
	}
	return nil
}
