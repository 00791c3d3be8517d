package normalize

import (
	"strings"
	"unicode"
)

// StreetRules folds German street-name spelling variants onto one canonical
// abbreviation so that "Hauptstraße", "Hauptstrasse" and "Hauptstr." all
// compare equal. The rule table is fixed: matching is strictly equality-based
// and any remaining ambiguity is handled through reviewer corrections, never
// through fuzzy matching.
type StreetRules struct {
	replacer *strings.Replacer
}

// NewStreetRules creates the default rule set used for ALKIS/OSM comparison.
func NewStreetRules() *StreetRules {
	// Longest variants first so "strasse" is folded before a bare "str."
	// could interfere. The canonical forms are the short ones because they
	// are unambiguous in both datasets.
	pairs := []string{
		"straße", "str.",
		"strasse", "str.",
		"platz", "pl.",
	}
	return &StreetRules{replacer: strings.NewReplacer(pairs...)}
}

// Fold applies the rule table to an already lowercased street name.
func (r *StreetRules) Fold(street string) string {
	return r.replacer.Replace(street)
}

var defaultRules = NewStreetRules()

// Street canonicalizes a street name for equality comparison: lowercase,
// punctuation stripped (keeping the "." of folded abbreviations and hyphens,
// which carry identity in German street names), abbreviation variants folded,
// whitespace collapsed. Deterministic and total.
func Street(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	b := strings.Builder{}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '.' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	s = b.String()

	s = defaultRules.Fold(s)

	return strings.Join(strings.Fields(s), " ")
}

// HouseNumber canonicalizes a house number: lowercase, all whitespace
// removed, so "12 a" and "12A" compare equal.
func HouseNumber(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), "")
}

// Key builds the lookup key used by the map address index.
func Key(street, housenumber string) string {
	return Street(street) + " " + HouseNumber(housenumber)
}
