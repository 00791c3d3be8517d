// Package suggest proposes map-side street names for unmatched cadastral
// records, using a symmetric-delete index over the district's known streets.
// Suggestions are a reviewer aid only: they become effective solely through
// submitted corrections, so the matching itself stays strictly exact.
package suggest

import (
	"sort"

	"github.com/alkis-osm-coverage/internal/dataset"
	"github.com/alkis-osm-coverage/internal/normalize"
)

// MaxEditDistance is the largest spelling distance worth proposing. Beyond
// two edits the candidates are almost always different streets, not typos.
const MaxEditDistance = 2

// Suggestion is one candidate street name for a misspelled input.
type Suggestion struct {
	Street    string `json:"street"`
	Distance  int    `json:"distance"`
	Addresses int    `json:"addresses"`
}

// Index holds the per-district street dictionary. Frequency is the number
// of map addresses on the street, used to rank equally distant candidates.
type Index struct {
	streets map[string]streetInfo
	deletes map[string][]string
}

type streetInfo struct {
	display string
	count   int
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		streets: make(map[string]streetInfo),
		deletes: make(map[string][]string),
	}
}

// BuildIndex indexes every street name occurring in the map addresses.
func BuildIndex(addrs []dataset.MapAddress) *Index {
	ix := NewIndex()
	for _, a := range addrs {
		ix.Add(a.Street)
	}
	return ix
}

// Add registers one occurrence of a street name.
func (ix *Index) Add(street string) {
	key := normalize.Street(street)
	if key == "" {
		return
	}

	info, known := ix.streets[key]
	if !known {
		info.display = street
		for _, del := range generateDeletes(key, MaxEditDistance) {
			ix.deletes[del] = append(ix.deletes[del], key)
		}
	}
	info.count++
	ix.streets[key] = info
}

// Lookup returns up to max candidate streets within MaxEditDistance of the
// input, closest first, more frequent first among equals. An exact
// (normalized) hit returns just that street.
func (ix *Index) Lookup(street string, max int) []Suggestion {
	input := normalize.Street(street)
	if input == "" {
		return nil
	}

	if info, ok := ix.streets[input]; ok {
		return []Suggestion{{Street: info.display, Distance: 0, Addresses: info.count}}
	}

	seen := make(map[string]bool)
	var candidates []Suggestion

	variants := append(generateDeletes(input, MaxEditDistance), input)
	for _, del := range variants {
		// A delete of the input can itself be a known street (input has
		// extra characters).
		candidates = ix.consider(candidates, seen, input, del)
		for _, key := range ix.deletes[del] {
			candidates = ix.consider(candidates, seen, input, key)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		if candidates[i].Addresses != candidates[j].Addresses {
			return candidates[i].Addresses > candidates[j].Addresses
		}
		return candidates[i].Street < candidates[j].Street
	})

	if max > 0 && len(candidates) > max {
		candidates = candidates[:max]
	}
	return candidates
}

// consider adds key as a candidate when it is a known street within
// MaxEditDistance of the input and not yet collected.
func (ix *Index) consider(candidates []Suggestion, seen map[string]bool, input, key string) []Suggestion {
	info, known := ix.streets[key]
	if !known || seen[key] {
		return candidates
	}
	seen[key] = true

	dist := editDistance(input, key, MaxEditDistance)
	if dist < 0 {
		return candidates
	}
	return append(candidates, Suggestion{
		Street:    info.display,
		Distance:  dist,
		Addresses: info.count,
	})
}

// generateDeletes produces every variant of term with up to maxDistance
// runes removed.
func generateDeletes(term string, maxDistance int) []string {
	seen := map[string]bool{}
	frontier := []string{term}
	var result []string

	for d := 0; d < maxDistance; d++ {
		var next []string
		for _, t := range frontier {
			runes := []rune(t)
			if len(runes) <= 1 {
				continue
			}
			for i := range runes {
				del := string(runes[:i]) + string(runes[i+1:])
				if !seen[del] {
					seen[del] = true
					result = append(result, del)
					next = append(next, del)
				}
			}
		}
		frontier = next
	}
	return result
}

// editDistance computes the Levenshtein distance between a and b, returning
// -1 as soon as it provably exceeds maxDistance.
func editDistance(a, b string, maxDistance int) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	if la-lb > maxDistance || lb-la > maxDistance {
		return -1
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > maxDistance {
			return -1
		}
		prev, curr = curr, prev
	}

	if prev[lb] > maxDistance {
		return -1
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
