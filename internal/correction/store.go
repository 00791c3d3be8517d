package correction

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alkis-osm-coverage/internal/fsutil"
)

// Store persists the append-only correction list, one JSON file per
// district. Appends rewrite the whole file atomically, so concurrent readers
// observe either the old or the new full list.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the corrections file for a district.
func (s *Store) Path(district string) string {
	// District names come from external data; keep the filename flat.
	name := strings.ReplaceAll(filepath.Base(district), " ", "_")
	return filepath.Join(s.dir, name+"_corrections.json")
}

// Load returns the ordered correction list for a district. A missing file is
// an empty list, not an error.
func (s *Store) Load(district string) ([]Correction, error) {
	data, err := os.ReadFile(s.Path(district))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read corrections for %s: %w", district, err)
	}
	return decodeList(data, district)
}

// Append validates the correction and adds it to the end of its district's
// list. Insertion order is significant: the overlay gives the most recently
// added matching correction precedence.
func (s *Store) Append(c Correction) error {
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.Load(c.City)
	if err != nil {
		return err
	}
	list = append(list, c)

	if err := fsutil.WriteJSONAtomic(s.Path(c.City), list); err != nil {
		return fmt.Errorf("failed to persist correction for %s: %w", c.City, err)
	}
	return nil
}

// legacyCorrection accepts the historical field spellings alongside the
// canonical schema. Translation happens once, here at the persistence
// boundary; everything downstream sees only Correction.
type legacyCorrection struct {
	Type          Type   `json:"type"`
	City          string `json:"city"`
	State         string `json:"state"`
	Street        string `json:"street"`
	Housenumber   string `json:"housenumber"`
	ToStreet      string `json:"to_street"`
	NewStreet     string `json:"new_street"`
	ToHousenumber string `json:"to_housenumber"`
	NewHousenum   string `json:"new_housenumber"`
	Comment       string `json:"comment"`
	AlkisID       string `json:"alkis_id"`
}

func decodeList(data []byte, district string) ([]Correction, error) {
	var raw []legacyCorrection
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse corrections for %s: %w", district, err)
	}

	list := make([]Correction, 0, len(raw))
	for _, lc := range raw {
		c := Correction{
			Type:          lc.Type,
			City:          lc.City,
			Street:        lc.Street,
			Housenumber:   lc.Housenumber,
			ToStreet:      lc.ToStreet,
			ToHousenumber: lc.ToHousenumber,
			Comment:       lc.Comment,
			AlkisID:       lc.AlkisID,
		}
		if c.City == "" {
			c.City = lc.State
		}
		if c.ToStreet == "" {
			c.ToStreet = lc.NewStreet
		}
		if c.ToHousenumber == "" {
			c.ToHousenumber = lc.NewHousenum
		}
		list = append(list, c)
	}
	return list, nil
}
