package handlers

import (
	"net/http"
	"sync"

	"github.com/alkis-osm-coverage/internal/dataset"
	"github.com/alkis-osm-coverage/internal/suggest"
)

// SuggestHandler proposes map-side street names for a misspelled cadastral
// street, helping reviewers fill in corrections. Indexes are built lazily
// per district and cached for the life of the process; the snapshot only
// changes between runs.
type SuggestHandler struct {
	Source dataset.Source

	mu      sync.Mutex
	indexes map[string]*suggest.Index
}

// Suggest handles GET /api/suggest?district=X&street=Y.
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	district := r.URL.Query().Get("district")
	street := r.URL.Query().Get("street")
	if district == "" || street == "" {
		writeError(w, http.StatusBadRequest, "district and street are required")
		return
	}

	ix, err := h.index(district)
	if err != nil {
		writeError(w, http.StatusNotFound, "no map data for district")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"district":    district,
		"street":      street,
		"suggestions": ix.Lookup(street, 5),
	})
}

func (h *SuggestHandler) index(district string) (*suggest.Index, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.indexes == nil {
		h.indexes = make(map[string]*suggest.Index)
	}
	if ix, ok := h.indexes[district]; ok {
		return ix, nil
	}

	addrs, err := h.Source.MapAddresses(district)
	if err != nil {
		return nil, err
	}
	ix := suggest.BuildIndex(addrs)
	h.indexes[district] = ix
	return ix, nil
}
