package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/alkis-osm-coverage/internal/correction"
)

// CorrectionsHandler accepts reviewer-submitted corrections. A successful
// submission is appended to the district's list and takes effect on the
// next comparison run, not the current one.
type CorrectionsHandler struct {
	Store *correction.Store
}

// SaveRequest is the submission envelope used by the frontend modal.
type SaveRequest struct {
	State      string                 `json:"state"`
	Correction *correction.Correction `json:"correction"`
}

// Save handles POST /api/save_correction.
func (h *CorrectionsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.State == "" || req.Correction == nil {
		writeError(w, http.StatusBadRequest, "missing state or correction data")
		return
	}

	c := *req.Correction
	if c.City == "" {
		c.City = req.State
	}

	if err := h.Store.Append(c); err != nil {
		var verr *correction.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		log.Printf("Error saving correction for %s: %v", req.State, err)
		writeError(w, http.StatusInternalServerError, "failed to save correction")
		return
	}

	log.Printf("Correction saved for %s: %s %s %s", c.City, c.Type, c.Street, c.Housenumber)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Correction saved successfully"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
