package handlers

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/alkis-osm-coverage/internal/export"
	"github.com/alkis-osm-coverage/internal/history"
	"github.com/alkis-osm-coverage/internal/trend"
)

// StatsHandler serves the run artifacts and the trend analytics derived
// from stored history.
type StatsHandler struct {
	OutputDir   string
	HistoryPath string
	WindowDays  int
	TopK        int
}

// Districts handles GET /api/districts, serving the district list written
// by the last successful run.
func (h *StatsHandler) Districts(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, export.NewExporter(h.OutputDir).DistrictListPath())
}

// GeoJSON handles GET /api/districts/{name}/geojson.
func (h *StatsHandler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	h.serveFile(w, export.NewExporter(h.OutputDir).GeoJSONPath(name))
}

// History handles GET /api/history.
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, h.HistoryPath)
}

// TrendsResponse carries the headline global delta and the most-improved
// district ranking.
type TrendsResponse struct {
	WindowDays int           `json:"window_days"`
	Global     *trend.Delta  `json:"global"`
	Districts  []trend.Delta `json:"districts"`
}

// Trends handles GET /api/trends?window=N.
func (h *StatsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	window := h.WindowDays
	if v := r.URL.Query().Get("window"); v != "" {
		if n, ok := parsePositiveInt(v); ok {
			window = n
		} else {
			writeError(w, http.StatusBadRequest, "window must be a positive integer")
			return
		}
	}

	hist, err := history.Load(h.HistoryPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	resp := TrendsResponse{
		WindowDays: window,
		Districts:  trend.MostImproved(hist.Districts, window, h.TopK),
	}
	if d, ok := trend.RollingDelta(hist.Global, window); ok {
		d.District = "Global"
		resp.Global = &d
	}
	writeJSON(w, http.StatusOK, resp)
}

// serveFile streams a JSON artifact, answering 404 while no run has
// produced it yet.
func (h *StatsHandler) serveFile(w http.ResponseWriter, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "no data available yet")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to read data")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func parsePositiveInt(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 3650 {
			return 0, false
		}
	}
	return n, n > 0
}
