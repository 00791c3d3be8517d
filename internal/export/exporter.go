// Package export writes the run artifacts consumed by the static frontend:
// the district list and one GeoJSON snapshot per district. All writes are
// atomic so a failed run never leaves truncated artifacts behind.
package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alkis-osm-coverage/internal/coverage"
	"github.com/alkis-osm-coverage/internal/fsutil"
)

// Exporter writes artifacts below a single output directory.
type Exporter struct {
	outputDir string
}

// NewExporter creates an exporter rooted at outputDir.
func NewExporter(outputDir string) *Exporter {
	return &Exporter{outputDir: outputDir}
}

// DistrictListPath returns the location of districts.json.
func (e *Exporter) DistrictListPath() string {
	return filepath.Join(e.outputDir, "districts.json")
}

// GeoJSONPath returns the snapshot location for a district.
func (e *Exporter) GeoJSONPath(district string) string {
	name := strings.ReplaceAll(filepath.Base(district), " ", "_")
	return filepath.Join(e.outputDir, "districts", name+".geojson")
}

// WriteDistrictList persists the district summaries sorted by name, the
// order the frontend selector expects.
func (e *Exporter) WriteDistrictList(summaries []coverage.Summary) error {
	sorted := make([]coverage.Summary, len(summaries))
	copy(sorted, summaries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	if err := fsutil.WriteJSONAtomic(e.DistrictListPath(), sorted); err != nil {
		return fmt.Errorf("failed to write district list: %w", err)
	}
	return nil
}

// WriteGeoJSON persists one district's feature collection.
func (e *Exporter) WriteGeoJSON(district string, fc coverage.FeatureCollection) error {
	if err := fsutil.WriteJSONAtomic(e.GeoJSONPath(district), fc); err != nil {
		return fmt.Errorf("failed to write geojson for %s: %w", district, err)
	}
	return nil
}
