// Package pipeline orchestrates one batch comparison run: corrections are
// snapshotted once, districts are matched in parallel, and the artifacts,
// district list and history are written at the end. Re-running for the same
// date is idempotent.
package pipeline

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/alkis-osm-coverage/internal/correction"
	"github.com/alkis-osm-coverage/internal/coverage"
	"github.com/alkis-osm-coverage/internal/dataset"
	"github.com/alkis-osm-coverage/internal/debug"
	"github.com/alkis-osm-coverage/internal/export"
	"github.com/alkis-osm-coverage/internal/history"
	"github.com/alkis-osm-coverage/internal/match"
)

// Config holds per-run settings.
type Config struct {
	OutputDir   string
	HistoryPath string
	// RunDate is the ISO date attributed to this run's history entries.
	// Empty means today. A snapshot-dated value (e.g. the OSM export
	// timestamp) keeps history aligned with the data, not the scheduler.
	RunDate string
	Workers int
}

// Runner executes batch runs against one dataset source.
type Runner struct {
	source dataset.Source
	store  *correction.Store
	cfg    Config
}

// Stats summarizes a finished run.
type Stats struct {
	Date            string
	Districts       int
	FailedDistricts []string
	Total           int
	Missing         int
	Duration        time.Duration
}

// NewRunner creates a runner.
func NewRunner(source dataset.Source, store *correction.Store, cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Runner{source: source, store: store, cfg: cfg}
}

type districtResult struct {
	name     string
	summary  coverage.Summary
	snapshot coverage.FeatureCollection
	err      error
}

// Run executes one full comparison run. A district whose source data fails
// is logged and skipped, leaving its previous artifacts and history
// untouched; the run continues and only returns an error when nothing could
// be processed or an artifact write failed.
func (r *Runner) Run(localDebug bool) (*Stats, error) {
	defer debug.DebugTiming(localDebug, "comparison run")()
	start := time.Now()

	date := r.cfg.RunDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	districts, err := r.source.Districts()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate districts: %w", err)
	}
	if len(districts) == 0 {
		return nil, fmt.Errorf("dataset source lists no districts")
	}
	log.Printf("Starting run for %s: %d districts, %d workers", date, len(districts), r.cfg.Workers)

	// One consistent correction snapshot for the whole run. Corrections
	// submitted while the run is in flight apply on the next run.
	corrections := make(map[string][]correction.Correction, len(districts))
	for _, d := range districts {
		list, err := r.store.Load(d)
		if err != nil {
			return nil, fmt.Errorf("failed to load corrections: %w", err)
		}
		corrections[d] = list
	}

	jobs := make(chan string)
	results := make(chan districtResult, len(districts))

	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				results <- r.processDistrict(localDebug, name, corrections[name])
			}
		}()
	}
	for _, d := range districts {
		jobs <- d
	}
	close(jobs)
	wg.Wait()
	close(results)

	stats := &Stats{Date: date, Districts: len(districts)}
	var summaries []coverage.Summary
	snapshots := make(map[string]coverage.FeatureCollection)

	for res := range results {
		if res.err != nil {
			var srcErr *dataset.SourceDataError
			if errors.As(res.err, &srcErr) {
				log.Printf("Skipping district %s: %v", res.name, res.err)
				stats.FailedDistricts = append(stats.FailedDistricts, res.name)
				continue
			}
			return nil, res.err
		}
		summaries = append(summaries, res.summary)
		snapshots[res.name] = res.snapshot
		stats.Total += res.summary.Total
		stats.Missing += res.summary.Missing
	}
	sort.Strings(stats.FailedDistricts)

	if len(summaries) == 0 {
		return nil, fmt.Errorf("no district could be processed")
	}

	if err := r.writeArtifacts(date, summaries, snapshots); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	log.Printf("Run complete: %d/%d addresses missing (%.2f%% coverage), %d districts failed, took %v",
		stats.Missing, stats.Total, coverage.Percent(stats.Total, stats.Missing),
		len(stats.FailedDistricts), stats.Duration)
	return stats, nil
}

// processDistrict matches one district. No state is shared with other
// districts, so workers need no locking.
func (r *Runner) processDistrict(localDebug bool, name string, corrections []correction.Correction) districtResult {
	defer debug.DebugTiming(localDebug, "district "+name)()

	records, err := r.source.CadastralRecords(name)
	if err != nil {
		return districtResult{name: name, err: err}
	}
	mapAddrs, err := r.source.MapAddresses(name)
	if err != nil {
		return districtResult{name: name, err: err}
	}

	index := dataset.BuildIndex(mapAddrs)
	overlay := correction.NewOverlay(corrections)
	debug.DebugOutput(localDebug, "%s: %d cadastral records, %d indexed map addresses, %d corrections",
		name, len(records), index.Len(), len(corrections))

	outcomes := match.All(overlay.ApplyAll(records), index)
	summary, outcomes := coverage.Aggregate(name, outcomes)

	return districtResult{
		name:     name,
		summary:  summary,
		snapshot: coverage.Snapshot(outcomes),
	}
}

// writeArtifacts persists the GeoJSON snapshots, the district list and the
// history entries for the run date. History uses replace-by-date so a
// same-day re-run never duplicates rows.
func (r *Runner) writeArtifacts(date string, summaries []coverage.Summary, snapshots map[string]coverage.FeatureCollection) error {
	exporter := export.NewExporter(r.cfg.OutputDir)

	for name, fc := range snapshots {
		if err := exporter.WriteGeoJSON(name, fc); err != nil {
			return err
		}
	}
	if err := exporter.WriteDistrictList(summaries); err != nil {
		return err
	}

	hist, err := history.Load(r.cfg.HistoryPath)
	if err != nil {
		return err
	}

	globalTotal, globalMissing := 0, 0
	for _, s := range summaries {
		if s.Status == coverage.StatusUnavailable {
			// No data is not a data point; recording zeros would poison
			// the trend series.
			continue
		}
		hist.AppendOrReplaceDistrict(s.Name, history.Entry{
			Date:     date,
			Total:    s.Total,
			Missing:  s.Missing,
			Coverage: s.Coverage,
		})
		globalTotal += s.Total
		globalMissing += s.Missing
	}

	// The global entry is fixed at run time from the district sums, so old
	// snapshots stay valid even if district definitions change later.
	hist.AppendOrReplaceGlobal(history.Entry{
		Date:     date,
		Total:    globalTotal,
		Missing:  globalMissing,
		Coverage: coverage.Percent(globalTotal, globalMissing),
	})

	return hist.Save()
}
