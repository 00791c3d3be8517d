// Package etl imports the extracted ALKIS and OSM address snapshots from
// CSV into Postgres. Each import is truncate-and-reload: the tables always
// hold exactly one snapshot, matching the rebuild-from-scratch lifecycle of
// the datasets.
package etl

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alkis-osm-coverage/internal/debug"
)

// Pipeline handles snapshot imports.
type Pipeline struct {
	db *sql.DB
}

// NewPipeline creates a new import pipeline.
func NewPipeline(db *sql.DB) *Pipeline {
	return &Pipeline{db: db}
}

// EnsureSchema creates the snapshot tables when missing.
func (p *Pipeline) EnsureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS alkis_address (
			alkis_id    TEXT NOT NULL,
			district    TEXT NOT NULL,
			street      TEXT NOT NULL,
			housenumber TEXT NOT NULL,
			lat         DOUBLE PRECISION NOT NULL,
			lon         DOUBLE PRECISION NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alkis_address_district ON alkis_address (district)`,
		`CREATE TABLE IF NOT EXISTS osm_address (
			district    TEXT NOT NULL,
			street      TEXT NOT NULL,
			housenumber TEXT NOT NULL,
			lat         DOUBLE PRECISION NOT NULL,
			lon         DOUBLE PRECISION NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_osm_address_district ON osm_address (district)`,
	}
	for _, stmt := range stmts {
		if _, err := p.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// LoadCadastral replaces the ALKIS snapshot from a CSV with columns
// alkis_id, district, street, housenumber, lat, lon (any column order,
// matched by header). Returns the number of imported rows.
func (p *Pipeline) LoadCadastral(localDebug bool, csvPath string) (int, error) {
	debug.DebugHeader(localDebug)
	defer debug.DebugFooter(localDebug)
	debug.DebugOutput(localDebug, "Loading ALKIS snapshot from: %s", csvPath)

	return p.loadCSV(localDebug, csvPath, "alkis_address",
		[]string{"alkis_id", "district", "street", "housenumber", "lat", "lon"},
		`INSERT INTO alkis_address (alkis_id, district, street, housenumber, lat, lon)
		 VALUES ($1, $2, $3, $4, $5, $6)`)
}

// LoadMapAddresses replaces the OSM snapshot from a CSV with columns
// district, street, housenumber, lat, lon.
func (p *Pipeline) LoadMapAddresses(localDebug bool, csvPath string) (int, error) {
	debug.DebugHeader(localDebug)
	defer debug.DebugFooter(localDebug)
	debug.DebugOutput(localDebug, "Loading OSM snapshot from: %s", csvPath)

	return p.loadCSV(localDebug, csvPath, "osm_address",
		[]string{"district", "street", "housenumber", "lat", "lon"},
		`INSERT INTO osm_address (district, street, housenumber, lat, lon)
		 VALUES ($1, $2, $3, $4, $5)`)
}

func (p *Pipeline) loadCSV(localDebug bool, csvPath, table string, columns []string, insert string) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range columns {
		if _, ok := columnMap[col]; !ok {
			return 0, fmt.Errorf("CSV is missing column %q", col)
		}
	}
	debug.DebugOutput(localDebug, "CSV columns: %v", header)

	tx, err := p.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("TRUNCATE TABLE " + table); err != nil {
		return 0, fmt.Errorf("failed to truncate %s: %w", table, err)
	}

	stmt, err := tx.Prepare(insert)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	recordCount := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV row %d: %w", recordCount+2, err)
		}

		args := make([]interface{}, len(columns))
		for i, col := range columns {
			value := strings.TrimSpace(row[columnMap[col]])
			if col == "lat" || col == "lon" {
				f, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return 0, fmt.Errorf("bad %s in CSV row %d: %w", col, recordCount+2, err)
				}
				args[i] = f
			} else {
				args[i] = value
			}
		}

		if _, err := stmt.Exec(args...); err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", recordCount+2, err)
		}
		recordCount++

		if recordCount%50000 == 0 {
			debug.DebugOutput(localDebug, "Imported %d rows into %s", recordCount, table)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	debug.DebugOutput(localDebug, "Imported %d rows into %s", recordCount, table)
	return recordCount, nil
}
