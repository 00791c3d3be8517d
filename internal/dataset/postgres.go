package dataset

import (
	"database/sql"
	"fmt"
)

// PostgresSource reads the imported ALKIS and OSM snapshots from Postgres
// (tables populated by the etl package).
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource creates a source backed by the given connection.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Districts lists every district present in the cadastral snapshot.
func (s *PostgresSource) Districts() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT district FROM alkis_address ORDER BY district`)
	if err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}
	defer rows.Close()

	var districts []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan district: %w", err)
		}
		districts = append(districts, name)
	}
	return districts, rows.Err()
}

// CadastralRecords loads the authoritative address rows for one district.
func (s *PostgresSource) CadastralRecords(district string) ([]CadastralRecord, error) {
	rows, err := s.db.Query(`
		SELECT street, housenumber, lat, lon, alkis_id
		FROM alkis_address
		WHERE district = $1
		ORDER BY alkis_id
	`, district)
	if err != nil {
		return nil, &SourceDataError{District: district, Err: err}
	}
	defer rows.Close()

	var records []CadastralRecord
	for rows.Next() {
		rec := CadastralRecord{District: district}
		if err := rows.Scan(&rec.Street, &rec.Housenumber, &rec.Lat, &rec.Lon, &rec.StableID); err != nil {
			return nil, &SourceDataError{District: district, Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &SourceDataError{District: district, Err: err}
	}
	if len(records) == 0 {
		return nil, &SourceDataError{District: district, Err: fmt.Errorf("no cadastral records in snapshot")}
	}
	return records, nil
}

// MapAddresses loads the OSM-side address rows for one district.
func (s *PostgresSource) MapAddresses(district string) ([]MapAddress, error) {
	rows, err := s.db.Query(`
		SELECT street, housenumber, lat, lon
		FROM osm_address
		WHERE district = $1
	`, district)
	if err != nil {
		return nil, &SourceDataError{District: district, Err: err}
	}
	defer rows.Close()

	var addrs []MapAddress
	for rows.Next() {
		var a MapAddress
		if err := rows.Scan(&a.Street, &a.Housenumber, &a.Lat, &a.Lon); err != nil {
			return nil, &SourceDataError{District: district, Err: err}
		}
		addrs = append(addrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &SourceDataError{District: district, Err: err}
	}
	return addrs, nil
}
