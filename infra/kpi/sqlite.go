// Package kpi persists per-epoch footprint records in SQLite.
package kpi

import (
	"database/sql"

	_ "modernc.org/sqlite"

	core "github.com/kilianp07/solar4farm/core/metrics/eco"
)

// SQLiteStore persists eco records in a SQLite database. A record replaces
// the one stored for the same system and epoch.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS eco_epoch (
        system TEXT,
        epoch INTEGER,
        embodied REAL,
        operational REAL,
        efficiency REAL,
        PRIMARY KEY(system, epoch)
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts or replaces the record.
func (s *SQLiteStore) Add(r core.Record) error {
	_, err := s.db.Exec(`INSERT INTO eco_epoch (system, epoch, embodied, operational, efficiency)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(system, epoch) DO UPDATE SET
            embodied = excluded.embodied,
            operational = excluded.operational,
            efficiency = excluded.efficiency`,
		r.System, r.Epoch, r.EmbodiedKg, r.OperationalKg, r.Efficiency)
	return err
}

// Query returns records with epochs in [from,to].
func (s *SQLiteStore) Query(system string, from, to int) ([]core.Record, error) {
	rows, err := s.db.Query(`SELECT system, epoch, embodied, operational, efficiency
        FROM eco_epoch WHERE system = ? AND epoch >= ? AND epoch <= ? ORDER BY epoch`,
		system, from, to)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []core.Record
	for rows.Next() {
		var r core.Record
		if err := rows.Scan(&r.System, &r.Epoch, &r.EmbodiedKg, &r.OperationalKg, &r.Efficiency); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Systems lists the stored systems in name order.
func (s *SQLiteStore) Systems() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT system FROM eco_epoch ORDER BY system`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
