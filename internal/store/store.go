package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/lawnchairsociety/mapforge/internal/geom"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: record not found")

// RegionRecord is a persisted generated region. Data holds the encoded
// region document; the store treats it as opaque.
type RegionRecord struct {
	ID        string
	Name      string
	Algorithm string
	Seed      int64
	RoomCount int
	Data      string
	CreatedAt time.Time
}

// Store provides persistence for generated regions and world layouts.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the database identified by driver and dsn, runs the
// dialect's initialization statements, and creates the schema if needed.
func Open(driver, dsn string) (*Store, error) {
	dialect := NewDialect(DialectType(driver))

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db, dialect: dialect}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	for _, stmt := range s.dialect.InitStatements() {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("running init statement: %w", err)
		}
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS regions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			seed BIGINT NOT NULL,
			room_count INTEGER NOT NULL,
			data TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS world_layout (
			region_id TEXT PRIMARY KEY,
			x DOUBLE PRECISION NOT NULL,
			y DOUBLE PRECISION NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	return nil
}

// SaveRegion inserts a region record, replacing any existing record with
// the same id.
func (s *Store) SaveRegion(rec RegionRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(
		"INSERT INTO regions (id, name, algorithm, seed, room_count, data, created_at) VALUES (%s, %s, %s, %s, %s, %s, %s)",
		s.dialect.Placeholder(1), s.dialect.Placeholder(2), s.dialect.Placeholder(3),
		s.dialect.Placeholder(4), s.dialect.Placeholder(5), s.dialect.Placeholder(6),
		s.dialect.Placeholder(7),
	)
	_, err := s.db.Exec(query, rec.ID, rec.Name, rec.Algorithm, rec.Seed, rec.RoomCount, rec.Data, rec.CreatedAt)
	if err == nil {
		return nil
	}
	if !s.dialect.IsDuplicateKeyError(err) {
		return fmt.Errorf("saving region %s: %w", rec.ID, err)
	}

	update := fmt.Sprintf(
		"UPDATE regions SET name = %s, algorithm = %s, seed = %s, room_count = %s, data = %s, created_at = %s WHERE id = %s",
		s.dialect.Placeholder(1), s.dialect.Placeholder(2), s.dialect.Placeholder(3),
		s.dialect.Placeholder(4), s.dialect.Placeholder(5), s.dialect.Placeholder(6),
		s.dialect.Placeholder(7),
	)
	if _, err := s.db.Exec(update, rec.Name, rec.Algorithm, rec.Seed, rec.RoomCount, rec.Data, rec.CreatedAt, rec.ID); err != nil {
		return fmt.Errorf("updating region %s: %w", rec.ID, err)
	}

	return nil
}

// GetRegion retrieves a region record by id. Returns ErrNotFound if no
// such region exists.
func (s *Store) GetRegion(id string) (*RegionRecord, error) {
	query := fmt.Sprintf(
		"SELECT id, name, algorithm, seed, room_count, data, created_at FROM regions WHERE id = %s",
		s.dialect.Placeholder(1),
	)

	var rec RegionRecord
	err := s.db.QueryRow(query, id).Scan(
		&rec.ID, &rec.Name, &rec.Algorithm, &rec.Seed, &rec.RoomCount, &rec.Data, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading region %s: %w", id, err)
	}

	return &rec, nil
}

// ListRegions returns all stored region records ordered by id, without
// the encoded data payload.
func (s *Store) ListRegions() ([]RegionRecord, error) {
	rows, err := s.db.Query("SELECT id, name, algorithm, seed, room_count, created_at FROM regions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	defer rows.Close()

	var records []RegionRecord
	for rows.Next() {
		var rec RegionRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Algorithm, &rec.Seed, &rec.RoomCount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning region row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating region rows: %w", err)
	}

	return records, nil
}

// DeleteRegion removes a region record. Deleting a missing region is not
// an error.
func (s *Store) DeleteRegion(id string) error {
	query := fmt.Sprintf("DELETE FROM regions WHERE id = %s", s.dialect.Placeholder(1))
	if _, err := s.db.Exec(query, id); err != nil {
		return fmt.Errorf("deleting region %s: %w", id, err)
	}
	return nil
}

// SaveWorldLayout replaces the stored world layout with the given
// region positions.
func (s *Store) SaveWorldLayout(positions map[string]geom.Vec2) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning layout transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM world_layout"); err != nil {
		return fmt.Errorf("clearing world layout: %w", err)
	}

	insert := fmt.Sprintf(
		"INSERT INTO world_layout (region_id, x, y, updated_at) VALUES (%s, %s, %s, %s)",
		s.dialect.Placeholder(1), s.dialect.Placeholder(2), s.dialect.Placeholder(3),
		s.dialect.Placeholder(4),
	)

	now := time.Now().UTC()
	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		pos := positions[id]
		if _, err := tx.Exec(insert, id, pos.X, pos.Y, now); err != nil {
			return fmt.Errorf("saving layout for region %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// LoadWorldLayout returns the stored world layout positions keyed by
// region id.
func (s *Store) LoadWorldLayout() (map[string]geom.Vec2, error) {
	rows, err := s.db.Query("SELECT region_id, x, y FROM world_layout")
	if err != nil {
		return nil, fmt.Errorf("loading world layout: %w", err)
	}
	defer rows.Close()

	positions := make(map[string]geom.Vec2)
	for rows.Next() {
		var id string
		var x, y float64
		if err := rows.Scan(&id, &x, &y); err != nil {
			return nil, fmt.Errorf("scanning layout row: %w", err)
		}
		positions[id] = geom.Vec2{X: x, Y: y}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layout rows: %w", err)
	}

	return positions, nil
}
