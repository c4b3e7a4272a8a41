package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/stodlotsen/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS support_records (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		authority TEXT NOT NULL DEFAULT '',
		audiences TEXT NOT NULL DEFAULT '[]',
		category TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		signals TEXT NOT NULL DEFAULT '[]',
		text TEXT NOT NULL DEFAULT '{}',
		requirements TEXT NOT NULL DEFAULT '[]',
		amount TEXT NOT NULL DEFAULT '',
		apply_url TEXT NOT NULL DEFAULT '',
		info_url TEXT NOT NULL DEFAULT '',
		last_verified TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_support_records_position ON support_records(position);
	`
	_, err := db.Exec(schema)
	return err
}

const recordColumns = `id, authority, audiences, category, region, tags, signals, text,
	requirements, amount, apply_url, info_url, last_verified`

// ReplaceAll deletes every stored record and inserts records in one transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, records []*models.SupportRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM support_records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO support_records (position, `+recordColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		row, err := encodeRecord(r)
		if err != nil {
			return fmt.Errorf("record %s: %w", r.ID, err)
		}
		args := append([]interface{}{i}, row...)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// ListRecords returns all records in catalog order.
func (s *SQLiteStore) ListRecords(ctx context.Context) ([]*models.SupportRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM support_records ORDER BY position`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.SupportRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetRecord returns a record by ID.
func (s *SQLiteStore) GetRecord(ctx context.Context, id string) (*models.SupportRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM support_records WHERE id = ?`, id,
	)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return r, err
}

// CountRecords returns the number of stored records.
func (s *SQLiteStore) CountRecords(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM support_records`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(sc scanner) (*models.SupportRecord, error) {
	var r models.SupportRecord
	var audiences, tags, signals, text, requirements string
	err := sc.Scan(&r.ID, &r.Authority, &audiences, &r.Category, &r.Region, &tags, &signals, &text,
		&requirements, &r.Amount, &r.ApplyURL, &r.InfoURL, &r.LastVerified)
	if err != nil {
		return nil, err
	}
	for _, f := range []struct {
		raw string
		dst interface{}
	}{
		{audiences, &r.Audiences},
		{tags, &r.Tags},
		{signals, &r.Signals},
		{text, &r.Text},
		{requirements, &r.Requirements},
	} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("failed to decode record %s: %w", r.ID, err)
		}
	}
	return &r, nil
}

func encodeRecord(r *models.SupportRecord) ([]interface{}, error) {
	lists := make([]string, 0, 5)
	for _, v := range []interface{}{r.Audiences, r.Tags, r.Signals, r.Text, r.Requirements} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal: %w", err)
		}
		lists = append(lists, string(b))
	}
	return []interface{}{
		r.ID, r.Authority, lists[0], r.Category, r.Region, lists[1], lists[2], lists[3],
		lists[4], r.Amount, r.ApplyURL, r.InfoURL, r.LastVerified,
	}, nil
}
