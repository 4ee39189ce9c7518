// Package store maintains the local SQLite index of generated reports.
// The index is auxiliary to the report files themselves: it powers the
// list and purge commands and lets the log viewer locate reports per
// host without scanning the log directory.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ReportRecord is one indexed report file.
type ReportRecord struct {
	ID          int64
	ReportID    string
	Hostname    string
	GeneratedAt time.Time
	Path        string
	Mailed      bool
	SizeBytes   int64
	Sections    int
	StoredAt    time.Time
}

// ListFilter holds optional query parameters for listing reports.
type ListFilter struct {
	Hostname string
	Limit    int
}

// Store provides access to the report index.
type Store struct {
	db *sql.DB
}

// New opens the SQLite database at path and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert indexes a report and returns the new row ID.
func (s *Store) Insert(ctx context.Context, rec *ReportRecord) (int64, error) {
	storedAt := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO reports (report_id, hostname, generated_at, path, mailed, size_bytes, sections, stored_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ReportID,
		rec.Hostname,
		rec.GeneratedAt.UTC().Format(time.RFC3339),
		rec.Path,
		rec.Mailed,
		rec.SizeBytes,
		rec.Sections,
		storedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	rec.StoredAt = storedAt
	return id, nil
}

// List returns indexed reports, most recent first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]ReportRecord, error) {
	query := `SELECT id, report_id, hostname, generated_at, path, mailed, size_bytes, sections, stored_at
		FROM reports`
	var args []any
	if f.Hostname != "" {
		query += " WHERE hostname = ?"
		args = append(args, f.Hostname)
	}
	query += " ORDER BY generated_at DESC"

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var records []ReportRecord
	for rows.Next() {
		var rec ReportRecord
		var generatedAt, storedAt string
		if err := rows.Scan(&rec.ID, &rec.ReportID, &rec.Hostname, &generatedAt, &rec.Path,
			&rec.Mailed, &rec.SizeBytes, &rec.Sections, &storedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		rec.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
		rec.StoredAt, _ = time.Parse(time.RFC3339, storedAt)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Purge deletes index rows older than the given duration. The report
// files themselves are left alone; file retention is external.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE generated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge reports: %w", err)
	}
	return result.RowsAffected()
}
