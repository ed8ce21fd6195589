// Package store provides a SQLite-backed proposal store with version history.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no proposal or version matches.
var ErrNotFound = document.ErrNotFound

// Fixed-width so lexical order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists proposals in SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

var _ document.Store = (*Store)(nil)

// Open opens or creates the proposal database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save upserts p and appends a version row. A proposal without an ID is
// assigned a new UUID.
func (s *Store) Save(ctx context.Context, p model.Proposal) (document.SaveResult, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	savedAt := s.now().UTC()
	p.MarkSaved(p.ID, savedAt)

	doc, err := document.Encode(p)
	if err != nil {
		return document.SaveResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return document.SaveResult{}, fmt.Errorf("beginning save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stamp := savedAt.Format(timeLayout)
	_, err = tx.ExecContext(ctx, `INSERT INTO proposals
		(id, title, active_client, proposal_date, saved_at, document)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			active_client = excluded.active_client,
			proposal_date = excluded.proposal_date,
			saved_at = excluded.saved_at,
			document = excluded.document`,
		p.ID, p.Title, p.ActiveClient, formatDate(p.Date), stamp, string(doc),
	)
	if err != nil {
		return document.SaveResult{}, fmt.Errorf("saving proposal: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) + 1 FROM proposal_versions WHERE proposal_id = ?", p.ID,
	).Scan(&version)
	if err != nil {
		return document.SaveResult{}, fmt.Errorf("numbering version: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO proposal_versions
		(proposal_id, version, title, saved_at, document)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, version, p.Title, stamp, string(doc),
	)
	if err != nil {
		return document.SaveResult{}, fmt.Errorf("saving version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return document.SaveResult{}, fmt.Errorf("committing save: %w", err)
	}
	return document.SaveResult{ID: p.ID, Version: version, SavedAt: savedAt}, nil
}

// Load returns the latest saved document for id.
func (s *Store) Load(ctx context.Context, id string) (model.Proposal, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT document FROM proposals WHERE id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Proposal{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.Proposal{}, fmt.Errorf("loading proposal: %w", err)
	}
	return document.Decode([]byte(doc))
}

// LoadVersion returns a historical version of id.
func (s *Store) LoadVersion(ctx context.Context, id string, version int) (model.Proposal, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		"SELECT document FROM proposal_versions WHERE proposal_id = ? AND version = ?", id, version,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Proposal{}, fmt.Errorf("%w: %s version %d", ErrNotFound, id, version)
	}
	if err != nil {
		return model.Proposal{}, fmt.Errorf("loading version: %w", err)
	}
	return document.Decode([]byte(doc))
}

// List returns every stored proposal, most recently saved first.
func (s *Store) List(ctx context.Context) ([]document.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, active_client, proposal_date, saved_at
		FROM proposals ORDER BY saved_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing proposals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []document.Entry
	for rows.Next() {
		var e document.Entry
		var client, date sql.NullString
		var savedAt string
		if err := rows.Scan(&e.ID, &e.Title, &client, &date, &savedAt); err != nil {
			return nil, err
		}
		e.Client = client.String
		if date.Valid {
			e.Date, _ = time.Parse(time.RFC3339, date.String)
		}
		e.SavedAt, _ = time.Parse(timeLayout, savedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Versions lists the saved versions of id, newest first.
func (s *Store) Versions(ctx context.Context, id string) ([]document.Version, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT version, title, saved_at
		FROM proposal_versions WHERE proposal_id = ? ORDER BY version DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var versions []document.Version
	for rows.Next() {
		var v document.Version
		var savedAt string
		if err := rows.Scan(&v.Version, &v.Title, &savedAt); err != nil {
			return nil, err
		}
		v.SavedAt, _ = time.Parse(timeLayout, savedAt)
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return versions, nil
}

// Delete removes a proposal and its history.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM proposals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting proposal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Count returns the number of stored proposals.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM proposals").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting proposals: %w", err)
	}
	return n, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
