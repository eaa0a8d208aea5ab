// Package journal keeps an append-only log of what happened to a pet: every
// action and every tick, with the state it left the pet in.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const (
	KindAction = "action"
	KindTick   = "tick"
	KindSave   = "save"
)

// Entry is one journal line. IDs are ULIDs so they sort by time.
type Entry struct {
	ID        ulid.ULID
	SessionID uuid.UUID
	Time      time.Time
	Kind      string
	// Name is the action name for KindAction entries.
	Name    string
	Species string
	PetName string
	State   string
	Payload json.RawMessage
}

// WithPayload marshals v into the entry's payload.
func (e Entry) WithPayload(v any) (Entry, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return e, fmt.Errorf("failed to marshal payload: %w", err)
	}
	e.Payload = b
	return e, nil
}

type Journal interface {
	Append(ctx context.Context, e Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

var (
	_ Journal = (*SQLite)(nil)
	_ Journal = Nop{}
)

// SQLite is a Journal backed by a local SQLite database.
type SQLite struct {
	db *sqlx.DB
}

// row is the stored shape of an Entry.
type row struct {
	ID        string `db:"id"`
	SessionID string `db:"session_id"`
	TS        int64  `db:"ts"`
	Kind      string `db:"kind"`
	Name      string `db:"name"`
	Species   string `db:"species"`
	PetName   string `db:"pet_name"`
	State     string `db:"state"`
	Payload   string `db:"payload"`
}

func (r row) entry() (Entry, error) {
	id, err := ulid.ParseStrict(r.ID)
	if err != nil {
		return Entry{}, fmt.Errorf("bad journal entry id %q: %w", r.ID, err)
	}
	session, err := uuid.Parse(r.SessionID)
	if err != nil {
		return Entry{}, fmt.Errorf("bad journal session id %q: %w", r.SessionID, err)
	}
	return Entry{
		ID:        id,
		SessionID: session,
		Time:      time.Unix(0, r.TS),
		Kind:      r.Kind,
		Name:      r.Name,
		Species:   r.Species,
		PetName:   r.PetName,
		State:     r.State,
		Payload:   json.RawMessage(r.Payload),
	}, nil
}

// Open opens or creates the journal database at path.
func Open(ctx context.Context, path string) (*SQLite, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	// Single writer; sqlite serializes anyway.
	db.SetMaxOpenConns(1)

	if err := createSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func createSchema(ctx context.Context, db *sqlx.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			ts INTEGER NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			species TEXT NOT NULL,
			pet_name TEXT NOT NULL,
			state TEXT NOT NULL,
			payload TEXT NOT NULL DEFAULT 'null'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_ts ON entries(ts);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session_id);`,
	}
	for _, query := range schemas {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// Append stores e, filling in an ID and timestamp when they are unset.
func (j *SQLite) Append(ctx context.Context, e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	if e.ID == (ulid.ULID{}) {
		e.ID = ulid.MustNew(ulid.Timestamp(e.Time), ulid.DefaultEntropy())
	}
	r := row{
		ID:        e.ID.String(),
		SessionID: e.SessionID.String(),
		TS:        e.Time.UnixNano(),
		Kind:      e.Kind,
		Name:      e.Name,
		Species:   e.Species,
		PetName:   e.PetName,
		State:     e.State,
		Payload:   string(e.Payload),
	}
	if r.Payload == "" {
		r.Payload = "null"
	}

	query := `
		INSERT INTO entries (id, session_id, ts, kind, name, species, pet_name, state, payload)
		VALUES (:id, :session_id, :ts, :kind, :name, :species, :pet_name, :state, :payload)
	`
	if _, err := j.db.NamedExecContext(ctx, query, r); err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

func (j *SQLite) Recent(ctx context.Context, limit int) ([]Entry, error) {
	var rows []row
	query := `SELECT id, session_id, ts, kind, name, species, pet_name, state, payload
		FROM entries ORDER BY ts DESC, rowid DESC LIMIT ?`
	if err := j.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.entry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// Nop discards everything. It is used when no journal path is configured.
type Nop struct{}

func (Nop) Append(context.Context, Entry) error { return nil }
func (Nop) Recent(context.Context, int) ([]Entry, error) { return nil, nil }
func (Nop) Close() error { return nil }
