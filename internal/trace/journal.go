// Package trace records what the engine did: state changes, dispatched
// actions, and navigation transitions. Events land in a SQLite journal
// so a session can be inspected after the fact or compared against a
// golden trace in tests.
package trace

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/yamui/internal/state"
)

//go:embed schema.sql
var schemaSQL string

// Kind classifies a journal event.
type Kind string

const (
	// KindState records a state store write.
	KindState Kind = "state"
	// KindAction records a dispatched action.
	KindAction Kind = "action"
	// KindNav records a navigation transition.
	KindNav Kind = "nav"
)

// Event is one recorded journal row.
type Event struct {
	Session string
	Seq     int64
	Kind    Kind
	Subject string
	Detail  string
	At      time.Time
}

// Journal writes trace events for one session to a SQLite database.
//
// Uses WAL mode so a reader can tail the journal while the engine
// writes. Safe for concurrent use.
type Journal struct {
	db      *sql.DB
	session string
	clock   func() time.Time

	mu  sync.Mutex
	seq int64
}

// Option configures a Journal.
type Option func(*Journal)

// WithClock overrides the event timestamp source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(j *Journal) { j.clock = clock }
}

// Open creates or opens the journal database at path and starts a new
// session using a token from gen.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// Safe to call against an existing journal file; the schema is
// idempotent.
func Open(path string, gen TokenGenerator, opts ...Option) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	j := &Journal{db: db, session: gen.Generate(), clock: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Session returns the session token events are recorded under.
func (j *Journal) Session() string { return j.session }

func (j *Journal) record(ctx context.Context, kind Kind, subject, detail string) error {
	j.mu.Lock()
	j.seq++
	seq := j.seq
	j.mu.Unlock()

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO events (session, seq, kind, subject, detail, at_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, j.session, seq, string(kind), subject, detail, j.clock().UnixMilli())
	if err != nil {
		return fmt.Errorf("record %s event: %w", kind, err)
	}
	return nil
}

// RecordStateChange journals a state write.
func (j *Journal) RecordStateChange(ctx context.Context, key, value string) error {
	return j.record(ctx, KindState, key, value)
}

// RecordAction journals a dispatched action and its evaluated
// arguments.
func (j *Journal) RecordAction(ctx context.Context, verb, detail string) error {
	return j.record(ctx, KindAction, verb, detail)
}

// RecordNavigation journals a navigation transition.
func (j *Journal) RecordNavigation(ctx context.Context, op, target string) error {
	return j.record(ctx, KindNav, op, target)
}

// Events returns every event of the journal's session in seq order.
func (j *Journal) Events(ctx context.Context) ([]Event, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT session, seq, kind, subject, detail, at_ms
		FROM events
		WHERE session = ?
		ORDER BY seq
	`, j.session)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var kind string
		var atMS int64
		if err := rows.Scan(&e.Session, &e.Seq, &kind, &e.Subject, &e.Detail, &atMS); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Kind = Kind(kind)
		e.At = time.UnixMilli(atMS)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// Attach registers a wildcard watcher on store that journals every
// state change. The returned handle detaches it via store.Unwatch.
// Journal write failures are silent here; watchers cannot fail.
func (j *Journal) Attach(store *state.Store) state.Handle {
	return store.Watch("", func(key, value string) {
		_ = j.RecordStateChange(context.Background(), key, value)
	})
}
