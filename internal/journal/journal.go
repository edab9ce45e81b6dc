// Package journal persists ad-coordination log lines to SQLite so a run can
// be inspected after the host exits.
package journal

import (
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "ssai-innovid"
	dbFileName = "journal.db"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("journal closed")

// Entry is one journaled line.
type Entry struct {
	ID      int64
	RunID   string
	At      time.Time
	Source  string
	Message string
}

// Store is a SQLite-backed journal. Safe for concurrent use.
type Store struct {
	db    *sql.DB
	clock clock.Clock
	runID string

	mu     sync.Mutex
	closed bool
}

// DefaultPath returns $XDG_DATA_HOME/ssai-innovid/journal.db.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens (creating if needed) the journal at path. An empty path uses
// DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return newStore(db, clock.New())
}

// OpenMemory opens a throwaway in-memory journal.
func OpenMemory(clk clock.Clock) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// every connection would get its own empty database otherwise
	db.SetMaxOpenConns(1)
	if clk == nil {
		clk = clock.New()
	}
	return newStore(db, clk)
}

func newStore(db *sql.DB, clk clock.Clock) (*Store, error) {
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, clock: clk, runID: uuid.NewString()}, nil
}

// RunID identifies the entries written by this store instance.
func (s *Store) RunID() string {
	return s.runID
}

// Append records a message. Trailing newlines are dropped. Blank messages are
// ignored.
func (s *Store) Append(source, message string) error {
	message = strings.TrimRight(message, "\n")
	if strings.TrimSpace(message) == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	_, err := s.db.Exec(
		`INSERT INTO entries (run_id, at, source, message) VALUES (?, ?, ?, ?)`,
		s.runID, s.clock.Now().UnixNano(), source, message,
	)
	return err
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (s *Store) Recent(limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`
		SELECT id, run_id, at, source, message
		FROM entries
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.ID, &e.RunID, &at, &e.Source, &e.Message); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune keeps the newest keep entries and deletes the rest, returning the
// number removed.
func (s *Store) Prune(keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	if keep < 0 {
		keep = 0
	}

	var removed int64
	err := withTx(s.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			DELETE FROM entries
			WHERE id NOT IN (SELECT id FROM entries ORDER BY id DESC LIMIT ?)
		`, keep)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	return removed, err
}

// Close releases the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return s.db.Close()
}

// Sink adapts the store to a line logger. Write failures go to onErr, which
// may be nil.
type Sink struct {
	store  *Store
	source string
	onErr  func(error)
}

// Sink returns a line logger tagging entries with source.
func (s *Store) Sink(source string, onErr func(error)) *Sink {
	return &Sink{store: s, source: source, onErr: onErr}
}

// Log appends msg to the journal.
func (k *Sink) Log(msg string) {
	if err := k.store.Append(k.source, msg); err != nil && k.onErr != nil {
		k.onErr(err)
	}
}

// Writer returns an io.Writer that appends each write as one entry. It
// suits line-oriented loggers that emit a record per Write.
func (s *Store) Writer(source string) io.Writer {
	return writer{store: s, source: source}
}

type writer struct {
	store  *Store
	source string
}

func (w writer) Write(p []byte) (int, error) {
	if err := w.store.Append(w.source, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
