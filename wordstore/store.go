// Package wordstore persists word definitions (named Kapila programs) in a
// local SQLite database, so drivers can share a dictionary across runs.
package wordstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/kapila/vm"
	"github.com/chazu/kapila/vm/wire"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound indicates the requested word doesn't exist.
var ErrNotFound = errors.New("word not found")

var log = commonlog.GetLogger("kapila.store")

// Store is a SQLite-backed word dictionary. Programs are stored as CBOR
// instruction blobs keyed by word name.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Open opens (creating if needed) the word database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS words (
		name TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		code BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	log.Debugf("opened word store at %s", dbPath)
	return &Store{db: db, dbPath: dbPath}, nil
}

// DefaultPath returns the word database path: $KAPILA_WORDS_DB if set,
// otherwise ~/.kapila/words.db.
func DefaultPath() (string, error) {
	if p := os.Getenv("KAPILA_WORDS_DB"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, ".kapila", "words.db"), nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	if st.db != nil {
		return st.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (st *Store) Path() string { return st.dbPath }

// Put stores a word definition, replacing any previous program bound to the
// name.
func (st *Store) Put(name string, p vm.Program) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	blob, err := wire.MarshalInstructions(wire.InstructionsFromProgram(p))
	if err != nil {
		return fmt.Errorf("encoding word %q: %w", name, err)
	}

	id := "word_" + uuid.New().String()
	_, err = st.db.Exec(
		"INSERT OR REPLACE INTO words (name, id, code, updated_at) VALUES (?, ?, ?, datetime('now'))",
		name, id, blob,
	)
	if err != nil {
		return fmt.Errorf("saving word %q: %w", name, err)
	}

	log.Debugf("stored word %q (%d instructions)", name, len(p))
	return nil
}

// Get retrieves the program bound to name.
func (st *Store) Get(name string) (vm.Program, error) {
	var blob []byte
	err := st.db.QueryRow("SELECT code FROM words WHERE name = ?", name).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying word %q: %w", name, err)
	}

	ins, err := wire.UnmarshalInstructions(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding word %q: %w", name, err)
	}
	return wire.ProgramFromInstructions(ins), nil
}

// Delete removes a word definition.
func (st *Store) Delete(name string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	res, err := st.db.Exec("DELETE FROM words WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting word %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting word %q: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	log.Debugf("deleted word %q", name)
	return nil
}

// List returns all stored word names, sorted.
func (st *Store) List() ([]string, error) {
	rows, err := st.db.Query("SELECT name FROM words ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing words: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ImportImage stores every word definition carried by an image. Returns the
// number of words stored.
func (st *Store) ImportImage(img *wire.Image) (int, error) {
	count := 0
	for _, w := range img.Words {
		if err := st.Put(w.Name, wire.ProgramFromInstructions(w.Code)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Dictionary loads every stored word into a vm.Dictionary.
func (st *Store) Dictionary() (*vm.Dictionary, error) {
	rows, err := st.db.Query("SELECT name, code FROM words")
	if err != nil {
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}
	defer rows.Close()

	dict := vm.NewDictionary()
	for rows.Next() {
		var name string
		var blob []byte
		if err := rows.Scan(&name, &blob); err != nil {
			return nil, fmt.Errorf("scanning word: %w", err)
		}
		ins, err := wire.UnmarshalInstructions(blob)
		if err != nil {
			return nil, fmt.Errorf("decoding word %q: %w", name, err)
		}
		dict.Define(name, wire.ProgramFromInstructions(ins))
	}
	return dict, rows.Err()
}
