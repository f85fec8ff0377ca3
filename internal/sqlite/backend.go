// Package sqlite implements the SQLite storage backend for save4dream.
// JSONL files in the data directory are the source of truth; SQLite is
// rebuilt from them on every Attach and serves reads.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

var _ types.Store = (*Backend)(nil)

// Backend implements types.Store on top of SQLite and JSONL files.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB

	syncStrategy  string
	pendingWrites []pendingWrite
	pendingMu     sync.Mutex
}

// pendingWrite is a JSONL write deferred by the on_close strategy.
type pendingWrite struct {
	key       string
	operation string
	persist   func() error
}

// Revision is one entry of a key's history.
type Revision struct {
	Key       string          `json:"key"`
	Version   int64           `json:"version"`
	Operation string          `json:"operation"`
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewBackend creates a detached backend. Call Attach before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach creates DataDir if needed, rebuilds the SQLite database from the
// JSONL files and starts accepting reads and writes.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is a cache of the JSONL files; start from scratch.
	dbPath := filepath.Join(dataDir, databaseFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return err
	}
	for _, name := range []string{stateJSONL, historyJSONL} {
		if err := ensureJSONL(filepath.Join(dataDir, name)); err != nil {
			db.Close()
			return fmt.Errorf("creating %s: %w", name, err)
		}
	}
	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.syncStrategy = config.GetSyncStrategy()
	b.pendingWrites = nil
	b.attached = true
	return nil
}

// Detach flushes pending writes and closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if err := b.flushPendingWrites(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}
	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	b.attached = false
	return nil
}

// Get decodes the value stored under key into dst.
func (b *Backend) Get(key string, dst any) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.check(key); err != nil {
		return err
	}

	var value string
	err := b.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("getting %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", types.ErrInvalidData, key, err)
	}
	return nil
}

// Set stores value under key and records a new revision.
func (b *Backend) Set(key string, value any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.check(key); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", types.ErrInvalidData, key, err)
	}

	version, err := b.nextVersion(key)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	hist, err := b.writeRevision(key, version, data, opSet, now, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO kv (key, value, version, updated_at) VALUES (?, ?, ?, ?) "+
				"ON CONFLICT(key) DO UPDATE SET value = excluded.value, version = excluded.version, updated_at = excluded.updated_at",
			key, string(data), version, now.Format(time.RFC3339),
		)
		return err
	})
	if err != nil {
		return err
	}
	return b.persist(key, opSet, hist)
}

// Delete removes key, recording the deletion in its history.
func (b *Backend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.check(key); err != nil {
		return err
	}

	var exists bool
	err := b.db.QueryRow("SELECT 1 FROM kv WHERE key = ?", key).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", key, err)
	}
	version, err := b.nextVersion(key)
	if err != nil {
		return err
	}

	hist, err := b.writeRevision(key, version, []byte("null"), opDelete, time.Now().UTC(), func(tx *sql.Tx) error {
		_, err := tx.Exec("DELETE FROM kv WHERE key = ?", key)
		return err
	})
	if err != nil {
		return err
	}
	return b.persist(key, opDelete, hist)
}

// Keys lists every stored key in ascending order.
func (b *Backend) Keys() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	rows, err := b.db.Query("SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// History returns every revision of key, oldest first. A key that was
// never written has an empty history.
func (b *Backend) History(key string) ([]Revision, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.check(key); err != nil {
		return nil, err
	}
	rows, err := b.db.Query(
		"SELECT version, operation, value, created_at FROM kv_history WHERE key = ? ORDER BY version",
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("reading history of %s: %w", key, err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		r := Revision{Key: key}
		var value, createdAt string
		if err := rows.Scan(&r.Version, &r.Operation, &value, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		r.Value = json.RawMessage(value)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

// nextVersion returns the version for the next revision of key. Versions
// keep counting across deletions.
func (b *Backend) nextVersion(key string) (int64, error) {
	var version int64
	err := b.db.QueryRow(
		"SELECT MAX(COALESCE((SELECT version FROM kv WHERE key = ?), 0), COALESCE((SELECT MAX(version) FROM kv_history WHERE key = ?), 0))",
		key, key,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("reading version of %s: %w", key, err)
	}
	return version + 1, nil
}

func (b *Backend) check(key string) error {
	if !b.attached {
		return types.ErrStoreDetached
	}
	if strings.TrimSpace(key) == "" {
		return types.ErrInvalidKey
	}
	return nil
}

// writeRevision runs mutate and inserts the matching kv_history row in one
// transaction. It returns the history record for the JSONL log.
func (b *Backend) writeRevision(key string, version int64, value []byte, op string, at time.Time, mutate func(*sql.Tx) error) (historyRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return historyRecord{}, fmt.Errorf("generating UUID v7: %w", err)
	}
	hist := historyRecord{
		HistoryID: id.String(),
		Key:       key,
		Version:   version,
		Value:     json.RawMessage(value),
		Operation: op,
		CreatedAt: at.Format(time.RFC3339),
	}

	tx, err := b.db.Begin()
	if err != nil {
		return historyRecord{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := mutate(tx); err != nil {
		return historyRecord{}, fmt.Errorf("%s %s: %w", op, key, err)
	}
	_, err = tx.Exec(
		"INSERT INTO kv_history (history_id, key, version, value, operation, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		hist.HistoryID, key, version, string(value), op, hist.CreatedAt,
	)
	if err != nil {
		return historyRecord{}, fmt.Errorf("recording history of %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return historyRecord{}, fmt.Errorf("committing %s: %w", key, err)
	}
	return hist, nil
}

// persist writes the JSONL files now or queues the write, depending on the
// sync strategy. The caller must hold b.mu.
func (b *Backend) persist(key, op string, hist historyRecord) error {
	write := func() error {
		if err := b.persistStateJSONL(); err != nil {
			return fmt.Errorf("persisting %s: %w", stateJSONL, err)
		}
		data, err := json.Marshal(hist)
		if err != nil {
			return fmt.Errorf("marshaling history entry: %w", err)
		}
		return appendJSONL(filepath.Join(b.dataDir, historyJSONL), data)
	}
	if b.syncStrategy == types.SyncImmediate {
		return write()
	}

	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	b.pendingWrites = append(b.pendingWrites, pendingWrite{key: key, operation: op, persist: write})
	return nil
}

// persistStateJSONL rewrites state.jsonl from the kv table.
func (b *Backend) persistStateJSONL() error {
	rows, err := b.db.Query("SELECT key, value, version, updated_at FROM kv ORDER BY key")
	if err != nil {
		return fmt.Errorf("reading kv for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec kvRecord
		var value string
		if err := rows.Scan(&rec.Key, &value, &rec.Version, &rec.UpdatedAt); err != nil {
			return fmt.Errorf("scanning kv for JSONL: %w", err)
		}
		rec.Value = json.RawMessage(value)
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", rec.Key, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.dataDir, stateJSONL), records)
}

// flushPendingWrites runs every queued write in order. Each queued state
// write rewrites the whole file, so only history appends depend on order.
// The caller must hold b.mu.
func (b *Backend) flushPendingWrites() error {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	for i, pw := range b.pendingWrites {
		if err := pw.persist(); err != nil {
			b.pendingWrites = b.pendingWrites[i:]
			return fmt.Errorf("flush %s %s: %w", pw.key, pw.operation, err)
		}
	}
	b.pendingWrites = nil
	return nil
}
