package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL. kv holds the current value of every key; kv_history keeps
// every revision, including deletions.
const (
	createKV = `CREATE TABLE kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    version INTEGER NOT NULL,
    updated_at TEXT NOT NULL
);`

	createKVHistory = `CREATE TABLE kv_history (
    history_id TEXT PRIMARY KEY,
    key TEXT NOT NULL,
    version INTEGER NOT NULL,
    value TEXT NOT NULL,
    operation TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

const (
	idxKVHistoryKey     = `CREATE INDEX idx_kv_history_key ON kv_history(key);`
	idxKVHistoryVersion = `CREATE INDEX idx_kv_history_version ON kv_history(key, version);`
)

var schemaDDL = []string{
	createKV,
	createKVHistory,
}

var indexDDL = []string{
	idxKVHistoryKey,
	idxKVHistoryVersion,
}

// initSchema creates every table and index on a fresh database.
func initSchema(db *sql.DB) error {
	for _, stmt := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema: %w", err)
		}
	}
	return nil
}
