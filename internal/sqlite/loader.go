package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// loadAllJSONL reads state.jsonl and state_history.jsonl into SQLite inside
// one transaction. Malformed lines, records missing a key and duplicate rows
// are skipped. Unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	state, err := readJSONL(filepath.Join(dataDir, stateJSONL))
	if err != nil {
		return err
	}
	if err := insertState(tx, state); err != nil {
		return fmt.Errorf("loading %s: %w", stateJSONL, err)
	}

	history, err := readJSONL(filepath.Join(dataDir, historyJSONL))
	if err != nil {
		return err
	}
	if err := insertHistory(tx, history); err != nil {
		return fmt.Errorf("loading %s: %w", historyJSONL, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

func insertState(tx *sql.Tx, records []json.RawMessage) error {
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO kv (key, value, version, updated_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing kv insert: %w", err)
	}
	defer stmt.Close()

	for _, raw := range records {
		var rec kvRecord
		if err := json.Unmarshal(raw, &rec); err != nil || rec.Key == "" || len(rec.Value) == 0 {
			continue
		}
		if rec.Version < 1 {
			rec.Version = 1
		}
		if _, err := stmt.Exec(rec.Key, string(rec.Value), rec.Version, rec.UpdatedAt); err != nil {
			return fmt.Errorf("inserting key %s: %w", rec.Key, err)
		}
	}
	return nil
}

func insertHistory(tx *sql.Tx, records []json.RawMessage) error {
	stmt, err := tx.Prepare("INSERT OR IGNORE INTO kv_history (history_id, key, version, value, operation, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing kv_history insert: %w", err)
	}
	defer stmt.Close()

	for _, raw := range records {
		var rec historyRecord
		if err := json.Unmarshal(raw, &rec); err != nil || rec.HistoryID == "" || rec.Key == "" {
			continue
		}
		value := string(rec.Value)
		if value == "" {
			value = "null"
		}
		if _, err := stmt.Exec(rec.HistoryID, rec.Key, rec.Version, value, rec.Operation, rec.CreatedAt); err != nil {
			return fmt.Errorf("inserting history %s: %w", rec.HistoryID, err)
		}
	}
	return nil
}
