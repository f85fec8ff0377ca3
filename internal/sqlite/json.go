package sqlite

import "encoding/json"

// Data file names under the data directory.
const (
	stateJSONL   = "state.jsonl"
	historyJSONL = "state_history.jsonl"
	databaseFile = "save4dream.db"
)

// History operations.
const (
	opSet    = "set"
	opDelete = "delete"
)

// kvRecord is one line of state.jsonl.
type kvRecord struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	Version   int64           `json:"version"`
	UpdatedAt string          `json:"updated_at"`
}

// historyRecord is one line of state_history.jsonl.
type historyRecord struct {
	HistoryID string          `json:"history_id"`
	Key       string          `json:"key"`
	Version   int64           `json:"version"`
	Value     json.RawMessage `json:"value"`
	Operation string          `json:"operation"`
	CreatedAt string          `json:"created_at"`
}
