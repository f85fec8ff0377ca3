package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONLTolerance(t *testing.T) {
	tests := []struct {
		name     string
		state    string
		history  string
		wantKeys []string
		wantHist int
	}{
		{
			name:     "unknown fields ignored",
			state:    `{"key":"save4dream_stats","value":{"coins":5},"version":2,"updated_at":"2026-01-01T00:00:00Z","checksum":"abc"}` + "\n",
			wantKeys: []string{"save4dream_stats"},
		},
		{
			name:     "records without key skipped",
			state:    `{"value":{"coins":5},"version":1}` + "\n" + `{"key":"b","value":true,"version":1}` + "\n",
			wantKeys: []string{"b"},
		},
		{
			name:     "records without value skipped",
			state:    `{"key":"a","version":1}` + "\n",
			wantKeys: []string{},
		},
		{
			name:     "duplicate history ids kept once",
			history:  `{"history_id":"h1","key":"a","version":1,"value":1,"operation":"set"}` + "\n" + `{"history_id":"h1","key":"a","version":1,"value":1,"operation":"set"}` + "\n",
			wantKeys: []string{},
			wantHist: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, stateJSONL), []byte(tt.state), 0o644))
			require.NoError(t, os.WriteFile(filepath.Join(dir, historyJSONL), []byte(tt.history), 0o644))

			b := attachBackend(t, dir, "")
			defer b.Detach()

			keys, err := b.Keys()
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, keys)

			var n int
			require.NoError(t, b.db.QueryRow("SELECT COUNT(*) FROM kv_history").Scan(&n))
			assert.Equal(t, tt.wantHist, n)
		})
	}
}

func TestLoadJSONLKeepsVersion(t *testing.T) {
	dir := t.TempDir()
	state := `{"key":"k","value":{"coins":5},"version":7,"updated_at":"2026-01-01T00:00:00Z"}` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateJSONL), []byte(state), 0o644))

	b := attachBackend(t, dir, "")
	defer b.Detach()

	require.NoError(t, b.Set("k", map[string]int{"coins": 6}))

	var version int64
	require.NoError(t, b.db.QueryRow("SELECT version FROM kv WHERE key = 'k'").Scan(&version))
	assert.Equal(t, int64(8), version)
}
