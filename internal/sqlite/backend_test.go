package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

type statsValue struct {
	Coins   int `json:"coins"`
	Savings int `json:"savings"`
}

func attachBackend(t *testing.T, dir, strategy string) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{
		Backend:      types.BackendSQLite,
		DataDir:      dir,
		SyncStrategy: strategy,
	}))
	return b
}

func TestBackend_Attach(t *testing.T) {
	dir := t.TempDir()
	b := attachBackend(t, dir, "")
	defer b.Detach()

	for _, name := range []string{databaseFile, stateJSONL, historyJSONL} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s to exist", name)
	}

	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir(), SyncStrategy: "batch"})
	assert.ErrorIs(t, err, types.ErrSyncStrategyUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b := attachBackend(t, t.TempDir(), "")

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach())

	var v statsValue
	assert.ErrorIs(t, b.Get("k", &v), types.ErrStoreDetached)
	assert.ErrorIs(t, b.Set("k", v), types.ErrStoreDetached)
	assert.ErrorIs(t, b.Delete("k"), types.ErrStoreDetached)
	_, err := b.Keys()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestBackend_CRUD(t *testing.T) {
	b := attachBackend(t, t.TempDir(), "")
	defer b.Detach()

	var got statsValue
	assert.ErrorIs(t, b.Get("save4dream_stats", &got), types.ErrNotFound)
	assert.ErrorIs(t, b.Set("", statsValue{}), types.ErrInvalidKey)
	assert.ErrorIs(t, b.Get("  ", &got), types.ErrInvalidKey)

	require.NoError(t, b.Set("save4dream_stats", statsValue{Coins: 450, Savings: 820}))
	require.NoError(t, b.Get("save4dream_stats", &got))
	assert.Equal(t, statsValue{Coins: 450, Savings: 820}, got)

	require.NoError(t, b.Set("save4dream_stats", statsValue{Coins: 400, Savings: 870}))
	require.NoError(t, b.Get("save4dream_stats", &got))
	assert.Equal(t, 400, got.Coins)

	require.NoError(t, b.Set("save4dream_missions", []string{"a"}))
	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"save4dream_missions", "save4dream_stats"}, keys)

	require.NoError(t, b.Delete("save4dream_missions"))
	assert.ErrorIs(t, b.Delete("save4dream_missions"), types.ErrNotFound)
	assert.ErrorIs(t, b.Get("save4dream_missions", &[]string{}), types.ErrNotFound)
}

func TestBackend_GetDecodeError(t *testing.T) {
	b := attachBackend(t, t.TempDir(), "")
	defer b.Detach()

	require.NoError(t, b.Set("save4dream_stats", "not an object"))
	var got statsValue
	assert.ErrorIs(t, b.Get("save4dream_stats", &got), types.ErrInvalidData)
}

func TestBackend_History(t *testing.T) {
	b := attachBackend(t, t.TempDir(), "")
	defer b.Detach()

	require.NoError(t, b.Set("k", statsValue{Coins: 1}))
	require.NoError(t, b.Set("k", statsValue{Coins: 2}))
	require.NoError(t, b.Delete("k"))

	revs, err := b.History("k")
	require.NoError(t, err)
	require.Len(t, revs, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{revs[0].Version, revs[1].Version, revs[2].Version})
	assert.Equal(t, opSet, revs[1].Operation)
	assert.Equal(t, opDelete, revs[2].Operation)
	assert.JSONEq(t, `{"coins":2,"savings":0}`, string(revs[1].Value))

	// A re-created key continues its version sequence from the history.
	require.NoError(t, b.Set("k", statsValue{Coins: 3}))
	revs, err = b.History("k")
	require.NoError(t, err)
	require.Len(t, revs, 4)
	assert.Equal(t, int64(4), revs[3].Version)
}

func TestBackend_ReattachRestoresState(t *testing.T) {
	dir := t.TempDir()
	b := attachBackend(t, dir, "")
	require.NoError(t, b.Set("save4dream_stats", statsValue{Coins: 50, Savings: 100}))
	require.NoError(t, b.Set("save4dream_name", "Noa"))
	require.NoError(t, b.Detach())

	b2 := attachBackend(t, dir, "")
	defer b2.Detach()

	var got statsValue
	require.NoError(t, b2.Get("save4dream_stats", &got))
	assert.Equal(t, statsValue{Coins: 50, Savings: 100}, got)

	var name string
	require.NoError(t, b2.Get("save4dream_name", &name))
	assert.Equal(t, "Noa", name)

	revs, err := b2.History("save4dream_stats")
	require.NoError(t, err)
	assert.Len(t, revs, 1)
}

func TestSyncStrategy_ImmediateDefault(t *testing.T) {
	dir := t.TempDir()
	b := attachBackend(t, dir, "")
	defer b.Detach()

	assert.Equal(t, types.SyncImmediate, b.syncStrategy)
	require.NoError(t, b.Set("k", statsValue{Coins: 1}))

	data, err := os.ReadFile(filepath.Join(dir, stateJSONL))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestSyncStrategy_OnCloseDefersWrites(t *testing.T) {
	dir := t.TempDir()
	b := attachBackend(t, dir, types.SyncOnClose)

	for i := range 3 {
		require.NoError(t, b.Set("k", statsValue{Coins: i}))
	}

	data, err := os.ReadFile(filepath.Join(dir, stateJSONL))
	require.NoError(t, err)
	assert.Empty(t, data, "state.jsonl should be untouched before Detach")

	b.pendingMu.Lock()
	pending := len(b.pendingWrites)
	b.pendingMu.Unlock()
	assert.Equal(t, 3, pending)

	require.NoError(t, b.Detach())

	records, err := readJSONL(filepath.Join(dir, stateJSONL))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	history, err := readJSONL(filepath.Join(dir, historyJSONL))
	require.NoError(t, err)
	assert.Len(t, history, 3)
}
