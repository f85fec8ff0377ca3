package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	var v int
	assert.ErrorIs(t, s.Get("k", &v), types.ErrStoreDetached)

	require.NoError(t, s.Attach(types.Config{Backend: types.BackendMemory}))
	assert.ErrorIs(t, s.Attach(types.Config{Backend: types.BackendMemory}), types.ErrAlreadyAttached)

	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach())
	_, err := s.Keys()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestStoreCRUD(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendMemory}))
	defer s.Detach()

	missions := []types.Mission{{ID: "1", Reward: 50, Status: types.MissionPending}}
	require.NoError(t, s.Set("save4dream_missions", missions))

	// Mutating the caller's slice does not affect the stored copy.
	missions[0].Status = types.MissionCompleted

	var got []types.Mission
	require.NoError(t, s.Get("save4dream_missions", &got))
	assert.Equal(t, types.MissionPending, got[0].Status)

	assert.ErrorIs(t, s.Set("", 1), types.ErrInvalidKey)
	assert.ErrorIs(t, s.Get("missing", &got), types.ErrNotFound)

	var wrong int
	assert.ErrorIs(t, s.Get("save4dream_missions", &wrong), types.ErrInvalidData)

	require.NoError(t, s.Set("a", 1))
	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "save4dream_missions"}, keys)

	require.NoError(t, s.Delete("a"))
	assert.ErrorIs(t, s.Delete("a"), types.ErrNotFound)
}
