package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

func selectGoals(t *testing.T, s *Session, ids ...string) {
	t.Helper()
	for _, id := range ids {
		selected, err := s.ToggleGoal(id)
		require.NoError(t, err)
		require.True(t, selected, "goal %s", id)
	}
}

func findByGoalID(gs types.GoalsState, goalID string) types.PersonalGoal {
	for _, g := range gs.Goals {
		if g.GoalID == goalID {
			return g
		}
	}
	return types.PersonalGoal{}
}

func TestSessionSelectionWizard(t *testing.T) {
	s, _ := newTestSession(t, sessionOpts{})

	assert.True(t, s.CanProceed())
	assert.Equal(t, types.StepSelectNeeds, s.NextStep().Step)
	assert.False(t, s.CanProceed())
	assert.Equal(t, types.StepWelcome, s.PrevStep().Step)
	assert.Equal(t, types.StepWelcome, s.PrevStep().Step)

	selected, err := s.ToggleGoal("school_backpack_2026")
	require.NoError(t, err)
	assert.True(t, selected)
	selected, err = s.ToggleGoal("school_backpack_2026")
	require.NoError(t, err)
	assert.False(t, selected)

	_, err = s.ToggleGoal("yacht")
	assert.ErrorIs(t, err, types.ErrNotFound)

	selectGoals(t, s, "school_backpack_2026", "winter_jacket")
	s.NextStep()
	assert.True(t, s.CanProceed())

	_, err = s.CompleteSelection()
	assert.ErrorIs(t, err, types.ErrSelectionIncomplete)
}

func TestSessionCompleteSelection(t *testing.T) {
	s, clock := newTestSession(t, sessionOpts{})
	selectGoals(t, s, "school_backpack_2026", "winter_jacket", "gaming_mouse", "hoodie_brand", "electric_bike")

	gs, err := s.CompleteSelection()
	require.NoError(t, err)
	assert.True(t, gs.HasSelectedGoals)
	require.Len(t, gs.Goals, 5)
	assert.Equal(t, "school_backpack_2026", gs.Goals[0].GoalID)

	bike := findByGoalID(gs, "electric_bike")
	assert.Equal(t, bike.ID, gs.ActiveGoalID)
	assert.Equal(t, 3000, bike.TargetCost)
	assert.Equal(t, clock.Now(), bike.CreatedAt)
	assert.Equal(t, types.StepComplete, s.State().Selection.Step)

	active := s.ActiveGoal()
	require.NotNil(t, active)
	assert.Equal(t, "electric_bike", active.GoalID)
}

func TestSessionGoalSavings(t *testing.T) {
	s, _ := newTestSession(t, sessionOpts{})
	selectGoals(t, s, "school_backpack_2026", "winter_jacket", "gaming_mouse", "hoodie_brand", "electric_bike")
	gs, err := s.CompleteSelection()
	require.NoError(t, err)
	backpack := findByGoalID(gs, "school_backpack_2026")

	out := s.Deposit()
	require.True(t, out.Applied)
	assert.Equal(t, 50, s.ActiveGoal().CurrentSavings)

	out, err = s.AddSavingsToGoal(backpack.ID, 200)
	require.NoError(t, err)
	require.True(t, out.Applied)
	require.NotNil(t, out.GoalCompleted)
	assert.Equal(t, backpack.ID, out.GoalCompleted.ID)

	goals := s.State().Goals
	assert.Equal(t, 250, goals.TotalSaved)
	assert.Equal(t, 1, goals.TotalCompleted)

	out, err = s.AddSavingsToGoal(backpack.ID, 50)
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.Equal(t, ReasonGoalCompleted, out.Reason)

	_, err = s.AddSavingsToGoal(backpack.ID, 0)
	assert.ErrorIs(t, err, types.ErrInvalidAmount)
	_, err = s.AddSavingsToGoal("missing", 50)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// A completed active goal is not credited by deposits.
	require.NoError(t, s.SetActiveGoal(backpack.ID))
	require.True(t, s.Deposit().Applied)
	assert.Equal(t, 200, s.ActiveGoal().CurrentSavings)

	assert.ErrorIs(t, s.SetActiveGoal("missing"), types.ErrNotFound)

	s.ResetGoals()
	assert.Nil(t, s.ActiveGoal())
	assert.Equal(t, types.StepWelcome, s.State().Selection.Step)
}
