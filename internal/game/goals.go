package game

import (
	"fmt"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// ToggleGoal selects or deselects catalog goal goalID in the selection
// wizard. It returns true when the goal ends up selected.
func (s *Session) ToggleGoal(goalID string) (bool, error) {
	g, err := s.catalog.Goal(goalID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	selected, err := s.state.Selection.Toggle(g.ID, g.Category)
	if err != nil {
		return false, fmt.Errorf("goal %q: %w", goalID, err)
	}
	s.mark(KeySelection)
	s.flush()
	return selected, nil
}

// NextStep advances the selection wizard and returns its new state.
func (s *Session) NextStep() types.SelectionProgress {
	return s.moveStep((*types.SelectionProgress).Next)
}

// PrevStep moves the selection wizard back and returns its new state.
func (s *Session) PrevStep() types.SelectionProgress {
	return s.moveStep((*types.SelectionProgress).Prev)
}

func (s *Session) moveStep(move func(*types.SelectionProgress)) types.SelectionProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	move(&s.state.Selection)
	s.mark(KeySelection)
	s.flush()
	return s.state.clone().Selection
}

// CanProceed reports whether the wizard's current step has enough picks.
func (s *Session) CanProceed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Selection.CanProceed()
}

// CompleteSelection turns the selected catalog goals into personal goals
// and makes the first dream active. Every category must meet its minimum;
// otherwise it returns types.ErrSelectionIncomplete.
func (s *Session) CompleteSelection() (types.GoalsState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.state.Selection
	sel.Step = types.StepConfirm
	if !sel.CanProceed() {
		return types.GoalsState{}, types.ErrSelectionIncomplete
	}

	now := s.clock()
	goals := make([]types.PersonalGoal, 0, len(sel.Selected()))
	for _, id := range sel.Selected() {
		g, err := s.catalog.Goal(id)
		if err != nil {
			return types.GoalsState{}, err
		}
		goals = append(goals, types.NewPersonalGoal(newID(), g, now))
	}

	gs := types.GoalsState{HasSelectedGoals: true, Goals: goals}
	for _, g := range goals {
		if g.Category == types.GoalDream {
			gs.ActiveGoalID = g.ID
			break
		}
	}
	gs.Recompute()

	s.state.Goals = gs
	s.state.Selection.Step = types.StepComplete
	s.mark(KeyGoals, KeySelection)
	s.flush()
	s.logger.Info("goals selected")
	return s.state.clone().Goals, nil
}

// AddSavingsToGoal credits amount to personal goal id without touching
// coins or savings. Completed goals are left alone.
func (s *Session) AddSavingsToGoal(id string, amount int) (Outcome, error) {
	if amount <= 0 {
		return Outcome{}, types.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.state.Goals.Find(id)
	if g == nil {
		return Outcome{}, fmt.Errorf("goal %q: %w", id, types.ErrNotFound)
	}
	if g.Completed {
		return skipped(ReasonGoalCompleted, s.state.Stats), nil
	}

	out := Outcome{Applied: true}
	if g.AddSavings(amount, s.clock()) {
		done := *g
		out.GoalCompleted = &done
	}
	s.state.Goals.Recompute()
	s.mark(KeyGoals)
	return s.finish(out), nil
}

// SetActiveGoal makes personal goal id the one deposits credit.
func (s *Session) SetActiveGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Goals.Find(id) == nil {
		return fmt.Errorf("goal %q: %w", id, types.ErrNotFound)
	}
	s.state.Goals.ActiveGoalID = id
	s.mark(KeyGoals)
	s.flush()
	return nil
}

// ActiveGoal returns a copy of the active goal, or nil when there are no
// goals.
func (s *Session) ActiveGoal() *types.PersonalGoal {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.state.Goals.Active()
	if g == nil {
		return nil
	}
	c := *g
	return &c
}

// ResetGoals discards every personal goal and restarts the wizard.
func (s *Session) ResetGoals() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Goals = types.GoalsState{Goals: []types.PersonalGoal{}}
	s.state.Selection = types.DefaultSelectionProgress()
	s.mark(KeyGoals, KeySelection)
	s.flush()
}
