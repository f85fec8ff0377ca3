package types

import (
	"fmt"
	"time"
)

// GoalCategory classifies catalog goals.
type GoalCategory string

// Goal categories.
const (
	GoalNeed  GoalCategory = "need"
	GoalWant  GoalCategory = "want"
	GoalDream GoalCategory = "dream"
)

// Valid reports whether c is a recognized category.
func (c GoalCategory) Valid() bool {
	switch c {
	case GoalNeed, GoalWant, GoalDream:
		return true
	}
	return false
}

// CatalogGoal is an item the player may pick as a personal goal.
type CatalogGoal struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Icon        string       `json:"icon" yaml:"icon"`
	Category    GoalCategory `json:"category" yaml:"category"`
	Cost        int          `json:"cost" yaml:"cost"`
	Description string       `json:"description" yaml:"description"`
	AgeGroup    string       `json:"ageGroup" yaml:"age_group"`
	Trending    bool         `json:"trending,omitempty" yaml:"trending,omitempty"`
}

// PersonalGoal is a goal the player selected, with its savings progress.
// CurrentSavings only grows, and Completed never flips back to false.
type PersonalGoal struct {
	ID             string       `json:"id"`
	GoalID         string       `json:"goalId"`
	Name           string       `json:"name"`
	Icon           string       `json:"icon"`
	Category       GoalCategory `json:"category"`
	TargetCost     int          `json:"targetCost"`
	CurrentSavings int          `json:"currentSavings"`
	Completed      bool         `json:"completed"`
	CompletedAt    *time.Time   `json:"completedAt,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// NewPersonalGoal creates an empty goal from a catalog entry.
func NewPersonalGoal(id string, g CatalogGoal, at time.Time) PersonalGoal {
	return PersonalGoal{
		ID:         id,
		GoalID:     g.ID,
		Name:       g.Name,
		Icon:       g.Icon,
		Category:   g.Category,
		TargetCost: g.Cost,
		CreatedAt:  at,
	}
}

// AddSavings credits amount to the goal. Completed goals and non-positive
// amounts are ignored. It returns true when this call completed the goal.
func (g *PersonalGoal) AddSavings(amount int, at time.Time) bool {
	if g.Completed || amount <= 0 {
		return false
	}
	g.CurrentSavings += amount
	if g.CurrentSavings >= g.TargetCost {
		g.Completed = true
		g.CompletedAt = &at
		return true
	}
	return false
}

// Percent returns progress toward the target, capped at 100.
func (g PersonalGoal) Percent() int {
	if g.TargetCost <= 0 {
		return 100
	}
	return min(100, g.CurrentSavings*100/g.TargetCost)
}

// GoalsState is the player's set of personal goals.
type GoalsState struct {
	HasSelectedGoals bool           `json:"hasSelectedGoals"`
	Goals            []PersonalGoal `json:"goals"`
	ActiveGoalID     string         `json:"activeGoalId,omitempty"`
	TotalSaved       int            `json:"totalSaved"`
	TotalCompleted   int            `json:"totalCompleted"`
}

// Recompute refreshes TotalSaved and TotalCompleted from Goals.
func (s *GoalsState) Recompute() {
	s.TotalSaved = 0
	s.TotalCompleted = 0
	for _, g := range s.Goals {
		s.TotalSaved += g.CurrentSavings
		if g.Completed {
			s.TotalCompleted++
		}
	}
}

// Find returns a pointer into Goals for id, or nil.
func (s *GoalsState) Find(id string) *PersonalGoal {
	for i := range s.Goals {
		if s.Goals[i].ID == id {
			return &s.Goals[i]
		}
	}
	return nil
}

// Active returns the goal the player is working toward: the explicitly
// active goal, else the first dream, else the first goal. Nil when there
// are no goals.
func (s *GoalsState) Active() *PersonalGoal {
	if s.ActiveGoalID != "" {
		return s.Find(s.ActiveGoalID)
	}
	for i := range s.Goals {
		if s.Goals[i].Category == GoalDream {
			return &s.Goals[i]
		}
	}
	if len(s.Goals) > 0 {
		return &s.Goals[0]
	}
	return nil
}

// SelectionStep is a step of the goal selection wizard.
type SelectionStep string

// Wizard steps, in order.
const (
	StepWelcome      SelectionStep = "welcome"
	StepSelectNeeds  SelectionStep = "select_needs"
	StepSelectWants  SelectionStep = "select_wants"
	StepSelectDreams SelectionStep = "select_dreams"
	StepConfirm      SelectionStep = "confirm"
	StepComplete     SelectionStep = "complete"
)

var selectionSteps = []SelectionStep{
	StepWelcome, StepSelectNeeds, StepSelectWants, StepSelectDreams, StepConfirm, StepComplete,
}

// MinRequired holds the minimum number of picks per category.
type MinRequired struct {
	Needs  int `json:"needs"`
	Wants  int `json:"wants"`
	Dreams int `json:"dreams"`
}

// SelectionProgress is the persisted state of the selection wizard.
type SelectionProgress struct {
	Step           SelectionStep `json:"step"`
	SelectedNeeds  []string      `json:"selectedNeeds"`
	SelectedWants  []string      `json:"selectedWants"`
	SelectedDreams []string      `json:"selectedDreams"`
	MinRequired    MinRequired   `json:"minRequired"`
}

// DefaultSelectionProgress returns a wizard at the welcome step.
func DefaultSelectionProgress() SelectionProgress {
	return SelectionProgress{
		Step:           StepWelcome,
		SelectedNeeds:  []string{},
		SelectedWants:  []string{},
		SelectedDreams: []string{},
		MinRequired:    MinRequired{Needs: 2, Wants: 2, Dreams: 1},
	}
}

// Toggle selects goalID under category c, or deselects it if already
// selected. It returns true when the goal ends up selected.
func (p *SelectionProgress) Toggle(goalID string, c GoalCategory) (bool, error) {
	var list *[]string
	switch c {
	case GoalNeed:
		list = &p.SelectedNeeds
	case GoalWant:
		list = &p.SelectedWants
	case GoalDream:
		list = &p.SelectedDreams
	default:
		return false, ErrInvalidCategory
	}
	for i, id := range *list {
		if id == goalID {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return false, nil
		}
	}
	*list = append(*list, goalID)
	return true, nil
}

// Next advances one step; it stays put on the last step.
func (p *SelectionProgress) Next() {
	if i := p.stepIndex(); i >= 0 && i < len(selectionSteps)-1 {
		p.Step = selectionSteps[i+1]
	}
}

// Prev goes back one step; it stays put on the first step.
func (p *SelectionProgress) Prev() {
	if i := p.stepIndex(); i > 0 {
		p.Step = selectionSteps[i-1]
	}
}

// CanProceed reports whether the current step's minimum is met.
func (p SelectionProgress) CanProceed() bool {
	needs := len(p.SelectedNeeds) >= p.MinRequired.Needs
	wants := len(p.SelectedWants) >= p.MinRequired.Wants
	dreams := len(p.SelectedDreams) >= p.MinRequired.Dreams
	switch p.Step {
	case StepSelectNeeds:
		return needs
	case StepSelectWants:
		return wants
	case StepSelectDreams:
		return dreams
	case StepConfirm:
		return needs && wants && dreams
	default:
		return true
	}
}

// Selected returns every selected goal ID: needs, then wants, then dreams.
func (p SelectionProgress) Selected() []string {
	out := make([]string, 0, len(p.SelectedNeeds)+len(p.SelectedWants)+len(p.SelectedDreams))
	out = append(out, p.SelectedNeeds...)
	out = append(out, p.SelectedWants...)
	return append(out, p.SelectedDreams...)
}

// Validate reports ErrInvalidSelection when the step is unknown or a
// category minimum is not positive.
func (p SelectionProgress) Validate() error {
	if p.stepIndex() < 0 {
		return fmt.Errorf("step %q: %w", p.Step, ErrInvalidSelection)
	}
	m := p.MinRequired
	if m.Needs < 1 || m.Wants < 1 || m.Dreams < 1 {
		return fmt.Errorf("minimums %+v: %w", m, ErrInvalidSelection)
	}
	return nil
}

func (p SelectionProgress) stepIndex() int {
	for i, s := range selectionSteps {
		if s == p.Step {
			return i
		}
	}
	return -1
}
