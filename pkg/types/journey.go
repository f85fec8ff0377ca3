package types

// JourneyStage is the broad phase a journey step belongs to.
type JourneyStage string

// Journey stages.
const (
	StageOnboarding JourneyStage = "onboarding"
	StageLearning   JourneyStage = "learning"
	StageEarning    JourneyStage = "earning"
	StageSaving     JourneyStage = "saving"
	StageSpending   JourneyStage = "spending"
	StageMastering  JourneyStage = "mastering"
)

// Valid reports whether s is a known stage.
func (s JourneyStage) Valid() bool {
	switch s {
	case StageOnboarding, StageLearning, StageEarning, StageSaving, StageSpending, StageMastering:
		return true
	}
	return false
}

// Requirements gate a journey step. A zero field is unconstrained.
type Requirements struct {
	KnowledgePoints   int `json:"knowledgePoints,omitempty" yaml:"knowledge_points,omitempty"`
	CompletedLessons  int `json:"completedLessons,omitempty" yaml:"completed_lessons,omitempty"`
	CompletedMissions int `json:"completedMissions,omitempty" yaml:"completed_missions,omitempty"`
	Coins             int `json:"coins,omitempty" yaml:"coins,omitempty"`
	Savings           int `json:"savings,omitempty" yaml:"savings,omitempty"`
	Purchases         int `json:"purchases,omitempty" yaml:"purchases,omitempty"`
}

// Met reports whether p satisfies every constrained field. Completed
// lessons are counted by knowledge points.
func (r Requirements) Met(p Progress) bool {
	kp := p.Stats.KnowledgePoints
	checks := []struct{ have, want int }{
		{kp, r.KnowledgePoints},
		{kp, r.CompletedLessons},
		{p.MissionsCompleted, r.CompletedMissions},
		{p.Stats.Coins, r.Coins},
		{p.Stats.Savings, r.Savings},
		{p.Purchases, r.Purchases},
	}
	for _, c := range checks {
		if c.want > 0 && c.have < c.want {
			return false
		}
	}
	return true
}

// StepReward is announced when a journey step completes.
type StepReward struct {
	Coins   int    `json:"coins,omitempty" yaml:"coins,omitempty"`
	XP      int    `json:"xp,omitempty" yaml:"xp,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// JourneyStep is one entry of the guided path.
type JourneyStep struct {
	ID           string       `json:"id" yaml:"id"`
	Stage        JourneyStage `json:"stage" yaml:"stage"`
	Title        string       `json:"title" yaml:"title"`
	Description  string       `json:"description" yaml:"description"`
	TargetTab    string       `json:"targetTab" yaml:"target_tab"`
	Action       string       `json:"action" yaml:"action"`
	Icon         string       `json:"icon" yaml:"icon"`
	Requirements Requirements `json:"requiredProgress" yaml:"requirements"`
	Reward       *StepReward  `json:"reward,omitempty" yaml:"reward,omitempty"`
}

// JourneyState records which steps the player has completed.
type JourneyState struct {
	CurrentStage          JourneyStage `json:"currentStage"`
	CurrentStepIndex      int          `json:"currentStepIndex"`
	CompletedSteps        []string     `json:"completedSteps"`
	ShowJourneyGuide      bool         `json:"showJourneyGuide"`
	LastCompletedAction   string       `json:"lastCompletedAction,omitempty"`
	TotalActionsCompleted int          `json:"totalActionsCompleted"`
}

// DefaultJourneyState returns the state of a new player.
func DefaultJourneyState() JourneyState {
	return JourneyState{
		CurrentStage:     StageOnboarding,
		CompletedSteps:   []string{},
		ShowJourneyGuide: true,
	}
}

// IsCompleted reports whether step id has been completed.
func (s JourneyState) IsCompleted(id string) bool {
	for _, c := range s.CompletedSteps {
		if c == id {
			return true
		}
	}
	return false
}

// Complete records step as completed. It returns false if it already was.
func (s *JourneyState) Complete(step JourneyStep) bool {
	if s.IsCompleted(step.ID) {
		return false
	}
	s.CompletedSteps = append(s.CompletedSteps, step.ID)
	s.LastCompletedAction = step.Action
	s.TotalActionsCompleted++
	return true
}
