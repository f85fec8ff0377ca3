package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// Tabs a hint can be shown on or point to.
const (
	TabHome     = "home"
	TabSchool   = "school"
	TabEarn     = "earn"
	TabSave     = "save"
	TabShop     = "shop"
	TabAnalysis = "analysis"
)

// Tabs lists every tab in display order.
var Tabs = []string{TabHome, TabSchool, TabEarn, TabSave, TabShop, TabAnalysis}

// JourneyProgress is the completed/total count of journey steps.
type JourneyProgress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// AdvanceJourney completes every uncompleted step whose requirements p
// meets and refreshes the current stage and step index. It returns the new
// state and the steps completed by this call, in path order.
func AdvanceJourney(steps []types.JourneyStep, state types.JourneyState, p types.Progress) (types.JourneyState, []types.JourneyStep) {
	state.CompletedSteps = slices.Clone(state.CompletedSteps)
	if state.CompletedSteps == nil {
		state.CompletedSteps = []string{}
	}

	var done []types.JourneyStep
	for _, step := range steps {
		if state.IsCompleted(step.ID) || !step.Requirements.Met(p) {
			continue
		}
		if state.Complete(step) {
			done = append(done, step)
		}
	}

	state.CurrentStepIndex = len(steps)
	if len(steps) > 0 {
		state.CurrentStage = steps[len(steps)-1].Stage
	}
	for i, step := range steps {
		if !state.IsCompleted(step.ID) {
			state.CurrentStepIndex = i
			state.CurrentStage = step.Stage
			break
		}
	}
	return state, done
}

// CurrentStep returns the first uncompleted step, or nil when the whole
// path is done.
func CurrentStep(steps []types.JourneyStep, state types.JourneyState) *types.JourneyStep {
	for i := range steps {
		if !state.IsCompleted(steps[i].ID) {
			s := steps[i]
			return &s
		}
	}
	return nil
}

// NextAction describes what the player should do next.
func NextAction(steps []types.JourneyStep, state types.JourneyState) string {
	step := CurrentStep(steps, state)
	if step == nil {
		return "Journey complete. Keep learning, earning and saving."
	}
	return step.Description
}

// ProgressOf counts completed steps out of steps.
func ProgressOf(steps []types.JourneyStep, state types.JourneyState) JourneyProgress {
	p := JourneyProgress{Total: len(steps)}
	for _, s := range steps {
		if state.IsCompleted(s.ID) {
			p.Current++
		}
	}
	if p.Total > 0 {
		p.Percentage = (p.Current*100 + p.Total/2) / p.Total
	}
	return p
}

// Hint is a contextual suggestion shown on a tab.
type Hint struct {
	ID          string `json:"id"`
	Tab         string `json:"tab"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	ActionLabel string `json:"actionLabel"`
	TargetTab   string `json:"targetTab"`
	Priority    int    `json:"priority"`

	when func(State) bool
}

// Savings balance the save and analysis hints aim at.
const hintSavingsGoal = 1200

var hints = []Hint{
	{
		ID: "home_to_school", Tab: TabHome, Priority: 1, TargetTab: TabSchool,
		Title:       "Start the journey",
		Message:     "Take your first lesson to open everything up.",
		ActionLabel: "Go to the academy",
		when:        func(s State) bool { return s.Stats.KnowledgePoints == 0 },
	},
	{
		ID: "home_scenarios_unlock", Tab: TabHome, Priority: 2, TargetTab: TabHome,
		Title:       "A new scenario is available",
		Message:     "Two lessons done. Now practice real decisions.",
		ActionLabel: "Start a scenario",
		when: func(s State) bool {
			return s.Stats.KnowledgePoints >= 2 && !allScenariosCompleted(s.Scenarios)
		},
	},
	{
		ID: "school_to_earn", Tab: TabSchool, Priority: 1, TargetTab: TabEarn,
		Title:       "Ready to earn?",
		Message:     "Now that you know something, time to earn coins.",
		ActionLabel: "Go to missions",
		when: func(s State) bool {
			return s.Stats.KnowledgePoints >= 1 && pendingMissions(s.Missions) > 0
		},
	},
	{
		ID: "school_keep_learning", Tab: TabSchool, Priority: 2, TargetTab: TabSchool,
		Title:       "Keep learning",
		Message:     "Two more lessons and the scenarios open.",
		ActionLabel: "Start another lesson",
		when: func(s State) bool {
			return s.Stats.KnowledgePoints >= 1 && s.Stats.KnowledgePoints < 3
		},
	},
	{
		ID: "earn_to_save", Tab: TabEarn, Priority: 1, TargetTab: TabSave,
		Title:       "Start saving",
		Message:     "You have 50 coins or more. Deposit them to start saving for the bike.",
		ActionLabel: "Go to the bank",
		when: func(s State) bool {
			return s.Stats.Coins >= DepositStep && s.Stats.Savings == 0
		},
	},
	{
		ID: "earn_earn_more", Tab: TabEarn, Priority: 2, TargetTab: TabEarn,
		Title:       "Earn more",
		Message:     "Complete missions to earn more coins.",
		ActionLabel: "Get a new mission",
		when:        func(s State) bool { return s.Stats.Coins < DepositStep },
	},
	{
		ID: "save_to_shop", Tab: TabSave, Priority: 1, TargetTab: TabShop,
		Title:       "Time to buy something",
		Message:     "You have coins and savings. Treat yourself to a reward.",
		ActionLabel: "Go to the shop",
		when: func(s State) bool {
			return s.Stats.Coins >= 20 && len(s.Behavior.Purchases) == 0
		},
	},
	{
		ID: "save_keep_depositing", Tab: TabSave, Priority: 2, TargetTab: TabSave,
		Title:       "Keep saving",
		Message:     "Every 50 coins brings the bike closer.",
		ActionLabel: "Deposit more",
		when: func(s State) bool {
			return s.Stats.Coins >= DepositStep && s.Stats.Savings < hintSavingsGoal
		},
	},
	{
		ID: "shop_need_vs_want", Tab: TabShop, Priority: 1, TargetTab: TabAnalysis,
		Title:       "Think before you buy",
		Message:     "Need or want? Check the analysis to see your habits.",
		ActionLabel: "Go to the analysis",
		when:        func(s State) bool { return len(s.Behavior.Purchases) >= 1 },
	},
	{
		ID: "shop_earn_more", Tab: TabShop, Priority: 2, TargetTab: TabEarn,
		Title:       "Short on coins",
		Message:     "Need more coins? Complete missions.",
		ActionLabel: "Go to missions",
		when:        func(s State) bool { return s.Stats.Coins < 20 },
	},
	{
		ID: "analysis_to_school", Tab: TabAnalysis, Priority: 1, TargetTab: TabSchool,
		Title:       "Learn more",
		Message:     "Keep learning at the academy to become a money expert.",
		ActionLabel: "Go to the academy",
		when:        func(s State) bool { return s.Stats.KnowledgePoints < 10 },
	},
	{
		ID: "analysis_to_save", Tab: TabAnalysis, Priority: 2, TargetTab: TabSave,
		Title:       "Keep saving",
		Message:     "Head back to the bank and keep saving toward the goal.",
		ActionLabel: "Go to the bank",
		when:        func(s State) bool { return s.Stats.Savings < hintSavingsGoal },
	},
}

// ErrUnknownTab is returned for a tab name outside Tabs.
var ErrUnknownTab = errors.New("unknown tab")

// HintFor returns the highest-priority hint for tab whose condition holds
// in s. The boolean is false when no hint applies.
func HintFor(tab string, s State) (Hint, bool, error) {
	if !slices.Contains(Tabs, tab) {
		return Hint{}, false, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	var candidates []Hint
	for _, h := range hints {
		if h.Tab == tab {
			candidates = append(candidates, h)
		}
	}
	slices.SortStableFunc(candidates, func(a, b Hint) int { return a.Priority - b.Priority })
	for _, h := range candidates {
		if h.when(s) {
			return h, true, nil
		}
	}
	return Hint{}, false, nil
}

func allScenariosCompleted(list []types.Scenario) bool {
	for _, s := range list {
		if !s.Completed {
			return false
		}
	}
	return true
}

func pendingMissions(list []types.Mission) int {
	n := 0
	for _, m := range list {
		if !m.Completed() {
			n++
		}
	}
	return n
}

// JourneyView is the journey state with its derived fields.
type JourneyView struct {
	State      types.JourneyState `json:"state"`
	Current    *types.JourneyStep `json:"currentStep,omitempty"`
	NextAction string             `json:"nextAction"`
	Progress   JourneyProgress    `json:"progress"`
}

// Journey returns the player's journey.
func (s *Session) Journey() JourneyView {
	st := s.State()
	steps := s.catalog.JourneySteps()
	return JourneyView{
		State:      st.Journey,
		Current:    CurrentStep(steps, st.Journey),
		NextAction: NextAction(steps, st.Journey),
		Progress:   ProgressOf(steps, st.Journey),
	}
}

// Hint returns the hint for tab in the current state.
func (s *Session) Hint(tab string) (Hint, bool, error) {
	return HintFor(tab, s.State())
}
