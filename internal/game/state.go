package game

import (
	"errors"
	"slices"

	"github.com/mesh-intelligence/save4dream/internal/content"
	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// Store keys. Each holds one JSON document.
const (
	KeyStats        = "save4dream_stats"
	KeyMissions     = "save4dream_missions"
	KeyDailyTasks   = "save4dream_daily_tasks"
	KeyBehavior     = "save4dream_user_behavior"
	KeyMilestones   = "save4dream_milestones"
	KeyAchievements = "save4dream_achievements"
	KeyScenarios    = "save4dream_scenarios"
	KeyGoals        = "save4dream_personal_goals"
	KeySelection    = "save4dream_goal_selection_progress"
	KeyJourney      = "save4dream_journey"
	KeySession      = "save4dream_session"
)

// Keys lists every key the engine writes.
var Keys = []string{
	KeyStats, KeyMissions, KeyDailyTasks, KeyBehavior, KeyMilestones, KeyAchievements,
	KeyScenarios, KeyGoals, KeySelection, KeyJourney, KeySession,
}

// InitialStats is the stats record of a new player.
var InitialStats = types.UserStats{
	Coins:   450,
	Level:   1,
	XP:      65,
	Savings: 820,
	Name:    "Player",
}

// SessionData is the transient part of the state: the lesson or scenario in
// progress and the static content rotation.
type SessionData struct {
	CurrentLesson     *types.Lesson      `json:"currentLesson,omitempty"`
	CurrentLessonID   string             `json:"currentLessonId,omitempty"`
	LastResult        types.LessonResult `json:"lastResult,omitempty"`
	CurrentScenarioID string             `json:"currentScenarioId,omitempty"`
	Rotation          content.Rotation   `json:"rotation"`
}

// State is everything the engine persists.
type State struct {
	Stats        types.UserStats         `json:"stats"`
	Missions     []types.Mission         `json:"missions"`
	DailyTasks   types.DailyTasks        `json:"dailyTasks"`
	Behavior     types.UserBehavior      `json:"userBehavior"`
	Milestones   []types.Milestone       `json:"milestones"`
	Achievements []types.Achievement     `json:"achievements"`
	Scenarios    []types.Scenario        `json:"scenarios"`
	Goals        types.GoalsState        `json:"personalGoals"`
	Selection    types.SelectionProgress `json:"goalSelection"`
	Journey      types.JourneyState      `json:"journey"`
	Session      SessionData             `json:"session"`
}

// Progress returns the counters that achievement rules and journey
// requirements evaluate.
func (s State) Progress() types.Progress {
	completed := 0
	for _, m := range s.Missions {
		if m.Completed() {
			completed++
		}
	}
	return types.NewProgress(s.Stats, s.Behavior, completed, s.DailyTasks.Count)
}

// clone returns a copy that shares no slices or pointers with s.
func (s State) clone() State {
	c := s
	c.Missions = slices.Clone(s.Missions)
	c.Behavior.Purchases = slices.Clone(s.Behavior.Purchases)
	c.Milestones = slices.Clone(s.Milestones)
	c.Achievements = slices.Clone(s.Achievements)
	c.Scenarios = slices.Clone(s.Scenarios)
	c.Goals.Goals = slices.Clone(s.Goals.Goals)
	c.Selection.SelectedNeeds = slices.Clone(s.Selection.SelectedNeeds)
	c.Selection.SelectedWants = slices.Clone(s.Selection.SelectedWants)
	c.Selection.SelectedDreams = slices.Clone(s.Selection.SelectedDreams)
	c.Journey.CompletedSteps = slices.Clone(s.Journey.CompletedSteps)
	if s.Session.CurrentLesson != nil {
		l := *s.Session.CurrentLesson
		l.Options = slices.Clone(l.Options)
		c.Session.CurrentLesson = &l
	}
	return c
}

var errMissingList = errors.New("list is missing")

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// mergeByKey returns defs in catalog order, each entry combined with the
// stored entry of the same key. Stored entries the catalog no longer has are
// dropped.
func mergeByKey[T any, K comparable](defs, stored []T, key func(T) K, combine func(def, stored T) T) []T {
	byKey := make(map[K]T, len(stored))
	for _, v := range stored {
		byKey[key(v)] = v
	}
	out := make([]T, len(defs))
	for i, def := range defs {
		if v, ok := byKey[key(def)]; ok {
			def = combine(def, v)
		}
		out[i] = def
	}
	return out
}
