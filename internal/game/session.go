// Package game is the progression engine. A Session owns the player's
// state, applies actions to it under a mutex, runs the achievement,
// milestone and journey scans after each action, and writes what changed
// through a types.Store.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/save4dream/internal/catalog"
	"github.com/mesh-intelligence/save4dream/internal/content"
	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// DepositStep is the amount moved by one deposit or withdrawal.
const DepositStep = 50

// Session errors.
var (
	ErrNoActiveLesson   = errors.New("no lesson in progress")
	ErrNoActiveScenario = errors.New("no scenario in progress")
	ErrLessonLocked     = errors.New("lesson is locked")
	ErrNoScenarios      = errors.New("every scenario is completed")
	ErrMissingStore     = errors.New("session requires a store")
	ErrMissingCatalog   = errors.New("session requires a catalog")
)

// Reasons an action was not applied.
const (
	ReasonInsufficientCoins   = "not enough coins"
	ReasonInsufficientSavings = "not enough savings"
	ReasonMissionCompleted    = "mission already completed"
	ReasonDailyLimit          = "daily mission limit reached"
	ReasonGoalCompleted       = "goal already completed"
)

// Options configures a Session. Store and Catalog are required.
type Options struct {
	Store   types.Store
	Catalog *catalog.Catalog

	// Content serves tips, missions and lessons. Nil serves the
	// catalog's static fallback content only.
	Content *content.Provider

	// Logger defaults to zap.NewNop.
	Logger *zap.Logger

	// Clock defaults to time.Now.
	Clock func() time.Time

	// Rand picks random scenarios. Defaults to a time-seeded source.
	Rand *rand.Rand

	// InitialStats seeds new players. Zero means the package InitialStats.
	InitialStats types.UserStats
}

// Outcome reports the effect of an action. Applied is false, with a
// Reason, when a precondition such as sufficient funds did not hold; the
// state is then unchanged.
type Outcome struct {
	Applied       bool                `json:"applied"`
	Reason        string              `json:"reason,omitempty"`
	LevelsGained  int                 `json:"levelsGained,omitempty"`
	Result        types.LessonResult  `json:"result,omitempty"`
	Feedback      string              `json:"feedback,omitempty"`
	Mission       *types.Mission      `json:"mission,omitempty"`
	Generated     bool                `json:"generated,omitempty"`
	Achievement   *types.Achievement  `json:"achievement,omitempty"`
	Milestone     *types.Milestone    `json:"milestone,omitempty"`
	GoalCompleted *types.PersonalGoal `json:"goalCompleted,omitempty"`
	JourneySteps  []types.JourneyStep `json:"journeySteps,omitempty"`
	Stats         types.UserStats     `json:"stats"`
}

func skipped(reason string, stats types.UserStats) Outcome {
	return Outcome{Reason: reason, Stats: stats}
}

// Session is a player's game. All methods are safe for concurrent use and
// are applied one at a time.
type Session struct {
	mu      sync.Mutex
	store   types.Store
	catalog *catalog.Catalog
	content *content.Provider
	logger  *zap.Logger
	clock   func() time.Time
	rand    *rand.Rand
	initial types.UserStats

	state State
	dirty map[string]bool
}

// NewSession creates a Session holding the default state. Call Load to read
// the persisted state.
func NewSession(opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, ErrMissingStore
	}
	if opts.Catalog == nil {
		return nil, ErrMissingCatalog
	}
	s := &Session{
		store:   opts.Store,
		catalog: opts.Catalog,
		content: opts.Content,
		logger:  opts.Logger,
		clock:   opts.Clock,
		rand:    opts.Rand,
		initial: opts.InitialStats,
		dirty:   make(map[string]bool),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.rand == nil {
		seed := uint64(time.Now().UnixNano())
		s.rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if s.content == nil {
		s.content = content.NewProvider(nil, content.NewStatic(opts.Catalog.Fallback()), s.logger)
	}
	if s.initial == (types.UserStats{}) {
		s.initial = InitialStats
	}
	if err := s.initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial stats: %w", err)
	}
	s.state = s.defaults()
	return s, nil
}

func (s *Session) defaults() State {
	return State{
		Stats:        s.initial,
		Missions:     s.catalog.InitialMissions(),
		DailyTasks:   types.DailyTasks{Date: s.today()},
		Behavior:     types.UserBehavior{Purchases: []types.Purchase{}},
		Milestones:   s.catalog.Milestones(),
		Achievements: s.catalog.Achievements(),
		Scenarios:    s.catalog.Scenarios(),
		Goals:        types.GoalsState{Goals: []types.PersonalGoal{}},
		Selection:    types.DefaultSelectionProgress(),
		Journey:      types.DefaultJourneyState(),
	}
}

func (s *Session) today() string {
	return s.clock().Format(time.DateOnly)
}

// Load reads every key from the store. A key that is missing, corrupt or
// unreadable falls back to its default; the failure is logged, not
// returned. Load then runs the scans so that state written by older
// versions catches up.
func (s *Session) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.defaults()
	st := State{
		Stats:        read(s, KeyStats, d.Stats),
		Missions:     read(s, KeyMissions, d.Missions),
		DailyTasks:   read(s, KeyDailyTasks, d.DailyTasks),
		Behavior:     read(s, KeyBehavior, d.Behavior),
		Milestones:   read(s, KeyMilestones, d.Milestones),
		Achievements: read(s, KeyAchievements, d.Achievements),
		Scenarios:    read(s, KeyScenarios, d.Scenarios),
		Goals:        read(s, KeyGoals, d.Goals),
		Selection:    read(s, KeySelection, d.Selection),
		Journey:      read(s, KeyJourney, d.Journey),
		Session:      read(s, KeySession, d.Session),
	}
	s.repair(&st, d)
	st.DailyTasks = st.DailyTasks.ForDay(s.today())
	s.state = st

	var out Outcome
	s.scan(&out)
	s.flush()
}

// repair replaces stored documents that decode but break an invariant with
// their defaults, and folds catalog entries missing from stored lists back in.
func (s *Session) repair(st *State, d State) {
	invalid := func(key string, err error) {
		s.logger.Warn("stored state is invalid, using default", zap.String("key", key), zap.Error(err))
	}

	if err := st.Stats.Validate(); err != nil {
		s.logger.Warn("stored stats are invalid, using defaults", zap.Error(err))
		st.Stats = d.Stats
	}
	if st.Missions == nil {
		invalid(KeyMissions, errMissingList)
		st.Missions = d.Missions
	}
	if err := st.Selection.Validate(); err != nil {
		invalid(KeySelection, err)
		st.Selection = d.Selection
	}
	st.Selection.SelectedNeeds = nonNil(st.Selection.SelectedNeeds)
	st.Selection.SelectedWants = nonNil(st.Selection.SelectedWants)
	st.Selection.SelectedDreams = nonNil(st.Selection.SelectedDreams)

	if st.Journey.CurrentStepIndex < 0 || !st.Journey.CurrentStage.Valid() {
		invalid(KeyJourney, types.ErrInvalidState)
		st.Journey = d.Journey
	}
	st.Journey.CompletedSteps = nonNil(st.Journey.CompletedSteps)
	st.Behavior.Purchases = nonNil(st.Behavior.Purchases)
	st.Goals.Goals = nonNil(st.Goals.Goals)

	st.Achievements = mergeByKey(d.Achievements, st.Achievements, func(a types.Achievement) string { return a.ID },
		func(def, stored types.Achievement) types.Achievement {
			def.Status, def.UnlockedAt = stored.Status, stored.UnlockedAt
			return def
		})
	st.Milestones = mergeByKey(d.Milestones, st.Milestones, func(m types.Milestone) int { return m.Percentage },
		func(def, stored types.Milestone) types.Milestone {
			def.Status, def.AchievedAt = stored.Status, stored.AchievedAt
			return def
		})
	st.Scenarios = mergeByKey(d.Scenarios, st.Scenarios, func(sc types.Scenario) string { return sc.ID },
		func(def, stored types.Scenario) types.Scenario {
			def.Completed, def.CompletedAt = stored.Completed, stored.CompletedAt
			return def
		})
}

// read decodes key, returning def when the key is missing or unreadable.
func read[T any](s *Session, key string, def T) T {
	var v T
	if err := s.store.Get(key, &v); err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			s.logger.Warn("reading state failed, using default", zap.String("key", key), zap.Error(err))
		}
		return def
	}
	return v
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Reset deletes every stored key and returns to the default state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range Keys {
		if err := s.store.Delete(key); err != nil && !errors.Is(err, types.ErrNotFound) {
			s.logger.Warn("deleting state failed", zap.String("key", key), zap.Error(err))
		}
	}
	s.state = s.defaults()
	clear(s.dirty)
	s.logger.Info("game reset")
}

// Save writes every key, whether or not it changed.
func (s *Session) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mark(Keys...)
	s.flush()
}

// SetName renames the player.
func (s *Session) SetName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.Stats.SetName(name); err != nil {
		return err
	}
	s.mark(KeyStats)
	s.flush()
	return nil
}

// Deposit moves DepositStep coins into savings and credits the active
// personal goal.
func (s *Session) Deposit() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.state
	if st.Stats.Coins < DepositStep {
		return skipped(ReasonInsufficientCoins, st.Stats)
	}
	st.Stats.RemoveCoins(DepositStep)
	st.Stats.AddSavings(DepositStep)
	st.Behavior.SavingsDeposits++
	s.mark(KeyStats, KeyBehavior)

	out := Outcome{Applied: true}
	if g := st.Goals.Active(); g != nil && !g.Completed {
		if g.AddSavings(DepositStep, s.clock()) {
			done := *g
			out.GoalCompleted = &done
		}
		st.Goals.Recompute()
		s.mark(KeyGoals)
	}
	return s.finish(out)
}

// Withdraw moves DepositStep savings back into coins.
func (s *Session) Withdraw() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.state
	if st.Stats.Savings < DepositStep {
		return skipped(ReasonInsufficientSavings, st.Stats)
	}
	st.Stats.RemoveSavings(DepositStep)
	st.Stats.AddCoins(DepositStep)
	s.mark(KeyStats)
	return s.finish(Outcome{Applied: true})
}

// Purchase buys the catalog reward rewardID.
// Returns types.ErrNotFound for an unknown reward.
func (s *Session) Purchase(rewardID string) (Outcome, error) {
	r, err := s.catalog.Reward(rewardID)
	if err != nil {
		return Outcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.state
	if st.Stats.Coins < r.Price {
		return skipped(ReasonInsufficientCoins, st.Stats), nil
	}
	st.Stats.RemoveCoins(r.Price)
	st.Behavior.RecordPurchase(r, s.clock())
	s.mark(KeyStats, KeyBehavior)
	s.logger.Debug("purchase", zap.String("reward", r.ID), zap.Int("price", r.Price))
	return s.finish(Outcome{Applied: true}), nil
}

// CompleteMission completes the pending mission id and pays its reward.
// Returns types.ErrNotFound for an unknown mission.
func (s *Session) CompleteMission(id string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.state
	idx := -1
	for i := range st.Missions {
		if st.Missions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Outcome{}, fmt.Errorf("mission %q: %w", id, types.ErrNotFound)
	}
	m := &st.Missions[idx]
	if err := m.Complete(); err != nil {
		if errors.Is(err, types.ErrInvalidTransition) {
			return skipped(ReasonMissionCompleted, st.Stats), nil
		}
		return Outcome{}, fmt.Errorf("mission %q: %w", id, err)
	}

	st.Stats.AddCoins(m.Reward)
	out := Outcome{Applied: true, LevelsGained: st.Stats.AddXP(types.MissionXP)}
	st.Behavior.CompletedMissions++
	st.Behavior.RecordEarning(m.Reward)
	done := *m
	out.Mission = &done
	s.mark(KeyMissions, KeyStats, KeyBehavior)
	return s.finish(out), nil
}

// GenerateMission prepends a new mission from the content provider. At
// most types.MaxDailyTasks missions are generated per calendar day.
func (s *Session) GenerateMission(ctx context.Context) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.state
	st.DailyTasks = st.DailyTasks.ForDay(s.today())
	if st.DailyTasks.Remaining() == 0 {
		return skipped(ReasonDailyLimit, st.Stats)
	}

	draft, generated := s.content.MagicMission(ctx, &st.Session.Rotation)
	m := types.Mission{
		ID:          newID(),
		Title:       draft.Title,
		Reward:      draft.Reward,
		Icon:        draft.Icon,
		Status:      types.MissionPending,
		AIGenerated: generated,
	}
	st.Missions = append([]types.Mission{m}, st.Missions...)
	st.DailyTasks.Count++
	s.mark(KeyMissions, KeyDailyTasks, KeySession)

	return s.finish(Outcome{Applied: true, Mission: &m, Generated: generated})
}

// DailyTip returns a money tip from the content provider.
func (s *Session) DailyTip(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tip := s.content.DailyTip(ctx, &s.state.Session.Rotation)
	s.mark(KeySession)
	s.flush()
	return tip
}

// StartLesson makes a lesson current. An empty lessonID asks the content
// provider for a lesson; otherwise the catalog lesson's quiz is used,
// provided the player has enough knowledge points.
func (s *Session) StartLesson(ctx context.Context, lessonID string) (types.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.state
	var l types.Lesson
	if lessonID == "" {
		l = s.content.Lesson(ctx, &st.Session.Rotation)
	} else {
		il, err := s.catalog.Lesson(lessonID)
		if err != nil {
			return types.Lesson{}, err
		}
		if !il.Unlocked(st.Stats.KnowledgePoints) {
			return types.Lesson{}, fmt.Errorf("%w: %s needs %d knowledge points",
				ErrLessonLocked, il.ID, il.RequiredKnowledgePoints)
		}
		l = il.QuizLesson()
	}

	st.Session.CurrentLesson = &l
	st.Session.CurrentLessonID = lessonID
	st.Session.LastResult = ""
	s.mark(KeySession)
	s.flush()

	out := l
	out.Options = append([]string(nil), l.Options...)
	return out, nil
}

// AnswerQuiz answers the current lesson. A correct answer pays knowledge
// points, coins and XP. The lesson is cleared either way.
func (s *Session) AnswerQuiz(index int) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.state
	l := st.Session.CurrentLesson
	if l == nil {
		return Outcome{}, ErrNoActiveLesson
	}
	if index < 0 || index >= len(l.Options) {
		return Outcome{}, fmt.Errorf("answer %d: %w", index, types.ErrInvalidChoice)
	}

	out := Outcome{Applied: true, Result: types.LessonFailure}
	if l.IsCorrect(index) {
		out.Result = types.LessonSuccess
		st.Stats.AddKnowledgePoints(types.QuizKnowledgePoints)
		st.Stats.AddCoins(types.QuizCoins)
		out.LevelsGained = st.Stats.AddXP(types.QuizXP)
		st.Behavior.RecordEarning(types.QuizCoins)
		s.mark(KeyStats, KeyBehavior)
	}
	st.Session.CurrentLesson = nil
	st.Session.CurrentLessonID = ""
	st.Session.LastResult = out.Result
	s.mark(KeySession)
	return s.finish(out), nil
}

// StartRandomScenario makes a random uncompleted scenario current.
// Returns ErrNoScenarios when every scenario is completed.
func (s *Session) StartRandomScenario() (types.Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.state
	var open []int
	for i, sc := range st.Scenarios {
		if !sc.Completed {
			open = append(open, i)
		}
	}
	if len(open) == 0 {
		return types.Scenario{}, ErrNoScenarios
	}
	sc := st.Scenarios[open[s.rand.IntN(len(open))]]
	st.Session.CurrentScenarioID = sc.ID
	s.mark(KeySession)
	s.flush()

	sc.Choices = append([]types.ScenarioChoice(nil), sc.Choices...)
	return sc, nil
}

// ChooseScenario answers the current scenario with choiceID, pays the
// choice's rewards and completes the scenario.
func (s *Session) ChooseScenario(choiceID string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.state
	var sc *types.Scenario
	for i := range st.Scenarios {
		if st.Scenarios[i].ID == st.Session.CurrentScenarioID {
			sc = &st.Scenarios[i]
			break
		}
	}
	if st.Session.CurrentScenarioID == "" || sc == nil || sc.Completed {
		return Outcome{}, ErrNoActiveScenario
	}
	c, err := sc.Choice(choiceID)
	if err != nil {
		return Outcome{}, fmt.Errorf("scenario %s choice %q: %w", sc.ID, choiceID, err)
	}

	st.Stats.AddCoins(c.CoinsReward)
	out := Outcome{Applied: true, Feedback: c.Feedback, LevelsGained: st.Stats.AddXP(c.XPReward)}
	st.Behavior.RecordEarning(c.CoinsReward)
	sc.Complete(s.clock())
	st.Session.CurrentScenarioID = ""
	s.mark(KeyStats, KeyBehavior, KeyScenarios, KeySession)
	return s.finish(out), nil
}

// finish runs the scans, persists and fills in the resulting stats.
func (s *Session) finish(out Outcome) Outcome {
	s.scan(&out)
	s.flush()
	out.Stats = s.state.Stats
	return out
}

// scan unlocks achievements and milestones and advances the journey.
func (s *Session) scan(out *Outcome) {
	st := &s.state
	now := s.clock()
	p := st.Progress()

	var a *types.Achievement
	st.Achievements, a = ScanAchievements(st.Achievements, p, now)
	if a != nil {
		s.mark(KeyAchievements)
		s.logger.Info("achievement unlocked", zap.String("id", a.ID))
		out.Achievement = a
	}

	var m *types.Milestone
	st.Milestones, m = ScanMilestones(st.Milestones, st.Stats.Savings, s.catalog.SavingsGoal(), now)
	if m != nil {
		s.mark(KeyMilestones)
		s.logger.Info("milestone reached", zap.Int("percentage", m.Percentage))
		out.Milestone = m
	}

	var steps []types.JourneyStep
	prev := st.Journey
	st.Journey, steps = AdvanceJourney(s.catalog.JourneySteps(), st.Journey, p)
	if len(steps) > 0 || prev.CurrentStepIndex != st.Journey.CurrentStepIndex || prev.CurrentStage != st.Journey.CurrentStage {
		s.mark(KeyJourney)
		out.JourneySteps = steps
	}
}

func (s *Session) mark(keys ...string) {
	for _, k := range keys {
		s.dirty[k] = true
	}
}

// flush writes every dirty key. Write failures are logged; the in-memory
// state stays authoritative.
func (s *Session) flush() {
	for _, key := range Keys {
		if !s.dirty[key] {
			continue
		}
		if err := s.store.Set(key, s.value(key)); err != nil {
			s.logger.Error("writing state failed", zap.String("key", key), zap.Error(err))
			continue
		}
		delete(s.dirty, key)
	}
}

func (s *Session) value(key string) any {
	st := &s.state
	switch key {
	case KeyStats:
		return st.Stats
	case KeyMissions:
		return st.Missions
	case KeyDailyTasks:
		return st.DailyTasks
	case KeyBehavior:
		return st.Behavior
	case KeyMilestones:
		return st.Milestones
	case KeyAchievements:
		return st.Achievements
	case KeyScenarios:
		return st.Scenarios
	case KeyGoals:
		return st.Goals
	case KeySelection:
		return st.Selection
	case KeyJourney:
		return st.Journey
	case KeySession:
		return st.Session
	}
	return nil
}

// newID returns a time-ordered UUID, falling back to a random one.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
