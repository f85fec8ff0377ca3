// Package catalog loads the static game content: shop rewards, missions,
// achievements, milestones, scenarios, personal goals, lessons, the journey
// path and fallback content. The content ships as YAML embedded in the
// binary. A Catalog is read-only; every accessor returns copies.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ErrInvalidCatalog is returned when catalog data fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// FallbackMission is a static mission template.
type FallbackMission struct {
	Title  string `yaml:"title"`
	Reward int    `yaml:"reward"`
	Icon   string `yaml:"icon"`
}

// Fallback is the static content served when generation fails.
type Fallback struct {
	Tips     []string          `yaml:"tips"`
	Missions []FallbackMission `yaml:"missions"`
	Lessons  []types.Lesson    `yaml:"lessons"`
}

// Catalog holds every static content list.
type Catalog struct {
	rewards      []types.Reward
	missions     []types.Mission
	achievements []types.Achievement
	milestones   []types.Milestone
	savingsGoal  int
	scenarios    []types.Scenario
	goals        []types.CatalogGoal
	lessons      []types.InteractiveLesson
	journey      []types.JourneyStep
	fallback     Fallback
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads and validates a catalog from fsys. fsys must contain the files
// rewards.yaml, missions.yaml, achievements.yaml, milestones.yaml,
// scenarios.yaml, goals.yaml, lessons.yaml, journey.yaml and fallback.yaml.
func Load(fsys fs.FS) (*Catalog, error) {
	var (
		rewards struct {
			Rewards []types.Reward `yaml:"rewards"`
		}
		missions struct {
			Missions []types.Mission `yaml:"missions"`
		}
		achievements struct {
			Achievements []types.Achievement `yaml:"achievements"`
		}
		milestones struct {
			Goal       int               `yaml:"goal"`
			Milestones []types.Milestone `yaml:"milestones"`
		}
		scenarios struct {
			Scenarios []types.Scenario `yaml:"scenarios"`
		}
		goals struct {
			Goals []types.CatalogGoal `yaml:"goals"`
		}
		lessons struct {
			Lessons []types.InteractiveLesson `yaml:"lessons"`
		}
		journey struct {
			Steps []types.JourneyStep `yaml:"steps"`
		}
		fallback Fallback
	)

	files := []struct {
		name string
		dst  any
	}{
		{"rewards.yaml", &rewards},
		{"missions.yaml", &missions},
		{"achievements.yaml", &achievements},
		{"milestones.yaml", &milestones},
		{"scenarios.yaml", &scenarios},
		{"goals.yaml", &goals},
		{"lessons.yaml", &lessons},
		{"journey.yaml", &journey},
		{"fallback.yaml", &fallback},
	}
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.name, err)
		}
		if err := yaml.Unmarshal(data, f.dst); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.name, err)
		}
	}

	c := &Catalog{
		rewards:      rewards.Rewards,
		missions:     missions.Missions,
		achievements: achievements.Achievements,
		milestones:   milestones.Milestones,
		savingsGoal:  milestones.Goal,
		scenarios:    scenarios.Scenarios,
		goals:        goals.Goals,
		lessons:      lessons.Lessons,
		journey:      journey.Steps,
		fallback:     fallback,
	}
	for i := range c.achievements {
		c.achievements[i].Status = types.AchievementLocked
	}
	for i := range c.milestones {
		c.milestones[i].Status = types.AchievementLocked
	}
	for i := range c.missions {
		if c.missions[i].Status == "" {
			c.missions[i].Status = types.MissionPending
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	if c.savingsGoal <= 0 {
		return fmt.Errorf("%w: savings goal must be positive", ErrInvalidCatalog)
	}
	if len(c.fallback.Tips) == 0 || len(c.fallback.Missions) == 0 || len(c.fallback.Lessons) == 0 {
		return fmt.Errorf("%w: fallback content must not be empty", ErrInvalidCatalog)
	}

	seen := map[string]bool{}
	unique := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%w: %s with empty id", ErrInvalidCatalog, kind)
		}
		k := kind + "/" + id
		if seen[k] {
			return fmt.Errorf("%w: duplicate %s %q", ErrInvalidCatalog, kind, id)
		}
		seen[k] = true
		return nil
	}

	for _, r := range c.rewards {
		if err := unique("reward", r.ID); err != nil {
			return err
		}
		if !r.Type.Valid() || r.Price <= 0 {
			return fmt.Errorf("%w: reward %q", ErrInvalidCatalog, r.ID)
		}
	}
	for _, m := range c.missions {
		if err := unique("mission", m.ID); err != nil {
			return err
		}
	}
	for _, a := range c.achievements {
		if err := unique("achievement", a.ID); err != nil {
			return err
		}
		if _, err := (types.Progress{}).Value(a.Rule.Metric); err != nil {
			return fmt.Errorf("%w: achievement %q: %w", ErrInvalidCatalog, a.ID, err)
		}
	}
	for _, g := range c.goals {
		if err := unique("goal", g.ID); err != nil {
			return err
		}
		if !g.Category.Valid() {
			return fmt.Errorf("%w: goal %q: %w", ErrInvalidCatalog, g.ID, types.ErrInvalidCategory)
		}
	}
	for _, s := range c.scenarios {
		if err := unique("scenario", s.ID); err != nil {
			return err
		}
		if len(s.Choices) == 0 {
			return fmt.Errorf("%w: scenario %q has no choices", ErrInvalidCatalog, s.ID)
		}
	}
	for _, l := range c.lessons {
		if err := unique("lesson", l.ID); err != nil {
			return err
		}
		if err := l.QuizLesson().Validate(); err != nil {
			return fmt.Errorf("%w: lesson %q: %w", ErrInvalidCatalog, l.ID, err)
		}
	}
	for _, l := range c.fallback.Lessons {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("%w: fallback lesson: %w", ErrInvalidCatalog, err)
		}
	}
	for _, s := range c.journey {
		if err := unique("journey step", s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Rewards returns the shop catalog in display order.
func (c *Catalog) Rewards() []types.Reward {
	return slices.Clone(c.rewards)
}

// RewardsByType returns the rewards of type t.
func (c *Catalog) RewardsByType(t types.RewardType) []types.Reward {
	var out []types.Reward
	for _, r := range c.rewards {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// Reward looks up a reward by ID.
func (c *Catalog) Reward(id string) (types.Reward, error) {
	for _, r := range c.rewards {
		if r.ID == id {
			return r, nil
		}
	}
	return types.Reward{}, fmt.Errorf("reward %q: %w", id, types.ErrNotFound)
}

// InitialMissions returns the missions a new player starts with.
func (c *Catalog) InitialMissions() []types.Mission {
	return slices.Clone(c.missions)
}

// Achievements returns every achievement, locked, in scan order.
func (c *Catalog) Achievements() []types.Achievement {
	return slices.Clone(c.achievements)
}

// AchievementsByCategory returns the achievements of category cat.
func (c *Catalog) AchievementsByCategory(cat types.AchievementCategory) []types.Achievement {
	var out []types.Achievement
	for _, a := range c.achievements {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return out
}

// Milestones returns the savings milestones, locked, in ascending order.
func (c *Catalog) Milestones() []types.Milestone {
	return slices.Clone(c.milestones)
}

// SavingsGoal returns the savings target the milestones measure against.
func (c *Catalog) SavingsGoal() int {
	return c.savingsGoal
}

// Scenarios returns every scenario, not completed.
func (c *Catalog) Scenarios() []types.Scenario {
	out := make([]types.Scenario, len(c.scenarios))
	for i, s := range c.scenarios {
		s.Choices = slices.Clone(s.Choices)
		out[i] = s
	}
	return out
}

// Goals returns the personal goals catalog.
func (c *Catalog) Goals() []types.CatalogGoal {
	return slices.Clone(c.goals)
}

// GoalsByCategory returns the catalog goals of category cat.
func (c *Catalog) GoalsByCategory(cat types.GoalCategory) []types.CatalogGoal {
	var out []types.CatalogGoal
	for _, g := range c.goals {
		if g.Category == cat {
			out = append(out, g)
		}
	}
	return out
}

// Goal looks up a catalog goal by ID.
func (c *Catalog) Goal(id string) (types.CatalogGoal, error) {
	for _, g := range c.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return types.CatalogGoal{}, fmt.Errorf("goal %q: %w", id, types.ErrNotFound)
}

// Lessons returns every interactive lesson.
func (c *Catalog) Lessons() []types.InteractiveLesson {
	return slices.Clone(c.lessons)
}

// UnlockedLessons returns the lessons a player with kp knowledge points may
// start.
func (c *Catalog) UnlockedLessons(kp int) []types.InteractiveLesson {
	var out []types.InteractiveLesson
	for _, l := range c.lessons {
		if l.Unlocked(kp) {
			out = append(out, l)
		}
	}
	return out
}

// Lesson looks up an interactive lesson by ID.
func (c *Catalog) Lesson(id string) (types.InteractiveLesson, error) {
	for _, l := range c.lessons {
		if l.ID == id {
			return l, nil
		}
	}
	return types.InteractiveLesson{}, fmt.Errorf("lesson %q: %w", id, types.ErrNotFound)
}

// JourneySteps returns the guided path in order.
func (c *Catalog) JourneySteps() []types.JourneyStep {
	return slices.Clone(c.journey)
}

// Fallback returns the static fallback content.
func (c *Catalog) Fallback() Fallback {
	return Fallback{
		Tips:     slices.Clone(c.fallback.Tips),
		Missions: slices.Clone(c.fallback.Missions),
		Lessons:  slices.Clone(c.fallback.Lessons),
	}
}
