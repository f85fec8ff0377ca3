package types

import "time"

// AchievementStatus is the lock state of an achievement or milestone.
// The only transition is locked to unlocked.
type AchievementStatus string

// Achievement states.
const (
	AchievementLocked   AchievementStatus = "locked"
	AchievementUnlocked AchievementStatus = "unlocked"
)

// AchievementCategory groups achievements for display.
type AchievementCategory string

// Achievement categories.
const (
	CategorySavings  AchievementCategory = "savings"
	CategoryLearning AchievementCategory = "learning"
	CategoryMissions AchievementCategory = "missions"
	CategorySpecial  AchievementCategory = "special"
)

// Achievement is a badge unlocked when its Rule is first satisfied.
type Achievement struct {
	ID          string              `json:"id" yaml:"id"`
	Name        string              `json:"name" yaml:"name"`
	Icon        string              `json:"icon" yaml:"icon"`
	Description string              `json:"description" yaml:"description"`
	Category    AchievementCategory `json:"category" yaml:"category"`
	Rule        Rule                `json:"rule" yaml:"rule"`
	Status      AchievementStatus   `json:"status" yaml:"status"`
	UnlockedAt  *time.Time          `json:"unlockedAt,omitempty" yaml:"unlocked_at,omitempty"`
}

// Unlocked reports whether the achievement has been unlocked.
func (a Achievement) Unlocked() bool {
	return a.Status == AchievementUnlocked
}

// Unlock marks the achievement unlocked at the given time. It returns false
// and leaves the achievement untouched when it was already unlocked; there
// is no way back to locked.
func (a *Achievement) Unlock(at time.Time) bool {
	if a.Unlocked() {
		return false
	}
	a.Status = AchievementUnlocked
	a.UnlockedAt = &at
	return true
}

// Milestone marks a percentage of the savings goal.
type Milestone struct {
	Percentage  int               `json:"percentage" yaml:"percentage"`
	Name        string            `json:"name" yaml:"name"`
	Icon        string            `json:"icon" yaml:"icon"`
	Description string            `json:"description" yaml:"description"`
	Status      AchievementStatus `json:"status" yaml:"status"`
	AchievedAt  *time.Time        `json:"achievedAt,omitempty" yaml:"achieved_at,omitempty"`
}

// Achieved reports whether the milestone has been reached.
func (m Milestone) Achieved() bool {
	return m.Status == AchievementUnlocked
}

// Achieve marks the milestone reached. Same one-way semantics as
// Achievement.Unlock.
func (m *Milestone) Achieve(at time.Time) bool {
	if m.Achieved() {
		return false
	}
	m.Status = AchievementUnlocked
	m.AchievedAt = &at
	return true
}
