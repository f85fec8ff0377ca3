package types

import "math"

// XPPerLevel is the experience needed to advance one level.
const XPPerLevel = 100

// UserStats is the player's progression record. Every mutating method keeps
// the invariants: coins, savings and knowledge points never go negative,
// level is at least 1, and XP stays below XPPerLevel.
type UserStats struct {
	Coins           int    `json:"coins" yaml:"coins"`
	Level           int    `json:"level" yaml:"level"`
	XP              int    `json:"xp" yaml:"xp"`
	Savings         int    `json:"savings" yaml:"savings"`
	KnowledgePoints int    `json:"knowledgePoints" yaml:"knowledge_points"`
	Name            string `json:"name" yaml:"name"`
}

// AddCoins adds n coins, saturating at math.MaxInt. Negative amounts are
// ignored.
func (s *UserStats) AddCoins(n int) {
	if n <= 0 {
		return
	}
	s.Coins = saturatingAdd(s.Coins, n)
}

// RemoveCoins subtracts n coins, clamping the balance at zero. Purchases must
// check sufficiency before calling; RemoveCoins itself never fails.
func (s *UserStats) RemoveCoins(n int) {
	if n <= 0 {
		return
	}
	s.Coins = clampZero(s.Coins - n)
}

// AddXP adds n experience points and rolls every full XPPerLevel into a new
// level. It returns the number of levels gained.
func (s *UserStats) AddXP(n int) int {
	if n <= 0 {
		return 0
	}
	if s.Level < 1 {
		s.Level = 1
	}
	xp := saturatingAdd(s.XP, n)
	gained := xp / XPPerLevel
	before := s.Level
	s.Level = saturatingAdd(s.Level, gained)
	s.XP = xp % XPPerLevel
	return s.Level - before
}

// AddSavings adds n to the savings balance. Negative amounts are ignored.
func (s *UserStats) AddSavings(n int) {
	if n <= 0 {
		return
	}
	s.Savings = saturatingAdd(s.Savings, n)
}

// RemoveSavings subtracts n from savings, clamping at zero.
func (s *UserStats) RemoveSavings(n int) {
	if n <= 0 {
		return
	}
	s.Savings = clampZero(s.Savings - n)
}

// SetSavings replaces the savings balance, clamping at zero.
func (s *UserStats) SetSavings(n int) {
	s.Savings = clampZero(n)
}

// AddKnowledgePoints adds n knowledge points. Negative amounts are ignored.
func (s *UserStats) AddKnowledgePoints(n int) {
	if n <= 0 {
		return
	}
	s.KnowledgePoints = saturatingAdd(s.KnowledgePoints, n)
}

// SetName renames the player. Returns ErrInvalidName for an empty name.
func (s *UserStats) SetName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	s.Name = name
	return nil
}

// Validate reports ErrInvalidStats when any invariant is broken. Values read
// back from storage are validated before use.
func (s UserStats) Validate() error {
	switch {
	case s.Coins < 0, s.Savings < 0, s.KnowledgePoints < 0:
		return ErrInvalidStats
	case s.Level < 1:
		return ErrInvalidStats
	case s.XP < 0 || s.XP >= XPPerLevel:
		return ErrInvalidStats
	}
	return nil
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// saturatingAdd returns a+b for non-negative a and b, capped at math.MaxInt.
func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
