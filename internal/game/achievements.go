package game

import (
	"time"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// ScanAchievements unlocks every locked achievement whose rule p satisfies,
// stamping now. It returns the updated list and the first achievement that
// this scan unlocked, in list order, or nil. The input slice is not
// modified.
func ScanAchievements(list []types.Achievement, p types.Progress, now time.Time) ([]types.Achievement, *types.Achievement) {
	out := make([]types.Achievement, len(list))
	copy(out, list)

	var first *types.Achievement
	for i := range out {
		if out[i].Unlocked() || !out[i].Rule.Satisfied(p) {
			continue
		}
		out[i].Unlock(now)
		if first == nil {
			a := out[i]
			first = &a
		}
	}
	return out, first
}

// ScanMilestones marks every milestone whose percentage the savings
// balance has reached against goal. Same return contract as
// ScanAchievements.
func ScanMilestones(list []types.Milestone, savings, goal int, now time.Time) ([]types.Milestone, *types.Milestone) {
	out := make([]types.Milestone, len(list))
	copy(out, list)

	pct := SavingsPercent(savings, goal)
	var first *types.Milestone
	for i := range out {
		if out[i].Achieved() || pct < out[i].Percentage {
			continue
		}
		out[i].Achieve(now)
		if first == nil {
			m := out[i]
			first = &m
		}
	}
	return out, first
}

// SavingsPercent returns floor(savings*100/goal). A non-positive goal
// counts as fully reached.
func SavingsPercent(savings, goal int) int {
	if goal <= 0 {
		return 100
	}
	return max(0, savings) * 100 / goal
}

// CountUnlocked returns how many achievements are unlocked.
func CountUnlocked(list []types.Achievement) int {
	n := 0
	for _, a := range list {
		if a.Unlocked() {
			n++
		}
	}
	return n
}
