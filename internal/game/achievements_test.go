package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

func lockedAchievements() []types.Achievement {
	return []types.Achievement{
		{ID: "a", Status: types.AchievementLocked, Rule: types.Rule{Metric: types.MetricSavings, Threshold: 50}},
		{ID: "b", Status: types.AchievementLocked, Rule: types.Rule{Metric: types.MetricSavings, Threshold: 500}},
		{ID: "c", Status: types.AchievementLocked, Rule: types.Rule{Metric: types.MetricKnowledgePoints, Threshold: 1}},
	}
}

func TestScanAchievements(t *testing.T) {
	list := lockedAchievements()
	p := types.Progress{Stats: types.UserStats{Savings: 600, Level: 1}}

	got, first := ScanAchievements(list, p, testNow)
	require.NotNil(t, first)
	assert.Equal(t, "a", first.ID)
	assert.True(t, got[0].Unlocked())
	assert.True(t, got[1].Unlocked())
	assert.False(t, got[2].Unlocked())
	assert.Equal(t, testNow, *got[1].UnlockedAt)

	for _, a := range list {
		assert.False(t, a.Unlocked(), "input list must not change")
	}

	later := testNow.AddDate(0, 0, 1)
	p.Stats.Savings = 0
	again, first := ScanAchievements(got, p, later)
	assert.Nil(t, first)
	assert.True(t, again[0].Unlocked(), "unlocks are one-way")
	assert.Equal(t, testNow, *again[0].UnlockedAt)
	assert.Equal(t, 2, CountUnlocked(again))
}

func TestScanMilestones(t *testing.T) {
	list := []types.Milestone{
		{Percentage: 25, Status: types.AchievementLocked},
		{Percentage: 50, Status: types.AchievementLocked},
		{Percentage: 75, Status: types.AchievementLocked},
		{Percentage: 100, Status: types.AchievementLocked},
	}

	got, first := ScanMilestones(list, 650, 1200, testNow)
	require.NotNil(t, first)
	assert.Equal(t, 25, first.Percentage)
	assert.True(t, got[1].Achieved())
	assert.False(t, got[2].Achieved())

	got, first = ScanMilestones(got, 1200, 1200, testNow)
	require.NotNil(t, first)
	assert.Equal(t, 75, first.Percentage)
	assert.True(t, got[3].Achieved())
}

func TestSavingsPercent(t *testing.T) {
	tests := []struct {
		savings, goal, want int
	}{
		{0, 1200, 0},
		{299, 1200, 24},
		{300, 1200, 25},
		{1199, 1200, 99},
		{2400, 1200, 200},
		{-50, 1200, 0},
		{10, 0, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SavingsPercent(tt.savings, tt.goal), "SavingsPercent(%d, %d)", tt.savings, tt.goal)
	}
}
