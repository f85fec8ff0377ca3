package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementUnlockIsOneWay(t *testing.T) {
	first := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	a := &Achievement{ID: "first_savings", Status: AchievementLocked}

	assert.True(t, a.Unlock(first))
	assert.True(t, a.Unlocked())
	require.NotNil(t, a.UnlockedAt)

	assert.False(t, a.Unlock(first.Add(time.Hour)))
	assert.Equal(t, first, *a.UnlockedAt)
}

func TestRuleSatisfied(t *testing.T) {
	p := Progress{
		Stats:                 UserStats{Coins: 1000, Level: 2, Savings: 499, KnowledgePoints: 5},
		MissionsCompleted:     1,
		DailyTasks:            3,
		Purchases:             6,
		TrailingNeedPurchases: 4,
	}

	tests := []struct {
		rule Rule
		want bool
	}{
		{Rule{MetricSavings, 500}, false},
		{Rule{MetricSavings, 50}, true},
		{Rule{MetricCoins, 1000}, true},
		{Rule{MetricLevel, 2}, true},
		{Rule{MetricKnowledgePoints, 10}, false},
		{Rule{MetricMissionsCompleted, 1}, true},
		{Rule{MetricDailyTasks, 3}, true},
		{Rule{MetricPurchases, 1}, true},
		{Rule{MetricTrailingNeedPurchases, 5}, false},
		{Rule{Metric("streak"), 0}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.rule.Metric), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Satisfied(p))
		})
	}

	_, err := p.Value("streak")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestRequirementsMet(t *testing.T) {
	p := Progress{Stats: UserStats{Coins: 60, Savings: 0, KnowledgePoints: 1}, Purchases: 0}

	assert.True(t, Requirements{}.Met(p))
	assert.True(t, Requirements{KnowledgePoints: 1}.Met(p))
	assert.True(t, Requirements{Coins: 50}.Met(p))
	assert.False(t, Requirements{KnowledgePoints: 1, CompletedLessons: 2}.Met(p))
	assert.False(t, Requirements{Savings: 50}.Met(p))
	assert.False(t, Requirements{Purchases: 3}.Met(p))
}

func TestJourneyStateComplete(t *testing.T) {
	s := DefaultJourneyState()
	step := JourneyStep{ID: "welcome", Action: "start_first_lesson"}

	assert.True(t, s.Complete(step))
	assert.False(t, s.Complete(step))
	assert.True(t, s.IsCompleted("welcome"))
	assert.Equal(t, 1, s.TotalActionsCompleted)
	assert.Equal(t, "start_first_lesson", s.LastCompletedAction)
}
