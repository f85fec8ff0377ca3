package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

func purchases(kinds ...types.RewardType) []types.Purchase {
	out := make([]types.Purchase, len(kinds))
	for i, t := range kinds {
		out[i] = types.Purchase{Type: t}
	}
	return out
}

func TestAnalyze(t *testing.T) {
	need, want := types.RewardNeed, types.RewardWant

	tests := []struct {
		name           string
		savings        int
		behavior       types.UserBehavior
		wantRatio      int
		wantStrengths  []string
		wantWeaknesses []string
		wantTips       []string
	}{
		{
			name:           "no purchases",
			savings:        820,
			wantStrengths:  []string{},
			wantWeaknesses: []string{},
			wantTips:       []string{"Buy something to see your spending analysis"},
		},
		{
			name:    "frugal needs-first saver",
			savings: 1200,
			behavior: types.UserBehavior{
				Purchases:  purchases(need, need, need, need),
				TotalSpent: 200,
			},
			wantRatio:      100,
			wantStrengths:  []string{"Great focus on needs over wants", "Controls spending carefully", "Impressive savings"},
			wantWeaknesses: []string{},
			wantTips:       []string{},
		},
		{
			name:    "balanced",
			savings: 500,
			behavior: types.UserBehavior{
				Purchases:  purchases(need, want),
				TotalSpent: 700,
			},
			wantRatio:      50,
			wantStrengths:  []string{"Good balance between needs and wants"},
			wantWeaknesses: []string{},
			wantTips:       []string{},
		},
		{
			name:    "wants-heavy big spender",
			savings: 100,
			behavior: types.UserBehavior{
				Purchases:  purchases(want, want, need),
				TotalSpent: 1600,
			},
			wantRatio:     33,
			wantStrengths: []string{},
			wantWeaknesses: []string{
				"Buys many wants, not just needs",
				"Spends a lot of coins",
				"Savings are too low",
			},
			wantTips: []string{
				"Before buying, ask: is this a need or a want?",
				"Grow your savings before big purchases",
				"Save at least 20% of everything you earn",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(types.UserStats{Level: 1, Savings: tt.savings}, tt.behavior)
			assert.Equal(t, tt.wantRatio, a.NeedRatio)
			assert.Equal(t, len(tt.behavior.Purchases), a.TotalPurchases)
			assert.Equal(t, tt.wantStrengths, a.Strengths)
			assert.Equal(t, tt.wantWeaknesses, a.Weaknesses)
			assert.Equal(t, tt.wantTips, a.Tips)
		})
	}
}

func TestAnalyzeSavingsPercent(t *testing.T) {
	tests := []struct {
		savings int
		want    int
	}{
		{savings: 0, want: 0},
		{savings: 820, want: 41},
		{savings: 829, want: 41},
		{savings: 830, want: 42},
		{savings: 1990, want: 100},
		{savings: math.MaxInt, want: 100},
	}
	for _, tt := range tests {
		got := Analyze(types.UserStats{Savings: tt.savings}, types.UserBehavior{}).SavingsPercent
		assert.Equal(t, tt.want, got, "savings=%d", tt.savings)
	}
	assert.Equal(t, 100, Analyze(types.UserStats{Savings: 2500}, types.UserBehavior{}).SavingsPercent)
}
