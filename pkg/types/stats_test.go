package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStatsAddXP(t *testing.T) {
	tests := []struct {
		name       string
		level, xp  int
		add        int
		wantLevel  int
		wantXP     int
		wantGained int
	}{
		{name: "below threshold", level: 1, xp: 65, add: 15, wantLevel: 1, wantXP: 80},
		{name: "exact rollover", level: 1, xp: 75, add: 25, wantLevel: 2, wantXP: 0, wantGained: 1},
		{name: "single rollover with remainder", level: 1, xp: 65, add: 50, wantLevel: 2, wantXP: 15, wantGained: 1},
		{name: "multiple levels", level: 3, xp: 90, add: 215, wantLevel: 6, wantXP: 5, wantGained: 3},
		{name: "zero ignored", level: 2, xp: 10, add: 0, wantLevel: 2, wantXP: 10},
		{name: "negative ignored", level: 2, xp: 10, add: -40, wantLevel: 2, wantXP: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &UserStats{Level: tt.level, XP: tt.xp}
			gained := s.AddXP(tt.add)
			assert.Equal(t, tt.wantLevel, s.Level)
			assert.Equal(t, tt.wantXP, s.XP)
			assert.Equal(t, tt.wantGained, gained)
		})
	}
}

func TestUserStatsAddXPArithmetic(t *testing.T) {
	for xp := 0; xp < XPPerLevel; xp += 7 {
		for n := 0; n <= 450; n += 13 {
			s := &UserStats{Level: 1, XP: xp}
			s.AddXP(n)
			assert.Equal(t, 1+(xp+n)/XPPerLevel, s.Level, "xp=%d n=%d", xp, n)
			assert.Equal(t, (xp+n)%XPPerLevel, s.XP, "xp=%d n=%d", xp, n)
			require.NoError(t, s.Validate())
		}
	}
}

func TestUserStatsAdditionsSaturate(t *testing.T) {
	s := &UserStats{Level: 1, XP: 50, Coins: 10, Savings: 20, KnowledgePoints: 3}
	s.AddCoins(math.MaxInt)
	s.AddSavings(math.MaxInt)
	s.AddKnowledgePoints(math.MaxInt)
	gained := s.AddXP(math.MaxInt)

	assert.Equal(t, math.MaxInt, s.Coins)
	assert.Equal(t, math.MaxInt, s.Savings)
	assert.Equal(t, math.MaxInt, s.KnowledgePoints)
	assert.Equal(t, 1+math.MaxInt/XPPerLevel, s.Level)
	assert.Equal(t, math.MaxInt%XPPerLevel, s.XP)
	assert.Equal(t, math.MaxInt/XPPerLevel, gained)
	require.NoError(t, s.Validate())

	s.AddCoins(1)
	assert.Equal(t, math.MaxInt, s.Coins)

	top := &UserStats{Level: math.MaxInt - 1}
	assert.Equal(t, 1, top.AddXP(math.MaxInt))
	assert.Equal(t, math.MaxInt, top.Level)
	require.NoError(t, top.Validate())
}

func TestUserStatsRemovalsClamp(t *testing.T) {
	tests := []struct {
		name        string
		coins, save int
		remove      int
		wantCoins   int
		wantSavings int
	}{
		{name: "partial", coins: 100, save: 100, remove: 30, wantCoins: 70, wantSavings: 70},
		{name: "exact", coins: 50, save: 50, remove: 50},
		{name: "overdraw clamps", coins: 20, save: 10, remove: 500},
		{name: "negative ignored", coins: 20, save: 10, remove: -5, wantCoins: 20, wantSavings: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &UserStats{Level: 1, Coins: tt.coins, Savings: tt.save}
			s.RemoveCoins(tt.remove)
			s.RemoveSavings(tt.remove)
			assert.Equal(t, tt.wantCoins, s.Coins)
			assert.Equal(t, tt.wantSavings, s.Savings)
		})
	}
}

func TestUserStatsSetters(t *testing.T) {
	s := &UserStats{Level: 1}
	s.AddCoins(40)
	s.AddCoins(-10)
	s.AddSavings(25)
	s.AddKnowledgePoints(2)
	s.SetSavings(-3)

	assert.Equal(t, 40, s.Coins)
	assert.Equal(t, 0, s.Savings)
	assert.Equal(t, 2, s.KnowledgePoints)

	assert.ErrorIs(t, s.SetName(""), ErrInvalidName)
	require.NoError(t, s.SetName("Maya"))
	assert.Equal(t, "Maya", s.Name)
}

func TestUserStatsValidate(t *testing.T) {
	tests := []struct {
		name    string
		stats   UserStats
		wantErr error
	}{
		{name: "initial stats", stats: UserStats{Coins: 450, Level: 1, XP: 65, Savings: 820}},
		{name: "negative coins", stats: UserStats{Coins: -1, Level: 1}, wantErr: ErrInvalidStats},
		{name: "level zero", stats: UserStats{Level: 0}, wantErr: ErrInvalidStats},
		{name: "xp overflow", stats: UserStats{Level: 1, XP: 100}, wantErr: ErrInvalidStats},
		{name: "negative knowledge", stats: UserStats{Level: 1, KnowledgePoints: -2}, wantErr: ErrInvalidStats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
