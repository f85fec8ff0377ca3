// Package content produces the daily tip, generated missions and quick
// lessons. A Provider asks a primary Generator (Gemini) first and falls
// back to rotating static content whenever generation fails.
package content

import (
	"context"
	"errors"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// Mission reward bounds for generated missions.
const (
	MinMissionReward = 50
	MaxMissionReward = 150
)

// ErrEmptyResponse is returned when a generator produced no usable content.
var ErrEmptyResponse = errors.New("empty content response")

// MissionDraft is a generated mission before it gets an ID.
type MissionDraft struct {
	Title  string `json:"title"`
	Reward int    `json:"reward"`
	Icon   string `json:"icon"`
}

// Normalize clamps the reward to [MinMissionReward, MaxMissionReward].
// Returns ErrEmptyResponse when the title is empty.
func (d MissionDraft) Normalize() (MissionDraft, error) {
	if d.Title == "" {
		return MissionDraft{}, ErrEmptyResponse
	}
	d.Reward = min(max(d.Reward, MinMissionReward), MaxMissionReward)
	if d.Icon == "" {
		d.Icon = "✨"
	}
	return d, nil
}

// Generator produces fresh content. Every method may fail; callers are
// expected to fall back to static content.
type Generator interface {
	DailyTip(ctx context.Context) (string, error)
	MagicMission(ctx context.Context) (MissionDraft, error)
	Lesson(ctx context.Context) (types.Lesson, error)
}
