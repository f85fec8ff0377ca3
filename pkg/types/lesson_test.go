package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonValidate(t *testing.T) {
	opts := []string{"a", "b", "c"}
	tests := []struct {
		name    string
		lesson  Lesson
		wantErr bool
	}{
		{name: "valid", lesson: Lesson{Question: "q", Options: opts, CorrectIndex: 2}},
		{name: "missing question", lesson: Lesson{Options: opts}, wantErr: true},
		{name: "two options", lesson: Lesson{Question: "q", Options: opts[:2]}, wantErr: true},
		{name: "index out of range", lesson: Lesson{Question: "q", Options: opts, CorrectIndex: 3}, wantErr: true},
		{name: "negative index", lesson: Lesson{Question: "q", Options: opts, CorrectIndex: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lesson.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLesson)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestInteractiveLessonQuizLesson(t *testing.T) {
	l := InteractiveLesson{
		ID:                      "interest_magic",
		RequiredKnowledgePoints: 2,
		Explain:                 Explanation{ConceptName: "Interest"},
		Quiz:                    Quiz{Question: "What is interest?", Options: []string{"x", "y", "z"}, CorrectIndex: 1},
	}

	assert.False(t, l.Unlocked(1))
	assert.True(t, l.Unlocked(2))

	q := l.QuizLesson()
	require.NoError(t, q.Validate())
	assert.Equal(t, "Interest", q.Concept)
	assert.True(t, q.IsCorrect(1))
	assert.False(t, q.IsCorrect(0))

	q.Options[0] = "changed"
	assert.Equal(t, "x", l.Quiz.Options[0])
}

func TestScenarioChoiceAndComplete(t *testing.T) {
	at := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	s := &Scenario{ID: "birthday_money", Choices: []ScenarioChoice{
		{ID: "save_half_spend_half", CoinsReward: 30, XPReward: 25, IsCorrect: true},
	}}

	c, err := s.Choice("save_half_spend_half")
	require.NoError(t, err)
	assert.Equal(t, 30, c.CoinsReward)

	_, err = s.Choice("nope")
	assert.ErrorIs(t, err, ErrInvalidChoice)

	s.Complete(at)
	s.Complete(at.Add(time.Hour))
	assert.True(t, s.Completed)
	assert.Equal(t, at, *s.CompletedAt)
}
