package types

import "time"

// ScenarioChoice is one answer to a decision scenario. Every choice pays
// out; better choices pay more.
type ScenarioChoice struct {
	ID          string `json:"id" yaml:"id"`
	Text        string `json:"text" yaml:"text"`
	Feedback    string `json:"feedback" yaml:"feedback"`
	IsCorrect   bool   `json:"isCorrect" yaml:"is_correct"`
	CoinsReward int    `json:"coinsReward" yaml:"coins_reward"`
	XPReward    int    `json:"xpReward" yaml:"xp_reward"`
}

// Scenario is a real-life money decision.
type Scenario struct {
	ID          string           `json:"id" yaml:"id"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description" yaml:"description"`
	Icon        string           `json:"icon" yaml:"icon"`
	Category    string           `json:"category" yaml:"category"`
	Choices     []ScenarioChoice `json:"choices" yaml:"choices"`
	Completed   bool             `json:"completed" yaml:"completed"`
	CompletedAt *time.Time       `json:"completedAt,omitempty" yaml:"completed_at,omitempty"`
}

// Choice returns the choice with the given ID.
// Returns ErrInvalidChoice if the scenario has no such choice.
func (s Scenario) Choice(id string) (ScenarioChoice, error) {
	for _, c := range s.Choices {
		if c.ID == id {
			return c, nil
		}
	}
	return ScenarioChoice{}, ErrInvalidChoice
}

// Complete marks the scenario completed. Completing twice keeps the first
// timestamp.
func (s *Scenario) Complete(at time.Time) {
	if s.Completed {
		return
	}
	s.Completed = true
	s.CompletedAt = &at
}
