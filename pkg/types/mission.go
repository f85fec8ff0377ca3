package types

// MissionStatus is the lifecycle state of a mission.
type MissionStatus string

// Mission states. A mission moves from pending to completed exactly once.
const (
	MissionPending   MissionStatus = "pending"
	MissionCompleted MissionStatus = "completed"
)

// MissionXP is the experience granted for completing any mission.
const MissionXP = 25

// Mission is a real-world task that pays coins when completed.
type Mission struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Reward      int           `json:"reward" yaml:"reward"`
	Icon        string        `json:"icon" yaml:"icon"`
	Status      MissionStatus `json:"status" yaml:"status"`
	AIGenerated bool          `json:"isAiGenerated,omitempty" yaml:"ai_generated,omitempty"`
}

// Completed reports whether the mission has been completed.
func (m Mission) Completed() bool {
	return m.Status == MissionCompleted
}

// Complete moves the mission from pending to completed.
// Returns ErrInvalidTransition if it is already completed and
// ErrInvalidState if the status is not recognized.
func (m *Mission) Complete() error {
	switch m.Status {
	case MissionPending, "":
		m.Status = MissionCompleted
		return nil
	case MissionCompleted:
		return ErrInvalidTransition
	default:
		return ErrInvalidState
	}
}

// MaxDailyTasks caps how many missions can be generated per calendar day.
const MaxDailyTasks = 3

// DailyTasks counts generated missions for one calendar day.
type DailyTasks struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ForDay returns the counter for day (formatted YYYY-MM-DD), resetting it
// when day differs from the recorded date.
func (d DailyTasks) ForDay(day string) DailyTasks {
	if d.Date != day {
		return DailyTasks{Date: day}
	}
	return d
}

// Remaining returns how many generations are left today.
func (d DailyTasks) Remaining() int {
	return max(0, MaxDailyTasks-d.Count)
}
