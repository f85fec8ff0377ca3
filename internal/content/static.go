package content

import (
	"github.com/mesh-intelligence/save4dream/internal/catalog"
	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// Rotation tracks the next static item of each kind. It is session state
// and is persisted with the session.
type Rotation struct {
	Tip     int `json:"tip"`
	Mission int `json:"mission"`
	Lesson  int `json:"lesson"`
}

// next returns *i modulo n and advances *i.
func next(i *int, n int) int {
	k := ((*i % n) + n) % n
	*i = k + 1
	return k
}

// Static serves fallback content in rotation.
type Static struct {
	fb catalog.Fallback
}

// NewStatic creates a Static over fb. fb must have at least one item of
// each kind; catalog validation guarantees this for loaded catalogs.
func NewStatic(fb catalog.Fallback) Static {
	return Static{fb: fb}
}

// Tip returns the next tip and advances rot.
func (s Static) Tip(rot *Rotation) string {
	return s.fb.Tips[next(&rot.Tip, len(s.fb.Tips))]
}

// Mission returns the next mission and advances rot.
func (s Static) Mission(rot *Rotation) MissionDraft {
	m := s.fb.Missions[next(&rot.Mission, len(s.fb.Missions))]
	return MissionDraft{Title: m.Title, Reward: m.Reward, Icon: m.Icon}
}

// Lesson returns the next lesson and advances rot.
func (s Static) Lesson(rot *Rotation) types.Lesson {
	l := s.fb.Lessons[next(&rot.Lesson, len(s.fb.Lessons))]
	l.Options = append([]string(nil), l.Options...)
	return l
}
