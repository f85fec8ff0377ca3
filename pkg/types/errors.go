package types

import "errors"

// Entity method errors.
var (
	ErrInvalidState        = errors.New("invalid state value")
	ErrInvalidTransition   = errors.New("invalid state transition")
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidStats        = errors.New("invalid stats")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidLesson       = errors.New("invalid lesson")
	ErrUnknownMetric       = errors.New("unknown metric")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidChoice       = errors.New("invalid choice")
	ErrSelectionIncomplete = errors.New("goal selection requirements not met")
	ErrInvalidSelection    = errors.New("invalid goal selection")
)
