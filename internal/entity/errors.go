package entity

import "errors"

// Configuration errors. The engine assumes validated inputs; these are
// raised at the boundary before a run starts.
var (
	ErrEmptyCalendar      = errors.New("no study days inside the given range")
	ErrNonPositiveBudget  = errors.New("daily minute budget must be positive")
	ErrNonPositiveDays    = errors.New("study days per week must be positive")
	ErrEndBeforeStart     = errors.New("end date precedes start date")
	ErrInvalidWeekday     = errors.New("weekday values must be in 0..6")
	ErrUnknownExamType    = errors.New("exam type not present in module sheet")
	ErrEmptyBacklog       = errors.New("no lessons left after exam type filtering")
	ErrMissingColumn      = errors.New("required column missing")
	ErrNoReviewOffsets    = errors.New("review offsets must be positive")
	ErrHistoryUnavailable = errors.New("plan history storage not configured")
)
