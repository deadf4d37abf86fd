package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is the class shared by every missing-record error.
var ErrNotFound = errors.New("not found")

var (
	ErrActivityNotFound    = fmt.Errorf("activity %w", ErrNotFound)
	ErrAlternativeNotFound = fmt.Errorf("transport alternative %w", ErrNotFound)
	ErrInvalidID           = errors.New("invalid id")

	ErrActivityNameRequired = errors.New("activity name required")
	ErrInvalidSchedule      = errors.New("scheduled start must not be after scheduled end")
	ErrInvalidDuration      = errors.New("duration and buffer minutes must not be negative")
	ErrInvalidTimeOfDay     = errors.New("time of day must be HH:MM")
	ErrInvalidWeekday       = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidMode          = errors.New("invalid transport mode")
	ErrSameEndpoints        = errors.New("transport alternative must connect two different activities")

	ErrDuplicateUpdate   = errors.New("activity appears more than once in update batch")
	ErrStaleSchedule     = errors.New("activity changed since the preview was computed")
	ErrFixedActivity     = errors.New("fixed activities cannot be rescheduled")
	ErrSelectionConflict = errors.New("another alternative is already selected for this segment")
	ErrCommitFailed      = errors.New("schedule commit failed")

	ErrNoRoute         = errors.New("no route found")
	ErrEstimateTimeout = errors.New("route estimate timed out")
	ErrRateLimited     = errors.New("route estimate rate limited")
)
