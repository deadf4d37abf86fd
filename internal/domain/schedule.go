package domain

import "time"

// ScheduleUpdate moves one activity to a new interval.
// Version is the activity version the update was computed against.
type ScheduleUpdate struct {
	ActivityID string
	OldStart   time.Time
	OldEnd     time.Time
	NewStart   time.Time
	NewEnd     time.Time
	Version    int64
}

// UpdatePreview describes a schedule change that has not been applied yet.
type UpdatePreview struct {
	AlternativeID      string
	AffectedActivities []ScheduleUpdate
	// Conflicts may repeat an id when several shifted activities hit the same fixed one.
	Conflicts         []string
	TotalShiftMinutes int
	ComputedAt        time.Time
}

// CommitResult reports an applied selection.
type CommitResult struct {
	AlternativeID string
	AppliedCount  int
	CommittedAt   time.Time
}
