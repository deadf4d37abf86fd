package domain

import "time"

// InfeasibilityKind enumerates why selecting an alternative is not possible.
type InfeasibilityKind string

const (
	InfeasibleLateArrival          InfeasibilityKind = "late_arrival"
	InfeasibleOutsideServiceWindow InfeasibilityKind = "outside_service_window"
	InfeasibleUnavailableDay       InfeasibilityKind = "unavailable_day"
	InfeasibleDownstreamConflict   InfeasibilityKind = "downstream_conflict"
	InfeasibleValidationError      InfeasibilityKind = "validation_error"
)

type WindowBoundary string

const (
	WindowBefore WindowBoundary = "before"
	WindowAfter  WindowBoundary = "after"
)

// Infeasibility carries the parameters of a failed feasibility check.
// Only the fields relevant to Kind are set.
type Infeasibility struct {
	Kind          InfeasibilityKind
	LateMinutes   int
	Boundary      WindowBoundary
	BoundaryTime  string
	Weekday       time.Weekday
	ConflictCount int
}

// ValidationResult is the outcome of checking one transport alternative.
type ValidationResult struct {
	AlternativeID string
	IsFeasible    bool
	ArrivalTime   *time.Time
	Failure       *Infeasibility
	Conflicts     []string
}
