package http

import (
	"fmt"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

// FailureReason renders an infeasibility for display.
func FailureReason(f *domain.Infeasibility) string {
	if f == nil {
		return ""
	}
	switch f.Kind {
	case domain.InfeasibleLateArrival:
		return fmt.Sprintf("Arrives %d minutes late", f.LateMinutes)
	case domain.InfeasibleOutsideServiceWindow:
		return fmt.Sprintf("Not available %s %s", f.Boundary, f.BoundaryTime)
	case domain.InfeasibleUnavailableDay:
		return fmt.Sprintf("Not available on %s", f.Weekday)
	case domain.InfeasibleDownstreamConflict:
		return fmt.Sprintf("Would cause %d downstream conflict(s)", f.ConflictCount)
	default:
		return "Validation error"
	}
}
