package domain

import (
	"fmt"
	"slices"
	"time"
)

type TransportMode string

const (
	TransportModeWalk    TransportMode = "walk"
	TransportModeBike    TransportMode = "bike"
	TransportModeDrive   TransportMode = "drive"
	TransportModeTransit TransportMode = "transit"
	TransportModeFlight  TransportMode = "flight"
	TransportModeOther   TransportMode = "other"
)

// Valid reports whether m is one of the known modes.
func (m TransportMode) Valid() bool {
	switch m {
	case TransportModeWalk, TransportModeBike, TransportModeDrive,
		TransportModeTransit, TransportModeFlight, TransportModeOther:
		return true
	}
	return false
}

// TransportAlternative is one candidate way of getting from one activity to the next.
type TransportAlternative struct {
	ID              string
	FromActivityID  string
	ToActivityID    string
	Mode            TransportMode
	DurationMinutes int
	BufferMinutes   int
	DistanceMeters  *int
	// AvailableFrom and AvailableTo bound a daily service window, formatted HH:MM.
	AvailableFrom *string
	AvailableTo   *string
	// AvailableDays empty means every day.
	AvailableDays []time.Weekday
	IsSelected    bool
}

// TravelTime is the transit time plus buffer.
func (t TransportAlternative) TravelTime() time.Duration {
	return time.Duration(t.DurationMinutes+t.BufferMinutes) * time.Minute
}

// RunsOn reports whether the alternative operates on the given weekday.
func (t TransportAlternative) RunsOn(day time.Weekday) bool {
	if len(t.AvailableDays) == 0 {
		return true
	}
	return slices.Contains(t.AvailableDays, day)
}

// ParseTimeOfDay validates an HH:MM string and returns it normalized to two-digit fields.
func ParseTimeOfDay(s string) (string, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return parsed.Format("15:04"), nil
}

// FormatTimeOfDay renders t's wall clock time in loc as HH:MM.
func FormatTimeOfDay(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("15:04")
}
