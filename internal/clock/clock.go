package clock

import "time"

// Clock is the source of "now" for services that stamp previews and commits.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

// NewSystem returns the wall clock.
func NewSystem() Clock {
	return System{}
}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

// NewFixed returns a clock frozen at t, for tests.
func NewFixed(t time.Time) Clock {
	return Fixed{At: t.UTC()}
}

func (f Fixed) Now() time.Time {
	return f.At
}
