package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:00", want: "09:00"},
		{in: "9:05", want: "09:05"},
		{in: "23:59", want: "23:59"},
		{in: "24:00", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTimeOfDay) {
				t.Errorf("ParseTimeOfDay(%q) error = %v, want ErrInvalidTimeOfDay", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTransportAlternativeRunsOn(t *testing.T) {
	every := TransportAlternative{}
	if !every.RunsOn(time.Sunday) {
		t.Fatalf("empty day set should run every day")
	}

	weekdays := TransportAlternative{AvailableDays: []time.Weekday{time.Monday, time.Friday}}
	if !weekdays.RunsOn(time.Friday) {
		t.Fatalf("expected Friday to be available")
	}
	if weekdays.RunsOn(time.Sunday) {
		t.Fatalf("expected Sunday to be unavailable")
	}
}

func TestActivityOverlapsIsHalfOpen(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a := Activity{ScheduledStart: base, ScheduledEnd: base.Add(time.Hour)}

	if a.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)) {
		t.Fatalf("touching intervals must not overlap")
	}
	if a.Overlaps(base.Add(-time.Hour), base) {
		t.Fatalf("interval ending at start must not overlap")
	}
	if !a.Overlaps(base.Add(59*time.Minute), base.Add(2*time.Hour)) {
		t.Fatalf("expected overlap")
	}
}

func TestNotFoundErrorsShareClass(t *testing.T) {
	if !errors.Is(ErrActivityNotFound, ErrNotFound) {
		t.Fatalf("ErrActivityNotFound should be a not-found error")
	}
	if !errors.Is(ErrAlternativeNotFound, ErrNotFound) {
		t.Fatalf("ErrAlternativeNotFound should be a not-found error")
	}
	if ErrActivityNotFound.Error() != "activity not found" {
		t.Fatalf("unexpected message %q", ErrActivityNotFound.Error())
	}
}
