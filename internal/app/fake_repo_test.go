package app

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

var errStoreDown = errors.New("store down")

// fakeRepo keeps activities and alternatives in memory. WithTx snapshots both
// maps and restores them when fn fails.
type fakeRepo struct {
	mu           sync.Mutex
	activities   map[string]domain.Activity
	alternatives map[string]domain.TransportAlternative
	altOrder     []string

	// failUpdateAt makes the nth UpdateActivitySchedule call (1-based) fail.
	failUpdateAt int
	updateCalls  int
	listErr      error
}

func newFakeRepo(activities []domain.Activity, alts []domain.TransportAlternative) *fakeRepo {
	f := &fakeRepo{
		activities:   make(map[string]domain.Activity),
		alternatives: make(map[string]domain.TransportAlternative),
	}
	for _, a := range activities {
		f.activities[a.ID] = a
	}
	for _, alt := range alts {
		f.alternatives[alt.ID] = alt
		f.altOrder = append(f.altOrder, alt.ID)
	}
	return f
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	activities := maps.Clone(f.activities)
	alternatives := maps.Clone(f.alternatives)
	f.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.mu.Lock()
		f.activities = activities
		f.alternatives = alternatives
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeRepo) GetActivity(_ context.Context, id string) (domain.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.activities[id]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	return a, nil
}

func (f *fakeRepo) GetActivityForUpdate(ctx context.Context, id string) (domain.Activity, error) {
	return f.GetActivity(ctx, id)
}

func (f *fakeRepo) GetAlternative(_ context.Context, id string) (domain.TransportAlternative, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	alt, ok := f.alternatives[id]
	if !ok {
		return domain.TransportAlternative{}, domain.ErrAlternativeNotFound
	}
	return alt, nil
}

func (f *fakeRepo) GetAlternativeForUpdate(ctx context.Context, id string) (domain.TransportAlternative, error) {
	return f.GetAlternative(ctx, id)
}

func (f *fakeRepo) ListActivitiesStartingAfter(_ context.Context, dayID string, after time.Time) ([]domain.Activity, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.filter(func(a domain.Activity) bool {
		return a.DayID == dayID && a.ScheduledStart.After(after)
	}), nil
}

func (f *fakeRepo) ListFlexibleActivitiesFrom(_ context.Context, dayID string, from time.Time) ([]domain.Activity, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.filter(func(a domain.Activity) bool {
		return a.DayID == dayID && a.IsFlexible && !a.ScheduledStart.Before(from)
	}), nil
}

func (f *fakeRepo) FindFixedOverlaps(_ context.Context, dayID, excludeID string, start, end time.Time) ([]string, error) {
	hits := f.filter(func(a domain.Activity) bool {
		return a.DayID == dayID && a.ID != excludeID && !a.IsFlexible && a.Overlaps(start, end)
	})
	ids := make([]string, 0, len(hits))
	for _, a := range hits {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (f *fakeRepo) ListActivitiesByDay(_ context.Context, dayID string) ([]domain.Activity, error) {
	return f.filter(func(a domain.Activity) bool { return a.DayID == dayID }), nil
}

func (f *fakeRepo) ListAlternativesBySegment(_ context.Context, fromID, toID string) ([]domain.TransportAlternative, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TransportAlternative
	for _, id := range f.altOrder {
		alt := f.alternatives[id]
		if alt.FromActivityID == fromID && alt.ToActivityID == toID {
			out = append(out, alt)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateActivitySchedule(_ context.Context, id string, start, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.failUpdateAt > 0 && f.updateCalls == f.failUpdateAt {
		return errStoreDown
	}
	a, ok := f.activities[id]
	if !ok {
		return domain.ErrActivityNotFound
	}
	a.ScheduledStart, a.ScheduledEnd = start, end
	a.Version++
	f.activities[id] = a
	return nil
}

func (f *fakeRepo) DeselectSegment(_ context.Context, fromID, toID, exceptID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, alt := range f.alternatives {
		if alt.FromActivityID == fromID && alt.ToActivityID == toID && id != exceptID {
			alt.IsSelected = false
			f.alternatives[id] = alt
		}
	}
	return nil
}

func (f *fakeRepo) MarkSelected(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	alt, ok := f.alternatives[id]
	if !ok {
		return domain.ErrAlternativeNotFound
	}
	alt.IsSelected = true
	f.alternatives[id] = alt
	return nil
}

func (f *fakeRepo) CreateActivity(_ context.Context, a domain.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activities[a.ID] = a
	return nil
}

func (f *fakeRepo) CreateAlternative(_ context.Context, alt domain.TransportAlternative) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alternatives[alt.ID] = alt
	f.altOrder = append(f.altOrder, alt.ID)
	return nil
}

func (f *fakeRepo) filter(keep func(domain.Activity) bool) []domain.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Activity
	for _, a := range f.activities {
		if keep(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b domain.Activity) int {
		if c := a.ScheduledStart.Compare(b.ScheduledStart); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// day is the fixture date used across service tests (a Monday).
var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

func activity(id, start, end string, flexible bool) domain.Activity {
	return domain.Activity{
		ID:             id,
		DayID:          "day-1",
		Name:           id,
		ScheduledStart: at(start),
		ScheduledEnd:   at(end),
		IsFlexible:     flexible,
		Version:        1,
	}
}

func strPtr(s string) *string { return &s }
