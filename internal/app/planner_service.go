package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
	"github.com/jricardo27/trip-explorer2-sub002/internal/obs"
)

type PlannerRepository interface {
	CreateActivity(ctx context.Context, activity domain.Activity) error
	GetActivity(ctx context.Context, id string) (domain.Activity, error)
	ListActivitiesByDay(ctx context.Context, dayID string) ([]domain.Activity, error)
	CreateAlternative(ctx context.Context, alt domain.TransportAlternative) error
}

// RouteEstimate is what a routing provider returns for one leg.
type RouteEstimate struct {
	DurationMinutes int
	DistanceMeters  int
}

// RouteEstimator fills in travel time for alternatives created without one.
// Implementations fail with domain.ErrNoRoute, domain.ErrEstimateTimeout or
// domain.ErrRateLimited.
type RouteEstimator interface {
	Estimate(ctx context.Context, mode domain.TransportMode, origin, destination domain.Coordinates) (RouteEstimate, error)
}

type PlannerService struct {
	repo      PlannerRepository
	estimator RouteEstimator
}

// NewPlannerService wires the planner. estimator may be nil, in which case
// alternatives must always carry a duration.
func NewPlannerService(repo PlannerRepository, estimator RouteEstimator) *PlannerService {
	return &PlannerService{repo: repo, estimator: estimator}
}

type CreateActivityInput struct {
	DayID          string
	Name           string
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	IsFlexible     bool
	Latitude       *float64
	Longitude      *float64
}

func (s *PlannerService) CreateActivity(ctx context.Context, in CreateActivityInput) (domain.Activity, error) {
	if in.DayID == "" {
		return domain.Activity{}, domain.ErrInvalidID
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Activity{}, domain.ErrActivityNameRequired
	}
	if in.ScheduledStart.After(in.ScheduledEnd) {
		return domain.Activity{}, domain.ErrInvalidSchedule
	}

	activity := domain.Activity{
		ID:             newUUID(),
		DayID:          in.DayID,
		Name:           name,
		ScheduledStart: in.ScheduledStart.UTC(),
		ScheduledEnd:   in.ScheduledEnd.UTC(),
		IsFlexible:     in.IsFlexible,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Version:        1,
	}
	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		return domain.Activity{}, err
	}
	return activity, nil
}

// ListDayActivities returns the day's activities ordered by start.
func (s *PlannerService) ListDayActivities(ctx context.Context, dayID string) ([]domain.Activity, error) {
	if dayID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListActivitiesByDay(ctx, dayID)
}

type CreateAlternativeInput struct {
	FromActivityID string
	ToActivityID   string
	Mode           domain.TransportMode
	// DurationMinutes nil asks the route estimator.
	DurationMinutes *int
	BufferMinutes   int
	DistanceMeters  *int
	AvailableFrom   *string
	AvailableTo     *string
	AvailableDays   []int
}

func (s *PlannerService) CreateAlternative(ctx context.Context, in CreateAlternativeInput) (_ domain.TransportAlternative, err error) {
	defer obs.Time(ctx, "planner.CreateAlternative")(&err)

	if in.FromActivityID == "" || in.ToActivityID == "" {
		return domain.TransportAlternative{}, domain.ErrInvalidID
	}
	if in.FromActivityID == in.ToActivityID {
		return domain.TransportAlternative{}, domain.ErrSameEndpoints
	}
	mode := in.Mode
	if mode == "" {
		mode = domain.TransportModeOther
	}
	if !mode.Valid() {
		return domain.TransportAlternative{}, domain.ErrInvalidMode
	}
	if in.BufferMinutes < 0 || (in.DurationMinutes != nil && *in.DurationMinutes < 0) {
		return domain.TransportAlternative{}, domain.ErrInvalidDuration
	}

	availableFrom, err := normalizeTimeOfDay(in.AvailableFrom)
	if err != nil {
		return domain.TransportAlternative{}, err
	}
	availableTo, err := normalizeTimeOfDay(in.AvailableTo)
	if err != nil {
		return domain.TransportAlternative{}, err
	}
	days, err := normalizeWeekdays(in.AvailableDays)
	if err != nil {
		return domain.TransportAlternative{}, err
	}

	from, err := s.repo.GetActivity(ctx, in.FromActivityID)
	if err != nil {
		return domain.TransportAlternative{}, err
	}
	to, err := s.repo.GetActivity(ctx, in.ToActivityID)
	if err != nil {
		return domain.TransportAlternative{}, err
	}

	alt := domain.TransportAlternative{
		ID:             newUUID(),
		FromActivityID: from.ID,
		ToActivityID:   to.ID,
		Mode:           mode,
		BufferMinutes:  in.BufferMinutes,
		DistanceMeters: in.DistanceMeters,
		AvailableFrom:  availableFrom,
		AvailableTo:    availableTo,
		AvailableDays:  days,
	}

	if in.DurationMinutes != nil {
		alt.DurationMinutes = *in.DurationMinutes
	} else {
		est, err := s.estimate(ctx, mode, from, to)
		if err != nil {
			return domain.TransportAlternative{}, err
		}
		alt.DurationMinutes = est.DurationMinutes
		if alt.DistanceMeters == nil {
			distance := est.DistanceMeters
			alt.DistanceMeters = &distance
		}
	}

	if err := s.repo.CreateAlternative(ctx, alt); err != nil {
		return domain.TransportAlternative{}, err
	}
	return alt, nil
}

func (s *PlannerService) estimate(ctx context.Context, mode domain.TransportMode, from, to domain.Activity) (RouteEstimate, error) {
	if s.estimator == nil {
		return RouteEstimate{}, domain.ErrNoRoute
	}
	origin, ok := from.Coordinates()
	if !ok {
		return RouteEstimate{}, fmt.Errorf("%w: activity %s has no coordinates", domain.ErrNoRoute, from.ID)
	}
	destination, ok := to.Coordinates()
	if !ok {
		return RouteEstimate{}, fmt.Errorf("%w: activity %s has no coordinates", domain.ErrNoRoute, to.ID)
	}
	return s.estimator.Estimate(ctx, mode, origin, destination)
}

func normalizeTimeOfDay(v *string) (*string, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	parsed, err := domain.ParseTimeOfDay(*v)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func normalizeWeekdays(days []int) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, domain.ErrInvalidWeekday
		}
		out = append(out, time.Weekday(d))
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
