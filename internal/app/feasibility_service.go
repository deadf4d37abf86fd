package app

import (
	"context"
	"fmt"
	"log"
	"math"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
	"github.com/jricardo27/trip-explorer2-sub002/internal/obs"
)

type FeasibilityRepository interface {
	SegmentReader
	ListActivitiesStartingAfter(ctx context.Context, dayID string, after time.Time) ([]domain.Activity, error)
	ListAlternativesBySegment(ctx context.Context, fromActivityID, toActivityID string) ([]domain.TransportAlternative, error)
}

type FeasibilityService struct {
	repo        FeasibilityRepository
	loc         *time.Location
	concurrency int
}

const defaultValidationConcurrency = 4

func NewFeasibilityService(repo FeasibilityRepository, opts ...FeasibilityServiceOption) *FeasibilityService {
	svc := &FeasibilityService{
		repo:        repo,
		loc:         time.UTC,
		concurrency: defaultValidationConcurrency,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type FeasibilityServiceOption func(*FeasibilityService)

// WithLocation sets the zone in which service windows and weekdays are evaluated.
func WithLocation(loc *time.Location) FeasibilityServiceOption {
	return func(s *FeasibilityService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithConcurrency bounds how many alternatives ValidateSegment checks at once.
func WithConcurrency(n int) FeasibilityServiceOption {
	return func(s *FeasibilityService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// Validate decides whether selecting the alternative keeps the day consistent.
// Only a missing or malformed id is returned as an error; every other failure
// is folded into an infeasible result of kind validation_error.
func (s *FeasibilityService) Validate(ctx context.Context, alternativeID string) (_ domain.ValidationResult, err error) {
	defer obs.Time(ctx, "feasibility.Validate")(&err)

	seg, err := loadSegment(ctx, s.repo, alternativeID)
	if err != nil {
		if isNotFound(err) {
			return domain.ValidationResult{}, err
		}
		return validationFailure(alternativeID, err), nil
	}

	result, err := s.check(ctx, seg)
	if err != nil {
		return validationFailure(alternativeID, err), nil
	}
	return result, nil
}

// ValidateSegment validates every alternative between two activities,
// in repository order.
func (s *FeasibilityService) ValidateSegment(ctx context.Context, fromActivityID, toActivityID string) (_ []domain.ValidationResult, err error) {
	defer obs.Time(ctx, "feasibility.ValidateSegment")(&err)

	if _, err := s.repo.GetActivity(ctx, fromActivityID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetActivity(ctx, toActivityID); err != nil {
		return nil, err
	}
	alts, err := s.repo.ListAlternativesBySegment(ctx, fromActivityID, toActivityID)
	if err != nil {
		return nil, fmt.Errorf("list alternatives: %w", err)
	}

	results := make([]domain.ValidationResult, len(alts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, alt := range alts {
		g.Go(func() error {
			res, err := s.Validate(gctx, alt.ID)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *FeasibilityService) check(ctx context.Context, seg segment) (domain.ValidationResult, error) {
	arrival := seg.arrival()
	result := domain.ValidationResult{
		AlternativeID: seg.alt.ID,
		ArrivalTime:   &arrival,
		Conflicts:     []string{},
	}

	if arrival.After(seg.to.ScheduledStart) {
		late := arrival.Sub(seg.to.ScheduledStart)
		result.Failure = &domain.Infeasibility{
			Kind:        domain.InfeasibleLateArrival,
			LateMinutes: int(math.Ceil(late.Minutes())),
		}
		return result, nil
	}

	failure, err := checkServiceWindow(seg.alt, domain.FormatTimeOfDay(seg.departure(), s.loc))
	if err != nil {
		return domain.ValidationResult{}, err
	}
	if failure != nil {
		result.Failure = failure
		return result, nil
	}

	weekday := seg.departure().In(s.loc).Weekday()
	if !seg.alt.RunsOn(weekday) {
		result.Failure = &domain.Infeasibility{
			Kind:    domain.InfeasibleUnavailableDay,
			Weekday: weekday,
		}
		return result, nil
	}

	later, err := s.repo.ListActivitiesStartingAfter(ctx, seg.to.DayID, seg.to.ScheduledStart)
	if err != nil {
		return domain.ValidationResult{}, fmt.Errorf("list downstream activities: %w", err)
	}
	result.Conflicts = downstreamConflicts(arrival, later)
	if len(result.Conflicts) > 0 {
		result.Failure = &domain.Infeasibility{
			Kind:          domain.InfeasibleDownstreamConflict,
			ConflictCount: len(result.Conflicts),
		}
		return result, nil
	}

	result.IsFeasible = true
	return result, nil
}

// downstreamConflicts walks the day in start order from arrival and reports
// every activity that starts before the running end of the chain. The cursor
// always advances to the activity's end, flexible or not.
func downstreamConflicts(arrival time.Time, later []domain.Activity) []string {
	sorted := slices.Clone(later)
	slices.SortStableFunc(sorted, func(a, b domain.Activity) int {
		return a.ScheduledStart.Compare(b.ScheduledStart)
	})

	conflicts := []string{}
	cursor := arrival
	for _, a := range sorted {
		if a.ScheduledStart.Before(cursor) {
			conflicts = append(conflicts, a.ID)
		}
		cursor = a.ScheduledEnd
	}
	return conflicts
}

// checkServiceWindow tests an HH:MM departure against the half-open window
// [from, to). A window with from after to wraps past midnight.
func checkServiceWindow(alt domain.TransportAlternative, departure string) (*domain.Infeasibility, error) {
	var from, to string
	if alt.AvailableFrom != nil {
		v, err := domain.ParseTimeOfDay(*alt.AvailableFrom)
		if err != nil {
			return nil, err
		}
		from = v
	}
	if alt.AvailableTo != nil {
		v, err := domain.ParseTimeOfDay(*alt.AvailableTo)
		if err != nil {
			return nil, err
		}
		to = v
	}

	before := &domain.Infeasibility{Kind: domain.InfeasibleOutsideServiceWindow, Boundary: domain.WindowBefore, BoundaryTime: from}
	after := &domain.Infeasibility{Kind: domain.InfeasibleOutsideServiceWindow, Boundary: domain.WindowAfter, BoundaryTime: to}

	if from != "" && to != "" && from > to {
		if departure >= from || departure < to {
			return nil, nil
		}
		return before, nil
	}
	if from != "" && departure < from {
		return before, nil
	}
	if to != "" && departure >= to {
		return after, nil
	}
	return nil, nil
}

func validationFailure(alternativeID string, cause error) domain.ValidationResult {
	log.Printf("feasibility: alternative %s: %v", alternativeID, cause)
	return domain.ValidationResult{
		AlternativeID: alternativeID,
		Conflicts:     []string{},
		Failure:       &domain.Infeasibility{Kind: domain.InfeasibleValidationError},
	}
}
