package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jricardo27/trip-explorer2-sub002/internal/clock"
	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
	"github.com/jricardo27/trip-explorer2-sub002/internal/obs"
)

type CommitRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetActivityForUpdate(ctx context.Context, id string) (domain.Activity, error)
	UpdateActivitySchedule(ctx context.Context, id string, start, end time.Time) error
	GetAlternativeForUpdate(ctx context.Context, id string) (domain.TransportAlternative, error)
	DeselectSegment(ctx context.Context, fromActivityID, toActivityID, exceptID string) error
	MarkSelected(ctx context.Context, id string) error
}

type CommitService struct {
	repo  CommitRepository
	clock clock.Clock
}

func NewCommitService(repo CommitRepository, clk clock.Clock) *CommitService {
	return &CommitService{repo: repo, clock: clk}
}

// ApplyUpdates writes a previewed batch in one transaction. Either every
// update is applied or none is.
func (s *CommitService) ApplyUpdates(ctx context.Context, updates []domain.ScheduleUpdate) (err error) {
	defer obs.Time(ctx, "commit.ApplyUpdates")(&err)

	if err := checkUpdates(updates); err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	return s.inTx(ctx, func(txCtx context.Context) error {
		return s.apply(txCtx, updates)
	})
}

// SelectAlternative applies the batch, deselects every sibling on the same
// segment and marks the alternative selected, all in one transaction.
func (s *CommitService) SelectAlternative(ctx context.Context, alternativeID string, updates []domain.ScheduleUpdate) (_ domain.CommitResult, err error) {
	defer obs.Time(ctx, "commit.SelectAlternative")(&err)

	if err := checkUpdates(updates); err != nil {
		return domain.CommitResult{}, err
	}

	err = s.inTx(ctx, func(txCtx context.Context) error {
		alt, err := s.repo.GetAlternativeForUpdate(txCtx, alternativeID)
		if err != nil {
			return err
		}
		if err := s.apply(txCtx, updates); err != nil {
			return err
		}
		if err := s.repo.DeselectSegment(txCtx, alt.FromActivityID, alt.ToActivityID, alt.ID); err != nil {
			return err
		}
		return s.repo.MarkSelected(txCtx, alt.ID)
	})
	if err != nil {
		return domain.CommitResult{}, err
	}

	return domain.CommitResult{
		AlternativeID: alternativeID,
		AppliedCount:  len(updates),
		CommittedAt:   s.clock.Now(),
	}, nil
}

func (s *CommitService) apply(ctx context.Context, updates []domain.ScheduleUpdate) error {
	// Lock rows in id order so two overlapping batches cannot deadlock.
	ordered := slices.Clone(updates)
	slices.SortFunc(ordered, func(a, b domain.ScheduleUpdate) int {
		return strings.Compare(a.ActivityID, b.ActivityID)
	})

	for _, u := range ordered {
		current, err := s.repo.GetActivityForUpdate(ctx, u.ActivityID)
		if err != nil {
			return err
		}
		if !current.IsFlexible {
			return domain.ErrFixedActivity
		}
		if current.Version != u.Version {
			return domain.ErrStaleSchedule
		}
		if err := s.repo.UpdateActivitySchedule(ctx, u.ActivityID, u.NewStart, u.NewEnd); err != nil {
			return err
		}
	}
	return nil
}

// inTx runs fn in a transaction. Domain errors pass through; anything else
// is reported as a failed commit.
func (s *CommitService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := s.repo.WithTx(ctx, fn)
	if err == nil || isCommitDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrCommitFailed, err)
}

func isCommitDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrInvalidID,
		domain.ErrStaleSchedule,
		domain.ErrFixedActivity,
		domain.ErrSelectionConflict,
		domain.ErrInvalidSchedule,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func checkUpdates(updates []domain.ScheduleUpdate) error {
	seen := make(map[string]struct{}, len(updates))
	for _, u := range updates {
		if u.ActivityID == "" {
			return domain.ErrInvalidID
		}
		if u.NewStart.After(u.NewEnd) {
			return domain.ErrInvalidSchedule
		}
		if _, ok := seen[u.ActivityID]; ok {
			return domain.ErrDuplicateUpdate
		}
		seen[u.ActivityID] = struct{}{}
	}
	return nil
}
