package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jricardo27/trip-explorer2-sub002/internal/clock"
	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
	"github.com/jricardo27/trip-explorer2-sub002/internal/obs"
)

type ImpactRepository interface {
	SegmentReader
	ListFlexibleActivitiesFrom(ctx context.Context, dayID string, from time.Time) ([]domain.Activity, error)
	FindFixedOverlaps(ctx context.Context, dayID, excludeID string, start, end time.Time) ([]string, error)
}

type ImpactService struct {
	repo  ImpactRepository
	clock clock.Clock
}

func NewImpactService(repo ImpactRepository, clk clock.Clock) *ImpactService {
	return &ImpactService{repo: repo, clock: clk}
}

// CalculateImpact previews how selecting the alternative shifts the rest of
// the destination day. It never writes.
func (s *ImpactService) CalculateImpact(ctx context.Context, alternativeID string) (_ domain.UpdatePreview, err error) {
	defer obs.Time(ctx, "impact.CalculateImpact")(&err)

	seg, err := loadSegment(ctx, s.repo, alternativeID)
	if err != nil {
		return domain.UpdatePreview{}, err
	}

	preview := domain.UpdatePreview{
		AlternativeID:      alternativeID,
		AffectedActivities: []domain.ScheduleUpdate{},
		Conflicts:          []string{},
		ComputedAt:         s.clock.Now(),
	}

	delta := seg.arrival().Sub(seg.to.ScheduledStart)
	shift := int(math.Round(delta.Minutes()))
	if shift == 0 {
		return preview, nil
	}

	flexible, err := s.repo.ListFlexibleActivitiesFrom(ctx, seg.to.DayID, seg.to.ScheduledStart)
	if err != nil {
		return domain.UpdatePreview{}, fmt.Errorf("list flexible activities: %w", err)
	}

	for _, a := range flexible {
		if !a.IsFlexible {
			continue
		}
		update := domain.ScheduleUpdate{
			ActivityID: a.ID,
			OldStart:   a.ScheduledStart,
			OldEnd:     a.ScheduledEnd,
			NewStart:   a.ScheduledStart.Add(delta),
			NewEnd:     a.ScheduledEnd.Add(delta),
			Version:    a.Version,
		}
		preview.AffectedActivities = append(preview.AffectedActivities, update)

		hits, err := s.repo.FindFixedOverlaps(ctx, a.DayID, a.ID, update.NewStart, update.NewEnd)
		if err != nil {
			return domain.UpdatePreview{}, fmt.Errorf("find fixed overlaps: %w", err)
		}
		preview.Conflicts = append(preview.Conflicts, hits...)
	}

	preview.TotalShiftMinutes = shift
	return preview, nil
}
