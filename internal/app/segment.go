package app

import (
	"context"
	"errors"
	"time"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

// SegmentReader loads an alternative and the activities it connects.
type SegmentReader interface {
	GetAlternative(ctx context.Context, id string) (domain.TransportAlternative, error)
	GetActivity(ctx context.Context, id string) (domain.Activity, error)
}

type segment struct {
	alt  domain.TransportAlternative
	from domain.Activity
	to   domain.Activity
}

func loadSegment(ctx context.Context, repo SegmentReader, alternativeID string) (segment, error) {
	alt, err := repo.GetAlternative(ctx, alternativeID)
	if err != nil {
		return segment{}, err
	}
	from, err := repo.GetActivity(ctx, alt.FromActivityID)
	if err != nil {
		return segment{}, err
	}
	to, err := repo.GetActivity(ctx, alt.ToActivityID)
	if err != nil {
		return segment{}, err
	}
	return segment{alt: alt, from: from, to: to}, nil
}

// departure is when travel starts: the end of the origin activity.
func (s segment) departure() time.Time {
	return s.from.ScheduledEnd
}

func (s segment) arrival() time.Time {
	return s.departure().Add(s.alt.TravelTime())
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidID)
}
