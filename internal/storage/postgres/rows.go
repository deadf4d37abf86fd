package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

const activityColumns = `id, day_id, name, scheduled_start, scheduled_end, is_flexible, latitude, longitude, version`

const alternativeColumns = `id, from_activity_id, to_activity_id, mode, duration_minutes, buffer_minutes,
distance_meters, available_from, available_to, available_days, is_selected`

func scanActivity(row pgx.Row) (domain.Activity, error) {
	var a domain.Activity
	err := row.Scan(
		&a.ID,
		&a.DayID,
		&a.Name,
		&a.ScheduledStart,
		&a.ScheduledEnd,
		&a.IsFlexible,
		&a.Latitude,
		&a.Longitude,
		&a.Version,
	)
	if err != nil {
		return domain.Activity{}, err
	}
	a.ScheduledStart = a.ScheduledStart.UTC()
	a.ScheduledEnd = a.ScheduledEnd.UTC()
	return a, nil
}

func scanAlternative(row pgx.Row) (domain.TransportAlternative, error) {
	var (
		alt  domain.TransportAlternative
		mode string
		days []int32
	)
	err := row.Scan(
		&alt.ID,
		&alt.FromActivityID,
		&alt.ToActivityID,
		&mode,
		&alt.DurationMinutes,
		&alt.BufferMinutes,
		&alt.DistanceMeters,
		&alt.AvailableFrom,
		&alt.AvailableTo,
		&days,
		&alt.IsSelected,
	)
	if err != nil {
		return domain.TransportAlternative{}, err
	}
	alt.Mode = domain.TransportMode(mode)
	for _, d := range days {
		alt.AvailableDays = append(alt.AvailableDays, time.Weekday(d))
	}
	return alt, nil
}

func collectActivities(rows pgx.Rows, op string) ([]domain.Activity, error) {
	defer rows.Close()

	out := []domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func weekdaysToInts(days []time.Weekday) []int32 {
	out := make([]int32, 0, len(days))
	for _, d := range days {
		out = append(out, int32(d))
	}
	return out
}

// lookupError maps a single-row read failure to a domain error.
func lookupError(err error, notFound error, op string) error {
	if isInvalidUUID(err) {
		return domain.ErrInvalidID
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
