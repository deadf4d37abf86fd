package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

type PlannerRepository struct {
	querier
}

func NewPlannerRepository(pool *pgxpool.Pool) *PlannerRepository {
	return &PlannerRepository{querier{pool: pool}}
}

func (r *PlannerRepository) CreateActivity(ctx context.Context, a domain.Activity) error {
	const stmt = `
INSERT INTO activities (id, day_id, name, scheduled_start, scheduled_end, is_flexible, latitude, longitude, version)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.exec(ctx, stmt,
		a.ID,
		a.DayID,
		a.Name,
		a.ScheduledStart,
		a.ScheduledEnd,
		a.IsFlexible,
		a.Latitude,
		a.Longitude,
		a.Version,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidSchedule
		}
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

func (r *PlannerRepository) GetActivity(ctx context.Context, id string) (domain.Activity, error) {
	return getActivity(ctx, r.querier, id, false)
}

func (r *PlannerRepository) ListActivitiesByDay(ctx context.Context, dayID string) ([]domain.Activity, error) {
	const query = `
SELECT ` + activityColumns + `
FROM activities
WHERE day_id = $1
ORDER BY scheduled_start, id`

	rows, err := r.query(ctx, query, dayID)
	if err != nil {
		return nil, listError(err, "list activities by day")
	}
	return collectActivities(rows, "list activities by day")
}

func (r *PlannerRepository) CreateAlternative(ctx context.Context, alt domain.TransportAlternative) error {
	const stmt = `
INSERT INTO transport_alternatives (
	id, from_activity_id, to_activity_id, mode, duration_minutes, buffer_minutes,
	distance_meters, available_from, available_to, available_days, is_selected
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.exec(ctx, stmt,
		alt.ID,
		alt.FromActivityID,
		alt.ToActivityID,
		string(alt.Mode),
		alt.DurationMinutes,
		alt.BufferMinutes,
		alt.DistanceMeters,
		alt.AvailableFrom,
		alt.AvailableTo,
		weekdaysToInts(alt.AvailableDays),
		alt.IsSelected,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrActivityNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrSelectionConflict
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidDuration
		}
		return fmt.Errorf("create transport alternative: %w", err)
	}
	return nil
}
