package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

// ScheduleRepository serves the feasibility, impact and commit services.
type ScheduleRepository struct {
	querier
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{querier{pool: pool}}
}

func (r *ScheduleRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ScheduleRepository) GetActivity(ctx context.Context, id string) (domain.Activity, error) {
	return getActivity(ctx, r.querier, id, false)
}

// GetActivityForUpdate locks the row until the surrounding transaction ends.
func (r *ScheduleRepository) GetActivityForUpdate(ctx context.Context, id string) (domain.Activity, error) {
	return getActivity(ctx, r.querier, id, true)
}

func (r *ScheduleRepository) GetAlternative(ctx context.Context, id string) (domain.TransportAlternative, error) {
	return r.getAlternative(ctx, id, false)
}

func (r *ScheduleRepository) GetAlternativeForUpdate(ctx context.Context, id string) (domain.TransportAlternative, error) {
	return r.getAlternative(ctx, id, true)
}

func (r *ScheduleRepository) getAlternative(ctx context.Context, id string, lock bool) (domain.TransportAlternative, error) {
	query := `SELECT ` + alternativeColumns + ` FROM transport_alternatives WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	alt, err := scanAlternative(r.queryRow(ctx, query, id))
	if err != nil {
		return domain.TransportAlternative{}, lookupError(err, domain.ErrAlternativeNotFound, "get transport alternative")
	}
	return alt, nil
}

// ListActivitiesStartingAfter returns the day's activities starting strictly after the given instant.
func (r *ScheduleRepository) ListActivitiesStartingAfter(ctx context.Context, dayID string, after time.Time) ([]domain.Activity, error) {
	const query = `
SELECT ` + activityColumns + `
FROM activities
WHERE day_id = $1 AND scheduled_start > $2
ORDER BY scheduled_start, id`

	rows, err := r.query(ctx, query, dayID, after)
	if err != nil {
		return nil, listError(err, "list activities starting after")
	}
	return collectActivities(rows, "list activities starting after")
}

// ListFlexibleActivitiesFrom returns the day's flexible activities starting at or after from.
func (r *ScheduleRepository) ListFlexibleActivitiesFrom(ctx context.Context, dayID string, from time.Time) ([]domain.Activity, error) {
	const query = `
SELECT ` + activityColumns + `
FROM activities
WHERE day_id = $1 AND scheduled_start >= $2 AND is_flexible
ORDER BY scheduled_start, id`

	rows, err := r.query(ctx, query, dayID, from)
	if err != nil {
		return nil, listError(err, "list flexible activities")
	}
	return collectActivities(rows, "list flexible activities")
}

// FindFixedOverlaps returns fixed activities of the day, other than excludeID,
// whose interval intersects [start, end).
func (r *ScheduleRepository) FindFixedOverlaps(ctx context.Context, dayID, excludeID string, start, end time.Time) ([]string, error) {
	const query = `
SELECT id
FROM activities
WHERE day_id = $1
  AND id <> $2
  AND NOT is_flexible
  AND scheduled_start < $4
  AND scheduled_end > $3
ORDER BY scheduled_start, id`

	rows, err := r.query(ctx, query, dayID, excludeID, start, end)
	if err != nil {
		return nil, listError(err, "find fixed overlaps")
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("find fixed overlaps: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, listError(err, "find fixed overlaps")
	}
	return ids, nil
}

func (r *ScheduleRepository) ListAlternativesBySegment(ctx context.Context, fromActivityID, toActivityID string) ([]domain.TransportAlternative, error) {
	const query = `
SELECT ` + alternativeColumns + `
FROM transport_alternatives
WHERE from_activity_id = $1 AND to_activity_id = $2
ORDER BY created_at, id`

	rows, err := r.query(ctx, query, fromActivityID, toActivityID)
	if err != nil {
		return nil, listError(err, "list alternatives by segment")
	}
	defer rows.Close()

	alts := []domain.TransportAlternative{}
	for rows.Next() {
		alt, err := scanAlternative(rows)
		if err != nil {
			return nil, fmt.Errorf("list alternatives by segment: scan: %w", err)
		}
		alts = append(alts, alt)
	}
	if err := rows.Err(); err != nil {
		return nil, listError(err, "list alternatives by segment")
	}
	return alts, nil
}

// UpdateActivitySchedule moves an activity and bumps its version.
func (r *ScheduleRepository) UpdateActivitySchedule(ctx context.Context, id string, start, end time.Time) error {
	const stmt = `
UPDATE activities
SET scheduled_start = $2, scheduled_end = $3, version = version + 1, updated_at = NOW()
WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id, start, end)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidSchedule
		}
		return fmt.Errorf("update activity schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

// DeselectSegment clears is_selected on every alternative of the segment except exceptID.
func (r *ScheduleRepository) DeselectSegment(ctx context.Context, fromActivityID, toActivityID, exceptID string) error {
	const stmt = `
UPDATE transport_alternatives
SET is_selected = FALSE, updated_at = NOW()
WHERE from_activity_id = $1 AND to_activity_id = $2 AND id <> $3 AND is_selected`

	if _, err := r.exec(ctx, stmt, fromActivityID, toActivityID, exceptID); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("deselect segment: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) MarkSelected(ctx context.Context, id string) error {
	const stmt = `UPDATE transport_alternatives SET is_selected = TRUE, updated_at = NOW() WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isUniqueViolation(err) {
			return domain.ErrSelectionConflict
		}
		return fmt.Errorf("mark alternative selected: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlternativeNotFound
	}
	return nil
}

func getActivity(ctx context.Context, q querier, id string, lock bool) (domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	a, err := scanActivity(q.queryRow(ctx, query, id))
	if err != nil {
		return domain.Activity{}, lookupError(err, domain.ErrActivityNotFound, "get activity")
	}
	return a, nil
}

func listError(err error, op string) error {
	if isInvalidUUID(err) {
		return domain.ErrInvalidID
	}
	return fmt.Errorf("%s: %w", op, err)
}
