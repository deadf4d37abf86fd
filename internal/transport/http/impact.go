package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

// ImpactCalculator is the minimal interface needed to preview a selection.
type ImpactCalculator interface {
	CalculateImpact(ctx context.Context, alternativeID string) (domain.UpdatePreview, error)
}

// HandleCalculateImpact returns an HTTP handler for GET /transport-alternatives/{id}/impact.
func HandleCalculateImpact(svc ImpactCalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		preview, err := svc.CalculateImpact(r.Context(), r.PathValue("id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		affected := make([]scheduleUpdateDTO, 0, len(preview.AffectedActivities))
		for _, u := range preview.AffectedActivities {
			affected = append(affected, scheduleUpdateDTO{
				ActivityID: u.ActivityID,
				OldStart:   u.OldStart,
				OldEnd:     u.OldEnd,
				NewStart:   u.NewStart,
				NewEnd:     u.NewEnd,
				Version:    u.Version,
			})
		}
		conflicts := preview.Conflicts
		if conflicts == nil {
			conflicts = []string{}
		}

		writeJSON(w, http.StatusOK, impactResponse{
			AlternativeID:      preview.AlternativeID,
			AffectedActivities: affected,
			Conflicts:          conflicts,
			TotalShiftMinutes:  preview.TotalShiftMinutes,
			ComputedAt:         preview.ComputedAt,
		})
	}
}

// scheduleUpdateDTO is shared by the impact response and the commit requests,
// so a client can post back what it was shown.
type scheduleUpdateDTO struct {
	ActivityID string    `json:"activity_id" validate:"required"`
	OldStart   time.Time `json:"old_start"`
	OldEnd     time.Time `json:"old_end"`
	NewStart   time.Time `json:"new_start" validate:"required"`
	NewEnd     time.Time `json:"new_end" validate:"required"`
	Version    int64     `json:"version" validate:"gte=1"`
}

func (u scheduleUpdateDTO) toDomain() domain.ScheduleUpdate {
	return domain.ScheduleUpdate{
		ActivityID: u.ActivityID,
		OldStart:   u.OldStart,
		OldEnd:     u.OldEnd,
		NewStart:   u.NewStart,
		NewEnd:     u.NewEnd,
		Version:    u.Version,
	}
}

type impactResponse struct {
	AlternativeID      string              `json:"alternative_id"`
	AffectedActivities []scheduleUpdateDTO `json:"affected_activities"`
	Conflicts          []string            `json:"conflicts"`
	TotalShiftMinutes  int                 `json:"total_shift_minutes"`
	ComputedAt         time.Time           `json:"computed_at"`
}
