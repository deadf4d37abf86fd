package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

// ScheduleCommitter is the minimal interface needed for the commit endpoints.
type ScheduleCommitter interface {
	ApplyUpdates(ctx context.Context, updates []domain.ScheduleUpdate) error
	SelectAlternative(ctx context.Context, alternativeID string, updates []domain.ScheduleUpdate) (domain.CommitResult, error)
}

// HandleApplyUpdates returns an HTTP handler for POST /schedule/apply.
func HandleApplyUpdates(svc ScheduleCommitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applyUpdatesRequest
		if !decodeBody(w, r, &req, false) {
			return
		}
		if err := svc.ApplyUpdates(r.Context(), req.updates()); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleSelectAlternative returns an HTTP handler for POST /transport-alternatives/{id}/select.
// The body is optional; without it the selection changes no activity times.
func HandleSelectAlternative(svc ScheduleCommitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applyUpdatesRequest
		if !decodeBody(w, r, &req, true) {
			return
		}
		res, err := svc.SelectAlternative(r.Context(), r.PathValue("id"), req.updates())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, selectResponse{
			AlternativeID: res.AlternativeID,
			AppliedCount:  res.AppliedCount,
			CommittedAt:   res.CommittedAt,
		})
	}
}

type applyUpdatesRequest struct {
	Updates []scheduleUpdateDTO `json:"updates" validate:"dive"`
}

func (r applyUpdatesRequest) updates() []domain.ScheduleUpdate {
	out := make([]domain.ScheduleUpdate, 0, len(r.Updates))
	for _, u := range r.Updates {
		out = append(out, u.toDomain())
	}
	return out
}

type selectResponse struct {
	AlternativeID string    `json:"alternative_id"`
	AppliedCount  int       `json:"applied_count"`
	CommittedAt   time.Time `json:"committed_at"`
}
