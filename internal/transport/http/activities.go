package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jricardo27/trip-explorer2-sub002/internal/app"
	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

// ActivityPlanner is the minimal interface needed for the day activity endpoints.
type ActivityPlanner interface {
	CreateActivity(ctx context.Context, in app.CreateActivityInput) (domain.Activity, error)
	ListDayActivities(ctx context.Context, dayID string) ([]domain.Activity, error)
}

// HandleCreateActivity returns an HTTP handler for POST /days/{dayID}/activities.
func HandleCreateActivity(svc ActivityPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createActivityRequest
		if !decodeBody(w, r, &req, false) {
			return
		}

		flexible := true
		if req.IsFlexible != nil {
			flexible = *req.IsFlexible
		}

		activity, err := svc.CreateActivity(r.Context(), app.CreateActivityInput{
			DayID:          r.PathValue("dayID"),
			Name:           req.Name,
			ScheduledStart: req.ScheduledStart,
			ScheduledEnd:   req.ScheduledEnd,
			IsFlexible:     flexible,
			Latitude:       req.Latitude,
			Longitude:      req.Longitude,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toActivityResponse(activity))
	}
}

// HandleListDayActivities returns an HTTP handler for GET /days/{dayID}/activities.
func HandleListDayActivities(svc ActivityPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activities, err := svc.ListDayActivities(r.Context(), r.PathValue("dayID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp := make([]activityResponse, 0, len(activities))
		for _, a := range activities {
			resp = append(resp, toActivityResponse(a))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type createActivityRequest struct {
	Name           string    `json:"name" validate:"required,max=200"`
	ScheduledStart time.Time `json:"scheduled_start" validate:"required"`
	ScheduledEnd   time.Time `json:"scheduled_end" validate:"required"`
	IsFlexible     *bool     `json:"is_flexible"`
	Latitude       *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type activityResponse struct {
	ID             string    `json:"id"`
	DayID          string    `json:"day_id"`
	Name           string    `json:"name"`
	ScheduledStart time.Time `json:"scheduled_start"`
	ScheduledEnd   time.Time `json:"scheduled_end"`
	IsFlexible     bool      `json:"is_flexible"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	Version        int64     `json:"version"`
}

func toActivityResponse(a domain.Activity) activityResponse {
	return activityResponse{
		ID:             a.ID,
		DayID:          a.DayID,
		Name:           a.Name,
		ScheduledStart: a.ScheduledStart,
		ScheduledEnd:   a.ScheduledEnd,
		IsFlexible:     a.IsFlexible,
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Version:        a.Version,
	}
}
