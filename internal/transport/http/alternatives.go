package http

import (
	"context"
	"net/http"

	"github.com/jricardo27/trip-explorer2-sub002/internal/app"
	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

// AlternativeCreator is the minimal interface needed to create transport alternatives.
type AlternativeCreator interface {
	CreateAlternative(ctx context.Context, in app.CreateAlternativeInput) (domain.TransportAlternative, error)
}

// HandleCreateAlternative returns an HTTP handler for POST /transport-alternatives.
func HandleCreateAlternative(svc AlternativeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAlternativeRequest
		if !decodeBody(w, r, &req, false) {
			return
		}

		alt, err := svc.CreateAlternative(r.Context(), app.CreateAlternativeInput{
			FromActivityID:  req.FromActivityID,
			ToActivityID:    req.ToActivityID,
			Mode:            domain.TransportMode(req.Mode),
			DurationMinutes: req.DurationMinutes,
			BufferMinutes:   req.BufferMinutes,
			DistanceMeters:  req.DistanceMeters,
			AvailableFrom:   req.AvailableFrom,
			AvailableTo:     req.AvailableTo,
			AvailableDays:   req.AvailableDays,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAlternativeResponse(alt))
	}
}

type createAlternativeRequest struct {
	FromActivityID  string  `json:"from_activity_id" validate:"required"`
	ToActivityID    string  `json:"to_activity_id" validate:"required,nefield=FromActivityID"`
	Mode            string  `json:"mode" validate:"omitempty,oneof=walk bike drive transit flight other"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gte=0"`
	BufferMinutes   int     `json:"buffer_minutes" validate:"gte=0"`
	DistanceMeters  *int    `json:"distance_meters" validate:"omitempty,gte=0"`
	AvailableFrom   *string `json:"available_from"`
	AvailableTo     *string `json:"available_to"`
	AvailableDays   []int   `json:"available_days" validate:"omitempty,max=7,dive,gte=0,lte=6"`
}

type alternativeResponse struct {
	ID              string  `json:"id"`
	FromActivityID  string  `json:"from_activity_id"`
	ToActivityID    string  `json:"to_activity_id"`
	Mode            string  `json:"mode"`
	DurationMinutes int     `json:"duration_minutes"`
	BufferMinutes   int     `json:"buffer_minutes"`
	DistanceMeters  *int    `json:"distance_meters,omitempty"`
	AvailableFrom   *string `json:"available_from,omitempty"`
	AvailableTo     *string `json:"available_to,omitempty"`
	AvailableDays   []int   `json:"available_days"`
	IsSelected      bool    `json:"is_selected"`
}

func toAlternativeResponse(alt domain.TransportAlternative) alternativeResponse {
	days := make([]int, 0, len(alt.AvailableDays))
	for _, d := range alt.AvailableDays {
		days = append(days, int(d))
	}
	return alternativeResponse{
		ID:              alt.ID,
		FromActivityID:  alt.FromActivityID,
		ToActivityID:    alt.ToActivityID,
		Mode:            string(alt.Mode),
		DurationMinutes: alt.DurationMinutes,
		BufferMinutes:   alt.BufferMinutes,
		DistanceMeters:  alt.DistanceMeters,
		AvailableFrom:   alt.AvailableFrom,
		AvailableTo:     alt.AvailableTo,
		AvailableDays:   days,
		IsSelected:      alt.IsSelected,
	}
}
