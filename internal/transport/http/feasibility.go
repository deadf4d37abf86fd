package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

// FeasibilityChecker is the minimal interface needed for the feasibility endpoints.
type FeasibilityChecker interface {
	Validate(ctx context.Context, alternativeID string) (domain.ValidationResult, error)
	ValidateSegment(ctx context.Context, fromActivityID, toActivityID string) ([]domain.ValidationResult, error)
}

// HandleValidateAlternative returns an HTTP handler for GET /transport-alternatives/{id}/feasibility.
func HandleValidateAlternative(svc FeasibilityChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Validate(r.Context(), r.PathValue("id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toFeasibilityResponse(res))
	}
}

// HandleValidateSegment returns an HTTP handler for GET /segments/{fromID}/{toID}/feasibility.
func HandleValidateSegment(svc FeasibilityChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := svc.ValidateSegment(r.Context(), r.PathValue("fromID"), r.PathValue("toID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp := make([]feasibilityResponse, 0, len(results))
		for _, res := range results {
			resp = append(resp, toFeasibilityResponse(res))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type feasibilityResponse struct {
	AlternativeID string     `json:"alternative_id"`
	IsFeasible    bool       `json:"is_feasible"`
	Reason        string     `json:"reason,omitempty"`
	FailureKind   string     `json:"failure_kind,omitempty"`
	ArrivalTime   *time.Time `json:"arrival_time,omitempty"`
	Conflicts     []string   `json:"conflicts,omitempty"`
}

func toFeasibilityResponse(res domain.ValidationResult) feasibilityResponse {
	resp := feasibilityResponse{
		AlternativeID: res.AlternativeID,
		IsFeasible:    res.IsFeasible,
		ArrivalTime:   res.ArrivalTime,
		Conflicts:     res.Conflicts,
	}
	if res.Failure != nil {
		resp.Reason = FailureReason(res.Failure)
		resp.FailureKind = string(res.Failure.Kind)
	}
	return resp
}
