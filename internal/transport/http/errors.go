package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

const (
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeValidationFailed    = "validation_failed"
	codeInvalidID           = "invalid_id"
	codeActivityNotFound    = "activity_not_found"
	codeAlternativeNotFound = "alternative_not_found"
	codeNameRequired        = "activity_name_required"
	codeInvalidSchedule     = "invalid_schedule"
	codeInvalidDuration     = "invalid_duration"
	codeInvalidTimeOfDay    = "invalid_time_of_day"
	codeInvalidWeekday      = "invalid_weekday"
	codeInvalidMode         = "invalid_mode"
	codeSameEndpoints       = "same_endpoints"
	codeDuplicateUpdate     = "duplicate_update"
	codeStaleSchedule       = "stale_schedule"
	codeFixedActivity       = "fixed_activity"
	codeSelectionConflict   = "selection_conflict"
	codeNoRoute             = "no_route"
	codeRateLimited         = "rate_limited"
	codeEstimateTimeout     = "estimate_timeout"
	codeCommitFailed        = "commit_failed"
	codeUnavailable         = "unavailable"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: specific not-found errors come before the shared class.
var errorMappings = []errorMapping{
	{domain.ErrActivityNotFound, http.StatusNotFound, codeActivityNotFound},
	{domain.ErrAlternativeNotFound, http.StatusNotFound, codeAlternativeNotFound},
	{domain.ErrNotFound, http.StatusNotFound, codeNotFound},
	{domain.ErrInvalidID, http.StatusNotFound, codeInvalidID},
	{domain.ErrActivityNameRequired, http.StatusBadRequest, codeNameRequired},
	{domain.ErrInvalidSchedule, http.StatusBadRequest, codeInvalidSchedule},
	{domain.ErrInvalidDuration, http.StatusBadRequest, codeInvalidDuration},
	{domain.ErrInvalidTimeOfDay, http.StatusBadRequest, codeInvalidTimeOfDay},
	{domain.ErrInvalidWeekday, http.StatusBadRequest, codeInvalidWeekday},
	{domain.ErrInvalidMode, http.StatusBadRequest, codeInvalidMode},
	{domain.ErrSameEndpoints, http.StatusBadRequest, codeSameEndpoints},
	{domain.ErrDuplicateUpdate, http.StatusBadRequest, codeDuplicateUpdate},
	{domain.ErrStaleSchedule, http.StatusConflict, codeStaleSchedule},
	{domain.ErrFixedActivity, http.StatusConflict, codeFixedActivity},
	{domain.ErrSelectionConflict, http.StatusConflict, codeSelectionConflict},
	{domain.ErrNoRoute, http.StatusUnprocessableEntity, codeNoRoute},
	{domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited},
	{domain.ErrEstimateTimeout, http.StatusGatewayTimeout, codeEstimateTimeout},
}

// writeServiceError maps a service error onto a status and code. Unknown
// errors are logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			writeError(w, m.status, m.code, m.target.Error())
			return
		}
	}
	log.Printf("ERROR: %v", err)
	if errors.Is(err, domain.ErrCommitFailed) {
		writeError(w, http.StatusInternalServerError, codeCommitFailed, domain.ErrCommitFailed.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
