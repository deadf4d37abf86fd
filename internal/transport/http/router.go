package http

import (
	"net/http"

	"github.com/jricardo27/trip-explorer2-sub002/internal/app"
)

// Services groups what the router dispatches to.
type Services struct {
	Planner interface {
		ActivityPlanner
		AlternativeCreator
	}
	Feasibility FeasibilityChecker
	Impact      ImpactCalculator
	Commit      ScheduleCommitter
	// DB backs the health check; nil reports liveness only.
	DB Pinger
}

// NewRouter registers every endpoint on a fresh mux.
func NewRouter(s Services) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /health", HealthHandler(s.DB))

	mux.Handle("POST /days/{dayID}/activities", HandleCreateActivity(s.Planner))
	mux.Handle("GET /days/{dayID}/activities", HandleListDayActivities(s.Planner))

	mux.Handle("POST /transport-alternatives", HandleCreateAlternative(s.Planner))
	mux.Handle("GET /transport-alternatives/{id}/feasibility", HandleValidateAlternative(s.Feasibility))
	mux.Handle("GET /transport-alternatives/{id}/impact", HandleCalculateImpact(s.Impact))
	mux.Handle("POST /transport-alternatives/{id}/select", HandleSelectAlternative(s.Commit))
	mux.Handle("GET /segments/{fromID}/{toID}/feasibility", HandleValidateSegment(s.Feasibility))

	mux.Handle("POST /schedule/apply", HandleApplyUpdates(s.Commit))
	mux.Handle("POST /settlements", HandleSettle(app.Settle))

	mux.Handle("/", NotFoundHandler())
	return mux
}
