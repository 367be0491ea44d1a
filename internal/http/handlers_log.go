package httpx

import (
	"context"
	"net/http"

	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
	apperrors "github.com/LukeRoberson/Logging-Service/internal/errors"
)

// LogHandlers exposes the event ingestion endpoint.
type LogHandlers struct {
	Router RouterService
}

// RouterService is the router contract consumed by the log handlers.
type RouterService interface {
	Handle(ctx context.Context, event *model.LogEvent) model.DispatchOutcome
}

// handleLog accepts one event, routes it, and reports the aggregate outcome.
// Validation failures return 400; an unconfigured destination returns 500
// since the client payload was well-formed and the fault is operational.
// Partial delivery is acknowledged as success with per-destination failures
// attached, as the caller cannot usefully retry a single destination.
func (h *LogHandlers) handleLog(w http.ResponseWriter, r *http.Request) {
	var event model.LogEvent
	if !DecodeJSON(w, r, &event) {
		return
	}

	outcome := h.Router.Handle(r.Context(), &event)
	if outcome.Overall == model.OverallError {
		status := http.StatusInternalServerError
		if apperrors.IsValidation(outcome.Err) {
			status = http.StatusBadRequest
		}
		WriteError(w, ErrorParams{
			Code:    status,
			ErrCode: string(apperrors.GetCode(outcome.Err)),
			Err:     outcome.Err,
		})
		return
	}

	resp := map[string]any{"result": "success"}
	if failed := outcome.FailedDestinations(); len(failed) > 0 {
		failures := make(map[string]string, len(failed))
		for _, d := range failed {
			failures[d.String()] = outcome.PerDestination[d].Error
		}
		resp["failures"] = failures
	}

	WriteJSON(w, http.StatusOK, resp)
}
