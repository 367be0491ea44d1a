package httpx

import (
	"context"
	"net/http"
	"strconv"

	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
)

// LiveAlertHandlers exposes the live-alert retrieval endpoints.
type LiveAlertHandlers struct {
	Svc LiveAlertService
}

// LiveAlertService is the alert-store contract consumed by the handlers.
type LiveAlertService interface {
	Query(ctx context.Context, q *model.AlertQuery) (*model.AlertPage, error)
	Stats(ctx context.Context) (*model.AlertStats, error)
}

// handleList serves GET /api/livealerts with filter and pagination params.
func (h *LiveAlertHandlers) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseAlertQuery(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return
	}

	page, err := h.Svc.Query(r.Context(), &q)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "storage", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"result":      "success",
		"alerts":      page.Alerts,
		"page_size":   q.PageSize,
		"page_number": q.PageNumber,
		"total_logs":  page.TotalLogs,
		"total_pages": page.TotalPages,
	})
}

// handleStats serves GET /api/livealerts/stats.
func (h *LiveAlertHandlers) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "storage", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"result": "success",
		"stats":  stats,
	})
}

func parseAlertQuery(r *http.Request) (model.AlertQuery, error) {
	values := r.URL.Query()

	q := model.AlertQuery{
		Search:    values.Get("search"),
		Source:    values.Get("source"),
		Group:     values.Get("group"),
		Category:  values.Get("category"),
		AlertType: values.Get("alert_type"),
		Severity:  values.Get("severity"),
	}

	var err error
	if q.SystemOnly, err = parseBoolParam(values.Get("system_only")); err != nil {
		return q, err
	}
	if q.PageSize, err = parseIntParam(values.Get("page_size")); err != nil {
		return q, err
	}
	if q.PageNumber, err = parseIntParam(values.Get("page_number")); err != nil {
		return q, err
	}

	return q, nil
}

func parseBoolParam(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

func parseIntParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
