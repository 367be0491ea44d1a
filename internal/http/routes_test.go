package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
	apperrors "github.com/LukeRoberson/Logging-Service/internal/errors"
)

type mockRouterService struct {
	handleFunc func(ctx context.Context, event *model.LogEvent) model.DispatchOutcome
}

func (m *mockRouterService) Handle(ctx context.Context, event *model.LogEvent) model.DispatchOutcome {
	return m.handleFunc(ctx, event)
}

type mockLiveAlertService struct {
	queryFunc func(ctx context.Context, q *model.AlertQuery) (*model.AlertPage, error)
	statsFunc func(ctx context.Context) (*model.AlertStats, error)
}

func (m *mockLiveAlertService) Query(ctx context.Context, q *model.AlertQuery) (*model.AlertPage, error) {
	return m.queryFunc(ctx, q)
}

func (m *mockLiveAlertService) Stats(ctx context.Context) (*model.AlertStats, error) {
	return m.statsFunc(ctx)
}

func newTestHandler(router *mockRouterService, alerts *mockLiveAlertService) http.Handler {
	return NewRouter(RouterServices{Router: router, Alerts: alerts})
}

const validLogPayload = `{
	"source": "plugin-x",
	"destination": ["web"],
	"log": {
		"group": "security",
		"category": "auth",
		"alert": "login_fail",
		"severity": "warning",
		"timestamp": "2024-01-01T00:00:00Z",
		"message": "bad password"
	}
}`

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(nil, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestPostLogSuccess(t *testing.T) {
	var gotEvent *model.LogEvent
	router := &mockRouterService{
		handleFunc: func(_ context.Context, event *model.LogEvent) model.DispatchOutcome {
			gotEvent = event
			return model.DispatchOutcome{
				Overall: model.OverallSuccess,
				PerDestination: map[model.Destination]model.DeliveryResult{
					model.DestinationWeb: {Delivered: true},
				},
			}
		},
	}
	handler := newTestHandler(router, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader(validLogPayload))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":"success"}`, rec.Body.String())
	require.NotNil(t, gotEvent)
	assert.Equal(t, "plugin-x", gotEvent.Source)
	assert.Equal(t, []model.Destination{model.DestinationWeb}, gotEvent.Destinations)
}

func TestPostLogValidationError(t *testing.T) {
	router := &mockRouterService{
		handleFunc: func(context.Context, *model.LogEvent) model.DispatchOutcome {
			return model.DispatchOutcome{
				Overall: model.OverallError,
				Err:     apperrors.MissingField("source"),
			}
		},
	}
	handler := newTestHandler(router, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader(`{}`))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["result"])
	assert.Equal(t, "missing_field", body["error"])
	assert.Contains(t, body["message"], "source")
}

func TestPostLogUnresolvedDestination(t *testing.T) {
	router := &mockRouterService{
		handleFunc: func(context.Context, *model.LogEvent) model.DispatchOutcome {
			return model.DispatchOutcome{
				Overall: model.OverallError,
				Err:     apperrors.UnresolvedDestination("teams"),
			}
		},
	}
	handler := newTestHandler(router, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader(validLogPayload))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unresolved_destination", body["error"])
}

func TestPostLogPartialDeliveryAcknowledged(t *testing.T) {
	router := &mockRouterService{
		handleFunc: func(context.Context, *model.LogEvent) model.DispatchOutcome {
			return model.DispatchOutcome{
				Overall: model.OverallPartial,
				PerDestination: map[model.Destination]model.DeliveryResult{
					model.DestinationWeb:    {Delivered: true},
					model.DestinationSyslog: {Delivered: false, Error: "connection reset"},
				},
			}
		},
	}
	handler := newTestHandler(router, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader(validLogPayload))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"result":"success","failures":{"syslog":"connection reset"}}`,
		rec.Body.String())
}

func TestPostLogMalformedJSON(t *testing.T) {
	handler := newTestHandler(&mockRouterService{
		handleFunc: func(context.Context, *model.LogEvent) model.DispatchOutcome {
			t.Fatal("router must not be called for malformed JSON")
			return model.DispatchOutcome{}
		},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader(`{not json`))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLiveAlerts(t *testing.T) {
	var gotQuery *model.AlertQuery
	alerts := &mockLiveAlertService{
		queryFunc: func(_ context.Context, q *model.AlertQuery) (*model.AlertPage, error) {
			gotQuery = q
			q.Normalize(10)
			return &model.AlertPage{
				Alerts: []*model.AlertRecord{{
					ID:       1,
					Source:   "plugin-x",
					Group:    "security",
					Category: "auth",
					Alert:    "login_fail",
					Severity: model.SeverityWarning,
					Message:  "bad password",
				}},
				TotalLogs:  1,
				TotalPages: 1,
			}, nil
		},
	}
	handler := newTestHandler(nil, alerts)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/livealerts?severity=warning&page_size=10&page_number=1", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotQuery)
	assert.Equal(t, "warning", gotQuery.Severity)
	assert.Equal(t, 10, gotQuery.PageSize)
	assert.Equal(t, 1, gotQuery.PageNumber)

	var body struct {
		Result     string              `json:"result"`
		Alerts     []model.AlertRecord `json:"alerts"`
		PageSize   int                 `json:"page_size"`
		PageNumber int                 `json:"page_number"`
		TotalLogs  int                 `json:"total_logs"`
		TotalPages int                 `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Result)
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, "login_fail", body.Alerts[0].Alert)
	assert.Equal(t, 1, body.TotalLogs)
	assert.Equal(t, 1, body.TotalPages)
}

func TestGetLiveAlertsInvalidParams(t *testing.T) {
	handler := newTestHandler(nil, &mockLiveAlertService{
		queryFunc: func(context.Context, *model.AlertQuery) (*model.AlertPage, error) {
			t.Fatal("service must not be called for invalid params")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/livealerts?page_size=abc", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLiveAlertsStorageError(t *testing.T) {
	alerts := &mockLiveAlertService{
		queryFunc: func(context.Context, *model.AlertQuery) (*model.AlertPage, error) {
			return nil, apperrors.Storage(errors.New("connection refused"), "query live alerts")
		},
	}
	handler := newTestHandler(nil, alerts)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/livealerts", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetLiveAlertStats(t *testing.T) {
	alerts := &mockLiveAlertService{
		statsFunc: func(context.Context) (*model.AlertStats, error) {
			return &model.AlertStats{Total: 5, Warning: 3, Info: 2}, nil
		},
	}
	handler := newTestHandler(nil, alerts)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/livealerts/stats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"result":"success","stats":{"total":5,"critical":0,"error":0,"warning":3,"info":2,"system":0}}`,
		rec.Body.String())
}
