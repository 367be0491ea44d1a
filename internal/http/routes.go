package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices holds the services needed by the HTTP router.
type RouterServices struct {
	Router RouterService
	Alerts LiveAlertService
	Logger *slog.Logger
}

// NewRouter creates and configures the API router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	logHandlers := &LogHandlers{Router: services.Router}
	alertHandlers := &LiveAlertHandlers{Svc: services.Alerts}

	mux.Handle("GET /api/health", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /api/health", http.HandlerFunc(healthHandler))
	mux.Handle("POST /api/log", http.HandlerFunc(logHandlers.handleLog))
	mux.Handle("GET /api/livealerts", http.HandlerFunc(alertHandlers.handleList))
	mux.Handle("GET /api/livealerts/stats", http.HandlerFunc(alertHandlers.handleStats))

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = RequestID()(handler)
	handler = Recover(logger)(handler)

	return handler
}
