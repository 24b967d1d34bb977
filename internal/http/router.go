package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/f1-dashboard/internal/http/handlers"
	"github.com/preston-bernstein/f1-dashboard/internal/http/middleware"
	"github.com/preston-bernstein/f1-dashboard/internal/metrics"
)

// Route names, usable with Router.Get(name).URL().
const (
	RouteHomepage = "homepage"
	RouteLastRace = "last_race"
	RouteHealth   = "health"
	RouteReady    = "ready"
)

// NewRouter registers the page and health routes with request logging and metrics.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.Use(middleware.Logging(logger, recorder))

	r.HandleFunc("/", handler.Home).Methods(nethttp.MethodGet, nethttp.MethodHead).Name(RouteHomepage)
	r.HandleFunc("/last-race/", handler.LastRace).Methods(nethttp.MethodGet, nethttp.MethodHead).Name(RouteLastRace)
	r.HandleFunc("/health", handler.Health).Methods(nethttp.MethodGet).Name(RouteHealth)
	r.HandleFunc("/ready", handler.Ready).Methods(nethttp.MethodGet).Name(RouteReady)

	// mux serves these outside the r.Use chain.
	r.NotFoundHandler = middleware.LoggingMiddleware(logger, recorder, nethttp.NotFoundHandler())
	r.MethodNotAllowedHandler = middleware.LoggingMiddleware(logger, recorder, methodNotAllowed())
	return r
}

func methodNotAllowed() nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		nethttp.Error(w, nethttp.StatusText(nethttp.StatusMethodNotAllowed), nethttp.StatusMethodNotAllowed)
	})
}
