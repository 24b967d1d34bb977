package handlers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/f1-dashboard/internal/app/charts"
	"github.com/preston-bernstein/f1-dashboard/internal/app/results"
	"github.com/preston-bernstein/f1-dashboard/internal/app/schedule"
	"github.com/preston-bernstein/f1-dashboard/internal/app/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/http/middleware"
	"github.com/preston-bernstein/f1-dashboard/internal/logging"
	"github.com/preston-bernstein/f1-dashboard/internal/metrics"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
	"github.com/preston-bernstein/f1-dashboard/internal/render"
	"github.com/preston-bernstein/f1-dashboard/internal/warmer"
)

const (
	loadErrorPrefix = "Error while loading data: "
	noPastRaceText  = "No race found for the current season."
)

// Services groups the page services. Charts is nil when charts are disabled.
type Services struct {
	Schedule  *schedule.Service
	Standings *standings.Service
	Results   *results.Service
	Charts    *charts.Service
}

// Handler wires the page routes to the app services.
type Handler struct {
	svc      Services
	pages    *render.Renderer
	logger   *slog.Logger
	metrics  *metrics.Recorder
	statusFn func() warmer.Status
}

// NewHandler constructs a Handler. A nil statusFn reports ready.
func NewHandler(svc Services, pages *render.Renderer, logger *slog.Logger, recorder *metrics.Recorder, statusFn func() warmer.Status) *Handler {
	return &Handler{
		svc:      svc,
		pages:    pages,
		logger:   logger,
		metrics:  recorder,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness once the cache warmer has completed a cycle.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Home renders the next race card and both standings tables.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	page := h.HomePage(r.Context())
	if page.ErrorKind != "" {
		h.recordFailure(r, page.ErrorKind)
	}
	h.render(w, r, render.PageHome, page)
}

// LastRace renders the most recent race's results, pole and fastest lap.
func (h *Handler) LastRace(w http.ResponseWriter, r *http.Request) {
	page := h.LastRacePage(r.Context())
	if page.ErrorKind != "" {
		h.recordFailure(r, page.ErrorKind)
	}
	h.render(w, r, render.PageLastRace, page)
}

// HomePage assembles the homepage context. Any failure leaves every data
// field at its default and sets the error message.
func (h *Handler) HomePage(ctx context.Context) render.HomePage {
	page := render.NewHomePage()
	loaded, err := h.loadHome(ctx)
	if err != nil {
		page.ErrorMessage, page.ErrorKind = describe(err)
		h.logFailure(ctx, "homepage", err)
		return page
	}
	return loaded
}

func (h *Handler) loadHome(ctx context.Context) (render.HomePage, error) {
	page := render.NewHomePage()
	if h.svc.Schedule == nil || h.svc.Standings == nil {
		return page, providers.ErrProviderUnavailable
	}
	season := h.svc.Schedule.CurrentSeason()

	next, err := h.svc.Schedule.NextRace(ctx, season)
	if err != nil {
		return page, err
	}
	drivers, err := h.svc.Standings.Drivers(ctx, season)
	if err != nil {
		return page, err
	}
	constructors, err := h.svc.Standings.Constructors(ctx, season)
	if err != nil {
		return page, err
	}

	page.NextRace = &next
	page.DriverStandings = drivers
	page.ConstructorStandings = constructors
	return page, nil
}

// LastRacePage assembles the last-race context with the same all-or-nothing
// failure policy as HomePage.
func (h *Handler) LastRacePage(ctx context.Context) render.LastRacePage {
	page := render.NewLastRacePage()
	loaded, err := h.loadLastRace(ctx)
	if err != nil {
		page.ErrorMessage, page.ErrorKind = describe(err)
		h.logFailure(ctx, "last_race", err)
		return page
	}
	return loaded
}

func (h *Handler) loadLastRace(ctx context.Context) (render.LastRacePage, error) {
	page := render.NewLastRacePage()
	if h.svc.Schedule == nil || h.svc.Results == nil {
		return page, providers.ErrProviderUnavailable
	}
	season := h.svc.Schedule.CurrentSeason()

	ev, err := h.svc.Schedule.LatestRace(ctx, season)
	if err != nil {
		return page, err
	}
	report, err := h.svc.Results.Assemble(ctx, season, ev)
	if err != nil {
		return page, err
	}

	var plotURL string
	if h.svc.Charts != nil {
		plotURL, err = h.svc.Charts.PlotURL(ctx, report.Race, report.Results)
		if err != nil {
			return page, err
		}
	}

	page.EventName = fmt.Sprintf("%s %d", report.Event.Name, season)
	page.Results = report.Results
	page.RaceWinner = report.Winner
	page.PolePosition = report.PolePosition
	page.PoleTime = report.PoleTime
	page.FastestLap = report.FastestLap
	page.FastestLapTime = report.FastestLapTime
	// Built by charts as a base64 PNG data URI.
	page.PlotURL = template.URL(plotURL)
	return page, nil
}

// describe turns a load failure into the page's error message and kind.
func describe(err error) (string, string) {
	kind := string(providers.KindOf(err))
	if errors.Is(err, schedule.ErrNoPastRace) {
		return noPastRaceText, kind
	}
	return loadErrorPrefix + err.Error(), kind
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	if err := h.pages.Serve(w, r, page, data); err != nil {
		logging.Error(loggerFromContext(r, h.logger), "page render failed", err, "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) logFailure(ctx context.Context, page string, err error) {
	logging.Warn(logging.FromContext(ctx, h.logger), "page data load failed",
		"page", page,
		logging.FieldErrorKind, string(providers.KindOf(err)),
		"error", err,
	)
}

func (h *Handler) recordFailure(r *http.Request, kind string) {
	if h.metrics != nil {
		h.metrics.RecordPageError(middleware.RouteLabel(r), kind)
	}
}
