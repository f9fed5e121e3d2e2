package ui

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"faqreport/app"
	"faqreport/domain/core"
	"faqreport/ports"
)

// App exposes the report pipeline over HTTP: trigger a run, list past runs,
// fetch a single manifest.
type App struct {
	router  *chi.Mux
	service *app.ReportService
	runs    ports.RunRepository
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates the HTTP application around a report service
func NewApp(service *app.ReportService, runs ports.RunRepository) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		runs:    runs,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	a.router.Post("/api/runs", a.handleTriggerRun)
	a.router.Get("/api/runs", a.handleListRuns)
	a.router.Get("/api/runs/{id}", a.handleGetRun)
}

// Start blocks serving HTTP on the configured port
func (a *App) Start(config Config) error {
	addr := ":" + config.Port
	log.Printf("[UI] Listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the handler for tests
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTriggerRun kicks off a full pipeline run. A run already in progress
// answers 409 rather than queueing.
func (a *App) handleTriggerRun(w http.ResponseWriter, r *http.Request) {
	manifest, err := a.service.Run(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, core.ErrRunInProgress):
			writeError(w, http.StatusConflict, err)
		case core.IsFatal(err):
			writeError(w, http.StatusUnprocessableEntity, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, manifest)
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	manifests, err := a.runs.List(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, manifests)
}

func (a *App) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	manifest, err := a.runs.GetByID(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, manifest)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[UI] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
