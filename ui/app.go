// Package ui exposes the evaluators over HTTP.
package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"datacheck/internal"
	"datacheck/internal/config"
	"datacheck/internal/evaluate"
	"datacheck/ports"
)

// App represents the HTTP application
type App struct {
	router    *chi.Mux
	evaluator *evaluate.Evaluator
	store     ports.EvaluationStore
	log       *internal.Logger
	cfg       config.EvaluateConfig
}

// NewApp creates the HTTP application. store may be nil, in which case runs
// are not persisted and the run endpoints answer 404.
func NewApp(cfg config.EvaluateConfig, store ports.EvaluationStore, log *internal.Logger) *App {
	if log == nil {
		log = internal.DefaultLogger
	}
	app := &App{
		router:    chi.NewRouter(),
		evaluator: evaluate.New(log).WithParallelism(cfg.DossierParallel),
		store:     store,
		log:       log,
		cfg:       cfg,
	}
	app.routes()
	return app
}

func (a *App) routes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/health", a.handleHealth)
	a.router.Route("/api", func(r chi.Router) {
		r.Post("/evaluate", a.handleEvaluate)
		r.Get("/runs", a.handleListRuns)
		r.Get("/runs/{id}", a.handleGetRun)
		r.Get("/runs/{id}/html", a.handleRunHTML)
	})
}

// Router returns the configured router.
func (a *App) Router() http.Handler {
	return a.router
}

// Serve starts the HTTP server on the given port.
func (a *App) Serve(port string) error {
	a.log.Info("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, a.router); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
