// Package api exposes the visualization pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/journalviz/internal/processor"
	"github.com/MikeSquared-Agency/journalviz/internal/render"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

const maxBodyBytes = 1 << 20

// Visualizer is the pipeline behind /api/v1/visualize.
type Visualizer interface {
	Visualize(ctx context.Context, sub processor.Submission) (*processor.Result, error)
	CollaboratorName() string
	LexiconVersion() string
}

// RenderCounter reports recent render volume for /api/v1/status.
type RenderCounter interface {
	CountByMode(ctx context.Context, since time.Time) (map[string]int, error)
}

type Server struct {
	router  *chi.Mux
	proc    Visualizer
	counter RenderCounter
	logger  *slog.Logger
	srv     *http.Server
}

// NewServer builds the router. An empty apiToken leaves /api/v1 open; a nil
// counter omits render counts from the status response.
func NewServer(port int, apiToken string, proc Visualizer, counter RenderCounter, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		proc:    proc,
		counter: counter,
		logger:  logger,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	router.Get("/health", s.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Get("/status", s.status)
		r.Post("/visualize", s.visualize)
		r.Post("/render", s.render)
	})

	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type collaboratorStatus struct {
	Available bool   `json:"available"`
	Provider  string `json:"provider,omitempty"`
}

type statusResponse struct {
	Service        string             `json:"service"`
	Collaborator   collaboratorStatus `json:"collaborator"`
	LexiconVersion string             `json:"lexiconVersion"`
	Modes          []schema.Mode      `json:"modes"`
	RendersLast24h map[string]int     `json:"rendersLast24h,omitempty"`
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	name := s.proc.CollaboratorName()
	resp := statusResponse{
		Service:        "journalviz",
		Collaborator:   collaboratorStatus{Available: name != "", Provider: name},
		LexiconVersion: s.proc.LexiconVersion(),
		Modes:          schema.Modes,
	}
	if s.counter != nil {
		counts, err := s.counter.CountByMode(r.Context(), time.Now().Add(-24*time.Hour))
		if err != nil {
			s.logger.Warn("failed to count renders", "error", err)
		} else {
			resp.RendersLast24h = counts
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) visualize(w http.ResponseWriter, r *http.Request) {
	var sub processor.Submission
	if err := decodeBody(w, r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	res, err := s.proc.Visualize(r.Context(), sub)
	switch {
	case errors.Is(err, processor.ErrEmptyInput), errors.Is(err, schema.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error("visualize failed", "error", err)
		writeError(w, http.StatusInternalServerError, "visualization failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type renderResponse struct {
	Mode           schema.Mode           `json:"mode"`
	VisualStandard schema.VisualStandard `json:"visualStandard"`
	DrawingProgram string                `json:"drawingProgram"`
}

// render draws a caller-supplied schema. Mismatched or unknown payloads are
// not rejected; dispatch falls back to the week renderer.
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	var sc schema.Schema
	if err := decodeBody(w, r, &sc); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	rd := render.Dispatch(sc)
	mode, _ := schema.ModeForStandard(rd.Standard())
	writeJSON(w, http.StatusOK, renderResponse{
		Mode:           mode,
		VisualStandard: rd.Standard(),
		DrawingProgram: rd.Build(sc.Dimensions).String(),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
