// Package server exposes the layout engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hexfoundry/planroom/internal/config"
	"github.com/hexfoundry/planroom/pkg/analytics"
	"github.com/hexfoundry/planroom/pkg/layout"
	"github.com/hexfoundry/planroom/pkg/plan"
	"github.com/hexfoundry/planroom/pkg/validation"
	"github.com/hexfoundry/planroom/pkg/zone"
)

// defaultCorridorWidth is applied when a request profile leaves the
// corridor width unset.
const defaultCorridorWidth = 1.5

// Server is the planroom HTTP API.
type Server struct {
	cfg    config.Config
	logger *log.Logger
	router chi.Router
}

// New builds a server with its routes registered.
func New(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/api/health", s.handleHealth)
	r.Post("/api/generate", s.handleGenerate)
	s.router = r

	return s
}

// Handler returns the HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type generateRequest struct {
	Floor     plan.Floor        `json:"floor"`
	Profile   *plan.Profile     `json:"profile"`
	Zones     []zone.Annotation `json:"zones"`
	Algorithm string            `json:"algorithm"`
	Seed      int64             `json:"seed"`
}

type generateResponse struct {
	Layout     *layout.Result     `json:"layout"`
	Stats      *analytics.Stats   `json:"stats"`
	Validation *validation.Report `json:"validation"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerate runs one layout optimization. Requests without a profile,
// or with a profile carrying no size distribution, get the stock defaults;
// the engine itself never assumes them.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	profile := resolveProfile(req.Profile)
	zones := zone.Classify(req.Zones)

	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = s.cfg.Generation.Algorithm
	}
	seed := req.Seed
	if seed == 0 {
		seed = s.cfg.Generation.Seed
	}

	res, err := layout.Generate(r.Context(), req.Floor, profile, zones, layout.Options{
		Algorithm: plan.ParseAlgorithm(algorithm),
		Seed:      seed,
		Logger:    s.logger,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, plan.ErrInvalidFloor) ||
			errors.Is(err, plan.ErrInvalidCorridorWidth) ||
			errors.Is(err, plan.ErrInvalidBucket) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	stats, report := analytics.Summarize(res, req.Floor, profile, zones)
	report.Merge(layout.Verify(res, req.Floor, zones))

	s.logger.Info("layout generated",
		"id", res.ID,
		"algorithm", res.Algorithm,
		"placed", res.PlacedUnits,
		"requested", res.RequestedUnits,
		"score", res.OptimizationScore)

	writeJSON(w, http.StatusCreated, generateResponse{
		Layout:     res,
		Stats:      stats,
		Validation: report,
	})
}

// resolveProfile fills in the stock defaults for an absent or incomplete
// request profile.
func resolveProfile(p *plan.Profile) plan.Profile {
	profile := plan.Profile{CorridorWidth: defaultCorridorWidth}
	if p != nil {
		profile = *p
	}
	if profile.CorridorWidth == 0 {
		profile.CorridorWidth = defaultCorridorWidth
	}
	if len(profile.SizeDistribution) == 0 {
		profile.SizeDistribution = plan.DefaultSizeDistribution()
	}
	return profile
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
