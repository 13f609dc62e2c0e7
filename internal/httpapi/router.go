// Package httpapi serves the analytics engine over HTTP/JSON.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pable/go-draft-metrics/internal/aggregator"
	"github.com/pable/go-draft-metrics/internal/logger"
	"github.com/pable/go-draft-metrics/internal/metrics"
	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/service"
)

// Analyzer is the query surface the handlers call.
type Analyzer interface {
	Stats(ctx context.Context, f aggregator.Filter) (*model.Stats, error)
	Profile(ctx context.Context, team string, f aggregator.Filter) (*model.TeamProfile, error)
	Insights(ctx context.Context, team string, f aggregator.Filter) (*service.TeamReport, error)
}

type server struct {
	analyzer Analyzer
	rec      *metrics.Recorder
	log      logger.Logger
}

// NewRouter wires every route. rec may be nil, in which case /metrics is not
// mounted and no request metrics are recorded.
func NewRouter(a Analyzer, rec *metrics.Recorder, log logger.Logger) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	s := &server{analyzer: a, rec: rec, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	if rec != nil {
		r.Handle("/metrics", rec.Handler())
	}
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.stats)
		r.Get("/teams/{team}/profile", s.profile)
		r.Get("/teams/{team}/insights", s.insights)
	})
	return r
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	s.ok(w, r, map[string]string{"service": "draftmetrics"})
}

func (s *server) stats(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	st, err := s.analyzer.Stats(r.Context(), f)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.ok(w, r, st)
}

func (s *server) profile(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	p, err := s.analyzer.Profile(r.Context(), chi.URLParam(r, "team"), f)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.ok(w, r, p)
}

func (s *server) insights(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	rep, err := s.analyzer.Insights(r.Context(), chi.URLParam(r, "team"), f)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.ok(w, r, rep.Insights)
}

// parseFilter reads version, mode, tournament and team query parameters.
func parseFilter(r *http.Request) (aggregator.Filter, error) {
	q := r.URL.Query()
	f := aggregator.Filter{
		VersionID:    strings.TrimSpace(q.Get("version")),
		Mode:         model.Mode(strings.ToUpper(strings.TrimSpace(q.Get("mode")))),
		TournamentID: strings.TrimSpace(q.Get("tournament")),
		TeamName:     strings.TrimSpace(q.Get("team")),
	}
	if !f.Mode.Valid() {
		return f, fmt.Errorf("mode must be one of %s, %s, %s", model.ModeAll, model.ModeScrimSummary, model.ModeFullSimulator)
	}
	return f, nil
}

// observe logs each request and records its route-level metrics.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			elapsed := time.Since(start)
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if s.rec != nil {
				s.rec.ObserveHTTP(route, status, elapsed)
			}
			s.log.Info(r.Context(), "request",
				logger.String("method", r.Method),
				logger.String("route", route),
				logger.Int("status", status),
				logger.Duration("elapsed", elapsed),
				logger.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
