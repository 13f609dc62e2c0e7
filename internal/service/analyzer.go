// Package service fetches raw draft records and runs the analytics engine
// over them. It is the only place that blocks on I/O.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pable/go-draft-metrics/internal/aggregator"
	"github.com/pable/go-draft-metrics/internal/logger"
	"github.com/pable/go-draft-metrics/internal/metrics"
	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/profile"
	"github.com/pable/go-draft-metrics/internal/scoring"
	"github.com/pable/go-draft-metrics/internal/storage"
)

var (
	// ErrNoData means the records could not be fetched. No result exists;
	// callers render a degraded state.
	ErrNoData = errors.New("no data available")

	ErrTeamRequired = errors.New("team name is required")
	ErrInvalidMode  = errors.New("invalid mode")
)

// Store is the persistence surface the analyzer reads from.
type Store interface {
	ListMatches(ctx context.Context, q storage.Query) ([]model.DraftMatch, error)
	Heroes(ctx context.Context) (model.HeroLookup, error)
	Roster(ctx context.Context, team string) (map[model.Role]string, error)
}

// Analyzer answers stats, profile and insight queries.
type Analyzer struct {
	store          Store
	log            logger.Logger
	rec            *metrics.Recorder
	defaultVersion string
}

type Option func(*Analyzer)

func WithLogger(l logger.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	}
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(a *Analyzer) { a.rec = r }
}

// WithDefaultVersion scopes queries that name no version.
func WithDefaultVersion(v string) Option {
	return func(a *Analyzer) { a.defaultVersion = v }
}

func New(store Store, opts ...Option) *Analyzer {
	a := &Analyzer{store: store, log: logger.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TeamReport is a team-scoped aggregate, the team's profile and every ranking.
type TeamReport struct {
	Stats    *model.Stats       `json:"stats"`
	Profile  *model.TeamProfile `json:"profile"`
	Insights *scoring.Insights  `json:"insights"`
}

// Stats aggregates every finished match inside f.
func (a *Analyzer) Stats(ctx context.Context, f aggregator.Filter) (*model.Stats, error) {
	start := time.Now()
	f, err := a.scope(f)
	if err != nil {
		return nil, err
	}

	var (
		matches []model.DraftMatch
		heroes  model.HeroLookup
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = a.store.ListMatches(gctx, query(f))
		return err
	})
	g.Go(func() error {
		var err error
		heroes, err = a.store.Heroes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, a.noData(ctx, "stats", start, err)
	}

	st := aggregator.Aggregate(matches, heroes, f)
	a.done(ctx, "stats", start, len(matches), logger.Int("games", st.TotalGames))
	return st, nil
}

// Profile builds the lane profile of team inside f.
func (a *Analyzer) Profile(ctx context.Context, team string, f aggregator.Filter) (*model.TeamProfile, error) {
	start := time.Now()
	f.TeamName = team
	f, err := a.scope(f)
	if err != nil {
		return nil, err
	}
	if f.TeamName == "" {
		return nil, ErrTeamRequired
	}

	matches, heroes, roster, err := a.fetchTeam(ctx, f)
	if err != nil {
		return nil, a.noData(ctx, "profile", start, err)
	}
	p := profile.Build(f.TeamName, matches, heroes, roster)
	a.done(ctx, "profile", start, len(matches), logger.String("team", f.TeamName), logger.Int("games", p.Games))
	return p, nil
}

// Insights computes the team-scoped aggregate, the profile and every ranking
// from a single fetch.
func (a *Analyzer) Insights(ctx context.Context, team string, f aggregator.Filter) (*TeamReport, error) {
	start := time.Now()
	f.TeamName = team
	f, err := a.scope(f)
	if err != nil {
		return nil, err
	}
	if f.TeamName == "" {
		return nil, ErrTeamRequired
	}

	matches, heroes, roster, err := a.fetchTeam(ctx, f)
	if err != nil {
		return nil, a.noData(ctx, "insights", start, err)
	}

	st := aggregator.Aggregate(matches, heroes, f)
	p := profile.Build(f.TeamName, matches, heroes, roster)
	r := &TeamReport{Stats: st, Profile: p, Insights: scoring.Build(st, p)}
	a.done(ctx, "insights", start, len(matches), logger.String("team", f.TeamName), logger.Int("games", p.Games))
	return r, nil
}

func (a *Analyzer) fetchTeam(ctx context.Context, f aggregator.Filter) ([]model.DraftMatch, model.HeroLookup, profile.Roster, error) {
	var (
		matches []model.DraftMatch
		heroes  model.HeroLookup
		roster  map[model.Role]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = a.store.ListMatches(gctx, query(f))
		return err
	})
	g.Go(func() error {
		var err error
		heroes, err = a.store.Heroes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		roster, err = a.store.Roster(gctx, f.TeamName)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return matches, heroes, roster, nil
}

func (a *Analyzer) scope(f aggregator.Filter) (aggregator.Filter, error) {
	if !f.Mode.Valid() {
		return f, fmt.Errorf("%w: %q", ErrInvalidMode, f.Mode)
	}
	if f.VersionID == "" {
		f.VersionID = a.defaultVersion
	}
	return f, nil
}

func query(f aggregator.Filter) storage.Query {
	return storage.Query{
		VersionID:    f.VersionID,
		Mode:         f.Mode,
		TournamentID: f.TournamentID,
		TeamName:     f.TeamName,
	}
}

func (a *Analyzer) noData(ctx context.Context, kind string, start time.Time, err error) error {
	a.log.Warn(ctx, "fetch failed", logger.String("kind", kind), logger.Error(err))
	if a.rec != nil {
		a.rec.FetchFailed()
		a.rec.ObserveQuery(kind, metrics.OutcomeNoData, time.Since(start))
	}
	return fmt.Errorf("%w: %w", ErrNoData, err)
}

func (a *Analyzer) done(ctx context.Context, kind string, start time.Time, matches int, fields ...logger.Field) {
	elapsed := time.Since(start)
	fields = append(fields, logger.String("kind", kind), logger.Int("matches", matches), logger.Duration("elapsed", elapsed))
	a.log.Debug(ctx, "query complete", fields...)
	if a.rec != nil {
		a.rec.ObserveMatches(matches)
		a.rec.ObserveQuery(kind, metrics.OutcomeOK, elapsed)
	}
}
