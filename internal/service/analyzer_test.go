package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-draft-metrics/internal/aggregator"
	"github.com/pable/go-draft-metrics/internal/metrics"
	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/storage"
)

type fakeStore struct {
	mu        sync.Mutex
	matches   []model.DraftMatch
	heroes    model.HeroLookup
	roster    map[model.Role]string
	matchErr  error
	heroErr   error
	lastQuery storage.Query
}

func (f *fakeStore) ListMatches(ctx context.Context, q storage.Query) ([]model.DraftMatch, error) {
	f.mu.Lock()
	f.lastQuery = q
	f.mu.Unlock()
	if f.matchErr != nil {
		return nil, f.matchErr
	}
	return f.matches, nil
}

func (f *fakeStore) Heroes(ctx context.Context) (model.HeroLookup, error) {
	if f.heroErr != nil {
		return nil, f.heroErr
	}
	return f.heroes, nil
}

func (f *fakeStore) Roster(ctx context.Context, team string) (map[model.Role]string, error) {
	return f.roster, nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		heroes: model.NewHeroLookup([]model.Hero{{ID: "H1", Name: "Hayate"}, {ID: "H2", Name: "Nakroth"}}),
		roster: map[model.Role]string{model.RoleJungle: "Sofm"},
		matches: []model.DraftMatch{{
			ID: "m1", VersionID: "v1", MatchType: model.MatchScrimSimulator, Status: model.StatusFinished,
			Games: []model.DraftGame{{
				ID: "g1", WinnerSide: model.WinnerBlue, BlueTeamName: "Alpha", RedTeamName: "Bravo",
				Picks: []model.DraftPick{
					{HeroID: "H1", Type: model.Pick, Side: "BLUE", PositionIndex: 5, AssignedRole: "Jungle"},
					{HeroID: "H2", Type: model.Pick, Side: "RED", PositionIndex: 6, AssignedRole: "Jungle"},
				},
			}},
		}},
	}
}

func TestAnalyzer_Stats(t *testing.T) {
	store := newFakeStore()
	rec := metrics.New()
	a := New(store, WithMetrics(rec), WithDefaultVersion("v1"))

	st, err := a.Stats(context.Background(), aggregator.Filter{})
	require.NoError(t, err)
	require.NotNil(t, st)

	assert.Equal(t, 1, st.TotalGames)
	assert.Equal(t, 1, st.Heroes["H1"].Wins)
	assert.Equal(t, "v1", store.lastQuery.VersionID, "default version should scope the fetch")
}

func TestAnalyzer_FetchFailureIsNoData(t *testing.T) {
	store := newFakeStore()
	store.matchErr = errors.New("database is locked")
	a := New(store, WithMetrics(metrics.New()))

	st, err := a.Stats(context.Background(), aggregator.Filter{})
	assert.Nil(t, st)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "database is locked")

	store.matchErr = nil
	store.heroErr = errors.New("heroes unavailable")
	rep, err := a.Insights(context.Background(), "Alpha", aggregator.Filter{})
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestAnalyzer_CancelledContext(t *testing.T) {
	store := newFakeStore()
	store.matchErr = context.Canceled
	a := New(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, err := a.Profile(ctx, "Alpha", aggregator.Filter{})
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNoData)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzer_Profile(t *testing.T) {
	store := newFakeStore()
	a := New(store)

	p, err := a.Profile(context.Background(), "Alpha", aggregator.Filter{Mode: model.ModeFullSimulator})
	require.NoError(t, err)

	assert.Equal(t, "Alpha", store.lastQuery.TeamName)
	assert.Equal(t, model.ModeFullSimulator, store.lastQuery.Mode)
	assert.Equal(t, 1, p.Games)
	assert.Equal(t, "Sofm", p.Lanes[model.RoleJungle].Player)
	assert.Equal(t, "Mid Player", p.Lanes[model.RoleMid].Player)
	assert.Equal(t, 1, p.Lanes[model.RoleJungle].Matchups["H2"].Wins)
}

func TestAnalyzer_Insights(t *testing.T) {
	a := New(newFakeStore())

	rep, err := a.Insights(context.Background(), "Alpha", aggregator.Filter{})
	require.NoError(t, err)
	require.NotNil(t, rep.Insights)

	assert.Equal(t, "Alpha", rep.Insights.Team)
	assert.Equal(t, []model.HeroID{"H2"}, rep.Insights.TopEnemies)
	assert.Equal(t, 1, rep.Stats.GamesOnBlue)
	assert.NotContains(t, rep.Stats.Heroes, model.HeroID("H2"), "team-scoped stats drop opponent picks")
	require.Len(t, rep.Insights.LaneCounters[model.RoleJungle], 1)
	assert.Equal(t, model.HeroID("H1"), rep.Insights.LaneCounters[model.RoleJungle][0].Picks[0].HeroID)
}

func TestAnalyzer_BadInput(t *testing.T) {
	a := New(newFakeStore())

	_, err := a.Stats(context.Background(), aggregator.Filter{Mode: "RANKED"})
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = a.Profile(context.Background(), "", aggregator.Filter{})
	assert.ErrorIs(t, err, ErrTeamRequired)
}
