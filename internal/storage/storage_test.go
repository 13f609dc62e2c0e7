package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pable/go-draft-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMatch(id, version string, mt model.MatchType, blue, red string) model.DraftMatch {
	return model.DraftMatch{
		ID:        id,
		VersionID: version,
		TeamA:     blue,
		TeamB:     red,
		MatchType: mt,
		Status:    model.StatusFinished,
		Games: []model.DraftGame{
			{
				ID: id + "-1", GameNumber: 1, WinnerSide: model.WinnerBlue,
				BlueTeamName: blue, RedTeamName: red,
				Picks: []model.DraftPick{
					{HeroID: "H5", Type: model.Ban, Side: "", PositionIndex: 1},
					{HeroID: "H1", Type: model.Pick, Side: "BLUE", PositionIndex: 5, AssignedRole: "Jungle"},
					{HeroID: "H2", Type: model.Pick, Side: "RED", PositionIndex: 6, AssignedRole: "Jungle"},
				},
			},
			{
				ID: id + "-2", GameNumber: 2, WinnerSide: model.WinnerRed,
				BlueTeamName: red, RedTeamName: blue,
			},
		},
	}
}

func TestInsertAndListMatches(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	if err := db.InsertMatch(ctx, sampleMatch("m1", "v1", model.MatchScrimSimulator, "Alpha", "Bravo")); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}

	matches, err := db.ListMatches(ctx, Query{VersionID: "v1"})
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.MatchType != model.MatchScrimSimulator || m.Status != model.StatusFinished {
		t.Errorf("unexpected match fields: %+v", m)
	}
	if len(m.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(m.Games))
	}
	g := m.Games[0]
	if g.WinnerSide != model.WinnerBlue || g.BlueTeamName != "Alpha" {
		t.Errorf("unexpected game 1: %+v", g)
	}
	if len(g.Picks) != 3 {
		t.Fatalf("expected 3 picks in game 1, got %d", len(g.Picks))
	}
	if p := g.Picks[1]; p.HeroID != "H1" || p.Type != model.Pick || p.Side != "BLUE" || p.PositionIndex != 5 || p.AssignedRole != "Jungle" {
		t.Errorf("pick order or fields not preserved: %+v", p)
	}
	if len(m.Games[1].Picks) != 0 {
		t.Errorf("game without picks should have none, got %d", len(m.Games[1].Picks))
	}
}

func TestInsertMatch_Replaces(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	m := sampleMatch("m1", "v1", model.MatchScrimSummary, "Alpha", "Bravo")
	if err := db.InsertMatch(ctx, m); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}
	m.Games = m.Games[:1]
	m.Games[0].Picks = m.Games[0].Picks[:1]
	if err := db.InsertMatch(ctx, m); err != nil {
		t.Fatalf("re-InsertMatch: %v", err)
	}

	matches, err := db.ListMatches(ctx, Query{})
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 1 || len(matches[0].Games) != 1 || len(matches[0].Games[0].Picks) != 1 {
		t.Errorf("re-import should replace games and picks, got %+v", matches)
	}
}

func TestInsertMatch_SharedGameIDs(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	a := sampleMatch("A", "v1", model.MatchScrimSimulator, "Alpha", "Bravo")
	b := sampleMatch("B", "v1", model.MatchScrimSimulator, "Charlie", "Delta")
	for i := range a.Games {
		a.Games[i].ID = fmt.Sprintf("g%d", i+1)
		b.Games[i].ID = fmt.Sprintf("g%d", i+1)
	}
	b.Games[0].Picks = []model.DraftPick{{HeroID: "H9", Type: model.Pick, Side: "BLUE", PositionIndex: 5}}

	for _, m := range []model.DraftMatch{a, b} {
		if err := db.InsertMatch(ctx, m); err != nil {
			t.Fatalf("InsertMatch %s: %v", m.ID, err)
		}
	}
	// Re-importing B must not touch A's games either.
	if err := db.InsertMatch(ctx, b); err != nil {
		t.Fatalf("re-InsertMatch B: %v", err)
	}

	matches, err := db.ListMatches(ctx, Query{})
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	byID := make(map[string]model.DraftMatch, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	if got := byID["A"]; len(got.Games) != 2 || len(got.Games[0].Picks) != 3 || got.Games[0].Picks[1].HeroID != "H1" {
		t.Errorf("match A lost its games: %+v", got)
	}
	if got := byID["B"]; len(got.Games) != 2 || len(got.Games[0].Picks) != 1 || got.Games[0].Picks[0].HeroID != "H9" {
		t.Errorf("match B games wrong: %+v", got)
	}
}

func TestListMatches_OnlyScopedGames(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	db.InsertMatch(ctx, sampleMatch("in", "v1", model.MatchScrimSummary, "Alpha", "Bravo"))
	db.InsertMatch(ctx, sampleMatch("out", "v2", model.MatchScrimSummary, "Alpha", "Bravo"))

	got, err := db.ListMatches(ctx, Query{VersionID: "v1"})
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(got) != 1 || got[0].ID != "in" || len(got[0].Games) != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
	for _, g := range got[0].Games {
		if g.MatchID != "in" {
			t.Errorf("game %s attached from match %s", g.ID, g.MatchID)
		}
	}
}

func TestListMatches_Filters(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	fixtures := []model.DraftMatch{
		sampleMatch("sim", "v1", model.MatchSimulation, "Team Alpha", "Bravo"),
		sampleMatch("sum", "v1", model.MatchScrimSummary, "Charlie", "Delta"),
		sampleMatch("old", "v0", model.MatchScrimSummary, "Alpha", "Delta"),
	}
	fixtures[1].TournamentID = "t1"
	draft := sampleMatch("wip", "v1", model.MatchScrimSummary, "Alpha", "Bravo")
	draft.Status = model.StatusOngoing
	fixtures = append(fixtures, draft)

	for _, m := range fixtures {
		if err := db.InsertMatch(ctx, m); err != nil {
			t.Fatalf("InsertMatch %s: %v", m.ID, err)
		}
	}

	cases := []struct {
		name string
		q    Query
		want []string
	}{
		{"version", Query{VersionID: "v1"}, []string{"sim", "sum"}},
		{"simulator mode", Query{VersionID: "v1", Mode: model.ModeFullSimulator}, []string{"sim"}},
		{"summary mode", Query{Mode: model.ModeScrimSummary}, []string{"old", "sum"}},
		{"tournament", Query{TournamentID: "t1"}, []string{"sum"}},
		{"team substring", Query{TeamName: "Alpha"}, []string{"old", "sim"}},
		{"team is case sensitive", Query{TeamName: "alpha"}, nil},
		{"underscore is literal", Query{TeamName: "A_pha"}, nil},
		{"percent is literal", Query{TeamName: "%"}, nil},
		{"all finished", Query{}, []string{"old", "sim", "sum"}},
	}
	for _, c := range cases {
		got, err := db.ListMatches(ctx, c.q)
		if err != nil {
			t.Fatalf("%s: ListMatches: %v", c.name, err)
		}
		ids := make(map[string]bool, len(got))
		for _, m := range got {
			ids[m.ID] = true
		}
		if len(ids) != len(c.want) {
			t.Errorf("%s: want %v, got %d matches", c.name, c.want, len(got))
			continue
		}
		for _, id := range c.want {
			if !ids[id] {
				t.Errorf("%s: expected %s in result", c.name, id)
			}
		}
	}
}

func TestHeroes(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	if err := db.InsertHeroes(ctx, []model.Hero{
		{ID: "H1", Name: "Hayate", IconURL: "https://cdn.example/h1.png"},
		{ID: "H2", Name: "Nakroth"},
	}); err != nil {
		t.Fatalf("InsertHeroes: %v", err)
	}
	if err := db.InsertHero(ctx, model.Hero{ID: "H2", Name: "Nakroth v2"}); err != nil {
		t.Fatalf("InsertHero: %v", err)
	}

	lookup, err := db.Heroes(ctx)
	if err != nil {
		t.Fatalf("Heroes: %v", err)
	}
	if len(lookup) != 2 {
		t.Fatalf("expected 2 heroes, got %d", len(lookup))
	}
	h, ok := lookup.Lookup("H1")
	if !ok || h.IconURL != "https://cdn.example/h1.png" {
		t.Errorf("H1: got %+v (ok=%v)", h, ok)
	}
	if h, _ := lookup.Lookup("H2"); h.Name != "Nakroth v2" {
		t.Errorf("H2 should be replaced, got %q", h.Name)
	}
	if _, ok := lookup.Lookup("H9"); ok {
		t.Error("unknown hero should not resolve")
	}
}

func TestRoster(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	if err := db.SetRosterPlayer(ctx, "Alpha", model.RoleMid, "Lai Bang"); err != nil {
		t.Fatalf("SetRosterPlayer: %v", err)
	}
	if err := db.SetRosterPlayer(ctx, "Alpha", model.RoleMid, "Quinn"); err != nil {
		t.Fatalf("SetRosterPlayer: %v", err)
	}

	r, err := db.Roster(ctx, "Alpha")
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if r[model.RoleMid] != "Quinn" || len(r) != 1 {
		t.Errorf("unexpected roster: %v", r)
	}

	empty, err := db.Roster(ctx, "Nobody")
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("unknown team: want empty map, got %v", empty)
	}
}

func TestDeleteMatch(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	if err := db.InsertMatch(ctx, sampleMatch("m1", "v1", model.MatchScrimSummary, "Alpha", "Bravo")); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}
	if err := db.DeleteMatch(ctx, "m1"); err != nil {
		t.Fatalf("DeleteMatch: %v", err)
	}
	if err := db.DeleteMatch(ctx, "m1"); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("second delete: want ErrMatchNotFound, got %v", err)
	}

	_, rows, err := db.QueryRaw(ctx, "SELECT COUNT(*) FROM picks")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if rows[0][0] != "0" {
		t.Errorf("picks should cascade on delete, got %s left", rows[0][0])
	}
}

func TestListMatchSummaries(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	db.InsertMatch(ctx, sampleMatch("m1", "v1", model.MatchScrimSummary, "Alpha", "Bravo"))

	list, err := db.ListMatchSummaries(ctx)
	if err != nil {
		t.Fatalf("ListMatchSummaries: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(list))
	}
	if s := list[0]; s.ID != "m1" || s.Games != 2 || s.TeamA != "Alpha" || s.ImportedAt == "" {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	db.InsertHeroes(ctx, []model.Hero{{ID: "H1", Name: "Hayate"}})

	cols, rows, err := db.QueryRaw(ctx, "SELECT id, name, NULL AS icon FROM heroes")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 3 || cols[1] != "name" {
		t.Errorf("unexpected columns: %v", cols)
	}
	if len(rows) != 1 || rows[0][0] != "H1" || rows[0][2] != "NULL" {
		t.Errorf("unexpected rows: %v", rows)
	}

	if _, _, err := db.QueryRaw(ctx, "SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}
