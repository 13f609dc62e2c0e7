package profile

import (
	"testing"

	"github.com/pable/go-draft-metrics/internal/model"
)

var heroes = model.NewHeroLookup([]model.Hero{
	{ID: "H1", Name: "Hayate"},
	{ID: "H2", Name: "Nakroth"},
	{ID: "H3", Name: "Tulen"},
	{ID: "H4", Name: "Grakk"},
})

func pick(hero model.HeroID, side string, pos int, role string) model.DraftPick {
	return model.DraftPick{HeroID: hero, Type: model.Pick, Side: side, PositionIndex: pos, AssignedRole: role}
}

func game(id, blue, red string, winner model.Winner, picks ...model.DraftPick) model.DraftGame {
	return model.DraftGame{ID: id, BlueTeamName: blue, RedTeamName: red, WinnerSide: winner, Picks: picks}
}

func TestBuild_LaneMatchups(t *testing.T) {
	matches := []model.DraftMatch{{
		ID: "m1",
		Games: []model.DraftGame{
			game("g1", "Alpha", "Bravo", model.WinnerBlue,
				pick("H1", "BLUE", 5, "Jungle"),
				pick("H2", "RED", 6, "Jungle"),
				pick("H3", "BLUE", 7, "Mid"),
			),
			game("g2", "Bravo", "Alpha", model.WinnerBlue,
				pick("H2", "BLUE", 5, "Jungle"),
				pick("H1", "RED", 6, "Jungle"),
			),
		},
	}}

	p := Build("Alpha", matches, heroes, nil)

	if p.Games != 2 || p.Wins != 1 {
		t.Fatalf("team record: want 1/2, got %d/%d", p.Wins, p.Games)
	}
	jg := p.Lanes[model.RoleJungle]
	if hs := jg.Heroes["H1"]; hs == nil || hs.Picks != 2 || hs.Wins != 1 {
		t.Errorf("Jungle H1: want picks=2 wins=1, got %+v", hs)
	}
	if m := jg.Matchups["H2"]; m == nil || m.Games != 2 || m.Wins != 1 {
		t.Errorf("Jungle matchup vs H2: want {2 1}, got %+v", m)
	}
	if r, ok := jg.Duels.Get("H1", "H2"); !ok || r.Games != 2 || r.Wins != 1 {
		t.Errorf("Jungle duel H1 vs H2: want {2 1}, got %+v (ok=%v)", r, ok)
	}

	mid := p.Lanes[model.RoleMid]
	if hs := mid.Heroes["H3"]; hs == nil || hs.Picks != 1 || hs.Wins != 1 {
		t.Errorf("Mid H3: want picks=1 wins=1, got %+v", hs)
	}
	if len(mid.Matchups) != 0 {
		t.Errorf("Mid had no enemy pick, want no matchups, got %v", mid.Matchups)
	}
	if len(p.Lanes[model.RoleRoam].Heroes) != 0 {
		t.Error("a lane with no pick on our side must stay empty")
	}
}

func TestBuild_RosterPlaceholders(t *testing.T) {
	p := Build("Alpha", nil, heroes, Roster{model.RoleMid: "Lai Bang"})

	if got := p.Lanes[model.RoleMid].Player; got != "Lai Bang" {
		t.Errorf("Mid player: want Lai Bang, got %q", got)
	}
	if got := p.Lanes[model.RoleRoam].Player; got != "Roam Player" {
		t.Errorf("Roam player: want placeholder, got %q", got)
	}
	if len(p.Lanes) != len(model.Roles) {
		t.Errorf("want %d lanes, got %d", len(model.Roles), len(p.Lanes))
	}
}

func TestBuild_SkipsForeignAndUnresolved(t *testing.T) {
	matches := []model.DraftMatch{{
		ID: "m1",
		Games: []model.DraftGame{
			game("g1", "Charlie", "Delta", model.WinnerBlue, pick("H1", "BLUE", 5, "Jungle")),
			game("g2", "Team Alpha", "Bravo", model.WinnerRed,
				pick("MISSING", "BLUE", 5, "Jungle"),
				pick("H4", "BLUE", 6, "coach"),
				pick("H2", "RED", 7, "Jungle"),
			),
		},
	}}

	p := Build("Alpha", matches, heroes, nil)

	if p.Games != 1 || p.Wins != 0 {
		t.Fatalf("want only the substring-matched game, got %d games %d wins", p.Games, p.Wins)
	}
	for role, lane := range p.Lanes {
		if len(lane.Heroes) != 0 || len(lane.Matchups) != 0 {
			t.Errorf("%s: unresolved or roleless picks must not count, got %+v", role, lane)
		}
	}
}

func TestHeroDuels_CollapsesRoles(t *testing.T) {
	matches := []model.DraftMatch{{
		ID: "m1",
		Games: []model.DraftGame{
			game("g1", "Alpha", "Bravo", model.WinnerBlue,
				pick("H1", "BLUE", 5, "Jungle"), pick("H2", "RED", 6, "Jungle")),
			game("g2", "Alpha", "Bravo", model.WinnerRed,
				pick("H1", "BLUE", 5, "Mid"), pick("H2", "RED", 6, "Mid")),
		},
	}}

	d := Build("Alpha", matches, heroes, nil).HeroDuels()
	r, ok := d.Get("H1", "H2")
	if !ok || r.Games != 2 || r.Wins != 1 {
		t.Errorf("collapsed H1 vs H2: want {2 1}, got %+v (ok=%v)", r, ok)
	}
}
