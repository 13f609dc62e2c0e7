// Package profile builds the role-centric signature of one team from its
// recorded games.
package profile

import (
	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/normalize"
)

// Roster maps a lane to the display name of the player who holds it.
type Roster map[model.Role]string

// Placeholder is the label used for a lane with no roster entry.
func Placeholder(r model.Role) string {
	return string(r) + " Player"
}

// Build folds every game team played in matches into a TeamProfile.
// Games where team matches neither side are skipped. roster may be nil.
func Build(team string, matches []model.DraftMatch, heroes model.HeroLookup, roster Roster) *model.TeamProfile {
	p := model.NewTeamProfile(team)
	for _, r := range model.Roles {
		name := roster[r]
		if name == "" {
			name = Placeholder(r)
		}
		p.Lanes[r].Player = name
	}

	for i := range matches {
		for j := range matches[i].Games {
			addGame(p, &matches[i].Games[j], heroes)
		}
	}
	return p
}

func addGame(p *model.TeamProfile, g *model.DraftGame, heroes model.HeroLookup) {
	mySide, ok := model.SideOfTeam(p.Team, g)
	if !ok {
		return
	}
	won := g.WinnerSide.Side() == mySide
	p.Games++
	if won {
		p.Wins++
	}

	mine := make(map[model.Role]model.HeroID, len(model.Roles))
	theirs := make(map[model.Role]model.HeroID, len(model.Roles))
	for _, raw := range g.Picks {
		ev := normalize.Event(raw)
		if ev.Type != model.Pick || ev.Role == "" {
			continue
		}
		hero, ok := heroes.Lookup(ev.HeroID)
		if !ok {
			continue
		}
		switch ev.Side {
		case mySide:
			mine[ev.Role] = hero.ID
		case mySide.Opponent():
			theirs[ev.Role] = hero.ID
		}
	}

	for _, role := range model.Roles {
		ours, ok := mine[role]
		if !ok {
			continue
		}
		lane := p.Lanes[role]
		hs := lane.Heroes[ours]
		if hs == nil {
			hs = &model.RoleStat{}
			lane.Heroes[ours] = hs
		}
		hs.Picks++
		if won {
			hs.Wins++
		}

		enemy, ok := theirs[role]
		if !ok {
			continue
		}
		rec := lane.Matchups[enemy]
		if rec == nil {
			rec = &model.Record{}
			lane.Matchups[enemy] = rec
		}
		rec.Add(won)
		lane.Duels.Add(ours, enemy, won)
	}
}
