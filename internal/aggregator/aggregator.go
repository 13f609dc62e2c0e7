// Package aggregator folds recorded drafts into the statistics tables of
// model.Stats. It is a pure transform: no I/O, no shared state.
package aggregator

import (
	"sort"

	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/normalize"
)

// Aggregate computes the Stats of matches within f. It never returns nil;
// empty input yields a zero-valued aggregate.
func Aggregate(matches []model.DraftMatch, heroes model.HeroLookup, f Filter) *model.Stats {
	s := NewState(heroes, f)
	for _, step := range Stream(matches, f) {
		s.Apply(step)
	}
	return s.Stats()
}

// State is the reducer accumulator. Apply one Step at a time.
type State struct {
	heroes model.HeroLookup
	filter Filter
	stats  *model.Stats
	game   gameScratch
}

// gameScratch holds the per-game state reset on every StepGame.
type gameScratch struct {
	active    bool // false when the team filter matched neither side
	simulator bool
	winner    model.Side
	target    model.Side // team side under a team filter, else unknown

	picks map[model.Side][]model.HeroID
	lanes map[model.Side]map[model.Role]model.HeroID

	firstPickPos  int
	firstPickSide model.Side
}

// NewState returns an empty accumulator for one query scope.
func NewState(heroes model.HeroLookup, f Filter) *State {
	return &State{heroes: heroes, filter: f, stats: model.NewStats()}
}

// Stats returns the aggregate built so far.
func (s *State) Stats() *model.Stats { return s.stats }

// Apply folds one step into the accumulator.
func (s *State) Apply(step Step) {
	switch step.Kind {
	case StepMatch:
		s.stats.TotalMatches++
	case StepGame:
		s.startGame(step.Game, step.Simulator)
	case StepPick:
		s.applyEvent(step.Event)
	case StepGameEnd:
		s.endGame()
	}
}

func (s *State) teamFiltered() bool { return s.filter.TeamName != "" }

func (s *State) startGame(g *model.DraftGame, simulator bool) {
	st := s.stats
	winner := g.WinnerSide.Side()

	// Top-level totals are folded before the team filter is consulted, so a
	// game whose names match neither side still counts here.
	st.TotalGames++
	switch winner {
	case model.SideBlue:
		st.BlueWins++
	case model.SideRed:
		st.RedWins++
	}
	for _, side := range []model.Side{model.SideBlue, model.SideRed} {
		name := g.TeamName(side)
		if name == "" {
			continue
		}
		rec := st.Teams[name]
		if rec == nil {
			rec = &model.Record{}
			st.Teams[name] = rec
		}
		rec.Add(winner == side)
	}

	s.game = gameScratch{
		simulator: simulator,
		winner:    winner,
		picks:     make(map[model.Side][]model.HeroID, 2),
		lanes: map[model.Side]map[model.Role]model.HeroID{
			model.SideBlue: {},
			model.SideRed:  {},
		},
	}

	if !s.teamFiltered() {
		s.game.active = true
		if simulator {
			st.SimulatorGames++
		}
		for _, side := range []model.Side{model.SideBlue, model.SideRed} {
			st.Sides[side].Games++
			if winner == side {
				st.Sides[side].Wins++
			}
		}
		return
	}

	side, ok := model.SideOfTeam(s.filter.TeamName, g)
	if !ok {
		return
	}
	s.game.active = true
	s.game.target = side
	won := winner == side
	st.Sides[side].Games++
	if won {
		st.Sides[side].Wins++
	}
	switch side {
	case model.SideBlue:
		st.GamesOnBlue++
		if won {
			st.WinsOnBlue++
		}
		if simulator {
			st.SimulatorGames++
			st.SimulatorGamesOnBlue++
		}
	case model.SideRed:
		st.GamesOnRed++
		if won {
			st.WinsOnRed++
		}
		if simulator {
			st.SimulatorGames++
			st.SimulatorGamesOnRed++
		}
	}
}

func (s *State) applyEvent(ev model.Event) {
	g := &s.game
	if !g.active {
		return
	}
	if ev.Type != model.Pick && ev.Type != model.Ban {
		return
	}
	hero, ok := s.heroes.Lookup(ev.HeroID)
	if !ok {
		return
	}

	// Lane matchups and first pick need the opponent's picks, so they are
	// recorded before the side filter drops them.
	if ev.Type == model.Pick && ev.Side.Known() {
		if ev.Role != "" {
			g.lanes[ev.Side][ev.Role] = hero.ID
		}
		if g.firstPickSide == model.SideUnknown || ev.Position < g.firstPickPos {
			g.firstPickPos = ev.Position
			g.firstPickSide = ev.Side
		}
	}

	if s.teamFiltered() && ev.Side != g.target {
		return
	}

	hs := s.heroStat(hero)
	switch ev.Type {
	case model.Ban:
		s.applyBan(hs, ev)
	case model.Pick:
		s.applyPick(hs, ev)
	}
}

func (s *State) applyBan(hs *model.HeroStat, ev model.Event) {
	hs.Bans++
	switch normalize.BanPhase(ev.Position) {
	case 1:
		hs.BansPhase1++
	case 2:
		hs.BansPhase2++
	}
	if !s.game.simulator || ev.Position < 1 || ev.Position > 14 {
		return
	}
	key := string(hs.ID)
	s.stats.BanOrder.Inc(ev.Position, key)
	if side := s.stats.Side(ev.Side); side != nil {
		side.BanOrder.Inc(ev.Position, key)
	}
}

func (s *State) applyPick(hs *model.HeroStat, ev model.Event) {
	g := &s.game
	hs.Picks++
	isWin := ev.Side.Known() && ev.Side == g.winner
	if isWin {
		hs.Wins++
	}

	inOrderRange := g.simulator && ev.Position >= 1 && ev.Position <= 20
	side := s.stats.Side(ev.Side)

	if ev.Role != "" {
		rs := hs.Roles[ev.Role]
		if rs == nil {
			rs = &model.RoleStat{}
			hs.Roles[ev.Role] = rs
		}
		rs.Picks++
		if isWin {
			rs.Wins++
		}
		if inOrderRange {
			s.stats.PickOrder.Inc(ev.Position, string(ev.Role))
			if side != nil {
				side.PickOrder.Inc(ev.Position, string(ev.Role))
			}
		}
	}
	if inOrderRange {
		s.stats.PickHero.Inc(ev.Position, string(hs.ID))
		if side != nil {
			side.PickHeroOrder.Inc(ev.Position, string(hs.ID))
		}
	}

	if !ev.Side.Known() {
		return
	}
	g.picks[ev.Side] = append(g.picks[ev.Side], hs.ID)
}

func (s *State) endGame() {
	g := &s.game
	if !g.active {
		return
	}
	st := s.stats

	for _, side := range []model.Side{model.SideBlue, model.SideRed} {
		ids := append([]model.HeroID(nil), g.picks[side]...)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		won := g.winner == side
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				if ids[i] == ids[j] {
					continue
				}
				key := model.NewComboKey(ids[i], ids[j])
				c := st.Combos[key]
				if c == nil {
					c = &model.ComboStat{HeroA: ids[i], HeroB: ids[j]}
					st.Combos[key] = c
				}
				c.Count++
				if won {
					c.Wins++
				}
			}
		}
	}

	perspectives := []model.Side{model.SideBlue, model.SideRed}
	if s.teamFiltered() {
		perspectives = []model.Side{g.target}
	}
	for _, ours := range perspectives {
		mine, theirs := g.lanes[ours], g.lanes[ours.Opponent()]
		for _, role := range model.Roles {
			myHero, ok := mine[role]
			if !ok {
				continue
			}
			enemy, ok := theirs[role]
			if !ok {
				continue
			}
			st.LaneMatchups.Add(role, myHero, enemy, g.winner == ours)
		}
	}

	if g.firstPickSide.Known() {
		if !s.teamFiltered() || g.firstPickSide == g.target {
			st.FirstPick.Total++
			if g.winner == g.firstPickSide {
				st.FirstPick.Wins++
			}
		}
	}
}

func (s *State) heroStat(h model.Hero) *model.HeroStat {
	hs := s.stats.Heroes[h.ID]
	if hs == nil {
		hs = &model.HeroStat{
			ID:      h.ID,
			Name:    h.Name,
			IconURL: h.IconURL,
			Roles:   make(map[model.Role]*model.RoleStat),
		}
		s.stats.Heroes[h.ID] = hs
	}
	return hs
}
