// Package scoring ranks heroes for draft decisions: which to ban, which to
// hold for late picks, which flex between lanes and which counter a lane.
//
// Every function is pure. Inputs come from the aggregator (model.Stats) and
// the profile builder (model.TeamProfile); outputs are freshly allocated,
// deterministically sorted slices.
package scoring

import (
	"math"
	"sort"

	"github.com/pable/go-draft-metrics/internal/model"
)

// Slot groups of the 20-slot simulator draft.
var (
	Phase1BanSlots  = []int{1, 2, 3, 4}
	Phase2BanSlots  = []int{11, 12, 13, 14}
	Phase2PickSlots = []int{15, 16, 17, 18}
)

const (
	DefaultTopEnemies = 5

	coreHeroes      = 10
	minThreatGames  = 3
	threatThreshold = 0.55
	maxProtectBonus = 150
	banCountWeight  = 5

	flexRoleWeight = 50
	flexPickCap    = 50
	flexLimit      = 10

	laneEnemies  = 3
	laneCounters = 3
	dominanceTop = 3
)

// TopEnemies returns the n enemy heroes the team met most often across all
// lanes, by summed matchup games.
func TopEnemies(p *model.TeamProfile, n int) []model.HeroID {
	games := make(map[model.HeroID]int)
	for _, lane := range p.Lanes {
		for enemy, rec := range lane.Matchups {
			games[enemy] += rec.Games
		}
	}
	ids := make([]model.HeroID, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if games[ids[i]] != games[ids[j]] {
			return games[ids[i]] > games[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

// Threat is one core hero the candidate beats often enough to matter.
type Threat struct {
	Core         model.HeroID `json:"core"`
	Games        int          `json:"games"`
	EnemyWinRate float64      `json:"enemyWinRate"`
	Level        int          `json:"level"`
}

type BanCandidate struct {
	HeroID       model.HeroID `json:"heroId"`
	Count        int          `json:"count"`
	Base         int          `json:"base"`
	ProtectBonus int          `json:"protectBonus"`
	Score        int          `json:"score"`
	Threats      []Threat     `json:"threats,omitempty"`
}

// BanPriority scores every hero banned in slots of order. The base score is
// the ban count times five; heroes that beat one of the team's core heroes
// (top ten by picks in ours) in at least three duels with an enemy win rate
// above 55% earn a protect bonus, capped at 150.
func BanPriority(order model.OrderTable, slots []int, ours map[model.HeroID]*model.HeroStat, duels model.HeroDuels) []BanCandidate {
	counts := make(map[model.HeroID]int)
	for _, slot := range slots {
		for key, n := range order[slot] {
			counts[model.HeroID(key)] += n
		}
	}
	core := coreOf(ours)

	out := make([]BanCandidate, 0, len(counts))
	for id, n := range counts {
		if n == 0 {
			continue
		}
		c := BanCandidate{HeroID: id, Count: n, Base: n * banCountWeight}
		for _, h := range core {
			rec, ok := duels.Get(h, id)
			if !ok || rec.Games < minThreatGames {
				continue
			}
			ewr := 1 - float64(rec.Wins)/float64(rec.Games)
			if ewr <= threatThreshold {
				continue
			}
			level := int(math.Round((ewr - 0.5) * 200))
			c.ProtectBonus += level
			c.Threats = append(c.Threats, Threat{Core: h, Games: rec.Games, EnemyWinRate: ewr, Level: level})
		}
		if c.ProtectBonus > maxProtectBonus {
			c.ProtectBonus = maxProtectBonus
		}
		c.Score = c.Base + c.ProtectBonus
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HeroID < out[j].HeroID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// coreOf returns the ten most-picked heroes, hero id breaking ties.
func coreOf(heroes map[model.HeroID]*model.HeroStat) []model.HeroID {
	ids := make([]model.HeroID, 0, len(heroes))
	for id, h := range heroes {
		if h.Picks > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := heroes[ids[i]], heroes[ids[j]]
		if a.Picks != b.Picks {
			return a.Picks > b.Picks
		}
		return ids[i] < ids[j]
	})
	if len(ids) > coreHeroes {
		ids = ids[:coreHeroes]
	}
	return ids
}

// matchupBonus sums how far id's win rate exceeds 50% against each of top.
func matchupBonus(id model.HeroID, duels model.HeroDuels, top []model.HeroID) float64 {
	var bonus float64
	for _, e := range top {
		rec, ok := duels.Get(id, e)
		if !ok || rec.Games < 1 {
			continue
		}
		bonus += math.Max(0, rec.WinRate()-50)
	}
	return bonus
}

type WinCondition struct {
	HeroID       model.HeroID `json:"heroId"`
	Name         string       `json:"name"`
	Count        int          `json:"count"`
	WinRate      float64      `json:"winRate"`
	MatchupBonus float64      `json:"matchupBonus"`
	Score        float64      `json:"score"`
}

// WinConditions ranks heroes picked in the late slots by their overall win
// rate plus their average edge over the top enemies.
func WinConditions(heroOrder model.OrderTable, slots []int, heroes map[model.HeroID]*model.HeroStat, duels model.HeroDuels, top []model.HeroID) []WinCondition {
	counts := make(map[model.HeroID]int)
	for _, slot := range slots {
		for key, n := range heroOrder[slot] {
			counts[model.HeroID(key)] += n
		}
	}
	div := float64(len(top))
	if div < 1 {
		div = 1
	}

	out := make([]WinCondition, 0, len(counts))
	for id, n := range counts {
		w := WinCondition{HeroID: id, Count: n}
		if h := heroes[id]; h != nil {
			w.Name = h.Name
			w.WinRate = h.WinRate()
		}
		w.MatchupBonus = matchupBonus(id, duels, top)
		w.Score = w.WinRate + w.MatchupBonus/div
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].HeroID < out[j].HeroID
	})
	return out
}

type FlexPick struct {
	HeroID       model.HeroID `json:"heroId"`
	Name         string       `json:"name"`
	RolesPlayed  int          `json:"rolesPlayed"`
	Picks        int          `json:"picks"`
	MatchupBonus float64      `json:"matchupBonus"`
	Score        float64      `json:"score"`
}

// FlexPicks ranks heroes played in two or more lanes. The matchup bonus is
// summed, not averaged, over the top enemies. At most ten are returned.
func FlexPicks(heroes map[model.HeroID]*model.HeroStat, duels model.HeroDuels, top []model.HeroID) []FlexPick {
	out := make([]FlexPick, 0)
	for id, h := range heroes {
		roles := h.RolesPlayed()
		if roles < 2 || h.Picks <= 0 {
			continue
		}
		f := FlexPick{HeroID: id, Name: h.Name, RolesPlayed: roles, Picks: h.Picks}
		f.MatchupBonus = matchupBonus(id, duels, top)
		f.Score = float64(roles*flexRoleWeight) + f.MatchupBonus + float64(min(h.Picks, flexPickCap))
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].HeroID < out[j].HeroID
	})
	if len(out) > flexLimit {
		out = out[:flexLimit]
	}
	return out
}

// HeroRecord is a hero with its games/wins in some context.
type HeroRecord struct {
	HeroID  model.HeroID `json:"heroId"`
	Games   int          `json:"games"`
	Wins    int          `json:"wins"`
	WinRate float64      `json:"winRate"`
}

func heroRecord(id model.HeroID, games, wins int) HeroRecord {
	r := model.Record{Games: games, Wins: wins}
	return HeroRecord{HeroID: id, Games: games, Wins: wins, WinRate: r.WinRate()}
}

// Counter is one frequent lane opponent and our heroes that beat it.
type Counter struct {
	Enemy model.HeroID `json:"enemy"`
	Games int          `json:"games"`
	Picks []HeroRecord `json:"picks"`
}

// LaneCounters lists, per lane, the three enemies met most often and for
// each up to three of our heroes with a win rate of at least 50% against it,
// ordered by win rate, then games, then hero id.
func LaneCounters(p *model.TeamProfile) map[model.Role][]Counter {
	out := make(map[model.Role][]Counter, len(model.Roles))
	for _, role := range model.Roles {
		lane := p.Lanes[role]
		if lane == nil {
			continue
		}
		met := make(map[model.HeroID]int)
		for _, row := range lane.Duels {
			for enemy, rec := range row {
				met[enemy] += rec.Games
			}
		}
		enemies := make([]model.HeroID, 0, len(met))
		for id := range met {
			enemies = append(enemies, id)
		}
		sort.Slice(enemies, func(i, j int) bool {
			if met[enemies[i]] != met[enemies[j]] {
				return met[enemies[i]] > met[enemies[j]]
			}
			return enemies[i] < enemies[j]
		})
		if len(enemies) > laneEnemies {
			enemies = enemies[:laneEnemies]
		}

		counters := make([]Counter, 0, len(enemies))
		for _, enemy := range enemies {
			c := Counter{Enemy: enemy, Games: met[enemy], Picks: []HeroRecord{}}
			for ours, row := range lane.Duels {
				rec, ok := row[enemy]
				if !ok || rec.Games < 1 || rec.WinRate() < 50 {
					continue
				}
				c.Picks = append(c.Picks, heroRecord(ours, rec.Games, rec.Wins))
			}
			sortByWinRateDesc(c.Picks)
			if len(c.Picks) > laneCounters {
				c.Picks = c.Picks[:laneCounters]
			}
			counters = append(counters, c)
		}
		out[role] = counters
	}
	return out
}

// RoleDominance classifies one lane of a team.
type RoleDominance struct {
	Player         string       `json:"player"`
	Signatures     []HeroRecord `json:"signatures"`
	AttackWeakness []HeroRecord `json:"attackWeakness"`
	Caution        []HeroRecord `json:"caution"`
}

// Dominance returns each lane's signature heroes, the enemies the lane beats
// and the enemies it struggles against.
func Dominance(p *model.TeamProfile) map[model.Role]RoleDominance {
	out := make(map[model.Role]RoleDominance, len(model.Roles))
	for _, role := range model.Roles {
		lane := p.Lanes[role]
		if lane == nil {
			continue
		}
		d := RoleDominance{
			Player:         lane.Player,
			Signatures:     []HeroRecord{},
			AttackWeakness: []HeroRecord{},
			Caution:        []HeroRecord{},
		}
		for id, hs := range lane.Heroes {
			if hs.Picks >= 1 {
				d.Signatures = append(d.Signatures, heroRecord(id, hs.Picks, hs.Wins))
			}
		}
		sort.Slice(d.Signatures, func(i, j int) bool {
			a, b := d.Signatures[i], d.Signatures[j]
			if a.Games != b.Games {
				return a.Games > b.Games
			}
			if a.WinRate != b.WinRate {
				return a.WinRate > b.WinRate
			}
			return a.HeroID < b.HeroID
		})

		for enemy, rec := range lane.Matchups {
			if rec.Games < 1 {
				continue
			}
			hr := heroRecord(enemy, rec.Games, rec.Wins)
			if hr.WinRate >= 50 {
				d.AttackWeakness = append(d.AttackWeakness, hr)
			} else {
				d.Caution = append(d.Caution, hr)
			}
		}
		sortByWinRateDesc(d.AttackWeakness)
		sort.Slice(d.Caution, func(i, j int) bool {
			a, b := d.Caution[i], d.Caution[j]
			if a.WinRate != b.WinRate {
				return a.WinRate < b.WinRate
			}
			if a.Games != b.Games {
				return a.Games > b.Games
			}
			return a.HeroID < b.HeroID
		})

		d.Signatures = truncate(d.Signatures, dominanceTop)
		d.AttackWeakness = truncate(d.AttackWeakness, dominanceTop)
		d.Caution = truncate(d.Caution, dominanceTop)
		out[role] = d
	}
	return out
}

func sortByWinRateDesc(rs []HeroRecord) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].WinRate != rs[j].WinRate {
			return rs[i].WinRate > rs[j].WinRate
		}
		if rs[i].Games != rs[j].Games {
			return rs[i].Games > rs[j].Games
		}
		return rs[i].HeroID < rs[j].HeroID
	})
}

func truncate(rs []HeroRecord, n int) []HeroRecord {
	if len(rs) > n {
		return rs[:n]
	}
	return rs
}

// Insights bundles every ranking for one team.
type Insights struct {
	Team          string                       `json:"team"`
	TopEnemies    []model.HeroID               `json:"topEnemies"`
	BanPhase1     []BanCandidate               `json:"banPhase1"`
	BanPhase2     []BanCandidate               `json:"banPhase2"`
	WinConditions []WinCondition               `json:"winConditions"`
	FlexPicks     []FlexPick                   `json:"flexPicks"`
	LaneCounters  map[model.Role][]Counter     `json:"laneCounters"`
	Dominance     map[model.Role]RoleDominance `json:"dominance"`
}

// Build computes every ranking from a team-scoped aggregate and the team's
// profile. Duel data for ban and pick scores comes from the aggregate's lane
// matchups.
func Build(stats *model.Stats, p *model.TeamProfile) *Insights {
	top := TopEnemies(p, DefaultTopEnemies)
	duels := stats.LaneMatchups.HeroDuels()
	return &Insights{
		Team:          p.Team,
		TopEnemies:    top,
		BanPhase1:     BanPriority(stats.BanOrder, Phase1BanSlots, stats.Heroes, duels),
		BanPhase2:     BanPriority(stats.BanOrder, Phase2BanSlots, stats.Heroes, duels),
		WinConditions: WinConditions(stats.PickHero, Phase2PickSlots, stats.Heroes, duels, top),
		FlexPicks:     FlexPicks(stats.Heroes, duels, top),
		LaneCounters:  LaneCounters(p),
		Dominance:     Dominance(p),
	}
}
