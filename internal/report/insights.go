package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/scoring"
)

// PrintProfile prints one row per lane: player, most picked heroes and the
// lane's record against its enemies.
func PrintProfile(w io.Writer, p *model.TeamProfile, heroes model.HeroLookup) {
	fmt.Fprintf(w, "\nTeam: %s  |  Games: %d  |  Wins: %d\n\n", p.Team, p.Games, p.Wins)

	table := newTable(w)
	table.Header("ROLE", "PLAYER", "HEROES (PICKS/WR)", "LANE GAMES", "LANE WR%")
	for _, role := range model.Roles {
		lane := p.Lanes[role]
		if lane == nil {
			continue
		}
		ids := make([]model.HeroID, 0, len(lane.Heroes))
		for id := range lane.Heroes {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			a, b := lane.Heroes[ids[i]], lane.Heroes[ids[j]]
			if a.Picks != b.Picks {
				return a.Picks > b.Picks
			}
			return ids[i] < ids[j]
		})
		if len(ids) > 4 {
			ids = ids[:4]
		}
		parts := make([]string, len(ids))
		for i, id := range ids {
			hs := lane.Heroes[id]
			parts[i] = fmt.Sprintf("%s %d/%s", nameOf(heroes, id), hs.Picks, pct(hs.WinRate()))
		}

		var vs model.Record
		for _, rec := range lane.Matchups {
			vs.Games += rec.Games
			vs.Wins += rec.Wins
		}
		table.Append(string(role), lane.Player, orDash(strings.Join(parts, ", ")),
			strconv.Itoa(vs.Games), pct(vs.WinRate()))
	}
	table.Render()
}

// PrintBanPriority prints ranked ban candidates with the core heroes they threaten.
func PrintBanPriority(w io.Writer, cands []scoring.BanCandidate, heroes model.HeroLookup, limit int) {
	table := newTable(w)
	table.Header("HERO", "BANS", "BASE", "PROTECT", "SCORE", "THREATENS")
	for i, c := range cands {
		if limit > 0 && i >= limit {
			break
		}
		threats := make([]string, len(c.Threats))
		for j, t := range c.Threats {
			threats[j] = fmt.Sprintf("%s (%s over %d)", nameOf(heroes, t.Core), pct(t.EnemyWinRate*100), t.Games)
		}
		table.Append(nameOf(heroes, c.HeroID), strconv.Itoa(c.Count), strconv.Itoa(c.Base),
			strconv.Itoa(c.ProtectBonus), strconv.Itoa(c.Score), orDash(strings.Join(threats, ", ")))
	}
	table.Render()
}

// PrintWinConditions prints late-pick candidates.
func PrintWinConditions(w io.Writer, wcs []scoring.WinCondition, heroes model.HeroLookup, limit int) {
	table := newTable(w)
	table.Header("HERO", "LATE PICKS", "WR%", "MATCHUP+", "SCORE")
	for i, c := range wcs {
		if limit > 0 && i >= limit {
			break
		}
		table.Append(nameOf(heroes, c.HeroID), strconv.Itoa(c.Count), pct(c.WinRate),
			fmt.Sprintf("%.1f", c.MatchupBonus), fmt.Sprintf("%.1f", c.Score))
	}
	table.Render()
}

// PrintFlexPicks prints heroes the team plays in several lanes.
func PrintFlexPicks(w io.Writer, fps []scoring.FlexPick, heroes model.HeroLookup) {
	table := newTable(w)
	table.Header("HERO", "ROLES", "PICKS", "MATCHUP+", "SCORE")
	for _, f := range fps {
		table.Append(nameOf(heroes, f.HeroID), strconv.Itoa(f.RolesPlayed), strconv.Itoa(f.Picks),
			fmt.Sprintf("%.1f", f.MatchupBonus), fmt.Sprintf("%.1f", f.Score))
	}
	table.Render()
}

// PrintLaneCounters prints, per lane, frequent enemies and our best answers.
func PrintLaneCounters(w io.Writer, counters map[model.Role][]scoring.Counter, heroes model.HeroLookup) {
	table := newTable(w)
	table.Header("ROLE", "ENEMY", "MET", "OUR ANSWERS")
	for _, role := range model.Roles {
		for _, c := range counters[role] {
			table.Append(string(role), nameOf(heroes, c.Enemy), strconv.Itoa(c.Games), records(c.Picks, heroes))
		}
	}
	table.Render()
}

// PrintDominance prints each lane's signatures, favourable and unfavourable matchups.
func PrintDominance(w io.Writer, dom map[model.Role]scoring.RoleDominance, heroes model.HeroLookup) {
	table := newTable(w)
	table.Header("ROLE", "PLAYER", "SIGNATURES", "ATTACK", "CAUTION")
	for _, role := range model.Roles {
		d, ok := dom[role]
		if !ok {
			continue
		}
		table.Append(string(role), d.Player, records(d.Signatures, heroes),
			records(d.AttackWeakness, heroes), records(d.Caution, heroes))
	}
	table.Render()
}

func records(rs []scoring.HeroRecord, heroes model.HeroLookup) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("%s %s/%d", nameOf(heroes, r.HeroID), pct(r.WinRate), r.Games)
	}
	return orDash(strings.Join(parts, ", "))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
