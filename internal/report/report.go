package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-draft-metrics/internal/model"
)

// NoData is printed when records could not be fetched.
const NoData = "No data available."

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// nameOf returns the display name of id, or the id itself when unknown.
func nameOf(heroes model.HeroLookup, id model.HeroID) string {
	if h, ok := heroes.Lookup(id); ok && h.Name != "" {
		return h.Name
	}
	return string(id)
}

// lookupOf rebuilds a hero lookup from the heroes an aggregate saw.
func lookupOf(st *model.Stats) model.HeroLookup {
	l := make(model.HeroLookup, len(st.Heroes))
	for id, h := range st.Heroes {
		l[id] = model.Hero{ID: id, Name: h.Name, IconURL: h.IconURL}
	}
	return l
}

func pct(v float64) string { return fmt.Sprintf("%.0f%%", v) }

// PrintMatchList prints stored matches, newest first.
func PrintMatchList(w io.Writer, list []model.MatchSummary) {
	table := newTable(w)
	table.Header("ID", "VERSION", "TOURNAMENT", "TEAM A", "TEAM B", "TYPE", "STATUS", "GAMES", "IMPORTED")
	for _, s := range list {
		id := s.ID
		if len(id) > 12 {
			id = id[:12]
		}
		table.Append(id, s.VersionID, s.TournamentID, s.TeamA, s.TeamB,
			string(s.MatchType), string(s.Status), strconv.Itoa(s.Games), s.ImportedAt)
	}
	table.Render()
}

// PrintOverview prints the one-line totals header of an aggregate.
func PrintOverview(w io.Writer, st *model.Stats) {
	blue := model.Record{Games: st.TotalGames, Wins: st.BlueWins}
	fmt.Fprintf(w, "\nMatches: %d  |  Games: %d  |  Blue wins: %d (%s)  |  Red wins: %d  |  Simulator games: %d  |  First pick WR: %s (%d)\n\n",
		st.TotalMatches, st.TotalGames, st.BlueWins, pct(blue.WinRate()), st.RedWins,
		st.SimulatorGames, pct(st.FirstPick.WinRate()), st.FirstPick.Total)
}

// PrintTeamSides prints per-side records of a team-filtered aggregate.
func PrintTeamSides(w io.Writer, st *model.Stats) {
	table := newTable(w)
	table.Header("SIDE", "GAMES", "WINS", "WR%", "SIM GAMES")
	blue := model.Record{Games: st.GamesOnBlue, Wins: st.WinsOnBlue}
	red := model.Record{Games: st.GamesOnRed, Wins: st.WinsOnRed}
	table.Append("BLUE", strconv.Itoa(blue.Games), strconv.Itoa(blue.Wins), pct(blue.WinRate()), strconv.Itoa(st.SimulatorGamesOnBlue))
	table.Append("RED", strconv.Itoa(red.Games), strconv.Itoa(red.Wins), pct(red.WinRate()), strconv.Itoa(st.SimulatorGamesOnRed))
	table.Render()
}

// PrintHeroTable prints up to limit heroes by picks. The CI column is the
// 95% Wilson interval of the win rate; SAMPLE flags thin records.
func PrintHeroTable(w io.Writer, st *model.Stats, limit int) {
	table := newTable(w)
	table.Header("HERO", "PICKS", "BANS", "BAN_P1", "BAN_P2", "WINS", "WR%", "95% CI", "ROLES", "SAMPLE")

	for i, h := range st.HeroesByPicks() {
		if limit > 0 && i >= limit {
			break
		}
		ci := "—"
		if h.Picks > 0 {
			lo, hi := wilsonCI(h.Wins, h.Picks)
			ci = fmt.Sprintf("%.0f-%.0f", lo*100, hi*100)
		}
		table.Append(
			h.Name,
			strconv.Itoa(h.Picks),
			strconv.Itoa(h.Bans),
			strconv.Itoa(h.BansPhase1),
			strconv.Itoa(h.BansPhase2),
			strconv.Itoa(h.Wins),
			pct(h.WinRate()),
			ci,
			rolesOf(h),
			sampleFlag(h.Picks),
		)
	}
	table.Render()
}

// rolesOf lists the lanes a hero was picked into, most picked first.
func rolesOf(h *model.HeroStat) string {
	roles := make([]model.Role, 0, len(h.Roles))
	for r, rs := range h.Roles {
		if rs.Picks > 0 {
			roles = append(roles, r)
		}
	}
	sort.Slice(roles, func(i, j int) bool {
		a, b := h.Roles[roles[i]].Picks, h.Roles[roles[j]].Picks
		if a != b {
			return a > b
		}
		return roles[i] < roles[j]
	})
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = fmt.Sprintf("%s(%d)", r, h.Roles[r].Picks)
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, " ")
}

// PrintComboTable prints the most frequent same-side hero pairs.
func PrintComboTable(w io.Writer, st *model.Stats, limit int) {
	names := lookupOf(st)
	table := newTable(w)
	table.Header("HERO A", "HERO B", "GAMES", "WINS", "WR%")
	for i, key := range st.CombosByCount() {
		if limit > 0 && i >= limit {
			break
		}
		c := st.Combos[key]
		table.Append(nameOf(names, c.HeroA), nameOf(names, c.HeroB),
			strconv.Itoa(c.Count), strconv.Itoa(c.Wins), pct(c.WinRate()))
	}
	table.Render()
}

// PrintOrderTable prints, for each slot in slots, the top entries of t.
// Keys are hero ids when heroKeys is set, role names otherwise.
func PrintOrderTable(w io.Writer, t model.OrderTable, slots []int, heroes model.HeroLookup, heroKeys bool, top int) {
	table := newTable(w)
	table.Header("SLOT", "TOTAL", "MOST FREQUENT")
	for _, slot := range slots {
		row := t[slot]
		if len(row) == 0 {
			continue
		}
		keys := make([]string, 0, len(row))
		total := 0
		for k, n := range row {
			keys = append(keys, k)
			total += n
		}
		sort.Slice(keys, func(i, j int) bool {
			if row[keys[i]] != row[keys[j]] {
				return row[keys[i]] > row[keys[j]]
			}
			return keys[i] < keys[j]
		})
		if len(keys) > top {
			keys = keys[:top]
		}
		parts := make([]string, len(keys))
		for i, k := range keys {
			label := k
			if heroKeys {
				label = nameOf(heroes, model.HeroID(k))
			}
			parts[i] = fmt.Sprintf("%s %d", label, row[k])
		}
		table.Append(strconv.Itoa(slot), strconv.Itoa(total), strings.Join(parts, ", "))
	}
	table.Render()
}

// PrintDraftOrder prints the role and ban order tables of a simulator aggregate.
func PrintDraftOrder(w io.Writer, st *model.Stats) {
	if len(st.PickOrder) == 0 && len(st.BanOrder) == 0 {
		fmt.Fprintln(w, "No simulator drafts in scope.")
		return
	}
	names := lookupOf(st)
	fmt.Fprintln(w, "Pick order (roles):")
	PrintOrderTable(w, st.PickOrder, slotRange(1, 20), names, false, 3)
	fmt.Fprintln(w, "\nBan order:")
	PrintOrderTable(w, st.BanOrder, slotRange(1, 14), names, true, 3)
}

func slotRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func sampleFlag(n int) string {
	switch {
	case n >= 20:
		return "OK"
	case n >= 5:
		return "LOW"
	default:
		return "VERY_LOW"
	}
}

// wilsonCI computes the 95% Wilson score confidence interval for a proportion.
// Returns (lo, hi) as fractions in [0, 1].
func wilsonCI(hits, n int) (lo, hi float64) {
	if n == 0 {
		return 0, 1
	}
	z := 1.96
	p := float64(hits) / float64(n)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := (p + z*z/(2*nf)) / denom
	half := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}
