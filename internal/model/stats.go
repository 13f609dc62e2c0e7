package model

import "sort"

// Record is a games/wins pair.
type Record struct {
	Games int `json:"games"`
	Wins  int `json:"wins"`
}

// Add counts one game, and a win when won is set.
func (r *Record) Add(won bool) {
	r.Games++
	if won {
		r.Wins++
	}
}

// WinRate returns the win percentage, 0 when no games were played.
func (r Record) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games) * 100
}

type RoleStat struct {
	Picks int `json:"picks"`
	Wins  int `json:"wins"`
}

func (r *RoleStat) WinRate() float64 {
	if r.Picks == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Picks) * 100
}

// HeroStat holds one hero's pick/ban record within a query scope.
type HeroStat struct {
	ID         HeroID             `json:"id"`
	Name       string             `json:"name"`
	IconURL    string             `json:"iconUrl,omitempty"`
	Picks      int                `json:"picks"`
	Bans       int                `json:"bans"`
	BansPhase1 int                `json:"bansPhase1"`
	BansPhase2 int                `json:"bansPhase2"`
	Wins       int                `json:"wins"`
	Roles      map[Role]*RoleStat `json:"roleStats"`
}

func (h *HeroStat) WinRate() float64 {
	if h.Picks == 0 {
		return 0
	}
	return float64(h.Wins) / float64(h.Picks) * 100
}

// RolesPlayed counts the distinct lanes the hero was picked into.
func (h *HeroStat) RolesPlayed() int {
	n := 0
	for _, rs := range h.Roles {
		if rs.Picks > 0 {
			n++
		}
	}
	return n
}

// ComboKey is the canonical "A|B" key of an unordered hero pair (A < B).
type ComboKey string

// NewComboKey orders the pair so (a,b) and (b,a) share a key.
func NewComboKey(a, b HeroID) ComboKey {
	if b < a {
		a, b = b, a
	}
	return ComboKey(string(a) + "|" + string(b))
}

type ComboStat struct {
	HeroA HeroID `json:"heroA"`
	HeroB HeroID `json:"heroB"`
	Count int    `json:"count"`
	Wins  int    `json:"wins"`
}

func (c *ComboStat) WinRate() float64 {
	if c.Count == 0 {
		return 0
	}
	return float64(c.Wins) / float64(c.Count) * 100
}

// OrderTable counts occurrences per draft slot: slot -> role or hero id -> count.
type OrderTable map[int]map[string]int

// Inc bumps the counter for key at slot.
func (t OrderTable) Inc(slot int, key string) {
	row := t[slot]
	if row == nil {
		row = make(map[string]int)
		t[slot] = row
	}
	row[key]++
}

// Count returns the counter for key at slot.
func (t OrderTable) Count(slot int, key string) int {
	return t[slot][key]
}

// SideStats are the order tables restricted to one draft side.
type SideStats struct {
	Games         int        `json:"games"`
	Wins          int        `json:"wins"`
	PickOrder     OrderTable `json:"pickOrderStats"`
	PickHeroOrder OrderTable `json:"pickHeroOrderStats"`
	BanOrder      OrderTable `json:"banOrderStats"`
}

func newSideStats() *SideStats {
	return &SideStats{
		PickOrder:     make(OrderTable),
		PickHeroOrder: make(OrderTable),
		BanOrder:      make(OrderTable),
	}
}

// HeroDuels is ourHero -> enemyHero -> record.
type HeroDuels map[HeroID]map[HeroID]*Record

// Get returns the record of ours against enemy.
func (d HeroDuels) Get(ours, enemy HeroID) (Record, bool) {
	r, ok := d[ours][enemy]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Add records one game of ours against enemy.
func (d HeroDuels) Add(ours, enemy HeroID, won bool) {
	row := d[ours]
	if row == nil {
		row = make(map[HeroID]*Record)
		d[ours] = row
	}
	r := row[enemy]
	if r == nil {
		r = &Record{}
		row[enemy] = r
	}
	r.Add(won)
}

func (d HeroDuels) merge(other HeroDuels) {
	for ours, row := range other {
		for enemy, r := range row {
			dst := d[ours]
			if dst == nil {
				dst = make(map[HeroID]*Record)
				d[ours] = dst
			}
			acc := dst[enemy]
			if acc == nil {
				acc = &Record{}
				dst[enemy] = acc
			}
			acc.Games += r.Games
			acc.Wins += r.Wins
		}
	}
}

// LaneTable is role -> ourHero -> enemyHero -> record.
type LaneTable map[Role]HeroDuels

// Add records one same-lane meeting.
func (t LaneTable) Add(role Role, ours, enemy HeroID, won bool) {
	d := t[role]
	if d == nil {
		d = make(HeroDuels)
		t[role] = d
	}
	d.Add(ours, enemy, won)
}

// HeroDuels collapses roles.
func (t LaneTable) HeroDuels() HeroDuels {
	out := make(HeroDuels)
	for _, d := range t {
		out.merge(d)
	}
	return out
}

// Stats is the aggregate of one query scope. Built fresh per query.
type Stats struct {
	Heroes       map[HeroID]*HeroStat    `json:"heroStats"`
	Teams        map[string]*Record      `json:"teamStats"`
	Combos       map[ComboKey]*ComboStat `json:"combos"`
	PickOrder    OrderTable              `json:"pickOrderStats"`
	PickHero     OrderTable              `json:"pickHeroOrderStats"`
	BanOrder     OrderTable              `json:"banOrderStats"`
	Sides        map[Side]*SideStats     `json:"sideStats"`
	LaneMatchups LaneTable               `json:"laneMatchups"`

	TotalGames   int `json:"totalGames"`
	TotalMatches int `json:"totalMatches"`
	BlueWins     int `json:"blueWins"`
	RedWins      int `json:"redWins"`

	// Only meaningful when the query carries a team filter.
	GamesOnBlue int `json:"gamesOnBlue"`
	GamesOnRed  int `json:"gamesOnRed"`
	WinsOnBlue  int `json:"winsOnBlue"`
	WinsOnRed   int `json:"winsOnRed"`

	SimulatorGames       int `json:"simulatorGames"`
	SimulatorGamesOnBlue int `json:"simulatorGamesOnBlue"`
	SimulatorGamesOnRed  int `json:"simulatorGamesOnRed"`

	FirstPick FirstPickRecord `json:"firstPickWinRate"`
}

// FirstPickRecord mirrors the {wins,total} shape presentation expects.
type FirstPickRecord struct {
	Wins  int `json:"wins"`
	Total int `json:"total"`
}

func (f FirstPickRecord) WinRate() float64 {
	if f.Total == 0 {
		return 0
	}
	return float64(f.Wins) / float64(f.Total) * 100
}

// NewStats returns a zero-valued aggregate with every table allocated.
func NewStats() *Stats {
	return &Stats{
		Heroes:       make(map[HeroID]*HeroStat),
		Teams:        make(map[string]*Record),
		Combos:       make(map[ComboKey]*ComboStat),
		PickOrder:    make(OrderTable),
		PickHero:     make(OrderTable),
		BanOrder:     make(OrderTable),
		Sides:        map[Side]*SideStats{SideBlue: newSideStats(), SideRed: newSideStats()},
		LaneMatchups: make(LaneTable),
	}
}

// Side returns the per-side tables for s, nil for an unknown side.
func (s *Stats) Side(side Side) *SideStats {
	return s.Sides[side]
}

// HeroesByPicks returns hero stats sorted by picks desc, then id.
func (s *Stats) HeroesByPicks() []*HeroStat {
	out := make([]*HeroStat, 0, len(s.Heroes))
	for _, h := range s.Heroes {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Picks != out[j].Picks {
			return out[i].Picks > out[j].Picks
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// CombosByCount returns combos sorted by count desc, then win rate desc, then key.
func (s *Stats) CombosByCount() []ComboKey {
	keys := make([]ComboKey, 0, len(s.Combos))
	for k := range s.Combos {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := s.Combos[keys[i]], s.Combos[keys[j]]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.WinRate() != b.WinRate() {
			return a.WinRate() > b.WinRate()
		}
		return keys[i] < keys[j]
	})
	return keys
}

// ---- Team profile ----

// Lane is one role of a team profile.
type Lane struct {
	Role     Role                 `json:"role"`
	Player   string               `json:"player"`
	Heroes   map[HeroID]*RoleStat `json:"heroes"`
	Matchups map[HeroID]*Record   `json:"matchups"`
	Duels    HeroDuels            `json:"duels"`
}

// TeamProfile is the role-centric signature of one team.
type TeamProfile struct {
	Team  string         `json:"team"`
	Games int            `json:"games"`
	Wins  int            `json:"wins"`
	Lanes map[Role]*Lane `json:"lanes"`
}

// NewTeamProfile allocates every canonical lane.
func NewTeamProfile(team string) *TeamProfile {
	p := &TeamProfile{Team: team, Lanes: make(map[Role]*Lane, len(Roles))}
	for _, r := range Roles {
		p.Lanes[r] = &Lane{
			Role:     r,
			Heroes:   make(map[HeroID]*RoleStat),
			Matchups: make(map[HeroID]*Record),
			Duels:    make(HeroDuels),
		}
	}
	return p
}

// HeroDuels collapses every lane's duels into one table.
func (p *TeamProfile) HeroDuels() HeroDuels {
	out := make(HeroDuels)
	for _, l := range p.Lanes {
		out.merge(l.Duels)
	}
	return out
}
