package model

import "strings"

// HeroID identifies a hero in the hero lookup.
type HeroID string

// Side is one of the two drafting teams in a game.
type Side string

const (
	SideUnknown Side = ""
	SideBlue    Side = "BLUE"
	SideRed     Side = "RED"
)

func (s Side) String() string {
	switch s {
	case SideBlue, SideRed:
		return string(s)
	default:
		return "?"
	}
}

// Known reports whether s is BLUE or RED.
func (s Side) Known() bool { return s == SideBlue || s == SideRed }

// Opponent returns the other side, or SideUnknown for an unknown side.
func (s Side) Opponent() Side {
	switch s {
	case SideBlue:
		return SideRed
	case SideRed:
		return SideBlue
	default:
		return SideUnknown
	}
}

// Winner is the recorded winner of a game.
type Winner string

const (
	WinnerNone Winner = ""
	WinnerBlue Winner = "Blue"
	WinnerRed  Winner = "Red"
)

// Side maps the winner onto a draft side. Case and a trailing " side" are
// ignored, so "BLUE", "blue" and "Blue Side" all mean the blue side.
func (w Winner) Side() Side {
	s := strings.ToUpper(strings.TrimSpace(string(w)))
	s = strings.TrimSpace(strings.TrimSuffix(s, "SIDE"))
	switch Side(s) {
	case SideBlue:
		return SideBlue
	case SideRed:
		return SideRed
	default:
		return SideUnknown
	}
}

// PickType distinguishes picks from bans.
type PickType string

const (
	Pick PickType = "PICK"
	Ban  PickType = "BAN"
)

// Mode is the query-level match mode filter.
type Mode string

const (
	ModeAll           Mode = "ALL"
	ModeScrimSummary  Mode = "SCRIM_SUMMARY"
	ModeFullSimulator Mode = "FULL_SIMULATOR"
)

// Valid reports whether m is one of the known modes (empty counts as ALL).
func (m Mode) Valid() bool {
	switch m {
	case "", ModeAll, ModeScrimSummary, ModeFullSimulator:
		return true
	}
	return false
}

// Includes reports whether a match of type t belongs to mode m.
func (m Mode) Includes(t MatchType) bool {
	switch m {
	case ModeScrimSummary:
		return t == MatchScrimSummary
	case ModeFullSimulator:
		return t.IsSimulator()
	default:
		return true
	}
}

// MatchType is how a match was recorded.
type MatchType string

const (
	MatchScrimSummary   MatchType = "scrim_summary"
	MatchScrimSimulator MatchType = "scrim_simulator"
	MatchSimulation     MatchType = "simulation"
)

// IsSimulator reports whether the match was drafted through the 20-slot simulator.
func (t MatchType) IsSimulator() bool {
	return t == MatchScrimSimulator || t == MatchSimulation
}

// Status is the lifecycle state of a match. Finished matches are immutable.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusOngoing  Status = "ongoing"
	StatusFinished Status = "finished"
)

// Role is one of the five canonical lanes.
type Role string

const (
	RoleDarkSlayer Role = "Dark Slayer"
	RoleJungle     Role = "Jungle"
	RoleMid        Role = "Mid"
	RoleAbyssal    Role = "Abyssal"
	RoleRoam       Role = "Roam"
)

// Roles lists the canonical lanes in display order.
var Roles = []Role{RoleDarkSlayer, RoleJungle, RoleMid, RoleAbyssal, RoleRoam}

var roleAliases = map[string]Role{
	"dark slayer": RoleDarkSlayer,
	"darkslayer":  RoleDarkSlayer,
	"dsl":         RoleDarkSlayer,
	"top":         RoleDarkSlayer,
	"jungle":      RoleJungle,
	"jg":          RoleJungle,
	"jungler":     RoleJungle,
	"mid":         RoleMid,
	"middle":      RoleMid,
	"abyssal":     RoleAbyssal,
	"adl":         RoleAbyssal,
	"carry":       RoleAbyssal,
	"bot":         RoleAbyssal,
	"roam":        RoleRoam,
	"sup":         RoleRoam,
	"support":     RoleRoam,
}

// ParseRole maps a recorded lane label onto a canonical role.
func ParseRole(s string) (Role, bool) {
	r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

// ---- Raw records supplied by the persistence layer ----

type DraftPick struct {
	GameID        string   `json:"gameId,omitempty"`
	HeroID        HeroID   `json:"heroId"`
	Type          PickType `json:"type"`
	Side          string   `json:"side"` // BLUE, RED, BLUE SIDE, RED SIDE or empty
	PositionIndex int      `json:"positionIndex"`
	AssignedRole  string   `json:"assignedRole,omitempty"` // PICK only
}

type DraftGame struct {
	ID           string      `json:"id"`
	MatchID      string      `json:"matchId,omitempty"`
	GameNumber   int         `json:"gameNumber"`
	WinnerSide   Winner      `json:"winnerSide"`
	BlueTeamName string      `json:"blueTeamName"`
	RedTeamName  string      `json:"redTeamName"`
	Picks        []DraftPick `json:"picks"`
}

type DraftMatch struct {
	ID           string      `json:"id"`
	VersionID    string      `json:"versionId"`
	TournamentID string      `json:"tournamentId,omitempty"`
	TeamA        string      `json:"teamA"`
	TeamB        string      `json:"teamB"`
	Mode         Mode        `json:"mode"`
	MatchType    MatchType   `json:"matchType"`
	Status       Status      `json:"status"`
	Games        []DraftGame `json:"games"`
}

// IsSimulator reports whether the match carries 20-slot simulator drafts.
func (m *DraftMatch) IsSimulator() bool { return m.MatchType.IsSimulator() }

// TeamName returns the name of the team drafting on side s.
func (g *DraftGame) TeamName(s Side) string {
	switch s {
	case SideBlue:
		return g.BlueTeamName
	case SideRed:
		return g.RedTeamName
	}
	return ""
}

// SideOfTeam locates team in a game: exact name match first, then substring
// containment, blue before red.
func SideOfTeam(team string, g *DraftGame) (Side, bool) {
	if team == "" {
		return SideUnknown, false
	}
	switch team {
	case g.BlueTeamName:
		return SideBlue, true
	case g.RedTeamName:
		return SideRed, true
	}
	if g.BlueTeamName != "" && strings.Contains(g.BlueTeamName, team) {
		return SideBlue, true
	}
	if g.RedTeamName != "" && strings.Contains(g.RedTeamName, team) {
		return SideRed, true
	}
	return SideUnknown, false
}

// Hero is one entry in the hero lookup.
type Hero struct {
	ID      HeroID `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"iconUrl,omitempty"`
}

// HeroLookup resolves hero ids to display data.
type HeroLookup map[HeroID]Hero

// NewHeroLookup indexes heroes by id. Later duplicates win.
func NewHeroLookup(heroes []Hero) HeroLookup {
	l := make(HeroLookup, len(heroes))
	for _, h := range heroes {
		l[h.ID] = h
	}
	return l
}

// Lookup returns the hero for id and whether it exists.
func (l HeroLookup) Lookup(id HeroID) (Hero, bool) {
	h, ok := l[id]
	return h, ok
}

// ---- Normalized events ----

// Slot is the draft phase a position index falls into.
type Slot int

const (
	SlotOutOfRange Slot = iota
	SlotBanPhase1
	SlotPickPhase1
	SlotBanPhase2
	SlotPickPhase2
)

func (s Slot) String() string {
	switch s {
	case SlotBanPhase1:
		return "BAN_P1"
	case SlotPickPhase1:
		return "PICK_P1"
	case SlotBanPhase2:
		return "BAN_P2"
	case SlotPickPhase2:
		return "PICK_P2"
	default:
		return "OUT_OF_RANGE"
	}
}

// Event is a pick or ban after side/role canonicalization.
type Event struct {
	HeroID   HeroID
	Type     PickType
	Side     Side
	Position int
	Role     Role // empty when the recorded role is missing or unknown
	Slot     Slot
}

// MatchSummary is one stored match without its games, for listings.
type MatchSummary struct {
	ID           string    `json:"id"`
	VersionID    string    `json:"versionId"`
	TournamentID string    `json:"tournamentId,omitempty"`
	TeamA        string    `json:"teamA"`
	TeamB        string    `json:"teamB"`
	MatchType    MatchType `json:"matchType"`
	Status       Status    `json:"status"`
	Games        int       `json:"games"`
	ImportedAt   string    `json:"importedAt"`
}
