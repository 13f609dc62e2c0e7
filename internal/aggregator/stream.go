package aggregator

import (
	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/normalize"
)

// Filter is the query scope. Zero values mean "no filter".
type Filter struct {
	VersionID    string
	Mode         model.Mode
	TournamentID string
	TeamName     string
}

// Matches reports whether the match-level fields of m fall inside the scope.
// The team filter is applied per game.
func (f Filter) Matches(m *model.DraftMatch) bool {
	if f.VersionID != "" && m.VersionID != f.VersionID {
		return false
	}
	if f.TournamentID != "" && m.TournamentID != f.TournamentID {
		return false
	}
	return f.Mode.Includes(m.MatchType)
}

// StepKind tags a Step.
type StepKind int

const (
	StepMatch StepKind = iota
	StepGame
	StepPick
	StepGameEnd
)

// Step is one element of the normalized event stream the reducer folds over.
type Step struct {
	Kind      StepKind
	Simulator bool
	Game      *model.DraftGame // StepGame, StepGameEnd
	Event     model.Event      // StepPick
}

// Stream flattens matches into the ordered step sequence:
// match, then per game: game, picks..., game end.
// Matches outside f and matches without games emit nothing.
func Stream(matches []model.DraftMatch, f Filter) []Step {
	var steps []Step
	for i := range matches {
		m := &matches[i]
		if !f.Matches(m) || len(m.Games) == 0 {
			continue
		}
		sim := m.IsSimulator()
		steps = append(steps, Step{Kind: StepMatch, Simulator: sim})
		for j := range m.Games {
			g := &m.Games[j]
			steps = append(steps, Step{Kind: StepGame, Simulator: sim, Game: g})
			for _, p := range g.Picks {
				steps = append(steps, Step{Kind: StepPick, Simulator: sim, Event: normalize.Event(p)})
			}
			steps = append(steps, Step{Kind: StepGameEnd, Simulator: sim, Game: g})
		}
	}
	return steps
}
