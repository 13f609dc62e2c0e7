package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/scoring"
)

func sampleStats() *model.Stats {
	st := model.NewStats()
	st.TotalMatches, st.TotalGames, st.BlueWins, st.RedWins = 1, 2, 1, 1
	st.Heroes["H1"] = &model.HeroStat{ID: "H1", Name: "Hayate", Picks: 2, Wins: 1,
		Roles: map[model.Role]*model.RoleStat{model.RoleJungle: {Picks: 1}, model.RoleMid: {Picks: 1}}}
	st.Heroes["H2"] = &model.HeroStat{ID: "H2", Name: "Nakroth", Bans: 3, BansPhase1: 3, Roles: map[model.Role]*model.RoleStat{}}
	st.Combos[model.NewComboKey("H1", "H2")] = &model.ComboStat{HeroA: "H1", HeroB: "H2", Count: 2, Wins: 1}
	st.PickOrder.Inc(5, string(model.RoleJungle))
	st.BanOrder.Inc(1, "H2")
	return st
}

func TestPrintHeroTable(t *testing.T) {
	var buf bytes.Buffer
	PrintHeroTable(&buf, sampleStats(), 10)
	out := buf.String()

	for _, want := range []string{"Hayate", "Nakroth", "Jungle(1)", "VERY_LOW", "50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in hero table:\n%s", want, out)
		}
	}
	if strings.Index(out, "Hayate") > strings.Index(out, "Nakroth") {
		t.Error("heroes should be ordered by picks")
	}
}

func TestPrintComboAndOrder(t *testing.T) {
	var buf bytes.Buffer
	st := sampleStats()
	PrintComboTable(&buf, st, 5)
	PrintDraftOrder(&buf, st)
	out := buf.String()

	for _, want := range []string{"Hayate", "Nakroth", "Jungle 1", "Nakroth 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintDraftOrder_NonSimulator(t *testing.T) {
	var buf bytes.Buffer
	PrintDraftOrder(&buf, model.NewStats())
	if !strings.Contains(buf.String(), "No simulator drafts") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestPrintInsights(t *testing.T) {
	heroes := model.NewHeroLookup([]model.Hero{{ID: "C", Name: "Capheny"}, {ID: "K", Name: "Krixi"}})
	var buf bytes.Buffer

	PrintBanPriority(&buf, []scoring.BanCandidate{{
		HeroID: "K", Count: 3, Base: 15, ProtectBonus: 60, Score: 75,
		Threats: []scoring.Threat{{Core: "C", Games: 5, EnemyWinRate: 0.8, Level: 60}},
	}}, heroes, 5)
	PrintDominance(&buf, map[model.Role]scoring.RoleDominance{
		model.RoleMid: {Player: "Quinn", Signatures: []scoring.HeroRecord{{HeroID: "C", Games: 4, WinRate: 75}}},
	}, heroes)
	out := buf.String()

	for _, want := range []string{"Krixi", "75", "Capheny (80% over 5)", "Quinn", "Capheny 75%/4"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWilsonCI(t *testing.T) {
	lo, hi := wilsonCI(0, 0)
	if lo != 0 || hi != 1 {
		t.Errorf("empty sample: want [0,1], got [%v,%v]", lo, hi)
	}
	lo, hi = wilsonCI(50, 100)
	if lo >= 0.5 || hi <= 0.5 || lo < 0.39 || hi > 0.61 {
		t.Errorf("50/100: interval [%v,%v] should bracket 0.5 tightly", lo, hi)
	}
}
