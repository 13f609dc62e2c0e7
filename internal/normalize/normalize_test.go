package normalize

import (
	"testing"

	"github.com/pable/go-draft-metrics/internal/model"
)

func TestNormalizeSide(t *testing.T) {
	cases := []struct {
		raw  string
		want model.Side
	}{
		{"BLUE", model.SideBlue},
		{"RED", model.SideRed},
		{"BLUE SIDE", model.SideBlue},
		{"RED SIDE", model.SideRed},
		{"blue side", model.SideBlue},
		{" red ", model.SideRed},
		{"", model.SideUnknown},
		{"GREEN", model.SideUnknown},
	}
	for _, c := range cases {
		got := NormalizeSide(c.raw)
		if got != c.want {
			t.Errorf("NormalizeSide(%q): want %q, got %q", c.raw, c.want, got)
		}
	}
}

func TestInferBanSide(t *testing.T) {
	cases := []struct {
		kind     model.PickType
		position int
		side     model.Side
		want     model.Side
	}{
		{model.Ban, 1, model.SideUnknown, model.SideBlue},
		{model.Ban, 3, model.SideUnknown, model.SideBlue},
		{model.Ban, 6, model.SideUnknown, model.SideBlue},
		{model.Ban, 8, model.SideUnknown, model.SideBlue},
		{model.Ban, 2, model.SideUnknown, model.SideRed},
		{model.Ban, 4, model.SideUnknown, model.SideRed},
		{model.Ban, 5, model.SideUnknown, model.SideRed},
		{model.Ban, 7, model.SideUnknown, model.SideRed},
		// Outside the inferable set: stays unknown (AmbiguousSide).
		{model.Ban, 9, model.SideUnknown, model.SideUnknown},
		{model.Ban, 12, model.SideUnknown, model.SideUnknown},
		// Picks are never inferred.
		{model.Pick, 1, model.SideUnknown, model.SideUnknown},
		// A recorded side always wins.
		{model.Ban, 2, model.SideBlue, model.SideBlue},
	}
	for _, c := range cases {
		got := InferBanSide(c.kind, c.position, c.side)
		if got != c.want {
			t.Errorf("InferBanSide(%s, %d, %q): want %q, got %q", c.kind, c.position, c.side, c.want, got)
		}
	}
}

func TestClassifySlot(t *testing.T) {
	cases := []struct {
		position int
		want     model.Slot
	}{
		{0, model.SlotOutOfRange},
		{1, model.SlotBanPhase1},
		{4, model.SlotBanPhase1},
		{5, model.SlotPickPhase1},
		{10, model.SlotPickPhase1},
		{11, model.SlotBanPhase2},
		{14, model.SlotBanPhase2},
		{15, model.SlotPickPhase2},
		{18, model.SlotPickPhase2},
		{19, model.SlotOutOfRange},
		{20, model.SlotOutOfRange},
	}
	for _, c := range cases {
		got := ClassifySlot(c.position)
		if got != c.want {
			t.Errorf("ClassifySlot(%d): want %s, got %s", c.position, c.want, got)
		}
	}
}

func TestBanPhase(t *testing.T) {
	cases := []struct {
		position int
		want     int
	}{
		{1, 1}, {4, 1},
		{5, 2}, {8, 2},
		{9, 0}, {10, 0},
		{11, 2}, {14, 2},
		{15, 0}, {20, 0},
	}
	for _, c := range cases {
		if got := BanPhase(c.position); got != c.want {
			t.Errorf("BanPhase(%d): want %d, got %d", c.position, c.want, got)
		}
	}
}

func TestEvent(t *testing.T) {
	ev := Event(model.DraftPick{HeroID: "H1", Type: "pick", Side: "Blue Side", PositionIndex: 5, AssignedRole: "jg"})
	if ev.Type != model.Pick {
		t.Errorf("Type: want PICK, got %q", ev.Type)
	}
	if ev.Side != model.SideBlue {
		t.Errorf("Side: want BLUE, got %q", ev.Side)
	}
	if ev.Role != model.RoleJungle {
		t.Errorf("Role: want Jungle, got %q", ev.Role)
	}
	if ev.Slot != model.SlotPickPhase1 {
		t.Errorf("Slot: want PICK_P1, got %s", ev.Slot)
	}

	ban := Event(model.DraftPick{HeroID: "H2", Type: model.Ban, PositionIndex: 2, AssignedRole: "Mid"})
	if ban.Side != model.SideRed {
		t.Errorf("blank ban at 2: want RED, got %q", ban.Side)
	}
	if ban.Role != "" {
		t.Errorf("bans carry no role, got %q", ban.Role)
	}

	unknownRole := Event(model.DraftPick{HeroID: "H3", Type: model.Pick, Side: "RED", PositionIndex: 6, AssignedRole: "Coach"})
	if unknownRole.Role != "" {
		t.Errorf("unknown role: want empty, got %q", unknownRole.Role)
	}
}
