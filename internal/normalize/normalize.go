// Package normalize canonicalizes raw pick/ban records into model.Event values.
package normalize

import (
	"strings"

	"github.com/pable/go-draft-metrics/internal/model"
)

// NormalizeSide maps a raw side label onto BLUE, RED or unknown.
func NormalizeSide(raw string) model.Side {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BLUE", "BLUE SIDE":
		return model.SideBlue
	case "RED", "RED SIDE":
		return model.SideRed
	default:
		return model.SideUnknown
	}
}

// InferBanSide fills in the side of a blank ban from the fixed 8-slot global
// ban-pick order. Anything else comes back unchanged.
func InferBanSide(kind model.PickType, position int, side model.Side) model.Side {
	if side != model.SideUnknown || kind != model.Ban {
		return side
	}
	switch position {
	case 1, 3, 6, 8:
		return model.SideBlue
	case 2, 4, 5, 7:
		return model.SideRed
	}
	return side
}

// ClassifySlot places a 20-slot simulator position into its draft phase.
func ClassifySlot(position int) model.Slot {
	switch {
	case position >= 1 && position <= 4:
		return model.SlotBanPhase1
	case position >= 5 && position <= 10:
		return model.SlotPickPhase1
	case position >= 11 && position <= 14:
		return model.SlotBanPhase2
	case position >= 15 && position <= 18:
		return model.SlotPickPhase2
	default:
		return model.SlotOutOfRange
	}
}

// BanPhase returns 1 or 2 for the ban phase a ban at position counts toward,
// 0 when it counts toward neither. Positions 5-8 are the second ban round of
// the 8-slot global scheme.
func BanPhase(position int) int {
	switch {
	case position <= 4:
		return 1
	case position <= 8, position >= 11 && position <= 14:
		return 2
	}
	return 0
}

// Event normalizes one raw pick or ban.
func Event(p model.DraftPick) model.Event {
	kind := model.PickType(strings.ToUpper(strings.TrimSpace(string(p.Type))))
	side := InferBanSide(kind, p.PositionIndex, NormalizeSide(p.Side))

	ev := model.Event{
		HeroID:   p.HeroID,
		Type:     kind,
		Side:     side,
		Position: p.PositionIndex,
		Slot:     ClassifySlot(p.PositionIndex),
	}
	if kind == model.Pick {
		if r, ok := model.ParseRole(p.AssignedRole); ok {
			ev.Role = r
		}
	}
	return ev
}
