package handlers

import (
	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/pkg/api"
)

// PlayerView renders one players-update entry.
func PlayerView(p *domain.Player, harvesting bool) api.PlayerView {
	return api.PlayerView{
		ID:           p.ID,
		Username:     p.Username,
		X:            p.Pos.X,
		Y:            p.Pos.Y,
		StartX:       p.PrevPos.X,
		StartY:       p.PrevPos.Y,
		Facing:       p.Facing.String(),
		IsRunning:    p.IsRunning,
		RunEnergy:    p.RunEnergy,
		IsHarvesting: harvesting,
		HP:           p.HP,
		MaxHP:        p.MaxHP,
	}
}

// ObjectViews renders the world-update payload.
func ObjectViews(w *domain.WorldState) []api.WorldObjectView {
	all := w.All()
	out := make([]api.WorldObjectView, 0, len(all))
	for _, o := range all {
		out = append(out, api.WorldObjectView{
			Position:          api.PositionPayload{X: o.Position.X, Y: o.Position.Y},
			DefinitionID:      o.DefinitionID,
			Status:            string(o.Status),
			TicksUntilRespawn: o.TicksUntilRespawn,
		})
	}
	return out
}

// RunState renders run-state-update.
func RunState(p *domain.Player) api.RunStatePayload {
	return api.RunStatePayload{IsRunning: p.IsRunning, RunEnergy: p.RunEnergy}
}

// Position renders position-update.
func Position(p *domain.Player, tickStart int64) api.PositionUpdatePayload {
	return api.PositionUpdatePayload{
		X:             p.Pos.X,
		Y:             p.Pos.Y,
		StartX:        p.PrevPos.X,
		StartY:        p.PrevPos.Y,
		Facing:        p.Facing.String(),
		TickStartTime: tickStart,
		IsRunning:     p.IsRunning,
		RunEnergy:     p.RunEnergy,
	}
}

// SystemChat is a chat line without a username.
func SystemChat(msg string) api.ChatMessagePayload {
	return api.ChatMessagePayload{Message: msg, Type: domain.ChatSystem}
}

// Inventory renders inventory-update.
func Inventory(p *domain.Player) map[string]int {
	return p.Inventory.Totals()
}

// Equipment renders equipment-update.
func Equipment(p *domain.Player) api.EquipmentUpdatePayload {
	return api.EquipmentUpdatePayload{Slots: p.Equipment.ToWire()}
}
