package engine

import (
	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine/handlers"
	"github.com/ionutrobert/WebScape/pkg/api"
)

// playerViews renders every connected player in registry order.
func (s *Simulation) playerViews() []api.PlayerView {
	all := s.Players.All()
	out := make([]api.PlayerView, 0, len(all))
	for _, p := range all {
		out = append(out, handlers.PlayerView(p, s.harvesting.IsHarvesting(p.ID)))
	}
	return out
}

func tileViews(w *domain.WorldState) []api.TileView {
	out := make([]api.TileView, 0, len(w.Tiles))
	for _, t := range w.Tiles {
		out = append(out, api.TileView{X: t.X, Y: t.Y, TileType: string(t.Type), Height: t.Height})
	}
	return out
}

// buildInit is the full snapshot a freshly joined player receives.
func (s *Simulation) buildInit(p *domain.Player) api.InitPayload {
	return api.InitPayload{
		PlayerID:      p.ID,
		Players:       s.playerViews(),
		WorldObjects:  handlers.ObjectViews(s.World),
		WorldTiles:    tileViews(s.World),
		TickStartTime: s.tickStart.UnixMilli(),
		TickDuration:  s.cfg.TickInterval.Milliseconds(),
		WorldWidth:    s.World.Width(),
		WorldHeight:   s.World.Height(),
		IsAdmin:       p.IsAdmin,
		Inventory:     p.Inventory.Totals(),
		Skills:        p.Skills.ToWire(),
		Equipment:     p.Equipment.ToWire(),
	}
}

func (s *Simulation) playersUpdate() api.PlayersUpdatePayload {
	return api.PlayersUpdatePayload{
		Players:       s.playerViews(),
		TickStartTime: s.tickStart.UnixMilli(),
	}
}
