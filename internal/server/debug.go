package server

import (
	"net/http"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine"
)

// DebugHandler exposes the internal state of the simulation.
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes mounts the debug endpoints.
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/players", enableCORS(h.handlePlayers))
	mux.HandleFunc("/debug/world", enableCORS(h.handleWorld))
	mux.HandleFunc("/debug/queue", enableCORS(h.handleQueue))
	mux.HandleFunc("/debug/log", enableCORS(h.handleLog))
}

type playerDump struct {
	ID        string             `json:"id"`
	Username  string             `json:"username"`
	Pos       domain.Position    `json:"pos"`
	Target    *domain.Position   `json:"target,omitempty"`
	PathLen   int                `json:"path_len"`
	HP        int                `json:"hp"`
	MaxHP     int                `json:"max_hp"`
	RunEnergy float64            `json:"run_energy"`
	IsRunning bool               `json:"is_running"`
	CombatTo  string             `json:"combat_target,omitempty"`
	Cooldown  int                `json:"combat_cooldown"`
	Inventory map[string]int     `json:"inventory"`
	Skills    map[string]float64 `json:"skills"`
	Equipment map[string]string  `json:"equipment"`
	IsAdmin   bool               `json:"is_admin"`
	GodMode   bool               `json:"god_mode"`
}

// /debug/players - every session, including movement and combat state
func (h *DebugHandler) handlePlayers(w http.ResponseWriter, r *http.Request) {
	var out []playerDump
	h.Service.Sim.Inspect(func(s *engine.Simulation) {
		for _, p := range s.Players.All() {
			d := playerDump{
				ID:        p.ID,
				Username:  p.Username,
				Pos:       p.Pos,
				PathLen:   len(p.Move.Path),
				HP:        p.HP,
				MaxHP:     p.MaxHP,
				RunEnergy: p.RunEnergy,
				IsRunning: p.IsRunning,
				Cooldown:  p.Combat.Cooldown,
				Inventory: p.Inventory.Totals(),
				Skills:    p.Skills.ToWire(),
				Equipment: p.Equipment.ToWire(),
				IsAdmin:   p.IsAdmin,
				GodMode:   p.GodMode,
			}
			if p.Move.HasTarget {
				target := p.Move.Target
				d.Target = &target
			}
			if p.Combat.InCombat {
				d.CombatTo = p.Combat.TargetID
			}
			out = append(out, d)
		}
	})
	if out == nil {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, out)
}

// /debug/world - dimensions and every object with its status
func (h *DebugHandler) handleWorld(w http.ResponseWriter, r *http.Request) {
	type worldDump struct {
		Tick     uint64               `json:"tick"`
		Width    int                  `json:"width"`
		Height   int                  `json:"height"`
		Depleted int                  `json:"depleted"`
		Objects  []domain.WorldObject `json:"objects"`
	}

	var dump worldDump
	h.Service.Sim.Inspect(func(s *engine.Simulation) {
		dump.Tick = s.Tick()
		dump.Width = s.World.Width()
		dump.Height = s.World.Height()
		dump.Objects = s.World.All()
		for _, o := range dump.Objects {
			if o.Status == domain.StatusDepleted {
				dump.Depleted++
			}
		}
	})
	writeJSON(w, dump)
}

// /debug/queue - intent queue pressure and outbound drops
func (h *DebugHandler) handleQueue(w http.ResponseWriter, r *http.Request) {
	type queueDump struct {
		Tick        uint64 `json:"tick"`
		Pending     int    `json:"pending"`
		Lifecycle   int    `json:"lifecycle"`
		Capacity    int    `json:"capacity"`
		Dropped     uint64 `json:"dropped"`
		Subscribers int    `json:"subscribers"`
		SendDropped uint64 `json:"send_dropped"`
	}

	q := h.Service.Sim.Queue
	writeJSON(w, queueDump{
		Tick:        h.Service.Sim.Tick(),
		Pending:     q.Len(),
		Lifecycle:   q.LifecycleLen(),
		Capacity:    q.Cap(),
		Dropped:     q.Dropped(),
		Subscribers: h.Service.Hub.SubscriberCount(),
		SendDropped: h.Service.Hub.Dropped(),
	})
}

// /debug/log - the recent game log
func (h *DebugHandler) handleLog(w http.ResponseWriter, r *http.Request) {
	var logs []engine.LogEntry
	h.Service.Sim.Inspect(func(s *engine.Simulation) {
		logs = s.Logs()
	})
	if len(logs) == 0 {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, logs)
}
