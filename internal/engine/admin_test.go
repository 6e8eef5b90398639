package engine

import (
	"errors"
	"testing"

	"github.com/ionutrobert/WebScape/internal/domain"
)

type fakeSnapshots struct {
	path string
	err  error
}

func (f fakeSnapshots) WriteSnapshot() (string, error) { return f.path, f.err }

func joinAdmin(sim *Simulation, id, username string, x, y int) {
	data := domain.NewPlayerData(username)
	data.X, data.Y, data.HasPos = x, y, true
	data.IsAdmin = true
	sim.Queue.PushLifecycle(domain.Intent{Type: domain.IntentJoin, SessionID: id, Join: &data})
}

func TestAdminCommands(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		setup   func(sim *Simulation)
		reply   string
		check   func(t *testing.T, sim *Simulation, hub *recordingHub)
	}{
		{
			name:    "teleport",
			payload: `{"command":"teleport","args":["5","6"]}`,
			reply:   "Teleported to (5, 6).",
			check: func(t *testing.T, sim *Simulation, hub *recordingHub) {
				p := mustPlayer(t, sim, "a")
				if p.Pos != (domain.Position{X: 5, Y: 6}) || p.Move.HasTarget {
					t.Errorf("after teleport pos=%+v target=%v", p.Pos, p.Move.HasTarget)
				}
				if len(hub.received("a", domain.EventPositionUpdate)) != 1 {
					t.Error("no position-update after teleport")
				}
			},
		},
		{
			name:    "teleport onto a rock",
			payload: `{"command":"teleport","args":["7","7"]}`,
			reply:   "Cannot teleport there.",
			check: func(t *testing.T, sim *Simulation, _ *recordingHub) {
				if p := mustPlayer(t, sim, "a"); p.Pos != (domain.Position{X: 1, Y: 1}) {
					t.Errorf("Pos = %+v, want unchanged", p.Pos)
				}
			},
		},
		{
			name:    "teleport without args",
			payload: `{"command":"teleport","args":[]}`,
			reply:   "Usage: teleport <x> <y>",
		},
		{
			name:    "god",
			payload: `{"command":"god"}`,
			reply:   "God mode on.",
			check: func(t *testing.T, sim *Simulation, _ *recordingHub) {
				if !mustPlayer(t, sim, "a").GodMode {
					t.Error("GodMode = false")
				}
			},
		},
		{
			name:    "give",
			payload: `{"command":"give","args":["copper_ore","4"]}`,
			reply:   "Gave 4 x Copper Ore.",
			check: func(t *testing.T, sim *Simulation, hub *recordingHub) {
				if got := mustPlayer(t, sim, "a").Inventory.Count("copper_ore"); got != 4 {
					t.Errorf("copper_ore = %d, want 4", got)
				}
				if len(hub.received("a", domain.EventInventoryUpdate)) != 1 {
					t.Error("no inventory-update after give")
				}
			},
		},
		{
			name:    "give unknown item",
			payload: `{"command":"give","args":["mithril_bar"]}`,
			reply:   "Unknown item.",
		},
		{
			name:    "give bad quantity",
			payload: `{"command":"give","args":["copper_ore","-2"]}`,
			reply:   "Quantity must be a positive number.",
		},
		{
			name:    "setlevel",
			payload: `{"command":"setlevel","args":["Mining","10"]}`,
			reply:   "Set mining to level 10.",
			check: func(t *testing.T, sim *Simulation, _ *recordingHub) {
				p := mustPlayer(t, sim, "a")
				if p.Skills.Level(domain.SkillMining) != 10 || p.Skills[domain.SkillMining] != domain.XPForLevel(10) {
					t.Errorf("mining xp = %v", p.Skills[domain.SkillMining])
				}
			},
		},
		{
			name:    "setlevel out of range",
			payload: `{"command":"setlevel","args":["mining","100"]}`,
			reply:   "Level must be between 1 and 99.",
		},
		{
			name:    "setlevel unknown skill",
			payload: `{"command":"setlevel","args":["juggling","5"]}`,
			reply:   "Unknown skill.",
		},
		{
			name:    "heal",
			payload: `{"command":"heal"}`,
			setup:   func(sim *Simulation) { setHP(sim, "a", 2) },
			reply:   "You are fully healed.",
			check: func(t *testing.T, sim *Simulation, _ *recordingHub) {
				p := mustPlayer(t, sim, "a")
				if p.HP != p.MaxHP {
					t.Errorf("HP = %d, want %d", p.HP, p.MaxHP)
				}
			},
		},
		{
			name:    "spawn",
			payload: `{"command":"spawn","args":["tin_rock","6","1"]}`,
			reply:   "Spawned tin_rock at (6, 1).",
			check: func(t *testing.T, sim *Simulation, hub *recordingHub) {
				obj, ok := sim.World.At(6, 1)
				if !ok || obj.DefinitionID != "tin_rock" || obj.Status != domain.StatusActive {
					t.Fatalf("At(6,1) = %+v, %v", obj, ok)
				}
				if !sim.World.Grid.IsBlocked(6, 1) {
					t.Error("spawned rock does not block")
				}
				if len(hub.received("b", domain.EventWorldUpdate)) != 1 {
					t.Error("world-update not broadcast")
				}
				if len(hub.received("a", domain.EventCollisionUpdate)) != 1 {
					t.Error("admin did not get collision-update")
				}
				if len(hub.received("b", domain.EventCollisionUpdate)) != 0 {
					t.Error("non-admin got collision-update")
				}
			},
		},
		{
			name:    "spawn under a player",
			payload: `{"command":"spawn","args":["tin_rock","3","3"]}`,
			reply:   "A player is standing there.",
			check: func(t *testing.T, sim *Simulation, _ *recordingHub) {
				if _, ok := sim.World.At(3, 3); ok {
					t.Error("object spawned under bob")
				}
			},
		},
		{
			name:    "spawn unknown object",
			payload: `{"command":"spawn","args":["dragon","2","2"]}`,
			reply:   "Unknown object.",
		},
		{
			name:    "snapshot not configured",
			payload: `{"command":"snapshot"}`,
			reply:   "Snapshots are not configured.",
		},
		{
			name:    "snapshot",
			payload: `{"command":"snapshot"}`,
			setup:   func(sim *Simulation) { sim.snapshots = fakeSnapshots{path: "world.snap"} },
			reply:   "Snapshot written to world.snap.",
		},
		{
			name:    "snapshot failure",
			payload: `{"command":"snapshot"}`,
			setup:   func(sim *Simulation) { sim.snapshots = fakeSnapshots{err: errors.New("disk full")} },
			reply:   "Snapshot failed.",
		},
		{
			name:    "broadcast",
			payload: `{"command":"broadcast","args":["server","restart"]}`,
			check: func(t *testing.T, _ *Simulation, hub *recordingHub) {
				if !hub.hasChat(t, "b", "server restart") {
					t.Error("bob did not get the broadcast")
				}
			},
		},
		{
			name:    "unknown command",
			payload: `{"command":"fly"}`,
			reply:   "Unknown admin command.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := grassWorld(t, 8, 8, object("copper_rock", 7, 7))
			sim, hub, _ := newTestSim(t, world, fixedRng{})
			joinAdmin(sim, "a", "admin", 1, 1)
			joinAt(sim, "b", "bob", 3, 3)
			sim.Step()
			if tt.setup != nil {
				tt.setup(sim)
			}
			hub.reset()

			push(t, sim, "a", domain.IntentAdmin, tt.payload)
			sim.Step()

			if tt.reply != "" && !hub.hasChat(t, "a", tt.reply) {
				t.Errorf("missing reply %q, got %+v", tt.reply, hub.chats(t, "a"))
			}
			if tt.check != nil {
				tt.check(t, sim, hub)
			}
		})
	}
}

func TestAdminCommands_RequireAdmin(t *testing.T) {
	sim, hub, _ := newTestSim(t, grassWorld(t, 5, 5), fixedRng{})
	joinAt(sim, "b", "bob", 1, 1)
	sim.Step()

	push(t, sim, "b", domain.IntentAdmin, `{"command":"god"}`)
	r := sim.Step()
	if r.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", r.Rejected)
	}
	if !hub.hasChat(t, "b", "You are not an admin.") {
		t.Error("missing not-an-admin reply")
	}
	if mustPlayer(t, sim, "b").GodMode {
		t.Error("non-admin toggled god mode")
	}
}

func TestAdminCommands_ConfiguredAdmin(t *testing.T) {
	sim, hub, _ := newTestSim(t, grassWorld(t, 5, 5), fixedRng{})
	sim.cfg.Admins = []string{"Carol"}
	joinAt(sim, "c", "carol", 1, 1)
	sim.Step()

	push(t, sim, "c", domain.IntentAdmin, `{"command":"god"}`)
	sim.Step()
	if !hub.hasChat(t, "c", "God mode on.") {
		t.Errorf("chats = %+v", hub.chats(t, "c"))
	}
}

func setHP(sim *Simulation, id string, hp int) {
	if p, ok := sim.Players.Get(id); ok {
		p.HP = hp
	}
}
