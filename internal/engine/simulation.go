package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine/handlers"
	"github.com/ionutrobert/WebScape/internal/engine/handlers/actions"
	"github.com/ionutrobert/WebScape/internal/engine/handlers/admin"
	"github.com/ionutrobert/WebScape/internal/systems"
	"github.com/ionutrobert/WebScape/pkg/api"
	"github.com/ionutrobert/WebScape/pkg/logger"

	"github.com/sirupsen/logrus"
)

const (
	msgInvalidCommand = "Invalid command."
	msgInventoryFull  = "Your inventory is too full."

	// departedTTL is how many ticks a departed player's state is kept for a reconnect.
	departedTTL = 100
)

type departedPlayer struct {
	data domain.PlayerData
	tick uint64
}

// Publisher delivers outbound envelopes. network.Broadcaster implements it.
type Publisher interface {
	SendTo(sessionID string, msg api.Envelope) bool
	Broadcast(msg api.Envelope)
	BroadcastExcept(msg api.Envelope, exceptID string)
	Unregister(sessionID string)
}

// TickReport summarises one Step.
type TickReport struct {
	Tick      uint64
	StartedAt time.Time

	Joined   int
	Left     int
	Applied  int
	Rejected int

	Attacks  []systems.AttackOutcome
	Harvests []systems.HarvestOutcome
	// Depleted holds copies taken when the object depleted, before the respawn sweep.
	Depleted  []domain.WorldObject
	Cooked    []systems.CookingOutcome
	Respawned bool
	Moves     []systems.MovementResult
}

// WorldChanged is true when a world-update went out.
func (r TickReport) WorldChanged() bool {
	return len(r.Depleted) > 0 || r.Respawned
}

// Simulation owns all authoritative state. Step is the only writer.
type Simulation struct {
	mu  sync.Mutex
	cfg Config

	World   *domain.WorldState
	Players *Registry
	Queue   *IntentQueue

	movement   *systems.Movement
	harvesting *systems.Harvesting
	cooking    *systems.Cooking
	combat     *systems.Combat
	rng        systems.Rng

	hub       Publisher
	store     Store
	snapshots handlers.Snapshotter

	handlers map[domain.IntentType]handlers.HandlerFunc

	// last known state of recently removed players, keyed by lowercase username
	departed map[string]departedPlayer

	tick      atomic.Uint64
	tickStart time.Time
	logs      []LogEntry
	now       func() time.Time
}

// NewSimulation wires the systems over a loaded world.
func NewSimulation(cfg Config, world *domain.WorldState, hub Publisher, store Store) *Simulation {
	cfg = cfg.withDefaults()
	return newSimulation(cfg, world, hub, store, rand.New(rand.NewSource(cfg.Seed)))
}

func newSimulation(cfg Config, world *domain.WorldState, hub Publisher, store Store, rng systems.Rng) *Simulation {
	players := NewRegistry()
	pf := systems.NewPathfinder(world.Grid)

	s := &Simulation{
		cfg:        cfg,
		World:      world,
		Players:    players,
		Queue:      NewIntentQueue(cfg.QueueCapacity),
		movement:   systems.NewMovement(world.Grid, pf),
		harvesting: systems.NewHarvesting(world, players, rng),
		cooking:    systems.NewCooking(world, players, rng),
		combat:     systems.NewCombat(players, rng),
		rng:        rng,
		hub:        hub,
		store:      store,
		handlers:   make(map[domain.IntentType]handlers.HandlerFunc),
		departed:   make(map[string]departedPlayer),
		now:        time.Now,
	}
	s.tickStart = s.now()
	s.registerHandlers()
	return s
}

func (s *Simulation) registerHandlers() {
	s.handlers[domain.IntentMoveTo] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.IntentHarvest] = handlers.WithPayload(actions.HandleHarvest)
	s.handlers[domain.IntentCook] = handlers.WithPayload(actions.HandleCook)
	s.handlers[domain.IntentAttack] = handlers.WithPayload(actions.HandleAttack)
	s.handlers[domain.IntentToggleRun] = handlers.WithEmptyPayload(actions.HandleToggleRun)
	s.handlers[domain.IntentChat] = handlers.WithPayload(actions.HandleChat)
	s.handlers[domain.IntentEquip] = handlers.WithPayload(actions.HandleEquip)
	s.handlers[domain.IntentUnequip] = handlers.WithPayload(actions.HandleUnequip)
	s.handlers[domain.IntentAdmin] = handlers.WithPayload(admin.Handle)
}

// SetSnapshotter enables the admin snapshot command.
func (s *Simulation) SetSnapshotter(snap handlers.Snapshotter) {
	s.mu.Lock()
	s.snapshots = snap
	s.mu.Unlock()
}

// Config returns the effective config.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Inspect runs fn while holding the tick lock. fn must not block or keep
// references to simulation state after it returns.
func (s *Simulation) Inspect(fn func(*Simulation)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// PlayerData returns the persistable record of a connected session.
func (s *Simulation) PlayerData(sessionID string) (domain.PlayerData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Players.Get(sessionID)
	if !ok {
		return domain.PlayerData{}, fmt.Errorf("session %s: %w", sessionID, ErrPlayerNotFound)
	}
	return p.Snapshot(), nil
}

// Tick is the number of the last started tick. Safe from any goroutine.
func (s *Simulation) Tick() uint64 {
	return s.tick.Load()
}

// Run fires Step every TickInterval until ctx is cancelled.
func (s *Simulation) Run(ctx context.Context) {
	log := logger.Log.WithField("component", "simulation")
	log.WithFields(logrus.Fields{
		"interval": s.cfg.TickInterval,
		"seed":     s.cfg.Seed,
	}).Info("Tick loop started")

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.WithField("tick", s.tick.Load()).Info("Tick loop stopped")
			return
		case <-ticker.C:
			s.Step()
		}
	}
}

// Step runs one tick: intents, combat, harvest, cooking, respawn, movement, broadcast.
func (s *Simulation) Step() TickReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	tick := s.tick.Add(1)
	s.tickStart = s.now()
	report := TickReport{Tick: tick, StartedAt: s.tickStart}

	// 0. intents
	lifecycle, gameplay := s.Queue.Drain()
	for _, in := range lifecycle {
		s.applyLifecycle(in, &report)
	}
	for _, in := range gameplay {
		s.applyIntent(in, &report)
	}
	s.expireDeparted(tick)

	// 1. combat
	report.Attacks = s.combat.ProcessTicks(s.Players.All())
	s.emitAttacks(report.Attacks)

	// 2. harvest
	report.Harvests = s.harvesting.Process()
	for _, h := range report.Harvests {
		if h.Depleted {
			report.Depleted = append(report.Depleted, h.Object)
		}
	}
	s.emitHarvests(report.Harvests)

	// 3. cooking
	report.Cooked = s.cooking.Process()
	s.emitCooking(report.Cooked)

	// 4. respawn sweep, held back while someone stands on the tile
	report.Respawned = s.World.Tick(func(pos domain.Position) bool {
		return s.Players.OccupiedBy(pos, "")
	})

	// 5. movement
	wasRunning := make(map[string]bool)
	for _, p := range s.Players.All() {
		if p.IsRunning {
			wasRunning[p.ID] = true
		}
	}
	report.Moves = s.movement.Process(s.Players.All())
	s.emitMoves(report.Moves, wasRunning)

	// 6. broadcast
	s.broadcast(domain.EventPlayersUpdate, s.playersUpdate())
	if report.WorldChanged() {
		s.broadcast(domain.EventWorldUpdate, handlers.ObjectViews(s.World))
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "simulation",
		"tick":      report.Tick,
		"players":   s.Players.Len(),
		"applied":   report.Applied,
		"rejected":  report.Rejected,
		"harvests":  len(report.Harvests),
		"attacks":   len(report.Attacks),
		"moves":     len(report.Moves),
		"duration":  s.now().Sub(report.StartedAt),
	}).Debug("Tick complete")

	return report
}

// --- intents ---

func (s *Simulation) applyLifecycle(in domain.Intent, report *TickReport) {
	switch in.Type {
	case domain.IntentJoin:
		if s.join(in) {
			report.Joined++
		}
	case domain.IntentLeave:
		if p, ok := s.Players.Get(in.SessionID); ok {
			s.removePlayer(p, "disconnect")
			report.Left++
		}
	}
}

func (s *Simulation) join(in domain.Intent) bool {
	data := domain.NewPlayerData("")
	if in.Join != nil {
		data = *in.Join
	}
	if data.Username == "" {
		logger.Log.WithFields(logrus.Fields{
			"component": "simulation",
			"session":   in.SessionID,
		}).Warn("Join without a username")
		return false
	}

	// same username logged in twice: the newest session takes over the live state
	if old, ok := s.Players.ByUsername(data.Username); ok && old.ID != in.SessionID {
		s.removePlayer(old, "replaced")
		s.hub.Unregister(old.ID)
	}
	// the record loaded by the gateway can predate the last save of a quick reconnect
	key := strings.ToLower(data.Username)
	if recent, ok := s.departed[key]; ok {
		data = recent.data
		delete(s.departed, key)
	}

	spawn := findSpawn(s.World.Grid, data, func(pos domain.Position) bool {
		return s.Players.OccupiedBy(pos, in.SessionID)
	})
	p := domain.NewPlayer(in.SessionID, data, spawn)
	p.IsAdmin = p.IsAdmin || s.cfg.IsAdmin(p.Username)
	s.Players.Add(p)

	s.sendTo(p.ID, domain.EventInit, s.buildInit(p))
	s.emit(handlers.Event{
		Type:    domain.EventPlayerJoined,
		Except:  p.ID,
		Payload: api.PlayerPresencePayload{ID: p.ID, Username: p.Username},
	})
	s.AddLog(fmt.Sprintf("%s joined at (%d, %d)", p.Username, spawn.X, spawn.Y), "join")
	return true
}

// removePlayer purges a session from every subsystem, persists it and tells the others.
func (s *Simulation) removePlayer(p *domain.Player, reason string) {
	harvests := s.harvesting.RemovePlayer(p.ID)
	cooks := s.cooking.RemovePlayer(p.ID)
	s.combat.ClearTargeting(p.ID)
	s.Players.Remove(p.ID)

	data := p.Snapshot()
	data.HasPos = true
	s.departed[strings.ToLower(p.Username)] = departedPlayer{data: data, tick: s.tick.Load()}

	if s.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := s.store.SavePlayer(ctx, p.Username, data); err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{
				"component": "simulation",
				"username":  p.Username,
			}).Error("Failed to save player")
		}
		cancel()
	}

	s.emit(handlers.Event{
		Type:    domain.EventPlayerLeft,
		Except:  p.ID,
		Payload: api.PlayerPresencePayload{ID: p.ID, Username: p.Username},
	})

	logger.Log.WithFields(logrus.Fields{
		"component": "simulation",
		"session":   p.ID,
		"username":  p.Username,
		"reason":    reason,
		"harvests":  harvests,
		"cooks":     cooks,
	}).Info("Player removed")
	s.AddLog(fmt.Sprintf("%s left at (%d, %d)", p.Username, p.Pos.X, p.Pos.Y), "leave")
}

// expireDeparted drops reconnect state older than departedTTL. By then the
// store has the save.
func (s *Simulation) expireDeparted(tick uint64) {
	for key, d := range s.departed {
		if tick-d.tick > departedTTL {
			delete(s.departed, key)
		}
	}
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("handler panic: %v", e.value)
}

func runHandler(h handlers.HandlerFunc, ctx handlers.Context, payload json.RawMessage) (res handlers.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r, stack: debug.Stack()}
		}
	}()
	return h(ctx, payload)
}

func (s *Simulation) applyIntent(in domain.Intent, report *TickReport) {
	actor, ok := s.Players.Get(in.SessionID)
	if !ok {
		// left earlier in this drain
		return
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component": "simulation",
		"session":   in.SessionID,
		"intent":    in.Type.String(),
	})

	h, ok := s.handlers[in.Type]
	if !ok {
		log.Warn("No handler for intent")
		s.systemChat(actor.ID, msgInvalidCommand)
		report.Rejected++
		return
	}

	ctx := handlers.Context{
		Actor:      actor,
		World:      s.World,
		Players:    s.Players,
		Movement:   s.movement,
		Harvesting: s.harvesting,
		Cooking:    s.cooking,
		Combat:     s.combat,
		Rng:        s.rng,
		Snapshots:  s.snapshots,
		TickStart:  s.tickStart,
	}

	res, err := runHandler(h, ctx, in.Payload)
	if err != nil {
		var pe *panicError
		if errors.As(err, &pe) {
			log.WithField("stack", string(pe.stack)).Error(err)
		} else {
			log.WithError(err).Warn("Malformed intent")
		}
		s.systemChat(actor.ID, msgInvalidCommand)
		report.Rejected++
		return
	}

	if res.Rejected {
		report.Rejected++
	} else {
		report.Applied++
	}
	if res.Msg != "" {
		msgType := res.MsgType
		if msgType == "" {
			msgType = domain.ChatSystem
		}
		s.sendTo(actor.ID, domain.EventChat, api.ChatMessagePayload{Message: res.Msg, Type: msgType})
	}
	s.emit(res.Events...)
}

// --- phase events ---

func (s *Simulation) emitAttacks(outcomes []systems.AttackOutcome) {
	for _, o := range outcomes {
		s.sendTo(o.AttackerID, domain.EventCombatHit, api.CombatHitPayload{
			TargetID: o.TargetID,
			Hit:      o.Hit,
			Damage:   o.Damage,
			YourHP:   o.AttackerHP,
			TargetHP: o.TargetHP,
		})
		s.sendTo(o.TargetID, domain.EventCombatHit, api.CombatHitPayload{
			TargetID: o.AttackerID,
			Hit:      o.Hit,
			Damage:   o.Damage,
			YourHP:   o.TargetHP,
			TargetHP: o.AttackerHP,
		})

		if !o.Killed {
			continue
		}
		attacker, _ := s.Players.Get(o.AttackerID)
		target, _ := s.Players.Get(o.TargetID)
		if attacker == nil || target == nil {
			continue
		}
		msg := fmt.Sprintf("%s defeated %s!", attacker.Username, target.Username)
		s.broadcast(domain.EventChat, handlers.SystemChat(msg))
		s.AddLog(msg, "combat")
		if o.KillXP > 0 {
			for _, sk := range []domain.Skill{domain.SkillAttack, domain.SkillStrength, domain.SkillDefense} {
				s.sendTo(o.AttackerID, domain.EventXPGain, api.XPGainPayload{Skill: sk.String(), Amount: o.KillXP})
			}
		}
	}
}

func (s *Simulation) emitHarvests(outcomes []systems.HarvestOutcome) {
	for _, h := range outcomes {
		if h.InventoryFull {
			s.systemChat(h.PlayerID, msgInventoryFull)
			continue
		}
		p, ok := s.Players.Get(h.PlayerID)
		if !ok {
			continue
		}
		s.sendTo(h.PlayerID, domain.EventInventoryUpdate, handlers.Inventory(p))
		s.sendTo(h.PlayerID, domain.EventXPGain, api.XPGainPayload{Skill: h.Skill.String(), Amount: h.XP})
		s.systemChat(h.PlayerID, fmt.Sprintf("You get %s.", h.Resource))
		if h.LeveledUp {
			s.systemChat(h.PlayerID, levelUpMessage(p, h.Skill))
		}
	}
}

func (s *Simulation) emitCooking(outcomes []systems.CookingOutcome) {
	for _, c := range outcomes {
		p, ok := s.Players.Get(c.PlayerID)
		if !ok {
			continue
		}
		switch {
		case c.Lost:
			s.systemChat(c.PlayerID, msgInventoryFull)
		case c.Burnt:
			s.systemChat(c.PlayerID, "You accidentally burn the fish!")
		default:
			s.systemChat(c.PlayerID, "You successfully cook the fish!")
			s.sendTo(c.PlayerID, domain.EventXPGain, api.XPGainPayload{Skill: domain.SkillCooking.String(), Amount: c.XP})
			if c.LeveledUp {
				s.systemChat(c.PlayerID, levelUpMessage(p, domain.SkillCooking))
			}
		}
		s.sendTo(c.PlayerID, domain.EventInventoryUpdate, handlers.Inventory(p))
	}
}

func (s *Simulation) emitMoves(moves []systems.MovementResult, wasRunning map[string]bool) {
	tickStart := s.tickStart.UnixMilli()
	for _, m := range moves {
		if !m.HasMoved() {
			continue
		}
		if p, ok := s.Players.Get(m.PlayerID); ok {
			s.sendTo(p.ID, domain.EventPositionUpdate, handlers.Position(p, tickStart))
		}
	}
	for id := range wasRunning {
		if p, ok := s.Players.Get(id); ok && !p.IsRunning {
			s.sendTo(id, domain.EventRunStateUpdate, handlers.RunState(p))
		}
	}
}

func levelUpMessage(p *domain.Player, sk domain.Skill) string {
	return fmt.Sprintf("Congratulations, your %s level is now %d.", sk, p.Skills.Level(sk))
}

// --- outbound ---

func (s *Simulation) envelope(t domain.EventType, payload any) (api.Envelope, bool) {
	env, err := api.NewEnvelope(t.String(), payload)
	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"component": "simulation",
			"event":     t.String(),
		}).Error("Failed to encode event")
		return api.Envelope{}, false
	}
	return env, true
}

func (s *Simulation) sendTo(id string, t domain.EventType, payload any) {
	if env, ok := s.envelope(t, payload); ok {
		s.hub.SendTo(id, env)
	}
}

func (s *Simulation) broadcast(t domain.EventType, payload any) {
	if env, ok := s.envelope(t, payload); ok {
		s.hub.Broadcast(env)
	}
}

func (s *Simulation) systemChat(id, msg string) {
	s.sendTo(id, domain.EventChat, handlers.SystemChat(msg))
}

func (s *Simulation) emit(events ...handlers.Event) {
	for _, ev := range events {
		env, ok := s.envelope(ev.Type, ev.Payload)
		if !ok {
			continue
		}
		switch {
		case ev.To != "":
			s.hub.SendTo(ev.To, env)
		case ev.Except != "":
			s.hub.BroadcastExcept(env, ev.Except)
		default:
			s.hub.Broadcast(env)
		}
	}
}
