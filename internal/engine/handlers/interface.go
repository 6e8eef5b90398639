package handlers

import (
	"encoding/json"
	"time"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/systems"
)

// PlayerFinder resolves players. The engine's Registry implements it.
type PlayerFinder interface {
	systems.Roster
	ByUsername(username string) (*domain.Player, bool)
	// OccupiedBy reports another player standing on pos.
	OccupiedBy(pos domain.Position, exceptID string) bool
}

// Snapshotter persists the world on demand (admin "snapshot").
type Snapshotter interface {
	WriteSnapshot() (string, error)
}

// Context carries the simulation state a handler may read and mutate.
// Handlers run on the tick goroutine only.
type Context struct {
	Actor   *domain.Player
	World   *domain.WorldState
	Players PlayerFinder

	Movement   *systems.Movement
	Harvesting *systems.Harvesting
	Cooking    *systems.Cooking
	Combat     *systems.Combat

	Rng       systems.Rng
	Snapshots Snapshotter
	TickStart time.Time
}

// Occupied is the move-to substitution filter: tiles held by other players.
func (c Context) Occupied(pos domain.Position) bool {
	if c.Players == nil || c.Actor == nil {
		return false
	}
	return c.Players.OccupiedBy(pos, c.Actor.ID)
}

// Event is an outbound message produced by a handler. An empty To broadcasts
// to everyone except Except.
type Event struct {
	Type    domain.EventType
	To      string
	Except  string
	Payload any
}

// Result is what a handler hands back to the engine.
// The handler does NOT talk to the network, it returns data.
type Result struct {
	Msg      string // system chat line to the actor
	MsgType  string // system or player
	Rejected bool   // validation failed; Msg explains why
	Events   []Event
}

// HandlerFunc is the contract of every intent handler.
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - accepted, nothing to say
func EmptyResult() Result {
	return Result{}
}

// Reject reports a validation failure to the originator.
func Reject(msg string) Result {
	return Result{Msg: msg, MsgType: domain.ChatSystem, Rejected: true}
}

// Info is an accepted intent with a system line for the actor.
func Info(msg string) Result {
	return Result{Msg: msg, MsgType: domain.ChatSystem}
}

// FromValidation maps a subsystem verdict onto a Result.
func FromValidation(v systems.ValidationResult) Result {
	if !v.Valid {
		return Reject(v.Message)
	}
	return EmptyResult()
}

// With appends events to a result.
func (r Result) With(events ...Event) Result {
	r.Events = append(r.Events, events...)
	return r
}

// ToActor builds an event for the acting player.
func (c Context) ToActor(t domain.EventType, payload any) Event {
	return Event{Type: t, To: c.Actor.ID, Payload: payload}
}

// ToAll builds a broadcast event.
func ToAll(t domain.EventType, payload any) Event {
	return Event{Type: t, Payload: payload}
}
