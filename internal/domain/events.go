package domain

// EventType identifies an outbound server event.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventInit
	EventPlayersUpdate
	EventWorldUpdate
	EventPositionUpdate
	EventInventoryUpdate
	EventXPGain
	EventHarvestStarted
	EventCombatHit
	EventChat
	EventRunStateUpdate
	EventCollisionUpdate
	EventPlayerJoined
	EventPlayerLeft
	EventEquipmentUpdate
)

var eventTypeToString = map[EventType]string{
	EventInit:            "init",
	EventPlayersUpdate:   "players-update",
	EventWorldUpdate:     "world-update",
	EventPositionUpdate:  "position-update",
	EventInventoryUpdate: "inventory-update",
	EventXPGain:          "xp-gain",
	EventHarvestStarted:  "harvest-started",
	EventCombatHit:       "combat-hit",
	EventChat:            "chat",
	EventRunStateUpdate:  "run-state-update",
	EventCollisionUpdate: "collision-update",
	EventPlayerJoined:    "player-joined",
	EventPlayerLeft:      "player-left",
	EventEquipmentUpdate: "equipment-update",
}

// String returns the wire name of the event.
func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "unknown"
}
