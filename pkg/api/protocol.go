package api

import (
	"encoding/json"
)

// --- CLIENT -> SERVER ---

// Envelope is the root of every frame in both directions.
type Envelope struct {
	// Type is the wire name of the intent or event ("move-to", "players-update", ...).
	Type string `json:"type"`

	// Payload depends on Type.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// JoinPayload is the first frame of a connection.
type JoinPayload struct {
	Username string `json:"username"`
}

// PositionPayload targets a tile (move-to).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// HarvestPayload targets a resource object.
type HarvestPayload struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	ObjectID string `json:"objectId"`
}

// CookPayload cooks one raw item on a station.
type CookPayload struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	ItemID string `json:"itemId"`
}

// AttackPayload starts auto-attack. Style is accurate, aggressive or defensive.
type AttackPayload struct {
	TargetID string `json:"targetId"`
	Style    string `json:"style,omitempty"`
}

// ChatPayload is a public chat line.
type ChatPayload struct {
	Message string `json:"message"`
}

// AdminPayload is an admin command with positional args.
type AdminPayload struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// ItemPayload is used by equip.
type ItemPayload struct {
	ItemID string `json:"itemId"`
}

// SlotPayload is used by unequip.
type SlotPayload struct {
	Slot string `json:"slot"`
}

// --- SERVER -> CLIENT ---

// PlayerView is one entry of players-update.
type PlayerView struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	X            int     `json:"x"`
	Y            int     `json:"y"`
	StartX       int     `json:"startX"`
	StartY       int     `json:"startY"`
	Facing       string  `json:"facing"`
	IsRunning    bool    `json:"isRunning"`
	RunEnergy    float64 `json:"runEnergy"`
	IsHarvesting bool    `json:"isHarvesting"`
	HP           int     `json:"hp"`
	MaxHP        int     `json:"maxHp"`
}

// WorldObjectView is one resource or station. world-update carries a slice of them.
type WorldObjectView struct {
	Position          PositionPayload `json:"position"`
	DefinitionID      string          `json:"definitionId"`
	Status            string          `json:"status"`
	TicksUntilRespawn int             `json:"ticksUntilRespawn"`
}

// TileView is one terrain tile.
type TileView struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	TileType string  `json:"tileType"`
	Height   float64 `json:"height"`
}

// InitPayload is sent once after a successful join.
type InitPayload struct {
	PlayerID      string             `json:"playerId"`
	Players       []PlayerView       `json:"players"`
	WorldObjects  []WorldObjectView  `json:"worldObjects"`
	WorldTiles    []TileView         `json:"worldTiles"`
	TickStartTime int64              `json:"tickStartTime"`
	TickDuration  int64              `json:"tickDuration"`
	WorldWidth    int                `json:"worldWidth"`
	WorldHeight   int                `json:"worldHeight"`
	IsAdmin       bool               `json:"isAdmin"`
	Inventory     map[string]int     `json:"inventory"`
	Skills        map[string]float64 `json:"skills"`
	Equipment     map[string]string  `json:"equipment"`
}

// PlayersUpdatePayload is broadcast every tick.
type PlayersUpdatePayload struct {
	Players       []PlayerView `json:"players"`
	TickStartTime int64        `json:"tickStartTime"`
}

// PositionUpdatePayload goes to a mover.
type PositionUpdatePayload struct {
	X             int     `json:"x"`
	Y             int     `json:"y"`
	StartX        int     `json:"startX"`
	StartY        int     `json:"startY"`
	Facing        string  `json:"facing"`
	TickStartTime int64   `json:"tickStartTime"`
	IsRunning     bool    `json:"isRunning"`
	RunEnergy     float64 `json:"runEnergy"`
}

// XPGainPayload reports XP in one skill.
type XPGainPayload struct {
	Skill  string  `json:"skill"`
	Amount float64 `json:"amount"`
}

// HarvestStartedPayload echoes an accepted harvest.
type HarvestStartedPayload struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	ObjectID string `json:"objectId"`
}

// CombatHitPayload is sent to both sides of a swing.
type CombatHitPayload struct {
	TargetID string `json:"targetId"`
	Hit      bool   `json:"hit"`
	Damage   int    `json:"damage"`
	YourHP   int    `json:"yourHp"`
	TargetHP int    `json:"targetHp"`
}

// ChatMessagePayload is both system and player chat. Username is empty for system lines.
type ChatMessagePayload struct {
	Username string `json:"username,omitempty"`
	Message  string `json:"message"`
	Type     string `json:"type"`
}

// RunStatePayload follows toggle-run.
type RunStatePayload struct {
	IsRunning bool    `json:"isRunning"`
	RunEnergy float64 `json:"runEnergy"`
}

// CollisionUpdatePayload is the full collision bitmap (blocked[y][x]).
type CollisionUpdatePayload struct {
	Blocked [][]bool `json:"blocked"`
}

// PlayerPresencePayload announces joins and leaves.
type PlayerPresencePayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// EquipmentUpdatePayload lists worn items by slot name.
type EquipmentUpdatePayload struct {
	Slots map[string]string `json:"slots"`
}

// NewEnvelope marshals a payload under a type. Marshal errors are returned as is.
func NewEnvelope(eventType string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: eventType, Payload: raw}, nil
}
