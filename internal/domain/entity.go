package domain

// CombatState is the per-player combat sub-state. The zero value is "idle".
type CombatState struct {
	Cooldown int    // ticks until the next attack may fire
	InCombat bool   // auto-attack enabled
	TargetID string // session id of the target
	Style    AttackStyle
}

// Clear drops the auto-attack target.
func (c *CombatState) Clear() {
	c.InCombat = false
	c.TargetID = ""
}

// MoveState holds the pending movement target and its cached path.
type MoveState struct {
	HasTarget bool
	Target    Position
	Path      []Position
}

// Clear drops target and path.
func (m *MoveState) Clear() {
	m.HasTarget = false
	m.Target = Position{}
	m.Path = nil
}

// Player is the authoritative record of one connected session.
type Player struct {
	ID       string // connection (session) id
	Username string

	Pos     Position
	PrevPos Position
	Facing  Facing
	Move    MoveState

	Skills    Skills
	Inventory Inventory
	Equipment Equipment

	HP        int
	MaxHP     int
	RunEnergy float64
	IsRunning bool

	Combat  CombatState
	GodMode bool
	IsAdmin bool
}

// NewPlayer builds a session from persisted data. Equipment caches are resolved here.
func NewPlayer(sessionID string, data PlayerData, spawn Position) *Player {
	inv, _ := InventoryFromTotals(data.Inventory)
	p := &Player{
		ID:        sessionID,
		Username:  data.Username,
		Pos:       spawn,
		PrevPos:   spawn,
		Facing:    ParseFacing(data.Facing),
		Skills:    SkillsFromWire(data.Skills),
		Inventory: inv,
		HP:        DefaultMaxHP,
		MaxHP:     DefaultMaxHP,
		RunEnergy: MaxRunEnergy,
		IsAdmin:   data.IsAdmin,
	}
	for slotName, itemID := range data.Equipment {
		if slot := ParseSlot(slotName); slot != SlotNone {
			p.Equipment.Set(slot, itemID)
		}
	}
	return p
}

// Snapshot renders the persistable part of a player.
func (p *Player) Snapshot() PlayerData {
	return PlayerData{
		Username:  p.Username,
		X:         p.Pos.X,
		Y:         p.Pos.Y,
		Facing:    p.Facing.String(),
		Skills:    p.Skills.ToWire(),
		Inventory: p.Inventory.Totals(),
		Equipment: p.Equipment.ToWire(),
		IsAdmin:   p.IsAdmin,
	}
}

// PlayerData is the persistence contract record.
type PlayerData struct {
	Username  string             `json:"username"`
	X         int                `json:"x"`
	Y         int                `json:"y"`
	Facing    string             `json:"facing"`
	Skills    map[string]float64 `json:"skills"`
	Inventory map[string]int     `json:"inventory"`
	Equipment map[string]string  `json:"equipment"`
	IsAdmin   bool               `json:"isAdmin"`
	HasPos    bool               `json:"-"` // false for freshly created players
}

// NewPlayerData is the default record for a new username.
func NewPlayerData(username string) PlayerData {
	return PlayerData{
		Username:  username,
		Facing:    FacingSouth.String(),
		Skills:    DefaultSkills().ToWire(),
		Inventory: map[string]int{"bronze_pickaxe": 1},
		Equipment: map[string]string{},
	}
}
