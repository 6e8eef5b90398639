package systems

import (
	"fmt"
	"math"
	"sort"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ActionKey identifies an in-flight multi-tick action of one actor on one tile.
type ActionKey struct {
	PlayerID string
	X, Y     int
}

func (k ActionKey) String() string {
	return fmt.Sprintf("%s-%d-%d", k.PlayerID, k.X, k.Y)
}

func sortedKeys[T any](m map[ActionKey]T) []ActionKey {
	keys := make([]ActionKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].PlayerID != keys[j].PlayerID {
			return keys[i].PlayerID < keys[j].PlayerID
		}
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	return keys
}

// ActiveHarvest is one gathering action in progress.
type ActiveHarvest struct {
	Key            ActionKey
	ObjectID       string
	TicksRemaining int
	ToolTier       int
	SuccessfulHits int
}

// HarvestOutcome reports one resolved harvest roll that succeeded.
type HarvestOutcome struct {
	PlayerID      string
	ObjectID      string
	Position      domain.Position
	Resource      string
	Qty           int
	Skill         domain.Skill
	XP            float64
	LeveledUp     bool
	InventoryFull bool
	Depleted      bool
	Object        domain.WorldObject // state right after depletion
}

// BaseSuccessChance is a step function of level minus requirement.
func BaseSuccessChance(level, levelReq int) float64 {
	diff := level - levelReq
	switch {
	case diff >= 20:
		return 0.8
	case diff >= 10:
		return 0.6
	case diff >= 0:
		return 0.4
	case diff >= -5:
		return 0.25
	}
	return 0.15
}

// SuccessChance adds 3% per tool tier and caps the result at 95%.
func SuccessChance(level, levelReq, toolTier int) float64 {
	return math.Min(0.95, BaseSuccessChance(level, levelReq)+float64(toolTier)*0.03)
}

// Harvesting owns every in-flight gathering action.
type Harvesting struct {
	world  *domain.WorldState
	roster Roster
	rng    Rng
	active map[ActionKey]*ActiveHarvest
}

// NewHarvesting creates the system.
func NewHarvesting(world *domain.WorldState, roster Roster, rng Rng) *Harvesting {
	return &Harvesting{
		world:  world,
		roster: roster,
		rng:    rng,
		active: make(map[ActionKey]*ActiveHarvest),
	}
}

// Start validates and registers a harvest.
func (h *Harvesting) Start(playerID string, x, y int, objectID string) ValidationResult {
	p, ok := h.roster.Get(playerID)
	if !ok {
		return Reject("Player not found")
	}
	if !p.Pos.IsOrthAdjacent(domain.Position{X: x, Y: y}) {
		return Reject("You must be standing next to it.")
	}

	obj, ok := h.world.At(x, y)
	if !ok || obj.DefinitionID != objectID || obj.Status != domain.StatusActive {
		return Reject("Nothing to harvest here.")
	}
	def, ok := domain.LookupObject(objectID)
	if !ok || !def.Harvestable() {
		return Reject("Unknown object.")
	}

	skill := def.SkillFor()
	if level := p.Skills.Level(skill); level < def.LevelReq {
		return Reject(fmt.Sprintf("You need %d %s to harvest this.", def.LevelReq, skill))
	}

	key := ActionKey{PlayerID: playerID, X: x, Y: y}
	if _, busy := h.active[key]; busy {
		return Reject("Already harvesting.")
	}

	h.active[key] = &ActiveHarvest{
		Key:            key,
		ObjectID:       objectID,
		TicksRemaining: domain.HarvestTickInterval,
		ToolTier:       p.Equipment.ToolTierFor(def.Tool),
	}
	return Ok()
}

// Process resolves every harvest whose countdown reaches zero this tick.
func (h *Harvesting) Process() []HarvestOutcome {
	var outcomes []HarvestOutcome

	for _, key := range sortedKeys(h.active) {
		hv := h.active[key]

		p, ok := h.roster.Get(key.PlayerID)
		if !ok {
			delete(h.active, key)
			continue
		}
		def, ok := domain.LookupObject(hv.ObjectID)
		if !ok {
			delete(h.active, key)
			continue
		}
		// depleted by someone else, or the actor walked away
		obj, ok := h.world.At(key.X, key.Y)
		if !ok || obj.Status != domain.StatusActive || obj.DefinitionID != hv.ObjectID ||
			!p.Pos.IsOrthAdjacent(domain.Position{X: key.X, Y: key.Y}) {
			delete(h.active, key)
			continue
		}

		hv.TicksRemaining--
		if hv.TicksRemaining > 0 {
			continue
		}
		hv.TicksRemaining = domain.HarvestTickInterval

		skill := def.SkillFor()
		chance := SuccessChance(p.Skills.Level(skill), def.LevelReq, hv.ToolTier)
		if h.rng.Float64() >= chance {
			continue
		}

		out := HarvestOutcome{
			PlayerID: key.PlayerID,
			ObjectID: hv.ObjectID,
			Position: domain.Position{X: key.X, Y: key.Y},
			Resource: def.Resource,
			Qty:      def.ResourceQty,
			Skill:    skill,
		}
		if out.Qty <= 0 {
			out.Qty = 1
		}

		if err := p.Inventory.Add(def.Resource, out.Qty); err != nil {
			out.InventoryFull = true
			delete(h.active, key)
			outcomes = append(outcomes, out)
			continue
		}
		out.XP = def.XP
		out.LeveledUp = p.Skills.AddXP(skill, def.XP)
		hv.SuccessfulHits++

		if hv.SuccessfulHits >= def.DepletionHits {
			if depleted, ok := h.world.Deplete(key.X, key.Y); ok {
				out.Depleted = true
				out.Object = depleted
			}
			delete(h.active, key)
		}

		logger.Log.WithFields(logrus.Fields{
			"component": "harvest_system",
			"player_id": key.PlayerID,
			"object":    hv.ObjectID,
			"hits":      hv.SuccessfulHits,
			"chance":    chance,
			"depleted":  out.Depleted,
		}).Debug("Harvest success.")

		outcomes = append(outcomes, out)
	}
	return outcomes
}

// IsHarvesting reports whether a player has any harvest in flight.
func (h *Harvesting) IsHarvesting(playerID string) bool {
	for k := range h.active {
		if k.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Get returns a copy of an in-flight harvest.
func (h *Harvesting) Get(key ActionKey) (ActiveHarvest, bool) {
	hv, ok := h.active[key]
	if !ok {
		return ActiveHarvest{}, false
	}
	return *hv, true
}

// Len is the number of in-flight harvests.
func (h *Harvesting) Len() int {
	return len(h.active)
}

// RemovePlayer purges every harvest of a player. Returns how many were removed.
func (h *Harvesting) RemovePlayer(playerID string) int {
	removed := 0
	for k := range h.active {
		if k.PlayerID == playerID {
			delete(h.active, k)
			removed++
		}
	}
	return removed
}
