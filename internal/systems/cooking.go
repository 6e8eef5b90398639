package systems

import (
	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ActiveCooking is one cook in progress. The raw item was already taken.
type ActiveCooking struct {
	Key            ActionKey
	RawItemID      string
	TicksRemaining int
}

// CookingOutcome reports a finished cook.
type CookingOutcome struct {
	PlayerID  string
	RawItemID string
	ItemID    string // cooked item or burnt_fish
	Burnt     bool
	XP        float64
	LeveledUp bool
	Lost      bool // no room for the result
}

// Cooking owns every in-flight cook.
type Cooking struct {
	world  *domain.WorldState
	roster Roster
	rng    Rng
	active map[ActionKey]*ActiveCooking
}

// NewCooking creates the system.
func NewCooking(world *domain.WorldState, roster Roster, rng Rng) *Cooking {
	return &Cooking{
		world:  world,
		roster: roster,
		rng:    rng,
		active: make(map[ActionKey]*ActiveCooking),
	}
}

// Start validates a cook on the station at (x, y) and takes one raw item.
func (c *Cooking) Start(playerID, itemID string, x, y int) ValidationResult {
	p, ok := c.roster.Get(playerID)
	if !ok {
		return Reject("Player not found")
	}
	if _, ok := domain.CookingRecipes[itemID]; !ok {
		return Reject("This item cannot be cooked.")
	}
	if p.Inventory.Count(itemID) < 1 {
		return Reject("You don't have any of this item.")
	}

	obj, ok := c.world.At(x, y)
	def, known := domain.LookupObject(obj.DefinitionID)
	if !ok || !known || !def.CookingStation {
		return Reject("You need to be near a fire or cooking range.")
	}

	key := ActionKey{PlayerID: playerID, X: x, Y: y}
	if _, busy := c.active[key]; busy {
		return Reject("Already cooking.")
	}

	if err := p.Inventory.Remove(itemID, 1); err != nil {
		return Reject("You don't have any of this item.")
	}
	c.active[key] = &ActiveCooking{
		Key:            key,
		RawItemID:      itemID,
		TicksRemaining: domain.CookingTickInterval,
	}
	return Ok()
}

// Process finishes every cook whose countdown reaches zero.
func (c *Cooking) Process() []CookingOutcome {
	var outcomes []CookingOutcome

	for _, key := range sortedKeys(c.active) {
		ck := c.active[key]
		p, ok := c.roster.Get(key.PlayerID)
		if !ok {
			delete(c.active, key)
			continue
		}

		ck.TicksRemaining--
		if ck.TicksRemaining > 0 {
			continue
		}
		delete(c.active, key)

		recipe := domain.CookingRecipes[ck.RawItemID]
		level := p.Skills.Level(domain.SkillCooking)
		burn := recipe.BurnChanceAt(level)

		out := CookingOutcome{PlayerID: key.PlayerID, RawItemID: ck.RawItemID}
		if c.rng.Float64() < burn {
			out.Burnt = true
			out.ItemID = domain.BurntFish
		} else {
			out.ItemID = recipe.CookedID
		}

		// the raw slot was freed at start, so this only fails if it filled up since
		if err := p.Inventory.Add(out.ItemID, 1); err != nil {
			out.Lost = true
		} else if !out.Burnt {
			out.XP = recipe.XP
			out.LeveledUp = p.Skills.AddXP(domain.SkillCooking, recipe.XP)
		}

		logger.Log.WithFields(logrus.Fields{
			"component": "cooking_system",
			"player_id": key.PlayerID,
			"item":      ck.RawItemID,
			"burn":      burn,
			"burnt":     out.Burnt,
		}).Debug("Cook finished.")

		outcomes = append(outcomes, out)
	}
	return outcomes
}

// IsCooking reports whether a player has a cook in flight.
func (c *Cooking) IsCooking(playerID string) bool {
	for k := range c.active {
		if k.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Len is the number of in-flight cooks.
func (c *Cooking) Len() int {
	return len(c.active)
}

// RemovePlayer purges every cook of a player.
func (c *Cooking) RemovePlayer(playerID string) int {
	removed := 0
	for k := range c.active {
		if k.PlayerID == playerID {
			delete(c.active, k)
			removed++
		}
	}
	return removed
}
