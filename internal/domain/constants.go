package domain

import "time"

// Tick cadence
const (
	TickDuration = 600 * time.Millisecond
)

// Player defaults
const (
	InventorySize    = 28
	MaxRunEnergy     = 100.0
	RunEnergyRegen   = 0.5 // per idle tick
	DefaultMaxHP     = 100
	DefaultWorldSize = 20
	MaxChatLength    = 200
)

// Action timings in ticks
const (
	HarvestTickInterval = 4
	CookingTickInterval = 3
	DefaultAttackSpeed  = 5
)

// Ranges
const (
	RangedAttackRange = 7
	PathMaxSteps      = 100
)

// Chat message types
const (
	ChatSystem = "system"
	ChatPlayer = "player"
)

// BurntFish is granted when a cook fails.
const BurntFish = "burnt_fish"
