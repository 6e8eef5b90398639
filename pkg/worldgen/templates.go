package worldgen

import "github.com/ionutrobert/WebScape/internal/domain"

// Placement is a fixed object position of a template layout.
type Placement struct {
	X, Y         int
	DefinitionID string
}

// StarterLayout is the hand-placed starting area at 20x20. Larger worlds keep
// it at the same coordinates; smaller ones drop what does not fit.
var StarterLayout = []Placement{
	{5, 5, "copper_rock"},
	{6, 5, "tin_rock"},
	{7, 8, "iron_rock"},
	{8, 8, "coal_rock"},
	{12, 3, "gold_rock"},
	{3, 12, "oak_tree"},
	{4, 12, "oak_tree"},
	{15, 15, "willow_tree"},
	{16, 15, "willow_tree"},
	{11, 13, "cooking_range"},
}

// ScatterWeights drives random placement in the rest of the map. A higher
// weight is picked more often.
var ScatterWeights = []struct {
	DefinitionID string
	Weight       int
}{
	{"copper_rock", 4},
	{"tin_rock", 4},
	{"iron_rock", 3},
	{"coal_rock", 2},
	{"gold_rock", 1},
	{"oak_tree", 4},
	{"willow_tree", 2},
}

// tileFor maps a normalised height onto a terrain type.
func tileFor(h float64) domain.TileType {
	switch {
	case h < 0.12:
		return domain.TileSand
	case h < 0.70:
		return domain.TileGrass
	case h < 0.90:
		return domain.TileStone
	}
	return domain.TileSnow
}
