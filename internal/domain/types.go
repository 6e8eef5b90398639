package domain

// Position is a tile coordinate on the world grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TileType is the terrain kind of a single tile.
type TileType string

const (
	TileGrass TileType = "grass"
	TileSand  TileType = "sand"
	TileStone TileType = "stone"
	TileWater TileType = "water"
	TileSnow  TileType = "snow"
)

// Tile is the terrain description of one cell. Water is impassable.
type Tile struct {
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Type   TileType `json:"tileType"`
	Height float64  `json:"height"`
}

// IsObstacle reports whether the terrain itself blocks movement.
func (t Tile) IsObstacle() bool {
	return t.Type == TileWater
}

// WorldConfig holds the persisted world dimensions.
type WorldConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
