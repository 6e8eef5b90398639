package worldgen

import (
	"math"
	"math/rand"

	"github.com/ionutrobert/WebScape/internal/domain"
)

// Builder is a fluent world builder.
type Builder struct {
	width   int
	height  int
	rng     *rand.Rand
	tiles   [][]domain.Tile
	objects []domain.WorldObject
	taken   map[domain.Position]bool
	keepOut map[domain.Position]bool
}

// New creates a builder over an all-grass map.
func New(width, height int, rng *rand.Rand) *Builder {
	b := &Builder{
		width:   width,
		height:  height,
		rng:     rng,
		taken:   make(map[domain.Position]bool),
		keepOut: make(map[domain.Position]bool),
	}
	b.tiles = make([][]domain.Tile, height)
	for y := 0; y < height; y++ {
		row := make([]domain.Tile, width)
		for x := 0; x < width; x++ {
			row[x] = domain.Tile{X: x, Y: y, Type: domain.TileGrass}
		}
		b.tiles[y] = row
	}
	return b
}

func (b *Builder) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// WithTerrain assigns heights from smoothed value noise and picks tile types.
func (b *Builder) WithTerrain() *Builder {
	const cell = 5
	gw, gh := b.width/cell+2, b.height/cell+2
	lattice := make([][]float64, gh)
	for y := range lattice {
		lattice[y] = make([]float64, gw)
		for x := range lattice[y] {
			lattice[y][x] = b.rng.Float64()
		}
	}

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			fx, fy := float64(x)/cell, float64(y)/cell
			x0, y0 := int(fx), int(fy)
			tx, ty := smooth(fx-float64(x0)), smooth(fy-float64(y0))
			top := lerp(lattice[y0][x0], lattice[y0][x0+1], tx)
			bottom := lerp(lattice[y0+1][x0], lattice[y0+1][x0+1], tx)
			h := lerp(top, bottom, ty)

			t := &b.tiles[y][x]
			t.Height = math.Round(h*100) / 100
			t.Type = tileFor(h)
		}
	}
	return b
}

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// KeepClear protects tiles (and their neighbours) from water and scatter.
// Used for the spawn area.
func (b *Builder) KeepClear(x, y, radius int) *Builder {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if b.inBounds(x+dx, y+dy) {
				b.keepOut[domain.Position{X: x + dx, Y: y + dy}] = true
			}
		}
	}
	return b
}

// WithLake carves a round pond of the given radius, placed at random away
// from protected tiles. It gives up after a few attempts.
func (b *Builder) WithLake(radius int) *Builder {
	if radius < 1 || b.width < radius*2+3 || b.height < radius*2+3 {
		return b
	}
	for attempt := 0; attempt < 20; attempt++ {
		cx := radius + 1 + b.rng.Intn(b.width-2*radius-2)
		cy := radius + 1 + b.rng.Intn(b.height-2*radius-2)

		var cells []domain.Position
		ok := true
		for dy := -radius; dy <= radius && ok; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx*dx+dy*dy > radius*radius {
					continue
				}
				p := domain.Position{X: cx + dx, Y: cy + dy}
				if b.keepOut[p] || b.taken[p] {
					ok = false
					break
				}
				cells = append(cells, p)
			}
		}
		if !ok {
			continue
		}

		for _, p := range cells {
			t := &b.tiles[p.Y][p.X]
			t.Type = domain.TileWater
			t.Height = 0
			b.taken[p] = true
		}
		// the fishing spot sits on the shore
		b.placeNear(cx+radius+1, cy, "shrimp_spot")
		return b
	}
	return b
}

// WithLayout places a fixed layout. Out-of-bounds entries are skipped.
func (b *Builder) WithLayout(layout []Placement) *Builder {
	for _, pl := range layout {
		b.place(pl.X, pl.Y, pl.DefinitionID)
	}
	return b
}

// Scatter places count random objects drawn from ScatterWeights.
func (b *Builder) Scatter(count int) *Builder {
	total := 0
	for _, w := range ScatterWeights {
		total += w.Weight
	}
	if total == 0 {
		return b
	}

	for i := 0; i < count; i++ {
		roll := b.rng.Intn(total)
		defID := ScatterWeights[0].DefinitionID
		for _, w := range ScatterWeights {
			if roll < w.Weight {
				defID = w.DefinitionID
				break
			}
			roll -= w.Weight
		}

		for attempt := 0; attempt < 20; attempt++ {
			if b.place(b.rng.Intn(b.width), b.rng.Intn(b.height), defID) {
				break
			}
		}
	}
	return b
}

func (b *Builder) place(x, y int, defID string) bool {
	p := domain.Position{X: x, Y: y}
	if !b.inBounds(x, y) || b.taken[p] || b.keepOut[p] {
		return false
	}
	if b.tiles[y][x].Type == domain.TileWater {
		return false
	}
	b.objects = append(b.objects, domain.WorldObject{
		Position:     p,
		DefinitionID: defID,
		Status:       domain.StatusActive,
	})
	b.taken[p] = true
	return true
}

func (b *Builder) placeNear(x, y int, defID string) {
	for r := 0; r < 3; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if b.place(x+dx, y+dy, defID) {
					return
				}
			}
		}
	}
}

// Build returns the world description. Tiles are row-major.
func (b *Builder) Build() World {
	tiles := make([]domain.Tile, 0, b.width*b.height)
	for _, row := range b.tiles {
		tiles = append(tiles, row...)
	}
	objects := make([]domain.WorldObject, len(b.objects))
	copy(objects, b.objects)
	return World{
		Config:  domain.WorldConfig{Width: b.width, Height: b.height},
		Tiles:   tiles,
		Objects: objects,
	}
}
