package domain

// Facing is one of eight compass directions.
type Facing uint8

const (
	FacingSouth Facing = iota
	FacingSouthWest
	FacingWest
	FacingNorthWest
	FacingNorth
	FacingNorthEast
	FacingEast
	FacingSouthEast
)

var facingToString = map[Facing]string{
	FacingSouth:     "south",
	FacingSouthWest: "southwest",
	FacingWest:      "west",
	FacingNorthWest: "northwest",
	FacingNorth:     "north",
	FacingNorthEast: "northeast",
	FacingEast:      "east",
	FacingSouthEast: "southeast",
}

var stringToFacing = map[string]Facing{
	"south":     FacingSouth,
	"southwest": FacingSouthWest,
	"west":      FacingWest,
	"northwest": FacingNorthWest,
	"north":     FacingNorth,
	"northeast": FacingNorthEast,
	"east":      FacingEast,
	"southeast": FacingSouthEast,
}

func (f Facing) String() string {
	if s, ok := facingToString[f]; ok {
		return s
	}
	return "south"
}

// ParseFacing falls back to south for unknown strings (old saves).
func ParseFacing(s string) Facing {
	if f, ok := stringToFacing[s]; ok {
		return f
	}
	return FacingSouth
}

// FacingFromDelta quantises a displacement into eight directions.
// Only the sign of each axis matters, so equal |dx| and |dy| is always a diagonal.
// A zero vector faces south.
func FacingFromDelta(dx, dy int) Facing {
	switch {
	case dx > 0 && dy < 0:
		return FacingNorthEast
	case dx > 0 && dy == 0:
		return FacingEast
	case dx > 0 && dy > 0:
		return FacingSouthEast
	case dx == 0 && dy > 0:
		return FacingSouth
	case dx < 0 && dy > 0:
		return FacingSouthWest
	case dx < 0 && dy == 0:
		return FacingWest
	case dx < 0 && dy < 0:
		return FacingNorthWest
	case dx == 0 && dy < 0:
		return FacingNorth
	}
	return FacingSouth
}
