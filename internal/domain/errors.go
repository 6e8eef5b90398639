package domain

import "errors"

var (
	ErrOutOfBounds     = errors.New("out of bounds")
	ErrTileOccupied    = errors.New("tile occupied")
	ErrInventoryFull   = errors.New("inventory full")
	ErrItemNotHeld     = errors.New("item not held")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrNotEquippable   = errors.New("item cannot be equipped")
	ErrSlotEmpty       = errors.New("slot empty")
	ErrUnknownObject   = errors.New("unknown object definition")
)
