package engine

import "errors"

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrQueueFull      = errors.New("intent queue full")
	ErrSessionUnknown = errors.New("unknown session")
)
