package actions

import (
	"github.com/ionutrobert/WebScape/internal/engine/handlers"
	"github.com/ionutrobert/WebScape/pkg/api"
)

// HandleMove sets a movement target. The walk itself happens in the movement phase.
func HandleMove(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	res := ctx.Movement.SetTarget(ctx.Actor, p.X, p.Y, ctx.Occupied)
	return handlers.FromValidation(res), nil
}
