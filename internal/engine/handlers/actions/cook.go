package actions

import (
	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine/handlers"
	"github.com/ionutrobert/WebScape/pkg/api"
)

// HandleCook puts one raw item on a fire or range. The raw item leaves the
// inventory now, so the client gets an inventory-update right away.
func HandleCook(ctx handlers.Context, p api.CookPayload) (handlers.Result, error) {
	res := ctx.Cooking.Start(ctx.Actor.ID, p.ItemID, p.X, p.Y)
	if !res.Valid {
		return handlers.Reject(res.Message), nil
	}
	return handlers.EmptyResult().With(
		ctx.ToActor(domain.EventInventoryUpdate, handlers.Inventory(ctx.Actor)),
	), nil
}
