package actions

import (
	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine/handlers"
	"github.com/ionutrobert/WebScape/pkg/api"
)

// HandleHarvest registers a harvest and echoes harvest-started.
func HandleHarvest(ctx handlers.Context, p api.HarvestPayload) (handlers.Result, error) {
	res := ctx.Harvesting.Start(ctx.Actor.ID, p.X, p.Y, p.ObjectID)
	if !res.Valid {
		return handlers.Reject(res.Message), nil
	}

	started := api.HarvestStartedPayload{X: p.X, Y: p.Y, ObjectID: p.ObjectID}
	return handlers.EmptyResult().With(ctx.ToActor(domain.EventHarvestStarted, started)), nil
}
