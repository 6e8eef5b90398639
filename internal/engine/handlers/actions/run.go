package actions

import (
	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine/handlers"
)

// HandleToggleRun flips running. Running cannot be enabled with less than 1 energy.
func HandleToggleRun(ctx handlers.Context) (handlers.Result, error) {
	p := ctx.Actor
	if !p.IsRunning && p.RunEnergy < 1 {
		return handlers.Reject("You are too tired to run."), nil
	}
	p.IsRunning = !p.IsRunning
	return handlers.EmptyResult().With(
		ctx.ToActor(domain.EventRunStateUpdate, handlers.RunState(p)),
	), nil
}
