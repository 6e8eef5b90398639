package actions

import (
	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine/handlers"
	"github.com/ionutrobert/WebScape/pkg/api"
)

// HandleAttack enables auto-attack on a target. The first swing happens in
// the next combat phase.
func HandleAttack(ctx handlers.Context, p api.AttackPayload) (handlers.Result, error) {
	res := ctx.Combat.Start(ctx.Actor.ID, p.TargetID, domain.ParseStyle(p.Style))
	return handlers.FromValidation(res), nil
}
