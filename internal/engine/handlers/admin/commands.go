package admin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine/handlers"
	"github.com/ionutrobert/WebScape/pkg/api"
	"github.com/ionutrobert/WebScape/pkg/logger"

	"github.com/sirupsen/logrus"
)

type commandFunc func(ctx handlers.Context, args []string) (handlers.Result, error)

var commands = map[string]commandFunc{
	"teleport":  handleTeleport,
	"god":       handleGod,
	"give":      handleGive,
	"setlevel":  handleSetLevel,
	"heal":      handleHeal,
	"spawn":     handleSpawn,
	"snapshot":  handleSnapshot,
	"broadcast": handleBroadcast,
}

// Handle dispatches an admin command. Only admins get past the first check.
func Handle(ctx handlers.Context, p api.AdminPayload) (handlers.Result, error) {
	if !ctx.Actor.IsAdmin {
		return handlers.Reject("You are not an admin."), nil
	}

	name := strings.ToLower(strings.TrimSpace(p.Command))
	cmd, ok := commands[name]
	if !ok {
		return handlers.Reject("Unknown admin command."), nil
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "admin",
		"actor":     ctx.Actor.Username,
		"command":   name,
		"args":      p.Args,
	}).Info("Admin command")

	return cmd(ctx, p.Args)
}

func intArgs(args []string, n int) ([]int, bool) {
	if len(args) < n {
		return nil, false
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func handleTeleport(ctx handlers.Context, args []string) (handlers.Result, error) {
	xy, ok := intArgs(args, 2)
	if !ok {
		return handlers.Reject("Usage: teleport <x> <y>"), nil
	}
	x, y := xy[0], xy[1]
	if !ctx.World.Grid.InBounds(x, y) || ctx.World.Grid.IsBlocked(x, y) {
		return handlers.Reject("Cannot teleport there."), nil
	}

	p := ctx.Actor
	p.Move.Clear()
	p.Pos = domain.Position{X: x, Y: y}
	p.PrevPos = p.Pos

	return handlers.Info(fmt.Sprintf("Teleported to (%d, %d).", x, y)).With(
		ctx.ToActor(domain.EventPositionUpdate, handlers.Position(p, ctx.TickStart.UnixMilli())),
	), nil
}

func handleGod(ctx handlers.Context, _ []string) (handlers.Result, error) {
	ctx.Actor.GodMode = !ctx.Actor.GodMode
	status := "off"
	if ctx.Actor.GodMode {
		status = "on"
	}
	return handlers.Info("God mode " + status + "."), nil
}

func handleGive(ctx handlers.Context, args []string) (handlers.Result, error) {
	if len(args) < 1 {
		return handlers.Reject("Usage: give <itemId> [qty]"), nil
	}
	itemID := args[0]
	def, ok := domain.LookupItem(itemID)
	if !ok {
		return handlers.Reject("Unknown item."), nil
	}
	qty := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return handlers.Reject("Quantity must be a positive number."), nil
		}
		qty = n
	}

	if err := ctx.Actor.Inventory.Add(itemID, qty); err != nil {
		return handlers.Reject("Your inventory is too full."), nil
	}
	return handlers.Info(fmt.Sprintf("Gave %d x %s.", qty, def.Name)).With(
		ctx.ToActor(domain.EventInventoryUpdate, handlers.Inventory(ctx.Actor)),
	), nil
}

func handleSetLevel(ctx handlers.Context, args []string) (handlers.Result, error) {
	if len(args) < 2 {
		return handlers.Reject("Usage: setlevel <skill> <level>"), nil
	}
	skill := domain.ParseSkill(args[0])
	if skill == domain.SkillNone {
		return handlers.Reject("Unknown skill."), nil
	}
	level, err := strconv.Atoi(args[1])
	if err != nil || level < 1 || level > domain.MaxLevel {
		return handlers.Reject(fmt.Sprintf("Level must be between 1 and %d.", domain.MaxLevel)), nil
	}

	ctx.Actor.Skills[skill] = domain.XPForLevel(level)
	return handlers.Info(fmt.Sprintf("Set %s to level %d.", skill, level)), nil
}

func handleHeal(ctx handlers.Context, _ []string) (handlers.Result, error) {
	ctx.Actor.Heal(ctx.Actor.MaxHP)
	return handlers.Info("You are fully healed."), nil
}

func handleSpawn(ctx handlers.Context, args []string) (handlers.Result, error) {
	if len(args) < 3 {
		return handlers.Reject("Usage: spawn <definitionId> <x> <y>"), nil
	}
	defID := args[0]
	if _, ok := domain.LookupObject(defID); !ok {
		return handlers.Reject("Unknown object."), nil
	}
	xy, ok := intArgs(args[1:], 2)
	if !ok {
		return handlers.Reject("Usage: spawn <definitionId> <x> <y>"), nil
	}
	pos := domain.Position{X: xy[0], Y: xy[1]}
	if ctx.Players.OccupiedBy(pos, "") {
		return handlers.Reject("A player is standing there."), nil
	}
	if err := ctx.World.Add(domain.WorldObject{Position: pos, DefinitionID: defID}); err != nil {
		return handlers.Reject(fmt.Sprintf("Cannot spawn there: %v.", err)), nil
	}

	res := handlers.Info(fmt.Sprintf("Spawned %s at (%d, %d).", defID, pos.X, pos.Y)).With(
		handlers.ToAll(domain.EventWorldUpdate, handlers.ObjectViews(ctx.World)),
	)
	collision := api.CollisionUpdatePayload{Blocked: ctx.World.Grid.Blocked()}
	for _, p := range ctx.Players.All() {
		if p.IsAdmin {
			res = res.With(handlers.Event{Type: domain.EventCollisionUpdate, To: p.ID, Payload: collision})
		}
	}
	return res, nil
}

func handleSnapshot(ctx handlers.Context, _ []string) (handlers.Result, error) {
	if ctx.Snapshots == nil {
		return handlers.Reject("Snapshots are not configured."), nil
	}
	path, err := ctx.Snapshots.WriteSnapshot()
	if err != nil {
		logger.Log.WithError(err).WithField("component", "admin").Error("Snapshot failed")
		return handlers.Reject("Snapshot failed."), nil
	}
	return handlers.Info("Snapshot written to " + path + "."), nil
}

func handleBroadcast(_ handlers.Context, args []string) (handlers.Result, error) {
	msg := strings.TrimSpace(strings.Join(args, " "))
	if msg == "" {
		return handlers.Reject("Usage: broadcast <message>"), nil
	}
	return handlers.EmptyResult().With(handlers.ToAll(domain.EventChat, handlers.SystemChat(msg))), nil
}
