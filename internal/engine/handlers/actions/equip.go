package actions

import (
	"errors"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine/handlers"
	"github.com/ionutrobert/WebScape/internal/systems"
	"github.com/ionutrobert/WebScape/pkg/api"
)

// HandleEquip wears an inventory item. Tool and weapon caches refresh here.
func HandleEquip(ctx handlers.Context, p api.ItemPayload) (handlers.Result, error) {
	msg, err := systems.TryEquip(ctx.Actor, p.ItemID)
	switch {
	case errors.Is(err, domain.ErrNotEquippable):
		return handlers.Reject("You can't equip that."), nil
	case errors.Is(err, domain.ErrItemNotHeld):
		return handlers.Reject("You don't have that item."), nil
	case errors.Is(err, domain.ErrInventoryFull):
		return handlers.Reject("Your inventory is too full."), nil
	case err != nil:
		return handlers.Result{}, err
	}
	return gearChanged(ctx, msg), nil
}

// HandleUnequip moves a worn item back to the inventory.
func HandleUnequip(ctx handlers.Context, p api.SlotPayload) (handlers.Result, error) {
	slot := domain.ParseSlot(p.Slot)
	if slot == domain.SlotNone {
		return handlers.Reject("Unknown equipment slot."), nil
	}

	msg, err := systems.TryUnequip(ctx.Actor, slot)
	switch {
	case errors.Is(err, domain.ErrSlotEmpty):
		return handlers.Reject("You have nothing equipped there."), nil
	case errors.Is(err, domain.ErrInventoryFull):
		return handlers.Reject("Your inventory is too full."), nil
	case err != nil:
		return handlers.Result{}, err
	}
	return gearChanged(ctx, msg), nil
}

func gearChanged(ctx handlers.Context, msg string) handlers.Result {
	return handlers.Info(msg).With(
		ctx.ToActor(domain.EventEquipmentUpdate, handlers.Equipment(ctx.Actor)),
		ctx.ToActor(domain.EventInventoryUpdate, handlers.Inventory(ctx.Actor)),
	)
}
