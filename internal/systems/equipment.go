package systems

import (
	"fmt"

	"github.com/ionutrobert/WebScape/internal/domain"
)

// --- EQUIP ---

// TryEquip moves an item from the inventory into its slot. A previously worn
// item goes back to the inventory.
func TryEquip(p *domain.Player, itemID string) (string, error) {
	def, ok := domain.LookupItem(itemID)
	if !ok || def.Slot == domain.SlotNone {
		return "", fmt.Errorf("%s: %w", itemID, domain.ErrNotEquippable)
	}
	if p.Inventory.Count(itemID) < 1 {
		return "", fmt.Errorf("%s: %w", itemID, domain.ErrItemNotHeld)
	}

	if err := p.Inventory.Remove(itemID, 1); err != nil {
		return "", err
	}
	prev := p.Equipment.Set(def.Slot, itemID)
	if prev == "" {
		return fmt.Sprintf("You equip the %s.", def.Name), nil
	}

	// the freed slot always fits the old item
	if err := p.Inventory.Add(prev, 1); err != nil {
		p.Equipment.Set(def.Slot, prev)
		_ = p.Inventory.Add(itemID, 1)
		return "", err
	}
	return fmt.Sprintf("You swap the %s for the %s.", itemName(prev), def.Name), nil
}

// --- UNEQUIP ---

// TryUnequip returns the item in a slot to the inventory.
func TryUnequip(p *domain.Player, slot domain.EquipSlot) (string, error) {
	itemID := p.Equipment.Get(slot)
	if itemID == "" {
		return "", fmt.Errorf("%s: %w", slot, domain.ErrSlotEmpty)
	}
	if err := p.Inventory.Add(itemID, 1); err != nil {
		return "", err
	}
	p.Equipment.Set(slot, "")
	return fmt.Sprintf("You remove the %s.", itemName(itemID)), nil
}

func itemName(id string) string {
	if def, ok := domain.LookupItem(id); ok && def.Name != "" {
		return def.Name
	}
	return id
}
