package domain

import "sort"

// InventorySlot is one of the fixed inventory slots. An empty slot has ItemID "".
type InventorySlot struct {
	ItemID string `json:"itemId"`
	Qty    int    `json:"quantity"`
}

// Inventory is a fixed array of slots. Stackable items share one slot,
// non-stackable items take one slot per unit.
type Inventory struct {
	Slots [InventorySize]InventorySlot `json:"slots"`
}

// Count returns how many of an item are held.
func (inv *Inventory) Count(itemID string) int {
	total := 0
	for _, s := range inv.Slots {
		if s.ItemID == itemID {
			total += s.Qty
		}
	}
	return total
}

// FreeSlots is the number of empty slots.
func (inv *Inventory) FreeSlots() int {
	free := 0
	for _, s := range inv.Slots {
		if s.ItemID == "" {
			free++
		}
	}
	return free
}

// CanAdd reports whether Add would succeed without mutating.
func (inv *Inventory) CanAdd(itemID string, qty int) bool {
	if qty <= 0 || itemID == "" {
		return false
	}
	if IsStackable(itemID) {
		return inv.Count(itemID) > 0 || inv.FreeSlots() > 0
	}
	return inv.FreeSlots() >= qty
}

// Add places qty of an item. Nothing is added when it does not fit.
func (inv *Inventory) Add(itemID string, qty int) error {
	if !inv.CanAdd(itemID, qty) {
		if qty <= 0 || itemID == "" {
			return ErrInvalidQuantity
		}
		return ErrInventoryFull
	}

	// 1. Stackable: merge into the existing stack
	if IsStackable(itemID) {
		for i := range inv.Slots {
			if inv.Slots[i].ItemID == itemID {
				inv.Slots[i].Qty += qty
				return nil
			}
		}
		for i := range inv.Slots {
			if inv.Slots[i].ItemID == "" {
				inv.Slots[i] = InventorySlot{ItemID: itemID, Qty: qty}
				return nil
			}
		}
	}

	// 2. One slot per unit
	placed := 0
	for i := range inv.Slots {
		if placed == qty {
			break
		}
		if inv.Slots[i].ItemID == "" {
			inv.Slots[i] = InventorySlot{ItemID: itemID, Qty: 1}
			placed++
		}
	}
	return nil
}

// Remove takes qty of an item, last slots first.
func (inv *Inventory) Remove(itemID string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if inv.Count(itemID) < qty {
		return ErrItemNotHeld
	}
	for i := len(inv.Slots) - 1; i >= 0 && qty > 0; i-- {
		s := &inv.Slots[i]
		if s.ItemID != itemID {
			continue
		}
		take := s.Qty
		if take > qty {
			take = qty
		}
		s.Qty -= take
		qty -= take
		if s.Qty == 0 {
			*s = InventorySlot{}
		}
	}
	return nil
}

// Totals collapses the slots into an itemId -> quantity map (inventory-update payload).
func (inv *Inventory) Totals() map[string]int {
	out := make(map[string]int)
	for _, s := range inv.Slots {
		if s.ItemID != "" {
			out[s.ItemID] += s.Qty
		}
	}
	return out
}

// InventoryFromTotals rebuilds slots from a persisted map. Items that no longer
// fit are dropped and returned.
func InventoryFromTotals(totals map[string]int) (Inventory, []string) {
	var inv Inventory
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var dropped []string
	for _, id := range ids {
		if err := inv.Add(id, totals[id]); err != nil {
			dropped = append(dropped, id)
		}
	}
	return inv, dropped
}
