package domain

// Equipment holds worn items plus values derived from them. Derived fields are
// recomputed on every Set so the tick loop never parses item ids.
type Equipment struct {
	items [SlotAmmo + 1]string

	Bonuses     Bonuses
	Tool        ToolType
	ToolTier    int
	AttackSpeed int
	WeaponClass WeaponClass
}

// Get returns the item in a slot, "" when empty.
func (e *Equipment) Get(slot EquipSlot) string {
	if slot == SlotNone || int(slot) >= len(e.items) {
		return ""
	}
	return e.items[slot]
}

// Set places an item (or "" to clear) and refreshes the caches.
// It returns the previously worn item.
func (e *Equipment) Set(slot EquipSlot, itemID string) string {
	if slot == SlotNone || int(slot) >= len(e.items) {
		return ""
	}
	prev := e.items[slot]
	e.items[slot] = itemID
	e.recompute()
	return prev
}

func (e *Equipment) recompute() {
	var total Bonuses
	for _, id := range e.items {
		if id == "" {
			continue
		}
		if def, ok := Items[id]; ok {
			total = total.Add(def.Bonuses)
		}
	}
	e.Bonuses = total

	main := e.items[SlotMainHand]
	e.Tool = ToolNone
	e.ToolTier = 0
	if main != "" {
		e.Tool = ResolveToolType(main)
		if e.Tool != ToolNone {
			e.ToolTier = ResolveToolTier(main)
		}
	}
	e.AttackSpeed = DefaultAttackSpeed
	e.WeaponClass = WeaponCrush
	if main != "" {
		e.AttackSpeed, e.WeaponClass = ResolveWeapon(main)
	}
}

// ToolTierFor returns the cached tier when the worn tool matches, otherwise 0.
func (e *Equipment) ToolTierFor(required ToolType) int {
	if required == ToolNone || e.Tool != required {
		return 0
	}
	return e.ToolTier
}

// ToWire renders slot name -> item id for non-empty slots.
func (e *Equipment) ToWire() map[string]string {
	out := make(map[string]string)
	for _, slot := range AllSlots {
		if id := e.items[slot]; id != "" {
			out[slot.String()] = id
		}
	}
	return out
}

// Speed is the attack speed in ticks. A zero-value Equipment is unarmed.
func (e *Equipment) Speed() int {
	if e.AttackSpeed <= 0 {
		return DefaultAttackSpeed
	}
	return e.AttackSpeed
}
