package domain

import "strings"

// ToolType is the gathering tool class an item provides.
type ToolType uint8

const (
	ToolNone ToolType = iota
	ToolPickaxe
	ToolAxe
	ToolNet
	ToolRod
)

var toolTypeToString = map[ToolType]string{
	ToolNone:    "none",
	ToolPickaxe: "pickaxe",
	ToolAxe:     "axe",
	ToolNet:     "net",
	ToolRod:     "rod",
}

func (t ToolType) String() string {
	if s, ok := toolTypeToString[t]; ok {
		return s
	}
	return "none"
}

// WeaponClass decides which attack and defence bonus applies.
type WeaponClass uint8

const (
	WeaponCrush WeaponClass = iota // unarmed default
	WeaponStab
	WeaponSlash
	WeaponRanged
	WeaponMagic
)

// IsDistance is true for ranged and magic classes.
func (w WeaponClass) IsDistance() bool {
	return w == WeaponRanged || w == WeaponMagic
}

func (w WeaponClass) String() string {
	switch w {
	case WeaponStab:
		return "stab"
	case WeaponSlash:
		return "slash"
	case WeaponRanged:
		return "ranged"
	case WeaponMagic:
		return "magic"
	}
	return "crush"
}

// EquipSlot is one of the equipment slots.
type EquipSlot uint8

const (
	SlotNone EquipSlot = iota
	SlotMainHand
	SlotOffHand
	SlotHelm
	SlotChest
	SlotLegs
	SlotCape
	SlotAmmo
)

// AllSlots in wire order.
var AllSlots = []EquipSlot{SlotMainHand, SlotOffHand, SlotHelm, SlotChest, SlotLegs, SlotCape, SlotAmmo}

var slotToString = map[EquipSlot]string{
	SlotMainHand: "mainHand",
	SlotOffHand:  "offHand",
	SlotHelm:     "helm",
	SlotChest:    "chest",
	SlotLegs:     "legs",
	SlotCape:     "cape",
	SlotAmmo:     "ammo",
}

func (s EquipSlot) String() string {
	if v, ok := slotToString[s]; ok {
		return v
	}
	return "none"
}

// ParseSlot matches wire names case-insensitively.
func ParseSlot(s string) EquipSlot {
	for slot, name := range slotToString {
		if strings.EqualFold(name, s) {
			return slot
		}
	}
	return SlotNone
}

// Bonuses are the summed gear stats of a player.
type Bonuses struct {
	AttackStab    int `json:"attackStab"`
	AttackSlash   int `json:"attackSlash"`
	AttackCrush   int `json:"attackCrush"`
	AttackRanged  int `json:"attackRanged"`
	AttackMagic   int `json:"attackMagic"`
	DefenseStab   int `json:"defenseStab"`
	DefenseSlash  int `json:"defenseSlash"`
	DefenseCrush  int `json:"defenseCrush"`
	DefenseRanged int `json:"defenseRanged"`
	DefenseMagic  int `json:"defenseMagic"`
	Strength      int `json:"strength"`
}

// Add sums two bonus sets.
func (b Bonuses) Add(o Bonuses) Bonuses {
	return Bonuses{
		AttackStab:    b.AttackStab + o.AttackStab,
		AttackSlash:   b.AttackSlash + o.AttackSlash,
		AttackCrush:   b.AttackCrush + o.AttackCrush,
		AttackRanged:  b.AttackRanged + o.AttackRanged,
		AttackMagic:   b.AttackMagic + o.AttackMagic,
		DefenseStab:   b.DefenseStab + o.DefenseStab,
		DefenseSlash:  b.DefenseSlash + o.DefenseSlash,
		DefenseCrush:  b.DefenseCrush + o.DefenseCrush,
		DefenseRanged: b.DefenseRanged + o.DefenseRanged,
		DefenseMagic:  b.DefenseMagic + o.DefenseMagic,
		Strength:      b.Strength + o.Strength,
	}
}

// Attack returns the attack bonus for a class.
func (b Bonuses) Attack(c WeaponClass) int {
	switch c {
	case WeaponStab:
		return b.AttackStab
	case WeaponSlash:
		return b.AttackSlash
	case WeaponRanged:
		return b.AttackRanged
	case WeaponMagic:
		return b.AttackMagic
	}
	return b.AttackCrush
}

// Defense returns the defence bonus against a class.
func (b Bonuses) Defense(c WeaponClass) int {
	switch c {
	case WeaponStab:
		return b.DefenseStab
	case WeaponSlash:
		return b.DefenseSlash
	case WeaponRanged:
		return b.DefenseRanged
	case WeaponMagic:
		return b.DefenseMagic
	}
	return b.DefenseCrush
}

// ItemDefinition is the static description of an item id.
type ItemDefinition struct {
	ID        string
	Name      string
	Stackable bool
	Slot      EquipSlot
	Tool      ToolType
	ToolTier  int
	Bonuses   Bonuses
}

// Items is the item catalogue.
var Items = map[string]ItemDefinition{
	"bronze_pickaxe":    {ID: "bronze_pickaxe", Name: "Bronze Pickaxe", Slot: SlotMainHand, Tool: ToolPickaxe, ToolTier: 1, Bonuses: Bonuses{AttackCrush: 2, Strength: 1}},
	"iron_pickaxe":      {ID: "iron_pickaxe", Name: "Iron Pickaxe", Slot: SlotMainHand, Tool: ToolPickaxe, ToolTier: 2, Bonuses: Bonuses{AttackCrush: 4, Strength: 2}},
	"steel_pickaxe":     {ID: "steel_pickaxe", Name: "Steel Pickaxe", Slot: SlotMainHand, Tool: ToolPickaxe, ToolTier: 3, Bonuses: Bonuses{AttackCrush: 6, Strength: 4}},
	"bronze_axe":        {ID: "bronze_axe", Name: "Bronze Axe", Slot: SlotMainHand, Tool: ToolAxe, ToolTier: 1, Bonuses: Bonuses{AttackSlash: 2, Strength: 1}},
	"iron_axe":          {ID: "iron_axe", Name: "Iron Axe", Slot: SlotMainHand, Tool: ToolAxe, ToolTier: 2, Bonuses: Bonuses{AttackSlash: 4, Strength: 2}},
	"steel_axe":         {ID: "steel_axe", Name: "Steel Axe", Slot: SlotMainHand, Tool: ToolAxe, ToolTier: 3, Bonuses: Bonuses{AttackSlash: 6, Strength: 4}},
	"small_fishing_net": {ID: "small_fishing_net", Name: "Small Fishing Net", Slot: SlotMainHand, Tool: ToolNet, ToolTier: 1},
	"fishing_rod":       {ID: "fishing_rod", Name: "Fishing Rod", Slot: SlotMainHand, Tool: ToolRod, ToolTier: 1},

	"bronze_dagger": {ID: "bronze_dagger", Name: "Bronze Dagger", Slot: SlotMainHand, Bonuses: Bonuses{AttackStab: 4, AttackSlash: 2, Strength: 3}},
	"iron_sword":    {ID: "iron_sword", Name: "Iron Sword", Slot: SlotMainHand, Bonuses: Bonuses{AttackStab: 6, AttackSlash: 8, Strength: 7}},
	"steel_mace":    {ID: "steel_mace", Name: "Steel Mace", Slot: SlotMainHand, Bonuses: Bonuses{AttackCrush: 13, Strength: 11}},
	"shortbow":      {ID: "shortbow", Name: "Shortbow", Slot: SlotMainHand, Bonuses: Bonuses{AttackRanged: 8}},
	"staff_of_air":  {ID: "staff_of_air", Name: "Staff of Air", Slot: SlotMainHand, Bonuses: Bonuses{AttackCrush: 5, AttackMagic: 10, Strength: 7}},

	"bronze_full_helm": {ID: "bronze_full_helm", Name: "Bronze Full Helm", Slot: SlotHelm, Bonuses: Bonuses{DefenseStab: 3, DefenseSlash: 4, DefenseCrush: 2, DefenseRanged: 3}},
	"bronze_platebody": {ID: "bronze_platebody", Name: "Bronze Platebody", Slot: SlotChest, Bonuses: Bonuses{DefenseStab: 15, DefenseSlash: 14, DefenseCrush: 9, DefenseRanged: 14}},
	"bronze_platelegs": {ID: "bronze_platelegs", Name: "Bronze Platelegs", Slot: SlotLegs, Bonuses: Bonuses{DefenseStab: 8, DefenseSlash: 7, DefenseCrush: 6, DefenseRanged: 7}},

	"copper_ore": {ID: "copper_ore", Name: "Copper Ore", Stackable: true},
	"tin_ore":    {ID: "tin_ore", Name: "Tin Ore", Stackable: true},
	"iron_ore":   {ID: "iron_ore", Name: "Iron Ore", Stackable: true},
	"coal":       {ID: "coal", Name: "Coal", Stackable: true},
	"gold_ore":   {ID: "gold_ore", Name: "Gold Ore", Stackable: true},
	"coins":      {ID: "coins", Name: "Coins", Stackable: true},
	"bronze_bar": {ID: "bronze_bar", Name: "Bronze Bar", Stackable: true},
	"oak_log":    {ID: "oak_log", Name: "Oak Log"},
	"willow_log": {ID: "willow_log", Name: "Willow Log"},
	"maple_log":  {ID: "maple_log", Name: "Maple Log"},
	BurntFish:    {ID: BurntFish, Name: "Burnt Fish"},
}

func init() {
	// raw and cooked fish come from the cooking table
	for raw, r := range CookingRecipes {
		Items[raw] = ItemDefinition{ID: raw, Name: prettyName(raw)}
		Items[r.CookedID] = ItemDefinition{ID: r.CookedID, Name: prettyName(r.CookedID)}
	}
}

func prettyName(id string) string {
	parts := strings.Split(id, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// LookupItem returns the definition of an item id.
func LookupItem(id string) (ItemDefinition, bool) {
	def, ok := Items[id]
	return def, ok
}

// IsStackable is false for unknown items.
func IsStackable(id string) bool {
	return Items[id].Stackable
}

// metal keywords in tier order
var tierKeywords = []struct {
	keyword string
	tier    int
}{
	{"bronze", 1},
	{"iron", 2},
	{"steel", 3},
	{"black", 4},
	{"mithril", 5},
	{"adamant", 6},
	{"rune", 7},
	{"dragon", 8},
}

// ResolveToolTier uses the declared tier, then falls back to a metal keyword in the id.
func ResolveToolTier(itemID string) int {
	if def, ok := Items[itemID]; ok && def.ToolTier > 0 {
		return def.ToolTier
	}
	lower := strings.ToLower(itemID)
	for _, k := range tierKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.tier
		}
	}
	return 0
}

// ResolveToolType uses the declared type, then looks for the tool name in the id.
func ResolveToolType(itemID string) ToolType {
	if def, ok := Items[itemID]; ok && def.Tool != ToolNone {
		return def.Tool
	}
	lower := strings.ToLower(itemID)
	switch {
	case strings.Contains(lower, "pickaxe"):
		return ToolPickaxe
	case strings.HasSuffix(lower, "_axe") || lower == "axe":
		return ToolAxe
	case strings.Contains(lower, "net"):
		return ToolNet
	case strings.Contains(lower, "rod"):
		return ToolRod
	}
	return ToolNone
}

// weapon keyword tables, checked in order
var weaponKeywords = []struct {
	keyword string
	speed   int
	class   WeaponClass
}{
	{"dagger", 4, WeaponStab},
	{"two_handed", 6, WeaponSlash},
	{"sword", 5, WeaponSlash},
	{"axe", 5, WeaponCrush},
	{"mace", 5, WeaponCrush},
	{"spear", 6, WeaponStab},
	{"halberd", 6, WeaponSlash},
	{"crossbow", 7, WeaponRanged},
	{"bow", 5, WeaponRanged},
	{"staff", 5, WeaponCrush},
	{"wand", 4, WeaponMagic},
}

// ResolveWeapon returns the attack speed and class for a mainHand item.
// An empty id is unarmed.
func ResolveWeapon(itemID string) (speed int, class WeaponClass) {
	lower := strings.ToLower(itemID)
	for _, k := range weaponKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.speed, k.class
		}
	}
	return DefaultAttackSpeed, WeaponCrush
}
