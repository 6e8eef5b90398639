package domain

// CookingRecipe describes how a raw item cooks.
type CookingRecipe struct {
	CookedID   string
	BurnChance float64
	XP         float64
}

// CookingRecipes is keyed by raw item id.
var CookingRecipes = map[string]CookingRecipe{
	"raw_shrimp":    {CookedID: "cooked_shrimp", BurnChance: 0.25, XP: 30},
	"raw_anchovy":   {CookedID: "cooked_anchovy", BurnChance: 0.25, XP: 40},
	"raw_trout":     {CookedID: "cooked_trout", BurnChance: 0.30, XP: 50},
	"raw_salmon":    {CookedID: "cooked_salmon", BurnChance: 0.35, XP: 60},
	"raw_tuna":      {CookedID: "cooked_tuna", BurnChance: 0.40, XP: 80},
	"raw_lobster":   {CookedID: "cooked_lobster", BurnChance: 0.45, XP: 100},
	"raw_swordfish": {CookedID: "cooked_swordfish", BurnChance: 0.50, XP: 120},
	"raw_shark":     {CookedID: "cooked_shark", BurnChance: 0.55, XP: 150},
}

// BurnChanceAt adjusts a recipe's burn chance for the cook's level, floored at 1%.
func (r CookingRecipe) BurnChanceAt(level int) float64 {
	chance := r.BurnChance - float64(level)*0.005
	if chance < 0.01 {
		return 0.01
	}
	return chance
}
