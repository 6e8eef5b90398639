package domain

// ObjectDefinition is the static config behind a WorldObject.definitionId.
type ObjectDefinition struct {
	ID             string
	Skill          Skill // SkillNone for stations
	Tool           ToolType
	RespawnTicks   int
	DepletionHits  int
	XP             float64
	Resource       string
	ResourceQty    int
	LevelReq       int
	Blocks         bool
	CookingStation bool
}

// Harvestable is true for anything that yields a resource.
func (d ObjectDefinition) Harvestable() bool {
	return d.Resource != "" && d.DepletionHits > 0
}

// Objects is the object catalogue.
var Objects = map[string]ObjectDefinition{
	"copper_rock": {ID: "copper_rock", Skill: SkillMining, Tool: ToolPickaxe, RespawnTicks: 10, DepletionHits: 3, XP: 17.5, Resource: "copper_ore", ResourceQty: 1, LevelReq: 1, Blocks: true},
	"tin_rock":    {ID: "tin_rock", Skill: SkillMining, Tool: ToolPickaxe, RespawnTicks: 10, DepletionHits: 3, XP: 17.5, Resource: "tin_ore", ResourceQty: 1, LevelReq: 1, Blocks: true},
	"iron_rock":   {ID: "iron_rock", Skill: SkillMining, Tool: ToolPickaxe, RespawnTicks: 15, DepletionHits: 4, XP: 35, Resource: "iron_ore", ResourceQty: 1, LevelReq: 15, Blocks: true},
	"coal_rock":   {ID: "coal_rock", Skill: SkillMining, Tool: ToolPickaxe, RespawnTicks: 20, DepletionHits: 5, XP: 50, Resource: "coal", ResourceQty: 1, LevelReq: 30, Blocks: true},
	"gold_rock":   {ID: "gold_rock", Skill: SkillMining, Tool: ToolPickaxe, RespawnTicks: 25, DepletionHits: 6, XP: 65, Resource: "gold_ore", ResourceQty: 1, LevelReq: 40, Blocks: true},
	"oak_tree":    {ID: "oak_tree", Skill: SkillWoodcutting, Tool: ToolAxe, RespawnTicks: 12, DepletionHits: 3, XP: 25, Resource: "oak_log", ResourceQty: 1, LevelReq: 15, Blocks: true},
	"willow_tree": {ID: "willow_tree", Skill: SkillWoodcutting, Tool: ToolAxe, RespawnTicks: 15, DepletionHits: 4, XP: 40, Resource: "willow_log", ResourceQty: 1, LevelReq: 30, Blocks: true},
	"shrimp_spot": {ID: "shrimp_spot", Skill: SkillFishing, Tool: ToolNet, RespawnTicks: 8, DepletionHits: 5, XP: 10, Resource: "raw_shrimp", ResourceQty: 1, LevelReq: 1, Blocks: true},
	"trout_spot":  {ID: "trout_spot", Skill: SkillFishing, Tool: ToolRod, RespawnTicks: 10, DepletionHits: 5, XP: 50, Resource: "raw_trout", ResourceQty: 1, LevelReq: 20, Blocks: true},

	"fire":          {ID: "fire", Blocks: true, CookingStation: true},
	"cooking_range": {ID: "cooking_range", Blocks: true, CookingStation: true},
}

// LookupObject returns the definition for an id.
func LookupObject(id string) (ObjectDefinition, bool) {
	def, ok := Objects[id]
	return def, ok
}

// SkillFor is the skill trained by a definition. Unset means mining.
func (d ObjectDefinition) SkillFor() Skill {
	if d.Skill == SkillNone {
		return SkillMining
	}
	return d.Skill
}
