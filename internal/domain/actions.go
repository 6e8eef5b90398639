package domain

import "strings"

// IntentType is the internal numeric id of an inbound client intent.
type IntentType uint8

const (
	IntentUnknown IntentType = iota
	IntentJoin
	IntentLeave
	IntentMoveTo
	IntentHarvest
	IntentCook
	IntentAttack
	IntentToggleRun
	IntentChat
	IntentAdmin
	IntentEquip
	IntentUnequip
)

// wire name -> domain
var intentStringToType = map[string]IntentType{
	"join":       IntentJoin,
	"leave":      IntentLeave,
	"move-to":    IntentMoveTo,
	"harvest":    IntentHarvest,
	"cook":       IntentCook,
	"attack":     IntentAttack,
	"toggle-run": IntentToggleRun,
	"chat":       IntentChat,
	"admin":      IntentAdmin,
	"equip":      IntentEquip,
	"unequip":    IntentUnequip,
}

// domain -> wire name (logs)
var intentTypeToString = map[IntentType]string{
	IntentJoin:      "join",
	IntentLeave:     "leave",
	IntentMoveTo:    "move-to",
	IntentHarvest:   "harvest",
	IntentCook:      "cook",
	IntentAttack:    "attack",
	IntentToggleRun: "toggle-run",
	IntentChat:      "chat",
	IntentAdmin:     "admin",
	IntentEquip:     "equip",
	IntentUnequip:   "unequip",
}

// ParseIntent converts the envelope type into an IntentType. Case-insensitive.
func ParseIntent(s string) IntentType {
	lower := strings.ToLower(strings.TrimSpace(s))
	if val, ok := intentStringToType[lower]; ok {
		return val
	}
	return IntentUnknown
}

func (t IntentType) String() string {
	if val, ok := intentTypeToString[t]; ok {
		return val
	}
	return "unknown"
}

// IsLifecycle reports whether the intent travels on the unbounded join/leave lane.
func (t IntentType) IsLifecycle() bool {
	return t == IntentJoin || t == IntentLeave
}
