package domain

import (
	"math"
	"strings"
)

// Skill identifies a trainable skill.
type Skill uint8

const (
	SkillNone Skill = iota
	SkillAttack
	SkillStrength
	SkillDefense
	SkillHitpoints
	SkillMining
	SkillWoodcutting
	SkillFishing
	SkillCooking
)

// MaxLevel caps every skill.
const MaxLevel = 99

// AllSkills in display order.
var AllSkills = []Skill{
	SkillAttack, SkillStrength, SkillDefense, SkillHitpoints,
	SkillMining, SkillWoodcutting, SkillFishing, SkillCooking,
}

var skillToString = map[Skill]string{
	SkillAttack:      "attack",
	SkillStrength:    "strength",
	SkillDefense:     "defense",
	SkillHitpoints:   "hitpoints",
	SkillMining:      "mining",
	SkillWoodcutting: "woodcutting",
	SkillFishing:     "fishing",
	SkillCooking:     "cooking",
}

var stringToSkill = map[string]Skill{
	"attack":      SkillAttack,
	"strength":    SkillStrength,
	"defense":     SkillDefense,
	"defence":     SkillDefense,
	"hitpoints":   SkillHitpoints,
	"mining":      SkillMining,
	"woodcutting": SkillWoodcutting,
	"fishing":     SkillFishing,
	"cooking":     SkillCooking,
}

func (s Skill) String() string {
	if v, ok := skillToString[s]; ok {
		return v
	}
	return "none"
}

// ParseSkill returns SkillNone for unknown names.
func ParseSkill(s string) Skill {
	if v, ok := stringToSkill[strings.ToLower(s)]; ok {
		return v
	}
	return SkillNone
}

// xpTable[l] is the total XP needed to reach level l (index 0 unused).
var xpTable = buildXPTable()

func buildXPTable() [MaxLevel + 1]float64 {
	var table [MaxLevel + 1]float64
	total := 0.0
	table[1] = 0
	for l := 1; l < MaxLevel; l++ {
		total += math.Floor(float64(l+300) * math.Pow(2, float64(l)/7) / 4)
		table[l+1] = total
	}
	return table
}

// LevelForXP converts accumulated XP to a level in [1, 99].
func LevelForXP(xp float64) int {
	level := 1
	for level < MaxLevel && xp >= xpTable[level+1] {
		level++
	}
	return level
}

// XPForLevel is the minimum XP for a level. Out-of-range levels are clamped.
func XPForLevel(level int) float64 {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return xpTable[level]
}

// Skills maps each skill to accumulated XP. A missing key is 0 XP (level 1).
type Skills map[Skill]float64

// DefaultSkills is the fresh character sheet.
func DefaultSkills() Skills {
	s := make(Skills, len(AllSkills))
	for _, sk := range AllSkills {
		s[sk] = 0
	}
	return s
}

// Level derived from XP.
func (s Skills) Level(sk Skill) int {
	return LevelForXP(s[sk])
}

// AddXP adds XP and returns whether a new level was reached.
func (s Skills) AddXP(sk Skill, amount float64) (leveledUp bool) {
	before := s.Level(sk)
	s[sk] += amount
	return s.Level(sk) > before
}

// ToWire renders skills keyed by name.
func (s Skills) ToWire() map[string]float64 {
	out := make(map[string]float64, len(s))
	for sk, xp := range s {
		out[sk.String()] = xp
	}
	return out
}

// SkillsFromWire is the inverse of ToWire. Unknown names are dropped.
func SkillsFromWire(m map[string]float64) Skills {
	s := DefaultSkills()
	for name, xp := range m {
		if sk := ParseSkill(name); sk != SkillNone {
			s[sk] = xp
		}
	}
	return s
}
