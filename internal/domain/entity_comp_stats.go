package domain

import "strings"

// AttackStyle selects the style bonus and the trained skill.
type AttackStyle uint8

const (
	StyleAccurate AttackStyle = iota
	StyleAggressive
	StyleDefensive
)

// ParseStyle defaults to accurate.
func ParseStyle(s string) AttackStyle {
	switch strings.ToLower(s) {
	case "aggressive":
		return StyleAggressive
	case "defensive":
		return StyleDefensive
	}
	return StyleAccurate
}

func (s AttackStyle) String() string {
	switch s {
	case StyleAggressive:
		return "aggressive"
	case StyleDefensive:
		return "defensive"
	}
	return "accurate"
}

// Bonus is the invisible level boost of the style.
func (s AttackStyle) Bonus() int {
	if s == StyleDefensive {
		return 0
	}
	return 3
}

// TakeDamage lowers hp. Returns true when the player dropped to 0.
func (p *Player) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	p.HP -= amount
	if p.HP <= 0 {
		p.HP = 0
		return true
	}
	return false
}

// Heal restores hp up to MaxHP.
func (p *Player) Heal(amount int) {
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// SpendRunEnergy consumes energy. Returns false if there was not enough; at 0
// the player drops back to walking.
func (p *Player) SpendRunEnergy(cost float64) bool {
	if p.RunEnergy < cost {
		p.RunEnergy = 0
		p.IsRunning = false
		return false
	}
	p.RunEnergy -= cost
	if p.RunEnergy <= 0 {
		p.RunEnergy = 0
		p.IsRunning = false
	}
	return true
}

// RestoreRunEnergy regenerates energy, capped at MaxRunEnergy.
func (p *Player) RestoreRunEnergy(amount float64) {
	p.RunEnergy += amount
	if p.RunEnergy > MaxRunEnergy {
		p.RunEnergy = MaxRunEnergy
	}
}

// CombatLevels returns attack, strength and defense levels.
func (p *Player) CombatLevels() (atk, str, def int) {
	return p.Skills.Level(SkillAttack), p.Skills.Level(SkillStrength), p.Skills.Level(SkillDefense)
}
