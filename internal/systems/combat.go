package systems

import (
	"math"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/pkg/logger"

	"github.com/sirupsen/logrus"
)

const msgNotReady = "You are not ready to attack yet."

// AttackOutcome is one resolved swing.
type AttackOutcome struct {
	AttackerID string
	TargetID   string
	Hit        bool
	Damage     int
	AttackerHP int
	TargetHP   int // after the kill heal when Killed
	Killed     bool
	KillXP     float64 // granted to each of attack, strength and defense
}

// Combat resolves player-versus-player attacks.
type Combat struct {
	roster Roster
	rng    Rng
}

// NewCombat creates the combat system.
func NewCombat(roster Roster, rng Rng) *Combat {
	return &Combat{roster: roster, rng: rng}
}

// CanAttack checks target, range and cooldown.
func (c *Combat) CanAttack(attacker, target *domain.Player) ValidationResult {
	res := checkReach(attacker, target)
	if !res.Valid {
		return res
	}
	if attacker.Combat.Cooldown > 0 {
		return Reject(msgNotReady)
	}
	return Ok()
}

func checkReach(attacker, target *domain.Player) ValidationResult {
	if attacker == nil || target == nil {
		return Reject("Target not found.")
	}
	if attacker.ID == target.ID {
		return Reject("You can't attack yourself.")
	}

	dx := abs(target.Pos.X - attacker.Pos.X)
	dy := abs(target.Pos.Y - attacker.Pos.Y)
	if attacker.Equipment.WeaponClass.IsDistance() {
		if dx > domain.RangedAttackRange || dy > domain.RangedAttackRange {
			return Reject("Your target is out of range.")
		}
		return Ok()
	}
	if dx > 1 || dy > 1 || (dx == 1 && dy == 1) {
		return Reject("You need to be next to your target.")
	}
	return Ok()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Start enables auto-attack against a target.
func (c *Combat) Start(attackerID, targetID string, style domain.AttackStyle) ValidationResult {
	attacker, ok := c.roster.Get(attackerID)
	if !ok {
		return Reject("Target not found.")
	}
	target, ok := c.roster.Get(targetID)
	if !ok {
		return Reject("Target not found.")
	}
	if res := c.CanAttack(attacker, target); !res.Valid {
		return res
	}
	attacker.Combat.InCombat = true
	attacker.Combat.TargetID = targetID
	attacker.Combat.Style = style
	return Ok()
}

// AttackRoll is the accuracy roll of a player with a weapon class.
func AttackRoll(p *domain.Player, style domain.AttackStyle, class domain.WeaponClass) int {
	atk, _, _ := p.CombatLevels()
	return (atk + style.Bonus() + 8) * (64 + p.Equipment.Bonuses.Attack(class))
}

// DefenceRoll is the defence roll of a player against a weapon class.
func DefenceRoll(p *domain.Player, class domain.WeaponClass) int {
	_, _, def := p.CombatLevels()
	return (def + 8) * (64 + p.Equipment.Bonuses.Defense(class))
}

// MaxHit is the highest damage a swing can deal.
func MaxHit(p *domain.Player, style domain.AttackStyle) int {
	_, str, _ := p.CombatLevels()
	effective := str + style.Bonus()
	return effective*(p.Equipment.Bonuses.Strength+64)/640 + 1
}

// ProcessAttack resolves one swing and resets the attacker's cooldown.
func (c *Combat) ProcessAttack(attacker, target *domain.Player, style domain.AttackStyle) AttackOutcome {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Username,
		"target_id":     target.ID,
		"target_name":   target.Username,
	})

	class := attacker.Equipment.WeaponClass
	atkRoll := AttackRoll(attacker, style, class)
	defRoll := DefenceRoll(target, class)

	hit := atkRoll > defRoll
	if atkRoll == defRoll {
		hit = c.rng.Float64() < 0.5
	}

	damage := 0
	if hit {
		damage = c.rng.Intn(MaxHit(attacker, style) + 1)
	}
	if target.GodMode {
		damage = 0
	}

	out := AttackOutcome{
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		Hit:        hit,
		Damage:     damage,
	}
	out.Killed = target.TakeDamage(damage)
	attacker.Combat.Cooldown = attacker.Equipment.Speed()

	if out.Killed {
		atk, str, def := attacker.CombatLevels()
		killXP := float64(atk+str+def) * 5
		out.KillXP = math.Floor(killXP * 0.25)
		attacker.Skills.AddXP(domain.SkillAttack, out.KillXP)
		attacker.Skills.AddXP(domain.SkillStrength, out.KillXP)
		attacker.Skills.AddXP(domain.SkillDefense, out.KillXP)
		target.Heal(target.MaxHP)
		attacker.Combat.Clear()
	}
	out.AttackerHP = attacker.HP
	out.TargetHP = target.HP

	combatLogger.WithFields(logrus.Fields{
		"attack_roll":  atkRoll,
		"defence_roll": defRoll,
		"hit":          hit,
		"damage":       damage,
		"target_hp":    target.HP,
		"killed":       out.Killed,
	}).Debug("Attack resolved.")

	return out
}

// ProcessTicks runs the combat phase in roster order.
func (c *Combat) ProcessTicks(players []*domain.Player) []AttackOutcome {
	var outcomes []AttackOutcome
	for _, p := range players {
		if p.Combat.Cooldown > 0 {
			p.Combat.Cooldown--
		}
		if !p.Combat.InCombat {
			continue
		}

		target, ok := c.roster.Get(p.Combat.TargetID)
		if !ok {
			p.Combat.Clear()
			continue
		}
		if res := checkReach(p, target); !res.Valid {
			p.Combat.Clear()
			continue
		}
		if p.Combat.Cooldown > 0 {
			continue
		}
		outcomes = append(outcomes, c.ProcessAttack(p, target, p.Combat.Style))
	}
	return outcomes
}

// ClearTargeting drops every auto-attack aimed at a player.
func (c *Combat) ClearTargeting(targetID string) {
	for _, p := range c.roster.All() {
		if p.Combat.TargetID == targetID {
			p.Combat.Clear()
		}
	}
}
