// Package scoundrel implements the Scoundrel solo dungeon-crawl card game:
// a shuffled dungeon of monsters, weapons and health potions is dealt into
// rooms of four cards that the player must fight through, equip, drink or flee.
package scoundrel

import (
	"fmt"

	"github.com/vovakirdan/scoundrel/internal/config"
	"github.com/vovakirdan/scoundrel/internal/core"
)

// Kind is the role a card plays in the dungeon.
type Kind string

const (
	KindMonster Kind = "monster"
	KindWeapon  Kind = "weapon"
	KindHealth  Kind = "health"
)

// Valid reports whether k is one of the known card kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMonster, KindWeapon, KindHealth:
		return true
	}
	return false
}

// Card is a single dungeon card. Cards are values; identity is positional.
type Card struct {
	Kind     Kind `yaml:"kind"`
	Strength int  `yaml:"strength"`
}

// String returns e.g. "monster 12".
func (c Card) String() string {
	return fmt.Sprintf("%s %d", c.Kind, c.Strength)
}

func (c Card) validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("unknown card kind %q", c.Kind)
	}
	if c.Strength < config.MinStrength || c.Strength > config.MaxStrength {
		return fmt.Errorf("card %s: strength out of range", c)
	}
	return nil
}

// Unbounded is the LastSlain value of a weapon that has not killed anything yet.
const Unbounded = 0

// Weapon is the player's equipped weapon.
type Weapon struct {
	Power int `yaml:"power"`
	// LastSlain is the strength of the most recent monster killed with this
	// weapon. The weapon can only be used on monsters no stronger than that.
	LastSlain int `yaml:"last_slain"`
}

// Bounded reports whether the weapon has a kill ceiling yet.
func (w Weapon) Bounded() bool {
	return w.LastSlain != Unbounded
}

// CanSlay reports whether the weapon may be used against a monster of the given strength.
func (w Weapon) CanSlay(strength int) bool {
	return !w.Bounded() || strength <= w.LastSlain
}

// Player is the adventurer's state.
type Player struct {
	Health    int     `yaml:"health"`
	MaxHealth int     `yaml:"max_health"`
	Weapon    *Weapon `yaml:"weapon,omitempty"`
}

// Alive reports whether the player still has health left.
func (p Player) Alive() bool {
	return p.Health > 0
}

// Hurt subtracts damage from health, never going below zero.
func (p *Player) Hurt(damage int) {
	p.Health = core.Clamp(p.Health-damage, 0, p.MaxHealth)
}

// Heal restores health up to MaxHealth and returns the amount actually restored.
func (p *Player) Heal(amount int) int {
	before := p.Health
	p.Health = core.Clamp(p.Health+amount, 0, p.MaxHealth)
	return p.Health - before
}
