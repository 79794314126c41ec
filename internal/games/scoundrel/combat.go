package scoundrel

import "fmt"

// Style is how a monster was fought.
type Style int

const (
	StyleBarehanded Style = iota
	StyleWeapon
)

// String returns a human-readable style label.
func (s Style) String() string {
	switch s {
	case StyleBarehanded:
		return "barehanded"
	case StyleWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

// CombatResult describes a resolved fight.
type CombatResult struct {
	Style   Style
	Monster Card
	Damage  int
	// Weapon is the player's weapon after the fight (nil if none).
	Weapon *Weapon
}

// ResolveCombat computes the outcome of fighting monster. The weapon passed
// in is never modified; the returned result carries the weapon after the
// fight. Using a weapon that is missing or whose ceiling is below the
// monster's strength is rejected.
func ResolveCombat(monster Card, weapon *Weapon, useWeapon bool) (CombatResult, error) {
	if monster.Kind != KindMonster {
		return CombatResult{}, fmt.Errorf("%w: %s is not a monster", ErrWrongCardKind, monster)
	}

	if !useWeapon {
		return CombatResult{
			Style:   StyleBarehanded,
			Monster: monster,
			Damage:  monster.Strength,
			Weapon:  weapon,
		}, nil
	}

	if weapon == nil {
		return CombatResult{}, ErrNoWeapon
	}
	if !weapon.CanSlay(monster.Strength) {
		return CombatResult{}, fmt.Errorf("%w: last slain %d, monster %d", ErrWeaponBlocked, weapon.LastSlain, monster.Strength)
	}

	after := Weapon{Power: weapon.Power, LastSlain: monster.Strength}
	return CombatResult{
		Style:   StyleWeapon,
		Monster: monster,
		Damage:  max(0, monster.Strength-weapon.Power),
		Weapon:  &after,
	}, nil
}
