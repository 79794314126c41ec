package scoundrel

import (
	"errors"
	"fmt"
	"math/rand"
)

// Flavor lines for the message log. Each verb is filled with the numbers of
// the result it describes.
var (
	barehandedLines = []string{
		"You wrestle the %s with bare hands and take %d damage.",
		"Fists against the %s. It costs you %d health.",
		"You beat the %s down, bleeding %d.",
	}
	weaponLines = []string{
		"Your blade cuts down the %s. %d damage gets through.",
		"You slay the %s with your weapon, taking %d.",
		"Steel meets the %s. You suffer %d.",
	}
	cleanKillLines = []string{
		"The %s falls without touching you.",
		"One strike and the %s is gone.",
	}
	equipLines = []string{
		"You pick up a weapon of power %d.",
		"A weapon of power %d. It will do.",
	}
	drinkLines = []string{
		"The potion restores %d health.",
		"You drink deep and recover %d health.",
	}
	fleeLines = []string{
		"You slip back into the dark. The room waits at the bottom of the deck.",
		"You run. These horrors will find you again later.",
	}
)

// narrator turns structured results into log lines.
type narrator struct {
	rng *rand.Rand
}

func (n narrator) pick(lines []string) string {
	return lines[n.rng.Intn(len(lines))]
}

func monsterName(strength int) string {
	switch {
	case strength >= 14:
		return "dragon"
	case strength >= 11:
		return "ogre"
	case strength >= 8:
		return "ghoul"
	case strength >= 5:
		return "goblin"
	default:
		return "rat"
	}
}

// describe returns the log line for an accepted action.
func (n narrator) describe(res Result) string {
	var line string
	switch res.Move {
	case MoveSelect:
		line = fmt.Sprintf("You face the %s (%d).", monsterName(res.Card.Strength), res.Card.Strength)
	case MoveDeselect:
		line = "You step back."
	case MoveEquip:
		line = fmt.Sprintf(n.pick(equipLines), res.Card.Strength)
		if res.Replaced != nil {
			line += fmt.Sprintf(" Your old weapon (%d) is discarded.", res.Replaced.Power)
		}
	case MoveDrink:
		switch {
		case res.Wasted:
			line = "You already drank in this room. The potion is wasted."
		case res.Healed == 0:
			line = "The potion has nothing to heal."
		default:
			line = fmt.Sprintf(n.pick(drinkLines), res.Healed)
		}
	case MoveFight:
		c := res.Combat
		name := monsterName(c.Monster.Strength)
		switch {
		case c.Style == StyleWeapon && c.Damage == 0:
			line = fmt.Sprintf(n.pick(cleanKillLines), name)
		case c.Style == StyleWeapon:
			line = fmt.Sprintf(n.pick(weaponLines), name, c.Damage)
		default:
			line = fmt.Sprintf(n.pick(barehandedLines), name, c.Damage)
		}
	case MoveFlee:
		line = n.pick(fleeLines)
	}

	if res.Ended {
		if res.Won {
			return line + fmt.Sprintf(" The dungeon is clear! Score %d.", res.Score)
		}
		return line + fmt.Sprintf(" You have fallen. Score %d.", res.Score)
	}
	return line
}

// describeError returns the log line for a rejected action.
func describeError(err error) string {
	switch {
	case errors.Is(err, ErrNoSelection):
		return "Select a monster first."
	case errors.Is(err, ErrNoWeapon):
		return "You have no weapon."
	case errors.Is(err, ErrWeaponBlocked):
		return "Your weapon is too dull for that monster. Fight barehanded or pick another."
	case errors.Is(err, ErrCannotFlee):
		return "You cannot run from this room."
	case errors.Is(err, ErrInvalidIndex):
		return "There is no card there."
	case errors.Is(err, ErrNotPlaying):
		return "The game is over. Press N for a new one."
	default:
		return err.Error()
	}
}
