package scoundrel

import (
	"math/rand"

	"github.com/vovakirdan/scoundrel/internal/config"
)

// Deck is the face-down dungeon. Cards are drawn from the head and fled rooms
// are returned to the tail.
type Deck []Card

// BuildDeck deals the configured number of monsters, weapons and potions,
// each with a strength drawn uniformly from its pile's range, and shuffles them.
func BuildDeck(cfg config.DeckConfig, rng *rand.Rand) Deck {
	deck := make(Deck, 0, cfg.Size())
	deck = appendPile(deck, KindMonster, cfg.Monsters, rng)
	deck = appendPile(deck, KindWeapon, cfg.Weapons, rng)
	deck = appendPile(deck, KindHealth, cfg.Potions, rng)
	Shuffle(deck, rng)
	return deck
}

func appendPile(deck Deck, kind Kind, p config.Pile, rng *rand.Rand) Deck {
	for range p.Count {
		deck = append(deck, Card{
			Kind:     kind,
			Strength: p.Min + rng.Intn(p.Max-p.Min+1),
		})
	}
	return deck
}

// Shuffle permutes cards in place with a Fisher-Yates shuffle, so every
// ordering is equally likely.
func Shuffle(cards []Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Len returns the number of cards remaining.
func (d Deck) Len() int {
	return len(d)
}

// Draw removes and returns the head card. ok is false if the deck is empty.
func (d *Deck) Draw() (card Card, ok bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	card = (*d)[0]
	*d = (*d)[1:]
	return card, true
}

// Return puts cards back at the bottom of the deck, in order.
func (d *Deck) Return(cards ...Card) {
	*d = append(*d, cards...)
}

// MonsterStrength sums the strength of every monster left in the deck.
func (d Deck) MonsterStrength() int {
	total := 0
	for _, c := range d {
		if c.Kind == KindMonster {
			total += c.Strength
		}
	}
	return total
}
