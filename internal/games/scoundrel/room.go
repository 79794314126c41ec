package scoundrel

// RoomSize is the number of cards dealt into a full room.
const RoomSize = 4

// Room is the set of face-up cards the player must deal with.
type Room []Card

// Dungeon holds the deck, the current room and the per-room flags.
// It is owned by a Session; its methods implement the room dealing rules.
type Dungeon struct {
	Deck  Deck
	Room  Room
	Carry *Card
	// CanRun is true at the start of each room and is consumed by fleeing.
	CanRun bool
	// PotionUsed is set once a potion has healed in the current room.
	PotionUsed bool
}

// DrawRoom deals a new room: the carried card first (if any), then cards
// from the head of the deck until the room is full or the deck runs out.
// It returns the number of cards taken from the deck.
func (d *Dungeon) DrawRoom() int {
	room := make(Room, 0, RoomSize)
	if d.Carry != nil {
		room = append(room, *d.Carry)
		d.Carry = nil
	}

	drawn := 0
	for len(room) < RoomSize {
		card, ok := d.Deck.Draw()
		if !ok {
			break
		}
		room = append(room, card)
		drawn++
	}

	d.Room = room
	d.PotionUsed = false
	return drawn
}

// CanFlee reports whether the player may run from the current room.
func (d *Dungeon) CanFlee() bool {
	return d.CanRun && len(d.Deck) > 0
}

// Flee puts the whole room back under the deck and deals a fresh one.
// It is a no-op returning false when running is not allowed.
func (d *Dungeon) Flee() bool {
	if !d.CanFlee() {
		return false
	}
	d.Deck.Return(d.Room...)
	d.Room = nil
	d.Carry = nil
	d.CanRun = false
	d.DrawRoom()
	return true
}

// Discard removes the card at index from the room without dealing.
func (d *Dungeon) Discard(index int) Card {
	card := d.Room[index]
	room := make(Room, 0, len(d.Room)-1)
	room = append(room, d.Room[:index]...)
	room = append(room, d.Room[index+1:]...)
	d.Room = room
	return card
}

// AfterResolve removes the resolved card. When exactly one card is left it
// is carried into a freshly dealt room and running becomes available again.
// newRoom reports whether a new room was dealt.
func (d *Dungeon) AfterResolve(index int) (card Card, newRoom bool) {
	card = d.Discard(index)
	switch len(d.Room) {
	case 1:
		last := d.Room[0]
		d.Carry = &last
		d.Room = nil
	case 0:
		// Only reachable from a restored room that was already short.
		if len(d.Deck) == 0 {
			return card, false
		}
	default:
		return card, false
	}

	d.CanRun = true
	d.DrawRoom()
	return card, true
}

// Cleared reports whether every card in the dungeon has been dealt with.
func (d *Dungeon) Cleared() bool {
	return len(d.Deck) == 0 && len(d.Room) == 0
}
