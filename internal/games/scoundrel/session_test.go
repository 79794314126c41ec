package scoundrel

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/scoundrel/internal/config"
)

// memGateway is an in-memory Gateway that counts writes.
type memGateway struct {
	snapshot *Snapshot
	stats    Stats
	runs     []Run

	saves   int
	clears  int
	failAll bool
}

var errGateway = errors.New("gateway down")

func (g *memGateway) SaveSnapshot(snap Snapshot) error {
	if g.failAll {
		return errGateway
	}
	g.saves++
	g.snapshot = &snap
	return nil
}

func (g *memGateway) LoadSnapshot() (*Snapshot, error) {
	if g.failAll {
		return nil, errGateway
	}
	return g.snapshot, nil
}

func (g *memGateway) ClearSnapshot() error {
	if g.failAll {
		return errGateway
	}
	g.clears++
	g.snapshot = nil
	return nil
}

func (g *memGateway) LoadStats() (Stats, error) {
	if g.failAll {
		return Stats{}, errGateway
	}
	return g.stats, nil
}

func (g *memGateway) SaveStats(stats Stats) error {
	if g.failAll {
		return errGateway
	}
	g.stats = stats
	return nil
}

func (g *memGateway) RecordRun(run Run) error {
	if g.failAll {
		return errGateway
	}
	g.runs = append(g.runs, run)
	return nil
}

func normalTier(t *testing.T) config.Tier {
	t.Helper()
	tier, err := config.DefaultScoundrelConfig().Tier(config.DifficultyNormal)
	if err != nil {
		t.Fatalf("Tier() failed: %v", err)
	}
	return tier
}

// newTestSession starts a game and then replaces the dealt dungeon with a
// fixed one.
func newTestSession(t *testing.T, gw Gateway, health int, room Room, deck Deck) *Session {
	t.Helper()
	opts := []Option{WithRand(rand.New(rand.NewSource(1)))}
	if gw != nil {
		opts = append(opts, WithGateway(gw))
	}
	s := NewSession(normalTier(t), opts...)
	s.NewGame()
	s.player.Health = health
	s.dungeon = Dungeon{Deck: deck, Room: room, CanRun: true}
	return s
}

func mustResult(t *testing.T) func(Result, error) Result {
	return func(res Result, err error) Result {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return res
	}
}

func TestNewGameDealsRoom(t *testing.T) {
	gw := &memGateway{}
	s := NewSession(normalTier(t), WithGateway(gw), WithRand(rand.New(rand.NewSource(3))))
	if s.Phase() != PhaseMenu {
		t.Errorf("Phase() = %s, expected Menu", s.Phase())
	}

	s.NewGame()
	v := s.View()
	if v.Phase != PhasePlaying {
		t.Errorf("Phase = %s, expected Playing", v.Phase)
	}
	if v.Health != 20 || v.MaxHealth != 20 {
		t.Errorf("health = %d/%d, expected 20/20", v.Health, v.MaxHealth)
	}
	if len(v.Room) != RoomSize || v.DeckSize != 40 {
		t.Errorf("room %d, deck %d, expected 4 and 40", len(v.Room), v.DeckSize)
	}
	if !v.CanRun || v.Weapon != nil || v.Selected != -1 {
		t.Errorf("unexpected fresh view: %+v", v)
	}
	if gw.saves != 1 {
		t.Errorf("snapshots saved = %d, expected 1", gw.saves)
	}
}

func TestWeaponFightScenario(t *testing.T) {
	must := mustResult(t)
	s := newTestSession(t, nil, 20, Room{w(5), m(12), h(3), m(4)}, Deck{m(2), m(3), m(6), m(7)})

	res := must(s.PlayWeapon(0))
	if res.Move != MoveEquip || res.Replaced != nil {
		t.Errorf("PlayWeapon() = %+v", res)
	}
	must(s.SelectMonster(0))
	res = must(s.FightWithWeapon())

	if res.Combat.Damage != 7 {
		t.Errorf("Damage = %d, expected 7", res.Combat.Damage)
	}
	if s.player.Health != 13 {
		t.Errorf("Health = %d, expected 13", s.player.Health)
	}
	if s.player.Weapon.LastSlain != 12 {
		t.Errorf("LastSlain = %d, expected 12", s.player.Weapon.LastSlain)
	}
	if s.Selected() != -1 {
		t.Errorf("Selected() = %d, expected -1", s.Selected())
	}
	if len(s.dungeon.Room) != 2 {
		t.Errorf("room size = %d, expected 2", len(s.dungeon.Room))
	}
}

func TestBlockedWeaponKeepsState(t *testing.T) {
	must := mustResult(t)
	s := newTestSession(t, nil, 13, Room{m(15), h(3), m(4)}, Deck{m(2)})
	s.player.Weapon = &Weapon{Power: 5, LastSlain: 12}

	must(s.SelectMonster(0))
	_, err := s.FightWithWeapon()
	if !errors.Is(err, ErrWeaponBlocked) {
		t.Fatalf("error = %v, expected ErrWeaponBlocked", err)
	}
	if s.player.Health != 13 {
		t.Errorf("Health = %d, expected 13", s.player.Health)
	}
	if *s.player.Weapon != (Weapon{Power: 5, LastSlain: 12}) {
		t.Errorf("weapon = %+v, expected unchanged", *s.player.Weapon)
	}
	if s.Selected() != 0 || len(s.dungeon.Room) != 3 {
		t.Errorf("selection %d, room %d, expected 0 and 3", s.Selected(), len(s.dungeon.Room))
	}

	// Barehanded is still available against the same monster.
	res := must(s.FightBarehanded())
	if res.Combat.Damage != 15 || s.player.Health != 0 {
		t.Errorf("barehanded damage %d, health %d", res.Combat.Damage, s.player.Health)
	}
}

func TestSelectToggle(t *testing.T) {
	must := mustResult(t)
	s := newTestSession(t, nil, 20, Room{m(3), m(4), w(2), h(2)}, nil)

	if res := must(s.SelectMonster(1)); res.Move != MoveSelect || s.Selected() != 1 {
		t.Errorf("select: move %v, selected %d", res.Move, s.Selected())
	}
	must(s.SelectMonster(0))
	if s.Selected() != 0 {
		t.Errorf("Selected() = %d, expected 0", s.Selected())
	}
	if res := must(s.SelectMonster(0)); res.Move != MoveDeselect || s.Selected() != -1 {
		t.Errorf("deselect: move %v, selected %d", res.Move, s.Selected())
	}

	if _, err := s.SelectMonster(2); !errors.Is(err, ErrWrongCardKind) {
		t.Errorf("selecting a weapon: error = %v, expected ErrWrongCardKind", err)
	}
	if _, err := s.SelectMonster(4); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("selecting slot 5: error = %v, expected ErrInvalidIndex", err)
	}
	if _, err := s.FightBarehanded(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("fight without selection: error = %v, expected ErrNoSelection", err)
	}
}

func TestFightWithoutWeapon(t *testing.T) {
	must := mustResult(t)
	s := newTestSession(t, nil, 20, Room{m(3), m(4)}, nil)
	must(s.SelectMonster(0))
	if _, err := s.FightWithWeapon(); !errors.Is(err, ErrNoWeapon) {
		t.Errorf("error = %v, expected ErrNoWeapon", err)
	}
	if s.Selected() != 0 {
		t.Errorf("Selected() = %d, expected selection kept", s.Selected())
	}
}

func TestReequipReplacesWeapon(t *testing.T) {
	must := mustResult(t)
	s := newTestSession(t, nil, 20, Room{w(9), w(2), m(3), m(4)}, Deck{m(5)})

	must(s.PlayWeapon(0))
	s.player.Weapon.LastSlain = 6
	res := must(s.PlayWeapon(0))

	if res.Replaced == nil || res.Replaced.Power != 9 {
		t.Errorf("Replaced = %+v, expected the power 9 weapon", res.Replaced)
	}
	if *s.player.Weapon != (Weapon{Power: 2, LastSlain: Unbounded}) {
		t.Errorf("weapon = %+v, expected a fresh power 2 weapon", *s.player.Weapon)
	}
}

func TestPotionCap(t *testing.T) {
	must := mustResult(t)
	s := newTestSession(t, nil, 10, Room{h(5), h(7), m(2), m(3)}, Deck{h(4), m(5), m(6), m(7)})

	res := must(s.PlayHealth(0))
	if res.Healed != 5 || s.player.Health != 15 {
		t.Errorf("first potion healed %d to %d, expected 5 to 15", res.Healed, s.player.Health)
	}

	res = must(s.PlayHealth(0))
	if !res.Wasted || res.Healed != 0 || s.player.Health != 15 {
		t.Errorf("second potion: %+v, health %d", res, s.player.Health)
	}
	if len(s.dungeon.Room) != 2 {
		t.Errorf("wasted potion should still be discarded, room = %d", len(s.dungeon.Room))
	}

	// Clearing down to one card deals a new room where potions work again.
	must(s.SelectMonster(0))
	res = must(s.FightBarehanded())
	if !res.NewRoom {
		t.Fatal("expected a new room")
	}
	if s.dungeon.PotionUsed {
		t.Error("PotionUsed should reset with the new room")
	}
	res = must(s.PlayCard(1))
	if res.Move != MoveDrink || res.Healed != 4 {
		t.Errorf("potion in new room: %+v", res)
	}
}

func TestHealCapsAtMax(t *testing.T) {
	must := mustResult(t)
	s := newTestSession(t, nil, 18, Room{h(9), m(2), m(3)}, nil)

	res := must(s.PlayHealth(0))
	if res.Healed != 2 || s.player.Health != 20 {
		t.Errorf("healed %d to %d, expected 2 to 20", res.Healed, s.player.Health)
	}
}

func TestCarryIntoNextRoom(t *testing.T) {
	must := mustResult(t)
	s := newTestSession(t, nil, 20, Room{w(3), h(4), m(2), m(10)}, Deck{m(5), m(6), m(7), m(8), m(9)})
	s.dungeon.CanRun = false

	must(s.PlayCard(0))
	must(s.PlayCard(0))
	must(s.PlayCard(0))
	res := must(s.FightWithWeapon())

	if !res.NewRoom {
		t.Fatal("expected a new room")
	}
	expected := Room{m(10), m(5), m(6), m(7)}
	for i := range expected {
		if s.dungeon.Room[i] != expected[i] {
			t.Errorf("room[%d] = %s, expected %s", i, s.dungeon.Room[i], expected[i])
		}
	}
	if !s.View().CanRun {
		t.Error("running should be available in the new room")
	}
}

func TestFleeSession(t *testing.T) {
	gw := &memGateway{}
	must := mustResult(t)
	s := newTestSession(t, gw, 20, Room{m(2), w(3), h(4), m(10)}, Deck{m(5), m(6), m(7), m(8), m(9)})
	must(s.SelectMonster(0))
	saves := gw.saves

	res := must(s.Flee())
	if res.Move != MoveFlee || !res.NewRoom {
		t.Errorf("Flee() = %+v", res)
	}
	if s.Selected() != -1 {
		t.Errorf("Selected() = %d, expected -1", s.Selected())
	}
	if gw.saves != saves+1 {
		t.Errorf("snapshots saved = %d, expected %d", gw.saves, saves+1)
	}

	room := append(Room(nil), s.dungeon.Room...)
	deck := append(Deck(nil), s.dungeon.Deck...)
	if _, err := s.Flee(); !errors.Is(err, ErrCannotFlee) {
		t.Fatalf("second Flee() error = %v, expected ErrCannotFlee", err)
	}
	for i := range room {
		if s.dungeon.Room[i] != room[i] {
			t.Errorf("room[%d] changed on rejected flee", i)
		}
	}
	if s.dungeon.Deck.Len() != len(deck) || s.dungeon.Carry != nil {
		t.Error("deck or carry changed on rejected flee")
	}
}

func TestWinRequiresEmptyRoom(t *testing.T) {
	gw := &memGateway{}
	must := mustResult(t)
	s := newTestSession(t, gw, 20, Room{m(2), w(3)}, nil)

	res := must(s.PlayWeapon(1))
	if res.Ended || s.Phase() != PhasePlaying {
		t.Fatal("a card left in the room must not win")
	}
	if len(s.dungeon.Room) != 1 {
		t.Fatalf("room size = %d, expected the lone monster", len(s.dungeon.Room))
	}

	must(s.SelectMonster(0))
	res = must(s.FightWithWeapon())
	if !res.Ended || !res.Won || res.Score != 20 {
		t.Errorf("final result = %+v, expected a win scoring 20", res)
	}
	if s.Outcome() != OutcomeWin || s.Score() != 20 {
		t.Errorf("outcome %s, score %d", s.Outcome(), s.Score())
	}

	if gw.stats.Games != 1 || gw.stats.Wins != 1 || gw.stats.BestScore != 20 {
		t.Errorf("saved stats = %+v", gw.stats)
	}
	if len(gw.runs) != 1 || !gw.runs[0].Won || gw.runs[0].Difficulty != config.DifficultyNormal {
		t.Errorf("runs = %+v", gw.runs)
	}
	if gw.snapshot != nil || gw.clears != 1 {
		t.Error("snapshot should be cleared at game end")
	}
}

func TestLossScoresRemainingMonsters(t *testing.T) {
	gw := &memGateway{}
	must := mustResult(t)
	s := newTestSession(t, gw, 5, Room{m(9), w(2), h(3), h(4)}, Deck{m(10), h(6), m(6)})

	must(s.SelectMonster(0))
	res := must(s.FightBarehanded())

	if !res.Ended || res.Won {
		t.Fatalf("result = %+v, expected a loss", res)
	}
	if s.player.Health != 0 {
		t.Errorf("Health = %d, expected 0", s.player.Health)
	}
	if res.Score != -16 {
		t.Errorf("Score = %d, expected -16", res.Score)
	}
	if s.dungeon.Deck.Len() != 3 {
		t.Errorf("deck size = %d, expected the deck untouched", s.dungeon.Deck.Len())
	}
	if gw.stats.Losses != 1 || gw.stats.BestScore != -16 {
		t.Errorf("saved stats = %+v", gw.stats)
	}
}

func TestLossCheckedBeforeWin(t *testing.T) {
	must := mustResult(t)
	s := newTestSession(t, nil, 5, Room{m(5)}, nil)

	must(s.SelectMonster(0))
	res := must(s.FightBarehanded())
	if !res.Ended || res.Won {
		t.Fatalf("result = %+v, expected a loss", res)
	}
	if s.Outcome() != OutcomeLoss || s.Score() > 0 {
		t.Errorf("outcome %s, score %d", s.Outcome(), s.Score())
	}
}

func TestEndedRejectsActions(t *testing.T) {
	must := mustResult(t)
	s := newTestSession(t, nil, 2, Room{m(5), m(2), h(4)}, Deck{m(3)})
	must(s.SelectMonster(0))
	must(s.FightBarehanded())

	if s.Phase() != PhaseEnded {
		t.Fatalf("Phase() = %s, expected Ended", s.Phase())
	}
	checks := map[string]func() (Result, error){
		"PlayCard":        func() (Result, error) { return s.PlayCard(0) },
		"SelectMonster":   func() (Result, error) { return s.SelectMonster(0) },
		"PlayHealth":      func() (Result, error) { return s.PlayHealth(1) },
		"FightBarehanded": s.FightBarehanded,
		"Flee":            s.Flee,
	}
	for name, fn := range checks {
		if _, err := fn(); !errors.Is(err, ErrNotPlaying) {
			t.Errorf("%s after end: error = %v, expected ErrNotPlaying", name, err)
		}
	}

	s.NewGame()
	if s.Phase() != PhasePlaying || s.player.Health != 20 || s.Outcome() != OutcomeNone {
		t.Errorf("NewGame() did not reset: phase %s, health %d", s.Phase(), s.player.Health)
	}
}

func TestStatsAcrossGames(t *testing.T) {
	gw := &memGateway{stats: Stats{Games: 3, Wins: 1, Losses: 2, BestScore: 4}}
	s := NewSession(normalTier(t), WithGateway(gw))
	if s.Stats() != gw.stats {
		t.Fatalf("Stats() = %+v, expected loaded %+v", s.Stats(), gw.stats)
	}

	s.NewGame()
	s.player.Health = 11
	s.dungeon = Dungeon{Room: Room{h(2)}}
	mustResult(t)(s.PlayHealth(0))

	expected := Stats{Games: 4, Wins: 2, Losses: 2, BestScore: 13}
	if s.Stats() != expected || gw.stats != expected {
		t.Errorf("stats = %+v / saved %+v, expected %+v", s.Stats(), gw.stats, expected)
	}
}

func TestStatsRecord(t *testing.T) {
	var st Stats
	st.Record(-30, false)
	if st.BestScore != -30 {
		t.Errorf("BestScore = %d, expected -30 after the first game", st.BestScore)
	}
	st.Record(-40, false)
	st.Record(12, true)
	st.Record(5, true)

	if st.Games != 4 || st.Wins != 2 || st.Losses != 2 || st.BestScore != 12 {
		t.Errorf("stats = %+v", st)
	}
	if st.WinRate() != 0.5 {
		t.Errorf("WinRate() = %v, expected 0.5", st.WinRate())
	}
}

func TestPersistAfterEveryAction(t *testing.T) {
	gw := &memGateway{}
	must := mustResult(t)
	s := newTestSession(t, gw, 20, Room{w(5), m(3), h(2), m(4)}, Deck{m(6), m(7)})
	saves := gw.saves

	must(s.PlayWeapon(0))
	must(s.SelectMonster(0))
	must(s.FightWithWeapon())

	if gw.saves != saves+2 {
		t.Errorf("snapshots saved = %d, expected %d", gw.saves, saves+2)
	}
	snap := gw.snapshot
	if snap == nil || snap.Player.Weapon == nil || snap.Player.Weapon.LastSlain != 3 {
		t.Fatalf("stored snapshot = %+v", snap)
	}

	// The stored copy must not alias live state.
	s.player.Weapon.Power = 1
	if snap.Player.Weapon.Power != 5 {
		t.Error("snapshot shares the weapon with the session")
	}
}

func TestGatewayFailuresAreNotFatal(t *testing.T) {
	gw := &memGateway{failAll: true}
	must := mustResult(t)
	s := newTestSession(t, gw, 3, Room{m(5), h(2)}, Deck{m(2)})

	must(s.PlayHealth(1))
	must(s.SelectMonster(0))
	res := must(s.FightBarehanded())
	if !res.Ended {
		t.Error("game should end even when persistence fails")
	}

	ok, err := s.Resume()
	if ok || err == nil {
		t.Errorf("Resume() = %v, %v, expected a load error", ok, err)
	}
}
