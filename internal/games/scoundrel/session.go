package scoundrel

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/scoundrel/internal/config"
)

// Phase is the top-level state of a session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseEnded
)

var phaseNames = map[Phase]string{
	PhaseMenu:    "Menu",
	PhasePlaying: "Playing",
	PhaseEnded:   "Ended",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// Outcome is how an ended game finished.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "none"
	}
}

// Move identifies what an accepted action did.
type Move int

const (
	MoveSelect Move = iota
	MoveDeselect
	MoveEquip
	MoveDrink
	MoveFight
	MoveFlee
)

// Result describes an accepted action for the presentation layer.
type Result struct {
	Move Move
	// Card is the card the action was applied to (zero for MoveFlee).
	Card Card
	// Combat is set for MoveFight.
	Combat *CombatResult
	// Replaced is the weapon discarded by MoveEquip, if any.
	Replaced *Weapon
	// Healed is the health restored by MoveDrink.
	Healed int
	// Wasted is true when a potion was discarded because one already healed this room.
	Wasted bool
	// NewRoom is true when the action dealt a new room.
	NewRoom bool
	// Ended is true when the action finished the game.
	Ended bool
	Won   bool
	Score int
}

// Session owns one player's game: the dungeon, the player and the flags that
// gate each action. All methods must be called from a single goroutine.
type Session struct {
	tier    config.Tier
	rng     *rand.Rand
	gateway Gateway
	logger  *log.Logger

	phase      Phase
	outcome    Outcome
	runID      string
	difficulty config.DifficultyPreset
	player     Player
	dungeon    Dungeon
	selected   int
	score      int
	stats      Stats
}

// Option configures a Session.
type Option func(*Session)

// WithGateway persists snapshots and stats through g.
func WithGateway(g Gateway) Option {
	return func(s *Session) {
		s.gateway = g
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRand sets the random source used to build decks.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// NewSession creates a session in the menu phase using the given tier for
// new games. Stats are loaded from the gateway immediately.
func NewSession(tier config.Tier, opts ...Option) *Session {
	s := &Session{
		tier:       tier,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:     log.New(io.Discard),
		difficulty: tier.Name,
		selected:   -1,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.gateway != nil {
		stats, err := s.gateway.LoadStats()
		if err != nil {
			s.logger.Warn("could not load stats", "error", err)
		} else {
			s.stats = stats
		}
	}
	return s
}

// NewGame deals a fresh dungeon and resets the player.
func (s *Session) NewGame() {
	s.runID = uuid.NewString()
	s.difficulty = s.tier.Name
	s.player = Player{Health: s.tier.MaxHealth, MaxHealth: s.tier.MaxHealth}
	s.dungeon = Dungeon{
		Deck:   BuildDeck(s.tier.Deck, s.rng),
		CanRun: true,
	}
	s.dungeon.DrawRoom()
	s.selected = -1
	s.phase = PhasePlaying
	s.outcome = OutcomeNone
	s.score = 0

	s.logger.Info("game started", "run", s.runID, "difficulty", s.difficulty, "deck", s.dungeon.Deck.Len()+len(s.dungeon.Room))
	s.persist()
}

// Resume restores the stored game if there is a resumable one.
func (s *Session) Resume() (bool, error) {
	if s.gateway == nil {
		return false, nil
	}
	snap, err := s.gateway.LoadSnapshot()
	if err != nil {
		return false, fmt.Errorf("scoundrel: cannot load snapshot: %w", err)
	}
	if snap == nil || !snap.Resumable() {
		return false, nil
	}
	if err := s.Restore(*snap); err != nil {
		return false, err
	}
	return true, nil
}

// Phase returns the session phase.
func (s *Session) Phase() Phase { return s.phase }

// Outcome returns how the last game ended.
func (s *Session) Outcome() Outcome { return s.outcome }

// Score returns the final score of an ended game.
func (s *Session) Score() int { return s.score }

// Stats returns the cross-game statistics.
func (s *Session) Stats() Stats { return s.stats }

// Selected returns the index of the selected monster, or -1.
func (s *Session) Selected() int { return s.selected }

// SelectMonster toggles selection of the monster at index.
func (s *Session) SelectMonster(index int) (Result, error) {
	card, err := s.cardAt(index, KindMonster)
	if err != nil {
		return Result{}, err
	}
	if s.selected == index {
		s.selected = -1
		return Result{Move: MoveDeselect, Card: card}, nil
	}
	s.selected = index
	return Result{Move: MoveSelect, Card: card}, nil
}

// PlayWeapon equips the weapon at index, discarding any current weapon.
func (s *Session) PlayWeapon(index int) (Result, error) {
	card, err := s.cardAt(index, KindWeapon)
	if err != nil {
		return Result{}, err
	}

	res := Result{Move: MoveEquip, Card: card, Replaced: s.player.Weapon}
	s.player.Weapon = &Weapon{Power: card.Strength, LastSlain: Unbounded}
	return s.finish(index, res), nil
}

// PlayHealth drinks the potion at index. Only the first potion in a room heals.
func (s *Session) PlayHealth(index int) (Result, error) {
	card, err := s.cardAt(index, KindHealth)
	if err != nil {
		return Result{}, err
	}

	res := Result{Move: MoveDrink, Card: card}
	if s.dungeon.PotionUsed {
		res.Wasted = true
	} else {
		res.Healed = s.player.Heal(card.Strength)
		s.dungeon.PotionUsed = true
	}
	return s.finish(index, res), nil
}

// PlayCard plays the card at index according to its kind: monsters are
// selected, weapons equipped and potions drunk.
func (s *Session) PlayCard(index int) (Result, error) {
	if err := s.checkIndex(index); err != nil {
		return Result{}, err
	}
	switch s.dungeon.Room[index].Kind {
	case KindWeapon:
		return s.PlayWeapon(index)
	case KindHealth:
		return s.PlayHealth(index)
	default:
		return s.SelectMonster(index)
	}
}

// FightBarehanded fights the selected monster taking its full strength as damage.
func (s *Session) FightBarehanded() (Result, error) {
	return s.fight(false)
}

// FightWithWeapon fights the selected monster with the equipped weapon.
// If the weapon cannot be used the action is rejected and the selection kept.
func (s *Session) FightWithWeapon() (Result, error) {
	return s.fight(true)
}

func (s *Session) fight(useWeapon bool) (Result, error) {
	if s.phase != PhasePlaying {
		return Result{}, ErrNotPlaying
	}
	if s.selected < 0 {
		return Result{}, ErrNoSelection
	}

	index := s.selected
	monster := s.dungeon.Room[index]
	combat, err := ResolveCombat(monster, s.player.Weapon, useWeapon)
	if err != nil {
		return Result{}, err
	}

	s.player.Hurt(combat.Damage)
	s.player.Weapon = combat.Weapon
	return s.finish(index, Result{Move: MoveFight, Card: monster, Combat: &combat}), nil
}

// Flee returns the room to the bottom of the deck and deals a new one.
func (s *Session) Flee() (Result, error) {
	if s.phase != PhasePlaying {
		return Result{}, ErrNotPlaying
	}
	if !s.dungeon.Flee() {
		return Result{}, ErrCannotFlee
	}
	s.selected = -1
	s.persist()
	return Result{Move: MoveFlee, NewRoom: true}, nil
}

// finish removes the resolved card, advances the room and checks for the end
// of the game. A fatal card is removed without dealing so the deck is scored
// as the player left it.
func (s *Session) finish(index int, res Result) Result {
	if s.player.Alive() {
		_, res.NewRoom = s.dungeon.AfterResolve(index)
	} else {
		s.dungeon.Discard(index)
	}
	s.selected = -1

	s.checkEnd()
	if s.phase == PhaseEnded {
		res.Ended = true
		res.Won = s.outcome == OutcomeWin
		res.Score = s.score
		return res
	}
	s.persist()
	return res
}

func (s *Session) checkEnd() {
	switch {
	case !s.player.Alive():
		s.end(false)
	case s.dungeon.Cleared():
		s.end(true)
	}
}

func (s *Session) end(won bool) {
	s.phase = PhaseEnded
	s.outcome = OutcomeLoss
	if won {
		s.outcome = OutcomeWin
	}
	s.score = Finalize(won, s.player, s.dungeon.Deck)
	// A first loss still sets BestScore; there is no best before any game.
	s.stats.Record(s.score, won)

	s.logger.Info("game ended", "run", s.runID, "outcome", s.outcome, "score", s.score, "games", s.stats.Games)

	if s.gateway == nil {
		return
	}
	if err := s.gateway.SaveStats(s.stats); err != nil {
		s.logger.Warn("could not save stats", "error", err)
	}
	run := Run{ID: s.runID, Difficulty: s.difficulty, Score: s.score, Won: won}
	if err := s.gateway.RecordRun(run); err != nil {
		s.logger.Warn("could not record run", "run", s.runID, "error", err)
	}
	if err := s.gateway.ClearSnapshot(); err != nil {
		s.logger.Warn("could not clear snapshot", "error", err)
	}
}

// persist saves a snapshot. Failures are logged; play continues regardless.
func (s *Session) persist() {
	if s.gateway == nil {
		return
	}
	if err := s.gateway.SaveSnapshot(s.Snapshot()); err != nil {
		s.logger.Warn("could not save snapshot", "run", s.runID, "error", err)
	}
}

func (s *Session) checkIndex(index int) error {
	if s.phase != PhasePlaying {
		return ErrNotPlaying
	}
	if index < 0 || index >= len(s.dungeon.Room) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index+1)
	}
	return nil
}

func (s *Session) cardAt(index int, kind Kind) (Card, error) {
	if err := s.checkIndex(index); err != nil {
		return Card{}, err
	}
	card := s.dungeon.Room[index]
	if card.Kind != kind {
		return Card{}, fmt.Errorf("%w: %s is not a %s", ErrWrongCardKind, card, kind)
	}
	return card, nil
}
