package scoundrel

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/scoundrel/internal/config"
	"github.com/vovakirdan/scoundrel/internal/core"
	"github.com/vovakirdan/scoundrel/internal/registry"
)

// logSize is the number of message lines kept for the HUD.
const logSize = 4

// Package-level options set by the CLI before a game is created.
var (
	configPath    string
	resumeOnReset bool
)

// SetConfigPath sets a custom config file path. Empty uses the search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetResume makes the next Reset continue the stored game when one is resumable.
func SetResume(resume bool) {
	resumeOnReset = resume
}

// Game adapts a Session to the registry.Game interface.
type Game struct {
	preset  config.DifficultyPreset
	session *Session
	gateway Gateway
	logger  *log.Logger
	narr    narrator
	lines   []string
	resumed bool
}

// New creates a game for the given difficulty.
func New(preset config.DifficultyPreset) *Game {
	return &Game{
		preset: preset,
		logger: log.New(io.Discard),
	}
}

func init() {
	for i, p := range config.Presets() {
		preset := p
		registry.Register(IDFor(preset), i, func() registry.Game {
			return New(preset)
		})
	}
}

// IDFor returns the registry ID of the variant for a difficulty.
func IDFor(preset config.DifficultyPreset) string {
	if preset == config.DifficultyNormal || preset == "" {
		return "scoundrel"
	}
	return "scoundrel_" + string(preset)
}

// PresetFor returns the difficulty of a registry ID.
func PresetFor(id string) (config.DifficultyPreset, bool) {
	for _, p := range config.Presets() {
		if IDFor(p) == id {
			return p, true
		}
	}
	return "", false
}

// Attach sets where the game persists its state and where it logs.
// It must be called before Reset.
func (g *Game) Attach(gw Gateway, logger *log.Logger) {
	g.gateway = gw
	if logger != nil {
		g.logger = logger
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return IDFor(g.preset)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.preset == config.DifficultyNormal {
		return "Scoundrel"
	}
	return "Scoundrel (" + g.preset.Title() + ")"
}

// Preset returns the difficulty this variant deals.
func (g *Game) Preset() config.DifficultyPreset {
	return g.preset
}

// Reset loads the difficulty tier and starts a game, resuming the stored
// one if SetResume was called.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	g.narr = narrator{rng: rand.New(rand.NewSource(rng.Int63()))}
	g.lines = nil

	tier := g.loadTier()
	opts := []Option{WithRand(rng), WithLogger(g.logger)}
	if g.gateway != nil {
		opts = append(opts, WithGateway(g.gateway))
	}
	g.session = NewSession(tier, opts...)

	g.resumed = false
	if resumeOnReset {
		resumeOnReset = false
		ok, err := g.session.Resume()
		if err != nil {
			g.logger.Warn("could not resume game", "error", err)
		}
		g.resumed = ok
	}
	if g.resumed {
		g.say("You return to the dungeon where you left off.")
		return
	}
	g.session.NewGame()
	g.say("You descend into the dungeon. Pick a card with 1-4.")
}

func (g *Game) loadTier() config.Tier {
	sc, err := config.LoadScoundrel(configPath)
	if err != nil {
		g.logger.Warn("could not load config, using defaults", "path", configPath, "error", err)
		sc = config.DefaultScoundrelConfig()
	}
	tier, err := sc.Tier(g.preset)
	if err != nil {
		g.logger.Warn("unknown difficulty, using defaults", "difficulty", g.preset, "error", err)
		tier, _ = config.DefaultScoundrelConfig().Tier(g.preset) //nolint:errcheck // presets are always present in defaults
	}
	return tier
}

// Step applies the player's actions.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session.Phase() == PhaseEnded {
		if in.Has(core.ActionNewGame) {
			g.lines = nil
			g.session.NewGame()
			g.say("A new dungeon awaits.")
		}
		return core.StepResult{State: g.State(), Message: g.lastLine()}
	}

	for i := range 4 {
		if in.Has(core.CardAction(i)) {
			g.apply(g.session.PlayCard(i))
		}
	}
	switch {
	case in.Has(core.ActionFightArmed):
		g.apply(g.session.FightWithWeapon())
	case in.Has(core.ActionFight):
		g.apply(g.session.FightBarehanded())
	case in.Has(core.ActionFlee):
		g.apply(g.session.Flee())
	}

	return core.StepResult{State: g.State(), Message: g.lastLine()}
}

func (g *Game) apply(res Result, err error) {
	if err != nil {
		g.say(describeError(err))
		return
	}
	g.say(g.narr.describe(res))
}

func (g *Game) say(line string) {
	g.lines = append(g.lines, line)
	if len(g.lines) > logSize {
		g.lines = g.lines[len(g.lines)-logSize:]
	}
}

func (g *Game) lastLine() string {
	if len(g.lines) == 0 {
		return ""
	}
	return g.lines[len(g.lines)-1]
}

// State returns the platform-level game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Phase() == PhaseEnded,
		Won:      g.session.Outcome() == OutcomeWin,
	}
}

// View returns the session view for the current game.
func (g *Game) View() View {
	return g.session.View()
}

// Resumed reports whether the last Reset continued a stored game.
func (g *Game) Resumed() bool {
	return g.resumed
}
