package scoundrel

import (
	"strings"
	"testing"

	"github.com/vovakirdan/scoundrel/internal/config"
	"github.com/vovakirdan/scoundrel/internal/core"
	"github.com/vovakirdan/scoundrel/internal/registry"
)

func newTestGame(t *testing.T, preset config.DifficultyPreset, gw Gateway) *Game {
	t.Helper()
	g := New(preset)
	g.Attach(gw, nil)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 12345})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestVariantsRegistered(t *testing.T) {
	for _, p := range config.Presets() {
		id := IDFor(p)
		if !registry.Exists(id) {
			t.Errorf("variant %q not registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
		if got, ok := PresetFor(id); !ok || got != p {
			t.Errorf("PresetFor(%q) = %q, %v", id, got, ok)
		}
	}

	if _, ok := PresetFor("snake"); ok {
		t.Error("PresetFor() accepted a foreign ID")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, config.DifficultyHard, nil)
	g2 := newTestGame(t, config.DifficultyHard, nil)

	for i := 0; i < 40; i++ {
		in := press(core.CardAction(i%4), core.ActionFight)
		if i%7 == 0 {
			in = press(core.ActionFlee)
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.session.Snapshot(), g2.session.Snapshot()
	if s1.Player.Health != s2.Player.Health {
		t.Errorf("Health mismatch: %d vs %d", s1.Player.Health, s2.Player.Health)
	}
	if len(s1.Deck) != len(s2.Deck) || len(s1.Room) != len(s2.Room) {
		t.Fatalf("dungeon size mismatch: %d/%d vs %d/%d", len(s1.Deck), len(s1.Room), len(s2.Deck), len(s2.Room))
	}
	for i := range s1.Room {
		if s1.Room[i] != s2.Room[i] {
			t.Errorf("room[%d] mismatch: %s vs %s", i, s1.Room[i], s2.Room[i])
		}
	}
}

func TestStepMapsActions(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, nil)
	g.session.player.Health = 20
	g.session.dungeon = Dungeon{
		Deck:   Deck{m(2), m(3), m(4), m(5), m(6)},
		Room:   Room{w(5), m(9), h(4), m(2)},
		CanRun: true,
	}

	g.Step(press(core.ActionCard1))
	if v := g.View(); v.Weapon == nil || v.Weapon.Power != 5 {
		t.Fatalf("card 1 should equip the weapon, weapon = %+v", v.Weapon)
	}

	res := g.Step(press(core.ActionFightArmed))
	if !strings.Contains(res.Message, "Select a monster") {
		t.Errorf("Message = %q, expected a selection hint", res.Message)
	}

	g.Step(press(core.ActionCard1))
	if g.session.Selected() != 0 {
		t.Fatalf("Selected() = %d, expected 0", g.session.Selected())
	}
	g.Step(press(core.ActionFightArmed))
	if v := g.View(); v.Health != 16 || v.Weapon.LastSlain != 9 {
		t.Errorf("after armed fight: health %d, last slain %d", v.Health, v.Weapon.LastSlain)
	}

	res = g.Step(press(core.ActionFlee))
	if res.Message == "" || g.View().CanRun {
		t.Errorf("flee: message %q, canRun %v", res.Message, g.View().CanRun)
	}
}

func TestNewGameAfterEnd(t *testing.T) {
	gw := &memGateway{}
	g := newTestGame(t, config.DifficultyNormal, gw)
	g.session.player.Health = 3
	g.session.dungeon = Dungeon{Room: Room{m(9), h(2)}}

	g.Step(press(core.ActionCard1))
	res := g.Step(press(core.ActionFight))
	if !res.State.GameOver || res.State.Won {
		t.Fatalf("State = %+v, expected a loss", res.State)
	}
	if !strings.Contains(res.Message, "fallen") {
		t.Errorf("Message = %q", res.Message)
	}

	// Card actions are ignored until a new game starts.
	g.Step(press(core.ActionCard2))
	if !g.State().GameOver {
		t.Fatal("ended game should ignore card actions")
	}

	res = g.Step(press(core.ActionNewGame))
	if res.State.GameOver {
		t.Error("ActionNewGame should start a new game")
	}
	if gw.stats.Games != 1 || len(gw.runs) != 1 {
		t.Errorf("stats %+v, runs %d", gw.stats, len(gw.runs))
	}
}

func TestResetResumesStoredGame(t *testing.T) {
	gw := &memGateway{}
	snap := validSnapshot()
	gw.snapshot = &snap

	SetResume(true)
	g := newTestGame(t, config.DifficultyNormal, gw)
	if !g.Resumed() {
		t.Fatal("Resumed() = false, expected the stored game")
	}
	if g.View().Health != 12 {
		t.Errorf("Health = %d, expected 12", g.View().Health)
	}

	// The flag is consumed by one Reset.
	g2 := newTestGame(t, config.DifficultyNormal, gw)
	if g2.Resumed() {
		t.Error("second Reset should start a new game")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, nil)
	g.session.dungeon.Room = Room{m(11), w(4), h(7), m(3)}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"S C O U N D R E L", "HP 20/20", "MONSTER", "WEAPON", "POTION", "[4]"} {
		if !strings.Contains(out, want) {
			t.Errorf("render lacks %q:\n%s", want, out)
		}
	}

	small := core.NewScreen(40, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Error("small screen should show a resize hint")
	}
}
