package scoundrel

import (
	"fmt"

	"github.com/vovakirdan/scoundrel/internal/core"
)

const (
	cardWidth  = 16
	cardHeight = 7
	cardGap    = 2
	minWidth   = RoomSize*(cardWidth+cardGap) - cardGap
	minHeight  = 20
)

var kindColors = map[Kind]core.Color{
	KindMonster: core.ColorRed,
	KindWeapon:  core.ColorCyan,
	KindHealth:  core.ColorGreen,
}

var kindLabels = map[Kind]string{
	KindMonster: "MONSTER",
	KindWeapon:  "WEAPON",
	KindHealth:  "POTION",
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	if dst.Width() < minWidth || dst.Height() < minHeight {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need at least %dx%d", minWidth, minHeight), core.ColorGray)
		return
	}

	v := g.session.View()
	left := (dst.Width() - minWidth) / 2

	g.renderHUD(dst, v, left)
	if v.Phase == PhaseEnded {
		g.renderEnd(dst, v)
	} else {
		renderRoom(dst, v, left, 4)
	}
	g.renderLog(dst, left, 4+cardHeight+2)
	renderControls(dst, v)
}

func (g *Game) renderHUD(dst *core.Screen, v View, left int) {
	dst.DrawTextCentered(0, "S C O U N D R E L", core.ColorBrightYellow)

	hpColor := core.ColorBrightGreen
	switch {
	case v.Health*4 <= v.MaxHealth:
		hpColor = core.ColorBrightRed
	case v.Health*2 <= v.MaxHealth:
		hpColor = core.ColorYellow
	}
	hp := fmt.Sprintf("HP %d/%d", v.Health, v.MaxHealth)
	dst.DrawTextColor(left, 2, hp, hpColor)

	weapon := "Weapon: none"
	if w := v.Weapon; w != nil {
		weapon = fmt.Sprintf("Weapon: %d", w.Power)
		if w.Bounded {
			weapon += fmt.Sprintf(" (<=%d)", w.LastSlain)
		}
	}
	x := left + len(hp) + 3
	dst.DrawTextColor(x, 2, weapon, core.ColorCyan)
	x += len(weapon) + 3

	deck := fmt.Sprintf("Deck: %d", v.DeckSize)
	dst.DrawText(x, 2, deck)
	x += len(deck) + 3

	info := v.Difficulty.Title()
	if v.Phase == PhasePlaying {
		if v.CanRun {
			info += "  Run: ready"
		} else {
			info += "  Run: spent"
		}
	}
	dst.DrawTextColor(x, 2, info, core.ColorGray)
}

func renderRoom(dst *core.Screen, v View, left, top int) {
	for i, cv := range v.Room {
		x := left + i*(cardWidth+cardGap)
		renderCard(dst, cv, v.PotionUsed, core.NewRect(x, top, cardWidth, cardHeight))
	}
}

func renderCard(dst *core.Screen, cv CardView, potionUsed bool, r core.Rect) {
	color := kindColors[cv.Card.Kind]
	border := core.ColorGray
	if cv.Selected {
		border = core.ColorBrightYellow
	}
	dst.DrawBox(r, border)

	dst.DrawTextColor(r.X+2, r.Y+1, fmt.Sprintf("[%d]", cv.Index+1), border)
	dst.DrawTextColor(r.X+2, r.Y+2, kindLabels[cv.Card.Kind], color)
	dst.DrawTextColor(r.X+2, r.Y+3, fmt.Sprintf("%d", cv.Card.Strength), color)

	var hint string
	hintColor := core.ColorGray
	switch cv.Card.Kind {
	case KindMonster:
		if cv.Armed {
			hint = fmt.Sprintf("W: -%d HP", cv.Damage)
			hintColor = core.ColorCyan
		} else {
			hint = fmt.Sprintf("F: -%d HP", cv.Damage)
		}
	case KindWeapon:
		hint = "equip"
	case KindHealth:
		if potionUsed {
			hint = "wasted"
		} else {
			hint = fmt.Sprintf("+%d HP", cv.Heals)
			hintColor = core.ColorGreen
		}
	}
	dst.DrawTextColor(r.X+2, r.Y+5, hint, hintColor)
}

func (g *Game) renderEnd(dst *core.Screen, v View) {
	y := 5
	if v.Outcome == OutcomeWin {
		dst.DrawTextCentered(y, "THE DUNGEON IS CLEAR", core.ColorBrightGreen)
	} else {
		dst.DrawTextCentered(y, "YOU HAVE FALLEN", core.ColorBrightRed)
	}
	dst.DrawTextCentered(y+2, fmt.Sprintf("Score: %d", v.Score), core.ColorBrightYellow)

	s := v.Stats
	dst.DrawTextCentered(y+4, fmt.Sprintf("Games %d  Wins %d  Losses %d  Best %d", s.Games, s.Wins, s.Losses, s.BestScore), core.ColorGray)
	dst.DrawTextCentered(y+5, fmt.Sprintf("Win rate %.0f%%", s.WinRate()*100), core.ColorGray)
}

func (g *Game) renderLog(dst *core.Screen, left, top int) {
	for i, line := range g.lines {
		color := core.ColorGray
		if i == len(g.lines)-1 {
			color = core.ColorWhite
		}
		dst.DrawTextColor(left, top+i, line, color)
	}
}

func renderControls(dst *core.Screen, v View) {
	var controls string
	if v.Phase == PhaseEnded {
		controls = "N new game   Esc menu   Q quit"
	} else {
		controls = "1-4 play/select   F fight   W fight armed   R run   Esc menu   Q quit"
	}
	dst.DrawTextCentered(dst.Height()-1, controls, core.ColorGray)
}
