package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/scoundrel/internal/core"
	"github.com/vovakirdan/scoundrel/internal/games/scoundrel"
	"github.com/vovakirdan/scoundrel/internal/registry"
	"github.com/vovakirdan/scoundrel/internal/storage"
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	GameID string
	Title  string
	// Resume continues the stored game instead of dealing a new one.
	Resume bool
	// Scoreboard opens the score history.
	Scoreboard bool
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	stats     scoundrel.Stats
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a new menu model. A resumable stored game is offered
// as the first entry. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	var stats scoundrel.Stats

	if store != nil {
		if snap, err := store.LoadSnapshot(); err == nil && snap != nil && snap.Resumable() {
			items = append(items, MenuItem{
				GameID: scoundrel.IDFor(snap.Difficulty),
				Title: fmt.Sprintf("Continue (%s, HP %d/%d, %d cards left)",
					snap.Difficulty.Title(), snap.Player.Health, snap.Player.MaxHealth, len(snap.Deck)+len(snap.Room)),
				Resume: true,
			})
		}
		if st, err := store.LoadStats(); err == nil {
			stats = st
		}
	}

	for _, g := range registry.List() {
		items = append(items, MenuItem{
			GameID: g.ID,
			Title:  "New game: " + g.Title,
		})
	}
	items = append(items, MenuItem{Title: "High scores", Scoreboard: true})

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		stats:     stats,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.selected = &MenuItem{Title: "High scores", Scoreboard: true}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S C O U N D R E L"), "S C O U N D R E L", m.width))
	b.WriteString("\n\n")

	subtitle := "A solo dungeon crawl with a deck of cards"
	if m.stats.Games > 0 {
		subtitle = fmt.Sprintf("Games %d  Wins %d  Best %d", m.stats.Games, m.stats.Wins, m.stats.BestScore)
	}
	b.WriteString(centerText(menuSubtitleStyle.Render(subtitle), subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		styled := line
		if i == m.cursor {
			line = "> " + item.Title
			styled = menuCursorStyle.Render(line)
		}
		b.WriteString(centerText(styled, line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuSubtitleStyle.Render(controls), controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads a rendered string so its plain form is centered in width.
func centerText(rendered, plain string, width int) string {
	n := len([]rune(plain))
	if n >= width {
		return rendered
	}
	return strings.Repeat(" ", (width-n)/2) + rendered
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Resume          bool
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config()}

	sel := m.Selected()
	switch {
	case sel == nil:
		result.Quit = true
	case sel.Scoreboard:
		result.WantsScoreboard = true
	default:
		result.GameID = sel.GameID
		result.Resume = sel.Resume
	}
	return result
}
