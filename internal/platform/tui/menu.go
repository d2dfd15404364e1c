package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// MenuModel lets the player pick a board variant.
type MenuModel struct {
	items    []registry.GameInfo
	cursor   int
	config   core.RuntimeConfig
	quitting bool
	selected *registry.GameInfo
}

// NewMenuModel creates a menu listing every registered variant, with the
// cursor on initialID when it exists.
func NewMenuModel(cfg core.RuntimeConfig, initialID string) MenuModel {
	items := registry.List()

	cursor := 0
	for i, g := range items {
		if g.ID == initialID {
			cursor = i
		}
	}

	return MenuModel{
		items:  items,
		cursor: cursor,
		config: cfg,
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, max(len(m.items)-1, 0))

	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, max(len(m.items)-1, 0))

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
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
	b.WriteString(centerText(titleStyle.Render("2 0 4 8"), "2 0 4 8", m.config.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a board", "Choose a board", m.config.ScreenW))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		styled := line
		if i == m.cursor {
			line = "> " + item.Title
			styled = cursorStyle.Render(line)
		}
		b.WriteString(centerText(styled, line, m.config.ScreenW))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Q: Quit"
	b.WriteString(centerText(helpStyle.Render(controls), controls, m.config.ScreenW))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen variant, or nil if none was chosen yet.
func (m MenuModel) Selected() *registry.GameInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads styled so that plain, its unstyled form, is centered.
func centerText(styled, plain string, width int) string {
	n := len([]rune(plain))
	if n >= width {
		return styled
	}
	return strings.Repeat(" ", (width-n)/2) + styled
}
