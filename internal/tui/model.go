package tui

import (
	"io"

	"tcs/internal/menu"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// Streams receives the terminal streams tea.Exec hands over while an
// item's commands run. launch.Launcher implements it.
type Streams interface {
	SetStdio(stdin io.Reader, stdout, stderr io.Writer)
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Nav   *menu.Navigator
	Title string

	// UI State
	Cursors    map[*menu.Menu]int // Focused button per menu
	WindowSize tea.WindowSizeMsg
	Status     string // Last launch problem, cleared on the next action
	Running    string // Item whose commands are running

	// Components
	Help help.Model
	Keys KeyMap

	streams Streams
}

// InitialModel returns the initial state, showing the root menu.
func InitialModel(nav *menu.Navigator, title string, streams Streams) AppModel {
	if title == "" {
		title = "TCS"
	}
	return AppModel{
		Nav:     nav,
		Title:   title,
		Cursors: make(map[*menu.Menu]int),
		Help:    help.New(),
		Keys:    DefaultKeyMap(),
		streams: streams,
	}
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Cursor returns the focused button index in the displayed menu.
func (m AppModel) Cursor() int {
	return m.Cursors[m.Nav.Current()]
}

// Selected returns the focused item, or nil for an empty menu.
func (m AppModel) Selected() *menu.Item {
	items := m.Nav.Items()
	if len(items) == 0 {
		return nil
	}
	c := m.Cursor()
	if c >= len(items) {
		c = len(items) - 1
	}
	return items[c]
}
