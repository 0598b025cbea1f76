package tui

import (
	"errors"
	"strings"

	"tcs/internal/launch"
	"tcs/internal/menu"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// MsgRunDone indicates that a RUN item's commands have all finished.
type MsgRunDone struct {
	Item *menu.Item
	Err  error
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.Help.Width = msg.Width
		return m, nil

	case MsgRunDone:
		m.Running = ""
		m.Status = describeRunError(msg.Err)
		return m, nil

	case tea.KeyMsg:
		if m.Running != "" {
			// Input that arrives while the terminal is handed over is dropped.
			return m, nil
		}

		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Help):
			m.Help.ShowAll = !m.Help.ShowAll
		case key.Matches(msg, m.Keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.Keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.Keys.Top):
			m.setCursor(0)
		case key.Matches(msg, m.Keys.Bottom):
			m.setCursor(len(m.Nav.Items()) - 1)
		case key.Matches(msg, m.Keys.Back):
			m.Status = ""
			m.Nav.Back()
		case key.Matches(msg, m.Keys.Activate):
			return m.activate(m.Selected())
		}
	}

	return m, nil
}

func (m AppModel) activate(item *menu.Item) (tea.Model, tea.Cmd) {
	if item == nil {
		return m, nil
	}
	m.Status = ""

	switch item.Kind {
	case menu.KindRun:
		m.Running = item.Name
		c := &runItem{nav: m.Nav, item: item, streams: m.streams}
		return m, tea.Exec(c, func(err error) tea.Msg {
			return MsgRunDone{Item: item, Err: err}
		})

	default:
		if err := m.Nav.Activate(item); err != nil {
			log.Error().Err(err).Str("item", item.Name).Msg("navigation failed")
			m.Status = err.Error()
			return m, nil
		}
		if m.Nav.Quitting() {
			return m, tea.Quit
		}
		return m, nil
	}
}

func (m *AppModel) moveCursor(delta int) {
	n := len(m.Nav.Items())
	if n == 0 {
		return
	}
	// Wrap around: a cabinet stick has no page keys.
	m.setCursor((m.Cursor() + delta + n) % n)
}

func (m *AppModel) setCursor(i int) {
	n := len(m.Nav.Items())
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	m.Cursors[m.Nav.Current()] = i
}

// describeRunError turns joined launch errors into a one-line status.
func describeRunError(err error) string {
	if err == nil {
		return ""
	}
	var parts []string
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			parts = append(parts, describeOne(e))
		}
	} else {
		parts = append(parts, describeOne(err))
	}
	return strings.Join(parts, "; ")
}

func describeOne(err error) string {
	var le *launch.LaunchError
	if errors.As(err, &le) {
		return "could not start " + string(le.Stage) + " command " + le.Command + ": " + le.Err.Error()
	}
	return err.Error()
}
