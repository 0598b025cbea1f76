package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tcs/internal/menu"
	"tcs/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Grey

	// Button colours follow the cabinet theme: grey buttons, light focus.
	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#707070")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#707070"))

	focusedButtonStyle = buttonStyle.
				BorderForeground(lipgloss.Color("#EEEEEE")).
				Foreground(lipgloss.Color("#000000")).
				Background(lipgloss.Color("#EEEEEE"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)
)

const (
	minButtonWidth = 24
	maxButtonWidth = 48
)

func (m AppModel) View() string {
	width := m.WindowSize.Width
	height := m.WindowSize.Height

	header := m.renderHeader()
	footer := m.renderFooter()
	buttons := m.renderButtons()

	body := lipgloss.JoinVertical(lipgloss.Center, header, "", buttons)
	if width <= 0 || height <= 0 {
		// No size yet (first frame or tests): plain layout.
		return body + "\n\n" + footer
	}

	bodyHeight := height - lipgloss.Height(footer)
	if bodyHeight < lipgloss.Height(body) {
		bodyHeight = lipgloss.Height(body)
	}
	placed := lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	return lipgloss.JoinVertical(lipgloss.Left, placed, footer)
}

func (m AppModel) renderHeader() string {
	current := m.Nav.Current()
	title := titleStyle.Render(m.Title)
	if current.IsRoot() {
		return title
	}
	crumb := strings.ReplaceAll(current.Path, model.PathSeparator, " "+model.IconSubmenu+" ")
	return lipgloss.JoinVertical(lipgloss.Center, title, breadcrumbStyle.Render(crumb))
}

func (m AppModel) renderButtons() string {
	items := m.Nav.Items()
	if len(items) == 0 {
		return breadcrumbStyle.Render("(no entries)")
	}

	w := buttonWidth(items)
	selected := m.Selected()

	rows := make([]string, 0, len(items))
	for _, it := range items {
		style := buttonStyle
		if it == selected {
			style = focusedButtonStyle
		}
		rows = append(rows, style.Width(w).Render(label(it)))
	}

	// Keep the focused button on screen when the menu is taller than the window.
	if limit := m.visibleButtons(); limit > 0 && len(rows) > limit {
		start := m.Cursor() - limit/2
		if start < 0 {
			start = 0
		}
		if start+limit > len(rows) {
			start = len(rows) - limit
		}
		rows = rows[start : start+limit]
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

// visibleButtons is how many 3-line buttons fit between header and footer.
func (m AppModel) visibleButtons() int {
	if m.WindowSize.Height <= 0 {
		return 0
	}
	free := m.WindowSize.Height - lipgloss.Height(m.renderHeader()) - lipgloss.Height(m.renderFooter()) - 1
	n := free / 3
	if n < 1 {
		n = 1
	}
	return n
}

func label(it *menu.Item) string {
	switch it.Kind {
	case menu.KindSubmenu:
		return it.Name + " " + it.Kind.Icon()
	case menu.KindBack, menu.KindQuit:
		return it.Kind.Icon() + " " + it.Name
	default:
		return it.Name
	}
}

func buttonWidth(items []*menu.Item) int {
	w := minButtonWidth
	for _, it := range items {
		if lw := lipgloss.Width(label(it)) + 4; lw > w {
			w = lw
		}
	}
	if w > maxButtonWidth {
		w = maxButtonWidth
	}
	return w
}

func (m AppModel) renderFooter() string {
	var b strings.Builder
	switch {
	case m.Running != "":
		b.WriteString(runningStyle.Render(fmt.Sprintf("Running %s...", m.Running)))
	case m.Status != "":
		b.WriteString(statusStyle.Render("Error: " + m.Status))
	}
	b.WriteString("\n")
	b.WriteString(m.Help.View(m.Keys))
	return b.String()
}
