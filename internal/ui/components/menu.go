package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aperture/internal/ui/theme"
)

// MenuItem is one choice in a Menu. Choosing it emits Msg.
type MenuItem struct {
	Label    string
	Msg      tea.Msg
	Disabled bool
}

// Menu is a vertical list of choices navigated with up/down and chosen
// with enter. The cursor wraps and never rests on a disabled item.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	return m
}

// move advances the cursor by step to the next enabled item.
func (m *Menu) move(step int) {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		idx := ((m.Selected+step*i)%n + n) % n
		if !m.Items[idx].Disabled {
			m.Selected = idx
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		item := m.Items[m.Selected]
		if item.Disabled || item.Msg == nil {
			return m, nil
		}
		return m, func() tea.Msg { return item.Msg }
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			b.WriteString(theme.Hint.Render("    " + item.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
