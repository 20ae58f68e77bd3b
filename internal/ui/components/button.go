package components

import (
	"github.com/abhisek/aperture/internal/ui/theme"
)

// Button renders a labelled action with the key that triggers it. Key
// handling stays with the owning screen.
type Button struct {
	Label  string
	Key    string
	Active bool
}

func NewButton(label, key string, active bool) Button {
	return Button{Label: label, Key: key, Active: active}
}

func (b Button) View() string {
	label := " " + b.Label + " "
	if b.Key != "" {
		label = " " + b.Key + " · " + b.Label + " "
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
