package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aperture/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ProgressProvider is an optional interface for screens that know the
// learner's course progress. The header shows it when the active screen
// provides it.
type ProgressProvider interface {
	CourseProgress() (completed, total int)
}

// BackgroundReceiver is an optional interface for screens that must see
// some messages even while another screen is stacked on top of them,
// such as the results of work they started.
type BackgroundReceiver interface {
	ReceivesInBackground(msg tea.Msg) bool
}
