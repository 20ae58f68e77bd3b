package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aperture/internal/router"
	"github.com/abhisek/aperture/internal/screen"
	"github.com/abhisek/aperture/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	irisOpenEnd  = 800 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

// irisFrames shows the lens opening, smallest aperture first.
var irisFrames = []string{
	`   ╭─────╮
  ╱ ╲ │ ╱ ╲
 │ ──▣── │
  ╲ ╱ │ ╲ ╱
   ╰─────╯`,
	`   ╭─────╮
  ╱ ╲   ╱ ╲
 │ ─ ( ) ─ │
  ╲ ╱   ╲ ╱
   ╰─────╯`,
	`   ╭─────╮
  ╱       ╲
 │  (   )  │
  ╲       ╱
   ╰─────╯`,
	`   ╭─────╮
  ╱       ╲
 │ (     ) │
  ╲       ╱
   ╰─────╯`,
}

type tickMsg time.Time

// WelcomeScreen plays a short splash and then hands over to the course.
type WelcomeScreen struct {
	nextFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will be replaced by the screen produced
// by nextFactory.
func New(nextFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		nextFactory: nextFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= totalDur {
			w.elapsed = totalDur
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) frame() string {
	step := int(w.elapsed * time.Duration(len(irisFrames)) / irisOpenEnd)
	if step >= len(irisFrames) {
		step = len(irisFrames) - 1
	}
	return irisFrames[step]
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Render(w.frame()),
	}

	if w.elapsed >= irisOpenEnd {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Learn photography one shot at a time."),
			"",
			theme.Hint.Render("press any key to start"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
