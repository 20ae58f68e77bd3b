package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aperture/internal/logger"
	"github.com/abhisek/aperture/internal/router"
	"github.com/abhisek/aperture/internal/screen"
	"github.com/abhisek/aperture/internal/screens/course"
	"github.com/abhisek/aperture/internal/screens/welcome"
	"github.com/abhisek/aperture/internal/session"
	"github.com/abhisek/aperture/internal/ui/layout"
)

// Options holds the dependencies the TUI needs.
type Options struct {
	Machine *session.Machine

	// EvaluationTimeout bounds each photo evaluation. Zero means none.
	EvaluationTimeout time.Duration

	Logger *logger.Logger

	// SkipSplash starts directly on the course screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel starting on the splash screen, or on the
// course screen when the splash is skipped.
func newAppModel(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	courseFactory := func() screen.Screen {
		return course.New(opts.Machine,
			course.WithTimeout(opts.EvaluationTimeout),
			course.WithLogger(log),
		)
	}

	var initial screen.Screen
	if opts.SkipSplash {
		initial = courseFactory()
	} else {
		initial = welcome.New(courseFactory)
	}
	return AppModel{
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	var completed, total int
	if active != nil {
		title = active.Title()
		if pp, ok := active.(screen.ProgressProvider); ok {
			completed, total = pp.CourseProgress()
		}
	}

	header := layout.RenderHeader(title, completed, total, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if khp, ok := active.(screen.KeyHintProvider); ok {
		hints = khp.KeyHints()
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Machine == nil {
		return fmt.Errorf("app: session machine is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
