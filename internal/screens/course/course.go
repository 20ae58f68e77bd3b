package course

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aperture/internal/evaluation"
	"github.com/abhisek/aperture/internal/logger"
	"github.com/abhisek/aperture/internal/router"
	"github.com/abhisek/aperture/internal/screen"
	"github.com/abhisek/aperture/internal/screens/lessons"
	"github.com/abhisek/aperture/internal/session"
	"github.com/abhisek/aperture/internal/ui/components"
	"github.com/abhisek/aperture/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

// photoPreview is a photo the learner picked but has not yet confirmed.
type photoPreview struct {
	Path    string
	Size    int
	DataURI string
}

// Option configures a CourseScreen.
type Option func(*CourseScreen)

// WithTimeout bounds each evaluation call. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *CourseScreen) { s.timeout = d }
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(log *logger.Logger) Option {
	return func(s *CourseScreen) { s.log = log }
}

// WithEncoder replaces the function that turns a file path into a photo
// data URI. Default: evaluation.EncodeFile.
func WithEncoder(fn func(path string) (string, error)) Option {
	return func(s *CourseScreen) { s.encode = fn }
}

// CourseScreen drives a session.Machine: lesson theory, photo selection,
// feedback, and the course-complete celebration.
type CourseScreen struct {
	machine *session.Machine
	encode  func(path string) (string, error)
	timeout time.Duration
	log     *logger.Logger

	input           components.TextInput
	preview         *photoPreview
	celebrationMenu components.Menu

	scroll          int
	spinnerFrame    int
	hideCelebration bool
}

var _ screen.Screen = (*CourseScreen)(nil)
var _ screen.KeyHintProvider = (*CourseScreen)(nil)
var _ screen.ProgressProvider = (*CourseScreen)(nil)

// New creates a CourseScreen over m.
func New(m *session.Machine, opts ...Option) *CourseScreen {
	s := &CourseScreen{
		machine: m,
		encode:  evaluation.EncodeFile,
		log:     logger.Nop(),
		input:   components.NewTextInput("~/Pictures/my-shot.jpg", 60),
	}
	s.celebrationMenu = components.NewMenu([]components.MenuItem{
		{Label: "Start over", Msg: restartMsg{}},
		{Label: "Keep browsing", Msg: dismissCelebrationMsg{}},
	})
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

func (s *CourseScreen) Init() tea.Cmd {
	return nil
}

func (s *CourseScreen) Title() string {
	return s.machine.Lesson().Title
}

// CourseProgress reports completed lessons for the header.
func (s *CourseScreen) CourseProgress() (int, int) {
	return s.machine.CompletedCount(), s.machine.Catalog().Len()
}

func (s *CourseScreen) KeyHints() []layout.KeyHint {
	st := s.machine.State()
	if s.celebrationVisible(st) {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "R", Description: "Start over"},
		}
	}

	lessonsHint := layout.KeyHint{Key: "Tab", Description: "Lessons"}
	switch st.Phase {
	case session.PhaseLearn:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Enter", Description: "I'm ready to shoot"},
			lessonsHint,
		}
	case session.PhaseShoot:
		if s.preview != nil {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Submit photo"},
				{Key: "Esc", Description: "Choose different"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Select photo"},
			{Key: "Esc", Description: "Back to lesson"},
			lessonsHint,
		}
	case session.PhaseFeedback:
		if st.InFlight || st.Feedback == nil {
			return []layout.KeyHint{lessonsHint}
		}
		if st.Feedback.Pass {
			if s.machine.Catalog().IsLast(st.LessonID) {
				return []layout.KeyHint{lessonsHint}
			}
			return []layout.KeyHint{{Key: "Enter", Description: "Next lesson"}, lessonsHint}
		}
		return []layout.KeyHint{{Key: "Enter", Description: "Try again"}, lessonsHint}
	}
	return nil
}

// ReceivesInBackground keeps evaluation results and the spinner flowing
// while the lesson picker is open.
func (s *CourseScreen) ReceivesInBackground(msg tea.Msg) bool {
	switch msg.(type) {
	case evaluationDoneMsg, spinnerTickMsg:
		return true
	}
	return false
}

func (s *CourseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case evaluationDoneMsg:
		return s.handleEvaluationDone(msg)

	case spinnerTickMsg:
		if !s.machine.State().InFlight {
			return s, nil
		}
		s.spinnerFrame++
		return s, spinnerTick()

	case lessons.SelectedMsg:
		return s.handleLessonSelected(msg)

	case restartMsg:
		return s, s.restart()

	case dismissCelebrationMsg:
		s.hideCelebration = true
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and friends.
	if s.inputActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *CourseScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	st := s.machine.State()

	if s.celebrationVisible(st) {
		switch key {
		case "r", "R":
			return s, s.restart()
		case "esc":
			s.hideCelebration = true
			return s, nil
		}
		var cmd tea.Cmd
		s.celebrationMenu, cmd = s.celebrationMenu.Update(msg)
		return s, cmd
	}

	if key == "tab" && s.preview == nil {
		return s, s.openPicker()
	}

	switch st.Phase {
	case session.PhaseLearn:
		return s.handleLearnKey(key)
	case session.PhaseShoot:
		return s.handleShootKey(msg)
	case session.PhaseFeedback:
		return s.handleFeedbackKey(key, st)
	}
	return s, nil
}

func (s *CourseScreen) handleLearnKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		s.scroll++
	case "enter", "s":
		if err := s.machine.Ready(); err != nil {
			return s, nil
		}
		s.input.Reset()
		return s, s.input.Init()
	}
	return s, nil
}

func (s *CourseScreen) handleShootKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.preview != nil {
		switch key {
		case "enter", "y":
			return s, s.submit()
		case "esc", "n":
			s.preview = nil
			return s, s.input.Init()
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.input.Reset()
		_ = s.machine.Back()
		s.scroll = 0
		return s, nil
	case "enter":
		s.choosePhoto()
		return s, nil
	}

	s.machine.ClearNotice()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *CourseScreen) handleFeedbackKey(key string, st session.State) (screen.Screen, tea.Cmd) {
	if st.InFlight || st.Feedback == nil {
		return s, nil
	}
	if key != "enter" && key != "c" && key != "r" {
		return s, nil
	}

	if st.Feedback.Pass {
		err := s.machine.Continue()
		if errors.Is(err, session.ErrNoNextLesson) {
			// Last lesson: the celebration is the way forward.
			s.hideCelebration = false
		}
		s.scroll = 0
		return s, nil
	}

	if err := s.machine.Retry(); err != nil {
		return s, nil
	}
	s.input.Reset()
	return s, s.input.Init()
}

// choosePhoto reads the file at the entered path and shows a preview.
func (s *CourseScreen) choosePhoto() {
	path := s.input.Value()
	if path == "" {
		s.input.SetError("Enter the path to a photo.")
		return
	}
	dataURI, err := s.encode(expandHome(path))
	if err != nil {
		s.log.Debug("photo not loaded", "path", path, "error", err)
		s.input.SetError(photoError(err))
		return
	}
	photo, err := evaluation.ParsePhoto(dataURI)
	if err != nil {
		s.input.SetError(evaluation.UserMessage(err))
		return
	}
	s.preview = &photoPreview{Path: path, Size: photo.Size, DataURI: dataURI}
}

// submit hands the previewed photo to the machine and starts the
// evaluation off the update loop.
func (s *CourseScreen) submit() tea.Cmd {
	p := s.preview
	s.preview = nil
	s.input.Reset()

	t, err := s.machine.Submit(p.DataURI)
	if err != nil {
		s.log.Debug("submit rejected", "error", err)
		return s.input.Init()
	}
	s.spinnerFrame = 0
	return tea.Batch(s.evaluate(t), spinnerTick())
}

// evaluate runs the ticket through the evaluator on a tea.Cmd goroutine.
// The machine is only read back on the update loop via Resolve.
func (s *CourseScreen) evaluate(t *session.Ticket) tea.Cmd {
	m := s.machine
	timeout := s.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return evaluationDoneMsg{Outcome: m.Evaluate(ctx, t)}
	}
}

func (s *CourseScreen) handleEvaluationDone(msg evaluationDoneMsg) (screen.Screen, tea.Cmd) {
	if !s.machine.Resolve(msg.Outcome) {
		return s, nil
	}
	st := s.machine.State()
	if st.Phase == session.PhaseShoot {
		return s, s.input.Init()
	}
	if st.Celebrating {
		s.hideCelebration = false
	}
	return s, nil
}

func (s *CourseScreen) handleLessonSelected(msg lessons.SelectedMsg) (screen.Screen, tea.Cmd) {
	if err := s.machine.SelectLesson(msg.LessonID); err != nil {
		s.log.Warn("lesson selection ignored", "lesson", msg.LessonID, "error", err)
		return s, nil
	}
	s.preview = nil
	s.input.Reset()
	s.scroll = 0
	return s, nil
}

func (s *CourseScreen) restart() tea.Cmd {
	if err := s.machine.Reset(); err != nil {
		s.log.Warn("restart refused", "error", err)
		return nil
	}
	s.preview = nil
	s.input.Reset()
	s.scroll = 0
	s.hideCelebration = false
	s.celebrationMenu.Selected = 0
	return nil
}

func (s *CourseScreen) openPicker() tea.Cmd {
	st := s.machine.State()
	picker := lessons.New(s.machine.Catalog(), s.machine.Progress(), st.LessonID)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: picker}
	}
}

func (s *CourseScreen) celebrationVisible(st session.State) bool {
	return st.Celebrating && !s.hideCelebration
}

func (s *CourseScreen) inputActive() bool {
	return s.machine.State().Phase == session.PhaseShoot && s.preview == nil
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
