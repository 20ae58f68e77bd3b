package lessons

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aperture/internal/catalog"
	"github.com/abhisek/aperture/internal/progress"
	"github.com/abhisek/aperture/internal/router"
	"github.com/abhisek/aperture/internal/screen"
	"github.com/abhisek/aperture/internal/ui/components"
	"github.com/abhisek/aperture/internal/ui/layout"
	"github.com/abhisek/aperture/internal/ui/theme"
)

// SelectedMsg is delivered to the screen underneath the picker when the
// learner chooses a lesson.
type SelectedMsg struct {
	LessonID string
}

type rowKind int

const (
	rowCategoryHeader rowKind = iota
	rowLesson
)

type row struct {
	kind     rowKind
	category catalog.Category
	index    int // position in the course, for lesson rows
	lesson   *catalog.Lesson
}

// PickerScreen lists the course grouped by category, with completion
// marks and ratings.
type PickerScreen struct {
	rows         []row
	cursor       int
	scrollOffset int
	current      string
	progress     progress.Map
	total        int
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)
var _ screen.ProgressProvider = (*PickerScreen)(nil)

// New creates a picker with the cursor on the current lesson.
func New(cat *catalog.Catalog, prog progress.Map, current string) *PickerScreen {
	all := cat.All()
	s := &PickerScreen{
		current:  current,
		progress: prog,
		total:    len(all),
	}

	var last catalog.Category
	for i := range all {
		if i == 0 || all[i].Category != last {
			s.rows = append(s.rows, row{kind: rowCategoryHeader, category: all[i].Category})
			last = all[i].Category
		}
		s.rows = append(s.rows, row{kind: rowLesson, category: all[i].Category, index: i, lesson: &all[i]})
	}

	s.cursor = -1
	for i, r := range s.rows {
		if r.kind != rowLesson {
			continue
		}
		if s.cursor < 0 || r.lesson.ID == current {
			s.cursor = i
		}
		if r.lesson.ID == current {
			break
		}
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	return s
}

func (s *PickerScreen) Init() tea.Cmd {
	return nil
}

func (s *PickerScreen) Title() string {
	return "Lessons"
}

// KeyHints returns the key binding hints for the footer.
func (s *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open lesson"},
		{Key: "Esc", Description: "Back"},
	}
}

// CourseProgress reports completed lessons for the header.
func (s *PickerScreen) CourseProgress() (int, int) {
	n := 0
	for _, r := range s.rows {
		if r.kind == rowLesson && s.progress.Completed(r.lesson.ID) {
			n++
		}
	}
	return n, s.total
}

func (s *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "enter":
			return s, s.selectLesson()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *PickerScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}

	s.adjustScroll(height)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowCategoryHeader:
			lines = append(lines, renderCategoryHeader(r.category, width))
		case rowLesson:
			lines = append(lines, s.renderLessonRow(r, i == s.cursor, width))
		}
	}
	return strings.Join(lines, "\n")
}

// Selected returns the lesson under the cursor.
func (s *PickerScreen) Selected() (catalog.Lesson, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].lesson == nil {
		return catalog.Lesson{}, false
	}
	return *s.rows[s.cursor].lesson, true
}

// moveCursor moves the cursor by delta, skipping category headers.
func (s *PickerScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowLesson {
			s.cursor = next
			return
		}
		next += delta
	}
}

// adjustScroll keeps the cursor, and the header above it, in view.
func (s *PickerScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowCategoryHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *PickerScreen) selectLesson() tea.Cmd {
	l, ok := s.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return router.PopScreenMsg{Result: SelectedMsg{LessonID: l.ID}}
	}
}

func renderCategoryHeader(c catalog.Category, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(string(c)))
}

func (s *PickerScreen) renderLessonRow(r row, selected bool, width int) string {
	mark := "○"
	markStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	rec, done := s.progress[r.lesson.ID]
	if done && rec.Completed {
		mark = "✓"
		markStyle = theme.Completed
	}

	cursor := "  "
	titleStyle := theme.Unselected
	if selected {
		cursor = "▸ "
		titleStyle = theme.Selected
	}

	title := fmt.Sprintf("%d. %s", r.index+1, r.lesson.Title)
	if r.lesson.ID == s.current {
		title += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  (current)")
	}

	line := "  " + cursor + markStyle.Render(mark) + " " + titleStyle.Render(title)
	if done && rec.Completed && rec.Rating != nil {
		stars := components.Stars(*rec.Rating)
		gap := width - lipgloss.Width(line) - lipgloss.Width(stars) - 4
		if gap > 1 {
			line += strings.Repeat(" ", gap) + stars
		}
	}
	return line
}
