package course

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/aperture/internal/catalog"
	"github.com/abhisek/aperture/internal/evaluation"
	"github.com/abhisek/aperture/internal/session"
	"github.com/abhisek/aperture/internal/ui/components"
	"github.com/abhisek/aperture/internal/ui/layout"
	"github.com/abhisek/aperture/internal/ui/theme"
)

const sidebarWidth = 30

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

func (s *CourseScreen) View(width, height int) string {
	st := s.machine.State()

	if s.celebrationVisible(st) {
		return s.renderCelebration(width, height)
	}

	mainWidth := width
	var sidebar string
	if !layout.IsCompactWidth(width) {
		sidebar = s.renderSidebar(st, height)
		mainWidth = width - lipgloss.Width(sidebar) - 2
	}

	var body string
	switch st.Phase {
	case session.PhaseLearn:
		body = s.renderLearn(mainWidth, height)
	case session.PhaseShoot:
		body = s.renderShoot(st, mainWidth)
	case session.PhaseFeedback:
		body = s.renderFeedback(st, mainWidth)
	}

	main := lipgloss.NewStyle().
		Width(mainWidth).
		MaxHeight(height).
		PaddingLeft(2).
		Render(body)

	if sidebar == "" {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}

// renderSidebar lists the curriculum with completion marks and the
// current lesson highlighted.
func (s *CourseScreen) renderSidebar(st session.State, height int) string {
	prog := s.machine.Progress()

	var b strings.Builder
	b.WriteString(theme.Label.Render("CURRICULUM"))
	b.WriteString("\n\n")
	for i, l := range s.machine.Catalog().All() {
		mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
		if prog.Completed(l.ID) {
			mark = theme.Completed.Render("✓")
		}
		title := truncate(fmt.Sprintf("%d. %s", i+1, l.Title), sidebarWidth-4)
		style := theme.Unselected
		if l.ID == st.LessonID {
			style = theme.Selected
		}
		b.WriteString(mark + " " + style.Render(title) + "\n")
	}

	done, total := s.CourseProgress()
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(done)/float64(total), true, sidebarWidth-2).View())

	return theme.Sidebar.
		Width(sidebarWidth).
		Height(height).
		Render(b.String())
}

func (s *CourseScreen) renderLearn(width, height int) string {
	l := s.machine.Lesson()
	text := lipgloss.NewStyle().Width(width - 4).Foreground(theme.Text)

	var lines []string
	lines = append(lines, lessonHeading(l, s.machine.Catalog()), "")
	for _, p := range l.Theory {
		lines = append(lines, strings.Split(text.Render(p), "\n")...)
		lines = append(lines, "")
	}

	lines = append(lines, theme.Label.Render("Tips"))
	for _, tip := range l.Tips {
		lines = append(lines, strings.Split(text.Render("• "+tip), "\n")...)
	}
	lines = append(lines, "")

	card := theme.Card.Width(width - 4).Render(
		theme.Title.Render("Your assignment") + "\n" + text.Width(width-10).Render(l.Assignment),
	)
	lines = append(lines, strings.Split(card, "\n")...)

	// Keep the last screenful reachable and no further.
	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	return strings.Join(lines[s.scroll:], "\n")
}

func (s *CourseScreen) renderShoot(st session.State, width int) string {
	l := s.machine.Lesson()
	text := lipgloss.NewStyle().Width(width - 4).Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(lessonHeading(l, s.machine.Catalog()))
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("Assignment"))
	b.WriteString("\n")
	b.WriteString(text.Render(l.Assignment))
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("You'll be graded on"))
	b.WriteString("\n")
	for i, c := range l.Criteria {
		b.WriteString(text.Render(fmt.Sprintf("%d. %s", i+1, c)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if st.Notice != "" {
		b.WriteString(theme.Notice.Render("! " + st.Notice))
		b.WriteString("\n\n")
	}

	if s.preview != nil {
		b.WriteString(renderPreview(s.preview, width-4))
		return b.String()
	}

	b.WriteString(theme.Body.Render("Path to your photo:"))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("JPEG, PNG, GIF, WebP or HEIC, up to " + humanize.IBytes(evaluation.MaxPhotoBytes)))
	return b.String()
}

func renderPreview(p *photoPreview, width int) string {
	body := theme.Title.Render("Ready to submit?") + "\n\n" +
		theme.Body.Render(filepath.Base(p.Path)) + "  " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(humanize.Bytes(uint64(p.Size))) + "\n\n" +
		components.NewButton("Submit photo", "enter", true).View() + "  " +
		components.NewButton("Choose different", "esc", false).View()
	return theme.Card.Width(width).Render(body)
}

func (s *CourseScreen) renderFeedback(st session.State, width int) string {
	text := lipgloss.NewStyle().Width(width - 6).Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(lessonHeading(s.machine.Lesson(), s.machine.Catalog()))
	b.WriteString("\n\n")

	if st.InFlight || st.Feedback == nil {
		frame := spinnerFrames[s.spinnerFrame%len(spinnerFrames)]
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render(frame))
		b.WriteString(theme.Body.Render(" Analyzing your photo..."))
		return b.String()
	}

	fb := st.Feedback
	verdict := theme.NotPassed.Render("Not quite yet")
	if fb.Pass {
		verdict = theme.Passed.Render("Assignment passed!")
	}
	b.WriteString(components.Stars(fb.Rating) + "  " + verdict)
	b.WriteString("\n\n")
	b.WriteString(text.Render(fb.Summary))
	b.WriteString("\n\n")

	b.WriteString(theme.Label.Render("What worked"))
	b.WriteString("\n")
	for _, item := range fb.Strengths {
		b.WriteString(theme.Completed.Render("✓ ") + text.Render(item) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Label.Render("To improve"))
	b.WriteString("\n")
	for _, item := range fb.Improvements {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("→ ") + text.Render(item) + "\n")
	}

	if st.Notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Notice.Render("! " + st.Notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case fb.Pass && s.machine.Catalog().IsLast(st.LessonID):
		b.WriteString(theme.Hint.Render("That was the final lesson."))
	case fb.Pass:
		b.WriteString(components.NewButton("Next lesson", "enter", true).View())
	default:
		b.WriteString(components.NewButton("Try again", "enter", true).View())
	}
	return b.String()
}

func (s *CourseScreen) renderCelebration(width, height int) string {
	body := theme.Title.Render("★ Course complete! ★") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("You passed all %d lessons.", s.machine.Catalog().Len())) + "\n" +
		theme.Subtitle.Render("Keep shooting. Every photo is practice.") + "\n\n" +
		s.celebrationMenu.View()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Overlay.Render(body))
}

func lessonHeading(l catalog.Lesson, cat *catalog.Catalog) string {
	meta := fmt.Sprintf("%s · Lesson %d of %d", l.Category, cat.IndexOf(l.ID)+1, cat.Len())
	return theme.Title.Render(l.Title) + "\n" + theme.Subtitle.Render(meta)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func photoError(err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return "No file at that path."
	}
	if errors.Is(err, fs.ErrPermission) {
		return "That file can't be read."
	}
	return evaluation.UserMessage(err)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
