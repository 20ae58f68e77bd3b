package lessons

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aperture/internal/catalog"
	"github.com/abhisek/aperture/internal/progress"
	"github.com/abhisek/aperture/internal/router"
)

func rating(n int) *int { return &n }

func TestCursorStartsOnCurrentLesson(t *testing.T) {
	p := New(catalog.Default(), progress.Map{}, "color-contrast")
	l, ok := p.Selected()
	if !ok || l.ID != "color-contrast" {
		t.Fatalf("expected cursor on color-contrast, got %q", l.ID)
	}
}

func TestCursorSkipsCategoryHeaders(t *testing.T) {
	p := New(catalog.Default(), progress.Map{}, "rule-of-thirds")
	for i := 0; i < 10; i++ {
		p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		if _, ok := p.Selected(); !ok {
			t.Fatalf("cursor landed on a header after %d moves", i+1)
		}
	}
	l, _ := p.Selected()
	if l.ID != "telling-a-story" {
		t.Errorf("expected cursor to stop at the last lesson, got %q", l.ID)
	}
}

func TestEnterPopsWithSelection(t *testing.T) {
	p := New(catalog.Default(), progress.Map{}, "rule-of-thirds")
	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	pop, ok := cmd().(router.PopScreenMsg)
	if !ok {
		t.Fatalf("expected PopScreenMsg, got %T", cmd())
	}
	sel, ok := pop.Result.(SelectedMsg)
	if !ok || sel.LessonID != "leading-lines" {
		t.Errorf("unexpected result %#v", pop.Result)
	}
}

func TestViewShowsCompletionAndProgress(t *testing.T) {
	prog := progress.Map{
		"rule-of-thirds": {Completed: true, Rating: rating(5)},
		"leading-lines":  {Completed: true, Rating: rating(3)},
	}
	p := New(catalog.Default(), prog, "light-direction")

	view := p.View(100, 40)
	for _, want := range []string{"COMPOSITION", "LIGHTING", "✓", "★★★★★", "(current)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	done, total := p.CourseProgress()
	if done != 2 || total != 6 {
		t.Errorf("expected 2/6, got %d/%d", done, total)
	}
}
