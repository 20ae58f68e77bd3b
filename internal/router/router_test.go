package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aperture/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title    string
	initRan  bool
	received []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.received = append(s.received, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

// backgroundStub also receives string messages while covered.
type backgroundStub struct {
	stubScreen
}

func (s *backgroundStub) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.received = append(s.received, msg)
	return s, nil
}

func (s *backgroundStub) ReceivesInBackground(msg tea.Msg) bool {
	_, ok := msg.(string)
	return ok
}

func TestCoveredScreenReceivesRequestedMessages(t *testing.T) {
	below := &backgroundStub{stubScreen{title: "below"}}
	r := New(below)
	top := &stubScreen{title: "top"}
	r.Push(top)

	r.Update("done")
	r.Update(42)

	if len(below.received) != 1 || below.received[0] != "done" {
		t.Errorf("expected covered screen to get only the string message, got %v", below.received)
	}
	if len(top.received) != 2 {
		t.Errorf("expected top screen to get both messages, got %v", top.received)
	}
}

func TestActiveBackgroundReceiverGetsMessageOnce(t *testing.T) {
	only := &backgroundStub{stubScreen{title: "only"}}
	r := New(only)

	r.Update("done")

	if len(only.received) != 1 {
		t.Errorf("expected one delivery, got %d", len(only.received))
	}
}

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

type pickedMsg struct{ id string }

func TestPopDeliversResultToScreenBelow(t *testing.T) {
	s1 := &stubScreen{title: "course"}
	r := New(s1)

	picker := &stubScreen{title: "picker"}
	r.Push(picker)
	r.Update(PopScreenMsg{Result: pickedMsg{id: "leading-lines"}})

	if r.Active() != s1 {
		t.Fatalf("expected course screen active, got %q", r.Active().Title())
	}
	if len(s1.received) != 1 {
		t.Fatalf("expected 1 message delivered, got %d", len(s1.received))
	}
	if got, ok := s1.received[0].(pickedMsg); !ok || got.id != "leading-lines" {
		t.Errorf("unexpected delivered message %#v", s1.received[0])
	}
	if len(picker.received) != 0 {
		t.Errorf("popped screen should not receive the result, got %d messages", len(picker.received))
	}
}

func TestPopResultDroppedAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "course"}
	r := New(s1)

	r.Update(PopScreenMsg{Result: pickedMsg{id: "x"}})

	if len(s1.received) != 0 {
		t.Errorf("root screen must not receive a pop result, got %d messages", len(s1.received))
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	r.Update(pickedMsg{id: "a"})

	if len(s2.received) != 1 || len(s1.received) != 0 {
		t.Errorf("expected only the active screen to receive the message")
	}
}
