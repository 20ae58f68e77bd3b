package router

import (
	"github.com/abhisek/aperture/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
// A non-nil Result is delivered to the screen underneath once it is active,
// which is how pickers hand their choice back.
type PopScreenMsg struct {
	Result tea.Msg
}

// ReplaceScreenMsg requests the router to swap the top screen for a new one.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router manages a stack of screens.
type Router struct {
	stack []screen.Screen
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen for s and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		if len(r.stack) <= 1 {
			return nil
		}
		cmd := r.Pop()
		if msg.Result == nil {
			return cmd
		}
		return tea.Batch(cmd, r.forward(msg.Result))
	}
	return r.forward(msg)
}

// forward hands msg to the active screen, and to any covered screen that
// asks for it, storing the updated screens.
func (r *Router) forward(msg tea.Msg) tea.Cmd {
	if len(r.stack) == 0 {
		return nil
	}

	var cmds []tea.Cmd
	top := len(r.stack) - 1
	for i, s := range r.stack[:top] {
		br, ok := s.(screen.BackgroundReceiver)
		if !ok || !br.ReceivesInBackground(msg) {
			continue
		}
		updated, cmd := s.Update(msg)
		r.stack[i] = updated
		cmds = append(cmds, cmd)
	}

	updated, cmd := r.stack[top].Update(msg)
	r.stack[top] = updated
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
