// Package router keeps the stack of screens the app navigates through.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/studygenie/studygenie/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the active screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg closes the active screen and opens Screen in its place.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg returns to the first screen.
type PopToRootMsg struct{}

// Push returns a command that opens s.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Pop is a command that closes the active screen.
func Pop() tea.Msg {
	return PopScreenMsg{}
}

// Replace returns a command that swaps the active screen for s.
func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// PopToRoot is a command that returns to the first screen.
func PopToRoot() tea.Msg {
	return PopToRootMsg{}
}

// Router owns the screen stack. The root screen is never removed.
type Router struct {
	stack []screen.Screen
}

// New returns a router whose root is root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the active screen unless it is the root.
func (r *Router) Pop() {
	if r.top() > 0 {
		r.stack[r.top()] = nil
		r.stack = r.stack[:r.top()]
	}
}

// Replace swaps the active screen for s and runs its Init. Replacing the
// root makes s the new root.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[r.top()] = s
	return s.Init()
}

// PopToRoot closes every screen above the root.
func (r *Router) PopToRoot() {
	clear(r.stack[1:])
	r.stack = r.stack[:1]
}

// Active returns the screen receiving input.
func (r *Router) Active() screen.Screen {
	return r.stack[r.top()]
}

// Depth is the number of open screens, root included.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Breadcrumb joins the titles of every screen above the root, or returns
// the root's title when nothing is open on top of it.
func (r *Router) Breadcrumb(sep string) string {
	if r.top() == 0 {
		return r.stack[0].Title()
	}
	titles := make([]string, 0, r.top())
	for _, s := range r.stack[1:] {
		titles = append(titles, s.Title())
	}
	return strings.Join(titles, sep)
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	case PopToRootMsg:
		r.PopToRoot()
		return nil
	}
	next, cmd := r.Active().Update(msg)
	r.stack[r.top()] = next
	return cmd
}

// View renders the active screen into width x height.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
