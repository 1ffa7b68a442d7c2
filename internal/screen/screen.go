// Package screen defines what the router needs from a full-window view.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/studygenie/studygenie/internal/ui/layout"
)

// Screen is one page of the app. The router owns the header and footer;
// a screen only draws the area between them.
type Screen interface {
	// Init runs once when the screen is opened.
	Init() tea.Cmd

	// Update returns the screen to keep on the stack, usually the receiver.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the body into width x height cells.
	View(width, height int) string

	// Title names the screen in the header breadcrumb.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is implemented by screens that handle Esc themselves, for
// example to confirm leaving or to close an overlay. When CapturesBack
// returns false the app pops the screen as usual.
type BackHandler interface {
	CapturesBack() bool
}
