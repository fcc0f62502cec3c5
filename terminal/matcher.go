// Package terminal hosts the motion engine on a tcell screen: mouse motion
// over a hero region drives tilt, wheel and paging keys scroll a virtual
// document, and frames redraw the screen only when something changed.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/parallax/capability"
)

// NewMatcher treats a mouse-capable terminal as a fine hover pointer
func NewMatcher(screen tcell.Screen) *capability.HostMatcher {
	return &capability.HostMatcher{Pointer: screen.HasMouse}
}
