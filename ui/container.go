package ui

import (
	"github.com/gdamore/tcell/v2"
)

// A Container has zero or more Components. Containers decide how Components are
// laid out in view, and may draw decorations like bounding boxes.
type Container interface {
	Component
}

var (
	_ Container = (*WindowContainer)(nil)
	_ Container = (*TabContainer)(nil)
)

// A WindowContainer has a header with a title, and a body holding its child.
type WindowContainer struct {
	Title string
	Child Component

	baseComponent
}

// New constructs a default WindowContainer using the terminal default style.
func NewWindowContainer(title string, child Component, theme *Theme) *WindowContainer {
	return &WindowContainer{
		Title:         title,
		Child:         child,
		baseComponent: baseComponent{theme: theme},
	}
}

// Draw will draws the window of the WindowContainer, then it draws its child component.
func (w *WindowContainer) Draw(s tcell.Screen) {
	DrawWindow(s, w.x, w.y, w.width, w.height, w.Title, w.theme)

	if w.Child != nil {
		w.Child.Draw(s)
	}
}

// SetFocused calls SetFocused on the child Component.
func (w *WindowContainer) SetFocused(v bool) {
	w.focused = v
	if w.Child != nil {
		w.Child.SetFocused(v)
	}
}

func (w *WindowContainer) SetTheme(theme *Theme) {
	w.theme = theme
	if w.Child != nil {
		w.Child.SetTheme(theme)
	}
}

// SetPos sets the position of the container and updates the child Component.
func (w *WindowContainer) SetPos(x, y int) {
	w.x, w.y = x, y
	if w.Child != nil {
		w.Child.SetPos(x, y+1)
	}
}

// SetSize sets the size of the container and updates the size of the child Component.
func (w *WindowContainer) SetSize(width, height int) {
	w.width, w.height = width, height
	if w.Child != nil {
		w.Child.SetSize(width, height-1)
	}
}

// HandleEvent forwards the event to the child Component and returns whether it was handled.
func (w *WindowContainer) HandleEvent(event tcell.Event) bool {
	if w.Child != nil {
		return w.Child.HandleEvent(event)
	}
	return false
}
