package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A Tab is a child of a TabContainer; has a name and child Component.
type Tab struct {
	Name  string
	Child Component
}

// A TabContainer organizes children by showing only one of them at a time.
type TabContainer struct {
	children []Tab
	selected int

	baseComponent
}

func NewTabContainer(theme *Theme) *TabContainer {
	return &TabContainer{
		children:      make([]Tab, 0, 4),
		baseComponent: baseComponent{theme: theme},
	}
}

func (c *TabContainer) AddTab(name string, child Component) {
	c.children = append(c.children, Tab{Name: name, Child: child})
	// Update new child's size and position
	child.SetPos(c.x+1, c.y+1)
	child.SetSize(c.width-2, c.height-2)
}

// RemoveTab deletes the tab at `idx`. Returns true if the tab was found,
// false otherwise.
func (c *TabContainer) RemoveTab(idx int) bool {
	if idx >= 0 && idx < len(c.children) {
		if c.selected == idx {
			c.children[idx].Child.SetFocused(false)
		}

		copy(c.children[idx:], c.children[idx+1:])  // Shift all items after idx to the left
		c.children = c.children[:len(c.children)-1] // Shrink slice by one

		if c.selected >= idx && idx > 0 {
			c.selected-- // Keep the cursor within the bounds of available tabs
		}
		if c.focused && len(c.children) > 0 {
			c.children[c.selected].Child.SetFocused(true)
		}

		return true
	}
	return false
}

// FocusTab sets the visible tab to the one at `idx`. FocusTab clamps `idx`
// between 0 and tab_count - 1. If no tabs are present, the function does nothing.
func (c *TabContainer) FocusTab(idx int) {
	if len(c.children) < 1 {
		return
	}

	idx = Clamp(idx, 0, len(c.children)-1)

	c.children[c.selected].Child.SetFocused(false) // Unfocus old tab
	c.children[idx].Child.SetFocused(c.focused)    // Focus new tab
	c.selected = idx
}

func (c *TabContainer) GetSelectedTabIdx() int {
	return c.selected
}

func (c *TabContainer) GetTabCount() int {
	return len(c.children)
}

func (c *TabContainer) GetTab(idx int) *Tab {
	return &c.children[idx]
}

// SelectedTab returns the visible tab, or nil when there are no tabs.
func (c *TabContainer) SelectedTab() *Tab {
	if len(c.children) == 0 {
		return nil
	}
	return &c.children[c.selected]
}

// Draw renders the outline, the row of tab names, and the selected child.
func (c *TabContainer) Draw(s tcell.Screen) {
	var styFocused tcell.Style
	if c.focused {
		styFocused = c.theme.GetOrDefault("TabSelected")
	} else {
		styFocused = c.theme.GetOrDefault("TabContainer")
	}

	// Draw outline
	DrawRectOutlineDefault(s, c.x, c.y, c.width, c.height, c.theme.GetOrDefault("TabContainer"))

	names := make([]string, len(c.children))
	combinedTabLength := 0
	for i := range c.children {
		name := c.children[i].Name
		if te, ok := c.children[i].Child.(*TextEdit); ok && te.Dirty {
			name = "*" + name
		}
		names[i] = fmt.Sprintf(" %s ", name)
		combinedTabLength += runewidth.StringWidth(names[i])
	}
	combinedTabLength += len(c.children) - 1 // add for spacing between tabs

	// Draw tabs
	col := c.x + c.width/2 - combinedTabLength/2 // Starting column
	for i := range c.children {
		sty := c.theme.GetOrDefault("Tab")
		if c.selected == i {
			sty = styFocused
		}
		col += DrawStr(s, col, c.y, names[i], sty) + 1 // Add one for spacing between tabs
	}

	// Draw selected child in center
	if len(c.children) > 0 {
		c.children[c.selected].Child.Draw(s)
	}
}

// SetFocused calls SetFocused on the visible child Component.
func (c *TabContainer) SetFocused(v bool) {
	c.focused = v
	if len(c.children) > 0 {
		c.children[c.selected].Child.SetFocused(v)
	}
}

// SetTheme sets the theme.
func (c *TabContainer) SetTheme(theme *Theme) {
	c.theme = theme
	for _, tab := range c.children {
		tab.Child.SetTheme(theme) // Update the theme for all children
	}
}

// SetPos sets the position of the container and updates the child Components.
func (c *TabContainer) SetPos(x, y int) {
	c.x, c.y = x, y
	for _, tab := range c.children {
		tab.Child.SetPos(x+1, y+1)
	}
}

// SetSize sets the size of the container and updates the size of the child Components.
func (c *TabContainer) SetSize(width, height int) {
	c.width, c.height = width, height
	for _, tab := range c.children {
		tab.Child.SetSize(width-2, height-2)
	}
}

// HandleEvent forwards the event to the child Component and returns whether it was handled.
func (c *TabContainer) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlE {
			newIdx := c.selected + 1
			if newIdx >= len(c.children) {
				newIdx = 0
			}
			c.FocusTab(newIdx)
			return true
		} else if ev.Key() == tcell.KeyCtrlW {
			newIdx := c.selected - 1
			if newIdx < 0 {
				newIdx = len(c.children) - 1
			}
			c.FocusTab(newIdx)
			return true
		}
	}

	if len(c.children) > 0 {
		return c.children[c.selected].Child.HandleEvent(event)
	}

	return false
}
