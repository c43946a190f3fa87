package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMenuBar() (*MenuBar, *[]string) {
	var activated []string
	item := func(name, shortcut string) *ItemEntry {
		return &ItemEntry{Name: name, Shortcut: shortcut, Callback: func() {
			activated = append(activated, name)
		}}
	}

	file := NewMenu("File", 0, &DefaultTheme)
	file.AddItems([]Item{item("New", "Ctrl+N"), &ItemSeparator{}, item("Exit", "Ctrl+Q")})
	edit := NewMenu("Edit", 0, &DefaultTheme)
	edit.AddItems([]Item{item("Cut", "Ctrl+X"), item("Paste", "")})

	bar := NewMenuBar(&DefaultTheme)
	bar.AddMenu(file)
	bar.AddMenu(edit)
	bar.SetSize(40, 1)
	return bar, &activated
}

func TestMenuBarShortcuts(t *testing.T) {
	bar, activated := newTestMenuBar()

	assert.True(t, bar.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl)))
	assert.True(t, bar.HandleShortcut("Ctrl+Q"))
	assert.False(t, bar.HandleShortcut("Ctrl+Z"))
	assert.Equal(t, []string{"Cut", "Exit"}, *activated)
}

func TestMenuBarIgnoresKeysUnlessFocused(t *testing.T) {
	bar, activated := newTestMenuBar()
	assert.False(t, bar.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone)))
	assert.False(t, bar.MenusVisible())
	assert.Empty(t, *activated)
}

func TestMenuBarQuickChars(t *testing.T) {
	bar, activated := newTestMenuBar()
	bar.SetFocused(true)

	require.True(t, bar.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone)))
	assert.True(t, bar.MenusVisible())

	bar.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	assert.Equal(t, []string{"Paste"}, *activated)
	assert.False(t, bar.MenusVisible(), "activating an item hides the menu")
}

func TestMenuCursorSkipsSeparators(t *testing.T) {
	bar, activated := newTestMenuBar()
	bar.SetFocused(true)
	bar.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) // Open File

	bar.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	bar.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, []string{"Exit"}, *activated)
}

func TestMenuOfSeparatorsDoesNotLoop(t *testing.T) {
	m := NewMenu("Empty", 0, &DefaultTheme)
	m.AddItems([]Item{&ItemSeparator{}, &ItemSeparator{}})
	m.CursorDown()
	m.CursorUp()
}

func TestMenuSize(t *testing.T) {
	bar, _ := newTestMenuBar()
	assert.Equal(t, 1, bar.GetMenuXPos(0))
	assert.Equal(t, 1+len("File")+2, bar.GetMenuXPos(1))

	m := NewMenu("File", 0, &DefaultTheme)
	m.AddItem(&ItemEntry{Name: "Open...", Shortcut: "Ctrl+O"})
	w, h := m.GetSize()
	assert.Equal(t, 1+len("Open...")+1+len("Ctrl+O")+1+1, w)
	assert.Equal(t, 3, h)
}
