package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func typeInto(c Component, str string) {
	for _, r := range str {
		c.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestInputFieldEditing(t *testing.T) {
	f := NewInputField(nil, "", &DefaultTheme)
	f.SetSize(10, 1)

	typeInto(f, "héllo")
	assert.Equal(t, "héllo", f.Text())
	assert.Equal(t, 5, f.GetCursorPos())

	f.HandleEvent(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	f.HandleEvent(tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone))
	assert.Equal(t, "éllo", f.Text())

	f.HandleEvent(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	f.HandleEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, "éll", f.Text())

	f.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	typeInto(f, "x")
	assert.Equal(t, "élxl", f.Text())
}

func TestInputFieldSetText(t *testing.T) {
	f := NewInputField(nil, "start", &DefaultTheme)
	assert.Equal(t, 5, f.GetCursorPos())

	f.SetText("/tmp/")
	assert.Equal(t, "/tmp/", f.Text())
	assert.Equal(t, 5, f.GetCursorPos())

	f.SetCursorPos(-3)
	assert.Equal(t, 0, f.GetCursorPos())
}

func TestInputFieldScrolls(t *testing.T) {
	s := newTestScreen(t)
	var screen tcell.Screen = s
	f := NewInputField(&screen, "", &DefaultTheme)
	f.SetSize(6, 1)
	f.SetFocused(true)

	typeInto(f, "abcdefgh")
	f.Draw(s)

	r, _, _, _ := s.GetContent(1, 0)
	assert.Equal(t, 'f', r, "the field scrolls to keep the cursor in view")
}
