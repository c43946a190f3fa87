package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// An InputField is a single-line input box.
type InputField struct {
	text      []rune
	cursorPos int // Rune index into text
	scrollPos int
	screen    *tcell.Screen

	baseComponent
}

func NewInputField(screen *tcell.Screen, placeholder string, theme *Theme) *InputField {
	f := &InputField{
		text:          []rune(placeholder),
		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
	f.cursorPos = len(f.text)
	return f
}

// Text returns the contents of the InputField.
func (f *InputField) Text() string {
	return string(f.text)
}

// SetText replaces the contents and moves the cursor to the end.
func (f *InputField) SetText(text string) {
	f.text = []rune(text)
	f.scrollPos = 0
	f.SetCursorPos(len(f.text))
}

func (f *InputField) GetCursorPos() int {
	return f.cursorPos
}

// SetCursorPos sets the cursor position offset. Offset is clamped to possible values.
// The InputField is scrolled to show the new cursor position.
func (f *InputField) SetCursorPos(offset int) {
	offset = Clamp(offset, 0, len(f.text))

	// Scrolling
	visible := max(f.width-2, 1)
	if offset >= f.scrollPos+visible { // If cursor position is out of view to the right...
		f.scrollPos = offset - visible + 1 // Scroll just enough to view that column
	} else if offset < f.scrollPos { // If cursor position is out of view to the left...
		f.scrollPos = offset
	}

	f.cursorPos = offset
	if f.focused && f.screen != nil {
		col := runewidth.StringWidth(string(f.text[f.scrollPos:offset]))
		(*f.screen).ShowCursor(f.x+col+1, f.y)
	}
}

// Insert writes r at the cursor.
func (f *InputField) Insert(r rune) {
	f.text = append(f.text, 0)
	copy(f.text[f.cursorPos+1:], f.text[f.cursorPos:])
	f.text[f.cursorPos] = r
	f.SetCursorPos(f.cursorPos + 1)
}

// Delete with `forward` false removes the rune before the cursor, otherwise
// the rune under the cursor.
func (f *InputField) Delete(forward bool) {
	if forward {
		if f.cursorPos < len(f.text) {
			f.text = append(f.text[:f.cursorPos], f.text[f.cursorPos+1:]...)
			f.SetCursorPos(f.cursorPos)
		}
	} else if f.cursorPos > 0 {
		f.text = append(f.text[:f.cursorPos-1], f.text[f.cursorPos:]...)
		f.SetCursorPos(f.cursorPos - 1)
	}
}

func (f *InputField) Draw(s tcell.Screen) {
	style := f.theme.GetOrDefault("InputField")

	DrawRect(s, f.x, f.y, f.width, max(f.height, 1), ' ', style) // Draw background
	s.SetContent(f.x, f.y, '[', nil, style)
	s.SetContent(f.x+f.width-1, f.y, ']', nil, style)

	if len(f.text) > 0 {
		visible := runewidth.Truncate(string(f.text[f.scrollPos:]), f.width-2, "")
		DrawStr(s, f.x+1, f.y, visible, style) // Draw text
	}

	// Update cursor
	f.SetCursorPos(f.cursorPos)
}

func (f *InputField) SetFocused(v bool) {
	f.focused = v
	if v {
		f.SetCursorPos(f.cursorPos)
	} else if f.screen != nil {
		(*f.screen).HideCursor()
	}
}

func (f *InputField) GetMinSize() (int, int) {
	return 3, 1
}

func (f *InputField) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft:
			f.SetCursorPos(f.cursorPos - 1)
		case tcell.KeyRight:
			f.SetCursorPos(f.cursorPos + 1)
		case tcell.KeyHome:
			f.SetCursorPos(0)
		case tcell.KeyEnd:
			f.SetCursorPos(len(f.text))
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			f.Delete(false)
		case tcell.KeyDelete:
			f.Delete(true)
		case tcell.KeyRune:
			f.Insert(ev.Rune())
		default:
			return false
		}
		return true
	}
	return false
}
