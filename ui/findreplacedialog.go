package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// A FindReplaceDialog searches the TextEdit it is given, and replaces
// occurrences one at a time or all at once. Results are reported through
// StatusCallback.
type FindReplaceDialog struct {
	Target         *TextEdit
	StatusCallback func(string)
	CloseCallback  func()

	tabOrder tabOrder

	findField     *InputField
	replaceField  *InputField
	findButton    *Button
	replaceButton *Button
	allButton     *Button
	closeButton   *Button

	baseComponent
}

func NewFindReplaceDialog(s *tcell.Screen, target *TextEdit, theme *Theme, statusCallback func(string), closeCallback func()) *FindReplaceDialog {
	d := &FindReplaceDialog{
		Target:         target,
		StatusCallback: statusCallback,
		CloseCallback:  closeCallback,
		baseComponent:  baseComponent{theme: theme},
	}

	d.findField = NewInputField(s, "", theme)
	d.replaceField = NewInputField(s, "", theme)
	d.findButton = NewButton("Find", theme, func() { d.FindNext() })
	d.replaceButton = NewButton("Replace", theme, func() { d.Replace() })
	d.allButton = NewButton("All", theme, func() { d.ReplaceAll() })
	d.closeButton = NewButton("Close", theme, d.onClose)
	d.tabOrder.items = []Component{d.findField, d.replaceField, d.findButton, d.replaceButton, d.allButton, d.closeButton}

	return d
}

// SetQuery prefills the text to find.
func (d *FindReplaceDialog) SetQuery(query string) {
	d.findField.SetText(query)
}

// Query returns the text to find.
func (d *FindReplaceDialog) Query() string {
	return d.findField.Text()
}

func (d *FindReplaceDialog) report(format string, args ...any) {
	if d.StatusCallback != nil {
		d.StatusCallback(fmt.Sprintf(format, args...))
	}
}

// reportErr reports err and returns whether there was one.
func (d *FindReplaceDialog) reportErr(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrEmptyQuery):
		d.report("Nothing to find")
	default:
		d.report("Search failed: %v", err)
	}
	return true
}

// FindNext selects the next occurrence of the query in the target.
func (d *FindReplaceDialog) FindNext() {
	if d.Target == nil {
		return
	}
	found, err := d.Target.Find(d.Query())
	if d.reportErr(err) {
		return
	}
	if !found {
		d.report("%q not found", d.Query())
	} else {
		d.report("")
	}
}

// Replace replaces the selected occurrence and selects the next one.
func (d *FindReplaceDialog) Replace() {
	if d.Target == nil {
		return
	}
	replaced, err := d.Target.Replace(d.Query(), d.replaceField.Text())
	if d.reportErr(err) {
		return
	}
	if replaced {
		d.report("Replaced one occurrence")
	} else if !d.Target.HasSelection() {
		d.report("%q not found", d.Query())
	}
}

// ReplaceAll replaces every occurrence in the target.
func (d *FindReplaceDialog) ReplaceAll() {
	if d.Target == nil {
		return
	}
	n, err := d.Target.ReplaceAll(d.Query(), d.replaceField.Text())
	if d.reportErr(err) {
		return
	}
	d.report("Replaced %d occurrences", n)
}

func (d *FindReplaceDialog) onClose() {
	if d.CloseCallback != nil {
		d.CloseCallback()
	}
}

func (d *FindReplaceDialog) Draw(s tcell.Screen) {
	DrawWindow(s, d.x, d.y, d.width, d.height, "Find and Replace", d.theme)

	style := d.theme.GetOrDefault("Window")
	DrawStr(s, d.x+1, d.y+2, "Find:", style)
	DrawStr(s, d.x+1, d.y+4, "Replace:", style)

	col := d.x + 1
	for _, b := range []*Button{d.findButton, d.replaceButton, d.allButton, d.closeButton} {
		b.SetPos(col, d.y+6)
		w, _ := b.GetSize()
		col += w + 1
	}

	for _, c := range d.tabOrder.items {
		c.Draw(s)
	}
}

func (d *FindReplaceDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder.current().SetFocused(v)
}

func (d *FindReplaceDialog) SetTheme(theme *Theme) {
	d.theme = theme
	for _, c := range d.tabOrder.items {
		c.SetTheme(theme)
	}
}

func (d *FindReplaceDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.findField.SetPos(x+10, y+2)
	d.replaceField.SetPos(x+10, y+4)
}

func (d *FindReplaceDialog) GetMinSize() (int, int) {
	width := 2
	for _, b := range []*Button{d.findButton, d.replaceButton, d.allButton, d.closeButton} {
		w, _ := b.GetSize()
		width += w + 1
	}
	return max(width, 40), 8
}

func (d *FindReplaceDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = max(width, minX), max(height, minY)

	d.findField.SetSize(d.width-11, 1)
	d.replaceField.SetSize(d.width-11, 1)
}

func (d *FindReplaceDialog) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if d.tabOrder.handleKey(ev, d.focused) {
			return true
		}
		switch ev.Key() {
		case tcell.KeyEscape:
			d.onClose()
			return true
		case tcell.KeyEnter:
			switch d.tabOrder.current() {
			case d.findField:
				d.FindNext()
				return true
			case d.replaceField:
				d.Replace()
				return true
			}
		}
	}
	return d.tabOrder.current().HandleEvent(event)
}
