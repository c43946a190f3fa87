package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A PromptDialog asks for a single line of text, such as a line number or
// the address of a link.
type PromptDialog struct {
	Title          string
	AcceptCallback func(string)
	CancelCallback func()

	tabOrder tabOrder

	inputField   *InputField
	acceptButton *Button
	cancelButton *Button

	baseComponent
}

func NewPromptDialog(s *tcell.Screen, title, accept string, theme *Theme, acceptCallback func(string), cancelCallback func()) *PromptDialog {
	dialog := &PromptDialog{
		Title:          title,
		AcceptCallback: acceptCallback,
		CancelCallback: cancelCallback,
		baseComponent:  baseComponent{theme: theme},
	}

	dialog.inputField = NewInputField(s, "", theme)
	dialog.acceptButton = NewButton(accept, theme, dialog.onConfirm)
	dialog.cancelButton = NewButton("Cancel", theme, dialog.onCancel)
	dialog.tabOrder.items = []Component{dialog.inputField, dialog.cancelButton, dialog.acceptButton}

	return dialog
}

// SetText prefills the input.
func (d *PromptDialog) SetText(text string) {
	d.inputField.SetText(text)
}

func (d *PromptDialog) onConfirm() {
	if d.AcceptCallback != nil {
		d.AcceptCallback(strings.TrimSpace(d.inputField.Text()))
	}
}

func (d *PromptDialog) onCancel() {
	if d.CancelCallback != nil {
		d.CancelCallback()
	}
}

func (d *PromptDialog) Draw(s tcell.Screen) {
	DrawWindow(s, d.x, d.y, d.width, d.height, d.Title, d.theme)

	btnWidth, _ := d.acceptButton.GetSize()
	d.acceptButton.SetPos(d.x+d.width-btnWidth-1, d.y+4) // Place accept button on right, bottom

	d.inputField.Draw(s)
	d.acceptButton.Draw(s)
	d.cancelButton.Draw(s)
}

func (d *PromptDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder.current().SetFocused(v)
}

func (d *PromptDialog) SetTheme(theme *Theme) {
	d.theme = theme
	for _, c := range d.tabOrder.items {
		c.SetTheme(theme)
	}
}

func (d *PromptDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.inputField.SetPos(d.x+1, d.y+2)   // Center input field
	d.cancelButton.SetPos(d.x+1, d.y+4) // Place "Cancel" button on left, bottom
}

func (d *PromptDialog) GetMinSize() (int, int) {
	return max(runewidth.StringWidth(d.Title)+4, 30), 6
}

func (d *PromptDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = max(width, minX), max(height, minY)

	d.inputField.SetSize(d.width-2, 1)
	d.cancelButton.SetSize(d.cancelButton.GetMinSize())
	d.acceptButton.SetSize(d.acceptButton.GetMinSize())
}

func (d *PromptDialog) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if d.tabOrder.handleKey(ev, d.focused) {
			return true
		}
		switch ev.Key() {
		case tcell.KeyEsc:
			d.onCancel()
			return true
		case tcell.KeyEnter:
			if d.tabOrder.current() == d.inputField {
				d.onConfirm()
				return true
			}
		}
	}
	return d.tabOrder.current().HandleEvent(event)
}
