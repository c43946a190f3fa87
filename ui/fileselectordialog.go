package ui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A FileSelectorDialog is a WindowContainer with an input and buttons for selecting files.
// It can be used to open zero or more existing files, or select one non-existant file (for saving).
type FileSelectorDialog struct {
	MustExist           bool           // Whether the dialog should have a user select an existing file.
	FilesChosenCallback func([]string) // Returns slice of filenames selected.
	CancelCallback      func()         // Called when the dialog has been canceled by the user

	container *WindowContainer
	tabOrder  tabOrder

	inputField    *InputField
	confirmButton *Button
	cancelButton  *Button

	baseComponent
}

func NewFileSelectorDialog(screen *tcell.Screen, title string, mustExist bool, theme *Theme, filesChosenCallback func([]string), cancelCallback func()) *FileSelectorDialog {
	dialog := &FileSelectorDialog{
		MustExist:           mustExist,
		FilesChosenCallback: filesChosenCallback,
		CancelCallback:      cancelCallback,
		container:           NewWindowContainer(title, nil, theme),
		baseComponent:       baseComponent{theme: theme},
	}

	dialog.inputField = NewInputField(screen, "", theme)
	dialog.confirmButton = NewButton("Confirm", theme, dialog.onConfirm)
	dialog.cancelButton = NewButton("Cancel", theme, dialog.onCancel)
	dialog.tabOrder.items = []Component{dialog.inputField, dialog.cancelButton, dialog.confirmButton}

	return dialog
}

// SetDirectory prefills the input with dir, so a file name can be typed
// after it.
func (d *FileSelectorDialog) SetDirectory(dir string) {
	if dir == "" {
		return
	}
	d.inputField.SetText(strings.TrimSuffix(dir, string(filepath.Separator)) + string(filepath.Separator))
}

// Files returns the trimmed, non-empty, comma-separated paths of the input.
func (d *FileSelectorDialog) Files() []string {
	var files []string
	for _, f := range strings.Split(d.inputField.Text(), ",") { // Split input by commas
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}

// onConfirm is a callback called by the confirm button.
func (d *FileSelectorDialog) onConfirm() {
	files := d.Files()
	if len(files) == 0 {
		return
	}
	if !d.MustExist {
		files = files[:1] // Only one file can be saved to
	} else {
		for _, f := range files {
			if _, err := os.Stat(f); err != nil {
				d.SetTitle("Not found: " + filepath.Base(f))
				return
			}
		}
	}
	if d.FilesChosenCallback != nil {
		d.FilesChosenCallback(files)
	}
}

func (d *FileSelectorDialog) onCancel() {
	if d.CancelCallback != nil {
		d.CancelCallback()
	}
}

func (d *FileSelectorDialog) SetTitle(title string) {
	d.container.Title = title
}

func (d *FileSelectorDialog) Draw(s tcell.Screen) {
	d.container.Draw(s)

	// Update positions of child components (dependent on size information that may not be available at SetPos() )
	btnWidth, _ := d.confirmButton.GetSize()
	d.confirmButton.SetPos(d.x+d.width-btnWidth-1, d.y+4) // Place "Ok" button on right, bottom

	d.inputField.Draw(s)
	d.confirmButton.Draw(s)
	d.cancelButton.Draw(s)
}

func (d *FileSelectorDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder.current().SetFocused(v)
}

func (d *FileSelectorDialog) SetTheme(theme *Theme) {
	d.theme = theme
	d.container.SetTheme(theme)
	for _, c := range d.tabOrder.items {
		c.SetTheme(theme)
	}
}

func (d *FileSelectorDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.container.SetPos(x, y)
	d.inputField.SetPos(d.x+1, d.y+2)   // Center input field
	d.cancelButton.SetPos(d.x+1, d.y+4) // Place "Cancel" button on left, bottom
}

func (d *FileSelectorDialog) GetMinSize() (int, int) {
	return max(runewidth.StringWidth(d.container.Title)+4, 40), 6
}

func (d *FileSelectorDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = max(width, minX), max(height, minY)
	d.container.SetSize(d.width, d.height)

	d.inputField.SetSize(d.width-2, 1)
	d.cancelButton.SetSize(d.cancelButton.GetMinSize())
	d.confirmButton.SetSize(d.confirmButton.GetMinSize())
}

func (d *FileSelectorDialog) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if d.tabOrder.handleKey(ev, d.focused) {
			return true
		}
		switch ev.Key() {
		case tcell.KeyEscape:
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
