package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Align defines the text alignment of a label.
type Align uint8

const (
	// AlignLeft is the normal text alignment where text is aligned to the left
	// of its bounding box.
	AlignLeft Align = iota
	// AlignRight causes text to be aligned to the right of its bounding box.
	AlignRight
	// AlignJustify causes text to be left-aligned, but also spaced so that it
	// fits the entire box where it is being rendered.
	AlignJustify
)

// A Label is a component for rendering text. Text can be rendered easily
// without a Label, but this component forces the text to fit within its
// bounding box and allows for left-align, right-align, and justify.
type Label struct {
	Text      string
	Alignment Align
	StyleKey  string // Theme key used to draw the label; "Label" if empty

	baseComponent
}

func NewLabel(text string, alignment Align, theme *Theme) *Label {
	return &Label{
		Text:          text,
		Alignment:     alignment,
		baseComponent: baseComponent{theme: theme},
	}
}

// Lines returns the rows of text as they are drawn: each line of Text,
// truncated to the width of the Label and aligned.
func (l *Label) Lines() []string {
	lines := strings.Split(l.Text, "\n")
	if len(lines) > l.height {
		lines = lines[:max(l.height, 0)]
	}
	for i, line := range lines {
		line = runewidth.Truncate(line, l.width, "…")
		switch l.Alignment {
		case AlignRight:
			line = runewidth.FillLeft(line, l.width)
		case AlignJustify:
			line = justify(line, l.width)
		}
		lines[i] = line
	}
	return lines
}

// justify spreads the words of line over width columns.
func justify(line string, width int) string {
	words := strings.Fields(line)
	if len(words) < 2 {
		return line
	}
	textWidth := 0
	for _, w := range words {
		textWidth += runewidth.StringWidth(w)
	}
	gaps := len(words) - 1
	space := width - textWidth
	if space < gaps {
		return line
	}

	var b strings.Builder
	for i, w := range words {
		b.WriteString(w)
		if i < gaps {
			n := space / gaps
			if i < space%gaps {
				n++
			}
			b.WriteString(strings.Repeat(" ", n))
		}
	}
	return b.String()
}

func (l *Label) Draw(s tcell.Screen) {
	key := l.StyleKey
	if key == "" {
		key = "Label"
	}
	style := l.theme.GetOrDefault(key)

	DrawRect(s, l.x, l.y, l.width, l.height, ' ', style)
	for i, line := range l.Lines() {
		DrawStr(s, l.x, l.y+i, line, style)
	}
}

func (l *Label) GetMinSize() (int, int) {
	return 0, 1
}

func (l *Label) HandleEvent(tcell.Event) bool {
	return false
}
