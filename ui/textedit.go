package ui

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fivemoreminix/qsource/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ErrEmptyQuery is returned by the search functions of a TextEdit when there
// is nothing to search for.
var ErrEmptyQuery = errors.New("empty search query")

// TextEdit is a field for line-based editing of HTML source. It highlights
// entities, tags and comments, and contains the various information about
// content being edited.
type TextEdit struct {
	Buffer      buffer.Buffer
	Highlighter *buffer.Highlighter
	LineNumbers bool   // Whether to render line numbers (and therefore the column)
	Dirty       bool   // Whether the buffer has been edited
	UseHardTabs bool   // When true, tabs are '\t'
	TabSize     int    // How many spaces to indent by
	IsCRLF      bool   // Whether the file's line endings are CRLF (\r\n) or LF (\n)
	FilePath    string // Will be empty if the file has not been saved yet

	screen           *tcell.Screen // We keep our own reference to the screen for cursor purposes.
	cursor           buffer.Cursor
	scrollx, scrolly int // X and Y offset of view, known as scroll

	selection  buffer.Region // Selection: selectMode determines if it should be used
	selectMode bool          // Whether the user is actively selecting text

	baseComponent
}

// New will initialize the buffer using the given 'contents'. If the 'filePath' or 'FilePath' is empty,
// it can be assumed that the TextEdit has no file association, or it is unsaved.
func NewTextEdit(screen *tcell.Screen, filePath string, contents []byte, theme *Theme) *TextEdit {
	te := &TextEdit{
		LineNumbers: true,
		UseHardTabs: true,
		TabSize:     4,
		FilePath:    filePath,

		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
	te.SetContents(contents)
	return te
}

// SetContents replaces the text being edited. The line delimiter is determined
// by the first line ending; the buffer itself always holds LF line endings.
func (t *TextEdit) SetContents(contents []byte) {
	t.IsCRLF = false
	if i := bytes.IndexByte(contents, '\n'); i > 0 && contents[i-1] == '\r' {
		t.IsCRLF = true
	}
	contents = bytes.ReplaceAll(contents, []byte("\r\n"), []byte{'\n'})

	t.Buffer = buffer.NewRopeBuffer(contents)
	t.cursor = buffer.NewCursor(&t.Buffer)
	t.selection = buffer.NewRegion(&t.Buffer)
	t.selectMode = false
	t.scrollx, t.scrolly = 0, 0

	t.Highlighter = buffer.NewHighlighter(t.Buffer, t.theme.HTMLHighlighter())
}

// SetTheme applies the theme, including the styles of highlighted constructs.
func (t *TextEdit) SetTheme(theme *Theme) {
	t.theme = theme
	if t.Highlighter != nil {
		t.Highlighter.HTML = theme.HTMLHighlighter()
	}
}

// Bytes returns the document with the TextEdit's line delimiters.
func (t *TextEdit) Bytes() []byte {
	data := t.Buffer.Bytes()
	if t.IsCRLF {
		data = bytes.ReplaceAll(data, []byte{'\n'}, []byte("\r\n"))
	}
	return data
}

// String returns the document as a string; see Bytes.
func (t *TextEdit) String() string {
	return string(t.Bytes())
}

// GetLineDelimiter returns "\r\n" for a CRLF buffer, or "\n" for an LF buffer.
func (t *TextEdit) GetLineDelimiter() string {
	if t.IsCRLF {
		return "\r\n"
	} else {
		return "\n"
	}
}

// Changes a file's line delimiters. If `crlf` is true, then line delimiters are replaced
// with Windows CRLF (\r\n). If `crlf` is false, then line delimtiers are replaced with Unix
// LF (\n). The TextEdit `IsCRLF` variable is updated with the new value.
func (t *TextEdit) ChangeLineDelimiters(crlf bool) {
	if t.IsCRLF != crlf {
		t.IsCRLF = crlf
		t.Dirty = true
	}
}

// invalidateFrom marks the lines touched by an edit that began at startLine.
func (t *TextEdit) invalidateFrom(startLine int, linesChanged bool) {
	if linesChanged {
		t.Highlighter.InvalidateLines(startLine, t.Buffer.Lines()-1)
	} else {
		t.Highlighter.InvalidateLines(startLine, startLine)
	}
}

// Delete with `forwards` false will backspace, destroying the character before the cursor,
// while Delete with `forwards` true will delete the character after (or on) the cursor.
// If text is selected, the selection is deleted instead.
func (t *TextEdit) Delete(forwards bool) {
	var deletedLine bool // Whether any whole line has been deleted (changing the # of lines)
	cursLine, cursCol := t.cursor.GetLineCol()
	startingLine := cursLine

	if t.selectMode { // If text is selected, delete the whole selection
		t.selectMode = false

		if t.selection.Empty() {
			return
		}
		startLine, startCol := t.selection.Start()
		lastLine, lastCol := t.selection.Last()
		deletedLine = startLine != lastLine || lastCol >= t.Buffer.RunesInLine(lastLine)

		t.Buffer.Remove(startLine, startCol, lastLine, lastCol)
		t.cursor = t.cursor.SetLineCol(startLine, startCol) // Set cursor to start of region
		startingLine = startLine
	} else { // Not deleting selection
		if !forwards {
			// If the cursor is at the first column of the first line...
			if cursLine == 0 && cursCol == 0 {
				return
			}
			t.cursor = t.cursor.Left() // Back up to that character
			cursLine, cursCol = t.cursor.GetLineCol()
			startingLine = cursLine
		}

		// Nothing after the cursor at the end of the last line
		if cursLine >= t.Buffer.Lines()-1 && cursCol >= t.Buffer.RunesInLine(cursLine) {
			return
		}

		deletedLine = cursCol >= t.Buffer.RunesInLine(cursLine) // On the line delimiter
		t.Buffer.Remove(cursLine, cursCol, cursLine, cursCol)   // Remove character at cursor
	}

	t.Dirty = true
	t.ScrollToCursor()
	t.updateCursorVisibility()
	t.invalidateFrom(startingLine, deletedLine)
}

// Writes `contents` at the cursor position. Line delimiters and tab character supported.
// Any other control characters will be printed. Overwrites any active selection.
func (t *TextEdit) Insert(contents string) {
	if t.selectMode { // If there is a selection...
		// Go to and delete the selection
		t.Delete(true) // The parameter doesn't matter with selection
	}
	if contents == "" {
		return
	}

	contents = strings.ReplaceAll(contents, "\r\n", "\n")
	if !t.UseHardTabs { // If this file does not use hard tabs...
		contents = strings.ReplaceAll(contents, "\t", strings.Repeat(" ", t.TabSize))
	}

	cursLine, cursCol := t.cursor.GetLineCol()
	pos := t.Buffer.LineColToPos(cursLine, cursCol)
	t.Buffer.Insert(cursLine, cursCol, []byte(contents))

	// Advance the cursor past the inserted text
	t.cursor = t.cursor.SetLineCol(t.Buffer.PosToLineCol(pos + len(contents)))

	t.Dirty = true
	t.ScrollToCursor()
	t.updateCursorVisibility()
	t.invalidateFrom(cursLine, strings.ContainsRune(contents, '\n'))
}

// getTabCountInLineAtCol returns the number of tabs in the given line, before
// the column position. Multiply returned tab count by TabSize - 1 to get the
// offset produced by tabs. Col must be a valid column position in the given line.
func (t *TextEdit) getTabCountInLineAtCol(line, col int) int {
	return t.Buffer.Count(line, 0, line, col, []byte{'\t'})
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextEdit. Sends a signal to show the cursor if the TextEdit
// is focused and not in select mode.
func (t *TextEdit) updateCursorVisibility() {
	if t.screen == nil {
		return
	}
	if t.focused && !t.selectMode {
		columnWidth := t.getColumnWidth()
		line, col := t.cursor.GetLineCol()
		tabOffset := t.getTabCountInLineAtCol(line, col) * (t.TabSize - 1)
		(*t.screen).ShowCursor(t.x+columnWidth+col+tabOffset-t.scrollx, t.y+line-t.scrolly)
	} else if t.focused {
		(*t.screen).HideCursor()
	}
}

// Scroll the screen if the cursor is out of view.
func (t *TextEdit) ScrollToCursor() {
	line, col := t.cursor.GetLineCol()

	// Handle hard tabs
	tabOffset := t.getTabCountInLineAtCol(line, col) * (t.TabSize - 1) // Offset for the current line from hard tabs

	// Scroll the screen when going to lines out of view
	if line >= t.scrolly+t.height-1 { // If the new line is below view...
		t.scrolly = max(line-t.height+1, 0) // Scroll just enough to view that line
	} else if line < t.scrolly { // If the new line is above view
		t.scrolly = line
	}

	columnWidth := t.getColumnWidth()

	// Scroll the screen horizontally when going to columns out of view
	if col+tabOffset >= t.scrollx+(t.width-columnWidth-1) { // If the new column is right of view
		t.scrollx = max((col+tabOffset)-(t.width-columnWidth)+1, 0) // Scroll just enough to view that column
	} else if col+tabOffset < t.scrollx { // If the new column is left of view
		t.scrollx = col + tabOffset // Scroll left enough to view that column
	}
}

func (t *TextEdit) GetCursor() buffer.Cursor {
	return t.cursor
}

func (t *TextEdit) SetCursor(newCursor buffer.Cursor) {
	t.cursor = newCursor
	t.updateCursorVisibility()
}

// moveCursor places the cursor at c. When selecting, the selection grows or
// shrinks with the cursor; otherwise any selection is dropped.
func (t *TextEdit) moveCursor(c buffer.Cursor, selecting bool) {
	if selecting {
		if !t.selectMode {
			t.selection.Anchor = t.cursor
			t.selectMode = true
		}
		t.selection.Head = c
	} else {
		t.selectMode = false
	}
	t.SetCursor(c)
	t.ScrollToCursor()
}

// GoToLine moves the cursor to the start of the one-based line number.
func (t *TextEdit) GoToLine(line int) {
	t.moveCursor(t.cursor.SetLineCol(line-1, 0), false)
}

// getColumnWidth returns the width of the line numbers column if it is present.
func (t *TextEdit) getColumnWidth() int {
	var columnWidth int
	if t.LineNumbers {
		// Set columnWidth to max count of line number digits
		columnWidth = max(3, 1+len(strconv.Itoa(t.Buffer.Lines()))) // Column has minimum width of 2
	}
	return columnWidth
}

// HasSelection returns whether any text is selected.
func (t *TextEdit) HasSelection() bool {
	return t.selectMode && !t.selection.Empty()
}

// SelectAll selects the entire document.
func (t *TextEdit) SelectAll() {
	t.selection.Anchor = t.cursor.SetLineCol(0, 0)
	t.selection.Head = t.cursor.SetLineCol(t.Buffer.Lines()-1, math.MaxInt32)
	t.selectMode = true
	t.SetCursor(t.selection.Head)
	t.ScrollToCursor()
}

// GetSelectedBytes returns a byte slice of the region of the buffer that is currently selected.
// If the returned slice is empty, then nothing was selected. The slice returned may or may not
// be a copy of the buffer, so do not write to it.
func (t *TextEdit) GetSelectedBytes() []byte {
	if t.HasSelection() {
		startLine, startCol := t.selection.Start()
		lastLine, lastCol := t.selection.Last()
		return t.Buffer.Slice(startLine, startCol, lastLine, lastCol)
	}
	return []byte{}
}

// GetSelectedString returns the selected text; see GetSelectedBytes.
func (t *TextEdit) GetSelectedString() string {
	return string(t.GetSelectedBytes())
}

// WrapSelection replaces the selected text with the result of wrap. Without a
// selection, wrap("") is inserted at the cursor.
func (t *TextEdit) WrapSelection(wrap func(string) string) {
	t.Insert(wrap(t.GetSelectedString()))
}

// TransformAll replaces the whole document with the result of transform,
// keeping the cursor where it was as far as possible.
func (t *TextEdit) TransformAll(transform func([]byte) []byte) {
	before := t.Buffer.Bytes()
	after := transform(before)
	if bytes.Equal(before, after) {
		return
	}

	line, col := t.cursor.GetLineCol()
	t.Buffer.SetBytes(after)
	t.selectMode = false
	t.cursor = t.cursor.SetLineCol(line, col)
	t.Dirty = true
	t.ScrollToCursor()
	t.Highlighter.InvalidateLines(0, t.Buffer.Lines()-1)
}

// selectMatch selects m and places the cursor after it.
func (t *TextEdit) selectMatch(m buffer.Match) {
	t.selection.Anchor = t.cursor.SetLineCol(m.Line, m.Col)
	t.selection.Head = t.cursor.SetLineCol(m.EndLine, m.EndCol).Right()
	t.selectMode = true
	t.SetCursor(t.selection.Head)
	t.ScrollToCursor()
}

// Find selects the next occurrence of query after the cursor, wrapping around
// to the start of the document. Returns whether an occurrence was found.
func (t *TextEdit) Find(query string) (bool, error) {
	if query == "" {
		return false, ErrEmptyQuery
	}
	line, col := t.cursor.GetLineCol()
	m, ok := buffer.FindNext(t.Buffer, []byte(query), line, col)
	if ok {
		t.selectMatch(m)
	}
	return ok, nil
}

// Replace substitutes the selection with replacement if the selection is an
// occurrence of query, then selects the next occurrence. Returns whether a
// replacement was made.
func (t *TextEdit) Replace(query, replacement string) (bool, error) {
	if query == "" {
		return false, ErrEmptyQuery
	}

	var replaced bool
	if t.GetSelectedString() == query {
		if replacement == "" {
			t.Delete(true)
		} else {
			t.Insert(replacement)
		}
		replaced = true
	}

	if _, err := t.Find(query); err != nil {
		return replaced, err
	}
	return replaced, nil
}

// ReplaceAll substitutes every occurrence of query and returns the count.
func (t *TextEdit) ReplaceAll(query, replacement string) (int, error) {
	if query == "" {
		return 0, ErrEmptyQuery
	}

	line, col := t.cursor.GetLineCol()
	n := buffer.ReplaceAll(t.Buffer, []byte(query), []byte(replacement))
	if n > 0 {
		t.selectMode = false
		t.cursor = t.cursor.SetLineCol(line, col)
		t.Dirty = true
		t.ScrollToCursor()
		t.Highlighter.InvalidateLines(0, t.Buffer.Lines()-1)
	}
	return n, nil
}

// ConstructAtCursor returns the highlighted construct the cursor is on, if any.
// Only lines that have been drawn are known.
func (t *TextEdit) ConstructAtCursor() (buffer.Construct, bool) {
	line, col := t.cursor.GetLineCol()
	for _, r := range t.Highlighter.GetLineMatches(line) {
		if r.Contains(col) {
			return r.Construct, true
		}
	}
	return 0, false
}

// StatusLine describes the cursor position, the construct under it, and the
// state the cursor's line leaves open for the next.
func (t *TextEdit) StatusLine() string {
	line, col := t.cursor.GetLineCol()
	status := fmt.Sprintf("Ln %d, Col %d", line+1, col+1)
	if c, ok := t.ConstructAtCursor(); ok {
		status += " | " + c.String()
	}
	if state := t.Highlighter.GetLineState(line); state != buffer.NormalState {
		status += " | " + state.String()
	}
	if t.IsCRLF {
		status += " | CRLF"
	} else {
		status += " | LF"
	}
	return status
}

// Draw renders the TextEdit component.
func (t *TextEdit) Draw(s tcell.Screen) {
	columnWidth := t.getColumnWidth()
	bufferLines := t.Buffer.Lines()

	defaultStyle := t.theme.GetOrDefault("TextEdit")
	selectedStyle := t.theme.GetOrDefault("TextEditSelected")
	columnStyle := t.theme.GetOrDefault("TextEditColumn")

	t.Highlighter.UpdateInvalidatedLines(t.scrolly + t.height - 1)

	DrawRect(s, t.x, t.y, t.width, t.height, ' ', defaultStyle)

	textX := t.x + columnWidth // Screen column of the first text cell
	for lineY := t.y; lineY < t.y+t.height; lineY++ { // For each line we can draw...
		line := lineY + t.scrolly - t.y // The line number being drawn (starts at zero)

		lineNumStr := "" // Line number as a string

		if line < bufferLines { // Only index buffer if we are within it...
			lineNumStr = strconv.Itoa(line + 1)

			ranges := t.Highlighter.GetLineMatches(line)
			var rangeIdx int

			runes := []rune(string(t.Buffer.LineText(line)))
			vx := 0 // Visual column of the next rune, before horizontal scroll

			// setCell draws r at visual column vx if it is within view
			setCell := func(vx int, r rune, style tcell.Style) {
				if col := textX + vx - t.scrollx; col >= textX && col < t.x+t.width {
					s.SetContent(col, lineY, r, nil, style)
				}
			}

			for col, r := range runes {
				for rangeIdx < len(ranges) && ranges[rangeIdx].End() <= col {
					rangeIdx++ // Passed that range
				}

				style := defaultStyle
				if rangeIdx < len(ranges) && ranges[rangeIdx].Contains(col) {
					style = t.Highlighter.GetStyle(ranges[rangeIdx].Construct)
				}
				if t.selectMode && t.selection.Contains(line, col) {
					style = selectedStyle
				}

				if r == '\t' {
					for i := 0; i < t.TabSize; i++ {
						setCell(vx+i, ' ', style)
					}
					vx += t.TabSize
					continue
				}

				setCell(vx, r, style)
				vx += runewidth.RuneWidth(r)
			}

			// A selected line delimiter is shown as one selected cell
			if t.selectMode && line < bufferLines-1 && t.selection.Contains(line, len(runes)) {
				setCell(vx, ' ', selectedStyle)
			}
		}

		if columnWidth > 0 {
			columnStr := fmt.Sprintf("%s%s│", strings.Repeat(" ", max(columnWidth-len(lineNumStr)-1, 0)), lineNumStr) // Right align line number
			DrawStr(s, t.x, lineY, columnStr, columnStyle)                                                           // Draw column
		}
	}

	t.updateCursorVisibility()
}

// SetFocused sets whether the TextEdit is focused. When focused, the cursor is set visible
// and its position is updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if v {
		t.updateCursorVisibility()
	} else if t.screen != nil {
		(*t.screen).HideCursor()
	}
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		selecting := ev.Modifiers()&tcell.ModShift != 0

		switch ev.Key() {
		// Cursor movement
		case tcell.KeyUp:
			t.moveCursor(t.cursor.Up(), selecting)
		case tcell.KeyDown:
			t.moveCursor(t.cursor.Down(), selecting)
		case tcell.KeyLeft:
			t.moveCursor(t.cursor.Left(), selecting)
		case tcell.KeyRight:
			t.moveCursor(t.cursor.Right(), selecting)
		case tcell.KeyHome:
			cursLine, _ := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine, 0), selecting)
		case tcell.KeyEnd:
			cursLine, _ := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine, math.MaxInt32), selecting) // Max column
		case tcell.KeyPgUp:
			cursLine, cursCol := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine-t.height, cursCol), selecting) // Go a page up
		case tcell.KeyPgDn:
			cursLine, cursCol := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine+t.height, cursCol), selecting) // Go a page down

		// Deleting
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.Delete(false)
		case tcell.KeyDelete:
			t.Delete(true)

		// Other control
		case tcell.KeyTab:
			t.Insert("\t") // (can translate to spaces)
		case tcell.KeyEnter:
			t.Insert("\n")

		// Inserting
		case tcell.KeyRune:
			if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
				return false
			}
			t.Insert(string(ev.Rune())) // Insert rune
		default:
			return false
		}
		return true
	}
	return false
}
