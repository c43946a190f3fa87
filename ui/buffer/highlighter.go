package buffer

import (
	"unicode"

	"github.com/fivemoreminix/qsource/pkg/log"
	"github.com/gdamore/tcell/v2"
)

// MaxEntityNameLen is the longest entity name, excluding '&', '#' and ';',
// that is recognized as an Entity.
const MaxEntityNameLen = 16

var (
	commentOpen  = []rune("<!--")
	commentClose = []rune("-->")
)

// ScanBlock classifies the text of one block, given the exit state of the
// block before it (NormalState for the first block). It returns the styled
// ranges in order, and the exit state to feed to the next block. Malformed
// markup is never an error: unterminated tags and comments are carried into
// the next block, and stray '&' or '<' runes are left unstyled.
func ScanBlock(text []rune, prev BlockState) ([]Range, BlockState) {
	var ranges []Range
	emit := func(start, end int, c Construct) {
		if end > start {
			ranges = append(ranges, Range{Start: start, Length: end - start, Construct: c})
		}
	}

	n := len(text)
	state := prev
	pos := 0
	start, searchFrom := 0, 0 // Where the open construct began, and where its terminator may begin

	for {
		switch state {
		case InComment:
			k := indexRunes(text, searchFrom, commentClose)
			if k < 0 {
				emit(start, n, Comment)
				return ranges, InComment
			}
			pos = k + len(commentClose)
			emit(start, pos, Comment)
			state = NormalState

		case InTag:
			k := indexRune(text, searchFrom, '>')
			if k < 0 {
				emit(start, n, Tag)
				return ranges, InTag
			}
			pos = k + 1
			emit(start, pos, Tag)
			state = NormalState

		default:
			for pos < n && text[pos] != '<' {
				if text[pos] == '&' {
					if end, ok := scanEntity(text, pos); ok {
						emit(pos, end, Entity)
						pos = end
						continue
					}
				}
				pos++
			}
			if pos >= n {
				return ranges, NormalState
			}

			start = pos
			if hasRunePrefix(text[pos:], commentOpen) {
				state = InComment
				searchFrom = pos + len(commentOpen)
			} else {
				// Everything up to '>' belongs to the tag, even "<!--".
				state = InTag
				searchFrom = pos + 1
			}
		}
	}
}

// ScanBlockString is ScanBlock for a string. Offsets are still in runes.
func ScanBlockString(text string, prev BlockState) ([]Range, BlockState) {
	return ScanBlock([]rune(text), prev)
}

// scanEntity tries to read an entity reference starting at the '&' at amp.
// It returns the exclusive end of the reference, after its ';'.
func scanEntity(text []rune, amp int) (int, bool) {
	i := amp + 1
	if i < len(text) && text[i] == '#' {
		i++
	}
	nameStart := i
	for i < len(text) && i-nameStart < MaxEntityNameLen && isEntityNameRune(text[i]) {
		i++
	}
	if i == nameStart || i >= len(text) || text[i] != ';' {
		return 0, false
	}
	return i + 1, true
}

func isEntityNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func indexRune(text []rune, from int, r rune) int {
	for i := from; i < len(text); i++ {
		if text[i] == r {
			return i
		}
	}
	return -1
}

func indexRunes(text []rune, from int, seq []rune) int {
	for i := from; i+len(seq) <= len(text); i++ {
		if hasRunePrefix(text[i:], seq) {
			return i
		}
	}
	return -1
}

func hasRunePrefix(text, prefix []rune) bool {
	if len(text) < len(prefix) {
		return false
	}
	for i := range prefix {
		if text[i] != prefix[i] {
			return false
		}
	}
	return true
}

// DefaultFormats returns the styles an HTMLHighlighter starts with.
func DefaultFormats() [LastConstruct + 1]tcell.Style {
	return [LastConstruct + 1]tcell.Style{
		Entity:  tcell.Style{}.Foreground(tcell.ColorDarkRed),
		Tag:     tcell.Style{}.Foreground(tcell.ColorDarkMagenta).Bold(true),
		Comment: tcell.Style{}.Foreground(tcell.ColorGray).Italic(true),
	}
}

// An HTMLHighlighter holds the format table used to draw each Construct.
// Changing a format does not restyle anything already drawn; it is picked up
// the next time a block is drawn.
type HTMLHighlighter struct {
	formats [LastConstruct + 1]tcell.Style
}

func NewHTMLHighlighter() *HTMLHighlighter {
	return &HTMLHighlighter{formats: DefaultFormats()}
}

// SetFormat overrides the style of construct c. Unknown constructs are ignored.
func (h *HTMLHighlighter) SetFormat(c Construct, style tcell.Style) {
	if c <= LastConstruct {
		h.formats[c] = style
	}
}

// FormatFor returns the style currently used for construct c.
func (h *HTMLHighlighter) FormatFor(c Construct) tcell.Style {
	if c > LastConstruct {
		return tcell.StyleDefault
	}
	return h.formats[c]
}

func (h *HTMLHighlighter) ScanBlock(text []rune, prev BlockState) ([]Range, BlockState) {
	return ScanBlock(text, prev)
}

// A Highlighter keeps the styled ranges and exit state of every line of a
// Buffer. Lines are rescanned only when invalidated, or when the exit state of
// the line above them changed since they were last scanned.
type Highlighter struct {
	Buffer Buffer
	HTML   *HTMLHighlighter

	lineMatches [][]Range // nil if the line is invalidated
	lineStates  []BlockState
}

func NewHighlighter(buffer Buffer, html *HTMLHighlighter) *Highlighter {
	if html == nil {
		html = NewHTMLHighlighter()
	}
	lines := buffer.Lines()
	return &Highlighter{
		Buffer:      buffer,
		HTML:        html,
		lineMatches: make([][]Range, lines),
		lineStates:  make([]BlockState, lines),
	}
}

// resize fits the caches to the number of lines in the buffer. New lines are
// invalidated.
func (h *Highlighter) resize() {
	lines := h.Buffer.Lines()
	if len(h.lineMatches) < lines {
		extra := lines - len(h.lineMatches)
		h.lineMatches = append(h.lineMatches, make([][]Range, extra)...)
		h.lineStates = append(h.lineStates, make([]BlockState, extra)...)
	} else if len(h.lineMatches) > lines {
		h.lineMatches = h.lineMatches[:lines]
		h.lineStates = h.lineStates[:lines]
	}
}

// scanLine rescans line and returns whether its exit state changed.
func (h *Highlighter) scanLine(line int) bool {
	prev := NormalState
	if line > 0 {
		prev = h.lineStates[line-1]
	}

	ranges, state := ScanBlock([]rune(string(h.Buffer.LineText(line))), prev)
	if ranges == nil {
		ranges = make([]Range, 0) // Non-nil marks the line as valid
	}

	changed := h.lineStates[line] != state
	h.lineMatches[line] = ranges
	h.lineStates[line] = state
	return changed
}

// UpdateLines forces the lines between startLine and endLine, inclusively, to
// be rescanned. The lines above startLine must already be valid. If the exit
// state of endLine changes, the line after it is invalidated.
func (h *Highlighter) UpdateLines(startLine, endLine int) {
	h.resize()
	if startLine < 0 {
		startLine = 0
	}
	endLine = min(endLine, len(h.lineMatches)-1)

	var changed bool
	for line := startLine; line <= endLine; line++ {
		changed = h.scanLine(line)
	}

	if changed && endLine+1 < len(h.lineMatches) {
		h.lineMatches[endLine+1] = nil
	}
}

// UpdateInvalidatedLines brings every line up to and including endLine up to
// date. Only invalidated lines, and lines whose entry state changed because of
// a line above them, are rescanned.
func (h *Highlighter) UpdateInvalidatedLines(endLine int) {
	h.resize()
	endLine = min(endLine, len(h.lineMatches)-1)

	var stale bool // The exit state of the previous line changed
	var rescanned int
	for line := 0; line <= endLine; line++ {
		if stale || h.lineMatches[line] == nil {
			stale = h.scanLine(line)
			rescanned++
		}
	}

	if stale && endLine+1 < len(h.lineMatches) {
		h.lineMatches[endLine+1] = nil
	}
	if rescanned > 0 {
		log.Debug(log.CatHighlight, "Rescanned lines", "count", rescanned, "through", endLine)
	}
}

func (h *Highlighter) HasInvalidatedLines(startLine, endLine int) bool {
	for i := max(startLine, 0); i <= endLine && i < len(h.lineMatches); i++ {
		if h.lineMatches[i] == nil {
			return true
		}
	}
	return false
}

func (h *Highlighter) InvalidateLines(startLine, endLine int) {
	h.resize()
	for i := max(startLine, 0); i <= endLine && i < len(h.lineMatches); i++ {
		h.lineMatches[i] = nil
	}
}

// GetLineMatches returns the styled ranges of line, sorted by start. The line
// must have been updated; invalidated lines return nil.
func (h *Highlighter) GetLineMatches(line int) []Range {
	if line < 0 || line >= len(h.lineMatches) {
		return nil
	}
	return h.lineMatches[line]
}

// GetLineState returns the exit state recorded for line.
func (h *Highlighter) GetLineState(line int) BlockState {
	if line < 0 || line >= len(h.lineStates) {
		return NormalState
	}
	return h.lineStates[line]
}

func (h *Highlighter) GetStyle(c Construct) tcell.Style {
	return h.HTML.FormatFor(c)
}
