package buffer

import "math"

// So why is the code for moving the cursor in the buffer package, and not in the
// TextEdit component? Well, it used to be, but it sucked that way. The cursor
// needs to have a reference to the buffer to know where lines end and how it can
// move. The buffer is the city, and the Cursor is the car.

type position struct {
	line int
	col  int
}

func (p position) less(other position) bool {
	return p.line < other.line || (p.line == other.line && p.col < other.col)
}

// A Region represents a selection of the buffer. The Anchor is where the
// selection was started, and the Head follows the cursor, so the Head may be
// before the Anchor. Start() and End() return the ordered bounds; the rune at
// End() is not part of the selection. An End() column one more than the last
// column of a line points to the line delimiter, so the selection spans it.
type Region struct {
	Anchor Cursor
	Head   Cursor
}

func NewRegion(in *Buffer) Region {
	return Region{
		NewCursor(in),
		NewCursor(in),
	}
}

func (r Region) ordered() (first, last Cursor) {
	if r.Head.position.less(r.Anchor.position) {
		return r.Head, r.Anchor
	}
	return r.Anchor, r.Head
}

// Start returns the line and column of the first selected rune.
func (r Region) Start() (line, col int) {
	first, _ := r.ordered()
	return first.GetLineCol()
}

// End returns the line and column just past the last selected rune.
func (r Region) End() (line, col int) {
	_, last := r.ordered()
	return last.GetLineCol()
}

// Last returns the line and column of the last selected rune, for use with the
// inclusive ranges of a Buffer. The Region must not be Empty.
func (r Region) Last() (line, col int) {
	_, last := r.ordered()
	return last.Left().GetLineCol()
}

// Empty returns whether no rune is selected.
func (r Region) Empty() bool {
	return r.Anchor.position == r.Head.position
}

// Contains returns whether the rune at line, col is selected.
func (r Region) Contains(line, col int) bool {
	first, last := r.ordered()
	p := position{line, col}
	return !p.less(first.position) && p.less(last.position)
}

// A Cursor's functions emulate common cursor actions. Cursors are values; every
// movement returns the moved Cursor.
type Cursor struct {
	buffer  *Buffer
	prevCol int
	position
}

func NewCursor(in *Buffer) Cursor {
	return Cursor{
		buffer: in,
	}
}

func (c Cursor) Left() Cursor {
	if c.col == 0 && c.line != 0 { // If we are at the beginning of the current line...
		// Go to the end of the above line
		c.line--
		c.col = (*c.buffer).RunesInLine(c.line)
	} else {
		c.col = max(c.col-1, 0)
	}
	c.prevCol = c.col
	return c
}

func (c Cursor) Right() Cursor {
	// If we are at the end of the current line,
	// and not at the last line...
	if c.col >= (*c.buffer).RunesInLine(c.line) && c.line < (*c.buffer).Lines()-1 {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line+1, 0) // Go to beginning of line below
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line, c.col+1)
	}
	c.prevCol = c.col
	return c
}

// Up and Down remember the column the cursor came from, so moving across a
// short line does not lose the column.
func (c Cursor) Up() Cursor {
	if c.line == 0 { // If the cursor is at the first line...
		c.line, c.col = 0, 0 // Go to beginning
		c.prevCol = 0
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line-1, max(c.col, c.prevCol))
	}
	return c
}

func (c Cursor) Down() Cursor {
	if c.line == (*c.buffer).Lines()-1 { // If the cursor is at the last line...
		c.line, c.col = (*c.buffer).ClampLineCol(c.line, math.MaxInt32) // Go to end of current line
		c.prevCol = c.col
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line+1, max(c.col, c.prevCol))
	}
	return c
}

func (c Cursor) GetLineCol() (line, col int) {
	return c.line, c.col
}

// SetLineCol sets the line and col of the Cursor to those provided. `line` is
// clamped within the range (0, lines in buffer). `col` is then clamped within
// the range (0, line length in runes).
func (c Cursor) SetLineCol(line, col int) Cursor {
	c.line, c.col = (*c.buffer).ClampLineCol(line, col)
	c.prevCol = c.col
	return c
}

func (c Cursor) Eq(other Cursor) bool {
	return c.buffer == other.buffer && c.line == other.line && c.col == other.col
}
