package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestCursor(contents string) (Cursor, *Buffer) {
	var buf Buffer = NewRopeBuffer([]byte(contents))
	return NewCursor(&buf), &buf
}

func TestCursorMovement(t *testing.T) {
	c, _ := newTestCursor("ab\ncd")

	c = c.Right().Right().Right()
	line, col := c.GetLineCol()
	assert.Equal(t, []int{1, 0}, []int{line, col}, "moving right past the end wraps to the next line")

	c = c.Left()
	line, col = c.GetLineCol()
	assert.Equal(t, []int{0, 2}, []int{line, col})

	c = c.SetLineCol(0, 0).Left()
	line, col = c.GetLineCol()
	assert.Equal(t, []int{0, 0}, []int{line, col})
}

func TestCursorRemembersColumn(t *testing.T) {
	c, _ := newTestCursor("longer\nab\nlonger")
	c = c.SetLineCol(0, 5)

	c = c.Down()
	line, col := c.GetLineCol()
	assert.Equal(t, []int{1, 2}, []int{line, col}, "clamped to the short line")

	c = c.Down()
	line, col = c.GetLineCol()
	assert.Equal(t, []int{2, 5}, []int{line, col}, "column restored")

	c = c.Down()
	line, col = c.GetLineCol()
	assert.Equal(t, []int{2, 6}, []int{line, col}, "the last line moves to its end")

	c = c.SetLineCol(0, 3).Up()
	line, col = c.GetLineCol()
	assert.Equal(t, []int{0, 0}, []int{line, col}, "the first line moves to its start")
}

func TestRegion(t *testing.T) {
	_, buf := newTestCursor("abc\ndef")
	r := NewRegion(buf)
	assert.True(t, r.Empty())
	assert.False(t, r.Contains(0, 0))

	// Selected backwards, from line 1 col 1 to line 0 col 1
	r.Anchor = r.Anchor.SetLineCol(1, 1)
	r.Head = r.Head.SetLineCol(0, 1)
	assert.False(t, r.Empty())

	line, col := r.Start()
	assert.Equal(t, []int{0, 1}, []int{line, col})
	line, col = r.End()
	assert.Equal(t, []int{1, 1}, []int{line, col})
	line, col = r.Last()
	assert.Equal(t, []int{1, 0}, []int{line, col})

	assert.False(t, r.Contains(0, 0))
	assert.True(t, r.Contains(0, 1))
	assert.True(t, r.Contains(0, 3), "the line delimiter is selected")
	assert.True(t, r.Contains(1, 0))
	assert.False(t, r.Contains(1, 1), "the end is exclusive")
}

func TestRegionLastAtLineStart(t *testing.T) {
	_, buf := newTestCursor("abc\ndef")
	r := NewRegion(buf)
	r.Anchor = r.Anchor.SetLineCol(0, 2)
	r.Head = r.Head.SetLineCol(1, 0)

	line, col := r.Last()
	assert.Equal(t, []int{0, 3}, []int{line, col}, "the last selected rune is the delimiter")
}

func TestCursorEq(t *testing.T) {
	a, buf := newTestCursor("abc")
	b := NewCursor(buf)
	assert.True(t, a.Eq(b))
	assert.False(t, a.Eq(b.Right()))

	_, other := newTestCursor("abc")
	assert.False(t, a.Eq(NewCursor(other)), "cursors of different buffers differ")
}
