package buffer

import (
	"io"
)

// A Buffer holds the text of a document and addresses it by line and column,
// the way the TextEdit and the Highlighter see it. Each line is one block for
// the highlighter. Lines and columns start at zero, columns count runes, and
// "end" positions are inclusive unless stated otherwise.
//
// Out of range positions panic. Use ClampLineCol(), or compare with Lines()
// and RunesInLine(), when unsure.
type Buffer interface {
	// Line returns the bytes of line including its line delimiter. Do not
	// write to the returned slice.
	Line(line int) []byte

	// LineText returns the bytes of line without its line delimiter. This is
	// the text of the block the highlighter scans.
	LineText(line int) []byte

	// Slice returns the bytes from startLine, startCol through endLine, endCol.
	// Do not write to the returned slice.
	Slice(startLine, startCol, endLine, endCol int) []byte

	// Bytes returns a copy of the whole buffer.
	Bytes() []byte

	// SetBytes replaces the whole buffer with contents.
	SetBytes(contents []byte)

	// Insert inserts value at line, col.
	Insert(line, col int, value []byte)

	// Remove deletes the runes from startLine, startCol through endLine, endCol.
	Remove(startLine, startCol, endLine, endCol int)

	// Count returns the number of occurrences of sequence between start and
	// end. End is exclusive.
	Count(startLine, startCol, endLine, endCol int, sequence []byte) int

	// Len returns the number of bytes in the buffer.
	Len() int

	// Lines returns the number of lines, which is one more than the number of
	// '\n' bytes. An empty buffer has one line.
	Lines() int

	// RunesInLineWithDelim counts the runes of line including its delimiter,
	// which counts two for CRLF.
	RunesInLineWithDelim(line int) int

	// RunesInLine counts the runes of line excluding its delimiter.
	RunesInLine(line int) int

	// ClampLineCol clamps line to the lines of the buffer, then col to the
	// runes of that line. A col equal to RunesInLine points to the delimiter.
	ClampLineCol(line, col int) (int, int)

	// LineColToPos returns the byte offset of line, col. A col past the end of
	// the line gives the offset of the line delimiter.
	LineColToPos(line, col int) int

	// PosToLineCol converts a byte offset into a line and column. The offset
	// is clamped.
	PosToLineCol(pos int) (int, int)

	WriteTo(w io.Writer) (int64, error)
}
