package buffer

import (
	"bytes"
	"unicode/utf8"
)

// A Match is an occurrence of a search query in a Buffer. Like a Region, both
// ends are inclusive: EndLine and EndCol point to the last rune of the match.
type Match struct {
	Line, Col       int
	EndLine, EndCol int
}

// matchAt converts the byte offset and length of an occurrence to a Match.
func matchAt(buf Buffer, pos int, query []byte) Match {
	_, lastSize := utf8.DecodeLastRune(query)
	line, col := buf.PosToLineCol(pos)
	endLine, endCol := buf.PosToLineCol(pos + len(query) - lastSize)
	return Match{line, col, endLine, endCol}
}

// FindNext returns the first occurrence of query at or after line, col. The
// search wraps around to the start of the buffer. An empty query never matches.
func FindNext(buf Buffer, query []byte, line, col int) (Match, bool) {
	if len(query) == 0 {
		return Match{}, false
	}

	data := buf.Bytes()
	from := buf.LineColToPos(buf.ClampLineCol(line, col))

	idx := bytes.Index(data[from:], query)
	if idx >= 0 {
		idx += from
	} else {
		idx = bytes.Index(data, query) // Wrap around
	}
	if idx < 0 {
		return Match{}, false
	}
	return matchAt(buf, idx, query), true
}

// FindAll returns every non-overlapping occurrence of query, in order.
func FindAll(buf Buffer, query []byte) []Match {
	if len(query) == 0 {
		return nil
	}

	var matches []Match
	data := buf.Bytes()
	for pos := 0; pos < len(data); {
		idx := bytes.Index(data[pos:], query)
		if idx < 0 {
			break
		}
		matches = append(matches, matchAt(buf, pos+idx, query))
		pos += idx + len(query)
	}
	return matches
}

// Replace substitutes the text of m with replacement.
func Replace(buf Buffer, m Match, replacement []byte) {
	buf.Remove(m.Line, m.Col, m.EndLine, m.EndCol)
	if len(replacement) > 0 {
		buf.Insert(m.Line, m.Col, replacement)
	}
}

// ReplaceAll substitutes every occurrence of query with replacement and returns
// how many were replaced.
func ReplaceAll(buf Buffer, query, replacement []byte) int {
	if len(query) == 0 {
		return 0
	}

	data := buf.Bytes()
	count := bytes.Count(data, query)
	if count == 0 {
		return 0
	}

	replaced := bytes.ReplaceAll(data, query, replacement)
	buf.SetBytes(replaced)
	return count
}
