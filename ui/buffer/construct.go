package buffer

// A Construct is a lexical category of HTML source that receives its own style.
type Construct uint8

const (
	Entity Construct = iota // &name; or &#123;
	Tag                     // <...>
	Comment                 // <!-- ... -->

	LastConstruct = Comment
)

func (c Construct) String() string {
	switch c {
	case Entity:
		return "Entity"
	case Tag:
		return "Tag"
	case Comment:
		return "Comment"
	}
	return "Construct(?)"
}

// A BlockState is carried from the end of one line (block) to the start of the
// next, so constructs spanning line boundaries are styled without rescanning
// the whole document. The zero value is NormalState.
type BlockState uint8

const (
	NormalState BlockState = iota // No construct is open
	InComment                     // Inside an unterminated <!--
	InTag                         // Inside an unterminated <
)

func (s BlockState) String() string {
	switch s {
	case NormalState:
		return "NormalState"
	case InComment:
		return "InComment"
	case InTag:
		return "InTag"
	}
	return "BlockState(?)"
}

// A Range is a styled span of one block. Start and Length count runes.
type Range struct {
	Start     int
	Length    int
	Construct Construct
}

// End returns the exclusive end offset of the Range.
func (r Range) End() int {
	return r.Start + r.Length
}

// Contains returns whether the rune offset col is covered by the Range.
func (r Range) Contains(col int) bool {
	return col >= r.Start && col < r.End()
}
