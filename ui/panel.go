package ui

import "github.com/gdamore/tcell/v2"

// A PanelKind describes how to interpret the fields of a Panel.
type PanelKind uint8

const (
	PanelKindEmpty     PanelKind = iota
	PanelKindSingle              // Single item. Takes up all available space
	PanelKindSplitVert           // Items are above or below eachother
	PanelKindSplitHor            // Items are left or right of eachother
)

// A Panel represents a container for a split view between two items. The Kind
// tells how to interpret the Left and Right fields. The SplitAt is a percentage
// of the width or height, representing the position of the split between the
// Left and Right, respectively.
//
// If the Kind is equal to PanelKindEmpty, then both Left and Right are nil.
// If the Kind is equal to PanelKindSingle, then only Left has value,
//   and its value will NOT be of type Panel. The SplitAt will not be used,
//   as the Left will take up the whole space.
// If the Kind is equal to PanelKindSplitVert, then both Left and Right will
//   have value, and they will both have to be of type Panel. The split will
//   be represented vertically, and the SplitAt is a percentage of the height;
//   top to bottom, respectively.
// If the Kind is equal to PanelKindSplitHor, then both Left and Right will
//   have value, and they will both have to be of type Panel. The split will
//   be represented horizontally, and the SplitAt is a percentage of the width;
//   left to right.
type Panel struct {
	Parent  *Panel
	Left    Component
	Right   Component
	SplitAt int
	Kind    PanelKind
	Focused bool

	x, y   int
	width  int
	height int
}

// NewSinglePanel returns a leaf Panel holding item.
func NewSinglePanel(item Component) *Panel {
	return &Panel{Left: item, Kind: PanelKindSingle}
}

// NewSplitPanel returns a Panel split between two leaf Panels holding left and
// right. The split is placed at `fraction` percent of the width or height.
func NewSplitPanel(kind PanelKind, left, right Component, fraction int) *Panel {
	p := &Panel{Kind: kind, SplitAt: fraction}
	p.Left = &Panel{Parent: p, Left: left, Kind: PanelKindSingle}
	p.Right = &Panel{Parent: p, Left: right, Kind: PanelKindSingle}
	return p
}

// Split turns the leaf Panel p into a split between its current item and
// item, placed at `fraction` percent of the Panel. Returns the Panel holding item.
func (p *Panel) Split(kind PanelKind, item Component, fraction int) *Panel {
	left := &Panel{Parent: p, Left: p.Left, Kind: p.Kind}
	right := &Panel{Parent: p, Left: item, Kind: PanelKindSingle}
	p.Left, p.Right, p.Kind, p.SplitAt = left, right, kind, fraction
	p.UpdateSplits()
	return right
}

// Unsplit replaces the split Panel p with the item of its Left leaf.
func (p *Panel) Unsplit() {
	if p.IsLeaf() {
		return
	}
	left := p.Left.(*Panel)
	p.Left, p.Right, p.Kind = left.Left, nil, left.Kind
	p.UpdateSplits()
}

// splitAtCells converts SplitAt, a percentage, to cells of `size`.
func (p *Panel) splitAtCells(size int) int {
	return Clamp(size*p.SplitAt/100, 0, size)
}

// UpdateSplits uses the position and size of the Panel, along with its SplitAt
// and Kind, to appropriately size and place its children. Child Panels lay out
// their own children when they are resized.
func (p *Panel) UpdateSplits() {
	switch p.Kind {
	case PanelKindSingle:
		p.Left.SetPos(p.x, p.y)
		p.Left.SetSize(p.width, p.height)
	case PanelKindSplitVert:
		at := p.splitAtCells(p.height)
		p.Left.SetPos(p.x, p.y)
		p.Left.SetSize(p.width, at)
		p.Right.SetPos(p.x, p.y+at)
		p.Right.SetSize(p.width, p.height-at)
	case PanelKindSplitHor:
		at := p.splitAtCells(p.width)
		p.Left.SetPos(p.x, p.y)
		p.Left.SetSize(at, p.height)
		p.Right.SetPos(p.x+at, p.y)
		p.Right.SetSize(p.width-at, p.height)
	}
}

// Same as EachLeaf, but returns true if any call to `f` returned true.
func (p *Panel) eachLeaf(rightMost bool, f func(*Panel) bool) bool {
	switch p.Kind {
	case PanelKindEmpty:
		fallthrough
	case PanelKindSingle:
		return f(p)

	case PanelKindSplitVert:
		fallthrough
	case PanelKindSplitHor:
		if rightMost {
			if p.Right.(*Panel).eachLeaf(rightMost, f) {
				return true
			}
			return p.Left.(*Panel).eachLeaf(rightMost, f)
		} else {
			if p.Left.(*Panel).eachLeaf(rightMost, f) {
				return true
			}
			return p.Right.(*Panel).eachLeaf(rightMost, f)
		}

	default:
		return false
	}
}

// EachLeaf visits the entire tree, and calls function `f` at each leaf Panel.
// If the function `f` returns true, then visiting stops. if `rtl` is true,
// the tree is traversed in right-most order. The default is to traverse
// in left-most order.
//
// The caller of this function can safely assert that Panel's Kind is always
// either `PanelKindSingle` or `PanelKindEmpty`.
func (p *Panel) EachLeaf(rightMost bool, f func(*Panel) bool) {
	p.eachLeaf(rightMost, f)
}

// IsLeaf returns whether the Panel is a leaf or not. A leaf is a panel with
// Kind `PanelKindEmpty` or `PanelKindSingle`.
func (p *Panel) IsLeaf() bool {
	switch p.Kind {
	case PanelKindEmpty:
		fallthrough
	case PanelKindSingle:
		return true
	default:
		return false
	}
}

func (p *Panel) Draw(s tcell.Screen) {
	switch p.Kind {
	case PanelKindSplitVert:
		fallthrough
	case PanelKindSplitHor:
		p.Right.Draw(s)
		fallthrough
	case PanelKindSingle:
		p.Left.Draw(s)
	}
}

// SetFocused sets this Panel's Focused field to `v`. Then, if the Panel's Kind
// is PanelKindSingle, it sets its child (not a Panel) focused to `v`, also.
func (p *Panel) SetFocused(v bool) {
	p.Focused = v
	switch p.Kind {
	case PanelKindSplitVert:
		fallthrough
	case PanelKindSplitHor:
		p.Right.SetFocused(v)
		fallthrough
	case PanelKindSingle:
		p.Left.SetFocused(v)
	}
}

func (p *Panel) SetTheme(theme *Theme) {
	switch p.Kind {
	case PanelKindSplitVert:
		fallthrough
	case PanelKindSplitHor:
		p.Right.SetTheme(theme)
		fallthrough
	case PanelKindSingle:
		p.Left.SetTheme(theme)
	}
}

// GetPos returns the position of the panel.
func (p *Panel) GetPos() (int, int) {
	return p.x, p.y
}

// SetPos sets the position of the panel and lays out its children.
func (p *Panel) SetPos(x, y int) {
	p.x, p.y = x, y
	p.UpdateSplits()
}

// GetMinSize returns the combined minimum sizes of the Panel's children.
func (p *Panel) GetMinSize() (int, int) {
	switch p.Kind {
	case PanelKindSingle:
		return p.Left.GetMinSize()
	case PanelKindSplitVert:
		// use max width, add heights
		lWidth, lHeight := p.Left.GetMinSize()
		rWidth, rHeight := p.Right.GetMinSize()
		return max(lWidth, rWidth), lHeight + rHeight
	case PanelKindSplitHor:
		// use max height, add widths
		lWidth, lHeight := p.Left.GetMinSize()
		rWidth, rHeight := p.Right.GetMinSize()
		return lWidth + rWidth, max(lHeight, rHeight)
	default:
		return 0, 0
	}
}

func (p *Panel) GetSize() (int, int) {
	return p.width, p.height
}

// SetSize sets the Panel size to the given width, and height. It will not check
// against GetMinSize() because it may be costly to do so. Children are laid
// out again.
func (p *Panel) SetSize(width, height int) {
	p.width, p.height = width, height
	p.UpdateSplits()
}

// HandleEvent propogates the event to all children, calling HandleEvent()
// on left-most items. As usual: returns true if handled, false if unhandled.
// This function relies on the behavior of the child Components to only handle
// events if they are focused.
func (p *Panel) HandleEvent(event tcell.Event) bool {
	switch p.Kind {
	case PanelKindSingle:
		return p.Left.HandleEvent(event)
	case PanelKindSplitVert:
		fallthrough
	case PanelKindSplitHor:
		if p.Left.HandleEvent(event) {
			return true
		}
		return p.Right.HandleEvent(event)
	default:
		return false
	}
}
