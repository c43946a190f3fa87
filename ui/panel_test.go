package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelSplits(t *testing.T) {
	left := NewLabel("left", AlignLeft, &DefaultTheme)
	right := NewLabel("right", AlignLeft, &DefaultTheme)

	p := NewSplitPanel(PanelKindSplitHor, left, right, 25)
	p.SetPos(2, 1)
	p.SetSize(80, 20)

	x, y := left.GetPos()
	w, h := left.GetSize()
	assert.Equal(t, []int{2, 1, 20, 20}, []int{x, y, w, h})

	x, y = right.GetPos()
	w, h = right.GetSize()
	assert.Equal(t, []int{22, 1, 60, 20}, []int{x, y, w, h})

	x, y = p.GetPos()
	assert.Equal(t, []int{2, 1}, []int{x, y})
}

func TestPanelVerticalSplit(t *testing.T) {
	top := NewLabel("top", AlignLeft, &DefaultTheme)
	bottom := NewLabel("bottom", AlignLeft, &DefaultTheme)

	p := NewSplitPanel(PanelKindSplitVert, top, bottom, 50)
	p.SetSize(10, 9)

	_, h := top.GetSize()
	assert.Equal(t, 4, h)
	_, y := bottom.GetPos()
	_, h = bottom.GetSize()
	assert.Equal(t, 4, y)
	assert.Equal(t, 5, h)
}

func TestPanelSplitAndUnsplit(t *testing.T) {
	main := NewLabel("main", AlignLeft, &DefaultTheme)
	side := NewLabel("side", AlignLeft, &DefaultTheme)

	p := NewSinglePanel(main)
	p.SetSize(100, 10)
	require.True(t, p.IsLeaf())

	p.Split(PanelKindSplitHor, side, 60)
	assert.False(t, p.IsLeaf())
	w, _ := main.GetSize()
	assert.Equal(t, 60, w)
	x, _ := side.GetPos()
	assert.Equal(t, 60, x)

	var leaves int
	p.EachLeaf(false, func(*Panel) bool {
		leaves++
		return false
	})
	assert.Equal(t, 2, leaves)

	p.Unsplit()
	assert.True(t, p.IsLeaf())
	assert.Equal(t, Component(main), p.Left)
	w, _ = main.GetSize()
	assert.Equal(t, 100, w)
}
