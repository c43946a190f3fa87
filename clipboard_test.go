package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalClipboard(t *testing.T) {
	clip, err := ClipInitialize(ClipInternal)
	require.NoError(t, err)
	assert.Equal(t, ClipInternal, clip.Method)

	contents, err := clip.Read()
	require.NoError(t, err)
	assert.Empty(t, contents)

	require.NoError(t, clip.Write("<b>copied</b>"))
	contents, err = clip.Read()
	require.NoError(t, err)
	assert.Equal(t, "<b>copied</b>", contents)
}

func TestUnknownClipMethod(t *testing.T) {
	clip := &Clipboard{Method: ClipMethod(9)}
	_, err := clip.Read()
	assert.ErrorIs(t, err, errUnknownClipMethod)
	assert.ErrorIs(t, clip.Write("x"), errUnknownClipMethod)
}
