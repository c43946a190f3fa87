package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) (*FileWatcher, <-chan string) {
	t.Helper()
	changed := make(chan string, 8)
	w, err := NewFileWatcher(20*time.Millisecond, func(path string) {
		changed <- path
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	return w, changed
}

func expectChange(t *testing.T, changed <-chan string, want string) {
	t.Helper()
	select {
	case got := <-changed:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported for %s", want)
	}
}

func expectQuiet(t *testing.T, changed <-chan string) {
	t.Helper()
	select {
	case got := <-changed:
		t.Fatalf("unexpected change reported for %s", got)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestFileWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "index.html")
	other := filepath.Join(dir, "other.html")
	writeFile(t, watched, "<p>1</p>")

	w, changed := newTestWatcher(t)
	require.NoError(t, w.Add(watched))
	require.NoError(t, w.Add(watched))

	writeFile(t, other, "<p>ignored</p>")
	expectQuiet(t, changed)

	writeFile(t, watched, "<p>2</p>")
	expectChange(t, changed, watched)
}

func TestFileWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "index.html")
	writeFile(t, watched, "")

	w, changed := newTestWatcher(t)
	require.NoError(t, w.Add(watched))

	f, err := os.OpenFile(watched, os.O_WRONLY|os.O_APPEND, 0)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := f.WriteString("<br>")
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())

	expectChange(t, changed, watched)
	expectQuiet(t, changed)
}

func TestFileWatcherRemove(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "index.html")
	writeFile(t, watched, "")

	w, changed := newTestWatcher(t)
	require.NoError(t, w.Add(watched))
	w.Remove(watched)
	w.Remove(watched)

	writeFile(t, watched, "<p>changed</p>")
	expectQuiet(t, changed)
}

func TestFileWatcherMissingDirectory(t *testing.T) {
	w, _ := newTestWatcher(t)
	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "missing", "index.html")))
}
