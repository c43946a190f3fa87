package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fivemoreminix/qsource/pkg/markup"
	"github.com/fivemoreminix/qsource/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T, cfg Config) (*Editor, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(80, 24)

	theme, err := cfg.Colors.Theme()
	require.NoError(t, err)
	return NewEditor(s, cfg, "", theme, &Clipboard{Method: ClipInternal}), s
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func ctrl(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModCtrl)
}

func typeString(e *Editor, str string) {
	for _, r := range str {
		e.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

// screenRow returns the text drawn on row y.
func screenRow(s tcell.SimulationScreen, y int) string {
	width, _ := s.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		mainc, _, _, _ := s.GetContent(x, y)
		b.WriteRune(mainc)
	}
	return b.String()
}

func TestEditorOpenAndSave(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	path := filepath.Join(t.TempDir(), "index.html")
	writeFile(t, path, "<p>a</p>")

	require.NoError(t, e.OpenFile(path))
	require.NoError(t, e.OpenFile(path))
	assert.Equal(t, 1, e.tabs.GetTabCount(), "opening a file twice selects its tab")

	te := e.currentTextEdit()
	require.NotNil(t, te)
	assert.Equal(t, "index.html", e.tabs.SelectedTab().Name)

	typeString(e, "x")
	assert.True(t, te.Dirty)

	require.NoError(t, e.SaveFile(te, te.FilePath))
	assert.False(t, te.Dirty)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x<p>a</p>", string(data))
}

func TestEditorOpenMissingFile(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	path := filepath.Join(t.TempDir(), "new.html")

	require.NoError(t, e.OpenFile(path))
	te := e.currentTextEdit()
	require.NotNil(t, te)
	assert.Equal(t, "", te.String())
	assert.Equal(t, path, te.FilePath)
}

func TestEditorOpenDirectoryFails(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	assert.Error(t, e.OpenFile(t.TempDir()))
	assert.Equal(t, 0, e.tabs.GetTabCount())
}

func TestEditorSaveAs(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	e.NewDocument()
	te := e.currentTextEdit()
	assert.Equal(t, "noname", e.tabs.SelectedTab().Name)
	typeString(e, "<br>")

	path := filepath.Join(t.TempDir(), "saved.html")
	require.NoError(t, e.SaveFile(te, path))
	assert.Equal(t, path, te.FilePath)
	assert.Equal(t, "saved.html", e.tabs.SelectedTab().Name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<br>", string(data))
}

func TestEditorSaveKeepsCRLF(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	path := filepath.Join(t.TempDir(), "dos.html")
	writeFile(t, path, "<p>\r\n</p>\r\n")

	require.NoError(t, e.OpenFile(path))
	te := e.currentTextEdit()
	require.NoError(t, e.SaveFile(te, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>\r\n</p>\r\n", string(data))
}

func TestEditorLinkifyOnSave(t *testing.T) {
	cfg := Defaults()
	cfg.LinkifyOnSave = true
	e, _ := newTestEditor(t, cfg)
	e.NewDocument()
	te := e.currentTextEdit()
	te.Insert("see http://example.com")

	path := filepath.Join(t.TempDir(), "links.html")
	require.NoError(t, e.SaveFile(te, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `see <a href="http://example.com">http://example.com</a>`, string(data))
}

func TestEditorLinkifyOnSaveFailedWrite(t *testing.T) {
	cfg := Defaults()
	cfg.LinkifyOnSave = true
	e, _ := newTestEditor(t, cfg)
	e.NewDocument()
	te := e.currentTextEdit()
	te.Insert("see http://example.com")

	notDir := filepath.Join(t.TempDir(), "file")
	writeFile(t, notDir, "")
	require.Error(t, e.SaveFile(te, filepath.Join(notDir, "links.html")))
	assert.Equal(t, "see http://example.com", te.String(), "document is untouched when the write fails")
	assert.True(t, te.Dirty)

	require.NoError(t, e.SaveFile(te, filepath.Join(t.TempDir(), "links.html")))
	assert.Equal(t, `see <a href="http://example.com">http://example.com</a>`, te.String())
	assert.False(t, te.Dirty)
}

func TestEditorReload(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	path := filepath.Join(t.TempDir(), "page.html")
	writeFile(t, path, "<p>old</p>")
	require.NoError(t, e.OpenFile(path))
	te := e.currentTextEdit()

	writeFile(t, path, "<p>new</p>")
	e.HandleEvent(tcell.NewEventInterrupt(reloadEvent{path: path}))
	assert.Equal(t, "<p>new</p>", te.String())
	assert.False(t, te.Dirty)

	te.Insert("mine")
	writeFile(t, path, "<p>theirs</p>")
	e.Reload(path)
	assert.Equal(t, "mine<p>new</p>", te.String(), "modified documents are not reloaded")
	assert.Contains(t, e.statusMessage, "changed on disk")
}

func TestEditorShortcuts(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())

	assert.True(t, e.HandleEvent(ctrl(tcell.KeyCtrlN)))
	require.Equal(t, 1, e.tabs.GetTabCount())
	te := e.currentTextEdit()

	typeString(e, "hi")
	assert.Equal(t, "hi", te.String())

	e.HandleEvent(ctrl(tcell.KeyCtrlA))
	assert.Equal(t, "hi", te.GetSelectedString())
	e.HandleEvent(ctrl(tcell.KeyCtrlB))
	assert.Equal(t, "<b>hi</b>", te.String())

	e.HandleEvent(ctrl(tcell.KeyCtrlA))
	e.HandleEvent(ctrl(tcell.KeyCtrlC))
	e.HandleEvent(key(tcell.KeyEnd))
	e.HandleEvent(ctrl(tcell.KeyCtrlV))
	assert.Equal(t, "<b>hi</b><b>hi</b>", te.String())
}

func TestEditorCutAndPaste(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	e.NewDocument()
	te := e.currentTextEdit()
	te.Insert("abc")

	e.HandleEvent(key(tcell.KeyHome))
	e.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift))
	e.HandleEvent(ctrl(tcell.KeyCtrlX))
	assert.Equal(t, "bc", te.String())

	clip, err := e.clip.Read()
	require.NoError(t, err)
	assert.Equal(t, "a", clip)
}

func TestEditorExitConfirmsUnsavedChanges(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	e.NewDocument()
	typeString(e, "x")

	assert.True(t, e.HandleEvent(ctrl(tcell.KeyCtrlQ)), "a dirty document asks first")
	require.NotNil(t, e.dialog)

	assert.False(t, e.HandleEvent(key(tcell.KeyEnter)), "the first option exits")
}

func TestEditorExitWithoutChanges(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	e.NewDocument()
	assert.False(t, e.HandleEvent(ctrl(tcell.KeyCtrlQ)))
}

func TestEditorEscapeTogglesMenuBar(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	e.NewDocument()

	e.HandleEvent(key(tcell.KeyEscape))
	assert.Equal(t, ui.Component(e.bar), e.focused)

	e.HandleEvent(key(tcell.KeyEscape))
	assert.Equal(t, ui.Component(e.panel), e.focused)
}

func TestEditorGoToLine(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	e.NewDocument()
	te := e.currentTextEdit()
	te.Insert("one\ntwo\nthree")

	e.HandleEvent(ctrl(tcell.KeyCtrlL))
	require.NotNil(t, e.dialog)
	typeString(e, "2")
	e.HandleEvent(key(tcell.KeyEnter))

	assert.Nil(t, e.dialog)
	line, col := te.GetCursor().GetLineCol()
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)
}

func TestEditorFindNext(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	e.NewDocument()
	te := e.currentTextEdit()
	te.Insert("<b>x</b>")
	e.HandleEvent(key(tcell.KeyHome))

	e.lastQuery = "b"
	e.HandleEvent(ctrl(tcell.KeyCtrlG))
	assert.Equal(t, "b", te.GetSelectedString())

	e.lastQuery = "zzz"
	e.HandleEvent(ctrl(tcell.KeyCtrlG))
	assert.Contains(t, e.statusMessage, "not found")
}

func TestEditorRemoveFormatting(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	e.NewDocument()
	te := e.currentTextEdit()
	te.Insert("<p>a &amp; <i>b</i></p>")

	e.removeFormatting(te)
	assert.Equal(t, "a &amp; b", te.String())
}

func TestEditorParagraph(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	e.NewDocument()
	te := e.currentTextEdit()
	te.Insert("Title")
	te.SelectAll()

	e.paragraph(te, markup.ParagraphHeading2)
	assert.Equal(t, "<h2>Title</h2>", te.String())
}

func TestEditorDrawsStatusLine(t *testing.T) {
	e, s := newTestEditor(t, Defaults())
	e.NewDocument()
	typeString(e, "<!-- a")

	e.Draw()
	_, height := s.Size()
	status := screenRow(s, height-1)
	assert.True(t, strings.HasPrefix(status, "Ln 1, Col 7"), status)
	assert.Contains(t, status, "InComment")
	assert.Contains(t, screenRow(s, 0), "File")
}

func TestEditorPreview(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	e.NewDocument()
	e.currentTextEdit().Insert("<p>Hello &amp; bye</p>")

	e.HandleEvent(ctrl(tcell.KeyCtrlP))
	require.True(t, e.previewShown)
	assert.False(t, e.panel.IsLeaf())

	e.Draw()
	assert.Equal(t, "Hello &amp; bye", e.preview.Text)

	e.HandleEvent(ctrl(tcell.KeyCtrlP))
	assert.False(t, e.previewShown)
	assert.True(t, e.panel.IsLeaf())
}

func TestEditorToggleLineNumbersSavesSetting(t *testing.T) {
	e, _ := newTestEditor(t, Defaults())
	e.configPath = filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(e.configPath))
	e.NewDocument()

	e.toggleLineNumbers()
	assert.False(t, e.currentTextEdit().LineNumbers)

	data, err := os.ReadFile(e.configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "line_numbers: false")
	assert.Contains(t, string(data), "# qsource configuration")
}
