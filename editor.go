package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fivemoreminix/qsource/pkg/log"
	"github.com/fivemoreminix/qsource/pkg/markup"
	"github.com/fivemoreminix/qsource/ui"
	"github.com/gdamore/tcell/v2"
)

// reloadEvent is posted by the file watcher when an open file changed on disk.
type reloadEvent struct {
	path string
}

// Editor owns the screen, the open documents and everything drawn on top of
// them. All of its state is used only by the goroutine running Run.
type Editor struct {
	screen     tcell.Screen
	theme      ui.Theme
	cfg        Config
	configPath string // Empty when there is no config file to save settings to

	bar     *ui.MenuBar
	tabs    *ui.TabContainer
	panel   *ui.Panel
	preview *ui.Label
	status  *ui.Label

	dialog        ui.Component // Drawn over everything and focused when not nil
	focused       ui.Component
	statusMessage string // Shown instead of the cursor status until the next key
	lastQuery     string
	previewShown  bool
	quit          bool

	clip    *Clipboard
	watcher *FileWatcher // May be nil
}

// NewEditor returns an Editor drawing to screen. The screen must already be
// initialized.
func NewEditor(screen tcell.Screen, cfg Config, configPath string, theme ui.Theme, clip *Clipboard) *Editor {
	e := &Editor{
		screen:     screen,
		theme:      theme,
		cfg:        cfg,
		configPath: configPath,
		clip:       clip,
	}

	e.tabs = ui.NewTabContainer(&e.theme)
	e.panel = ui.NewSinglePanel(e.tabs)
	e.preview = ui.NewLabel("", ui.AlignLeft, &e.theme)
	e.status = ui.NewLabel("", ui.AlignLeft, &e.theme)
	e.status.StyleKey = "StatusBar"
	e.bar = ui.NewMenuBar(&e.theme)
	e.buildMenus()

	e.layout()
	e.changeFocus(e.panel)
	return e
}

// SetWatcher makes the editor watch the files it opens and saves.
func (e *Editor) SetWatcher(w *FileWatcher) {
	e.watcher = w
	for i := 0; i < e.tabs.GetTabCount(); i++ {
		if te, ok := e.tabs.GetTab(i).Child.(*ui.TextEdit); ok && te.FilePath != "" {
			e.watch(te.FilePath)
		}
	}
}

func (e *Editor) changeFocus(to ui.Component) {
	if e.focused != nil {
		e.focused.SetFocused(false)
	}
	e.focused = to
	to.SetFocused(true)
}

func (e *Editor) focusEditor() {
	e.changeFocus(e.panel)
}

// showDialog places d over the editor and focuses it.
func (e *Editor) showDialog(d ui.Component) {
	e.dialog = d
	e.layoutDialog()
	e.changeFocus(d)
}

func (e *Editor) closeDialog() {
	e.dialog = nil
	e.focusEditor()
}

// showError logs err and shows it in a message dialog.
func (e *Editor) showError(cat log.Category, msg string, err error) {
	log.ErrorErr(cat, msg, err)
	e.showDialog(ui.NewMessageDialog("", msg+": "+err.Error(), ui.MessageKindError, nil, &e.theme, func(string) {
		e.closeDialog()
	}))
}

// confirm asks a yes or no question and calls yes if the first option is chosen.
func (e *Editor) confirm(title, message, yesOption string, yes func()) {
	e.showDialog(ui.NewMessageDialog(title, message, ui.MessageKindWarning, []string{yesOption, "Cancel"}, &e.theme, func(option string) {
		e.closeDialog()
		if option == yesOption {
			yes()
		}
	}))
}

func (e *Editor) currentTextEdit() *ui.TextEdit {
	if tab := e.tabs.SelectedTab(); tab != nil {
		te, _ := tab.Child.(*ui.TextEdit)
		return te
	}
	return nil
}

// withTextEdit returns a menu callback that runs f on the current document.
// It does nothing when no document is open.
func (e *Editor) withTextEdit(f func(te *ui.TextEdit)) func() {
	return func() {
		if te := e.currentTextEdit(); te != nil {
			f(te)
		}
	}
}

func (e *Editor) applySettings(te *ui.TextEdit) {
	te.TabSize = e.cfg.TabSize
	te.UseHardTabs = e.cfg.HardTabs
	te.LineNumbers = e.cfg.LineNumbers
}

func tabName(te *ui.TextEdit) string {
	if te.FilePath == "" {
		return "noname"
	}
	return filepath.Base(te.FilePath)
}

// NewDocument opens an empty, unsaved tab.
func (e *Editor) NewDocument() {
	e.addTextEdit(ui.NewTextEdit(&e.screen, "", nil, &e.theme))
}

func (e *Editor) addTextEdit(te *ui.TextEdit) {
	e.applySettings(te)
	e.tabs.AddTab(tabName(te), te)
	e.tabs.FocusTab(e.tabs.GetTabCount() - 1)
}

// OpenFile opens the file at path in a new tab, or selects its tab if it is
// already open. A path that does not exist opens an empty document that will
// be saved there.
func (e *Editor) OpenFile(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if idx := e.tabIndex(path); idx >= 0 {
		e.tabs.FocusTab(idx)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	log.Info(log.CatFile, "Opened file", "path", path, "bytes", len(data))
	e.addTextEdit(ui.NewTextEdit(&e.screen, path, data, &e.theme))
	e.watch(path)
	return nil
}

// tabIndex returns the index of the tab editing the file at path, or -1.
func (e *Editor) tabIndex(path string) int {
	for i := 0; i < e.tabs.GetTabCount(); i++ {
		if te, ok := e.tabs.GetTab(i).Child.(*ui.TextEdit); ok && te.FilePath == path {
			return i
		}
	}
	return -1
}

func (e *Editor) watch(path string) {
	if e.watcher == nil {
		return
	}
	if err := e.watcher.Add(path); err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to watch file", err, "path", path)
	}
}

func (e *Editor) unwatch(path string) {
	if e.watcher != nil && path != "" {
		e.watcher.Remove(path)
	}
}

// SaveFile writes te to path and associates te with it.
func (e *Editor) SaveFile(te *ui.TextEdit, path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	data := te.Bytes()
	var linked []byte // The linkified document, applied to te only once it is on disk
	if e.cfg.LinkifyOnSave {
		linked = []byte(markup.Linkify(string(te.Buffer.Bytes())))
		data = linked
		if te.IsCRLF {
			data = bytes.ReplaceAll(linked, []byte{'\n'}, []byte("\r\n"))
		}
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := writeFileAtomic(path, data, perm); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	log.Info(log.CatFile, "Saved file", "path", path, "bytes", len(data))

	if linked != nil {
		te.TransformAll(func([]byte) []byte { return linked })
	}

	if te.FilePath != path {
		e.unwatch(te.FilePath)
		te.FilePath = path
		e.watch(path)
	}
	te.Dirty = false
	if idx := e.tabIndex(path); idx >= 0 {
		e.tabs.GetTab(idx).Name = tabName(te)
	}
	return nil
}

func (e *Editor) save(te *ui.TextEdit) {
	if te.FilePath == "" {
		e.saveAs(te)
		return
	}
	if err := e.SaveFile(te, te.FilePath); err != nil {
		e.showError(log.CatFile, "Could not save file", err)
	}
}

func (e *Editor) saveAs(te *ui.TextEdit) {
	dialog := ui.NewFileSelectorDialog(&e.screen, "Save as", false, &e.theme, func(files []string) {
		e.closeDialog()
		if err := e.SaveFile(te, files[0]); err != nil {
			e.showError(log.CatFile, "Could not save file", err)
		}
	}, e.closeDialog)
	if te.FilePath != "" {
		dialog.SetDirectory(filepath.Dir(te.FilePath))
	}
	e.showDialog(dialog)
}

func (e *Editor) open() {
	e.showDialog(ui.NewFileSelectorDialog(&e.screen, "Comma-separated files", true, &e.theme, func(files []string) {
		e.closeDialog()
		for _, path := range files {
			if err := e.OpenFile(path); err != nil {
				e.showError(log.CatFile, "Could not open file", err)
				return
			}
		}
	}, e.closeDialog))
}

// closeTab closes the current tab, asking first if it has unsaved changes.
func (e *Editor) closeTab(te *ui.TextEdit) {
	closeIt := func() {
		e.unwatch(te.FilePath)
		e.tabs.RemoveTab(e.tabs.GetSelectedTabIdx())
	}
	if te.Dirty {
		e.confirm("Close", tabName(te)+" has unsaved changes. Close it anyway?", "Close", closeIt)
		return
	}
	closeIt()
}

func (e *Editor) exit() {
	for i := 0; i < e.tabs.GetTabCount(); i++ {
		if te, ok := e.tabs.GetTab(i).Child.(*ui.TextEdit); ok && te.Dirty {
			e.confirm("Exit", "There are unsaved changes. Exit anyway?", "Exit", func() {
				e.quit = true
			})
			return
		}
	}
	e.quit = true
}

// Reload replaces the contents of the unmodified document editing path with
// the file on disk. Modified documents are left alone and a message is shown.
func (e *Editor) Reload(path string) {
	idx := e.tabIndex(path)
	if idx < 0 {
		return
	}
	te := e.tabs.GetTab(idx).Child.(*ui.TextEdit)

	data, err := os.ReadFile(path)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to reload file", err, "path", path)
		return
	}
	if bytes.Equal(data, te.Bytes()) {
		return // Our own save
	}
	if te.Dirty {
		e.statusMessage = tabName(te) + " changed on disk"
		log.Warn(log.CatWatcher, "Modified file changed on disk", "path", path)
		return
	}

	line, _ := te.GetCursor().GetLineCol()
	te.SetContents(data)
	te.GoToLine(line + 1)
	log.Info(log.CatWatcher, "Reloaded file", "path", path)
}

func (e *Editor) copy(te *ui.TextEdit, cut bool) {
	selected := te.GetSelectedString()
	if selected == "" {
		return
	}
	if err := e.clip.Write(selected); err != nil {
		e.showError(log.CatClipboard, "Could not write clipboard", err)
		return
	}
	if cut {
		te.Delete(false)
	}
}

func (e *Editor) paste(te *ui.TextEdit) {
	contents, err := e.clip.Read()
	if err != nil {
		e.showError(log.CatClipboard, "Could not read clipboard", err)
		return
	}
	te.Insert(contents)
}

func (e *Editor) findReplace(te *ui.TextEdit) {
	var dialog *ui.FindReplaceDialog
	dialog = ui.NewFindReplaceDialog(&e.screen, te, &e.theme, func(msg string) {
		e.statusMessage = msg
	}, func() {
		e.lastQuery = dialog.Query() // For Find Next
		e.closeDialog()
	})

	query := e.lastQuery
	if selected := te.GetSelectedString(); selected != "" && !strings.Contains(selected, "\n") {
		query = selected
	}
	dialog.SetQuery(query)
	e.showDialog(dialog)
}

func (e *Editor) findNext(te *ui.TextEdit) {
	found, err := te.Find(e.lastQuery)
	switch {
	case errors.Is(err, ui.ErrEmptyQuery):
		e.findReplace(te)
	case !found:
		e.statusMessage = strconv.Quote(e.lastQuery) + " not found"
	}
}

func (e *Editor) goToLine(te *ui.TextEdit) {
	e.showDialog(ui.NewPromptDialog(&e.screen, "Go to line", "Go", &e.theme, func(text string) {
		e.closeDialog()
		line, err := strconv.Atoi(text)
		if err != nil || line < 1 {
			e.statusMessage = "Invalid line number " + strconv.Quote(text)
			return
		}
		te.GoToLine(line)
	}, e.closeDialog))
}

func (e *Editor) insertLink(te *ui.TextEdit) {
	e.showDialog(ui.NewPromptDialog(&e.screen, "Link address", "OK", &e.theme, func(href string) {
		e.closeDialog()
		te.WrapSelection(func(s string) string {
			return markup.Link(s, href)
		})
	}, e.closeDialog))
}

func (e *Editor) paragraph(te *ui.TextEdit, style markup.ParagraphStyle) {
	var err error
	te.WrapSelection(func(s string) string {
		var wrapped string
		if wrapped, err = markup.Paragraph(s, style); err != nil {
			return s
		}
		return wrapped
	})
	if err != nil {
		e.showError(log.CatUI, "Could not apply paragraph style", err)
	}
}

func (e *Editor) removeFormatting(te *ui.TextEdit) {
	if te.HasSelection() {
		te.WrapSelection(markup.StripTags)
		return
	}
	te.TransformAll(func(b []byte) []byte {
		return []byte(markup.StripTags(string(b)))
	})
}

func (e *Editor) insertImage(te *ui.TextEdit) {
	title := "Insert image (" + strings.Join(markup.ImageFilter, " ") + ")"
	dialog := ui.NewFileSelectorDialog(&e.screen, title, true, &e.theme, func(files []string) {
		e.closeDialog()
		for _, path := range files {
			tag, err := markup.ImageTagFromFile(path)
			if err != nil {
				e.showError(log.CatFile, "Could not insert image", err)
				return
			}
			te.Insert(tag)
		}
	}, e.closeDialog)
	dialog.SetDirectory(e.cfg.ImageDir)
	e.showDialog(dialog)
}

func (e *Editor) toggleLineNumbers() {
	e.cfg.LineNumbers = !e.cfg.LineNumbers
	for i := 0; i < e.tabs.GetTabCount(); i++ {
		if te, ok := e.tabs.GetTab(i).Child.(*ui.TextEdit); ok {
			te.LineNumbers = e.cfg.LineNumbers
		}
	}
	if e.configPath != "" {
		if err := SaveSetting(e.configPath, "line_numbers", e.cfg.LineNumbers); err != nil {
			log.ErrorErr(log.CatConfig, "Failed to save setting", err, "key", "line_numbers")
		}
	}
}

func (e *Editor) togglePreview() {
	if e.previewShown {
		e.panel.Unsplit()
	} else {
		e.panel.Split(ui.PanelKindSplitHor, e.preview, 60)
	}
	e.previewShown = !e.previewShown
	e.layout()
	e.changeFocus(e.panel)
}

func (e *Editor) buildMenus() {
	fileMenu := ui.NewMenu("File", 0, &e.theme)
	fileMenu.AddItems([]ui.Item{&ui.ItemEntry{Name: "New File", Shortcut: "Ctrl+N", Callback: e.NewDocument},
		&ui.ItemEntry{Name: "Open...", Shortcut: "Ctrl+O", Callback: e.open},
		&ui.ItemEntry{Name: "Save", Shortcut: "Ctrl+S", Callback: e.withTextEdit(e.save)},
		&ui.ItemEntry{Name: "Save As...", QuickChar: 5, Callback: e.withTextEdit(e.saveAs)},
		&ui.ItemEntry{Name: "Close", Callback: e.withTextEdit(e.closeTab)},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Exit", QuickChar: 1, Shortcut: "Ctrl+Q", Callback: e.exit}})

	editMenu := ui.NewMenu("Edit", 0, &e.theme)
	editMenu.AddItems([]ui.Item{&ui.ItemEntry{Name: "Cut", QuickChar: 2, Shortcut: "Ctrl+X", Callback: e.withTextEdit(func(te *ui.TextEdit) {
		e.copy(te, true)
	})}, &ui.ItemEntry{Name: "Copy", Shortcut: "Ctrl+C", Callback: e.withTextEdit(func(te *ui.TextEdit) {
		e.copy(te, false)
	})}, &ui.ItemEntry{Name: "Paste", Shortcut: "Ctrl+V", Callback: e.withTextEdit(e.paste)},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Select All", QuickChar: 7, Shortcut: "Ctrl+A", Callback: e.withTextEdit(func(te *ui.TextEdit) {
			te.SelectAll()
		})}})

	searchMenu := ui.NewMenu("Search", 0, &e.theme)
	searchMenu.AddItems([]ui.Item{&ui.ItemEntry{Name: "Find and Replace...", Shortcut: "Ctrl+F", Callback: e.withTextEdit(e.findReplace)},
		&ui.ItemEntry{Name: "Find Next", QuickChar: 5, Shortcut: "Ctrl+G", Callback: e.withTextEdit(e.findNext)},
		&ui.ItemEntry{Name: "Go to line...", Shortcut: "Ctrl+L", Callback: e.withTextEdit(e.goToLine)}})

	paragraphMenu := ui.NewMenu("Paragraph", 0, &e.theme)
	for _, style := range []markup.ParagraphStyle{markup.ParagraphStandard, markup.ParagraphHeading1,
		markup.ParagraphHeading2, markup.ParagraphHeading3, markup.ParagraphHeading4, markup.ParagraphMonospace} {
		quickChar := 0
		if strings.HasPrefix(style.String(), "Heading") {
			quickChar = len("Heading ") // The digit
		}
		paragraphMenu.AddItem(&ui.ItemEntry{Name: style.String(), QuickChar: quickChar, Callback: e.withTextEdit(func(te *ui.TextEdit) {
			e.paragraph(te, style)
		})})
	}

	wrapWith := func(f markup.Format) func() {
		return e.withTextEdit(func(te *ui.TextEdit) {
			te.WrapSelection(func(s string) string {
				return markup.Wrap(s, f)
			})
		})
	}

	formatMenu := ui.NewMenu("Format", 1, &e.theme)
	formatMenu.AddItems([]ui.Item{&ui.ItemEntry{Name: "Bold", Shortcut: "Ctrl+B", Callback: wrapWith(markup.Bold)},
		&ui.ItemEntry{Name: "Italic", Callback: wrapWith(markup.Italic)},
		&ui.ItemEntry{Name: "Underline", Shortcut: "Ctrl+U", Callback: wrapWith(markup.Underline)},
		&ui.ItemEntry{Name: "Strikeout", Callback: wrapWith(markup.Strikeout)},
		&ui.ItemEntry{Name: "Link...", Shortcut: "Ctrl+K", Callback: e.withTextEdit(e.insertLink)},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Remove formatting", Callback: e.withTextEdit(e.removeFormatting)},
		&ui.ItemEntry{Name: "Linkify", QuickChar: 1, Callback: e.withTextEdit(func(te *ui.TextEdit) {
			te.TransformAll(func(b []byte) []byte {
				return []byte(markup.Linkify(string(b)))
			})
		})},
		&ui.ItemEntry{Name: "Insert image...", QuickChar: 7, Callback: e.withTextEdit(e.insertImage)}})

	viewMenu := ui.NewMenu("View", 0, &e.theme)
	viewMenu.AddItems([]ui.Item{&ui.ItemEntry{Name: "Line numbers", QuickChar: 0, Callback: e.toggleLineNumbers},
		&ui.ItemEntry{Name: "Text preview", QuickChar: 5, Shortcut: "Ctrl+P", Callback: e.togglePreview},
		&ui.ItemEntry{Name: "CRLF line endings", QuickChar: 0, Callback: e.withTextEdit(func(te *ui.TextEdit) {
			te.ChangeLineDelimiters(!te.IsCRLF)
		})}})

	for _, m := range []*ui.Menu{fileMenu, editMenu, searchMenu, formatMenu, paragraphMenu, viewMenu} {
		for _, item := range m.Items {
			if entry, ok := item.(*ui.ItemEntry); ok {
				entry.Callback = e.afterMenu(entry.Callback)
			}
		}
		e.bar.AddMenu(m)
	}
}

// afterMenu returns f preceded by returning focus to the documents, so that
// callbacks opening a dialog leave it focused.
func (e *Editor) afterMenu(f func()) func() {
	return func() {
		if e.dialog == nil {
			e.focusEditor()
		}
		f()
	}
}

func (e *Editor) layout() {
	width, height := e.screen.Size()
	e.bar.SetPos(0, 0)
	e.bar.SetSize(width, 1)
	e.panel.SetPos(0, 1)
	e.panel.SetSize(width, max(height-2, 0))
	e.status.SetPos(0, height-1)
	e.status.SetSize(width, 1)
	e.layoutDialog()
}

// layoutDialog centers the dialog at its minimum size.
func (e *Editor) layoutDialog() {
	if e.dialog == nil {
		return
	}
	width, height := e.screen.Size()
	minWidth, minHeight := e.dialog.GetMinSize()
	e.dialog.SetSize(minWidth, minHeight)
	dialogWidth, dialogHeight := e.dialog.GetSize()
	e.dialog.SetPos(width/2-dialogWidth/2, height/2-dialogHeight/2)
}

// Draw renders the whole editor to the screen.
func (e *Editor) Draw() {
	s := e.screen
	s.Clear()

	width, height := s.Size()
	ui.DrawRect(s, 0, 0, width, height, '▚', tcell.Style{}.Foreground(tcell.ColorGrey).Background(tcell.ColorBlack))

	te := e.currentTextEdit()
	if e.previewShown {
		e.preview.Text = ""
		if te != nil {
			e.preview.Text = markup.StripTags(te.String())
		}
	}

	if e.tabs.GetTabCount() > 0 {
		e.panel.Draw(s)
	} else if e.previewShown {
		e.preview.Draw(s)
	}

	switch {
	case e.statusMessage != "":
		e.status.Text = e.statusMessage
	case te != nil:
		e.status.Text = te.StatusLine()
	default:
		e.status.Text = "Ctrl+N new file, Ctrl+O open, Esc menu"
	}
	e.status.Draw(s)

	e.bar.Draw(s)
	if e.dialog != nil {
		e.dialog.Draw(s)
	}
	s.Show()
}

// HandleEvent processes one event. It returns false once the editor should
// exit.
func (e *Editor) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventResize:
		e.layout()
		e.screen.Sync()
	case *tcell.EventInterrupt:
		if reload, ok := ev.Data().(reloadEvent); ok {
			e.Reload(reload.path)
		}
	case *tcell.EventKey:
		e.statusMessage = ""
		e.handleKey(ev)
	}
	return !e.quit
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	if e.dialog != nil {
		e.dialog.HandleEvent(ev)
		return
	}

	if ev.Key() == tcell.KeyEscape {
		if e.focused == ui.Component(e.bar) {
			e.focusEditor()
		} else {
			e.changeFocus(e.bar)
		}
		return
	}

	if e.bar.HandleEvent(ev) {
		return
	}
	if e.focused != ui.Component(e.bar) {
		e.focused.HandleEvent(ev)
	}
}

// Run draws the editor and processes events until it exits.
func (e *Editor) Run() {
	for {
		e.Draw()
		ev := e.screen.PollEvent()
		if ev == nil || !e.HandleEvent(ev) {
			return
		}
	}
}
