package ui

import (
	"fmt"

	"github.com/fivemoreminix/qsource/ui/buffer"
	"github.com/gdamore/tcell/v2"
)

// A Theme is a map of string names to styles. Themes can be passed by reference to components
// to set their styles. Some components will depend upon the basic keys, but most components
// may use keys specific to their component. If a theme value cannot be found, then the
// `DefaultTheme` value will be used, instead. An updated list of theme keys can be found on
// the default theme.
type Theme map[string]tcell.Style

func (theme *Theme) GetOrDefault(key string) tcell.Style {
	if theme != nil {
		if val, ok := (*theme)[key]; ok {
			return val
		}
	}

	if val, ok := DefaultTheme[key]; ok {
		return val
	} else {
		panic(fmt.Sprintf("key \"%v\" not present in default theme", key))
	}
}

// htmlThemeKeys maps each highlighted construct to its theme key.
var htmlThemeKeys = [buffer.LastConstruct + 1]string{
	buffer.Entity:  "HTMLEntity",
	buffer.Tag:     "HTMLTag",
	buffer.Comment: "HTMLComment",
}

// HTMLHighlighter returns a highlighter whose format table is seeded from
// the theme's HTML keys.
func (theme *Theme) HTMLHighlighter() *buffer.HTMLHighlighter {
	h := buffer.NewHTMLHighlighter()
	for c, key := range htmlThemeKeys {
		h.SetFormat(buffer.Construct(c), theme.GetOrDefault(key))
	}
	return h
}

// DefaultTheme uses only the first 16 colors present in most colored terminals.
var DefaultTheme = Theme{
	"Normal":           tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"Button":           tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
	"InputField":       tcell.Style{}.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	"Label":            tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"MenuBar":          tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"MenuBarSelected":  tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"Menu":             tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"MenuSelected":     tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"QuickChar":        tcell.Style{}.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack),
	"StatusBar":        tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"Tab":              tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"TabContainer":     tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"TabSelected":      tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"TextEdit":         tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"TextEditColumn":   tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorGray),
	"TextEditSelected": tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"HTMLEntity":       tcell.Style{}.Foreground(tcell.ColorDarkRed).Background(tcell.ColorBlack),
	"HTMLTag":          tcell.Style{}.Foreground(tcell.ColorDarkMagenta).Background(tcell.ColorBlack).Bold(true),
	"HTMLComment":      tcell.Style{}.Foreground(tcell.ColorGray).Background(tcell.ColorBlack).Italic(true),
	"Window":           tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"WindowHeader":     tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
}
