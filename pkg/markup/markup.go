// Package markup implements the formatting commands of the editor as edits of
// HTML source text.
package markup

import (
	"fmt"
	"html"

	strip "github.com/grokify/html-strip-tags-go"
)

// A Format is a character format that is applied by wrapping text in a tag.
type Format uint8

const (
	Bold Format = iota
	Italic
	Underline
	Strikeout
)

var formatTags = [...]string{
	Bold:      "b",
	Italic:    "i",
	Underline: "u",
	Strikeout: "s",
}

// Tag returns the element name of the Format.
func (f Format) Tag() string {
	if int(f) < len(formatTags) {
		return formatTags[f]
	}
	return ""
}

// Wrap encloses text in the element of f. Unknown formats return text as is.
func Wrap(text string, f Format) string {
	tag := f.Tag()
	if tag == "" {
		return text
	}
	return "<" + tag + ">" + text + "</" + tag + ">"
}

// Link makes text an anchor to href. An empty href returns text unchanged,
// which is how a link is removed.
func Link(text, href string) string {
	if href == "" {
		return text
	}
	return `<a href="` + html.EscapeString(href) + `">` + text + `</a>`
}

// A ParagraphStyle is one of the block formats offered by the paragraph menu.
type ParagraphStyle uint8

const (
	ParagraphStandard ParagraphStyle = iota
	ParagraphHeading1
	ParagraphHeading2
	ParagraphHeading3
	ParagraphHeading4
	ParagraphMonospace
)

var paragraphNames = [...]string{
	ParagraphStandard:  "Standard",
	ParagraphHeading1:  "Heading 1",
	ParagraphHeading2:  "Heading 2",
	ParagraphHeading3:  "Heading 3",
	ParagraphHeading4:  "Heading 4",
	ParagraphMonospace: "Monospace",
}

func (p ParagraphStyle) String() string {
	if int(p) < len(paragraphNames) {
		return paragraphNames[p]
	}
	return fmt.Sprintf("ParagraphStyle(%d)", p)
}

// Paragraph encloses text in the block element of style p.
func Paragraph(text string, p ParagraphStyle) (string, error) {
	var tag string
	switch p {
	case ParagraphStandard:
		tag = "p"
	case ParagraphHeading1, ParagraphHeading2, ParagraphHeading3, ParagraphHeading4:
		tag = fmt.Sprintf("h%d", p-ParagraphHeading1+1)
	case ParagraphMonospace:
		tag = "pre"
	default:
		return "", fmt.Errorf("unknown paragraph style %d", p)
	}
	return "<" + tag + ">" + text + "</" + tag + ">", nil
}

// StripTags removes all formatting from source, leaving its text. Entities
// are kept, so the result is still valid source.
func StripTags(source string) string {
	return strip.StripTags(source)
}
