package markup

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	assert.Equal(t, "<b>x</b>", Wrap("x", Bold))
	assert.Equal(t, "<i>x</i>", Wrap("x", Italic))
	assert.Equal(t, "<u>x</u>", Wrap("x", Underline))
	assert.Equal(t, "<s>x</s>", Wrap("x", Strikeout))
	assert.Equal(t, "x", Wrap("x", Format(42)))
}

func TestLink(t *testing.T) {
	assert.Equal(t, `<a href="https://a.org/?q=1&amp;r=2">site</a>`, Link("site", "https://a.org/?q=1&r=2"))
	assert.Equal(t, "site", Link("site", ""))
}

func TestParagraph(t *testing.T) {
	tests := []struct {
		style ParagraphStyle
		want  string
	}{
		{ParagraphStandard, "<p>t</p>"},
		{ParagraphHeading1, "<h1>t</h1>"},
		{ParagraphHeading4, "<h4>t</h4>"},
		{ParagraphMonospace, "<pre>t</pre>"},
	}
	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			got, err := Paragraph("t", tt.style)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Paragraph("t", ParagraphStyle(99))
	assert.Error(t, err)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "bold &amp; plain", StripTags("<b>bold</b> &amp; <span class=\"x\">plain</span>"))
}

func TestLinkify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"email after space",
			"<p>mail me@example.com now</p>",
			`<p>mail <a href="mailto:me@example.com">me@example.com</a> now</p>`,
		},
		{
			"url after space",
			"<p>see http://x.org/a</p>",
			`<p>see <a href="http://x.org/a">http://x.org/a</a></p>`,
		},
		{
			"url after span",
			"<span style='x'>ftp://h/f</span>",
			`<span style='x'><a href="ftp://h/f">ftp://h/f</a></span>`,
		},
		{
			"existing anchor",
			`<a href="http://x.org">http://x.org</a>`,
			`<a href="http://x.org">http://x.org</a>`,
		},
		{
			"nothing to link",
			"<p>plain text</p>",
			"<p>plain text</p>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Linkify(tt.in))
		})
	}
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestImageTag(t *testing.T) {
	tag, err := ImageTag("dot.png", pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tag, `<img src="data:image/png;base64,`), tag)
	assert.True(t, strings.HasSuffix(tag, `" alt="dot.png" />`), tag)

	_, err = ImageTag("notes.txt", []byte("just some text"))
	assert.True(t, errors.Is(err, ErrNotImage), "got %v", err)
}

func TestImageTagFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	tag, err := ImageTagFromFile(path)
	require.NoError(t, err)
	assert.Contains(t, tag, `alt="pic.png"`)

	_, err = ImageTagFromFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
