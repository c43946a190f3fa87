package markup

import "regexp"

// An address or URL is only linked when it follows whitespace, or directly
// follows an opening tag other than an anchor (optionally with a span inside).
var (
	emailRe = regexp.MustCompile(`(<[^a][^>]+>(?:<span[^>]+>)?|\s)([a-zA-Z\d]+@[a-zA-Z\d]+\.[a-zA-Z]+)`)
	urlRe   = regexp.MustCompile(`(<[^a][^>]+>(?:<span[^>]+>)?|\s)((?:https?|ftp|file)://[^\s'"<>]+)`)
)

// Linkify turns e-mail addresses into mailto links and http, https, ftp and
// file URLs into links.
func Linkify(html string) string {
	html = emailRe.ReplaceAllString(html, `${1}<a href="mailto:${2}">${2}</a>`)
	html = urlRe.ReplaceAllString(html, `${1}<a href="${2}">${2}</a>`)
	return html
}
