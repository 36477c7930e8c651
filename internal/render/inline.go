package render

import (
	"html/template"
	"regexp"
	"strings"
)

var boldSpan = regexp.MustCompile(`\*\*(.*?)\*\*`)

// FormatInline applies the inline markup subset of text content: every
// "**X**" pair becomes <strong>X</strong> (shortest match, not across lines,
// an unpaired "**" stays literal), then every newline becomes <br />.
//
// Content files are author-controlled, so the result is trusted markup and
// is not escaped.
func FormatInline(text string) template.HTML {
	out := boldSpan.ReplaceAllString(text, "<strong>$1</strong>")
	out = strings.ReplaceAll(out, "\n", "<br />")
	return template.HTML(out)
}

// NormalizePath maps a repository-relative asset path ("public/img/x.png")
// to a web-root path ("/img/x.png"). Any other URL is returned unchanged.
func NormalizePath(url string) string {
	if rest, ok := strings.CutPrefix(url, "public/"); ok {
		return "/" + rest
	}
	return url
}
