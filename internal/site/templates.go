package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/dgallion1/folio/internal/render"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Every page template is parsed together with the shared layout files and
// must define "content".
const (
	layoutGlob = "templates/layout/*.html"
	pageGlob   = "templates/pages/*.html"
)

type templates map[string]*template.Template

func parseTemplates() (templates, error) {
	pages, err := fs.Glob(templateFS, pageGlob)
	if err != nil {
		return nil, err
	}
	out := make(templates, len(pages))
	for _, p := range pages {
		name := strings.TrimSuffix(path.Base(p), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutGlob, p)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// execute renders page into a buffer so a failing template never leaves a
// half-written response.
func (t templates) execute(page string, data any) ([]byte, error) {
	tmpl, ok := t[page]
	if !ok {
		return nil, fmt.Errorf("unknown page template %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

var funcs = template.FuncMap{
	"dict":       dict,
	"take":       take,
	"more":       more,
	"join":       func(sep string, xs []string) string { return strings.Join(xs, sep) },
	"asset":      render.NormalizePath,
	"paragraphs": paragraphs,
	"lines":      lines,
	"indented":   indented,
	"heading":    heading,
}

// headingTags are the element names a Style may ask for.
var headingTags = map[string]bool{"h2": true, "h3": true, "h4": true, "h5": true, "h6": true}

// heading renders a section heading using the element named by its style.
// Unknown tags fall back to h6.
func heading(style render.Style, text string) template.HTML {
	tag := style.Tag
	if !headingTags[tag] {
		tag = "h6"
	}
	return template.HTML(fmt.Sprintf(`<%s class="%s">%s</%s>`,
		tag, template.HTMLEscapeString(style.Heading), template.HTMLEscapeString(text), tag))
}

// dict builds a map from alternating keys and values so a nested template
// can receive more than one argument.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

func take(n int, xs []string) []string {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}

func more(n int, xs []string) int {
	if len(xs) > n {
		return len(xs) - n
	}
	return 0
}

// paragraphs splits text on blank lines.
func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// lines splits text into trimmed, non-empty lines.
func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

var bulletMarks = []string{"🚀", "📊", "🧠", "🧭"}

// indented reports whether an experience line starts with a bullet emoji.
func indented(line string) bool {
	for _, m := range bulletMarks {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}
