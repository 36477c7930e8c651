package site

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dgallion1/folio/internal/config"
	"github.com/dgallion1/folio/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

var fixture = fstest.MapFS{
	"home/about.json": file(`{
		"name": "Ada Lovelace",
		"main role": "Analyst",
		"roles": ["Mathematician", "Writer"],
		"bio": "First paragraph.\n\nSecond paragraph.",
		"experience": [{"title": "Engineer", "company": "Engines", "period": "1843", "description": "Notes\n🚀 Launched"}]
	}`),

	"skills/skills.json": file(`{"Machine_Learning": {"Deep": {"Vision": ["CNN"]}}, "Tools": ["git"]}`),

	"projects/engine.json": file(`{
		"id": "engine", "title": "Analytical Engine", "highlight": true, "date": "2024-01-01",
		"main_image": {"url": "public/assets/image/engine.png"},
		"topics": ["math", "hardware", "history"],
		"technologies": ["brass", "gears", "cards", "steam", "ink", "paper"],
		"problem_statement": [
			{"level": "A.", "text": "Context", "content": [{"type": "text", "text": "a **bold** claim"}]}
		]
	}`),

	"projects/loom.json": file(`{"id": "loom", "title": "Loom", "date": "2023-01-01"}`),

	"blogs/notes.json": file(`{
		"id": "notes", "title": "Notes", "author": "Ada",
		"start_date": "2024-02-01", "end_date": "2024-03-01",
		"content": [
			{"level": "A.", "text": "Intro", "content": [
				{"level": "1.", "text": "Detail", "content": [{"type": "text", "text": "deep"}]},
				{"type": "image", "url": "public/assets/image/fig.png", "caption": "Figure"}
			]},
			{"type": "table", "headers": ["k", "v"], "rows": [["a", "1"]]}
		],
		"references": {"2": "second", "1": "first"}
	}`),
}

var public = fstest.MapFS{
	"assets/image/engine.png": file("png"),
	"robots.txt":              file("User-agent: *"),
}

func newTestServer(t *testing.T, content fstest.MapFS) *Server {
	t.Helper()
	st := store.New(content, quietLog(), 2)
	srv, err := NewServer(st, Options{Public: public, Site: config.DefaultSite()}, quietLog())
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findAll returns the element nodes under n that satisfy match, in document
// order.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byClass(n *html.Node, class string) []*html.Node {
	return findAll(n, func(n *html.Node) bool { return hasClass(n, class) })
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t, fixture), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHome(t *testing.T) {
	rec := get(t, newTestServer(t, fixture), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)

	h1 := findAll(doc, func(n *html.Node) bool { return n.Data == "h1" })
	require.Len(t, h1, 1)
	assert.Equal(t, "Ada Lovelace", textOf(h1[0]))

	bio := byClass(doc, "bio")
	require.Len(t, bio, 1)
	assert.Len(t, findAll(bio[0], func(n *html.Node) bool { return n.Data == "p" }), 2)
	assert.Len(t, byClass(doc, "role-pill"), 2)
	assert.Len(t, byClass(doc, "indent"), 1)
}

func TestHome_MissingAboutIsServerError(t *testing.T) {
	rec := get(t, newTestServer(t, fstest.MapFS{}), "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "500")
}

func TestProjects_FeaturedSplitAndTagLimits(t *testing.T) {
	rec := get(t, newTestServer(t, fixture), "/projects")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)

	featured := byClass(doc, "featured-projects")
	require.Len(t, featured, 1)
	assert.Len(t, byClass(featured[0], "card"), 1)
	others := byClass(doc, "all-projects")
	require.Len(t, others, 1)
	assert.Len(t, byClass(others[0], "card"), 1)

	card := byClass(featured[0], "card")[0]
	assert.Len(t, byClass(card, "tag-topic"), 2)
	assert.Len(t, byClass(card, "tag-tech"), 4)
	more := byClass(card, "tag-more")
	require.Len(t, more, 2)
	assert.Equal(t, "+1 more", textOf(more[0]))
	assert.Equal(t, "+2 more", textOf(more[1]))

	imgs := findAll(card, func(n *html.Node) bool { return n.Data == "img" })
	require.Len(t, imgs, 1)
	assert.Equal(t, "/assets/image/engine.png", attr(imgs[0], "src"))
}

func TestProjectDetail_RendersSections(t *testing.T) {
	rec := get(t, newTestServer(t, fixture), "/projects/engine")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)

	titles := byClass(doc, "section-title")
	require.Len(t, titles, 1)
	assert.Equal(t, "Problem Statement", textOf(titles[0]))

	secs := byClass(doc, "sec-0")
	require.Len(t, secs, 1)
	strong := findAll(secs[0], func(n *html.Node) bool { return n.Data == "strong" })
	require.Len(t, strong, 1)
	assert.Equal(t, "bold", textOf(strong[0]))
}

func TestPostDetail_DepthStyling(t *testing.T) {
	rec := get(t, newTestServer(t, fixture), "/blogs/notes")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)

	sections := findAll(doc, func(n *html.Node) bool { return n.Data == "section" && hasClass(n, "sec") })
	require.Len(t, sections, 2)
	for _, s := range sections {
		depth := attr(s, "data-depth")
		assert.True(t, hasClass(s, "sec-"+depth), "section at depth %s has class %q", depth, attr(s, "class"))
	}

	badges := byClass(doc, "badge")
	require.Len(t, badges, 2)
	assert.True(t, hasClass(badges[0], "badge-primary"))
	assert.True(t, hasClass(badges[1], "badge-neutral"))
	assert.Len(t, findAll(doc, func(n *html.Node) bool { return n.Data == "h2" && hasClass(n, "hd-0") }), 1)
	assert.Len(t, findAll(doc, func(n *html.Node) bool { return n.Data == "h3" && hasClass(n, "hd-1") }), 1)

	figs := byClass(doc, "leaf-image")
	require.Len(t, figs, 1)
	img := findAll(figs[0], func(n *html.Node) bool { return n.Data == "img" })[0]
	assert.Equal(t, "/assets/image/fig.png", attr(img, "src"))

	assert.Len(t, findAll(doc, func(n *html.Node) bool { return n.Data == "td" }), 2)

	refs := byClass(doc, "ref-key")
	require.Len(t, refs, 2)
	assert.Equal(t, "[2]", textOf(refs[0]))
	assert.Equal(t, "[1]", textOf(refs[1]))

	assert.Contains(t, rec.Body.String(), "1 min read")
}

func TestPosts_ListAndEmptyState(t *testing.T) {
	srv := newTestServer(t, fixture)

	rec := get(t, srv, "/blogs")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	dates := byClass(doc, "date")
	require.Len(t, dates, 1)
	assert.Equal(t, "2024-02-01 - 2024-03-01", textOf(dates[0]))

	rec = get(t, srv, "/publications")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No publications found.")
}

func TestUnknownSlugIsNotFound(t *testing.T) {
	srv := newTestServer(t, fixture)
	for _, target := range []string{"/projects/nope", "/blogs/nope", "/publications/notes", "/no/such/page"} {
		rec := get(t, srv, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "does not exist", target)
	}
}

func TestStaticFiles(t *testing.T) {
	srv := newTestServer(t, fixture)

	rec := get(t, srv, "/assets/image/engine.png")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	rec = get(t, srv, "/robots.txt")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, srv, "/assets/image")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, srv, "/css/folio.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".sec-0")
}

func TestAPI(t *testing.T) {
	srv := newTestServer(t, fixture)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var list map[string][]struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list["projects"], 2)
	assert.Equal(t, "engine", list["projects"][0].ID)

	rec = get(t, srv, "/api/blogs/notes")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"references":{"2":"second","1":"first"}`)

	rec = get(t, srv, "/api/blogs/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, srv, "/api/recipes")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, srv, "/api/skills")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Index(rec.Body.String(), "Machine_Learning") < strings.Index(rec.Body.String(), "Tools"))
}

func TestSkillsPage(t *testing.T) {
	rec := get(t, newTestServer(t, fixture), "/skills")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)

	cats := byClass(doc, "skill-category")
	require.Len(t, cats, 2)
	assert.Contains(t, textOf(cats[0]), "Machine Learning")
	assert.Len(t, byClass(doc, "sk-nested"), 1)
}

func TestDevModeDisablesCaching(t *testing.T) {
	st := store.New(fixture, quietLog(), 1)
	srv, err := NewServer(st, Options{DevMode: true, Site: config.DefaultSite()}, quietLog())
	require.NoError(t, err)

	rec := get(t, srv, "/skills")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}
