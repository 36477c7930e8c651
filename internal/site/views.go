package site

import (
	"github.com/dgallion1/folio/internal/config"
	"github.com/dgallion1/folio/internal/content"
	"github.com/dgallion1/folio/internal/render"
	"github.com/dgallion1/folio/internal/store"
)

// page is the root value every template receives.
type page struct {
	Site   config.Site
	Title  string
	Active string
	Data   any
}

type homeView struct {
	About content.About
}

type skillsView struct {
	Intro      string
	Categories []render.SkillCategory
}

type projectsView struct {
	Intro    string
	Featured []content.Project
	Others   []content.Project
	Total    int
}

type sectionView struct {
	Title  string
	Blocks []render.Block
}

type projectView struct {
	Project  content.Project
	Sections []sectionView
}

// postCard is a post with its display reading time resolved.
type postCard struct {
	content.Post
	Reading string
}

type postsView struct {
	Heading string
	Intro   string
	Base    string
	Noun    string
	Posts   []postCard
}

type postView struct {
	Post    content.Post
	Blocks  []render.Block
	Reading string
	Base    string
	Back    string
}

type errorView struct {
	Status  int
	Message string
}

type kindInfo struct {
	Heading string
	Noun    string
	Back    string
}

var kinds = map[store.Kind]kindInfo{
	store.KindBlog:        {Heading: "Blog", Noun: "blog posts", Back: "Back to Blogs"},
	store.KindPublication: {Heading: "Research Publications", Noun: "publications", Back: "Back to Publications"},
}

// readingTime prefers the author-provided label and falls back to an
// estimate from the rendered content.
func readingTime(p content.Post, blocks []render.Block) string {
	if p.ReadingTime != "" {
		return p.ReadingTime
	}
	return render.ReadingTimeLabel(blocks)
}
