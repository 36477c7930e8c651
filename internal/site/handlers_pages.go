package site

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/dgallion1/folio/internal/render"
	"github.com/dgallion1/folio/internal/store"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	about, err := s.content.About(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "home", page{
		Title:  about.Name,
		Active: "/",
		Data:   homeView{About: about},
	})
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	tree := s.content.Skills(r.Context())
	s.render(w, r, http.StatusOK, "skills", page{
		Title:  "Skills",
		Active: "/skills",
		Data: skillsView{
			Intro:      s.site.Intro("skills"),
			Categories: render.RenderSkills(tree),
		},
	})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects := s.content.Projects(r.Context())
	view := projectsView{Intro: s.site.Intro("projects"), Total: len(projects)}
	for _, p := range projects {
		if p.Highlight {
			view.Featured = append(view.Featured, p)
		} else {
			view.Others = append(view.Others, p)
		}
	}
	s.render(w, r, http.StatusOK, "projects", page{
		Title:  "Projects",
		Active: "/projects",
		Data:   view,
	})
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.content.Project(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	view := projectView{Project: project}
	for _, sec := range project.Sections() {
		view.Sections = append(view.Sections, sectionView{
			Title:  sec.Title,
			Blocks: s.renderer.RenderNodes(sec.Nodes),
		})
	}
	s.render(w, r, http.StatusOK, "project", page{
		Title:  project.Title,
		Active: "/projects",
		Data:   view,
	})
}

func (s *Server) handlePosts(kind store.Kind) http.HandlerFunc {
	info := kinds[kind]
	base := "/" + string(kind)
	return func(w http.ResponseWriter, r *http.Request) {
		posts := s.content.Posts(r.Context(), kind)
		view := postsView{
			Heading: info.Heading,
			Intro:   s.site.Intro(string(kind)),
			Base:    base,
			Noun:    info.Noun,
			Posts:   make([]postCard, 0, len(posts)),
		}
		for _, p := range posts {
			view.Posts = append(view.Posts, postCard{
				Post:    p,
				Reading: readingTime(p, s.renderer.RenderNodes(p.Content)),
			})
		}
		s.render(w, r, http.StatusOK, "posts", page{
			Title:  info.Heading,
			Active: base,
			Data:   view,
		})
	}
}

func (s *Server) handlePost(kind store.Kind) http.HandlerFunc {
	info := kinds[kind]
	base := "/" + string(kind)
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := s.content.Post(r.Context(), kind, chi.URLParam(r, "slug"))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		blocks := s.renderer.RenderNodes(post.Content)
		s.render(w, r, http.StatusOK, "post", page{
			Title:  post.Title,
			Active: base,
			Data: postView{
				Post:    post,
				Blocks:  blocks,
				Reading: readingTime(post, blocks),
				Base:    base,
				Back:    info.Back,
			},
		})
	}
}

// handleStatic serves files from the public directory for paths no route
// matched. Directories are never listed.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if s.public != nil && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name != "" && fs.ValidPath(name) {
			if info, err := fs.Stat(s.public, name); err == nil && info.Mode().IsRegular() {
				http.ServeFileFS(w, r, s.public, name)
				return
			}
		}
	}
	s.notFound(w, r)
}

// fail maps a handler error to an error page.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	s.log.Error("page failed", "path", r.URL.Path, "error", err)
	s.renderError(w, r, http.StatusInternalServerError, "Something went wrong while loading this page.")
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.render(w, r, status, "error", page{
		Title: http.StatusText(status),
		Data:  errorView{Status: status, Message: msg},
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	p.Site = s.site
	body, err := s.tmpl.execute(name, p)
	if err != nil {
		s.log.Error("template failed", "page", name, "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
