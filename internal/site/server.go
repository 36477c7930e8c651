package site

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/dgallion1/folio/internal/config"
	"github.com/dgallion1/folio/internal/content"
	"github.com/dgallion1/folio/internal/render"
	"github.com/dgallion1/folio/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Content is the read side of the content store the site renders.
type Content interface {
	About(ctx context.Context) (content.About, error)
	Skills(ctx context.Context) *content.SkillTree
	Projects(ctx context.Context) []content.Project
	Posts(ctx context.Context, kind store.Kind) []content.Post
	Project(ctx context.Context, slug string) (content.Project, error)
	Post(ctx context.Context, kind store.Kind, slug string) (content.Post, error)
}

// Options configures a Server.
type Options struct {
	Renderer *render.Renderer
	// Public serves static files for paths no route matches. Nil disables
	// static serving.
	Public      fs.FS
	Site        config.Site
	CORSOrigins []string
	DevMode     bool
}

// Server is the HTTP server for the portfolio site.
type Server struct {
	router   chi.Router
	content  Content
	renderer *render.Renderer
	public   fs.FS
	site     config.Site
	tmpl     templates
	log      *slog.Logger
	opts     Options
}

// NewServer creates and configures the HTTP server.
func NewServer(src Content, opts Options, log *slog.Logger) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if opts.Renderer == nil {
		opts.Renderer = render.New(render.Options{})
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	s := &Server{
		content:  src,
		renderer: opts.Renderer,
		public:   opts.Public,
		site:     opts.Site,
		tmpl:     tmpl,
		log:      log,
		opts:     opts,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	if s.opts.DevMode {
		r.Use(NoCache)
	}

	r.Get("/health", s.handleHealth)

	// Pages.
	r.Get("/", s.handleHome)
	r.Get("/skills", s.handleSkills)
	r.Get("/projects", s.handleProjects)
	r.Get("/projects/{slug}", s.handleProject)
	for _, kind := range []store.Kind{store.KindBlog, store.KindPublication} {
		r.Get("/"+string(kind), s.handlePosts(kind))
		r.Get("/"+string(kind)+"/{slug}", s.handlePost(kind))
	}

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/css/*", http.StripPrefix("/css/", http.FileServerFS(static)))

	// Read-only JSON content API.
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		}).Handler)

		r.Get("/about", s.handleAPIAbout)
		r.Get("/skills", s.handleAPISkills)
		r.Get("/{kind}", s.handleAPIList)
		r.Get("/{kind}/{slug}", s.handleAPIGet)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			jsonError(w, "not found", http.StatusNotFound)
		})
	})

	r.NotFound(s.handleStatic)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
