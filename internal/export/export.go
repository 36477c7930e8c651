package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dgallion1/folio/internal/store"
	"golang.org/x/sync/errgroup"
)

// Source lists the slugs of each document collection.
type Source interface {
	Slugs(ctx context.Context, kind store.Kind) []string
}

// staticRoutes are exported regardless of content.
var staticRoutes = []string{"/", "/skills", "/projects", "/blogs", "/publications", "/css/folio.css"}

// notFoundRoute is requested to capture the site's 404 page.
const notFoundRoute = "/404.html"

// Exporter writes the whole site as static files by rendering every route
// through the site handler in-process.
type Exporter struct {
	handler     http.Handler
	source      Source
	publicDir   string
	contentDir  string
	concurrency int
	log         *slog.Logger
}

// Result summarizes one export run.
type Result struct {
	Pages    int
	Assets   int
	Duration time.Duration
}

// New creates an Exporter. publicDir is copied into every export and may be
// empty; contentDir is only guarded against being overwritten.
func New(handler http.Handler, source Source, publicDir, contentDir string, concurrency int, log *slog.Logger) *Exporter {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Exporter{
		handler:     handler,
		source:      source,
		publicDir:   publicDir,
		contentDir:  contentDir,
		concurrency: concurrency,
		log:         log,
	}
}

// Routes lists every page path of the site, including one per document slug.
func (e *Exporter) Routes(ctx context.Context) []string {
	routes := append([]string(nil), staticRoutes...)
	for _, kind := range store.Kinds {
		for _, slug := range e.source.Slugs(ctx, kind) {
			routes = append(routes, "/"+string(kind)+"/"+slug)
		}
	}
	return routes
}

// Export replaces the contents of outDir with the public directory and the
// rendered pages.
func (e *Exporter) Export(ctx context.Context, outDir string) (Result, error) {
	start := time.Now()
	var res Result

	if err := e.prepare(outDir); err != nil {
		return res, err
	}

	if e.publicDir != "" {
		n, err := copyDirContents(e.publicDir, outDir)
		if err != nil {
			return res, fmt.Errorf("copy public dir: %w", err)
		}
		res.Assets = n
	}

	routes := e.Routes(ctx)
	var pages atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, route := range routes {
		g.Go(func() error {
			if err := e.writeRoute(gctx, outDir, route, http.StatusOK); err != nil {
				return err
			}
			pages.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	// A 404.html shipped in the public dir takes precedence.
	if _, err := os.Stat(filepath.Join(outDir, notFoundRoute)); errors.Is(err, fs.ErrNotExist) {
		if err := e.writeRoute(ctx, outDir, notFoundRoute, http.StatusNotFound); err != nil {
			return res, err
		}
	}

	res.Pages = int(pages.Load())
	res.Duration = time.Since(start)
	e.log.Info("export complete",
		"out", outDir,
		"pages", res.Pages,
		"assets", res.Assets,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// prepare empties outDir, refusing to touch a directory that holds the
// public or content sources.
func (e *Exporter) prepare(outDir string) error {
	if strings.TrimSpace(outDir) == "" {
		return errors.New("output directory is required")
	}
	out, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}
	if out == filepath.Dir(out) {
		return fmt.Errorf("refusing to export into %s", out)
	}
	for _, src := range []struct{ name, dir string }{
		{"public", e.publicDir},
		{"content", e.contentDir},
	} {
		if src.dir == "" {
			continue
		}
		abs, err := filepath.Abs(src.dir)
		if err != nil {
			return fmt.Errorf("resolve %s dir: %w", src.name, err)
		}
		if within(out, abs) || within(abs, out) {
			return fmt.Errorf("output dir %s overlaps %s dir %s", out, src.name, abs)
		}
	}

	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("clean output dir: %w", err)
	}
	return os.MkdirAll(out, 0o755)
}

// within reports whether child is parent or lies below it.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (e *Exporter) writeRoute(ctx context.Context, outDir, route string, want int) error {
	req := httptest.NewRequest(http.MethodGet, route, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	if rec.Code != want {
		return fmt.Errorf("render %s: expected status %d, got %d", route, want, rec.Code)
	}

	dst := filepath.Join(outDir, filepath.FromSlash(pageFile(route)))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", route, err)
	}
	if err := os.WriteFile(dst, rec.Body.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", route, err)
	}
	e.log.Debug("exported page", "route", route, "file", dst)
	return nil
}

// pageFile maps a route to its output file: routes with an extension are
// written as-is, others become a directory index.
func pageFile(route string) string {
	clean := strings.TrimPrefix(path.Clean("/"+route), "/")
	if path.Ext(clean) != "" {
		return clean
	}
	return path.Join(clean, "index.html")
}

// copyDirContents recursively copies the files under src into dst and
// returns how many files were copied.
func copyDirContents(src, dst string) (int, error) {
	var n int
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, os.ModePerm); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(p, target); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
