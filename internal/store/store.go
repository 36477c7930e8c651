package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/folio/internal/content"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when no document matches a slug.
var ErrNotFound = errors.New("not found")

// Kind names a collection of slug-addressed documents. Its value is also the
// collection's directory under the content root.
type Kind string

const (
	KindProject     Kind = "projects"
	KindBlog        Kind = "blogs"
	KindPublication Kind = "publications"
)

// Kinds lists every document collection.
var Kinds = []Kind{KindProject, KindBlog, KindPublication}

// ParseKind resolves a collection name such as "blogs".
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

const (
	aboutFile  = "home/about.json"
	skillsFile = "skills/skills.json"
)

// Store loads content documents from a directory tree. Every call reads the
// filesystem; nothing is cached between calls.
type Store struct {
	fsys        fs.FS
	log         *slog.Logger
	concurrency int
}

// New creates a Store reading from fsys, whose root is the content
// directory. concurrency bounds parallel file decoding.
func New(fsys fs.FS, log *slog.Logger, concurrency int) *Store {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Store{fsys: fsys, log: log, concurrency: concurrency}
}

// Open creates a Store for the content directory at root.
func Open(root string, log *slog.Logger, concurrency int) *Store {
	return New(os.DirFS(root), log, concurrency)
}

// About loads the mandatory about document. Unlike the collections, a
// missing or invalid file is an error.
func (s *Store) About(ctx context.Context) (content.About, error) {
	var about content.About
	if err := ctx.Err(); err != nil {
		return about, err
	}
	data, err := fs.ReadFile(s.fsys, aboutFile)
	if err != nil {
		return about, fmt.Errorf("read about: %w", err)
	}
	if err := json.Unmarshal(data, &about); err != nil {
		return about, fmt.Errorf("decode %s: %w", aboutFile, err)
	}
	if err := about.Validate(); err != nil {
		return about, fmt.Errorf("invalid %s: %w", aboutFile, err)
	}
	return about, nil
}

// Skills loads the skills tree. Any failure is logged and yields an empty
// tree.
func (s *Store) Skills(ctx context.Context) *content.SkillTree {
	tree := &content.SkillTree{}
	if ctx.Err() != nil {
		return tree
	}
	data, err := fs.ReadFile(s.fsys, skillsFile)
	if err != nil {
		s.log.Warn("error reading skills data", "file", skillsFile, "error", err)
		return tree
	}
	if err := json.Unmarshal(data, tree); err != nil {
		s.log.Warn("error decoding skills data", "file", skillsFile, "error", err)
		return &content.SkillTree{}
	}
	return tree
}

// Projects returns all projects, newest first.
func (s *Store) Projects(ctx context.Context) []content.Project {
	return loadDir[content.Project](ctx, s, KindProject)
}

// Posts returns all blog posts or publications, newest first. Any other kind
// yields an empty list.
func (s *Store) Posts(ctx context.Context, kind Kind) []content.Post {
	if kind != KindBlog && kind != KindPublication {
		return []content.Post{}
	}
	return loadDir[content.Post](ctx, s, kind)
}

// Project returns the project whose id is slug.
func (s *Store) Project(ctx context.Context, slug string) (content.Project, error) {
	return find(s.Projects(ctx), KindProject, slug)
}

// Post returns the blog post or publication whose id is slug.
func (s *Store) Post(ctx context.Context, kind Kind, slug string) (content.Post, error) {
	return find(s.Posts(ctx, kind), kind, slug)
}

// Slugs lists the ids of every document of kind, in list order.
func (s *Store) Slugs(ctx context.Context, kind Kind) []string {
	var out []string
	switch kind {
	case KindProject:
		for _, p := range s.Projects(ctx) {
			out = append(out, p.Slug())
		}
	default:
		for _, p := range s.Posts(ctx, kind) {
			out = append(out, p.Slug())
		}
	}
	return out
}

type document interface {
	Slug() string
	SortDate() time.Time
	validation.Validatable
}

func find[T document](docs []T, kind Kind, slug string) (T, error) {
	for _, d := range docs {
		if d.Slug() == slug {
			return d, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", kind, slug, ErrNotFound)
}

// loadDir decodes every .json file of a collection directory. A missing or
// unreadable directory yields an empty list; a file that cannot be read,
// decoded or validated is skipped. Both cases are logged.
func loadDir[T document](ctx context.Context, s *Store, kind Kind) []T {
	dir := string(kind)
	log := s.log.With("dir", dir)

	entries, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		log.Warn("error reading content directory", "error", err)
		return []T{}
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.ToLower(path.Ext(name)) != ".json" {
			continue
		}
		names = append(names, name)
	}

	loaded := make([]*T, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := decodeFile[T](s.fsys, path.Join(dir, name))
			if err != nil {
				log.Warn("skipping content file", "file", name, "error", err)
				return nil
			}
			loaded[i] = &doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("loading cancelled", "error", err)
		return []T{}
	}

	docs := make([]T, 0, len(loaded))
	for _, d := range loaded {
		if d != nil {
			docs = append(docs, *d)
		}
	}
	sortNewestFirst(docs)
	return docs
}

func decodeFile[T document](fsys fs.FS, name string) (T, error) {
	var doc T
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode: %w", err)
	}
	doc = withFallbackTitle(doc, name)
	if err := doc.Validate(); err != nil {
		return doc, fmt.Errorf("invalid: %w", err)
	}
	return doc, nil
}

// withFallbackTitle fills an empty title from the file name.
func withFallbackTitle[T document](doc T, name string) T {
	switch d := any(&doc).(type) {
	case *content.Project:
		if d.Title == "" {
			d.Title = content.TitleFromFilename(name)
		}
	case *content.Post:
		if d.Title == "" {
			d.Title = content.TitleFromFilename(name)
		}
	}
	return doc
}

// sortNewestFirst orders documents by date, newest first. Undated documents
// go last; ties keep directory order.
func sortNewestFirst[T document](docs []T) {
	sort.SliceStable(docs, func(i, j int) bool {
		di, dj := docs[i].SortDate(), docs[j].SortDate()
		if di.IsZero() {
			return false
		}
		if dj.IsZero() {
			return true
		}
		return di.After(dj)
	})
}
