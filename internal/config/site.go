package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// NavItem is one entry of the top navigation bar.
type NavItem struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

// Site holds the identity shown in the page chrome.
type Site struct {
	Owner     string    `yaml:"owner"`
	Title     string    `yaml:"title"`
	Tagline   string    `yaml:"tagline"`
	Footer    string    `yaml:"footer"`
	Copyright int       `yaml:"copyright_year"`
	Nav       []NavItem `yaml:"nav"`

	// Page intros for the list pages, keyed by route name.
	Intros map[string]string `yaml:"intros"`
}

// DefaultSite is used when no site file exists.
func DefaultSite() Site {
	return Site{
		Owner:     "Portfolio Owner",
		Title:     "Portfolio",
		Copyright: time.Now().Year(),
		Nav: []NavItem{
			{Label: "Home", Path: "/"},
			{Label: "Skills", Path: "/skills"},
			{Label: "Projects", Path: "/projects"},
			{Label: "Publications", Path: "/publications"},
			{Label: "Blogs", Path: "/blogs"},
		},
		Intros: map[string]string{
			"projects":     "Explore my portfolio of projects.",
			"blogs":        "Thoughts, tutorials and notes.",
			"publications": "Research insights and academic publications.",
			"skills":       "Technologies and methods I work with.",
		},
	}
}

// LoadSite reads the YAML site file at path. A missing file yields
// DefaultSite; fields left empty in the file keep their defaults.
func LoadSite(path string) (Site, error) {
	site := DefaultSite()
	if path == "" {
		return site, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return site, fmt.Errorf("read site file: %w", err)
	}

	var file Site
	if err := yaml.Unmarshal(data, &file); err != nil {
		return site, fmt.Errorf("parse site file %s: %w", path, err)
	}
	return site.merge(file), nil
}

func (s Site) merge(o Site) Site {
	if o.Owner != "" {
		s.Owner = o.Owner
	}
	if o.Title != "" {
		s.Title = o.Title
	}
	if o.Tagline != "" {
		s.Tagline = o.Tagline
	}
	if o.Footer != "" {
		s.Footer = o.Footer
	}
	if o.Copyright > 0 {
		s.Copyright = o.Copyright
	}
	if len(o.Nav) > 0 {
		s.Nav = o.Nav
	}
	for k, v := range o.Intros {
		s.Intros[k] = v
	}
	return s
}

// Intro returns the introduction text for a list page.
func (s Site) Intro(name string) string {
	return s.Intros[name]
}
