package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "CONTENT_DIR", "PUBLIC_DIR", "CORS_ORIGINS", "MAX_RENDER_DEPTH", "LOAD_CONCURRENCY", "LOG_LEVEL", "DEV_MODE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "public/assets/page_data", cfg.ContentDir)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 16, cfg.MaxRenderDepth)
	assert.Equal(t, 8, cfg.LoadConcurrency)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("LOAD_CONCURRENCY", "-3")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 2*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 8, cfg.LoadConcurrency)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestValidate(t *testing.T) {
	base := Config{
		Port:            "8080",
		ContentDir:      "content",
		PublicDir:       "public",
		MaxRenderDepth:  16,
		LoadConcurrency: 1,
		LogLevel:        "info",
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.Port = "http"
	assert.Error(t, bad.Validate())

	bad = base
	bad.MaxRenderDepth = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.MaxRenderDepth = 65
	assert.Error(t, bad.Validate())

	bad = base
	bad.ContentDir = ""
	assert.Error(t, bad.Validate())

	bad = base
	bad.LogLevel = "loud"
	assert.Error(t, bad.Validate())
}

func TestLoadSite_MissingFileUsesDefaults(t *testing.T) {
	site, err := LoadSite(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSite().Nav, site.Nav)
	assert.Equal(t, time.Now().Year(), site.Copyright)
}

func TestLoadSite_MergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	data := `
owner: Ada Lovelace
title: Ada's Notes
copyright_year: 2024
intros:
  blogs: Long-form writing.
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	site, err := LoadSite(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", site.Owner)
	assert.Equal(t, "Ada's Notes", site.Title)
	assert.Equal(t, 2024, site.Copyright)
	assert.Equal(t, "Long-form writing.", site.Intro("blogs"))
	assert.NotEmpty(t, site.Intro("projects"))
	assert.Len(t, site.Nav, 5)
}

func TestLoadSite_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("owner: [unclosed"), 0o644))

	_, err := LoadSite(path)
	assert.Error(t, err)
}
