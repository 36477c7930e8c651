package config

import (
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	Port string

	// Content locations
	ContentDir string
	PublicDir  string
	SiteFile   string

	// HTTP
	CORSOrigins  []string
	DevMode      bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Rendering
	MaxRenderDepth  int
	LoadConcurrency int

	LogLevel string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		ContentDir: envOr("CONTENT_DIR", "public/assets/page_data"),
		PublicDir:  envOr("PUBLIC_DIR", "public"),
		SiteFile:   envOr("SITE_FILE", "site.yaml"),

		CORSOrigins:  envList("CORS_ORIGINS", []string{"*"}),
		DevMode:      envBool("DEV_MODE", false),
		ReadTimeout:  envDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: envDuration("WRITE_TIMEOUT", 30*time.Second),

		MaxRenderDepth:  envInt("MAX_RENDER_DEPTH", 16),
		LoadConcurrency: envInt("LOAD_CONCURRENCY", 8),

		LogLevel: strings.ToLower(envOr("LOG_LEVEL", "info")),
	}

	if cfg.LoadConcurrency <= 0 {
		cfg.LoadConcurrency = 8
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}

	return cfg
}

var portPattern = regexp.MustCompile(`^[0-9]{1,5}$`)

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, validation.Match(portPattern)),
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.PublicDir, validation.Required),
		validation.Field(&c.MaxRenderDepth, validation.Required, validation.Min(1), validation.Max(64)),
		validation.Field(&c.LoadConcurrency, validation.Min(1)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated variable, dropping blank entries.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
