package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/folio/internal/config"
	"github.com/dgallion1/folio/internal/render"
	"github.com/dgallion1/folio/internal/site"
	"github.com/dgallion1/folio/internal/store"
	"github.com/spf13/cobra"
)

func newRootCmd(cfg *config.Config, log *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio and blog site rendered from JSON content",
		Long: `folio serves a personal portfolio site built from JSON documents
(about, projects, blog posts, publications and skills) and can export the
whole site as static HTML.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *cfg, log)
		},
	}
	root.PersistentFlags().StringVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	root.PersistentFlags().StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "content directory holding the JSON documents")
	root.PersistentFlags().StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "directory of static files served at the site root")
	root.PersistentFlags().StringVar(&cfg.SiteFile, "site", cfg.SiteFile, "YAML file with the site identity")

	root.AddCommand(newServeCmd(cfg, log), newExportCmd(cfg, log))
	return root
}

// app holds the components shared by every subcommand.
type app struct {
	store     *store.Store
	server    *site.Server
	publicDir string
}

func newApp(cfg config.Config, log *slog.Logger) (*app, error) {
	siteCfg, err := config.LoadSite(cfg.SiteFile)
	if err != nil {
		return nil, err
	}

	st := store.Open(cfg.ContentDir, log, cfg.LoadConcurrency)

	a := &app{store: st}
	opts := site.Options{
		Renderer:    render.New(render.Options{MaxDepth: cfg.MaxRenderDepth}),
		Site:        siteCfg,
		CORSOrigins: cfg.CORSOrigins,
		DevMode:     cfg.DevMode,
	}
	if info, err := os.Stat(cfg.PublicDir); err == nil && info.IsDir() {
		a.publicDir = cfg.PublicDir
		opts.Public = os.DirFS(cfg.PublicDir)
	} else {
		log.Warn("public directory unavailable, static files disabled", "dir", cfg.PublicDir)
	}

	a.server, err = site.NewServer(st, opts, log)
	if err != nil {
		return nil, fmt.Errorf("init site: %w", err)
	}
	return a, nil
}
