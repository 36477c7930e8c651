package main

import (
	"context"
	"log/slog"

	"github.com/dgallion1/folio/internal/config"
	"github.com/dgallion1/folio/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(cfg *config.Config, log *slog.Logger) *cobra.Command {
	var (
		out   string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole site as static HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), *cfg, log, out, watch)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "out", "output directory, replaced on every export")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-export when content changes")
	return cmd
}

func runExport(ctx context.Context, cfg config.Config, log *slog.Logger, out string, watch bool) error {
	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	exp := export.New(a.server, a.store, a.publicDir, cfg.ContentDir, cfg.LoadConcurrency, log)

	if _, err := exp.Export(ctx, out); err != nil {
		if !watch {
			return err
		}
		log.Error("initial export failed", "error", err)
	}
	if !watch {
		return nil
	}

	w, err := export.NewWatcher(cfg.ContentDir, export.DefaultDebounce, func(ctx context.Context) error {
		_, err := exp.Export(ctx, out)
		return err
	}, log)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
