package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/app"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/config"
)

// runApp opens the store, loads the catalog, and launches the TUI. A catalog
// that fails to load is shown as unavailable rather than aborting, so a
// watched file can be fixed while the app runs.
func runApp(cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := app.Options{
		Session:   e.session,
		EventRepo: e.store.EventRepo(),
		Logger:    e.logger,
	}

	c, err := e.loadCatalog(ctx)
	if err == nil {
		err = e.session.Start(ctx, c)
	}
	opts.LoadErr = err

	if e.cfg.Catalog.Watch && e.cfg.Catalog.Source == config.SourceFile {
		w := &catalog.Watcher{Path: e.cfg.Catalog.Path, Logger: e.logger}
		if c != nil {
			w.Current = c.Version()
		}
		reloads, werr := w.Start(ctx)
		if werr != nil {
			fmt.Fprintln(os.Stderr, "Catalog hot reload disabled:", werr)
		} else {
			opts.Reloads = reloads
		}
	} else if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	return app.Run(opts)
}
