package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/achievements"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/config"
	"github.com/abhisek/careerpath/internal/progress"
	"github.com/abhisek/careerpath/internal/roadmap"
	"github.com/abhisek/careerpath/internal/session"
	"github.com/abhisek/careerpath/internal/store"
)

// newLogger builds the slog handler named by the log config.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// catalogSource returns the configured milestone store. The returned close
// function is never nil.
func catalogSource(ctx context.Context, cfg config.Config, logger *slog.Logger) (catalog.Source, func(), error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		return &catalog.File{Path: cfg.Catalog.Path, Logger: logger}, func() {}, nil
	case config.SourcePostgres:
		pool, err := catalog.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewPostgres(pool, cfg.Catalog.Slug, logger), pool.Close, nil
	default:
		return catalog.Sample{}, func() {}, nil
	}
}

// env is everything a command needs to work on the learner's roadmap.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *store.Store
	session *session.Service
	closers []func()
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// openEnv loads config, opens the store and builds an unstarted session.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	eventRepo := st.EventRepo()
	svc := session.NewService(session.Options{
		EventRepo:    eventRepo,
		SnapshotRepo: st.SnapshotRepo(),
		Achievements: achievements.NewService(eventRepo, cfg.AchievementConfig()),
		Cache:        progress.NewCache(cfg.Cache.Size),
		Logger:       logger,
	})

	return &env{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		session: svc,
		closers: []func(){func() { st.Close() }},
	}, nil
}

// loadCatalog reads the catalog from the configured source.
func (e *env) loadCatalog(ctx context.Context) (*roadmap.Catalog, error) {
	src, closeSrc, err := catalogSource(ctx, e.cfg, e.logger)
	if err != nil {
		return nil, err
	}
	defer closeSrc()
	return src.Load(ctx)
}

// openSession is openEnv plus a started session. Commands that only read
// or record progress use it.
func openSession(cmd *cobra.Command) (*env, error) {
	e, err := openEnv(cmd)
	if err != nil {
		return nil, err
	}
	c, err := e.loadCatalog(cmd.Context())
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := e.session.Start(cmd.Context(), c); err != nil {
		e.Close()
		return nil, fmt.Errorf("start session: %w", err)
	}
	return e, nil
}
