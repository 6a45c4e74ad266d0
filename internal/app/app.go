// Package app wires configuration into the services shared by the HTTP API
// and the command line tool.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/prometheus/client_golang/prometheus"

	"fileview/internal/config"
	"fileview/internal/database"
	"fileview/internal/database/migration"
	"fileview/internal/desktop"
	"fileview/internal/model"
	"fileview/internal/repository"
	"fileview/internal/repository/file"
	"fileview/internal/repository/postgres"
	"fileview/internal/service"
	"fileview/internal/storage"
)

// Backend is a key-value store that can also report its health.
type Backend interface {
	repository.KeyValueStore
	PingContext(ctx context.Context) error
}

// App holds the wired services.
type App struct {
	Filesystem storage.Filesystem
	Backend    Backend
	Resolver   service.URIResolver
	// Staging is the materialization cache; nil when MATERIALIZE_CACHE_SIZE is 0.
	Staging    *service.CachedResolver
	Opener     service.FileOpener
	Recent     service.RecentFilesStore
	Picker     model.Picker
	Metrics    *service.Metrics

	closers []func() error
}

// Option customizes how an App is built.
type Option func(*options)

type options struct {
	root   billy.Filesystem
	viewer service.Viewer
	sharer service.Sharer
	picker model.Picker
	openDB func(context.Context, config.DatabaseConfig) (*sql.DB, error)
}

// WithRootFilesystem replaces the host filesystem, mainly for tests.
func WithRootFilesystem(bfs billy.Filesystem) Option {
	return func(o *options) { o.root = bfs }
}

// WithViewer replaces the desktop viewer.
func WithViewer(v service.Viewer) Option {
	return func(o *options) { o.viewer = v }
}

// WithPicker replaces the desktop file dialog.
func WithPicker(p model.Picker) Option {
	return func(o *options) { o.picker = p }
}

// WithSharer replaces the desktop sharer.
func WithSharer(s service.Sharer) Option {
	return func(o *options) { o.sharer = s }
}

// New builds every service from cfg. Collectors are registered with reg.
// Anything opened before a failure is closed again.
func New(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger, reg prometheus.Registerer, opts ...Option) (_ *App, err error) {
	o := options{root: osfs.New("/"), openDB: database.NewPostgres}
	for _, opt := range opts {
		opt(&o)
	}
	if o.viewer == nil {
		o.viewer = desktop.NewViewer(cfg.Viewer, desktop.WithViewerLogger(logger))
	}
	if o.sharer == nil {
		o.sharer = desktop.NewSharer(cfg.Viewer)
	}

	a := &App{}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	metrics, err := service.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	a.Metrics = metrics

	fsOpts := []storage.Option{
		storage.WithCacheDir(cfg.Storage.CacheDir),
		storage.WithDocumentDir(cfg.Storage.DocumentDir),
	}
	if cfg.MinIO.Enabled() {
		src, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("init minio source: %w", err)
		}
		fsOpts = append(fsOpts, storage.WithSource(src))
	}
	a.Filesystem = storage.NewLocal(o.root, fsOpts...)

	backend, err := a.openBackend(ctx, cfg, logger, o)
	if err != nil {
		return nil, err
	}
	a.Backend = backend

	resolver := service.NewURIResolver(a.Filesystem, logger)
	if cfg.Cache.Size > 0 {
		a.Staging = service.NewCachedResolver(resolver, a.Filesystem, cfg.Cache.Size, cfg.Cache.TTL, metrics)
		resolver = a.Staging
	}
	a.Resolver = resolver

	a.Opener = service.NewFileOpener(a.Filesystem, resolver, o.viewer, o.sharer,
		service.WithOpenerConfig(service.OpenerConfig{SuppressChooser: cfg.Viewer.SuppressChooser}),
		service.WithOpenerMetrics(metrics),
		service.WithOpenerLogger(logger),
	)
	a.Recent = service.NewRecentFilesStore(backend, logger, metrics)

	a.Picker = o.picker
	if a.Picker == nil {
		a.Picker = desktop.NewPicker(cfg.Viewer, a.Filesystem)
	}

	return a, nil
}

// openBackend picks Postgres when DB_HOST is set and the file store otherwise.
func (a *App) openBackend(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger, o options) (Backend, error) {
	if cfg.Database.Enabled() {
		db, err := o.openDB(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			return nil, err
		}
		return &postgresBackend{KVPostgres: postgres.NewKVPostgres(db), db: db}, nil
	}

	if cfg.Storage.StateDir == "" {
		return nil, fmt.Errorf("no state directory available for recent files")
	}
	return file.NewKVFile(o.root, filepath.ToSlash(cfg.Storage.StateDir)), nil
}

// Close releases every resource opened by New.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var _ repository.KeyLocker = (*postgresBackend)(nil)

type postgresBackend struct {
	*postgres.KVPostgres
	db *sql.DB
}

func (b *postgresBackend) PingContext(ctx context.Context) error {
	return b.db.PingContext(ctx)
}
