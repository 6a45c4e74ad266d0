package app

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileview/internal/config"
	"fileview/internal/model"
	"fileview/internal/service"
)

type recordingViewer struct {
	opened []string
}

func (v *recordingViewer) Open(_ context.Context, localURI string, _ service.ViewerOptions) error {
	v.opened = append(v.opened, localURI)
	return nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Storage: config.StorageConfig{CacheDir: "/cache", DocumentDir: "/docs", StateDir: "/state"},
		Viewer:  config.ViewerConfig{SuppressChooser: true, Timeout: time.Second},
		Cache:   config.CacheConfig{Size: 4, TTL: time.Minute},
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNew_FileBackendEndToEnd(t *testing.T) {
	ctx := context.Background()
	bfs := memfs.New()
	require.NoError(t, util.WriteFile(bfs, "/home/u/report.pdf", []byte("%PDF-1.7"), 0o644))
	viewer := &recordingViewer{}

	a, err := New(ctx, testConfig(), discard(), prometheus.NewRegistry(),
		WithRootFilesystem(bfs), WithViewer(viewer))
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Backend.PingContext(ctx))
	assert.NotNil(t, a.Picker)

	d := model.FileDescriptor{URI: "file:///home/u/report.pdf", Name: "report.pdf", MimeType: "application/pdf"}
	require.NoError(t, a.Opener.Open(ctx, d))
	assert.Equal(t, []string{"file:///home/u/report.pdf"}, viewer.opened)

	_, err = a.Recent.SaveRecentFile(ctx, d)
	require.NoError(t, err)

	// A fresh App over the same filesystem sees the persisted list.
	b, err := New(ctx, testConfig(), discard(), prometheus.NewRegistry(),
		WithRootFilesystem(bfs), WithViewer(viewer))
	require.NoError(t, err)
	files, err := b.Recent.GetRecentFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, d.URI, files[0].URI)
}

func TestNew_MissingLocalFile(t *testing.T) {
	a, err := New(context.Background(), testConfig(), discard(), prometheus.NewRegistry(),
		WithRootFilesystem(memfs.New()), WithViewer(&recordingViewer{}))
	require.NoError(t, err)

	err = a.Opener.Open(context.Background(), model.FileDescriptor{URI: "file:///nope.pdf", Name: "nope.pdf"})
	assert.Error(t, err)
}

func TestNew_NoStateDir(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.StateDir = ""

	_, err := New(context.Background(), cfg, discard(), prometheus.NewRegistry(), WithRootFilesystem(memfs.New()))
	assert.Error(t, err)
}

func TestNew_PostgresBackend(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Database = config.DatabaseConfig{Host: "db", Port: "5432", User: "u", Name: "fileview"}

	mock.ExpectQuery("SELECT to_regclass").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectPing()
	mock.ExpectClose()

	a, err := New(context.Background(), cfg, discard(), prometheus.NewRegistry(),
		WithRootFilesystem(memfs.New()), WithViewer(&recordingViewer{}),
		func(o *options) { o.openDB = func(context.Context, config.DatabaseConfig) (*sql.DB, error) { return db, nil } })
	require.NoError(t, err)

	assert.NoError(t, a.Backend.PingContext(context.Background()))
	assert.NoError(t, a.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_MigrationFailureClosesDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Database = config.DatabaseConfig{Host: "db"}

	mock.ExpectQuery("SELECT to_regclass").WillReturnError(errors.New("permission denied"))
	mock.ExpectClose()

	a, err := New(context.Background(), cfg, discard(), prometheus.NewRegistry(),
		WithRootFilesystem(memfs.New()), WithViewer(&recordingViewer{}),
		func(o *options) { o.openDB = func(context.Context, config.DatabaseConfig) (*sql.DB, error) { return db, nil } })

	require.Error(t, err)
	assert.Nil(t, a)
	assert.NoError(t, mock.ExpectationsWereMet(), "the connection is closed on the error path")
}

func TestNew_StagingCache(t *testing.T) {
	a, err := New(context.Background(), testConfig(), discard(), prometheus.NewRegistry(),
		WithRootFilesystem(memfs.New()), WithViewer(&recordingViewer{}))
	require.NoError(t, err)
	assert.NotNil(t, a.Staging)

	cfg := testConfig()
	cfg.Cache.Size = 0
	b, err := New(context.Background(), cfg, discard(), prometheus.NewRegistry(),
		WithRootFilesystem(memfs.New()), WithViewer(&recordingViewer{}))
	require.NoError(t, err)
	assert.Nil(t, b.Staging)
}

func TestNew_PostgresConnectError(t *testing.T) {
	cfg := testConfig()
	cfg.Database = config.DatabaseConfig{Host: "db"}

	_, err := New(context.Background(), cfg, discard(), prometheus.NewRegistry(),
		WithRootFilesystem(memfs.New()),
		func(o *options) {
			o.openDB = func(context.Context, config.DatabaseConfig) (*sql.DB, error) { return nil, errors.New("refused") }
		})
	assert.ErrorContains(t, err, "failed to connect to database: refused")
}

func TestNew_DuplicateMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(context.Background(), testConfig(), discard(), reg, WithRootFilesystem(memfs.New()))
	require.NoError(t, err)

	_, err = New(context.Background(), testConfig(), discard(), reg, WithRootFilesystem(memfs.New()))
	assert.ErrorContains(t, err, "register metrics")
}
