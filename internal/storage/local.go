package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-git/go-billy/v5"

	"fileview/internal/fileerr"
)

// Local implements Filesystem on top of a go-billy filesystem.
// Paths handed to billy are absolute; use osfs.New("/") for the real disk
// and memfs.New() in tests.
// It is safe for concurrent use if the underlying billy filesystem is.
type Local struct {
	bfs         billy.Filesystem
	cacheDir    string
	documentDir string
	sources     map[string]Source
}

// Option configures a Local filesystem.
type Option func(*Local)

// WithCacheDir sets the preferred staging base directory.
func WithCacheDir(dir string) Option {
	return func(l *Local) { l.cacheDir = dir }
}

// WithDocumentDir sets the fallback staging base directory.
func WithDocumentDir(dir string) Option {
	return func(l *Local) { l.documentDir = dir }
}

// WithSource registers a reader for an opaque URI scheme.
func WithSource(src Source) Option {
	return func(l *Local) { l.sources[src.Scheme()] = src }
}

// NewLocal creates a Filesystem backed by bfs.
func NewLocal(bfs billy.Filesystem, opts ...Option) *Local {
	l := &Local{bfs: bfs, sources: map[string]Source{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ Filesystem = (*Local)(nil)

func (l *Local) CacheDir() string    { return l.cacheDir }
func (l *Local) DocumentDir() string { return l.documentDir }

// Exists reports whether uri can currently be read. A missing file is not
// an error.
func (l *Local) Exists(ctx context.Context, uri string) (bool, error) {
	_, err := l.Stat(ctx, uri)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Stat returns information about the file behind uri.
func (l *Local) Stat(ctx context.Context, uri string) (FileInfo, error) {
	if IsLocalURI(uri) {
		fi, err := l.bfs.Stat(PathFromURI(uri))
		if err != nil {
			return FileInfo{}, err
		}
		return FileInfo{URI: uri, Size: fi.Size(), ModTime: fi.ModTime(), IsDir: fi.IsDir()}, nil
	}
	src, err := l.source(uri)
	if err != nil {
		return FileInfo{}, err
	}
	return src.Stat(ctx, uri)
}

// MkdirAll creates path and any missing parents.
func (l *Local) MkdirAll(_ context.Context, path string) error {
	return l.bfs.MkdirAll(path, 0o755)
}

// Copy streams srcURI into dstPath, replacing any existing file. A partially
// written destination is removed on failure.
func (l *Local) Copy(ctx context.Context, srcURI, dstPath string) error {
	in, err := l.open(ctx, srcURI)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := l.bfs.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dstPath, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = l.bfs.Remove(dstPath)
		return fmt.Errorf("copy %s: %w", srcURI, err)
	}
	if err := out.Close(); err != nil {
		_ = l.bfs.Remove(dstPath)
		return fmt.Errorf("close %s: %w", dstPath, err)
	}
	return nil
}

// Remove deletes a local file. Missing files are ignored; opaque URIs are
// never deleted.
func (l *Local) Remove(_ context.Context, uri string) error {
	if !IsLocalURI(uri) {
		return fileerr.UnsupportedURI(uri, "only local files can be deleted")
	}
	err := l.bfs.Remove(PathFromURI(uri))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if IsLocalURI(uri) {
		return l.bfs.Open(PathFromURI(uri))
	}
	src, err := l.source(uri)
	if err != nil {
		return nil, err
	}
	return src.Open(ctx, uri)
}

func (l *Local) source(uri string) (Source, error) {
	scheme := SchemeOf(uri)
	if scheme == "" {
		return nil, fileerr.UnsupportedURI(uri, "URI has no scheme")
	}
	src, ok := l.sources[scheme]
	if !ok {
		return nil, fileerr.UnsupportedURI(uri, fmt.Sprintf("no provider registered for %s:// URIs", scheme))
	}
	return src, nil
}
