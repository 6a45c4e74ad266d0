package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"fileview/internal/fileerr"
	"fileview/internal/storage"
)

// StagingDirName is the directory under the cache (or document) dir that
// receives materialized copies.
const StagingDirName = "file-viewer"

// URIResolver turns any readable URI into a local file:// URI.
type URIResolver interface {
	// EnsureLocalURI returns uri unchanged when it is already local. Otherwise
	// it copies the content into a fresh subdirectory of the staging
	// directory under a sanitized version of suggestedName and returns the
	// file:// URI of the copy.
	EnsureLocalURI(ctx context.Context, uri, suggestedName string) (string, error)
}

type uriResolver struct {
	fs     storage.Filesystem
	logger *slog.Logger
	now    func() time.Time
}

// NewURIResolver constructs a URIResolver over fs.
func NewURIResolver(fs storage.Filesystem, logger *slog.Logger) URIResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &uriResolver{fs: fs, logger: logger, now: time.Now}
}

func (r *uriResolver) EnsureLocalURI(ctx context.Context, uri, suggestedName string) (string, error) {
	if uri == "" {
		return "", fileerr.UnsupportedURI(uri, "missing file URI")
	}
	if storage.IsLocalURI(uri) {
		return uri, nil
	}

	base := r.fs.CacheDir()
	if base == "" {
		base = r.fs.DocumentDir()
	}
	if base == "" {
		return "", fileerr.NoWritableDirectory()
	}

	// Each copy gets its own directory so sources sharing a display name
	// never overwrite each other.
	stagingDir := path.Join(base, StagingDirName, randomHex())
	if err := r.fs.MkdirAll(ctx, stagingDir); err != nil {
		return "", fileerr.Materialization(uri, fmt.Errorf("create staging dir: %w", err))
	}

	name := SanitizeFileName(suggestedName)
	if isBlankName(name) {
		name = r.syntheticName()
	}
	dst := path.Join(stagingDir, name)

	if err := r.fs.Copy(ctx, uri, dst); err != nil {
		if fileerr.IsUnsupportedURI(err) {
			return "", err
		}
		return "", fileerr.Materialization(uri, err)
	}

	r.logger.Debug("file_materialized", "uri", uri, "dest", dst)
	return storage.LocalURI(dst), nil
}

func (r *uriResolver) syntheticName() string {
	return fmt.Sprintf("file-%d-%s", r.now().UnixMilli(), randomHex())
}

// randomHex returns 12 hex digits taken from a random UUID.
func randomHex() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:6])
}

// isBlankName reports whether name cannot be used as a file name: empty, or
// made only of dots so that it would resolve to a directory.
func isBlankName(name string) bool {
	return strings.Trim(name, ".") == ""
}

// SanitizeFileName collapses whitespace runs into a single space, replaces
// every character outside [A-Za-z0-9._ -] with '_' and trims the result.
// It is idempotent. An empty result means no usable name was given.
func SanitizeFileName(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	var b strings.Builder
	b.Grow(len(collapsed))
	for _, c := range collapsed {
		if isSafeNameRune(c) {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	return strings.TrimSpace(b.String())
}

func isSafeNameRune(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '_', c == ' ', c == '-':
		return true
	}
	return false
}

// CachedResolver remembers where a (uri, name) pair was materialized so
// repeated opens of the same remote file reuse the staged copy. Staged copies
// are deleted when their entry is evicted, expires or is purged.
type CachedResolver struct {
	next    URIResolver
	fs      storage.Filesystem
	cache   *expirable.LRU[string, string]
	metrics *Metrics
}

// NewCachedResolver wraps next with an LRU of size entries that expire after ttl.
func NewCachedResolver(next URIResolver, fs storage.Filesystem, size int, ttl time.Duration, metrics *Metrics) *CachedResolver {
	c := &CachedResolver{
		next:    next,
		fs:      fs,
		metrics: metrics,
	}
	c.cache = expirable.NewLRU[string, string](size, c.discard, ttl)
	return c
}

// discard removes a staged copy and its per-copy directory. Errors are
// ignored; a file still held open by a viewer is left for the OS to clean.
func (c *CachedResolver) discard(_ string, dst string) {
	ctx := context.Background()
	if err := c.fs.Remove(ctx, dst); err != nil {
		return
	}
	_ = c.fs.Remove(ctx, storage.LocalURI(path.Dir(storage.PathFromURI(dst))))
}

var _ URIResolver = (*CachedResolver)(nil)

// EnsureLocalURI returns the cached destination when it still exists and
// otherwise delegates to the wrapped resolver.
func (c *CachedResolver) EnsureLocalURI(ctx context.Context, uri, suggestedName string) (string, error) {
	if uri == "" || storage.IsLocalURI(uri) {
		return c.next.EnsureLocalURI(ctx, uri, suggestedName)
	}

	key := uri + "\x00" + suggestedName
	if dst, ok := c.cache.Get(key); ok {
		if exists, err := c.fs.Exists(ctx, dst); err == nil && exists {
			c.metrics.cacheHit()
			return dst, nil
		}
		c.cache.Remove(key)
	}

	c.metrics.cacheMiss()
	dst, err := c.next.EnsureLocalURI(ctx, uri, suggestedName)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, dst)
	return dst, nil
}

// Purge drops every cached destination and deletes the staged copies.
func (c *CachedResolver) Purge() {
	c.cache.Purge()
}
