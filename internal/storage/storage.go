package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

// Package storage contains the filesystem collaborator used to check,
// stage and copy files before they are handed to an external viewer.
// Local paths go through a go-billy filesystem; opaque provider schemes
// (s3://, ...) are read through registered Sources.

// LocalScheme is the URI scheme that maps directly onto a filesystem path.
const LocalScheme = "file"

const localPrefix = LocalScheme + "://"

// FileInfo contains basic information about a file behind a URI.
type FileInfo struct {
	URI     string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Filesystem is what the resolver and opener need from the platform.
// CacheDir and DocumentDir return "" when the directory is not available.
type Filesystem interface {
	// Exists reports whether the file behind uri is currently reachable.
	Exists(ctx context.Context, uri string) (bool, error)
	// Stat returns information about the file behind uri.
	Stat(ctx context.Context, uri string) (FileInfo, error)
	// CacheDir returns the preferred writable base directory.
	CacheDir() string
	// DocumentDir returns the fallback writable base directory.
	DocumentDir() string
	// MkdirAll creates path and any missing parents.
	MkdirAll(ctx context.Context, path string) error
	// Copy streams the content behind srcURI into the local file dstPath.
	Copy(ctx context.Context, srcURI, dstPath string) error
	// Remove deletes the file behind uri if it exists.
	Remove(ctx context.Context, uri string) error
}

// Source reads files behind an opaque provider scheme.
type Source interface {
	// Scheme returns the URI scheme handled by the source, without "://".
	Scheme() string
	// Open returns a streaming reader for the object behind uri.
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
	// Stat returns object information. Missing objects yield an error
	// matching fs.ErrNotExist.
	Stat(ctx context.Context, uri string) (FileInfo, error)
}

// IsLocalURI reports whether uri uses the local file scheme.
func IsLocalURI(uri string) bool {
	return strings.HasPrefix(uri, localPrefix)
}

// LocalURI builds a file:// URI from an absolute path.
func LocalURI(path string) string {
	return localPrefix + path
}

// PathFromURI strips the file:// prefix. Non-local URIs are returned as-is.
func PathFromURI(uri string) string {
	return strings.TrimPrefix(uri, localPrefix)
}

// SchemeOf returns the scheme of uri, or "" when it has none.
func SchemeOf(uri string) string {
	i := strings.Index(uri, "://")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(uri[:i])
}
