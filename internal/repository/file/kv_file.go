package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"

	"fileview/internal/repository"
)

const (
	valueExt = ".kv"
	lockExt  = ".lock"
)

// KVFile is a repository.KeyValueStore that keeps one file per key inside a
// billy filesystem. Writes go through a temp file and a rename so a crash
// never leaves a half written value behind.
type KVFile struct {
	bfs billy.Filesystem
	dir string
	mu  sync.RWMutex
}

// NewKVFile creates a store rooted at dir inside bfs.
func NewKVFile(bfs billy.Filesystem, dir string) *KVFile {
	return &KVFile{bfs: bfs, dir: dir}
}

var (
	_ repository.KeyValueStore = (*KVFile)(nil)
	_ repository.KeyLocker     = (*KVFile)(nil)
)

func (s *KVFile) pathFor(key string) string {
	return path.Join(s.dir, url.PathEscape(key)+valueExt)
}

// Get reads the value stored under key.
func (s *KVFile) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := s.bfs.Open(s.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("open %s: %w", key, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(b), true, nil
}

// Set replaces the value under key.
func (s *KVFile) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bfs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.dir, err)
	}

	tmpPath := path.Join(s.dir, ".tmp-"+uuid.NewString())
	tmp, err := s.bfs.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	needsCleanup := true
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
		}
		if needsCleanup {
			_ = s.bfs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write([]byte(value)); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	// Close before rename, required on some systems.
	err = tmp.Close()
	tmp = nil
	if err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := s.bfs.Rename(tmpPath, s.pathFor(key)); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	needsCleanup = false
	return nil
}

// Remove deletes the file backing key. Missing keys are not an error.
func (s *KVFile) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bfs.Remove(s.pathFor(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// LockKey takes an advisory lock on a sidecar file next to key. The lock is
// held by the OS file lock, so it also excludes other processes using the
// same directory. It blocks until the lock is free.
func (s *KVFile) LockKey(ctx context.Context, key string) (func() error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.bfs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", s.dir, err)
	}

	lockPath := path.Join(s.dir, url.PathEscape(key)+lockExt)
	f, err := s.bfs.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock %s: %w", key, err)
	}
	if err := f.Lock(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}

	return func() error {
		uerr := f.Unlock()
		cerr := f.Close()
		if uerr != nil {
			return fmt.Errorf("unlock %s: %w", key, uerr)
		}
		return cerr
	}, nil
}

// PingContext checks that the store directory can be created.
func (s *KVFile) PingContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.bfs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.dir, err)
	}
	return nil
}
