package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fileview/internal/model"
	"fileview/internal/repository"
)

// RecentFilesKey is the key under which the list is persisted.
const RecentFilesKey = "@recent_files"

// RecentFilesStore keeps the most recently opened files, newest first,
// unique by URI and capped at model.MaxRecent entries.
type RecentFilesStore interface {
	// SaveRecentFile stamps d with the current time, moves it to the front
	// and persists the list.
	SaveRecentFile(ctx context.Context, d model.FileDescriptor) ([]model.FileDescriptor, error)

	// GetRecentFiles returns the persisted list. A missing or unreadable
	// record yields an empty list.
	GetRecentFiles(ctx context.Context) ([]model.FileDescriptor, error)

	// ClearRecentFile removes every entry for uri and persists the list.
	ClearRecentFile(ctx context.Context, uri string) ([]model.FileDescriptor, error)

	// ClearAllRecentFiles removes the record.
	ClearAllRecentFiles(ctx context.Context) error
}

type recentFilesStore struct {
	kv      repository.KeyValueStore
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time

	// mu serializes every read-modify-write of the record within this
	// process. When kv is a repository.KeyLocker its key lock extends that to
	// other processes sharing the backend.
	mu sync.Mutex
}

// NewRecentFilesStore constructs a RecentFilesStore over kv.
func NewRecentFilesStore(kv repository.KeyValueStore, logger *slog.Logger, metrics *Metrics) RecentFilesStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &recentFilesStore{kv: kv, logger: logger, metrics: metrics, now: time.Now}
}

func (s *recentFilesStore) SaveRecentFile(ctx context.Context, d model.FileDescriptor) ([]model.FileDescriptor, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	openedAt := s.now()
	d.OpenedAt = &openedAt

	out := make([]model.FileDescriptor, 0, len(current)+1)
	out = append(out, d)
	for _, f := range current {
		if f.URI != d.URI {
			out = append(out, f)
		}
	}
	if len(out) > model.MaxRecent {
		out = out[:model.MaxRecent]
	}

	if err := s.persist(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *recentFilesStore) GetRecentFiles(ctx context.Context) ([]model.FileDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *recentFilesStore) ClearRecentFile(ctx context.Context, uri string) ([]model.FileDescriptor, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.FileDescriptor, 0, len(current))
	for _, f := range current {
		if f.URI != uri {
			out = append(out, f)
		}
	}

	if err := s.persist(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *recentFilesStore) ClearAllRecentFiles(ctx context.Context) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.kv.Remove(ctx, RecentFilesKey); err != nil {
		return fmt.Errorf("remove recent files: %w", err)
	}
	s.metrics.setRecent(0)
	return nil
}

// lock takes the in-process mutex and, when the backend supports it, the
// cross-process key lock.
func (s *recentFilesStore) lock(ctx context.Context) (func(), error) {
	s.mu.Lock()
	locker, ok := s.kv.(repository.KeyLocker)
	if !ok {
		return s.mu.Unlock, nil
	}
	release, err := locker.LockKey(ctx, RecentFilesKey)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("lock recent files: %w", err)
	}
	return func() {
		if err := release(); err != nil {
			s.logger.Warn("recent_files_unlock_failed", "error", err.Error())
		}
		s.mu.Unlock()
	}, nil
}

// load reads and normalizes the record. Only backend failures are returned;
// a record that does not decode is logged and treated as empty.
func (s *recentFilesStore) load(ctx context.Context) ([]model.FileDescriptor, error) {
	raw, found, err := s.kv.Get(ctx, RecentFilesKey)
	if err != nil {
		return nil, fmt.Errorf("read recent files: %w", err)
	}
	if !found || raw == "" {
		return []model.FileDescriptor{}, nil
	}

	var files []model.FileDescriptor
	if err := json.Unmarshal([]byte(raw), &files); err != nil {
		s.logger.Warn("recent_files_corrupt", "error", err.Error())
		return []model.FileDescriptor{}, nil
	}
	return normalizeRecent(files), nil
}

func (s *recentFilesStore) persist(ctx context.Context, files []model.FileDescriptor) error {
	b, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("encode recent files: %w", err)
	}
	if err := s.kv.Set(ctx, RecentFilesKey, string(b)); err != nil {
		return fmt.Errorf("write recent files: %w", err)
	}
	s.metrics.setRecent(len(files))
	return nil
}

// normalizeRecent drops later duplicates of a URI and caps the list.
func normalizeRecent(files []model.FileDescriptor) []model.FileDescriptor {
	seen := make(map[string]struct{}, len(files))
	out := make([]model.FileDescriptor, 0, len(files))
	for _, f := range files {
		if _, ok := seen[f.URI]; ok {
			continue
		}
		seen[f.URI] = struct{}{}
		out = append(out, f)
		if len(out) == model.MaxRecent {
			break
		}
	}
	return out
}
