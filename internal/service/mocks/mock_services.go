package mocks

import (
	"context"

	"fileview/internal/model"
	"fileview/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockFileOpener struct {
	mock.Mock
}

var _ service.FileOpener = (*MockFileOpener)(nil)

func (m *MockFileOpener) Open(ctx context.Context, d model.FileDescriptor) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type MockRecentFilesStore struct {
	mock.Mock
}

var _ service.RecentFilesStore = (*MockRecentFilesStore)(nil)

func (m *MockRecentFilesStore) SaveRecentFile(ctx context.Context, d model.FileDescriptor) ([]model.FileDescriptor, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileDescriptor), args.Error(1)
}

func (m *MockRecentFilesStore) GetRecentFiles(ctx context.Context) ([]model.FileDescriptor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileDescriptor), args.Error(1)
}

func (m *MockRecentFilesStore) ClearRecentFile(ctx context.Context, uri string) ([]model.FileDescriptor, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileDescriptor), args.Error(1)
}

func (m *MockRecentFilesStore) ClearAllRecentFiles(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
