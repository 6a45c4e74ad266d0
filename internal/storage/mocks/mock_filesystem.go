package mocks

import (
	"context"

	"fileview/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockFilesystem struct {
	mock.Mock
}

func (m *MockFilesystem) Exists(ctx context.Context, uri string) (bool, error) {
	args := m.Called(ctx, uri)
	return args.Bool(0), args.Error(1)
}

func (m *MockFilesystem) Stat(ctx context.Context, uri string) (storage.FileInfo, error) {
	args := m.Called(ctx, uri)
	return args.Get(0).(storage.FileInfo), args.Error(1)
}

func (m *MockFilesystem) CacheDir() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockFilesystem) DocumentDir() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockFilesystem) MkdirAll(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockFilesystem) Copy(ctx context.Context, srcURI, dstPath string) error {
	args := m.Called(ctx, srcURI, dstPath)
	return args.Error(0)
}

func (m *MockFilesystem) Remove(ctx context.Context, uri string) error {
	args := m.Called(ctx, uri)
	return args.Error(0)
}
