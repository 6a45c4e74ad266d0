package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres, file) inside this directory.

import "context"

// KeyValueStore persists small string values under string keys.
// No business logic here, strictly persistence operations.
type KeyValueStore interface {
	// Get returns the value stored under key. found is false when nothing is stored.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. It returns nil if the key did not exist.
	Remove(ctx context.Context, key string) error
}

// KeyLocker is implemented by stores that can hold an exclusive lock on a key
// across processes sharing the same backend. unlock releases it.
type KeyLocker interface {
	LockKey(ctx context.Context, key string) (unlock func() error, err error)
}
