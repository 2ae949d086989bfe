package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// Repository is a durable string key/value namespace.
//
// Values are passed through untouched. SetMany writes all pairs or none.
// RemoveAll ignores keys that are already absent.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	RemoveAll(ctx context.Context, keys ...string) error
	Close() error
}
