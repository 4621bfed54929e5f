// Package storage provides the key-value backends that hold client-side state.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// UpdateFunc maps the current value of a key (nil when absent) to its new value.
type UpdateFunc func(current []byte) ([]byte, error)

// KV is a string-keyed byte store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Update applies fn atomically with respect to other Update calls on the same key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}
