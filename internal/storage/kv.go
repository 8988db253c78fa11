// ABOUTME: Key-value persistence contract shared by every storage backend.
// ABOUTME: Defines ErrNotFound and the PersistenceError wrapper.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by KV.Get when the key is absent.
var ErrNotFound = errors.New("not found")

// KV is a byte-oriented key-value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// PersistenceError reports a failed read or write against the store.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
