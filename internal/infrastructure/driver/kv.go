package driver

import (
	"context"
	"errors"
)

// ErrKeyNotFound the key does not exist
var ErrKeyNotFound = errors.New("key not found")

// KeyValueDB define a key-value storage interface
type KeyValueDB interface {
	Get(ctx context.Context, key string) (string, error)
	Range(ctx context.Context, key string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}
