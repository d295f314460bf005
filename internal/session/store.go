package session

import (
	"context"
	"errors"
)

// Keys of the two persisted session entries.
const (
	KeyToken    = "jwt_token"
	KeyIdentity = "user_data"
)

var ErrNotFound = errors.New("session: not found")

// Store is durable key/value storage for session entries. Concrete drivers
// live under drivers/. Values are opaque strings; Get returns ErrNotFound
// for missing keys and Delete ignores them.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
