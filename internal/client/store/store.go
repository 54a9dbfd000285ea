package store

import (
	"context"
	"fmt"
)

// Keys under which the session is persisted.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Kinds accepted by Open.
const (
	KindSQLite = "sqlite"
	KindMemory = "memory"
	KindRedis  = "redis"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Options selects and parameterises a Store implementation.
type Options struct {
	Kind        string
	Path        string
	RedisURL    string
	RedisPrefix string
}

// Open builds the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Kind {
	case KindSQLite, "":
		return OpenSQLite(ctx, opts.Path)
	case KindMemory:
		return NewMemoryStore(), nil
	case KindRedis:
		return OpenRedis(ctx, opts.RedisURL, opts.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown store kind %q", opts.Kind)
	}
}
