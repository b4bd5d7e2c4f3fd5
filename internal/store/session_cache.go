package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"replayview/internal/types"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendBbolt  = "bbolt"
)

var ErrSessionNotCached = errors.New("session not cached")

const sessionCacheSchemaVersion = 1

// SessionCache is the client side normalized cache of sessions keyed by
// secure id. Values handed out are copies; Modify is the only way to patch an
// entry in place.
type SessionCache interface {
	Get(ctx context.Context, key string) (*types.Session, bool, error)
	Put(ctx context.Context, session *types.Session) error
	Modify(ctx context.Context, key string, fn func(*types.Session)) (*types.Session, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]*types.Session, error)
	Backend() string
	Close() error
}

type cachedSession struct {
	Version  int            `json:"version"`
	CachedAt time.Time      `json:"cached_at"`
	Session  *types.Session `json:"session"`
}

// OpenSessionCache opens the cache for backend. path is ignored for the
// memory backend.
func OpenSessionCache(backend, path string) (SessionCache, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case CacheBackendMemory:
		return NewMemorySessionCache(), nil
	case "", CacheBackendBbolt:
		return NewBboltSessionCache(path)
	default:
		return nil, errors.New("unknown cache backend: " + backend)
	}
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("session key is required")
	}
	return key, nil
}
