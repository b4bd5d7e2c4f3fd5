package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"replayview/internal/types"
)

type MemorySessionCache struct {
	mu       sync.RWMutex
	sessions map[string]*types.Session
}

func NewMemorySessionCache() *MemorySessionCache {
	return &MemorySessionCache{sessions: map[string]*types.Session{}}
}

func (c *MemorySessionCache) Get(_ context.Context, key string) (*types.Session, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	session, ok := c.sessions[key]
	if !ok {
		return nil, false, nil
	}
	return session.Clone(), true, nil
}

func (c *MemorySessionCache) Put(_ context.Context, session *types.Session) error {
	if session == nil {
		return errors.New("session is required")
	}
	key, err := normalizeKey(session.Key())
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[key] = session.Clone()
	return nil
}

func (c *MemorySessionCache) Modify(_ context.Context, key string, fn func(*types.Session)) (*types.Session, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	session, ok := c.sessions[key]
	if !ok {
		return nil, ErrSessionNotCached
	}
	next := session.Clone()
	if fn != nil {
		fn(next)
	}
	c.sessions[key] = next
	return next.Clone(), nil
}

func (c *MemorySessionCache) Delete(_ context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sessions[key]; !ok {
		return ErrSessionNotCached
	}
	delete(c.sessions, key)
	return nil
}

func (c *MemorySessionCache) List(_ context.Context) ([]*types.Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*types.Session, 0, len(c.sessions))
	for _, session := range c.sessions {
		out = append(out, session.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key() < out[j].Key()
	})
	return out, nil
}

func (c *MemorySessionCache) Backend() string {
	return CacheBackendMemory
}

func (c *MemorySessionCache) Close() error {
	return nil
}
