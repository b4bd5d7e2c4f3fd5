package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"replayview/internal/types"
)

var bucketSessions = []byte("sessions")

type BboltSessionCache struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBboltSessionCache(path string) (*BboltSessionCache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cache db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessions)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BboltSessionCache{db: db, now: time.Now}, nil
}

func (c *BboltSessionCache) Get(ctx context.Context, key string) (*types.Session, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, err
	}
	var session *types.Session
	err = c.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketSessions).Get([]byte(key))
		if raw == nil {
			return nil
		}
		decoded, err := decodeCachedSession(raw)
		if err != nil {
			return err
		}
		session = decoded
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return session, session != nil, nil
}

func (c *BboltSessionCache) Put(ctx context.Context, session *types.Session) error {
	if session == nil {
		return errors.New("session is required")
	}
	key, err := normalizeKey(session.Key())
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return c.write(tx, key, session)
	})
}

// Modify reads, patches and writes the entry inside one bbolt write
// transaction so concurrent patches from overlapping requests serialize.
func (c *BboltSessionCache) Modify(ctx context.Context, key string, fn func(*types.Session)) (*types.Session, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	var out *types.Session
	err = c.db.Update(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketSessions).Get([]byte(key))
		if raw == nil {
			return ErrSessionNotCached
		}
		session, err := decodeCachedSession(raw)
		if err != nil {
			return err
		}
		if fn != nil {
			fn(session)
		}
		if err := c.write(tx, key, session); err != nil {
			return err
		}
		out = session.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BboltSessionCache) Delete(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		if b.Get([]byte(key)) == nil {
			return ErrSessionNotCached
		}
		return b.Delete([]byte(key))
	})
}

func (c *BboltSessionCache) List(ctx context.Context) ([]*types.Session, error) {
	out := []*types.Session{}
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).ForEach(func(_, v []byte) error {
			session, err := decodeCachedSession(v)
			if err != nil {
				return err
			}
			out = append(out, session)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key() < out[j].Key()
	})
	return out, nil
}

func (c *BboltSessionCache) Backend() string {
	return CacheBackendBbolt
}

func (c *BboltSessionCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *BboltSessionCache) write(tx *bolt.Tx, key string, session *types.Session) error {
	data, err := json.Marshal(cachedSession{
		Version:  sessionCacheSchemaVersion,
		CachedAt: c.now().UTC(),
		Session:  session,
	})
	if err != nil {
		return err
	}
	return tx.Bucket(bucketSessions).Put([]byte(key), data)
}

func decodeCachedSession(raw []byte) (*types.Session, error) {
	var entry cachedSession
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode cached session: %w", err)
	}
	if entry.Session == nil {
		return nil, errors.New("decode cached session: empty entry")
	}
	return entry.Session, nil
}
