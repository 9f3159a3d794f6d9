// Package rediscache wraps a docstore.Store with a read-through Redis cache
// for selected collections.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ChristianMLux/cml25-backend/internal/docstore"
	"github.com/ChristianMLux/cml25-backend/internal/platform/logging"
)

const keyPrefix = "portfolio:doc:" // portfolio:doc:{collection}:list, portfolio:doc:{collection}:id:{id}

type cachedDoc struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// Store caches List and Get for the configured collections. Writes drop
// the affected keys both before and after reaching the inner store. Redis
// failures are logged and fall through to the inner store.
type Store struct {
	inner       docstore.Store
	client      *redis.Client
	ttl         time.Duration
	collections map[string]bool
	log         logging.Logger
}

// New creates a caching store over inner for the given collections.
func New(inner docstore.Store, client *redis.Client, ttl time.Duration, log logging.Logger, collections ...string) *Store {
	if log == nil {
		log = logging.Nop()
	}
	cols := make(map[string]bool, len(collections))
	for _, c := range collections {
		cols[c] = true
	}
	return &Store{
		inner:       inner,
		client:      client,
		ttl:         ttl,
		collections: cols,
		log:         log.With("component", "docstore_cache"),
	}
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if !s.collections[collection] {
		return s.inner.Get(ctx, collection, id)
	}

	key := s.docKey(collection, id)
	if raw, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var d cachedDoc
		if err := json.Unmarshal(raw, &d); err == nil {
			return docstore.Document{ID: d.ID, Data: d.Data}, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn(ctx, "cache read failed", "key", key, "error", err)
	}

	doc, err := s.inner.Get(ctx, collection, id)
	if err != nil {
		return doc, err
	}
	s.put(ctx, key, cachedDoc{ID: doc.ID, Data: doc.Data})
	return doc, nil
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	if !s.collections[collection] {
		return s.inner.List(ctx, collection)
	}

	key := s.listKey(collection)
	if raw, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var docs []cachedDoc
		if err := json.Unmarshal(raw, &docs); err == nil {
			out := make([]docstore.Document, 0, len(docs))
			for _, d := range docs {
				out = append(out, docstore.Document{ID: d.ID, Data: d.Data})
			}
			return out, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn(ctx, "cache read failed", "key", key, "error", err)
	}

	docs, err := s.inner.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	cached := make([]cachedDoc, 0, len(docs))
	for _, d := range docs {
		cached = append(cached, cachedDoc{ID: d.ID, Data: d.Data})
	}
	s.put(ctx, key, cached)
	return docs, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	if !s.collections[collection] {
		return s.inner.Set(ctx, collection, id, data, merge)
	}
	keys := []string{s.listKey(collection), s.docKey(collection, id)}
	s.invalidateBefore(ctx, keys)
	if err := s.inner.Set(ctx, collection, id, data, merge); err != nil {
		return err
	}
	s.invalidateAfter(ctx, keys)
	return nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	if !s.collections[collection] {
		return s.inner.Add(ctx, collection, data)
	}
	keys := []string{s.listKey(collection)}
	s.invalidateBefore(ctx, keys)
	id, err := s.inner.Add(ctx, collection, data)
	if err != nil {
		return "", err
	}
	s.invalidateAfter(ctx, keys)
	return id, nil
}

func (s *Store) Close() error {
	return s.inner.Close()
}

func (s *Store) put(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn(ctx, "cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.Warn(ctx, "cache write failed", "key", key, "error", err)
	}
}

// invalidateBefore drops keys ahead of a write, even one that then fails.
func (s *Store) invalidateBefore(ctx context.Context, keys []string) {
	if err := s.invalidate(ctx, keys); err != nil {
		s.log.Warn(ctx, "cache invalidation failed", "keys", keys, "error", err)
	}
}

// invalidateAfter drops keys a concurrent reader may have refilled during
// the write. On failure they stay stale until the TTL expires.
func (s *Store) invalidateAfter(ctx context.Context, keys []string) {
	if err := s.invalidate(ctx, keys); err != nil {
		s.log.Error(ctx, "cache invalidation after write failed, entries may be stale",
			"keys", keys, "ttl", s.ttl.String(), "error", err)
	}
}

func (s *Store) invalidate(ctx context.Context, keys []string) error {
	pipe := s.client.Pipeline()
	for _, k := range keys {
		pipe.Del(ctx, k)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) listKey(collection string) string {
	return fmt.Sprintf("%s%s:list", keyPrefix, collection)
}

func (s *Store) docKey(collection, id string) string {
	return fmt.Sprintf("%s%s:id:%s", keyPrefix, collection, id)
}
