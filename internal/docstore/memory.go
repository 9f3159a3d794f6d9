package docstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store. Collections keep insertion order.
type Memory struct {
	mu    sync.RWMutex
	cols  map[string]*memCollection
	clock func() time.Time
}

type memCollection struct {
	order []string
	docs  map[string]map[string]any
}

func NewMemory() *Memory {
	return &Memory{
		cols:  make(map[string]*memCollection),
		clock: func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) Get(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	col, ok := m.cols[collection]
	if !ok {
		return Document{}, ErrNotFound
	}
	data, ok := col.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: copyMap(data)}, nil
}

func (m *Memory) List(_ context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	col, ok := m.cols[collection]
	if !ok {
		return []Document{}, nil
	}
	out := make([]Document, 0, len(col.order))
	for _, id := range col.order {
		out = append(out, Document{ID: id, Data: copyMap(col.docs[id])})
	}
	return out, nil
}

func (m *Memory) Set(_ context.Context, collection, id string, data map[string]any, merge bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.collection(collection)
	data = ResolveTimestamps(copyMap(data), m.clock())

	existing, ok := col.docs[id]
	if !ok {
		col.order = append(col.order, id)
		col.docs[id] = data
		return nil
	}
	if !merge {
		col.docs[id] = data
		return nil
	}
	for k, v := range data {
		existing[k] = v
	}
	return nil
}

func (m *Memory) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.New().String()
	return id, m.Set(ctx, collection, id, data, false)
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) collection(name string) *memCollection {
	col, ok := m.cols[name]
	if !ok {
		col = &memCollection{docs: make(map[string]map[string]any)}
		m.cols[name] = col
	}
	return col
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = copyValue(t[i])
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
