// Package docstore is the document-database seam: named collections of
// JSON-like documents keyed by id, with merge writes.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("document not found")

// Document is one stored record. Data holds JSON-compatible values; time
// values may come back as time.Time or as RFC 3339 strings depending on
// the backend.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is implemented by the memory, postgres and firestore backends.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	// List returns every document of a collection in the store's natural
	// order.
	List(ctx context.Context, collection string) ([]Document, error)
	// Set writes data under id. With merge, only the given top-level fields
	// change and everything else on an existing document is kept.
	Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error
	// Add appends a document under a generated id and returns that id.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	Close() error
}

type serverTimestamp struct{}

// ServerTimestamp is replaced by the backend's current time on write.
var ServerTimestamp any = serverTimestamp{}

func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// ResolveTimestamps returns a copy of data with ServerTimestamp replaced by
// now. Backends without a native server clock use it.
func ResolveTimestamps(data map[string]any, now time.Time) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if IsServerTimestamp(v) {
			out[k] = now
			continue
		}
		out[k] = v
	}
	return out
}

// Encode converts a tagged struct into document data.
func Encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return out, nil
}

// Decode fills v from document data via its json tags.
func Decode(data map[string]any, v any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
