package blob

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

const gcsPublicBase = "https://storage.googleapis.com"

// GCS writes publicly readable objects to a Cloud Storage bucket, the
// Firebase default bucket in production.
type GCS struct {
	bucket *storage.BucketHandle
	name   string
}

func NewGCS(bucket *storage.BucketHandle, name string) *GCS {
	return &GCS{bucket: bucket, name: name}
}

func (g *GCS) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	w := g.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.PredefinedACL = "publicRead"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return fmt.Sprintf("%s/%s/%s", gcsPublicBase, g.name, name), nil
}
