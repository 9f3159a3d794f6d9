package bootstrap

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"

	"github.com/ChristianMLux/cml25-backend/config"
	"github.com/ChristianMLux/cml25-backend/internal/blob"
)

// OpenUploader selects the upload backend. Without a Firebase app the
// firebase driver degrades to blob.Disabled.
func OpenUploader(ctx context.Context, cfg config.Config, app *firebase.App) (blob.Uploader, error) {
	switch cfg.Blob.Driver {
	case "none":
		return blob.Disabled{}, nil
	case "s3":
		s3c := cfg.Blob.S3
		return blob.NewS3(ctx, blob.S3Options{
			Endpoint:  s3c.Endpoint,
			Region:    s3c.Region,
			Bucket:    s3c.Bucket,
			AccessKey: s3c.AccessKey,
			SecretKey: s3c.SecretKey,
			PublicURL: s3c.PublicURL,
		})
	case "firebase":
		if app == nil || cfg.Firebase.StorageBucket == "" {
			return blob.Disabled{}, nil
		}
		client, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Storage client: %w", err)
		}
		bucket, err := client.Bucket(cfg.Firebase.StorageBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to open bucket: %w", err)
		}
		return blob.NewGCS(bucket, cfg.Firebase.StorageBucket), nil
	default:
		return nil, fmt.Errorf("unknown BLOB_DRIVER %q", cfg.Blob.Driver)
	}
}
