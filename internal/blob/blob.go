// Package blob stores uploaded images and returns their public URLs.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"
)

const uploadPrefix = "projects/uploads/"

var ErrNotConfigured = errors.New("blob storage not configured")

// Uploader writes one object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// ObjectName builds "projects/uploads/<unix ms>-<filename>" with every
// character outside [a-zA-Z0-9.-] removed from the filename.
func ObjectName(filename string, now time.Time) string {
	return fmt.Sprintf("%s%d-%s", uploadPrefix, now.UnixMilli(), unsafeChars.ReplaceAllString(filename, ""))
}

// Disabled rejects every upload. Used when no backend is configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}
