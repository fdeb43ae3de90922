package storage

import (
	"context"
	"io"
)

// ImageStore persists uploaded repair images and serves them back.
type ImageStore interface {
	// Save stores the content under a generated name and returns the
	// public URL path clients should use to fetch it.
	Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
	// Open returns the stored content for the given file name.
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
}
