package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes images to a directory on disk. Files are served
// back through the router's /uploads/images/ route.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{Dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	path := filepath.Join(s.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return "/uploads/images/" + name, nil
}

func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if !validName(name) {
		return nil, "", fmt.Errorf("invalid file name %q", name)
	}
	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, "", err
	}
	return f, contentTypeForName(name), nil
}

// validName rejects anything that could escape the upload directory.
func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "/\\") && name != "." && name != ".."
}

func contentTypeForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
