package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// MaxImages caps the attachments per repair request.
const MaxImages = 3

// MaxImageSize is the per-file ceiling in bytes.
const MaxImageSize = 5 << 20 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ImageFile is one file selected for upload.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ValidateImage runs the client-side checks a file must pass before
// any network call: allow-listed type and the 5MB size ceiling.
func ValidateImage(f ImageFile) error {
	if !allowedImageTypes[f.ContentType] {
		return fmt.Errorf("%w: %s is not a supported image type", ErrValidation, f.ContentType)
	}
	if f.Size > MaxImageSize {
		return fmt.Errorf("%w: %s exceeds the 5MB limit", ErrValidation, f.Name)
	}
	return nil
}

// UploadImages uploads up to MaxImages files in one multipart call and
// returns the server-assigned storage paths in submission order. All
// files are validated before anything is sent.
func (c *Client) UploadImages(ctx context.Context, files []ImageFile) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files to upload", ErrValidation)
	}
	if len(files) > MaxImages {
		return nil, fmt.Errorf("%w: at most %d images allowed", ErrValidation, MaxImages)
	}
	for _, f := range files {
		if err := ValidateImage(f); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := writer.CreateFormFile("images", f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Body); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/upload/image", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp struct {
		Message string   `json:"message"`
		Files   []string `json:"files"`
	}
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}
