package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/khunmostz/Repair-Management-System/internal/storage"
)

// pngBytes is a minimal valid PNG header, enough for content sniffing.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := mw.CreateFormFile("images", name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadImagesStoresAndReturnsURLs(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := NewUploadHandler(store)

	body, contentType := multipartBody(t, map[string][]byte{"photo.png": pngBytes})
	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.UploadImages(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message string   `json:"message"`
		Files   []string `json:"files"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Files) != 1 {
		t.Fatalf("files = %v", resp.Files)
	}
	if !strings.HasPrefix(resp.Files[0], "/uploads/images/") {
		t.Fatalf("url = %q", resp.Files[0])
	}
	// The sniffer decides the extension, not the client filename.
	if filepath.Ext(resp.Files[0]) != ".png" {
		t.Fatalf("extension = %q, want .png", filepath.Ext(resp.Files[0]))
	}

	// The stored file streams back.
	name := filepath.Base(resp.Files[0])
	stored, ct, err := store.Open(req.Context(), name)
	if err != nil {
		t.Fatal(err)
	}
	defer stored.Close()
	data, err := io.ReadAll(stored)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, pngBytes) {
		t.Fatal("stored bytes differ from upload")
	}
	if ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestUploadImagesRejectsNonImage(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := NewUploadHandler(store)

	body, contentType := multipartBody(t, map[string][]byte{
		"notes.txt": []byte("just some text, not an image"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.UploadImages(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] == "" {
		t.Fatal("missing error envelope")
	}
}

func TestUploadImagesRejectsTooMany(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := NewUploadHandler(store)

	body, contentType := multipartBody(t, map[string][]byte{
		"a.png": pngBytes, "b.png": pngBytes, "c.png": pngBytes, "d.png": pngBytes,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.UploadImages(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadImagesRejectsEmptyForm(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := NewUploadHandler(store)

	body, contentType := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.UploadImages(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
