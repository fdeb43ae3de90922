package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/khunmostz/Repair-Management-System/internal/metrics"
	"github.com/khunmostz/Repair-Management-System/internal/models"
	"github.com/khunmostz/Repair-Management-System/internal/storage"
	"github.com/khunmostz/Repair-Management-System/pkg/utils"
)

const maxImageSize = 5 << 20 // 5MB per file

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type UploadHandler struct {
	Store storage.ImageStore
}

func NewUploadHandler(store storage.ImageStore) *UploadHandler {
	return &UploadHandler{Store: store}
}

// UploadImages accepts up to three images in the multipart field
// "images" and returns the stored URLs.
func (h *UploadHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(models.MaxRequestImages * maxImageSize); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		utils.Error(w, http.StatusBadRequest, "No images provided")
		return
	}
	if len(files) > models.MaxRequestImages {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("At most %d images allowed", models.MaxRequestImages))
		return
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		if header.Size > maxImageSize {
			utils.Error(w, http.StatusBadRequest, fmt.Sprintf("File %s exceeds the 5MB limit", header.Filename))
			return
		}

		f, err := header.Open()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to read uploaded file")
			return
		}

		// Sniff the actual content type, the client header is not trusted.
		head := make([]byte, 512)
		n, _ := io.ReadFull(f, head)
		contentType := http.DetectContentType(head[:n])
		ext, ok := imageExtensions[contentType]
		if !ok {
			f.Close()
			utils.Error(w, http.StatusBadRequest, fmt.Sprintf("File %s is not a supported image type", header.Filename))
			return
		}

		name := uuid.NewString() + ext
		body := io.MultiReader(bytes.NewReader(head[:n]), f)
		url, err := h.Store.Save(r.Context(), name, contentType, body)
		f.Close()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to store uploaded file")
			return
		}

		metrics.ImagesUploaded.Inc()
		urls = append(urls, url)
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Files uploaded",
		"files":   urls,
	})
}

// ServeImage streams a stored image back to the client
func (h *UploadHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]

	body, contentType, err := h.Store.Open(r.Context(), name)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Image not found")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = io.Copy(w, body)
}
