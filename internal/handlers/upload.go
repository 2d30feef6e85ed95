package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// maxUploadMemory is how much of a multipart form is buffered in memory.
// Larger parts spill to temp files; total size is bounded by the body cap.
const maxUploadMemory = 1 << 20

type UploadResponse struct {
	URL string `json:"url"`
}

// UploadFile hosts an image so a moment can reference it by URL
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		writeError(w, http.StatusServiceUnavailable, "Image uploads are not available")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	file.Close()

	url, err := h.images.UploadFile(r.Context(), fileHeader)
	if err != nil {
		h.logger.Error("image upload failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{URL: url})
}
