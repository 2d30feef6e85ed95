package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/AnshRaj112/moments-backend/internal/store"
)

// ImageHost stores images somewhere clients can fetch them from.
type ImageHost interface {
	UploadDataURI(ctx context.Context, dataURI string) (string, error)
	UploadFile(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
}

// Handler serves the feed API. images may be nil when no image host is configured.
type Handler struct {
	store  *store.Store
	images ImageHost
	logger *zap.Logger
}

func New(s *store.Store, images ImageHost, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: s, images: images, logger: logger}
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched
// when allowEmpty is set, so delete calls without a body fail on the
// missing anonymousId rather than on parsing.
func decodeJSON(r *http.Request, dst interface{}, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	return err
}

// writeStoreError maps store errors onto the HTTP contract.
func (h *Handler) writeStoreError(w http.ResponseWriter, op string, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("unexpected store error", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
