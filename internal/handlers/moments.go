package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AnshRaj112/moments-backend/internal/services"
	"github.com/AnshRaj112/moments-backend/internal/store"
	"github.com/AnshRaj112/moments-backend/pkg/utils"
)

// CreateMomentRequest represents the request to post a moment
type CreateMomentRequest struct {
	Text        string `json:"text"`
	Image       string `json:"image,omitempty"`
	AnonymousID string `json:"anonymousId"`
	DisplayName string `json:"displayName,omitempty"`
}

// DeleteRequest identifies the caller on delete endpoints
type DeleteRequest struct {
	AnonymousID string `json:"anonymousId"`
}

// GetMoments returns the whole feed, newest first
func (h *Handler) GetMoments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ListMoments())
}

// CreateMoment handles posting a new moment
func (h *Handler) CreateMoment(w http.ResponseWriter, r *http.Request) {
	var req CreateMomentRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := store.NewMoment{
		Text:        req.Text,
		Image:       req.Image,
		AnonymousID: req.AnonymousID,
		DisplayName: req.DisplayName,
	}
	// Check before uploading so rejected posts never reach the image host.
	if err := in.Validate(); err != nil {
		h.writeStoreError(w, "create_moment", err)
		return
	}
	in.Image = h.hostImage(r, in.Image)

	moment, err := h.store.CreateMoment(in)
	if err != nil {
		h.writeStoreError(w, "create_moment", err)
		return
	}

	h.logger.Info("moment created",
		zap.String("moment_id", moment.ID),
		zap.String("author", utils.Fingerprint(moment.AnonymousID)),
		zap.Bool("image", moment.Image != ""),
	)
	writeJSON(w, http.StatusCreated, moment)
}

// DeleteMoment removes a moment and its replies; only its author may do so
func (h *Handler) DeleteMoment(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	moment, err := h.store.DeleteMoment(chi.URLParam(r, "id"), req.AnonymousID)
	if err != nil {
		h.writeStoreError(w, "delete_moment", err)
		return
	}

	h.logger.Info("moment deleted",
		zap.String("moment_id", moment.ID),
		zap.String("author", utils.Fingerprint(moment.AnonymousID)),
	)
	writeJSON(w, http.StatusOK, moment)
}

// hostImage swaps an inline data URI for a hosted URL when an image host is
// configured. Upload failures keep the original value; images are opaque
// to the feed.
func (h *Handler) hostImage(r *http.Request, image string) string {
	if h.images == nil || !services.IsDataURI(image) {
		return image
	}
	url, err := h.images.UploadDataURI(r.Context(), image)
	if err != nil {
		h.logger.Warn("image upload failed, keeping inline image", zap.Error(err))
		return image
	}
	return url
}
