package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AnshRaj112/moments-backend/internal/store"
	"github.com/AnshRaj112/moments-backend/pkg/utils"
)

// CreateReplyRequest represents the request to reply to a moment
type CreateReplyRequest struct {
	Text        string `json:"text"`
	AnonymousID string `json:"anonymousId"`
	DisplayName string `json:"displayName,omitempty"`
	MomentID    string `json:"momentId"`
}

// CreateReply handles replying to an existing moment
func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	var req CreateReplyRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, err := h.store.CreateReply(store.NewReply{
		Text:        req.Text,
		AnonymousID: req.AnonymousID,
		DisplayName: req.DisplayName,
		MomentID:    req.MomentID,
	})
	if err != nil {
		h.writeStoreError(w, "create_reply", err)
		return
	}

	h.logger.Info("reply created",
		zap.String("reply_id", reply.ID),
		zap.String("moment_id", reply.MomentID),
		zap.String("author", utils.Fingerprint(reply.AnonymousID)),
	)
	writeJSON(w, http.StatusCreated, reply)
}

// DeleteReply removes a reply; only its author may do so
func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, err := h.store.DeleteReply(chi.URLParam(r, "id"), req.AnonymousID)
	if err != nil {
		h.writeStoreError(w, "delete_reply", err)
		return
	}

	h.logger.Info("reply deleted",
		zap.String("reply_id", reply.ID),
		zap.String("moment_id", reply.MomentID),
	)
	writeJSON(w, http.StatusOK, reply)
}
