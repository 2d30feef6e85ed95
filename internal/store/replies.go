package store

import (
	"slices"

	"github.com/AnshRaj112/moments-backend/internal/models"
)

// NewReply is the input to CreateReply.
type NewReply struct {
	Text        string
	AnonymousID string
	DisplayName string
	MomentID    string
}

// CreateReply validates and appends a reply to an existing moment. When
// the store holds more than maxReplies replies, the oldest ones are evicted
// regardless of which moment they belong to.
func (s *Store) CreateReply(in NewReply) (models.Reply, error) {
	text, err := normalizeText(in.Text)
	if err != nil {
		return models.Reply{}, err
	}
	if err := requireAuthor(in.AnonymousID); err != nil {
		return models.Reply{}, err
	}
	if err := requireID("momentId", in.MomentID, "Moment ID is required"); err != nil {
		return models.Reply{}, err
	}

	s.mu.Lock()
	if s.indexOfMoment(in.MomentID) == -1 {
		s.mu.Unlock()
		return models.Reply{}, notFound("moment", in.MomentID)
	}
	createdAt := s.stamp()
	r := models.Reply{
		ID:          s.newID(),
		Text:        text,
		AnonymousID: in.AnonymousID,
		DisplayName: displayNameOrDefault(in.DisplayName),
		MomentID:    in.MomentID,
		CreatedAt:   createdAt,
		Timestamp:   createdAt.UnixMilli(),
	}
	s.replies = append(s.replies, r)
	evicted := s.enforceReplyLimit()
	s.mu.Unlock()

	s.reportEvictions(0, evicted)
	return r, nil
}

// DeleteReply removes a reply owned by anonymousID. As with moments, a reply
// owned by someone else is reported as not found.
func (s *Store) DeleteReply(id, anonymousID string) (models.Reply, error) {
	if err := requireID("id", id, "Reply ID is required"); err != nil {
		return models.Reply{}, err
	}
	if err := requireAuthor(anonymousID); err != nil {
		return models.Reply{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.replies, func(r models.Reply) bool {
		return r.ID == id && r.AnonymousID == anonymousID
	})
	if idx == -1 {
		return models.Reply{}, notFoundOrUnauthorized("reply", id)
	}
	r := s.replies[idx]
	s.replies = slices.Delete(s.replies, idx, idx+1)
	return r, nil
}

// deleteRepliesByMoment removes every reply to momentID and returns how many
// were removed. Must hold s.mu.
func (s *Store) deleteRepliesByMoment(momentID string) int {
	before := len(s.replies)
	s.replies = slices.DeleteFunc(s.replies, func(r models.Reply) bool {
		return r.MomentID == momentID
	})
	return before - len(s.replies)
}

// enforceReplyLimit drops the oldest replies beyond maxReplies. Must hold s.mu.
func (s *Store) enforceReplyLimit() int {
	excess := len(s.replies) - s.maxReplies
	if excess <= 0 {
		return 0
	}
	kept := make([]models.Reply, len(s.replies)-excess, s.maxReplies+1)
	copy(kept, s.replies[excess:])
	s.replies = kept
	return excess
}
