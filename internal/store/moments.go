package store

import (
	"slices"

	"github.com/AnshRaj112/moments-backend/internal/models"
)

// NewMoment is the input to CreateMoment.
type NewMoment struct {
	Text        string
	Image       string
	AnonymousID string
	DisplayName string
}

// Validate applies CreateMoment's input checks without touching the store,
// so callers can reject bad input before doing expensive work.
func (in NewMoment) Validate() error {
	if _, err := normalizeText(in.Text); err != nil {
		return err
	}
	return requireAuthor(in.AnonymousID)
}

// ListMoments returns every moment newest first, each with its replies
// oldest first. The result shares no memory with the store.
func (s *Store) ListMoments() []models.Moment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byMoment := make(map[string][]models.Reply, len(s.moments))
	for _, r := range s.replies {
		byMoment[r.MomentID] = append(byMoment[r.MomentID], r)
	}

	out := make([]models.Moment, 0, len(s.moments))
	for i := len(s.moments) - 1; i >= 0; i-- {
		m := s.moments[i]
		out = append(out, m.WithReplies(byMoment[m.ID]))
	}
	return out
}

// CreateMoment validates and stores a new moment. When the store is over
// capacity the oldest moments are evicted along with their replies.
func (s *Store) CreateMoment(in NewMoment) (models.Moment, error) {
	text, err := normalizeText(in.Text)
	if err != nil {
		return models.Moment{}, err
	}
	if err := requireAuthor(in.AnonymousID); err != nil {
		return models.Moment{}, err
	}

	s.mu.Lock()
	createdAt := s.stamp()
	m := models.Moment{
		ID:          s.newID(),
		Text:        text,
		Image:       in.Image,
		AnonymousID: in.AnonymousID,
		DisplayName: displayNameOrDefault(in.DisplayName),
		CreatedAt:   createdAt,
		Timestamp:   createdAt.UnixMilli(),
	}
	s.moments = append(s.moments, m)
	evictedMoments, evictedReplies := s.enforceMomentLimit()
	s.mu.Unlock()

	s.reportEvictions(evictedMoments, evictedReplies)
	return m.WithReplies(nil), nil
}

// DeleteMoment removes a moment owned by anonymousID and every reply to it.
// A moment that exists but belongs to someone else is reported as not found.
func (s *Store) DeleteMoment(id, anonymousID string) (models.Moment, error) {
	if err := requireID("id", id, "Moment ID is required"); err != nil {
		return models.Moment{}, err
	}
	if err := requireAuthor(anonymousID); err != nil {
		return models.Moment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfMoment(id)
	if idx == -1 || s.moments[idx].AnonymousID != anonymousID {
		return models.Moment{}, notFoundOrUnauthorized("moment", id)
	}
	m := s.moments[idx]
	s.moments = slices.Delete(s.moments, idx, idx+1)
	s.deleteRepliesByMoment(id)
	return m.WithReplies(nil), nil
}

// enforceMomentLimit drops the oldest moments beyond maxMoments and cascades
// their replies. Must hold s.mu.
func (s *Store) enforceMomentLimit() (moments, replies int) {
	excess := len(s.moments) - s.maxMoments
	if excess <= 0 {
		return 0, 0
	}
	for _, m := range s.moments[:excess] {
		replies += s.deleteRepliesByMoment(m.ID)
	}
	kept := make([]models.Moment, len(s.moments)-excess, s.maxMoments+1)
	copy(kept, s.moments[excess:])
	s.moments = kept
	return excess, replies
}

// indexOfMoment returns the slice index of id, or -1. Must hold s.mu.
func (s *Store) indexOfMoment(id string) int {
	for i := range s.moments {
		if s.moments[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) reportEvictions(moments, replies int) {
	if moments > 0 {
		s.observer.MomentsEvicted(moments)
	}
	if replies > 0 {
		s.observer.RepliesEvicted(replies)
	}
}
