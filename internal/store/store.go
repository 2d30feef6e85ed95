// Package store holds the in-memory feed: moments, their replies, and the
// rules tying them together (ownership, ordering, retention, cascade).
//
// Moments and replies share cross-references (cascade on delete, replyCount),
// so both collections live behind a single lock. Every mutation, including
// retention eviction and cascade, runs as one critical section.
package store

import (
	"sync"
	"time"

	"github.com/AnshRaj112/moments-backend/internal/models"
	"github.com/google/uuid"
)

const (
	// DefaultMaxMoments is how many moments are retained before the oldest are evicted.
	DefaultMaxMoments = 1000
	// DefaultMaxReplies is how many replies are retained across all moments.
	DefaultMaxReplies = 5000
)

// Observer is told about retention evictions. Calls happen after the store
// lock is released.
type Observer interface {
	MomentsEvicted(n int)
	RepliesEvicted(n int)
}

type nopObserver struct{}

func (nopObserver) MomentsEvicted(int) {}
func (nopObserver) RepliesEvicted(int) {}

// Option configures a Store.
type Option func(*Store)

// WithLimits sets the retention bounds. Non-positive values keep the defaults.
func WithLimits(maxMoments, maxReplies int) Option {
	return func(s *Store) {
		if maxMoments > 0 {
			s.maxMoments = maxMoments
		}
		if maxReplies > 0 {
			s.maxReplies = maxReplies
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithObserver registers an eviction observer.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// Store owns the moment and reply collections. Create one per process and
// pass it to whatever needs it.
type Store struct {
	mu sync.RWMutex

	// Both slices are kept oldest first, which is insertion order because
	// creation timestamps never go backwards.
	moments []models.Moment
	replies []models.Reply

	maxMoments int
	maxReplies int

	now         func() time.Time
	newID       func() string
	lastCreated time.Time
	observer    Observer
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		maxMoments: DefaultMaxMoments,
		maxReplies: DefaultMaxReplies,
		now:        time.Now,
		newID:      uuid.NewString,
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limits returns the retention bounds in effect.
func (s *Store) Limits() (maxMoments, maxReplies int) {
	return s.maxMoments, s.maxReplies
}

// stamp returns the creation time for a new entry. Must hold s.mu.
func (s *Store) stamp() time.Time {
	t := s.now().UTC()
	if t.Before(s.lastCreated) {
		t = s.lastCreated
	}
	s.lastCreated = t
	return t
}

// Stats counts live moments, replies and distinct authors.
func (s *Store) Stats() models.FeedStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	authors := make(map[string]struct{}, len(s.moments))
	for _, m := range s.moments {
		authors[m.AnonymousID] = struct{}{}
	}
	for _, r := range s.replies {
		authors[r.AnonymousID] = struct{}{}
	}
	return models.FeedStats{
		Moments: len(s.moments),
		Replies: len(s.replies),
		Authors: len(authors),
	}
}
