package models

import "time"

// DefaultDisplayName is shown for authors who did not pick a name.
const DefaultDisplayName = "Anonymous User"

// Moment is a top-level anonymous post.
type Moment struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Image       string `json:"image,omitempty"`
	AnonymousID string `json:"anonymousId"`
	DisplayName string `json:"displayName"`

	// CreatedAt and Timestamp describe the same instant; Timestamp is Unix
	// milliseconds for clients that sort on a number.
	CreatedAt time.Time `json:"createdAt"`
	Timestamp int64     `json:"timestamp"`

	// Derived at read time, never stored.
	Replies    []Reply `json:"replies"`
	ReplyCount int     `json:"replyCount"`
}

// WithReplies returns a copy of m decorated with its live replies.
func (m Moment) WithReplies(replies []Reply) Moment {
	if replies == nil {
		replies = []Reply{}
	}
	m.Replies = replies
	m.ReplyCount = len(replies)
	return m
}
