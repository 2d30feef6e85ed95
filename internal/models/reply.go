package models

import "time"

// Reply is a comment attached to exactly one Moment.
type Reply struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	AnonymousID string    `json:"anonymousId"`
	DisplayName string    `json:"displayName"`
	MomentID    string    `json:"momentId"`
	CreatedAt   time.Time `json:"createdAt"`
	Timestamp   int64     `json:"timestamp"`
}
