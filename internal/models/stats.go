package models

// FeedStats summarises the feed for dashboards and the client header.
type FeedStats struct {
	Moments int `json:"moments"`
	Replies int `json:"replies"`
	Authors int `json:"authors"`
}
