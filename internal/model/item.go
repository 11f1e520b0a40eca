package model

import "time"

// FeedItem is one stored entry. (FeedID, URL) is unique.
type FeedItem struct {
	ID        FeedItemID
	FeedID    FeedID
	Title     string
	Author    string
	HTML      string
	URL       string
	CreatedAt time.Time
}

// UserFeedItem pairs an item with one user's overlay state.
type UserFeedItem struct {
	FeedItem
	IsRead  bool
	IsSaved bool
}
