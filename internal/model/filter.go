package model

import (
	"fmt"
	"strings"
)

// FeedItemIDFilter restricts a query by item id. Implemented only by
// MaxIDFilter, SinceIDFilter and WithIDsFilter; a nil filter matches all.
type FeedItemIDFilter interface {
	isFeedItemIDFilter()
}

// MaxIDFilter matches items with id <= ID.
type MaxIDFilter struct{ ID FeedItemID }

// SinceIDFilter matches items with id > ID.
type SinceIDFilter struct{ ID FeedItemID }

// WithIDsFilter matches items whose id is in IDs. An empty set matches nothing.
type WithIDsFilter struct{ IDs []FeedItemID }

func (MaxIDFilter) isFeedItemIDFilter()   {}
func (SinceIDFilter) isFeedItemIDFilter() {}
func (WithIDsFilter) isFeedItemIDFilter() {}

// FeedItemFilter selects items by overlay state. The zero value matches all.
type FeedItemFilter string

const (
	FilterAll    FeedItemFilter = ""
	FilterRead   FeedItemFilter = "read"
	FilterUnread FeedItemFilter = "unread"
	FilterSaved  FeedItemFilter = "saved"
)

func ParseFeedItemFilter(s string) (FeedItemFilter, error) {
	switch f := FeedItemFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterRead, FilterUnread, FilterSaved:
		return f, nil
	default:
		return "", fmt.Errorf("unknown feed item filter %q", s)
	}
}
