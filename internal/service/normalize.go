package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"feedsng/internal/fetcher"
	"feedsng/internal/model"
)

const (
	maxTitleLength      = 120
	truncatedTitleWords = 8
)

var errMissingItemURL = errors.New("entry has no url")

// bluemonday policies are safe for concurrent use once built.
var htmlPolicy = bluemonday.UGCPolicy()

// normalizeEntry prepares a fetched entry for storage under feedID.
func normalizeEntry(feedID model.FeedID, entry fetcher.Entry, fetchedAt time.Time) (model.FeedItem, error) {
	itemURL := strings.TrimSpace(entry.URL)
	if itemURL == "" {
		return model.FeedItem{}, errMissingItemURL
	}
	return model.FeedItem{
		FeedID:    feedID,
		Title:     normalizeTitle(entry.Title),
		Author:    strings.TrimSpace(entry.Author),
		HTML:      strings.TrimSpace(htmlPolicy.Sanitize(entry.HTMLBody)),
		URL:       itemURL,
		CreatedAt: createdAt(entry, fetchedAt),
	}, nil
}

// normalizeTitle replaces titles longer than maxTitleLength characters with
// their first words followed by an ellipsis.
func normalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) <= maxTitleLength {
		return title
	}
	words := strings.Fields(title)
	if len(words) > truncatedTitleWords {
		words = words[:truncatedTitleWords]
	}
	return strings.Join(words, " ") + "…"
}

func createdAt(entry fetcher.Entry, fetchedAt time.Time) time.Time {
	switch {
	case entry.Published != nil && !entry.Published.IsZero():
		return entry.Published.UTC()
	case entry.Updated != nil && !entry.Updated.IsZero():
		return entry.Updated.UTC()
	default:
		return fetchedAt.UTC()
	}
}
