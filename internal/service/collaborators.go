package service

import (
	"context"
	"io"

	"feedsng/internal/fetcher"
	"feedsng/internal/opml"
)

//go:generate mockgen -destination=mock/collaborators.go -package=mock . FeedFetcher,OPMLParser

// FeedFetcher turns a feed URL into metadata and entries. Implementations
// bound every call with their own timeout.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (fetcher.Result, error)
}

// OPMLParser extracts top-level feed URLs and named groups from a document.
type OPMLParser interface {
	Parse(r io.Reader) (opml.Subscriptions, error)
}
