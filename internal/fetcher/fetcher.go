// Package fetcher turns a feed URL into feed metadata and entries.
package fetcher

import (
	"errors"
	"fmt"
	"time"
)

// ErrFetch matches every failure returned by a Fetcher.
var ErrFetch = errors.New("feed fetch failed")

// FetchError carries a human-readable reason for a failed fetch.
type FetchError struct {
	URL        string
	StatusCode int
	Reason     string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// Metadata describes the feed document itself. URL is the address the
// document was finally read from, which differs from the requested one when
// it was discovered through an HTML page.
type Metadata struct {
	Title       string
	Description string
	SiteURL     string
	URL         string
}

// Entry is one raw item of a feed document.
type Entry struct {
	Title     string
	Author    string
	HTMLBody  string
	URL       string
	Published *time.Time
	Updated   *time.Time
}

type Result struct {
	Feed    Metadata
	Entries []Entry
}
