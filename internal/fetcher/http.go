package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Noooste/azuretls-client"
	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"feedsng/internal/config"
	"feedsng/internal/logger"
	"feedsng/internal/network"
)

const maxBodySize = 10 << 20

type Options struct {
	Timeout time.Duration
	// HostRateLimit is requests per second per host; <= 0 disables limiting.
	HostRateLimit float64
	// BrowserFallback retries blocked responses (403, 429, 503) with a
	// Chrome-fingerprinted session.
	BrowserFallback bool
	UserAgent       string
}

// HTTPFetcher fetches feeds over HTTP. Concurrent fetches of the same URL
// share one request.
type HTTPFetcher struct {
	clients *network.ClientFactory
	opts    Options
	group   singleflight.Group

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewHTTPFetcher(clients *network.ClientFactory, opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.UserAgent
	}
	return &HTTPFetcher{
		clients:  clients,
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Fetch downloads and parses the feed at feedURL. When feedURL points at an
// HTML page, the first advertised RSS or Atom alternate link is followed.
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) (Result, error) {
	feedURL = strings.TrimSpace(feedURL)
	if !isValidURL(feedURL) {
		return Result{}, &FetchError{URL: feedURL, Reason: "invalid url"}
	}

	v, err, shared := f.group.Do(feedURL, func() (any, error) {
		// Shared callers must not be cancelled by the first caller going away.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.opts.Timeout)
		defer cancel()
		return f.fetch(fetchCtx, feedURL, true)
	})
	if shared {
		logger.Debug("feed fetch shared", "module", "fetcher", "action", "fetch", "resource", "feed", "result", "ok", "url", feedURL)
	}
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (f *HTTPFetcher) fetch(ctx context.Context, feedURL string, discover bool) (Result, error) {
	body, contentType, err := f.get(ctx, feedURL)
	if err != nil {
		return Result{}, err
	}

	parsed, parseErr := gofeed.NewParser().Parse(bytes.NewReader(body))
	if parseErr == nil {
		return toResult(feedURL, parsed), nil
	}

	if discover && looksLikeHTML(contentType, body) {
		if alternate, ok := discoverFeedURL(feedURL, body); ok && alternate != feedURL {
			logger.Debug("feed discovered", "module", "fetcher", "action", "discover", "resource", "feed", "result", "ok", "url", feedURL, "feed_url", alternate)
			return f.fetch(ctx, alternate, false)
		}
	}
	return Result{}, &FetchError{URL: feedURL, Reason: "parse feed: " + parseErr.Error(), Err: parseErr}
}

func (f *HTTPFetcher) get(ctx context.Context, feedURL string) ([]byte, string, error) {
	if err := f.wait(ctx, feedURL); err != nil {
		return nil, "", &FetchError{URL: feedURL, Reason: err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, "", &FetchError{URL: feedURL, Reason: "build request: " + err.Error(), Err: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, text/html;q=0.7, */*;q=0.5")

	resp, err := f.clients.NewHTTPClient(f.opts.Timeout).Do(req)
	if err != nil {
		reason := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout after " + f.opts.Timeout.String()
		}
		return nil, "", &FetchError{URL: feedURL, Reason: reason, Err: err}
	}
	defer resp.Body.Close()

	if isBlocked(resp.StatusCode) && f.opts.BrowserFallback {
		logger.Debug("feed fetch blocked, retrying with browser session", "module", "fetcher", "action", "fetch", "resource", "feed", "result", "retry", "url", feedURL, "status_code", resp.StatusCode)
		return f.getWithBrowser(ctx, feedURL)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, "", &FetchError{URL: feedURL, StatusCode: resp.StatusCode, Reason: statusReason(resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, "", &FetchError{URL: feedURL, Reason: "read body: " + err.Error(), Err: err}
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (f *HTTPFetcher) getWithBrowser(ctx context.Context, feedURL string) ([]byte, string, error) {
	session := f.clients.NewAzureSession(ctx, f.opts.Timeout)
	defer session.Close()

	resp, err := session.Do(&azuretls.Request{
		Method: http.MethodGet,
		Url:    feedURL,
		OrderedHeaders: azuretls.OrderedHeaders{
			{"accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/html;q=0.8,*/*;q=0.7"},
			{"accept-language", "en-US,en;q=0.9"},
			{"sec-ch-ua", config.ChromeSecChUa},
			{"sec-ch-ua-mobile", "?0"},
			{"sec-ch-ua-platform", `"Windows"`},
			{"sec-fetch-dest", "document"},
			{"sec-fetch-mode", "navigate"},
			{"sec-fetch-site", "none"},
			{"user-agent", config.ChromeUserAgent},
		},
	})
	if err != nil {
		return nil, "", &FetchError{URL: feedURL, Reason: "browser session: " + err.Error(), Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, "", &FetchError{URL: feedURL, StatusCode: resp.StatusCode, Reason: statusReason(resp.StatusCode)}
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// wait blocks on the per-host limiter for feedURL.
func (f *HTTPFetcher) wait(ctx context.Context, feedURL string) error {
	if f.opts.HostRateLimit <= 0 {
		return nil
	}
	host := hostOf(feedURL)
	f.mu.Lock()
	limiter, ok := f.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(f.opts.HostRateLimit), 1)
		f.limiters[host] = limiter
	}
	f.mu.Unlock()
	return limiter.Wait(ctx)
}

// discoverFeedURL finds the first RSS or Atom alternate link in an HTML page.
func discoverFeedURL(pageURL string, body []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}

	var found string
	doc.Find(`link[rel="alternate"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		kind := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
		if kind != "application/rss+xml" && kind != "application/atom+xml" {
			return true
		}
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return true
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		found = base.ResolveReference(ref).String()
		return false
	})
	return found, found != ""
}

func toResult(feedURL string, parsed *gofeed.Feed) Result {
	result := Result{
		Feed: Metadata{
			Title:       strings.TrimSpace(parsed.Title),
			Description: strings.TrimSpace(parsed.Description),
			SiteURL:     strings.TrimSpace(parsed.Link),
			URL:         feedURL,
		},
		Entries: make([]Entry, 0, len(parsed.Items)),
	}
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		result.Entries = append(result.Entries, toEntry(item))
	}
	return result
}

func toEntry(item *gofeed.Item) Entry {
	entry := Entry{
		Title:     item.Title,
		URL:       item.Link,
		HTMLBody:  item.Content,
		Published: item.PublishedParsed,
		Updated:   item.UpdatedParsed,
	}
	if entry.HTMLBody == "" {
		entry.HTMLBody = item.Description
	}
	if entry.URL == "" && isValidURL(item.GUID) {
		entry.URL = item.GUID
	}
	if item.Author != nil && item.Author.Name != "" {
		entry.Author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		entry.Author = item.Authors[0].Name
	}
	return entry
}

func isBlocked(status int) bool {
	return status == http.StatusForbidden || status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

func statusReason(status int) string {
	return fmt.Sprintf("HTTP %d %s", status, http.StatusText(status))
}

func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "html") {
		return true
	}
	head := body
	if len(head) > 512 {
		head = head[:512]
	}
	lower := bytes.ToLower(head)
	return bytes.Contains(lower, []byte("<html")) || bytes.Contains(lower, []byte("<!doctype html"))
}

func isValidURL(value string) bool {
	parsed, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

func hostOf(feedURL string) string {
	parsed, err := url.Parse(feedURL)
	if err != nil {
		return feedURL
	}
	return parsed.Host
}
