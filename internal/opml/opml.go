// Package opml reads and writes OPML subscription lists.
package opml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrInvalidDocument is returned when a document cannot be read as OPML.
var ErrInvalidDocument = errors.New("invalid opml document")

// OPML represents the root of an OPML document.
type OPML struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    Head     `xml:"head"`
	Body    Body     `xml:"body"`
}

type Head struct {
	Title       string `xml:"title,omitempty"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

type Body struct {
	Outlines []Outline `xml:"outline"`
}

// Outline is either a feed (XMLURL set) or a folder of outlines.
type Outline struct {
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr,omitempty"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Outlines []Outline `xml:"outline,omitempty"`
}

// Group is a named folder of feed URLs.
type Group struct {
	Name string
	URLs []string
}

// Subscriptions is the import view of a document: feeds at the top level and
// named groups. Folders nested inside a folder are merged into the top-level
// one; feeds of a folder without a name are listed at the top level.
type Subscriptions struct {
	URLs   []string
	Groups []Group
}

// Decode reads a raw OPML document.
func Decode(r io.Reader) (OPML, error) {
	var doc OPML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return OPML{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// Parser implements the importer contract on top of Decode.
type Parser struct{}

// Parse decodes r and flattens it into Subscriptions. URLs are trimmed and
// de-duplicated per list; groups with equal names are merged.
func (Parser) Parse(r io.Reader) (Subscriptions, error) {
	doc, err := Decode(r)
	if err != nil {
		return Subscriptions{}, err
	}

	var subs Subscriptions
	seenTop := make(map[string]bool)
	groupIndex := make(map[string]int)
	for _, o := range doc.Body.Outlines {
		if u := strings.TrimSpace(o.XMLURL); u != "" {
			if !seenTop[u] {
				seenTop[u] = true
				subs.URLs = append(subs.URLs, u)
			}
			continue
		}
		if len(o.Outlines) == 0 {
			continue
		}
		name := strings.TrimSpace(o.Text)
		if name == "" {
			name = strings.TrimSpace(o.Title)
		}
		if name == "" {
			// An unnamed folder cannot become a group; its feeds stay subscribed directly.
			for _, u := range appendFeedURLs(nil, o.Outlines) {
				if !seenTop[u] {
					seenTop[u] = true
					subs.URLs = append(subs.URLs, u)
				}
			}
			continue
		}
		idx, ok := groupIndex[name]
		if !ok {
			idx = len(subs.Groups)
			groupIndex[name] = idx
			subs.Groups = append(subs.Groups, Group{Name: name})
		}
		subs.Groups[idx].URLs = appendFeedURLs(subs.Groups[idx].URLs, o.Outlines)
	}
	return subs, nil
}

func appendFeedURLs(urls []string, outlines []Outline) []string {
	for _, o := range outlines {
		if u := strings.TrimSpace(o.XMLURL); u != "" {
			if !contains(urls, u) {
				urls = append(urls, u)
			}
			continue
		}
		urls = appendFeedURLs(urls, o.Outlines)
	}
	return urls
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Feed is one exported subscription.
type Feed struct {
	Title   string
	XMLURL  string
	HTMLURL string
}

// Folder is one exported group.
type Folder struct {
	Name  string
	Feeds []Feed
}

// Export renders feeds at the top level followed by one outline per folder.
func Export(title string, feeds []Feed, folders []Folder) ([]byte, error) {
	doc := OPML{
		Version: "2.0",
		Head: Head{
			Title:       title,
			DateCreated: time.Now().UTC().Format(time.RFC1123Z),
		},
	}
	for _, f := range feeds {
		doc.Body.Outlines = append(doc.Body.Outlines, feedOutline(f))
	}
	for _, folder := range folders {
		outline := Outline{Text: folder.Name, Title: folder.Name}
		for _, f := range folder.Feeds {
			outline.Outlines = append(outline.Outlines, feedOutline(f))
		}
		doc.Body.Outlines = append(doc.Body.Outlines, outline)
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode opml: %w", err)
	}
	return append([]byte(xml.Header), output...), nil
}

func feedOutline(f Feed) Outline {
	return Outline{
		Text:    f.Title,
		Title:   f.Title,
		Type:    "rss",
		XMLURL:  f.XMLURL,
		HTMLURL: f.HTMLURL,
	}
}
