package opml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"feedsng/internal/opml"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>subs</title></head>
  <body>
    <outline text="Top" type="rss" xmlUrl="https://a.example/feed"/>
    <outline text="Top again" type="rss" xmlUrl=" https://a.example/feed "/>
    <outline text="Tech">
      <outline text="Go" type="rss" xmlUrl="https://go.dev/blog/feed.atom"/>
      <outline text="Deeper">
        <outline text="Nested" type="rss" xmlUrl="https://nested.example/rss"/>
      </outline>
    </outline>
    <outline title="Tech">
      <outline text="Go dup" type="rss" xmlUrl="https://go.dev/blog/feed.atom"/>
      <outline text="More" type="rss" xmlUrl="https://more.example/rss"/>
    </outline>
    <outline text="Empty folder"/>
  </body>
</opml>`

func TestParser_Parse(t *testing.T) {
	subs, err := opml.Parser{}.Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example/feed"}, subs.URLs)
	require.Equal(t, []opml.Group{{
		Name: "Tech",
		URLs: []string{"https://go.dev/blog/feed.atom", "https://nested.example/rss", "https://more.example/rss"},
	}}, subs.Groups)
}

func TestParser_ParseUnnamedFolderFeedsStayTopLevel(t *testing.T) {
	doc := `<opml version="2.0"><body>
  <outline text="A" xmlUrl="https://a.example/feed"/>
  <outline text="  ">
    <outline text="A dup" xmlUrl="https://a.example/feed"/>
    <outline text="B" xmlUrl="https://b.example/feed"/>
  </outline>
</body></opml>`
	subs, err := opml.Parser{}.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example/feed", "https://b.example/feed"}, subs.URLs)
	require.Empty(t, subs.Groups)
}

func TestParser_ParseRejectsNonOPML(t *testing.T) {
	for _, doc := range []string{"", "not xml at all", "<html><body/></html>"} {
		_, err := opml.Parser{}.Parse(strings.NewReader(doc))
		require.ErrorIs(t, err, opml.ErrInvalidDocument, doc)
	}
}

func TestExport_RoundTripsThroughParser(t *testing.T) {
	data, err := opml.Export("FeedsNG",
		[]opml.Feed{{Title: "A", XMLURL: "https://a.example/feed", HTMLURL: "https://a.example"}},
		[]opml.Folder{{Name: "News", Feeds: []opml.Feed{{Title: "B", XMLURL: "https://b.example/rss"}}}},
	)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("<?xml")))

	doc, err := opml.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "2.0", doc.Version)
	require.Equal(t, "FeedsNG", doc.Head.Title)
	require.Equal(t, "https://a.example", doc.Body.Outlines[0].HTMLURL)

	subs, err := opml.Parser{}.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example/feed"}, subs.URLs)
	require.Equal(t, []opml.Group{{Name: "News", URLs: []string{"https://b.example/rss"}}}, subs.Groups)
}
