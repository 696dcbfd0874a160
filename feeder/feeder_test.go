package feeder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-cms/feeder"
	"blog-cms/models"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
  <title>Sample</title>
  <link>https://example.com</link>
  <description>sample feed</description>
  <item>
    <title>First Post</title>
    <link>https://example.com/first</link>
    <guid>first</guid>
    <description>Short intro</description>
    <content:encoded><![CDATA[<p>Full body of the first post</p>]]></content:encoded>
    <author>writer@example.com (Writer)</author>
    <category>Go</category>
    <category>Web</category>
    <enclosure url="https://example.com/first.png" type="image/png" length="10"/>
    <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
  </item>
  <item>
    <title>Second Post</title>
    <link>https://example.com/second</link>
    <guid>second</guid>
    <description>Only a description</description>
  </item>
</channel>
</rss>`

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchRssFeeds(t *testing.T) {
	srv := newFeedServer(t)

	items, err := feeder.FetchRssFeeds(context.Background(), srv.URL, 0, feeder.Options{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "First Post", first.Title)
	assert.Equal(t, "https://example.com/first", first.Link)
	assert.Equal(t, "first", first.GUID)
	assert.Equal(t, []string{"Go", "Web"}, first.Categories)
	assert.Equal(t, "https://example.com/first.png", first.ImageURL)
	assert.Contains(t, first.Content, "Full body")
	assert.Equal(t, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), first.PublishedAt.UTC())

	assert.True(t, items[1].PublishedAt.IsZero())
}

func TestFetchRssFeedsLimit(t *testing.T) {
	srv := newFeedServer(t)

	items, err := feeder.FetchRssFeeds(context.Background(), srv.URL, 1, feeder.Options{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "First Post", items[0].Title)
}

func TestFetchRssFeedsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := feeder.FetchRssFeeds(context.Background(), srv.URL, 0, feeder.Options{Timeout: time.Second})
	assert.Error(t, err)
}

func TestToDraftPost(t *testing.T) {
	item := feeder.RssFeedItem{
		Title:       "Hello, World!",
		Link:        "https://example.com/hello",
		Description: "intro",
		Content:     "one two three",
		Author:      "Writer",
		Categories:  []string{"tech", "go"},
		ImageURL:    "https://example.com/h.png",
		PublishedAt: time.Date(2024, 2, 3, 23, 0, 0, 0, time.UTC),
	}

	p := feeder.ToDraftPost(item, "100", "2024-05-05")

	assert.Equal(t, "100", p.ID)
	assert.Equal(t, "hello-world", p.Slug)
	assert.Equal(t, models.StatusDraft, p.Status)
	assert.Equal(t, "tech", p.Category)
	assert.Equal(t, []string{"tech", "go"}, p.Tags)
	assert.Equal(t, "2024-02-03", p.Date)
	assert.Equal(t, "2024-05-05", p.UpdatedAt)
	assert.Equal(t, 3, p.WordCount)
	require.NotNil(t, p.Thumbnail)
	assert.Equal(t, "https://example.com/h.png", *p.Thumbnail)
	assert.Equal(t, "https://example.com/hello", p.Source)
}

func TestToDraftPostFallbacks(t *testing.T) {
	p := feeder.ToDraftPost(feeder.RssFeedItem{Title: "x", Description: "only description"}, "1", "2024-05-05")

	assert.Equal(t, "only description", p.Content)
	assert.Equal(t, "2024-05-05", p.Date)
	assert.Empty(t, p.Category)
	assert.Nil(t, p.Thumbnail)
}
