package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-cms/eventbus"
	"blog-cms/feeder"
	"blog-cms/models"
	"blog-cms/repositories"
)

type captureBus struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (b *captureBus) Publish(_ context.Context, _ string, evt eventbus.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return nil
}

func (b *captureBus) Close() {}

var importNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func feedItems() []feeder.RssFeedItem {
	return []feeder.RssFeedItem{
		{Title: "Hello World", Link: "https://example.com/hello", Description: "first"},
		{Title: "Already Here", Link: "https://example.com/other"},
		{Title: "Known Source", Link: "https://example.com/known"},
		{Title: "", Link: "https://example.com/untitled"},
		{Title: "Second", Link: "https://example.com/second", Author: "bob"},
	}
}

func TestMergeItems(t *testing.T) {
	existing := []models.Post{
		{ID: "1717234200000", Slug: "already-here"},
		{ID: "2", Slug: "x", Source: "https://example.com/known"},
	}

	merged, added := mergeItems(existing, feedItems(), "importer-bot", importNow)

	require.Len(t, added, 2)
	assert.Len(t, merged, 4)

	assert.Equal(t, "hello-world", added[0].Slug)
	assert.Equal(t, "1717234200001", added[0].ID)
	assert.Equal(t, models.StatusDraft, added[0].Status)
	assert.Equal(t, "importer-bot", added[0].Author)
	assert.Equal(t, "2024-06-01", added[0].Date)

	assert.Equal(t, "second", added[1].Slug)
	assert.Equal(t, "1717234200002", added[1].ID)
	assert.Equal(t, "bob", added[1].Author)
}

func TestMergeItemsSkipsDuplicatesWithinFeed(t *testing.T) {
	items := []feeder.RssFeedItem{
		{Title: "Same", Link: "https://example.com/a"},
		{Title: "Same", Link: "https://example.com/b"},
		{Title: "Other", Link: "https://example.com/a"},
	}

	_, added := mergeItems(nil, items, "", importNow)
	require.Len(t, added, 1)
	assert.Equal(t, "same", added[0].Slug)
}

func TestImporterRun(t *testing.T) {
	repo := repositories.NewMemoryRepository(models.Post{ID: "1", Slug: "already-here", Status: models.StatusPublished})
	bus := &captureBus{}
	im := &importer{repo: repo, bus: bus, topic: "posts", now: func() time.Time { return importNow }}

	added, err := im.run(context.Background(), feedItems(), "")
	require.NoError(t, err)
	assert.Len(t, added, 3)

	stored, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 4)

	require.Len(t, bus.events, 3)
	assert.Equal(t, "post.created", bus.events[0].Type)
	assert.Contains(t, string(bus.events[0].Payload), `"source":"importer"`)

	// second run finds nothing new and does not save
	saves := repo.Saves()
	added, err = im.run(context.Background(), feedItems(), "")
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Equal(t, saves, repo.Saves())
}

func TestImporterRunRefusesUnreadableStore(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	repo.FailLoad(errors.New("corrupt"))
	im := &importer{repo: repo, bus: eventbus.NopEventBus{}, now: time.Now}

	_, err := im.run(context.Background(), feedItems(), "")
	assert.Error(t, err)
	assert.Equal(t, 0, repo.Saves())
}

func TestEnrichItems(t *testing.T) {
	items := []feeder.RssFeedItem{
		{Title: "complete", Link: "https://example.com/a", Content: "body", ImageURL: "https://example.com/a.png"},
		{Title: "bare", Link: "https://example.com/b"},
		{Title: "broken", Link: "https://example.com/c"},
		{Title: "no link"},
	}

	var fetched []string
	enrichItems(context.Background(), items, func(_ context.Context, link string) (feeder.Article, error) {
		fetched = append(fetched, link)
		if link == "https://example.com/c" {
			return feeder.Article{}, errors.New("timeout")
		}
		return feeder.Article{Text: "page text", Excerpt: "page excerpt", Image: "https://example.com/b.png"}, nil
	})

	assert.Equal(t, []string{"https://example.com/b", "https://example.com/c"}, fetched)
	assert.Equal(t, "body", items[0].Content)
	assert.Equal(t, "page text", items[1].Content)
	assert.Equal(t, "page excerpt", items[1].Description)
	assert.Equal(t, "https://example.com/b.png", items[1].ImageURL)
	assert.Empty(t, items[2].Content)
}
