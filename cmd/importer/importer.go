package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"blog-cms/internal/logger"
	"blog-cms/eventbus"
	"blog-cms/events"
	"blog-cms/feeder"
	"blog-cms/models"
	"blog-cms/repositories"
)

const eventSource = "importer"

type importer struct {
	repo  repositories.PostRepository
	bus   eventbus.EventBus
	topic string
	now   func() time.Time
}

// mergeItems appends a draft post for every item whose slug and link are not
// already in posts. Ids are creation millis, bumped until unique.
func mergeItems(posts []models.Post, items []feeder.RssFeedItem, author string, now time.Time) ([]models.Post, []models.Post) {
	slugs := make(map[string]struct{}, len(posts))
	sources := make(map[string]struct{}, len(posts))
	ids := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		slugs[p.Slug] = struct{}{}
		if p.Source != "" {
			sources[p.Source] = struct{}{}
		}
		ids[p.ID] = struct{}{}
	}

	today := now.UTC().Format(models.DateLayout)
	next := now.UnixMilli()
	added := make([]models.Post, 0, len(items))

	for _, item := range items {
		if item.Title == "" {
			continue
		}
		if _, ok := sources[item.Link]; ok && item.Link != "" {
			continue
		}

		p := feeder.ToDraftPost(item, "", today)
		if _, ok := slugs[p.Slug]; ok || p.Slug == "" {
			continue
		}
		if p.Author == "" {
			p.Author = author
		}

		var id string
		for {
			id = strconv.FormatInt(next, 10)
			next++
			if _, taken := ids[id]; !taken {
				break
			}
		}
		p.ID = id

		ids[id] = struct{}{}
		slugs[p.Slug] = struct{}{}
		sources[item.Link] = struct{}{}
		posts = append(posts, p)
		added = append(added, p)
	}
	return posts, added
}

type articleFetcher func(ctx context.Context, pageURL string) (feeder.Article, error)

// enrichItems fills a missing body or image from the item's web page. Fetch
// failures keep the item as it came from the feed.
func enrichItems(ctx context.Context, items []feeder.RssFeedItem, fetch articleFetcher) {
	for i := range items {
		item := &items[i]
		if item.Link == "" || (item.Content != "" && item.ImageURL != "") {
			continue
		}
		article, err := fetch(ctx, item.Link)
		if err != nil {
			logger.WarnWithFields("failed to fetch article", logger.Fields{
				"link":  item.Link,
				"error": err.Error(),
			})
			continue
		}
		if item.Content == "" {
			item.Content = article.Text
		}
		if item.Description == "" {
			item.Description = article.Excerpt
		}
		if item.ImageURL == "" {
			item.ImageURL = article.Image
		}
	}
}

// run merges items into the stored collection and publishes one created event
// per new post. A missing store starts empty; any other load error aborts.
func (im *importer) run(ctx context.Context, items []feeder.RssFeedItem, author string) ([]models.Post, error) {
	posts, err := im.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load posts: %w", err)
		}
		posts = []models.Post{}
	}

	merged, added := mergeItems(posts, items, author, im.now())
	if len(added) == 0 {
		return added, nil
	}
	if err := im.repo.Save(ctx, merged); err != nil {
		return nil, fmt.Errorf("save posts: %w", err)
	}

	for _, p := range added {
		evt, err := eventbus.NewJSONEvent("", string(events.PostCreated), events.NewPostChangedEvent(events.PostCreated, eventSource, p, im.now()))
		if err != nil {
			logger.Log.Errorf("failed to build event for post %s: %v", p.ID, err)
			continue
		}
		if err := im.bus.Publish(ctx, im.topic, evt); err != nil {
			logger.ErrorWithFields("failed to publish post event", logger.Fields{
				"post_id": p.ID,
				"error":   err.Error(),
			})
		}
	}
	return added, nil
}
