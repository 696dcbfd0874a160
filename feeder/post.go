package feeder

import (
	"encoding/json"
	"strings"

	"github.com/gosimple/slug"

	"blog-cms/models"
)

// ToDraftPost maps a feed item into a draft post. id and date are supplied by the
// caller; counters start at zero.
func ToDraftPost(item RssFeedItem, id, today string) models.Post {
	content := item.Content
	if content == "" {
		content = item.Description
	}

	date := today
	if !item.PublishedAt.IsZero() {
		date = item.PublishedAt.UTC().Format(models.DateLayout)
	}

	p := models.Post{
		ID:           id,
		Slug:         slug.Make(item.Title),
		Title:        item.Title,
		Excerpt:      excerpt(item.Description, 200),
		Content:      content,
		Tags:         append([]string{}, item.Categories...),
		Keywords:     []string{},
		RelatedPosts: []string{},
		Gallery:      []string{},
		Author:       item.Author,
		Comments:     []json.RawMessage{},
		Status:       models.StatusDraft,
		Date:         date,
		UpdatedAt:    today,
		Source:       item.Link,
		CanonicalURL: item.Link,
		WordCount:    len(strings.Fields(content)),
	}
	if len(item.Categories) > 0 {
		p.Category = item.Categories[0]
	}
	if item.ImageURL != "" {
		img := item.ImageURL
		p.Thumbnail = &img
	}
	return p
}

func excerpt(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max])) + "…"
}
