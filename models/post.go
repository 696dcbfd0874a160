package models

import (
	"encoding/json"
	"time"
)

const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// DateLayout is the calendar-date format used for Post.Date and Post.UpdatedAt.
const DateLayout = "2006-01-02"

// Post represents a blog post.
// Collection: posts (mongo) / data.json array element (file)
type Post struct {
	ID   string `bson:"_id" json:"id"`
	Slug string `bson:"slug" json:"slug"`

	Title           string   `bson:"title" json:"title"`
	MetaTitle       string   `bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string   `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	Keywords        []string `bson:"keywords" json:"keywords"`
	Excerpt         string   `bson:"excerpt" json:"excerpt"`
	Content         string   `bson:"content" json:"content"`
	Category        string   `bson:"category" json:"category"`
	Tags            []string `bson:"tags" json:"tags"`
	RelatedPosts    []string `bson:"relatedPosts" json:"relatedPosts"`

	// Thumbnail and ImageFull are public URLs or paths under /uploads; nil when never set.
	Thumbnail *string  `bson:"thumbnail" json:"thumbnail"`
	ImageFull *string  `bson:"imageFull" json:"imageFull"`
	Gallery   []string `bson:"gallery" json:"gallery"`

	Author       string `bson:"author" json:"author"`
	AuthorAvatar string `bson:"authorAvatar,omitempty" json:"authorAvatar,omitempty"`
	AuthorBio    string `bson:"authorBio,omitempty" json:"authorBio,omitempty"`
	AuthorLink   string `bson:"authorLink,omitempty" json:"authorLink,omitempty"`

	Views        int               `bson:"views" json:"views"`
	Likes        int               `bson:"likes" json:"likes"`
	Shares       int               `bson:"shares" json:"shares"`
	CommentCount int               `bson:"commentCount" json:"commentCount"`
	Comments     []json.RawMessage `bson:"comments" json:"comments"`

	Status    string `bson:"status" json:"status"`
	Date      string `bson:"date" json:"date"`
	UpdatedAt string `bson:"updatedAt" json:"updatedAt"`

	Featured     bool     `bson:"featured" json:"featured"`
	Rating       *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	ReadTime     string   `bson:"readTime,omitempty" json:"readTime,omitempty"`
	WordCount    int      `bson:"wordCount" json:"wordCount"`
	ReadingLevel string   `bson:"readingLevel,omitempty" json:"readingLevel,omitempty"`
	Series       string   `bson:"series,omitempty" json:"series,omitempty"`
	Source       string   `bson:"source,omitempty" json:"source,omitempty"`
	Language     string   `bson:"language,omitempty" json:"language,omitempty"`
	CanonicalURL string   `bson:"canonicalUrl,omitempty" json:"canonicalUrl,omitempty"`
}

// IsPublished reports whether the post is visible on the public API.
func (p Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// PublishedTime parses Date. Unparsable or empty dates yield the zero time.
func (p Post) PublishedTime() time.Time {
	return ParseDate(p.Date)
}

// ParseDate accepts a calendar date (2006-01-02) or a full RFC3339 timestamp.
func ParseDate(s string) time.Time {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// Clone returns a deep copy so callers never share slices with a stored collection.
func (p Post) Clone() Post {
	c := p
	c.Keywords = cloneStrings(p.Keywords)
	c.Tags = cloneStrings(p.Tags)
	c.RelatedPosts = cloneStrings(p.RelatedPosts)
	c.Gallery = cloneStrings(p.Gallery)
	if p.Thumbnail != nil {
		v := *p.Thumbnail
		c.Thumbnail = &v
	}
	if p.ImageFull != nil {
		v := *p.ImageFull
		c.ImageFull = &v
	}
	if p.Rating != nil {
		v := *p.Rating
		c.Rating = &v
	}
	if p.Comments != nil {
		c.Comments = make([]json.RawMessage, len(p.Comments))
		for i, raw := range p.Comments {
			c.Comments[i] = append(json.RawMessage(nil), raw...)
		}
	}
	return c
}

// ClonePosts deep-copies a whole collection.
func ClonePosts(posts []Post) []Post {
	if posts == nil {
		return nil
	}
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
