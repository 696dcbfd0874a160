package dto

import (
	"encoding/json"

	"blog-cms/models"
)

// PostSummaryDTO is the public list projection of a post. Meta fields, keywords,
// comments and related posts stay out of listings.
type PostSummaryDTO struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Excerpt      string   `json:"excerpt"`
	Content      string   `json:"content"`
	Thumbnail    *string  `json:"thumbnail"`
	ImageFull    *string  `json:"imageFull"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Author       string   `json:"author"`
	AuthorAvatar string   `json:"authorAvatar,omitempty"`
	AuthorBio    string   `json:"authorBio,omitempty"`
	Date         string   `json:"date"`
	UpdatedAt    string   `json:"updatedAt"`
	ReadTime     string   `json:"readTime,omitempty"`
	WordCount    int      `json:"wordCount"`
	ReadingLevel string   `json:"readingLevel,omitempty"`
	Views        int      `json:"views"`
	Likes        int      `json:"likes"`
	Shares       int      `json:"shares"`
	Featured     bool     `json:"featured"`
	Rating       *float64 `json:"rating,omitempty"`
	Gallery      []string `json:"gallery"`
	Series       string   `json:"series,omitempty"`
	Language     string   `json:"language,omitempty"`
}

// PostDetailDTO is the public single-post projection. Keywords and status are
// never exposed.
type PostDetailDTO struct {
	ID              string            `json:"id"`
	Slug            string            `json:"slug"`
	Title           string            `json:"title"`
	MetaTitle       string            `json:"metaTitle,omitempty"`
	MetaDescription string            `json:"metaDescription,omitempty"`
	Excerpt         string            `json:"excerpt"`
	Content         string            `json:"content"`
	Thumbnail       *string           `json:"thumbnail"`
	ImageFull       *string           `json:"imageFull"`
	Category        string            `json:"category"`
	Tags            []string          `json:"tags"`
	Author          string            `json:"author"`
	AuthorAvatar    string            `json:"authorAvatar,omitempty"`
	AuthorBio       string            `json:"authorBio,omitempty"`
	AuthorLink      string            `json:"authorLink,omitempty"`
	Date            string            `json:"date"`
	UpdatedAt       string            `json:"updatedAt"`
	ReadTime        string            `json:"readTime,omitempty"`
	WordCount       int               `json:"wordCount"`
	ReadingLevel    string            `json:"readingLevel,omitempty"`
	Views           int               `json:"views"`
	Likes           int               `json:"likes"`
	Shares          int               `json:"shares"`
	Featured        bool              `json:"featured"`
	Rating          *float64          `json:"rating,omitempty"`
	Gallery         []string          `json:"gallery"`
	Comments        []json.RawMessage `json:"comments"`
	CommentCount    int               `json:"commentCount"`
	RelatedPosts    []string          `json:"relatedPosts"`
	Series          string            `json:"series,omitempty"`
	Source          string            `json:"source,omitempty"`
	Language        string            `json:"language,omitempty"`
	CanonicalURL    string            `json:"canonicalUrl,omitempty"`
}

func NewPostSummaryDTO(p models.Post) PostSummaryDTO {
	return PostSummaryDTO{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Excerpt:      p.Excerpt,
		Content:      p.Content,
		Thumbnail:    p.Thumbnail,
		ImageFull:    p.ImageFull,
		Category:     p.Category,
		Tags:         p.Tags,
		Author:       p.Author,
		AuthorAvatar: p.AuthorAvatar,
		AuthorBio:    p.AuthorBio,
		Date:         p.Date,
		UpdatedAt:    p.UpdatedAt,
		ReadTime:     p.ReadTime,
		WordCount:    p.WordCount,
		ReadingLevel: p.ReadingLevel,
		Views:        p.Views,
		Likes:        p.Likes,
		Shares:       p.Shares,
		Featured:     p.Featured,
		Rating:       p.Rating,
		Gallery:      p.Gallery,
		Series:       p.Series,
		Language:     p.Language,
	}
}

func NewPostSummaryDTOs(posts []models.Post) []PostSummaryDTO {
	out := make([]PostSummaryDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostSummaryDTO(p))
	}
	return out
}

func NewPostDetailDTO(p models.Post) PostDetailDTO {
	return PostDetailDTO{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		Excerpt:         p.Excerpt,
		Content:         p.Content,
		Thumbnail:       p.Thumbnail,
		ImageFull:       p.ImageFull,
		Category:        p.Category,
		Tags:            p.Tags,
		Author:          p.Author,
		AuthorAvatar:    p.AuthorAvatar,
		AuthorBio:       p.AuthorBio,
		AuthorLink:      p.AuthorLink,
		Date:            p.Date,
		UpdatedAt:       p.UpdatedAt,
		ReadTime:        p.ReadTime,
		WordCount:       p.WordCount,
		ReadingLevel:    p.ReadingLevel,
		Views:           p.Views,
		Likes:           p.Likes,
		Shares:          p.Shares,
		Featured:        p.Featured,
		Rating:          p.Rating,
		Gallery:         p.Gallery,
		Comments:        p.Comments,
		CommentCount:    p.CommentCount,
		RelatedPosts:    p.RelatedPosts,
		Series:          p.Series,
		Source:          p.Source,
		Language:        p.Language,
		CanonicalURL:    p.CanonicalURL,
	}
}
