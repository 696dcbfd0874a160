package dto

import "blog-cms/models"

// PostFormDTO is the dashboard post form, bound from multipart or urlencoded
// bodies. Csv fields are split by the service.
type PostFormDTO struct {
	Title           string `form:"title"`
	Slug            string `form:"slug"`
	Status          string `form:"status"`
	MetaTitle       string `form:"metaTitle"`
	MetaDescription string `form:"metaDescription"`
	Keywords        string `form:"keywords"`
	Author          string `form:"author"`
	AuthorAvatar    string `form:"authorAvatar"`
	AuthorBio       string `form:"authorBio"`
	AuthorLink      string `form:"authorLink"`
	ThumbnailURL    string `form:"thumbnailUrl"`
	ImageFullURL    string `form:"imageFullUrl"`
	Category        string `form:"category"`
	Tags            string `form:"tags"`
	ReadTime        string `form:"readTime"`
	WordCount       string `form:"wordCount"`
	ReadingLevel    string `form:"readingLevel"`
	Featured        string `form:"featured"`
	Excerpt         string `form:"excerpt"`
	Content         string `form:"content"`
	GalleryURLs     string `form:"galleryUrls"`
	RelatedPosts    string `form:"relatedPosts"`
	Series          string `form:"series"`
	Source          string `form:"source"`
	Language        string `form:"language"`
	CanonicalURL    string `form:"canonicalUrl"`
}

// PostResponseDTO is returned by create and update.
type PostResponseDTO struct {
	Success bool        `json:"success"`
	Post    models.Post `json:"post"`
}
