package dto

import (
	"blog-cms/query"
)

// PostListResponseDTO is the body of GET /api/public/posts.
type PostListResponseDTO struct {
	Success    bool             `json:"success"`
	Data       []PostSummaryDTO `json:"data"`
	Pagination query.Pagination `json:"pagination"`
	Filters    query.Facets     `json:"filters"`
}

type PostDetailResponseDTO struct {
	Success bool          `json:"success"`
	Data    PostDetailDTO `json:"data"`
}

type CategoryDTO struct {
	Name       string         `json:"name"`
	Count      int            `json:"count"`
	LatestPost PostSummaryDTO `json:"latestPost"`
}

type CategoryListResponseDTO struct {
	Success bool          `json:"success"`
	Data    []CategoryDTO `json:"data"`
}

type AuthorDTO struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	Bio        string `json:"bio"`
	Link       string `json:"link"`
	PostCount  int    `json:"postCount"`
	TotalViews int    `json:"totalViews"`
	TotalLikes int    `json:"totalLikes"`
}

type AuthorListResponseDTO struct {
	Success bool        `json:"success"`
	Data    []AuthorDTO `json:"data"`
}

type StatsResponseDTO struct {
	Success bool            `json:"success"`
	Data    query.BlogStats `json:"data"`
}

func NewCategoryDTOs(in []query.CategorySummary) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(in))
	for _, c := range in {
		out = append(out, CategoryDTO{
			Name:       c.Name,
			Count:      c.Count,
			LatestPost: NewPostSummaryDTO(c.LatestPost),
		})
	}
	return out
}

func NewAuthorDTOs(in []query.AuthorSummary) []AuthorDTO {
	out := make([]AuthorDTO, 0, len(in))
	for _, a := range in {
		out = append(out, AuthorDTO(a))
	}
	return out
}
