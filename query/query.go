// Package query implements the public read pipeline over a post collection:
// filter, sort, paginate, plus facet and aggregate reductions. Everything here is
// pure; callers load the collection and project the resulting posts.
package query

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"blog-cms/models"
)

type SortKey string

const (
	SortDateDesc  SortKey = "date_desc"
	SortDateAsc   SortKey = "date_asc"
	SortViewsDesc SortKey = "views_desc"
	SortLikesDesc SortKey = "likes_desc"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// SortOption is a selectable sort key with its display label.
type SortOption struct {
	Value SortKey `json:"value"`
	Label string  `json:"label"`
}

// AvailableSorts is the static list returned with every listing.
var AvailableSorts = []SortOption{
	{Value: SortDateDesc, Label: "Newest"},
	{Value: SortDateAsc, Label: "Oldest"},
	{Value: SortViewsDesc, Label: "Most viewed"},
	{Value: SortLikesDesc, Label: "Most liked"},
}

// Params are the recognised listing options. Zero values mean "not set".
type Params struct {
	Page     int
	Limit    int
	Category string
	Tag      string
	Featured *bool
	Sort     SortKey
}

// ParseParams builds Params from raw query-string values. It never fails:
// non-numeric or non-positive page/limit fall back to the defaults, an unknown
// sort falls back to date_desc, and any present featured value other than
// "true" means "not featured".
func ParseParams(page, limit, category, tag, featured string, hasFeatured bool, sort string) Params {
	p := Params{
		Page:     atoiPositive(page, DefaultPage),
		Limit:    atoiPositive(limit, DefaultLimit),
		Category: category,
		Tag:      tag,
		Sort:     normalizeSort(SortKey(sort)),
	}
	if hasFeatured {
		v := featured == "true"
		p.Featured = &v
	}
	return p
}

// Pagination describes the slice that was returned.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Facets are computed over the whole published set, independent of filters.
type Facets struct {
	Categories     []string     `json:"categories"`
	Tags           []string     `json:"tags"`
	AvailableSorts []SortOption `json:"availableSorts"`
}

type Result struct {
	Posts      []models.Post
	Pagination Pagination
	Facets     Facets
}

// Run applies the pipeline to the full collection.
func Run(all []models.Post, p Params) Result {
	p = p.normalized()
	published := Published(all)

	filtered := make([]models.Post, 0, len(published))
	for _, post := range published {
		if p.Category != "" && !strings.EqualFold(post.Category, p.Category) {
			continue
		}
		if p.Tag != "" && !hasTag(post.Tags, p.Tag) {
			continue
		}
		if p.Featured != nil && post.Featured != *p.Featured {
			continue
		}
		filtered = append(filtered, post)
	}

	Sort(filtered, p.Sort)

	total := len(filtered)
	return Result{
		Posts: paginate(filtered, p.Page, p.Limit),
		Pagination: Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      total,
			TotalPages: pageCount(total, p.Limit),
		},
		Facets: BuildFacets(published),
	}
}

// Published keeps only posts whose status is "published", in collection order.
func Published(all []models.Post) []models.Post {
	out := make([]models.Post, 0, len(all))
	for _, p := range all {
		if p.IsPublished() {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders posts in place. Equal keys keep their collection order.
func Sort(posts []models.Post, key SortKey) {
	switch normalizeSort(key) {
	case SortDateAsc:
		slices.SortStableFunc(posts, func(a, b models.Post) int {
			return a.PublishedTime().Compare(b.PublishedTime())
		})
	case SortViewsDesc:
		slices.SortStableFunc(posts, func(a, b models.Post) int {
			return cmp.Compare(b.Views, a.Views)
		})
	case SortLikesDesc:
		slices.SortStableFunc(posts, func(a, b models.Post) int {
			return cmp.Compare(b.Likes, a.Likes)
		})
	default:
		slices.SortStableFunc(posts, func(a, b models.Post) int {
			return b.PublishedTime().Compare(a.PublishedTime())
		})
	}
}

// BuildFacets lists distinct categories and tags in first-seen order. An empty
// category is listed like any other so facets agree with Categories and Stats.
func BuildFacets(published []models.Post) Facets {
	categories := make([]string, 0)
	tags := make([]string, 0)
	seenCategory := make(map[string]struct{})
	seenTag := make(map[string]struct{})

	for _, p := range published {
		if _, ok := seenCategory[p.Category]; !ok {
			seenCategory[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
		for _, t := range p.Tags {
			if _, ok := seenTag[t]; ok {
				continue
			}
			seenTag[t] = struct{}{}
			tags = append(tags, t)
		}
	}

	return Facets{
		Categories:     categories,
		Tags:           tags,
		AvailableSorts: AvailableSorts,
	}
}

func (p Params) normalized() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	p.Sort = normalizeSort(p.Sort)
	return p
}

// pageCount is ceil(total/limit) without the total+limit-1 overflow.
func pageCount(total, limit int) int {
	n := total / limit
	if total%limit != 0 {
		n++
	}
	return n
}

// paginate never multiplies page by limit; both come straight from the query string.
func paginate(posts []models.Post, page, limit int) []models.Post {
	if page-1 >= pageCount(len(posts), limit) {
		return []models.Post{}
	}
	start := (page - 1) * limit
	end := start + min(limit, len(posts)-start)
	return posts[start:end]
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

func normalizeSort(s SortKey) SortKey {
	switch s {
	case SortDateAsc, SortViewsDesc, SortLikesDesc:
		return s
	default:
		return SortDateDesc
	}
}

func atoiPositive(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
