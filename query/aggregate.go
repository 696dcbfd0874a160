package query

import "blog-cms/models"

// CategorySummary groups published posts by exact category name.
type CategorySummary struct {
	Name       string
	Count      int
	LatestPost models.Post
}

// AuthorSummary groups published posts by exact author name. Avatar, bio and
// link come from the author's first post in collection order.
type AuthorSummary struct {
	Name       string
	Avatar     string
	Bio        string
	Link       string
	PostCount  int
	TotalViews int
	TotalLikes int
}

type BlogStats struct {
	TotalPosts      int `json:"totalPosts"`
	TotalViews      int `json:"totalViews"`
	TotalLikes      int `json:"totalLikes"`
	TotalShares     int `json:"totalShares"`
	TotalComments   int `json:"totalComments"`
	CategoriesCount int `json:"categoriesCount"`
	AuthorsCount    int `json:"authorsCount"`
	FeaturedPosts   int `json:"featuredPosts"`
}

// Categories returns one entry per distinct category of the published set, in
// first-seen order. LatestPost is the newest by date; on equal dates the earlier
// post in the collection wins.
func Categories(all []models.Post) []CategorySummary {
	out := make([]CategorySummary, 0)
	index := make(map[string]int)
	for _, p := range Published(all) {
		i, ok := index[p.Category]
		if !ok {
			index[p.Category] = len(out)
			out = append(out, CategorySummary{Name: p.Category, Count: 1, LatestPost: p})
			continue
		}
		out[i].Count++
		if p.PublishedTime().After(out[i].LatestPost.PublishedTime()) {
			out[i].LatestPost = p
		}
	}
	return out
}

// Authors returns one entry per distinct author of the published set, in
// first-seen order.
func Authors(all []models.Post) []AuthorSummary {
	out := make([]AuthorSummary, 0)
	index := make(map[string]int)
	for _, p := range Published(all) {
		i, ok := index[p.Author]
		if !ok {
			i = len(out)
			index[p.Author] = i
			out = append(out, AuthorSummary{
				Name:   p.Author,
				Avatar: p.AuthorAvatar,
				Bio:    p.AuthorBio,
				Link:   p.AuthorLink,
			})
		}
		out[i].PostCount++
		out[i].TotalViews += p.Views
		out[i].TotalLikes += p.Likes
	}
	return out
}

// Stats sums the engagement counters of the published set.
func Stats(all []models.Post) BlogStats {
	var s BlogStats
	categories := make(map[string]struct{})
	authors := make(map[string]struct{})
	for _, p := range Published(all) {
		s.TotalPosts++
		s.TotalViews += p.Views
		s.TotalLikes += p.Likes
		s.TotalShares += p.Shares
		s.TotalComments += p.CommentCount
		categories[p.Category] = struct{}{}
		authors[p.Author] = struct{}{}
		if p.Featured {
			s.FeaturedPosts++
		}
	}
	s.CategoriesCount = len(categories)
	s.AuthorsCount = len(authors)
	return s
}
