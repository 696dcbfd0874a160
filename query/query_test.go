package query_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-cms/models"
	"blog-cms/query"
)

func post(id, date string, mods ...func(*models.Post)) models.Post {
	p := models.Post{
		ID:       id,
		Slug:     "post-" + id,
		Title:    "Post " + id,
		Status:   models.StatusPublished,
		Date:     date,
		Category: "tech",
		Author:   "alice",
	}
	for _, m := range mods {
		m(&p)
	}
	return p
}

func ids(posts []models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func TestRunExcludesUnpublished(t *testing.T) {
	all := []models.Post{
		post("1", "2024-01-01"),
		post("2", "2024-01-02", func(p *models.Post) { p.Status = models.StatusDraft }),
		post("3", "2024-01-03", func(p *models.Post) { p.Status = "" }),
		post("4", "2024-01-04", func(p *models.Post) { p.Status = "Published" }),
	}

	res := query.Run(all, query.Params{})

	assert.Equal(t, []string{"1"}, ids(res.Posts))
	assert.Equal(t, 1, res.Pagination.Total)
}

func TestRunSortsByDate(t *testing.T) {
	all := []models.Post{
		post("a", "2024-01-01"),
		post("b", "2024-03-01"),
		post("c", "2024-02-01"),
	}

	desc := query.Run(all, query.Params{Sort: query.SortDateDesc})
	assert.Equal(t, []string{"b", "c", "a"}, ids(desc.Posts))

	asc := query.Run(all, query.Params{Sort: query.SortDateAsc})
	assert.Equal(t, []string{"a", "c", "b"}, ids(asc.Posts))

	unknown := query.Run(all, query.Params{Sort: "title_asc"})
	assert.Equal(t, []string{"b", "c", "a"}, ids(unknown.Posts))
}

func TestRunSortsByCountersStably(t *testing.T) {
	all := []models.Post{
		post("a", "2024-01-01", func(p *models.Post) { p.Views = 5; p.Likes = 1 }),
		post("b", "2024-01-02"),
		post("c", "2024-01-03", func(p *models.Post) { p.Views = 5; p.Likes = 9 }),
		post("d", "2024-01-04", func(p *models.Post) { p.Views = 7 }),
	}

	views := query.Run(all, query.Params{Sort: query.SortViewsDesc})
	assert.Equal(t, []string{"d", "a", "c", "b"}, ids(views.Posts))

	likes := query.Run(all, query.Params{Sort: query.SortLikesDesc})
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(likes.Posts))
}

func TestRunUnparsableDateSortsOldest(t *testing.T) {
	all := []models.Post{
		post("bad", "not-a-date"),
		post("new", "2024-05-01T10:00:00Z"),
		post("old", "2023-01-01"),
	}

	res := query.Run(all, query.Params{})
	assert.Equal(t, []string{"new", "old", "bad"}, ids(res.Posts))
}

func TestRunFiltersAreCaseInsensitive(t *testing.T) {
	all := []models.Post{
		post("1", "2024-01-01", func(p *models.Post) { p.Category = "tech"; p.Tags = []string{"Go", "web"} }),
		post("2", "2024-01-02", func(p *models.Post) { p.Category = "Life"; p.Tags = []string{"go"} }),
		post("3", "2024-01-03", func(p *models.Post) { p.Category = "TECH"; p.Tags = []string{"rust"} }),
	}

	byCategory := query.Run(all, query.Params{Category: "Tech"})
	assert.Equal(t, []string{"3", "1"}, ids(byCategory.Posts))

	byTag := query.Run(all, query.Params{Tag: "GO"})
	assert.Equal(t, []string{"2", "1"}, ids(byTag.Posts))

	both := query.Run(all, query.Params{Category: "tech", Tag: "go"})
	assert.Equal(t, []string{"1"}, ids(both.Posts))

	none := query.Run(all, query.Params{Category: "tec"})
	assert.Empty(t, none.Posts)
	assert.Equal(t, 0, none.Pagination.TotalPages)
}

func TestRunFeaturedFilter(t *testing.T) {
	all := []models.Post{
		post("1", "2024-01-01", func(p *models.Post) { p.Featured = true }),
		post("2", "2024-01-02"),
	}

	assert.Equal(t, []string{"1"}, ids(query.Run(all, query.Params{Featured: boolPtr(true)}).Posts))
	assert.Equal(t, []string{"2"}, ids(query.Run(all, query.Params{Featured: boolPtr(false)}).Posts))
	assert.Len(t, query.Run(all, query.Params{}).Posts, 2)
}

func TestRunPagination(t *testing.T) {
	all := make([]models.Post, 0, 25)
	for i := 0; i < 25; i++ {
		// dates increase with i, so date_desc lists 24..0
		all = append(all, post(fmt.Sprint(i), fmt.Sprintf("2024-01-%02d", i+1)))
	}

	first := query.Run(all, query.Params{Page: 1, Limit: 10})
	require.Len(t, first.Posts, 10)
	assert.Equal(t, "24", first.Posts[0].ID)
	assert.Equal(t, "15", first.Posts[9].ID)
	assert.Equal(t, query.Pagination{Page: 1, Limit: 10, Total: 25, TotalPages: 3}, first.Pagination)

	last := query.Run(all, query.Params{Page: 3, Limit: 10})
	assert.Equal(t, []string{"4", "3", "2", "1", "0"}, ids(last.Posts))

	beyond := query.Run(all, query.Params{Page: 4, Limit: 10})
	assert.NotNil(t, beyond.Posts)
	assert.Empty(t, beyond.Posts)
	assert.Equal(t, 3, beyond.Pagination.TotalPages)
	assert.Equal(t, 25, beyond.Pagination.Total)
}

func TestRunClampsPageAndLimit(t *testing.T) {
	all := []models.Post{post("1", "2024-01-01"), post("2", "2024-01-02")}

	res := query.Run(all, query.Params{Page: -3, Limit: 0})
	assert.Equal(t, 1, res.Pagination.Page)
	assert.Equal(t, query.DefaultLimit, res.Pagination.Limit)
	assert.Len(t, res.Posts, 2)
}

func TestRunFacetsIgnoreFilters(t *testing.T) {
	all := []models.Post{
		post("1", "2024-01-01", func(p *models.Post) { p.Category = "tech"; p.Tags = []string{"go", "web", "go"} }),
		post("2", "2024-01-02", func(p *models.Post) { p.Category = "life"; p.Tags = []string{"travel", "web"} }),
		post("3", "2024-01-03", func(p *models.Post) {
			p.Category = "hidden"
			p.Tags = []string{"secret"}
			p.Status = models.StatusDraft
		}),
		post("4", "2024-01-04", func(p *models.Post) { p.Category = ""; p.Tags = nil }),
	}

	res := query.Run(all, query.Params{Category: "life", Tag: "travel"})

	assert.Equal(t, []string{"2"}, ids(res.Posts))
	assert.Equal(t, []string{"tech", "life", ""}, res.Facets.Categories)
	assert.Equal(t, []string{"go", "web", "travel"}, res.Facets.Tags)
	assert.Equal(t, query.AvailableSorts, res.Facets.AvailableSorts)
}

func TestRunFacetCategoriesMatchCategorySummaries(t *testing.T) {
	all := []models.Post{
		post("1", "2024-01-01", func(p *models.Post) { p.Category = "" }),
		post("2", "2024-01-02", func(p *models.Post) { p.Category = "tech" }),
		post("3", "2024-01-03", func(p *models.Post) { p.Category = "" }),
	}

	res := query.Run(all, query.Params{})

	names := make([]string, 0)
	for _, c := range query.Categories(all) {
		names = append(names, c.Name)
	}
	assert.Equal(t, names, res.Facets.Categories)
	assert.Len(t, res.Facets.Categories, query.Stats(all).CategoriesCount)
}

func TestRunHugePageAndLimit(t *testing.T) {
	all := []models.Post{
		post("1", "2024-01-01"),
		post("2", "2024-01-02"),
	}

	t.Run("max limit from query string", func(t *testing.T) {
		p := query.ParseParams("3", "9223372036854775807", "", "", "", false, "")
		var res query.Result
		require.NotPanics(t, func() { res = query.Run(all, p) })
		assert.Empty(t, res.Posts)
		assert.Equal(t, 1, res.Pagination.TotalPages)
	})

	t.Run("max page", func(t *testing.T) {
		var res query.Result
		require.NotPanics(t, func() { res = query.Run(all, query.Params{Page: math.MaxInt, Limit: 10}) })
		assert.Empty(t, res.Posts)
		assert.Equal(t, 1, res.Pagination.TotalPages)
	})

	t.Run("first page with max limit", func(t *testing.T) {
		res := query.Run(all, query.Params{Page: 1, Limit: math.MaxInt})
		assert.Equal(t, []string{"2", "1"}, ids(res.Posts))
		assert.Equal(t, 2, res.Pagination.Total)
		assert.Equal(t, 1, res.Pagination.TotalPages)
	})
}

func TestRunSortsExtremeCounters(t *testing.T) {
	all := []models.Post{
		post("low", "2024-01-01", func(p *models.Post) { p.Views = math.MinInt; p.Likes = math.MinInt }),
		post("high", "2024-01-02", func(p *models.Post) { p.Views = math.MaxInt; p.Likes = math.MaxInt }),
		post("zero", "2024-01-03"),
	}

	byViews := query.Run(all, query.Params{Sort: query.SortViewsDesc})
	assert.Equal(t, []string{"high", "zero", "low"}, ids(byViews.Posts))

	byLikes := query.Run(all, query.Params{Sort: query.SortLikesDesc})
	assert.Equal(t, []string{"high", "zero", "low"}, ids(byLikes.Posts))
}

func TestParseParams(t *testing.T) {
	cases := []struct {
		name     string
		page     string
		limit    string
		featured string
		hasFeat  bool
		sort     string
		want     query.Params
	}{
		{
			name: "defaults",
			want: query.Params{Page: 1, Limit: 10, Sort: query.SortDateDesc},
		},
		{
			name:  "numeric values",
			page:  "2",
			limit: "5",
			sort:  "likes_desc",
			want:  query.Params{Page: 2, Limit: 5, Sort: query.SortLikesDesc},
		},
		{
			name:  "garbage numbers do not crash",
			page:  "abc",
			limit: "-4",
			sort:  "nope",
			want:  query.Params{Page: 1, Limit: 10, Sort: query.SortDateDesc},
		},
		{
			name:     "featured true",
			featured: "true",
			hasFeat:  true,
			want:     query.Params{Page: 1, Limit: 10, Featured: boolPtr(true), Sort: query.SortDateDesc},
		},
		{
			name:     "featured anything else",
			featured: "yes",
			hasFeat:  true,
			want:     query.Params{Page: 1, Limit: 10, Featured: boolPtr(false), Sort: query.SortDateDesc},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := query.ParseParams(tc.page, tc.limit, "", "", tc.featured, tc.hasFeat, tc.sort)
			assert.Equal(t, tc.want, got)
		})
	}
}
