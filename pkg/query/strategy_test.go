package query

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_TrendingPath(t *testing.T) {
	f := DefaultFilters()

	plan := Resolve(f, 1, 30, "")

	require.Equal(t, ModeTrending, plan.Mode)
	assert.Empty(t, plan.Language)
	assert.NotContains(t, plan.Query, "created:>")
}

func TestResolve_TrendingSingleLanguage(t *testing.T) {
	f := DefaultFilters()
	f.Languages = []string{"Go"}

	plan := Resolve(f, 1, 30, "")

	require.Equal(t, ModeTrending, plan.Mode)
	assert.Equal(t, "Go", plan.Language)
}

func TestResolve_SearchPath(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FilterState)
		page   int
		scope  string
	}{
		{"free-text query", func(f *FilterState) { f.Query = "http router" }, 1, ""},
		{"two languages", func(f *FilterState) { f.Languages = []string{"Rust", "Go"} }, 1, ""},
		{"license narrowed", func(f *FilterState) { f.License = "MIT" }, 1, ""},
		{"min stars", func(f *FilterState) { f.MinStars = 100 }, 1, ""},
		{"max stars", func(f *FilterState) { f.MaxStars = 5000 }, 1, ""},
		{"stars sort", func(f *FilterState) { f.Sort = SortStars }, 1, ""},
		{"user scoped", func(f *FilterState) {}, 1, "octocat"},
		{"second page", func(f *FilterState) {}, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilters()
			tt.mutate(&f)

			plan := Resolve(f, tt.page, 30, tt.scope)

			assert.Equal(t, ModeSearch, plan.Mode)
		})
	}
}

func TestBuildSearchQuery_TrendingFallbackRecency(t *testing.T) {
	f := DefaultFilters()
	f.Languages = []string{"Rust", "Go"}

	q := BuildSearchQuery(f, "")

	since := time.Now().Add(-recencyWindow).Format("2006-01-02")
	assert.Contains(t, q, "created:>"+since)
}

func TestBuildSearchQuery_MinStarsOnly(t *testing.T) {
	f := DefaultFilters()
	f.MinStars = 100

	q := BuildSearchQuery(f, "")

	assert.Contains(t, q, "stars:>=100")
	assert.NotContains(t, q, "..")
}

func TestBuildSearchQuery_ExactStarRange(t *testing.T) {
	f := DefaultFilters()
	f.MinStars = 100
	f.MaxStars = 5000

	q := BuildSearchQuery(f, "")

	assert.Contains(t, q, "stars:100..5000")
	assert.NotContains(t, q, "stars:>=")
}

func TestBuildSearchQuery_LanguagesAreQuotedKeywords(t *testing.T) {
	f := DefaultFilters()
	f.Languages = []string{"Python"}

	q := BuildSearchQuery(f, "")

	assert.Contains(t, q, `"Python"`)
	assert.NotContains(t, q, "language:Python")
}

func TestBuildSearchQuery_LanguageOrderPreserved(t *testing.T) {
	f := DefaultFilters()
	f.Languages = []string{"Rust", "Go"}

	q := BuildSearchQuery(f, "")

	assert.Contains(t, q, `"Rust" "Go"`)
}

func TestBuildSearchQuery_PopularityFloor(t *testing.T) {
	f := DefaultFilters()
	f.Sort = SortStars // plain browse, not trending emulation

	q := BuildSearchQuery(f, "")

	assert.Equal(t, fmt.Sprintf("stars:>%d", popularityFloor), q)
}

func TestBuildSearchQuery_QuerySuppressesFloor(t *testing.T) {
	f := DefaultFilters()
	f.Query = "terminal emulator"

	q := BuildSearchQuery(f, "")

	assert.Contains(t, q, "terminal emulator")
	assert.NotContains(t, q, fmt.Sprintf("stars:>%d", popularityFloor))
}

func TestBuildSearchQuery_NarrowingSuppressesFloor(t *testing.T) {
	f := DefaultFilters()
	f.License = "Apache-2.0"

	q := BuildSearchQuery(f, "")

	assert.Contains(t, q, "license:apache-2.0")
	assert.NotContains(t, q, fmt.Sprintf("stars:>%d", popularityFloor))
}

func TestBuildSearchQuery_UserScopeFirst(t *testing.T) {
	f := DefaultFilters()
	f.Query = "cli"

	q := BuildSearchQuery(f, "octocat")

	require.True(t, strings.HasPrefix(q, "user:octocat "), "got %q", q)
	// User scope suppresses the recency clause even under trending sort.
	assert.NotContains(t, q, "created:>")
}

func TestBuildSearchQuery_ClauseOrder(t *testing.T) {
	f := FilterState{
		Query:     "game engine",
		Languages: []string{"C++", "Lua"},
		License:   "MIT",
		Sort:      SortStars,
		Order:     OrderDesc,
		MinStars:  50,
		MaxStars:  9000,
	}

	q := BuildSearchQuery(f, "octocat")

	assert.Equal(t, `user:octocat game engine "C++" "Lua" license:mit stars:50..9000`, q)
}

func TestSearchSort(t *testing.T) {
	tests := []struct {
		sort Sort
		want string
	}{
		{SortTrending, "stars"}, // emulated trending forces a stars sort
		{SortStars, "stars"},
		{SortForks, "forks"},
		{SortUpdated, "updated"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			f := DefaultFilters()
			f.Sort = tt.sort
			assert.Equal(t, tt.want, searchSort(f))
		})
	}
}

func TestTrendingEligible(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FilterState)
		page   int
		scope  string
		want   bool
	}{
		{"defaults", func(f *FilterState) {}, 1, "", true},
		{"one language", func(f *FilterState) { f.Languages = []string{"Go"} }, 1, "", true},
		{"two languages", func(f *FilterState) { f.Languages = []string{"Go", "Rust"} }, 1, "", false},
		{"query set", func(f *FilterState) { f.Query = "x" }, 1, "", false},
		{"stars sort", func(f *FilterState) { f.Sort = SortStars }, 1, "", false},
		{"license", func(f *FilterState) { f.License = "MIT" }, 1, "", false},
		{"min stars", func(f *FilterState) { f.MinStars = 1 }, 1, "", false},
		{"max stars", func(f *FilterState) { f.MaxStars = 100 }, 1, "", false},
		{"user scope", func(f *FilterState) {}, 1, "octocat", false},
		{"page two", func(f *FilterState) {}, 2, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilters()
			tt.mutate(&f)
			assert.Equal(t, tt.want, TrendingEligible(f, tt.page, tt.scope))
		})
	}
}

func TestFilterState_CacheKey(t *testing.T) {
	f := DefaultFilters()
	f.Languages = []string{"Rust", "Go"}

	key := f.CacheKey()

	assert.Equal(t, f.CacheKey(), key, "cache key must be deterministic")
	assert.Contains(t, key, "langs=Rust,Go")

	g := f
	g.Languages = []string{"Go", "Rust"}
	assert.NotEqual(t, key, g.CacheKey(), "language order is part of the key")
}

func TestIssueFilters_CacheKey(t *testing.T) {
	f := IssueFilters{Sort: IssueSortComments, Order: OrderAsc, Labels: []string{"bug", "help wanted"}}
	assert.Equal(t, "sort=comments&order=asc&labels=bug,help wanted", f.CacheKey())
}
