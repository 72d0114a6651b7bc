package query

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects the upstream fetch path.
type Mode string

// Fetch paths.
const (
	// ModeTrending fetches the curated daily-trending feed.
	ModeTrending Mode = "trending"
	// ModeSearch constructs a repository-search query.
	ModeSearch Mode = "search"
)

// Plan is a resolved request strategy: which endpoint to hit and with what
// parameters. For ModeTrending only Language is meaningful; for ModeSearch the
// Query/Sort/Order triple drives the search endpoint.
type Plan struct {
	Mode     Mode
	Language string // trending: optional single-language scope
	Query    string // search: rendered q parameter
	Sort     string // search: sort parameter
	Order    string // search: order parameter
	Page     int
	PerPage  int
}

// recencyWindow is how far back the emulated-trending recency clause reaches.
const recencyWindow = 7 * 24 * time.Hour

// popularityFloor is the default star floor applied when no query and no
// other narrowing is active, so an unconstrained browse still returns
// something worth looking at.
const popularityFloor = 1000

// TrendingEligible reports whether the trending feed can serve this filter
// state directly. The feed is a flat daily list: it knows nothing about
// queries, users, star ranges, licenses, or later pages, and can be scoped to
// at most one language.
func TrendingEligible(f FilterState, page int, userScope string) bool {
	return f.Sort == SortTrending &&
		f.Query == "" &&
		userScope == "" &&
		!f.starNarrowed() &&
		f.License == LicenseAll &&
		len(f.Languages) <= 1 &&
		page <= 1
}

// Resolve decides the fetch path for the given filter state and pagination
// context. It returns a trending plan when eligible, a search plan otherwise.
// When a trending plan yields zero items the caller falls back to
// [ResolveSearch]; the fallback is a different strategy, never a retry.
func Resolve(f FilterState, page, perPage int, userScope string) Plan {
	if TrendingEligible(f, page, userScope) {
		var lang string
		if len(f.Languages) == 1 {
			lang = f.Languages[0]
		}
		return Plan{Mode: ModeTrending, Language: lang, Page: page, PerPage: perPage}
	}
	return ResolveSearch(f, page, perPage, userScope)
}

// ResolveSearch builds the search-path plan unconditionally.
func ResolveSearch(f FilterState, page, perPage int, userScope string) Plan {
	return Plan{
		Mode:    ModeSearch,
		Query:   BuildSearchQuery(f, userScope),
		Sort:    searchSort(f),
		Order:   string(f.Order),
		Page:    page,
		PerPage: perPage,
	}
}

// BuildSearchQuery renders the search q parameter from filter state.
//
// Clauses are concatenated in a fixed order:
//  1. user-scope clause, when scoped
//  2. recency clause (created within the last 7 days) when emulating trending
//     without a query and without a user scope
//  3. the raw free-text query, else a popularity floor when nothing else
//     narrows the result set
//  4. quoted language keywords, space-joined, insertion order preserved
//  5. license clause, when license is not the "All" sentinel
//  6. star-range clause: exact range when the upper bound is below
//     [StarsUpperBound], else a lower-bound-only clause for a nonzero minimum
func BuildSearchQuery(f FilterState, userScope string) string {
	var clauses []string

	if userScope != "" {
		clauses = append(clauses, "user:"+userScope)
	}

	if f.Sort == SortTrending && f.Query == "" && userScope == "" {
		since := time.Now().Add(-recencyWindow).Format("2006-01-02")
		clauses = append(clauses, "created:>"+since)
	}

	if f.Query != "" {
		clauses = append(clauses, f.Query)
	} else if userScope == "" && !f.narrowed() {
		clauses = append(clauses, fmt.Sprintf("stars:>%d", popularityFloor))
	}

	for _, lang := range f.Languages {
		clauses = append(clauses, fmt.Sprintf("%q", lang))
	}

	if f.License != LicenseAll && f.License != "" {
		clauses = append(clauses, "license:"+strings.ToLower(f.License))
	}

	if f.MaxStars < StarsUpperBound {
		clauses = append(clauses, fmt.Sprintf("stars:%d..%d", f.MinStars, f.MaxStars))
	} else if f.MinStars > 0 {
		clauses = append(clauses, fmt.Sprintf("stars:>=%d", f.MinStars))
	}

	return strings.Join(clauses, " ")
}

// searchSort maps the filter sort mode to the search endpoint's sort
// parameter. Trending has no search-side equivalent, so emulating it forces a
// stars sort over the recency window.
func searchSort(f FilterState) string {
	if f.Sort == SortTrending {
		return string(SortStars)
	}
	return string(f.Sort)
}
