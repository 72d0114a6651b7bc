// Package query models repository filter state and resolves it into an
// upstream request strategy.
//
// Filter state is declarative: the caller describes what it wants to browse
// (free-text query, languages, license, star range, sort) and [Resolve] decides
// which upstream path serves it: the curated daily-trending feed when the
// filters are broad enough, a constructed search query otherwise. The same
// filter state always resolves to the same plan, which also makes it a stable
// cache-key input.
package query

import (
	"fmt"
	"strings"
)

// Sort is the repository sort mode.
type Sort string

// Repository sort modes.
const (
	// SortTrending is relevance-by-recency: served by the trending feed when
	// eligible, emulated via a recent-creation search sorted by stars otherwise.
	SortTrending Sort = "trending"
	SortStars    Sort = "stars"
	SortForks    Sort = "forks"
	SortUpdated  Sort = "updated"
)

// Order is the sort direction.
type Order string

// Sort directions.
const (
	OrderDesc Order = "desc"
	OrderAsc  Order = "asc"
)

// ParseSort validates a sort mode string.
func ParseSort(s string) (Sort, error) {
	switch sort := Sort(s); sort {
	case SortTrending, SortStars, SortForks, SortUpdated:
		return sort, nil
	default:
		return "", fmt.Errorf("unknown sort %q (want trending, stars, forks, or updated)", s)
	}
}

// ParseOrder validates a sort direction string.
func ParseOrder(s string) (Order, error) {
	switch order := Order(s); order {
	case OrderDesc, OrderAsc:
		return order, nil
	default:
		return "", fmt.Errorf("unknown order %q (want desc or asc)", s)
	}
}

// LicenseAll is the license filter sentinel meaning "no license narrowing".
const LicenseAll = "All"

// StarsUpperBound is the maximum representable star bound. A MaxStars at this
// value means the upper end of the range is open.
const StarsUpperBound = 1_000_000

// FilterState describes what the user wants to browse.
//
// Languages are interpreted as AND-of-keyword matches, not a structured
// language qualifier: each selected language becomes a quoted keyword token in
// the search query, in insertion order.
type FilterState struct {
	Query     string   `json:"query"`
	Languages []string `json:"languages"`
	License   string   `json:"license"`
	Sort      Sort     `json:"sort"`
	Order     Order    `json:"order"`
	MinStars  int      `json:"min_stars"`
	MaxStars  int      `json:"max_stars"`
}

// DefaultFilters returns the filter state for an unconstrained browse:
// trending sort, full star range, all licenses.
func DefaultFilters() FilterState {
	return FilterState{
		License:  LicenseAll,
		Sort:     SortTrending,
		Order:    OrderDesc,
		MinStars: 0,
		MaxStars: StarsUpperBound,
	}
}

// starNarrowed reports whether the star range is narrower than the default
// full range.
func (f FilterState) starNarrowed() bool {
	return f.MinStars > 0 || f.MaxStars < StarsUpperBound
}

// narrowed reports whether any filter beyond sort and direction is active.
func (f FilterState) narrowed() bool {
	return len(f.Languages) > 0 || f.License != LicenseAll || f.starNarrowed()
}

// CacheKey returns a deterministic serialization of the filter state for use
// as a durable-cache key component. Field order is fixed; languages keep
// insertion order.
func (f FilterState) CacheKey() string {
	return fmt.Sprintf("q=%s&langs=%s&license=%s&sort=%s&order=%s&stars=%d..%d",
		f.Query,
		strings.Join(f.Languages, ","),
		f.License,
		f.Sort,
		f.Order,
		f.MinStars,
		f.MaxStars,
	)
}

// IssueSort is the issue-listing sort key.
type IssueSort string

// Issue sort keys.
const (
	IssueSortCreated  IssueSort = "created"
	IssueSortUpdated  IssueSort = "updated"
	IssueSortComments IssueSort = "comments"
)

// ParseIssueSort validates an issue sort key string.
func ParseIssueSort(s string) (IssueSort, error) {
	switch sort := IssueSort(s); sort {
	case IssueSortCreated, IssueSortUpdated, IssueSortComments:
		return sort, nil
	default:
		return "", fmt.Errorf("unknown issue sort %q (want created, updated, or comments)", s)
	}
}

// IssueFilters describes how to list a repository's issues.
// Selected label names are passed upstream with OR semantics.
type IssueFilters struct {
	Sort   IssueSort `json:"sort"`
	Order  Order     `json:"order"`
	Labels []string  `json:"labels"`
}

// DefaultIssueFilters returns newest-first with no label narrowing.
func DefaultIssueFilters() IssueFilters {
	return IssueFilters{Sort: IssueSortCreated, Order: OrderDesc}
}

// CacheKey returns a deterministic serialization of the issue filters.
func (f IssueFilters) CacheKey() string {
	return fmt.Sprintf("sort=%s&order=%s&labels=%s", f.Sort, f.Order, strings.Join(f.Labels, ","))
}
