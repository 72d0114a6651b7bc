package fetch

import (
	"fmt"
	"time"

	"github.com/guleriaakshit/open-lens/pkg/query"
)

// Cache time-to-live per category. Staleness is evaluated lazily at read
// time; a stale entry stays on disk until overwritten.
const (
	// ttlSearchQuery applies when free-text search is active, where freshness
	// matters more than hit rate.
	ttlSearchQuery = 2 * time.Minute

	// ttlBrowse applies to query-less browsing, which is far more cacheable.
	ttlBrowse = 15 * time.Minute

	ttlIssues   = 5 * time.Minute
	ttlReadme   = time.Hour
	ttlLabels   = 15 * time.Minute
	ttlProfile  = 15 * time.Minute
	ttlTopRepos = 15 * time.Minute

	// ttlLanguages is the longest-lived category: a repository's language
	// composition changes rarely.
	ttlLanguages = 24 * time.Hour
)

// Keys are namespaced by category so distinct payload shapes can never
// collide, then parameterized by everything that affects the response.

func searchKey(f query.FilterState, page int, userScope string) string {
	if userScope == "" {
		userScope = "none"
	}
	return fmt.Sprintf("search:%s|page=%d|scope=%s", f.CacheKey(), page, userScope)
}

func searchTTL(f query.FilterState) time.Duration {
	if f.Query != "" {
		return ttlSearchQuery
	}
	return ttlBrowse
}

func issuesKey(owner, repo string, f query.IssueFilters) string {
	return fmt.Sprintf("issues:%s/%s|%s", owner, repo, f.CacheKey())
}

func repoKey(category, owner, repo string) string {
	return fmt.Sprintf("%s:%s/%s", category, owner, repo)
}

func userKey(category, login string) string {
	return fmt.Sprintf("%s:%s", category, login)
}
