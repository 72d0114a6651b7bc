// Package fetch is the orchestration façade over the strategy resolver, the
// upstream clients, and the durable cache. It is the sole entry point for
// callers: filter state and pagination in, normalized records or a typed
// failure out. It never retries; retry is always a caller-driven
// re-invocation.
//
// Every operation follows the same shape: compute a namespaced cache key,
// consult the durable store, and on a miss or stale entry execute the
// resolved request, normalize, persist, and return. Persisting happens
// unconditionally for anything the upstream returned without raising, so an
// error-degraded empty result page still lands in the cache and a rate-limit
// wall is not immediately re-hammered.
//
// Two propagation tiers exist. Primary listings (repository search, issue
// listing) raise typed failures for the caller to render. Enrichments
// (profile, top repositories, readme, languages, labels) degrade to
// empty or placeholder values instead, since their absence should never
// block the primary view.
package fetch

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/guleriaakshit/open-lens/pkg/github"
	"github.com/guleriaakshit/open-lens/pkg/observability"
	"github.com/guleriaakshit/open-lens/pkg/query"
	"github.com/guleriaakshit/open-lens/pkg/store"
)

// DefaultPerPage is the page size requested from upstream listings.
const DefaultPerPage = 30

// topRepoCount caps the top-repositories enrichment lookup.
const topRepoCount = 3

// Service orchestrates fetches against the durable cache and upstreams.
// It holds no mutable state between calls; the cache is the only shared
// resource and every access to it is independent, last write wins.
type Service struct {
	store    store.Store
	api      *github.Client
	trending *github.TrendingClient
	logger   *log.Logger
	perPage  int
}

// NewService wires the orchestrator. A nil logger falls back to the package
// default; a perPage of zero falls back to DefaultPerPage.
func NewService(st store.Store, api *github.Client, trending *github.TrendingClient, logger *log.Logger, perPage int) *Service {
	if logger == nil {
		logger = log.Default()
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Service{store: st, api: api, trending: trending, logger: logger, perPage: perPage}
}

// opLogger tags one operation's log lines with a correlation id so a single
// user action can be traced across cache and upstream activity.
func (s *Service) opLogger(op string) *log.Logger {
	return s.logger.With("request_id", uuid.NewString(), "op", op)
}

// SearchRepositories serves a repository page for the given filter state.
// The trending feed is used when the filters are eligible for it; when the
// feed errors or comes back empty the search path runs as a fallback, not as
// a retry. Results are cached for 2 minutes when free-text search is active,
// 15 minutes otherwise.
func (s *Service) SearchRepositories(ctx context.Context, f query.FilterState, page int, userScope string) (*github.SearchResult, error) {
	logger := s.opLogger("search").With("page", page)

	key := searchKey(f, page, userScope)
	return cached(ctx, s, logger, "search", key, searchTTL(f), func(ctx context.Context) (*github.SearchResult, error) {
		plan := query.Resolve(f, page, s.perPage, userScope)

		if plan.Mode == query.ModeTrending {
			repos, err := s.trending.Daily(ctx, plan.Language)
			if err == nil && len(repos) > 0 {
				logger.Debug("served from trending feed", "count", len(repos))
				return &github.SearchResult{TotalCount: len(repos), Items: repos}, nil
			}
			if err != nil {
				logger.Warn("trending feed unavailable, falling back to search", "error", err)
			}
			plan = query.ResolveSearch(f, page, s.perPage, userScope)
		}

		logger.Debug("searching repositories", "q", plan.Query, "sort", plan.Sort)
		return s.api.SearchRepositories(ctx, plan.Query, plan.Sort, plan.Order, plan.Page, plan.PerPage)
	})
}

// RepoIssues lists open issues for a repository, cached for 5 minutes.
// Unlike the search path, upstream failures raise: issue-listing callers are
// expected to render the failure and offer a retry.
func (s *Service) RepoIssues(ctx context.Context, owner, repo string, f query.IssueFilters) ([]github.Issue, error) {
	key := issuesKey(owner, repo, f)
	return cached(ctx, s, s.opLogger("issues"), "issues", key, ttlIssues, func(ctx context.Context) ([]github.Issue, error) {
		return s.api.Issues(ctx, owner, repo, string(f.Sort), string(f.Order), f.Labels, s.perPage)
	})
}

// UserProfile fetches a user's extended profile, cached for 15 minutes.
// On any failure it substitutes a synthesized placeholder for display; the
// placeholder is never written to the cache.
func (s *Service) UserProfile(ctx context.Context, login string) *github.UserProfile {
	logger := s.opLogger("profile")
	key := userKey("profile", login)
	profile, err := cached(ctx, s, logger, "profile", key, ttlProfile, func(ctx context.Context) (*github.UserProfile, error) {
		return s.api.UserProfile(ctx, login)
	})
	if err != nil {
		logger.Warn("profile lookup failed, using placeholder", "login", login, "error", err)
		return &github.UserProfile{Login: login, Name: login}
	}
	return profile
}

// UserTopRepos returns a user's top repositories by stars, degrading to an
// empty list on failure.
func (s *Service) UserTopRepos(ctx context.Context, login string) []github.Repository {
	logger := s.opLogger("top-repos")
	key := userKey("top-repos", login)
	repos, _ := cached(ctx, s, logger, "top-repos", key, ttlTopRepos, func(ctx context.Context) ([]github.Repository, error) {
		result, err := s.api.SearchRepositories(ctx, "user:"+login, "stars", "desc", 1, topRepoCount)
		if err != nil {
			logger.Warn("top repositories lookup failed", "login", login, "error", err)
			return []github.Repository{}, nil
		}
		items := result.Items
		if len(items) > topRepoCount {
			items = items[:topRepoCount]
		}
		return items, nil
	})
	return repos
}

// Readme fetches a repository's rendered README HTML, cached for an hour and
// degrading to empty on failure.
func (s *Service) Readme(ctx context.Context, owner, repo string) string {
	logger := s.opLogger("readme")
	key := repoKey("readme", owner, repo)
	html, _ := cached(ctx, s, logger, "readme", key, ttlReadme, func(ctx context.Context) (string, error) {
		html, err := s.api.Readme(ctx, owner, repo)
		if err != nil {
			logger.Warn("readme lookup failed", "repo", owner+"/"+repo, "error", err)
			return "", nil
		}
		return html, nil
	})
	return html
}

// Languages fetches a repository's language byte counts, cached for 24 hours
// and degrading to empty on failure.
func (s *Service) Languages(ctx context.Context, owner, repo string) map[string]int64 {
	logger := s.opLogger("languages")
	key := repoKey("languages", owner, repo)
	langs, _ := cached(ctx, s, logger, "languages", key, ttlLanguages, func(ctx context.Context) (map[string]int64, error) {
		langs, err := s.api.Languages(ctx, owner, repo)
		if err != nil {
			logger.Warn("languages lookup failed", "repo", owner+"/"+repo, "error", err)
			return map[string]int64{}, nil
		}
		return langs, nil
	})
	return langs
}

// Labels fetches a repository's label set, cached for 15 minutes and
// degrading to empty on failure.
func (s *Service) Labels(ctx context.Context, owner, repo string) []github.Label {
	logger := s.opLogger("labels")
	key := repoKey("labels", owner, repo)
	labels, _ := cached(ctx, s, logger, "labels", key, ttlLabels, func(ctx context.Context) ([]github.Label, error) {
		labels, err := s.api.Labels(ctx, owner, repo)
		if err != nil {
			logger.Warn("labels lookup failed", "repo", owner+"/"+repo, "error", err)
			return []github.Label{}, nil
		}
		return labels, nil
	})
	return labels
}

// cached is the shared read-through path: serve a fresh cache entry, or run
// fn and persist whatever it returns without error. A corrupt cached payload
// is treated as a miss.
func cached[T any](ctx context.Context, s *Service, logger *log.Logger, category, key string, ttl time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if entry, ok := s.store.Get(ctx, key); ok && entry.Fresh(ttl) {
		var v T
		if err := entry.Decode(&v); err == nil {
			observability.Cache().OnCacheHit(ctx, category)
			return v, nil
		}
		logger.Warn("cache entry undecodable, refetching", "key", key)
	}
	observability.Cache().OnCacheMiss(ctx, category)

	v, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	s.store.Put(ctx, key, v)
	observability.Cache().OnCacheSet(ctx, category)
	return v, nil
}
