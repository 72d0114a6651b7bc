package github

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"

	apperrors "github.com/guleriaakshit/open-lens/pkg/errors"
)

// NormalizeTrending maps trending feed items into canonical repository
// records. The feed omits most repository fields; those are defaulted
// deterministically (empty topic set, nil license, zero size, zero open
// issues, issues enabled, not archived).
//
// The feed also provides no identity, so ids are synthesized from list
// position plus a randomized offset. They are distinct within one response
// but NOT stable across refetches; callers must not treat them as durable
// identity.
func NormalizeTrending(items []TrendingItem) []Repository {
	offset := rand.Int63n(1 << 31)

	repos := make([]Repository, 0, len(items))
	for i, item := range items {
		repos = append(repos, Repository{
			ID:          offset + int64(i),
			Name:        item.Name,
			FullName:    item.Author + "/" + item.Name,
			Description: item.Description,
			Owner: UserSummary{
				Login:     item.Author,
				AvatarURL: item.Avatar,
				HTMLURL:   "https://github.com/" + item.Author,
			},
			HTMLURL:    item.URL,
			Stars:      item.Stars,
			Forks:      item.Forks,
			Language:   item.Language,
			Topics:     []string{},
			License:    nil,
			Size:       0,
			OpenIssues: 0,
			HasIssues:  true,
			Archived:   false,
		})
	}
	return repos
}

// StripPullRequests drops records carrying the pull-request marker,
// preserving order. The upstream issues endpoint returns both.
func StripPullRequests(issues []Issue) []Issue {
	result := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if !issue.IsPullRequest() {
			result = append(result, issue)
		}
	}
	return result
}

// upstreamMessage is the error body shape the API uses for failures,
// and occasionally for 200 responses that are really refusals.
type upstreamMessage struct {
	Message string `json:"message"`
}

// normalizeFailure maps a non-success response onto the error taxonomy.
// It returns nil for success statuses whose body is not a rate-limit refusal.
//
// The mapping:
//   - 403/429, or a 200 whose body text mentions the rate limit → rate limited
//   - 422 → pagination exhausted (callers on the search path degrade this
//     before it gets here; elsewhere it surfaces as a typed error)
//   - other non-2xx → upstream error carrying the API-provided message when
//     present, else a generic message including the status text
func normalizeFailure(resp *http.Response, body []byte) error {
	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return rateLimited(resp.Header)
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return apperrors.New(apperrors.ErrCodePaginationExhausted, "no further results available")
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if mentionsRateLimit(body) {
			return rateLimited(resp.Header)
		}
		return nil
	default:
		var um upstreamMessage
		if err := json.Unmarshal(body, &um); err == nil && um.Message != "" {
			if mentionsRateLimit([]byte(um.Message)) {
				return rateLimited(resp.Header)
			}
			return apperrors.New(apperrors.ErrCodeUpstream, "%s", um.Message)
		}
		return apperrors.New(apperrors.ErrCodeUpstream, "endpoint error: %d %s",
			resp.StatusCode, http.StatusText(resp.StatusCode))
	}
}

// rateLimited builds a rate-limit error, carrying the Retry-After hint when
// the API provides one.
func rateLimited(header http.Header) error {
	err := apperrors.New(apperrors.ErrCodeRateLimited, "rate limit exceeded, try again later")
	if after, convErr := strconv.Atoi(header.Get("Retry-After")); convErr == nil && after > 0 {
		err.Cause = &apperrors.RateLimitedError{RetryAfter: after}
	}
	return err
}

// mentionsRateLimit detects rate-limit refusals delivered with a success
// status, which the API does for some secondary limits.
func mentionsRateLimit(body []byte) bool {
	return bytes.Contains(bytes.ToLower(body), []byte("rate limit"))
}

// decode unmarshals an API response body, mapping parse failures onto the
// taxonomy so callers never see raw JSON errors.
func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeUpstream, err, "malformed response body")
	}
	return nil
}
