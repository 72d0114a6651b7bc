package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guleriaakshit/open-lens/pkg/fetch"
	"github.com/guleriaakshit/open-lens/pkg/github"
	"github.com/guleriaakshit/open-lens/pkg/store"
)

// newTestServer wires a router against canned upstream handlers. Caching is
// disabled so every request reaches the handlers.
func newTestServer(t *testing.T, apiHandler, trendingHandler http.HandlerFunc) *httptest.Server {
	t.Helper()

	api := httptest.NewServer(apiHandler)
	t.Cleanup(api.Close)
	feed := httptest.NewServer(trendingHandler)
	t.Cleanup(feed.Close)

	svc := fetch.NewService(
		store.NewNullStore(),
		github.NewClient(nil, nil, github.WithBaseURL(api.URL)),
		github.NewTrendingClient(feed.URL, nil),
		nil,
		fetch.DefaultPerPage,
	)
	srv := httptest.NewServer(New(svc, nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func emptyTrending(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode([]github.TrendingItem{})
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, http.NotFound, emptyTrending)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("q"), "terminal")
		json.NewEncoder(w).Encode(github.SearchResult{
			TotalCount: 1,
			Items:      []github.Repository{{ID: 1, FullName: "charmbracelet/bubbletea"}},
		})
	}, emptyTrending)

	resp, err := http.Get(srv.URL + "/api/search?q=terminal&sort=stars")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result github.SearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "charmbracelet/bubbletea", result.Items[0].FullName)
}

func TestSearchEndpointRejectsUnknownSort(t *testing.T) {
	srv := newTestServer(t, http.NotFound, emptyTrending)

	resp, err := http.Get(srv.URL + "/api/search?sort=bogus")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", decodeError(t, resp).Error.Code)
}

func TestSearchEndpointRateLimited(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "API rate limit exceeded"})
	}, emptyTrending)

	resp, err := http.Get(srv.URL + "/api/search?q=anything")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, resp).Error.Code)
}

func TestIssuesEndpoint(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]github.Issue{{ID: 1, Number: 42, Title: "panic on resize"}})
	}, emptyTrending)

	resp, err := http.Get(srv.URL + "/api/repos/owner/repo/issues?labels=bug")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var issues []github.Issue
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&issues))
	require.Len(t, issues, 1)
	assert.Equal(t, 42, issues[0].Number)
}

func TestIssuesEndpointFeatureDisabled(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	}, emptyTrending)

	resp, err := http.Get(srv.URL + "/api/repos/owner/repo/issues")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "FEATURE_DISABLED", decodeError(t, resp).Error.Code)
}

func TestIssuesEndpointRejectsBadOwner(t *testing.T) {
	srv := newTestServer(t, http.NotFound, emptyTrending)

	resp, err := http.Get(srv.URL + "/api/repos/-bad-/repo/issues")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUserEndpointPlaceholderOnFailure(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, emptyTrending)

	resp, err := http.Get(srv.URL + "/api/users/octocat")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "profile lookups degrade instead of failing")

	var profile github.UserProfile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, "octocat", profile.Login)
}

func TestLanguagesEndpoint(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int64{"Go": 1000})
	}, emptyTrending)

	resp, err := http.Get(srv.URL + "/api/repos/owner/repo/languages")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var langs map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&langs))
	assert.Equal(t, int64(1000), langs["Go"])
}
