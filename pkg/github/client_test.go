package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/guleriaakshit/open-lens/pkg/errors"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(nil, nil, WithBaseURL(server.URL))
}

func TestClient_SearchRepositories(t *testing.T) {
	var gotQuery string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResult{
			TotalCount: 1,
			Items: []Repository{
				{ID: 42, FullName: "golang/go", Stars: 120000},
			},
		})
	})

	result, err := client.SearchRepositories(context.Background(), "stars:>1000", "stars", "desc", 1, 30)
	if err != nil {
		t.Fatalf("SearchRepositories() failed: %v", err)
	}
	if gotQuery != "stars:>1000" {
		t.Errorf("q = %q, want %q", gotQuery, "stars:>1000")
	}
	if result.TotalCount != 1 || len(result.Items) != 1 {
		t.Fatalf("got %d items (total %d), want 1", len(result.Items), result.TotalCount)
	}
	if result.Items[0].FullName != "golang/go" {
		t.Errorf("FullName = %q, want golang/go", result.Items[0].FullName)
	}
}

func TestClient_SearchRepositories_AuthorizationHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(SearchResult{})
	}))
	defer server.Close()

	client := NewClient(func() string { return "tok123" }, nil, WithBaseURL(server.URL))
	if _, err := client.SearchRepositories(context.Background(), "q", "", "desc", 1, 30); err != nil {
		t.Fatalf("SearchRepositories() failed: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok123")
	}
}

func TestClient_SearchRepositories_PaginationExhausted(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "Only the first 1000 search results are available"})
	})

	result, err := client.SearchRepositories(context.Background(), "q", "stars", "desc", 40, 30)
	if err != nil {
		t.Fatalf("422 must degrade, got error: %v", err)
	}
	if result.TotalCount != 0 || result.IncompleteResults || len(result.Items) != 0 {
		t.Errorf("got %+v, want empty result page", result)
	}
}

func TestClient_SearchRepositories_RateLimited(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"403", http.StatusForbidden, `{"message":"API rate limit exceeded"}`},
		{"429", http.StatusTooManyRequests, `{}`},
		{"200 with rate limit body", http.StatusOK, `{"message":"You have exceeded a secondary rate limit"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.SearchRepositories(context.Background(), "q", "stars", "desc", 1, 30)
			if !apperrors.Is(err, apperrors.ErrCodeRateLimited) {
				t.Errorf("got %v, want RATE_LIMITED", err)
			}
		})
	}
}

func TestClient_SearchRepositories_UpstreamError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	})

	_, err := client.SearchRepositories(context.Background(), "q", "stars", "desc", 1, 30)
	if !apperrors.Is(err, apperrors.ErrCodeUpstream) {
		t.Fatalf("got %v, want UPSTREAM_ERROR", err)
	}
	want := "endpoint error: 500 Internal Server Error"
	if msg := apperrors.UserMessage(err); msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
}

func TestClient_SearchRepositories_UpstreamMessagePropagated(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"message": "upstream exploded"})
	})

	_, err := client.SearchRepositories(context.Background(), "q", "stars", "desc", 1, 30)
	if !apperrors.Is(err, apperrors.ErrCodeUpstream) {
		t.Fatalf("got %v, want UPSTREAM_ERROR", err)
	}
	if msg := apperrors.UserMessage(err); msg != "upstream exploded" {
		t.Errorf("message = %q, want upstream message", msg)
	}
}

func TestClient_SearchRepositories_TransportFailure(t *testing.T) {
	client := NewClient(nil, nil, WithBaseURL("http://127.0.0.1:1"))

	_, err := client.SearchRepositories(context.Background(), "q", "stars", "desc", 1, 30)
	if !apperrors.Is(err, apperrors.ErrCodeTransport) {
		t.Errorf("got %v, want TRANSPORT_FAILURE", err)
	}
}

func TestClient_Issues(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/issues" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("state"); got != "open" {
			t.Errorf("state = %q, want open", got)
		}
		if got := r.URL.Query().Get("labels"); got != "bug,help wanted" {
			t.Errorf("labels = %q, want %q", got, "bug,help wanted")
		}
		json.NewEncoder(w).Encode([]Issue{
			{ID: 1, Number: 10, Title: "real issue"},
			{ID: 2, Number: 11, Title: "actually a PR", PullRequest: &pullRequestRef{URL: "x"}},
			{ID: 3, Number: 12, Title: "another issue"},
		})
	})

	issues, err := client.Issues(context.Background(), "owner", "repo", "created", "desc", []string{"bug", "help wanted"}, 30)
	if err != nil {
		t.Fatalf("Issues() failed: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2 (pull requests stripped)", len(issues))
	}
	if issues[0].Number != 10 || issues[1].Number != 12 {
		t.Errorf("order not preserved: %d, %d", issues[0].Number, issues[1].Number)
	}
}

func TestClient_Issues_Disabled(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	})

	_, err := client.Issues(context.Background(), "owner", "repo", "created", "desc", nil, 30)
	if !apperrors.Is(err, apperrors.ErrCodeFeatureDisabled) {
		t.Errorf("got %v, want FEATURE_DISABLED", err)
	}
}

func TestClient_Readme(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != acceptHTML {
			t.Errorf("Accept = %q, want %q", got, acceptHTML)
		}
		w.Write([]byte("<h1>hello</h1>"))
	})

	html, err := client.Readme(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("Readme() failed: %v", err)
	}
	if html != "<h1>hello</h1>" {
		t.Errorf("got %q", html)
	}
}

func TestClient_Languages(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int64{"Go": 12345, "Shell": 321})
	})

	langs, err := client.Languages(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("Languages() failed: %v", err)
	}
	if langs["Go"] != 12345 {
		t.Errorf("Go = %d, want 12345", langs["Go"])
	}
}

func TestClient_UserProfile(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(UserProfile{Login: "octocat", Followers: 99})
	})

	profile, err := client.UserProfile(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("UserProfile() failed: %v", err)
	}
	if profile.Login != "octocat" || profile.Followers != 99 {
		t.Errorf("got %+v", profile)
	}
}

func TestValidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(UserProfile{Login: "octocat"})
	}))
	defer server.Close()

	t.Run("valid token", func(t *testing.T) {
		profile, err := Validate(context.Background(), "good", server.URL)
		if err != nil {
			t.Fatalf("Validate() failed: %v", err)
		}
		if profile.Login != "octocat" {
			t.Errorf("Login = %q, want octocat", profile.Login)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		_, err := Validate(context.Background(), "bad", server.URL)
		if !apperrors.Is(err, apperrors.ErrCodeInvalidCredential) {
			t.Errorf("got %v, want INVALID_CREDENTIAL", err)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := Validate(context.Background(), "", server.URL)
		if !apperrors.Is(err, apperrors.ErrCodeInvalidCredential) {
			t.Errorf("got %v, want INVALID_CREDENTIAL", err)
		}
	})
}
