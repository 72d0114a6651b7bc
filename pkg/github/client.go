package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	apperrors "github.com/guleriaakshit/open-lens/pkg/errors"
	"github.com/guleriaakshit/open-lens/pkg/observability"
)

// DefaultBaseURL is the production REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

const (
	acceptJSON = "application/vnd.github.v3+json"
	acceptHTML = "application/vnd.github.html"

	httpTimeout = 30 * time.Second
)

// TokenFunc supplies the current bearer credential for outgoing requests.
// An empty return means the request goes out unauthenticated.
type TokenFunc func() string

// Client provides access to the GitHub REST API.
//
// Every request attaches a bearer header built from the token func's current
// value when non-empty. The client holds no mutable state of its own, so a
// single instance is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	token   TokenFunc
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests and mirrors.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a GitHub API client. Pass nil for token to always make
// unauthenticated requests (lower rate limits).
func NewClient(token TokenFunc, logger *log.Logger, opts ...Option) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	if logger == nil {
		logger = log.Default()
	}
	c := &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: DefaultBaseURL,
		token:   token,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchRepositories executes a repository search for the rendered query.
//
// A 422 response means the requested page lies past what the API will serve;
// that is a recoverable condition, not a fault, so it degrades to an empty
// result page instead of an error.
func (c *Client) SearchRepositories(ctx context.Context, q, sort, order string, page, perPage int) (*SearchResult, error) {
	params := url.Values{
		"q":        {q},
		"order":    {order},
		"per_page": {fmt.Sprint(perPage)},
		"page":     {fmt.Sprint(page)},
	}
	if sort != "" {
		params.Set("sort", sort)
	}

	body, resp, err := c.get(ctx, c.baseURL+"/search/repositories?"+params.Encode(), acceptJSON)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return &SearchResult{Items: []Repository{}}, nil
	}
	if err := normalizeFailure(resp, body); err != nil {
		return nil, err
	}

	var result SearchResult
	if err := decode(body, &result); err != nil {
		return nil, err
	}
	if result.Items == nil {
		result.Items = []Repository{}
	}
	return &result, nil
}

// Issues lists a repository's open issues. Records carrying the pull-request
// marker are stripped: the upstream endpoint conflates issues and pull
// requests. A 404 signals that issues are unavailable for the repository.
func (c *Client) Issues(ctx context.Context, owner, repo, sort, direction string, labels []string, perPage int) ([]Issue, error) {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return nil, err
	}

	params := url.Values{
		"state":     {"open"},
		"sort":      {sort},
		"direction": {direction},
		"per_page":  {fmt.Sprint(perPage)},
	}
	if len(labels) > 0 {
		params.Set("labels", strings.Join(labels, ","))
	}

	u := fmt.Sprintf("%s/repos/%s/%s/issues?%s", c.baseURL, owner, repo, params.Encode())
	body, resp, err := c.get(ctx, u, acceptJSON)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.New(apperrors.ErrCodeFeatureDisabled, "issues unavailable for %s/%s", owner, repo)
	}
	if err := normalizeFailure(resp, body); err != nil {
		return nil, err
	}

	var issues []Issue
	if err := decode(body, &issues); err != nil {
		return nil, err
	}
	return StripPullRequests(issues), nil
}

// Readme fetches a repository readme rendered as HTML.
func (c *Client) Readme(ctx context.Context, owner, repo string) (string, error) {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return "", err
	}

	u := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, owner, repo)
	body, resp, err := c.get(ctx, u, acceptHTML)
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusNotFound {
		return "", apperrors.New(apperrors.ErrCodeNotFound, "no readme for %s/%s", owner, repo)
	}
	if err := normalizeFailure(resp, body); err != nil {
		return "", err
	}
	return string(body), nil
}

// Languages fetches a repository's language composition as a byte-count map.
func (c *Client) Languages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/repos/%s/%s/languages", c.baseURL, owner, repo)
	body, resp, err := c.get(ctx, u, acceptJSON)
	if err != nil {
		return nil, err
	}
	if err := normalizeFailure(resp, body); err != nil {
		return nil, err
	}

	langs := map[string]int64{}
	if err := decode(body, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

// Labels fetches a repository's label set.
func (c *Client) Labels(ctx context.Context, owner, repo string) ([]Label, error) {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/repos/%s/%s/labels?per_page=100", c.baseURL, owner, repo)
	body, resp, err := c.get(ctx, u, acceptJSON)
	if err != nil {
		return nil, err
	}
	if err := normalizeFailure(resp, body); err != nil {
		return nil, err
	}

	var labels []Label
	if err := decode(body, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// UserProfile fetches the extended profile for a username.
func (c *Client) UserProfile(ctx context.Context, login string) (*UserProfile, error) {
	if err := ValidateOwner(login); err != nil {
		return nil, err
	}

	body, resp, err := c.get(ctx, c.baseURL+"/users/"+login, acceptJSON)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "no such user %s", login)
	}
	if err := normalizeFailure(resp, body); err != nil {
		return nil, err
	}

	var profile UserProfile
	if err := decode(body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// get performs an HTTP GET, reading the full body regardless of status so
// that failure normalization can inspect it.
func (c *Client) get(ctx context.Context, rawURL, accept string) ([]byte, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Accept", accept)
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, nil, apperrors.Wrap(apperrors.ErrCodeTransport, err, "request %s", req.URL.Path)
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrCodeTransport, err, "read response %s", req.URL.Path)
	}
	return body, resp, nil
}

// Validate performs a live round trip to the identity endpoint using the
// candidate token and returns the resulting profile. It fails with an invalid
// credential condition on any non-success response. Validation does not store
// the token; persistence is the caller's responsibility after success.
func Validate(ctx context.Context, token, baseURL string) (*UserProfile, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidCredential, "empty credential")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = httpTimeout

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(baseURL, "/")+"/user", nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Accept", acceptJSON)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeTransport, err, "validate credential")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.ErrCodeInvalidCredential, "credential rejected (status %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeTransport, err, "read identity response")
	}
	var profile UserProfile
	if err := decode(body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
