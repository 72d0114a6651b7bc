package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/guleriaakshit/open-lens/pkg/errors"
	"github.com/guleriaakshit/open-lens/pkg/observability"
)

// DefaultTrendingURL is the community trending-feed endpoint. The feed is a
// scrape of the trending page behind a small JSON API; it needs no credential.
const DefaultTrendingURL = "https://api.gitterapp.com/repositories"

// TrendingClient fetches the curated daily-trending feed.
type TrendingClient struct {
	http    *http.Client
	baseURL string
	logger  *log.Logger
}

// NewTrendingClient creates a trending feed client. Pass an empty baseURL for
// the default feed endpoint.
func NewTrendingClient(baseURL string, logger *log.Logger) *TrendingClient {
	if baseURL == "" {
		baseURL = DefaultTrendingURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &TrendingClient{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// Daily fetches today's trending repositories, optionally scoped to a single
// language, normalized into canonical records.
func (c *TrendingClient) Daily(ctx context.Context, language string) ([]Repository, error) {
	params := url.Values{"since": {"daily"}}
	if language != "" {
		params.Set("language", language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "build request")
	}

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, apperrors.Wrap(apperrors.ErrCodeTransport, err, "fetch trending feed")
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.ErrCodeUpstream, "trending feed error: %d %s",
			resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var items []TrendingItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUpstream, err, "malformed trending feed")
	}
	return NormalizeTrending(items), nil
}
