package github

import "time"

// UserSummary is the embedded actor shape: repository owner, issue author,
// assignee. Distinct from the extended [UserProfile].
type UserSummary struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// License identifies a repository license. Nullable on [Repository]: a
// repository with no detected license carries a nil pointer.
type License struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
}

// Repository is the canonical repository record. Instances are immutable once
// fetched: never locally mutated, only replaced wholesale on refetch.
type Repository struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	FullName    string      `json:"full_name"`
	Description string      `json:"description"`
	Owner       UserSummary `json:"owner"`
	HTMLURL     string      `json:"html_url"`
	Stars       int         `json:"stargazers_count"`
	Forks       int         `json:"forks_count"`
	Language    string      `json:"language"`
	Topics      []string    `json:"topics"`
	License     *License    `json:"license"`
	UpdatedAt   time.Time   `json:"updated_at"`
	PushedAt    *time.Time  `json:"pushed_at"`
	Size        int         `json:"size"`
	OpenIssues  int         `json:"open_issues_count"`
	HasIssues   bool        `json:"has_issues"`
	Archived    bool        `json:"archived"`
}

// UserProfile is the extended identity fetched from the user endpoint.
// It may legitimately be absent; see the orchestrator's placeholder handling.
type UserProfile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Bio         string    `json:"bio"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicRepos int       `json:"public_repos"`
	CreatedAt   time.Time `json:"created_at"`
}

// Label is an issue label. Color is a hex triplet without a leading marker.
type Label struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Reactions carries per-issue reaction counts.
type Reactions struct {
	TotalCount int `json:"total_count"`
	ThumbsUp   int `json:"+1"`
	ThumbsDown int `json:"-1"`
	Heart      int `json:"heart"`
}

// pullRequestRef marks a record from the issues endpoint as actually being a
// pull request. Presence of the marker is what matters, not its content.
type pullRequestRef struct {
	URL string `json:"url"`
}

// Issue is the canonical issue record. The upstream issues endpoint conflates
// issues and pull requests; records carrying the pull-request marker are
// stripped before a response is treated as an issue list.
type Issue struct {
	ID          int64           `json:"id"`
	Number      int             `json:"number"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	State       string          `json:"state"`
	User        UserSummary     `json:"user"`
	Labels      []Label         `json:"labels"`
	Comments    int             `json:"comments"`
	Assignee    *UserSummary    `json:"assignee"`
	Assignees   []UserSummary   `json:"assignees"`
	HTMLURL     string          `json:"html_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Repository  *Repository     `json:"repository,omitempty"`
	PullRequest *pullRequestRef `json:"pull_request,omitempty"`
	Reactions   *Reactions      `json:"reactions,omitempty"`
}

// IsPullRequest reports whether the record is actually a pull request.
func (i Issue) IsPullRequest() bool { return i.PullRequest != nil }

// SearchResult is a page of repository search results.
type SearchResult struct {
	TotalCount        int          `json:"total_count"`
	IncompleteResults bool         `json:"incomplete_results"`
	Items             []Repository `json:"items"`
	Warning           string       `json:"warning,omitempty"`
}

// TrendingItem is the trending feed's bespoke item shape. The feed provides no
// identity, topics, license, size, or issue counts; see [NormalizeTrending]
// for how those are defaulted.
type TrendingItem struct {
	Author      string `json:"author"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Language    string `json:"language"`
	Avatar      string `json:"avatar"`
}
