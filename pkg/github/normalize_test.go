package github

import (
	"testing"
)

func TestNormalizeTrending_Defaults(t *testing.T) {
	items := []TrendingItem{
		{
			Author:      "rustlang",
			Name:        "rust",
			Description: "a language",
			URL:         "https://github.com/rustlang/rust",
			Stars:       90000,
			Forks:       12000,
			Language:    "Rust",
			Avatar:      "https://avatars.example/1",
		},
	}

	repos := NormalizeTrending(items)
	if len(repos) != 1 {
		t.Fatalf("got %d repos, want 1", len(repos))
	}

	r := repos[0]
	if r.FullName != "rustlang/rust" {
		t.Errorf("FullName = %q, want rustlang/rust", r.FullName)
	}
	if r.Owner.Login != "rustlang" || r.Owner.AvatarURL != "https://avatars.example/1" {
		t.Errorf("Owner = %+v", r.Owner)
	}
	if r.Topics == nil || len(r.Topics) != 0 {
		t.Errorf("Topics = %v, want empty set", r.Topics)
	}
	if r.License != nil {
		t.Errorf("License = %v, want nil", r.License)
	}
	if r.Size != 0 || r.OpenIssues != 0 {
		t.Errorf("Size/OpenIssues = %d/%d, want zero", r.Size, r.OpenIssues)
	}
	if !r.HasIssues {
		t.Error("HasIssues = false, want true")
	}
	if r.Archived {
		t.Error("Archived = true, want false")
	}
}

func TestNormalizeTrending_DistinctIDsWithinResponse(t *testing.T) {
	items := make([]TrendingItem, 25)
	for i := range items {
		items[i] = TrendingItem{Author: "a", Name: "r"}
	}

	repos := NormalizeTrending(items)

	seen := map[int64]bool{}
	for _, r := range repos {
		if seen[r.ID] {
			t.Fatalf("duplicate id %d within one response", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestStripPullRequests(t *testing.T) {
	raw := []Issue{
		{Number: 1},
		{Number: 2, PullRequest: &pullRequestRef{URL: "pr"}},
		{Number: 3},
		{Number: 4, PullRequest: &pullRequestRef{URL: "pr"}},
		{Number: 5, PullRequest: &pullRequestRef{URL: "pr"}},
		{Number: 6},
		{Number: 7},
		{Number: 8},
	}

	issues := StripPullRequests(raw)

	if len(issues) != 5 {
		t.Fatalf("got %d issues, want 5", len(issues))
	}
	want := []int{1, 3, 6, 7, 8}
	for i, n := range want {
		if issues[i].Number != n {
			t.Errorf("issues[%d].Number = %d, want %d (order preserved)", i, issues[i].Number, n)
		}
	}
}

func TestStripPullRequests_Empty(t *testing.T) {
	if got := StripPullRequests(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
