package github

import "testing"

func TestValidateOwner(t *testing.T) {
	tests := []struct {
		owner   string
		wantErr bool
	}{
		{"octocat", false},
		{"a", false},
		{"my-org-123", false},
		{"", true},
		{"-leading-hyphen", true},
		{"has spaces", true},
		{"waaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaytoolong", true},
	}

	for _, tt := range tests {
		t.Run(tt.owner, func(t *testing.T) {
			err := ValidateOwner(tt.owner)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOwner(%q) = %v, wantErr %v", tt.owner, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRepo(t *testing.T) {
	tests := []struct {
		repo    string
		wantErr bool
	}{
		{"open-lens", false},
		{"repo.name_v2", false},
		{"", true},
		{"has spaces", true},
		{"has/slash", true},
	}

	for _, tt := range tests {
		t.Run(tt.repo, func(t *testing.T) {
			err := ValidateRepo(tt.repo)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRepo(%q) = %v, wantErr %v", tt.repo, err, tt.wantErr)
			}
		})
	}
}

func TestParseRepoRef(t *testing.T) {
	owner, repo, err := ParseRepoRef("golang/go")
	if err != nil {
		t.Fatalf("ParseRepoRef() failed: %v", err)
	}
	if owner != "golang" || repo != "go" {
		t.Errorf("got %s/%s, want golang/go", owner, repo)
	}

	if _, _, err := ParseRepoRef("no-slash"); err == nil {
		t.Error("expected error for missing slash")
	}
	if _, _, err := ParseRepoRef("-bad/repo"); err == nil {
		t.Error("expected error for invalid owner")
	}
}
