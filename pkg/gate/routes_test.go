package gate

import (
	"strings"
	"testing"
)

func TestSessionsPath(t *testing.T) {
	cases := []struct {
		limit  int
		status string
		want   string
	}{
		{0, "", "/api/sessions?limit=20"},
		{50, "", "/api/sessions?limit=50"},
		{50, "completed", "/api/sessions?limit=50&status=completed"},
		{500, "", "/api/sessions?limit=100"},
		{-3, "running", "/api/sessions?limit=20&status=running"},
	}
	for _, tc := range cases {
		if got := SessionsPath(tc.limit, tc.status); got != tc.want {
			t.Errorf("SessionsPath(%d, %q) = %q, want %q", tc.limit, tc.status, got, tc.want)
		}
	}
}

func TestPlaybookRunPathEscapesSlug(t *testing.T) {
	got := PlaybookRunPath("my playbook/v2")
	if got != "/api/playbooks/my%20playbook%2Fv2/run" {
		t.Fatalf("unexpected path: %q", got)
	}

	segment := strings.TrimSuffix(strings.TrimPrefix(got, "/api/playbooks/"), "/run")
	if strings.ContainsAny(segment, "/ ") {
		t.Fatalf("slug segment contains unescaped delimiters: %q", segment)
	}
}

func TestUsagePath(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{0, "/api/usage"},
		{30, "/api/usage?days=30"},
		{1000, "/api/usage?days=365"},
	}
	for _, tc := range cases {
		if got := UsagePath(tc.days); got != tc.want {
			t.Errorf("UsagePath(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}
