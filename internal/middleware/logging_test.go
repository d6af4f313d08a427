package middleware

import "testing"

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/documents/8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b", "/api/documents/:id"},
		{"/api/documents/8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b/vote", "/api/documents/:id/vote"},
		{"/api/comments/8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b/vote", "/api/comments/:id/vote"},
		{"/api/users/user_2abcDEF", "/api/users/:userId"},
		{"/api/documents", "/api/documents"},
		{"/api/stats", "/api/stats"},
		{"/health/live", "/health/live"},
	}
	for _, tt := range tests {
		if got := sanitizePath(tt.path); got != tt.want {
			t.Errorf("sanitizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
