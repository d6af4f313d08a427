package handler

import "testing"

func TestSanitizeEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/documents", "/api/documents"},
		{"/api/documents/upload-url", "/api/documents/upload-url"},
		{"/api/documents/8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b", "/api/documents/:id"},
		{"/api/documents/8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b/vote", "/api/documents/:id/vote"},
		{"/api/documents/8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b/view", "/api/documents/:id/view"},
		{"/api/comments/8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b/vote", "/api/comments/:id/vote"},
		{"/api/users/me", "/api/users/me"},
		{"/api/users/user_2abc", "/api/users/:userId"},
		{"/api/leaderboard", "/api/leaderboard"},
		{"/api/stats", "/api/stats"},
	}
	for _, tt := range tests {
		if got := sanitizeEndpoint(tt.path); got != tt.want {
			t.Errorf("sanitizeEndpoint(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
