package middleware

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid uuid", "8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b", "8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b", false},
		{"uppercase normalized", "8F14E45F-CEEA-467F-A0E7-0B6C4E2A1D3B", "8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b", false},
		{"trims whitespace", "  8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b  ", "8f14e45f-ceea-467f-a0e7-0b6c4e2a1d3b", false},
		{"empty", "", "", true},
		{"not a uuid", "doc-123", "", true},
		{"sql injection", "a'; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "user_2abcDEF123", "user_2abcDEF123", false},
		{"trims whitespace", "  u1  ", "u1", false},
		{"empty", "", "", true},
		{"too long 65", strings.Repeat("a", 65), "", true},
		{"contains space", "abc def", "", true},
		{"contains newline", "abc\ndef", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateUserID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateFileType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"pdf", "pdf", "pdf", false},
		{"uppercase normalized", "PDF", "pdf", false},
		{"markdown", "md", "md", false},
		{"empty", "", "", true},
		{"executable", "exe", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateFileType(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid key", "uploads/u1/notes.pdf", false},
		{"absolute", "/etc/passwd", true},
		{"traversal", "uploads/../../secrets", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateFilePath(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
		})
	}
}

func TestValidateVoteType(t *testing.T) {
	if msg := ValidateVoteType(1); msg != "" {
		t.Errorf("upvote rejected: %s", msg)
	}
	if msg := ValidateVoteType(-1); msg != "" {
		t.Errorf("downvote rejected: %s", msg)
	}
	for _, v := range []int{0, 2, -2, 100} {
		if msg := ValidateVoteType(v); msg == "" {
			t.Errorf("vote type %d should be rejected", v)
		}
	}
}

func TestValidateSeconds(t *testing.T) {
	if msg := ValidateSeconds(30); msg != "" {
		t.Errorf("30s rejected: %s", msg)
	}
	if msg := ValidateSeconds(0); msg == "" {
		t.Error("0s should be rejected")
	}
	if msg := ValidateSeconds(-5); msg == "" {
		t.Error("negative should be rejected")
	}
	if msg := ValidateSeconds(MaxSecondsPerLog + 1); msg == "" {
		t.Error("over-limit should be rejected")
	}
}
