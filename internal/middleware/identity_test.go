package middleware

import "testing"

func TestParseIdentity(t *testing.T) {
	id, ok := ParseIdentity("user_123", "a@b.edu", "Ada L", "https://img.example/a.png")
	if !ok {
		t.Fatal("expected identity")
	}
	if id.ID != "user_123" || id.Email != "a@b.edu" || id.FullName != "Ada L" {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestParseIdentity_Anonymous(t *testing.T) {
	if _, ok := ParseIdentity("", "a@b.edu", "Ada", ""); ok {
		t.Error("missing user id should be anonymous")
	}
	if _, ok := ParseIdentity("   ", "", "", ""); ok {
		t.Error("whitespace user id should be anonymous")
	}
}

func TestParseIdentity_TrimsFields(t *testing.T) {
	id, ok := ParseIdentity("  user_1  ", "  a@b.edu  ", "  Ada  ", "")
	if !ok {
		t.Fatal("expected identity")
	}
	if id.ID != "user_1" || id.Email != "a@b.edu" || id.FullName != "Ada" {
		t.Errorf("fields not trimmed: %+v", id)
	}
}
