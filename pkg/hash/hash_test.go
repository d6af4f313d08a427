package hash

import "testing"

func TestSHA256Hex(t *testing.T) {
	// Known vector: sha256("abc")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := SHA256Hex("abc"); got != want {
		t.Errorf("SHA256Hex(abc) = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Deterministic(t *testing.T) {
	a := SHA256Hex("192.168.1.1")
	b := SHA256Hex("192.168.1.1")
	if a != b {
		t.Error("same input should produce same hash")
	}
	if len(a) != 64 {
		t.Errorf("hex digest length = %d, want 64", len(a))
	}
}

func TestShortHex(t *testing.T) {
	full := SHA256Hex("10.0.0.1")
	short := ShortHex("10.0.0.1", 12)
	if len(short) != 12 {
		t.Errorf("len = %d, want 12", len(short))
	}
	if full[:12] != short {
		t.Error("short hash should be a prefix of the full hash")
	}
	if got := ShortHex("x", 100); got != SHA256Hex("x") {
		t.Error("oversized n should return the full digest")
	}
}
