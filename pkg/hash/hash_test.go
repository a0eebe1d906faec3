package hash

import (
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	// SHA256 of empty string
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestShortHex(t *testing.T) {
	full := SHA256Hex("203.0.113.7")

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"12 char prefix", 12, full[:12]},
		{"1 char prefix", 1, full[:1]},
		{"full hash if n too long", 100, full},
		{"full hash if n is zero", 0, full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortHex("203.0.113.7", tt.n); got != tt.want {
				t.Errorf("ShortHex(n=%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestShortHex_Deterministic(t *testing.T) {
	if ShortHex("10.0.0.1", 12) != ShortHex("10.0.0.1", 12) {
		t.Error("ShortHex should be deterministic")
	}
	if ShortHex("10.0.0.1", 12) == ShortHex("10.0.0.2", 12) {
		t.Error("different inputs should produce different prefixes")
	}
}
