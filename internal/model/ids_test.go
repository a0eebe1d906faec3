package model

import (
	"strings"
	"testing"
)

func TestValidAccountID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"8f14e45f-ceea-467a-9575-cd8b3d4a1b2c", true},  // v4
		{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},  // v1
		{"8F14E45F-CEEA-467A-9575-CD8B3D4A1B2C", true},  // upper case
		{"8f14e45f-ceea-067a-9575-cd8b3d4a1b2c", false}, // version 0
		{"8f14e45f-ceea-767a-9575-cd8b3d4a1b2c", false}, // version 7
		{"8f14e45f-ceea-467a-c575-cd8b3d4a1b2c", false}, // microsoft variant
		{"8f14e45fceea467a9575cd8b3d4a1b2c", false},     // no dashes
		{"{8f14e45f-ceea-467a-9575-cd8b3d4a1b2c}", false},
		{"urn:uuid:8f14e45f-ceea-467a-9575-cd8b3d4a1b2c", false},
		{"8f14e45f-ceea-467a-9575-cd8b3d4a1b2g", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidAccountID(tt.id); got != tt.want {
			t.Errorf("ValidAccountID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestValidVideoID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"dQw4w9WgXcQ", true},
		{"abc-_123", true},
		{"", false},
		{strings.Repeat("a", MaxVideoIDLen+1), false},
		{"abc;DROP", false},
		{"abc def", false},
	}

	for _, tt := range tests {
		if got := ValidVideoID(tt.id); got != tt.want {
			t.Errorf("ValidVideoID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestValidWalletAddress(t *testing.T) {
	if !ValidWalletAddress("0x71C7656EC7ab88b098defB751B7401B5f6d8976F") {
		t.Error("hex wallet address should be valid")
	}
	if ValidWalletAddress("") {
		t.Error("empty wallet address should be invalid")
	}
	if ValidWalletAddress("0x71C7 656E") {
		t.Error("wallet address with whitespace should be invalid")
	}
}
