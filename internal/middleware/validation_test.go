package middleware

import "testing"

func TestValidateVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid short", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"valid with dash", "abc-def_123", "abc-def_123", false},
		{"trims whitespace", "  abc  ", "abc", false},
		{"empty", "", "", true},
		{"too long", "12345678901234567", "", true},
		{"exactly 16", "1234567890123456", "1234567890123456", false},
		{"invalid chars", "abc def", "", true},
		{"sql injection", "a'; DROP--", "", true},
		{"unicode", "abcédef", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateVideoID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateAccountID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid v4", "8f14e45f-ceea-467a-9575-cd8b3d4a1b2c", "8f14e45f-ceea-467a-9575-cd8b3d4a1b2c", false},
		{"uppercase normalized", "8F14E45F-CEEA-467A-9575-CD8B3D4A1B2C", "8f14e45f-ceea-467a-9575-cd8b3d4a1b2c", false},
		{"trims whitespace", " 8f14e45f-ceea-467a-9575-cd8b3d4a1b2c ", "8f14e45f-ceea-467a-9575-cd8b3d4a1b2c", false},
		{"empty", "", "", true},
		{"no dashes", "8f14e45fceea467a9575cd8b3d4a1b2c", "", true},
		{"nil uuid", "00000000-0000-0000-0000-000000000000", "", true},
		{"sql injection", "1' OR '1'='1", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateAccountID(tt.input)
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

func TestValidateWalletAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"hex address", "0x71C7656EC7ab88b098defB751B7401B5f6d8976F", false},
		{"empty", "", true},
		{"whitespace inside", "0x71C7 656E", true},
		{"path traversal", "../../etc/passwd", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateWalletAddress(tt.input)
			if tt.wantErr != (errMsg != "") {
				t.Errorf("ValidateWalletAddress(%q) err = %q, wantErr %v", tt.input, errMsg, tt.wantErr)
			}
		})
	}
}
