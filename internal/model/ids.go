package model

import (
	"regexp"

	"github.com/google/uuid"
)

const (
	accountIDLen   = 36
	MaxVideoIDLen  = 16
	MaxWalletLen   = 128
	MaxUsernameLen = 64
)

var (
	// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	walletRe  = regexp.MustCompile(`^[A-Za-z0-9_.:-]+$`)
)

// ValidAccountID reports whether id is a canonical RFC 4122 UUID of
// version 1 through 5.
func ValidAccountID(id string) bool {
	if len(id) != accountIDLen {
		return false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	if v := u.Version(); v < 1 || v > 5 {
		return false
	}
	return u.Variant() == uuid.RFC4122
}

func ValidVideoID(id string) bool {
	return id != "" && len(id) <= MaxVideoIDLen && videoIDRe.MatchString(id)
}

func ValidWalletAddress(addr string) bool {
	return addr != "" && len(addr) <= MaxWalletLen && walletRe.MatchString(addr)
}
