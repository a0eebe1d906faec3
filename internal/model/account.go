package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a VidLook user with its reward ledger fields.
type Account struct {
	ID                  string     `json:"id"`
	WalletAddress       string     `json:"walletAddress"`
	Username            string     `json:"username"`
	Country             string     `json:"country"`
	TokenBalance        int64      `json:"totalTokens"`
	TotalWatchedSeconds int64      `json:"totalWatchedSeconds"`
	LastRewardedAt      *time.Time `json:"-"`
	JoinedAt            time.Time  `json:"joinedAt"`
	UpdatedAt           time.Time  `json:"-"`
}

// AgeSeconds returns whole seconds elapsed since the account was created.
func (a *Account) AgeSeconds(now time.Time) int64 {
	age := int64(now.Sub(a.JoinedAt) / time.Second)
	if age < 0 {
		return 0
	}
	return age
}

// ExceedsAge reports whether the account has been credited more watch time
// than it has existed, an impossible state that flags the account.
func (a *Account) ExceedsAge(now time.Time) bool {
	return a.TotalWatchedSeconds > a.AgeSeconds(now)
}

// ConnectRequest is the API request body for POST /api/users/connect.
type ConnectRequest struct {
	WalletAddress string `json:"walletAddress"`
	Username      string `json:"username,omitempty"`
	Country       string `json:"country,omitempty"`
}

// AccountStatsResponse aggregates an account's watch and conversion history.
type AccountStatsResponse struct {
	TotalWatchTimeSeconds     int64           `json:"totalWatchTimeSeconds"`
	TotalTokensEarned         int64           `json:"totalTokensEarned"`
	TotalVideoTokensConverted int64           `json:"totalVideoTokensConverted"`
	TotalWldEarned            decimal.Decimal `json:"totalWldEarned"`
}
