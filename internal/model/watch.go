package model

import "time"

// WatchEntry is an append-only record of one credited watch interval.
type WatchEntry struct {
	ID              int64     `json:"id"`
	AccountID       string    `json:"userId"`
	VideoID         string    `json:"videoId"`
	SecondsCredited int64     `json:"watchedSeconds"`
	TokensCredited  int64     `json:"tokensEarned"`
	CreatedAt       time.Time `json:"timestamp"`
}

// WatchRequest is the API request body for POST /api/watch/record.
// ClaimedSeconds is a pointer so a missing field can be told apart from zero.
type WatchRequest struct {
	AccountID      string   `json:"accountId"`
	VideoID        string   `json:"videoId"`
	ClaimedSeconds *float64 `json:"claimedSeconds"`
	IsSponsored    bool     `json:"isSponsored"`
}

// WatchResult is the outcome of a watch-record call. Zero-token results carry
// the reason in Message.
type WatchResult struct {
	TokensAwarded int64  `json:"tokensAwarded"`
	NewBalance    int64  `json:"newBalance"`
	Message       string `json:"message"`
}
