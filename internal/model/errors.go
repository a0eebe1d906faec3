package model

import "errors"

var (
	ErrInvalidAccountID  = errors.New("invalid account id")
	ErrInvalidVideoID    = errors.New("invalid video id")
	ErrInvalidWallet     = errors.New("invalid wallet address")
	ErrMissingClaim      = errors.New("claimedSeconds is required")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient VIDEO tokens")
	ErrBelowMinimum      = errors.New("conversion below minimum")

	// ErrWatchExceedsAge is returned by the ledger when a credit would push
	// total watched seconds past the account's age.
	ErrWatchExceedsAge = errors.New("watched seconds would exceed account age")

	// ErrConcurrentReward is returned by the ledger when the account was
	// rewarded by another call after it was read.
	ErrConcurrentReward = errors.New("account rewarded concurrently")

	// ErrLedgerUnavailable wraps ledger failures and timeouts.
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	ErrEmptyQuery        = errors.New("search query is required")
	ErrSearchUnavailable = errors.New("video search is not configured")
)
