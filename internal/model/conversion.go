package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// WLD amounts are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// Conversion records a debit of VIDEO tokens exchanged for WLD.
type Conversion struct {
	ID          int64           `json:"id"`
	AccountID   string          `json:"userId"`
	VideoTokens int64           `json:"videoTokens"`
	WldAmount   decimal.Decimal `json:"wldAmount"`
	CreatedAt   time.Time       `json:"timestamp"`
}

// ConvertRequest is the API request body for POST /api/convert.
type ConvertRequest struct {
	AccountID   string `json:"accountId"`
	VideoTokens int64  `json:"videoTokens"`
}

// ConvertResponse is the API response after a successful conversion.
type ConvertResponse struct {
	Success         bool            `json:"success"`
	VideoTokensUsed int64           `json:"videoTokensUsed"`
	WldAmount       decimal.Decimal `json:"wldAmount"`
	RemainingTokens int64           `json:"remainingTokens"`
	Message         string          `json:"message"`
}
