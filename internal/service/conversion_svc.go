package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/MsRupa/vidlook-app/internal/model"
)

const (
	MinConversionTokens = 5000
	TokensPerWld        = 1000
)

var tokensPerWld = decimal.NewFromInt(TokensPerWld)

// ConversionStore debits balances and records conversions.
type ConversionStore interface {
	Convert(ctx context.Context, accountID string, videoTokens int64, wld decimal.Decimal) (int64, error)
	List(ctx context.Context, accountID string) ([]model.Conversion, error)
}

type ConversionService struct {
	store ConversionStore
}

func NewConversionService(store ConversionStore) *ConversionService {
	return &ConversionService{store: store}
}

// WldFor converts a VIDEO token amount at the fixed rate.
func WldFor(videoTokens int64) decimal.Decimal {
	return decimal.NewFromInt(videoTokens).Div(tokensPerWld)
}

// Convert exchanges VIDEO tokens for WLD. The debit is the only path that
// lowers a balance.
func (s *ConversionService) Convert(ctx context.Context, req model.ConvertRequest) (*model.ConvertResponse, error) {
	if !model.ValidAccountID(req.AccountID) {
		return nil, model.ErrInvalidAccountID
	}
	if req.VideoTokens < MinConversionTokens {
		return nil, fmt.Errorf("%w: minimum conversion is %d VIDEO tokens", model.ErrBelowMinimum, MinConversionTokens)
	}

	wld := WldFor(req.VideoTokens)
	remaining, err := s.store.Convert(ctx, req.AccountID, req.VideoTokens, wld)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("account_id", req.AccountID).
		Int64("video_tokens", req.VideoTokens).
		Str("wld", wld.String()).
		Msg("conversion recorded")

	return &model.ConvertResponse{
		Success:         true,
		VideoTokensUsed: req.VideoTokens,
		WldAmount:       wld,
		RemainingTokens: remaining,
		Message:         fmt.Sprintf("Successfully converted %d VIDEO to %s WLD!", req.VideoTokens, wld.String()),
	}, nil
}

func (s *ConversionService) List(ctx context.Context, accountID string) ([]model.Conversion, error) {
	if !model.ValidAccountID(accountID) {
		return nil, model.ErrInvalidAccountID
	}
	return s.store.List(ctx, accountID)
}
