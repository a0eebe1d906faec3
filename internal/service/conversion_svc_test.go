package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/MsRupa/vidlook-app/internal/model"
)

type memConversions struct {
	balances map[string]int64
	recorded []model.Conversion
}

func (m *memConversions) Convert(_ context.Context, id string, tokens int64, wld decimal.Decimal) (int64, error) {
	bal, ok := m.balances[id]
	if !ok {
		return 0, model.ErrAccountNotFound
	}
	if bal < tokens {
		return 0, model.ErrInsufficientFunds
	}
	m.balances[id] = bal - tokens
	m.recorded = append(m.recorded, model.Conversion{AccountID: id, VideoTokens: tokens, WldAmount: wld})
	return m.balances[id], nil
}

func (m *memConversions) List(_ context.Context, id string) ([]model.Conversion, error) {
	return m.recorded, nil
}

func TestWldFor(t *testing.T) {
	tests := []struct {
		tokens int64
		want   string
	}{
		{5000, "5"},
		{5500, "5.5"},
		{12345, "12.345"},
		{1, "0.001"},
	}
	for _, tt := range tests {
		if got := WldFor(tt.tokens).String(); got != tt.want {
			t.Errorf("WldFor(%d) = %s, want %s", tt.tokens, got, tt.want)
		}
	}
}

func TestConvert(t *testing.T) {
	store := &memConversions{balances: map[string]int64{testAccount: 7500}}
	svc := NewConversionService(store)
	ctx := context.Background()

	if _, err := svc.Convert(ctx, model.ConvertRequest{AccountID: testAccount, VideoTokens: 4999}); !errors.Is(err, model.ErrBelowMinimum) {
		t.Errorf("err = %v, want ErrBelowMinimum", err)
	}
	if _, err := svc.Convert(ctx, model.ConvertRequest{AccountID: "nope", VideoTokens: 5000}); !errors.Is(err, model.ErrInvalidAccountID) {
		t.Errorf("err = %v, want ErrInvalidAccountID", err)
	}

	resp, err := svc.Convert(ctx, model.ConvertRequest{AccountID: testAccount, VideoTokens: 5500})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.RemainingTokens != 2000 || !resp.WldAmount.Equal(decimal.RequireFromString("5.5")) {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Message != "Successfully converted 5500 VIDEO to 5.5 WLD!" {
		t.Errorf("message = %q", resp.Message)
	}

	if _, err := svc.Convert(ctx, model.ConvertRequest{AccountID: testAccount, VideoTokens: 5000}); !errors.Is(err, model.ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
	if len(store.recorded) != 1 {
		t.Errorf("recorded %d conversions, want 1", len(store.recorded))
	}
}
