package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MsRupa/vidlook-app/internal/model"
)

type upsertCall struct {
	wallet, username, country, updateCountry string
}

type fakeAccounts struct {
	calls  []upsertCall
	exists bool
}

func (f *fakeAccounts) Upsert(_ context.Context, wallet, username, country, updateCountry string) (*model.Account, error) {
	f.calls = append(f.calls, upsertCall{wallet, username, country, updateCountry})
	return &model.Account{WalletAddress: wallet, Username: username, Country: country}, nil
}

func (f *fakeAccounts) FindByWallet(context.Context, string) (*model.Account, error) {
	return nil, model.ErrAccountNotFound
}

func (f *fakeAccounts) Exists(context.Context, string) (bool, error) { return f.exists, nil }

func (f *fakeAccounts) Stats(context.Context, string) (*model.AccountStatsResponse, error) {
	return &model.AccountStatsResponse{TotalTokensEarned: 4}, nil
}

func TestConnect(t *testing.T) {
	tests := []struct {
		name string
		req  model.ConnectRequest
		want upsertCall
	}{
		{
			name: "defaults",
			req:  model.ConnectRequest{WalletAddress: "0xAbCdEf123456"},
			want: upsertCall{"0xAbCdEf123456", "user_0xAbCd", "US", ""},
		},
		{
			name: "explicit",
			req:  model.ConnectRequest{WalletAddress: "0xAbCdEf123456", Username: "mia", Country: "br"},
			want: upsertCall{"0xAbCdEf123456", "mia", "BR", "BR"},
		},
		{
			name: "bad country ignored",
			req:  model.ConnectRequest{WalletAddress: "0xAbCdEf123456", Country: "Brazil"},
			want: upsertCall{"0xAbCdEf123456", "user_0xAbCd", "US", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeAccounts{}
			svc := NewAccountService(store, nil)
			if _, err := svc.Connect(context.Background(), tt.req); err != nil {
				t.Fatal(err)
			}
			if len(store.calls) != 1 || store.calls[0] != tt.want {
				t.Errorf("calls = %+v, want %+v", store.calls, tt.want)
			}
		})
	}
}

func TestConnect_InvalidWallet(t *testing.T) {
	svc := NewAccountService(&fakeAccounts{}, nil)
	if _, err := svc.Connect(context.Background(), model.ConnectRequest{WalletAddress: "  "}); !errors.Is(err, model.ErrInvalidWallet) {
		t.Errorf("err = %v, want ErrInvalidWallet", err)
	}
}

func TestStats_UnknownAccount(t *testing.T) {
	svc := NewAccountService(&fakeAccounts{exists: false}, nil)
	if _, err := svc.Stats(context.Background(), testAccount); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("err = %v, want ErrAccountNotFound", err)
	}

	svc = NewAccountService(&fakeAccounts{exists: true}, nil)
	stats, err := svc.Stats(context.Background(), testAccount)
	if err != nil || stats.TotalTokensEarned != 4 {
		t.Errorf("stats = %+v, err = %v", stats, err)
	}
}
