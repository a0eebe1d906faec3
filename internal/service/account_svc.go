package service

import (
	"context"
	"strings"

	"github.com/MsRupa/vidlook-app/internal/model"
)

const (
	defaultCountry = "US"
	historyLimit   = 50
)

// AccountStore is the account side of the ledger used by the CRUD routes.
type AccountStore interface {
	Upsert(ctx context.Context, wallet, username, country, updateCountry string) (*model.Account, error)
	FindByWallet(ctx context.Context, wallet string) (*model.Account, error)
	Exists(ctx context.Context, accountID string) (bool, error)
	Stats(ctx context.Context, accountID string) (*model.AccountStatsResponse, error)
}

// HistoryStore lists credited watch entries.
type HistoryStore interface {
	History(ctx context.Context, accountID string, limit int) ([]model.WatchEntry, error)
}

type AccountService struct {
	accounts AccountStore
	history  HistoryStore
}

func NewAccountService(accounts AccountStore, history HistoryStore) *AccountService {
	return &AccountService{accounts: accounts, history: history}
}

// Connect returns the account bound to a wallet, creating it on first use.
func (s *AccountService) Connect(ctx context.Context, req model.ConnectRequest) (*model.Account, error) {
	wallet := strings.TrimSpace(req.WalletAddress)
	if !model.ValidWalletAddress(wallet) {
		return nil, model.ErrInvalidWallet
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = "user_" + wallet[:min(6, len(wallet))]
	}
	if len(username) > model.MaxUsernameLen {
		username = username[:model.MaxUsernameLen]
	}

	country := strings.ToUpper(strings.TrimSpace(req.Country))
	if !regionRe.MatchString(country) {
		country = ""
	}

	insertCountry := country
	if insertCountry == "" {
		insertCountry = defaultCountry
	}
	// On conflict only a supplied country overwrites the stored one.
	return s.accounts.Upsert(ctx, wallet, username, insertCountry, country)
}

func (s *AccountService) ByWallet(ctx context.Context, wallet string) (*model.Account, error) {
	wallet = strings.TrimSpace(wallet)
	if !model.ValidWalletAddress(wallet) {
		return nil, model.ErrInvalidWallet
	}
	return s.accounts.FindByWallet(ctx, wallet)
}

// History returns the account's most recent watch entries, newest first.
func (s *AccountService) History(ctx context.Context, accountID string) ([]model.WatchEntry, error) {
	if !model.ValidAccountID(accountID) {
		return nil, model.ErrInvalidAccountID
	}
	return s.history.History(ctx, accountID, historyLimit)
}

// Stats aggregates watch and conversion totals. Unknown accounts are an error.
func (s *AccountService) Stats(ctx context.Context, accountID string) (*model.AccountStatsResponse, error) {
	if !model.ValidAccountID(accountID) {
		return nil, model.ErrInvalidAccountID
	}
	ok, err := s.accounts.Exists(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return s.accounts.Stats(ctx, accountID)
}
