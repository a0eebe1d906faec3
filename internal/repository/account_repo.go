package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MsRupa/vidlook-app/internal/model"
)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Upsert creates the account for a wallet, or refreshes an existing one.
// An existing account keeps its username; its country changes only when
// updateCountry is non-empty.
func (r *AccountRepo) Upsert(ctx context.Context, wallet, username, country, updateCountry string) (*model.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `
		INSERT INTO accounts (wallet_address, username, country)
		VALUES ($1, $2, $3)
		ON CONFLICT (wallet_address) DO UPDATE
		SET country = CASE WHEN $4::text <> '' THEN $4::text ELSE accounts.country END,
		    updated_at = NOW()
		RETURNING `+accountColumns,
		wallet, username, country, updateCountry))
}

// FindByWallet returns the account bound to a wallet address.
func (r *AccountRepo) FindByWallet(ctx context.Context, wallet string) (*model.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE wallet_address = $1`, wallet))
}

// Exists reports whether an account with the given id exists.
func (r *AccountRepo) Exists(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1::uuid)`, accountID).Scan(&exists)
	return exists, err
}

// Stats aggregates an account's watch entries and conversions.
func (r *AccountRepo) Stats(ctx context.Context, accountID string) (*model.AccountStatsResponse, error) {
	var stats model.AccountStatsResponse
	var wld string
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COALESCE(SUM(seconds_credited), 0)::bigint FROM watch_entries WHERE account_id = $1::uuid),
			(SELECT COALESCE(SUM(tokens_credited), 0)::bigint FROM watch_entries WHERE account_id = $1::uuid),
			(SELECT COALESCE(SUM(video_tokens), 0)::bigint FROM conversions WHERE account_id = $1::uuid),
			(SELECT COALESCE(SUM(wld_amount), 0)::text FROM conversions WHERE account_id = $1::uuid)`,
		accountID).Scan(
		&stats.TotalWatchTimeSeconds, &stats.TotalTokensEarned,
		&stats.TotalVideoTokensConverted, &wld,
	)
	if err != nil {
		return nil, err
	}
	if stats.TotalWldEarned, err = decimal.NewFromString(wld); err != nil {
		return nil, err
	}
	return &stats, nil
}
