package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MsRupa/vidlook-app/internal/model"
)

type ConversionRepo struct {
	pool *pgxpool.Pool
}

func NewConversionRepo(pool *pgxpool.Pool) *ConversionRepo {
	return &ConversionRepo{pool: pool}
}

// Convert debits videoTokens and records the conversion in one transaction.
// The debit is guarded so the balance never goes negative. Returns the
// remaining balance.
func (r *ConversionRepo) Convert(ctx context.Context, accountID string, videoTokens int64, wld decimal.Decimal) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var remaining int64
	err = tx.QueryRow(ctx, `
		UPDATE accounts
		SET token_balance = token_balance - $2, updated_at = NOW()
		WHERE id = $1::uuid AND token_balance >= $2
		RETURNING token_balance`,
		accountID, videoTokens).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1::uuid)`, accountID).Scan(&exists); err != nil {
			return 0, err
		}
		if !exists {
			return 0, model.ErrAccountNotFound
		}
		return 0, model.ErrInsufficientFunds
	}
	if err != nil {
		return 0, fmt.Errorf("debit account: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO conversions (account_id, video_tokens, wld_amount)
		VALUES ($1::uuid, $2, $3::numeric)`,
		accountID, videoTokens, wld.String())
	if err != nil {
		return 0, fmt.Errorf("record conversion: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return remaining, nil
}

// List returns an account's conversions, newest first.
func (r *ConversionRepo) List(ctx context.Context, accountID string) ([]model.Conversion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id::text, video_tokens, wld_amount::text, created_at
		FROM conversions
		WHERE account_id = $1::uuid
		ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversions := []model.Conversion{}
	for rows.Next() {
		var c model.Conversion
		var wld string
		if err := rows.Scan(&c.ID, &c.AccountID, &c.VideoTokens, &wld, &c.CreatedAt); err != nil {
			return nil, err
		}
		if c.WldAmount, err = decimal.NewFromString(wld); err != nil {
			return nil, err
		}
		conversions = append(conversions, c)
	}
	return conversions, rows.Err()
}
