package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MsRupa/vidlook-app/internal/model"
)

const accountColumns = `
	id::text, wallet_address, username, country, token_balance,
	total_watched_seconds, last_rewarded_at, joined_at, updated_at`

// LedgerRepo is the Postgres account ledger. Balance and watch time only
// change through atomic increments in CommitWatch and the conversion debit.
type LedgerRepo struct {
	pool *pgxpool.Pool
}

func NewLedgerRepo(pool *pgxpool.Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.WalletAddress, &a.Username, &a.Country, &a.TokenBalance,
		&a.TotalWatchedSeconds, &a.LastRewardedAt, &a.JoinedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// GetAccount returns the account with the given UUID.
func (r *LedgerRepo) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1::uuid`, accountID))
}

// SumWatchedSeconds totals seconds credited to the account since the given
// time, for one video or, when videoID is empty, for all of them.
func (r *LedgerRepo) SumWatchedSeconds(ctx context.Context, accountID, videoID string, since time.Time) (int64, error) {
	var total int64
	var err error
	if videoID == "" {
		err = r.pool.QueryRow(ctx, `
			SELECT COALESCE(SUM(seconds_credited), 0)::bigint
			FROM watch_entries
			WHERE account_id = $1::uuid AND created_at >= $2`,
			accountID, since).Scan(&total)
	} else {
		err = r.pool.QueryRow(ctx, `
			SELECT COALESCE(SUM(seconds_credited), 0)::bigint
			FROM watch_entries
			WHERE account_id = $1::uuid AND video_id = $2 AND created_at >= $3`,
			accountID, videoID, since).Scan(&total)
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}

// CommitWatch credits one watch entry in a single transaction. The account
// update is guarded so credited seconds can never pass the account's age,
// and applies only while last_rewarded_at still equals prev.
func (r *LedgerRepo) CommitWatch(ctx context.Context, e model.WatchEntry, at time.Time, prev *time.Time) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx, `
		UPDATE accounts
		SET token_balance = token_balance + $2,
		    total_watched_seconds = total_watched_seconds + $3,
		    last_rewarded_at = $4,
		    updated_at = NOW()
		WHERE id = $1::uuid
		  AND last_rewarded_at IS NOT DISTINCT FROM $5::timestamptz
		  AND total_watched_seconds + $3 <= FLOOR(EXTRACT(EPOCH FROM ($4::timestamptz - joined_at)))
		RETURNING token_balance`,
		e.AccountID, e.TokensCredited, e.SecondsCredited, at, prev).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, r.refusal(ctx, tx, e.AccountID, prev)
	}
	if err != nil {
		return 0, fmt.Errorf("credit account: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO watch_entries (account_id, video_id, seconds_credited, tokens_credited, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5)`,
		e.AccountID, e.VideoID, e.SecondsCredited, e.TokensCredited, at)
	if err != nil {
		return 0, fmt.Errorf("append watch entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return balance, nil
}

// refusal explains why the guarded credit matched no row.
func (r *LedgerRepo) refusal(ctx context.Context, tx pgx.Tx, accountID string, prev *time.Time) error {
	var moved bool
	err := tx.QueryRow(ctx, `
		SELECT last_rewarded_at IS DISTINCT FROM $2::timestamptz
		FROM accounts WHERE id = $1::uuid`, accountID, prev).Scan(&moved)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return model.ErrAccountNotFound
	case err != nil:
		return err
	case moved:
		return model.ErrConcurrentReward
	default:
		return model.ErrWatchExceedsAge
	}
}

// TouchLastRewarded stamps a reward-eligible call that credited nothing.
func (r *LedgerRepo) TouchLastRewarded(ctx context.Context, accountID string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts SET last_rewarded_at = $2, updated_at = NOW()
		WHERE id = $1::uuid`, accountID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

// FindAgeViolations counts accounts credited with more watch time than
// their age and returns up to limit of their ids.
func (r *LedgerRepo) FindAgeViolations(ctx context.Context, now time.Time, limit int) (int, []string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, COUNT(*) OVER ()
		FROM accounts
		WHERE total_watched_seconds > FLOOR(EXTRACT(EPOCH FROM ($1::timestamptz - joined_at)))
		ORDER BY updated_at DESC
		LIMIT $2`, now, limit)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var total int
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id, &total); err != nil {
			return 0, nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}
	return total, ids, nil
}

// History returns the most recent watch entries, newest first.
func (r *LedgerRepo) History(ctx context.Context, accountID string, limit int) ([]model.WatchEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id::text, video_id, seconds_credited, tokens_credited, created_at
		FROM watch_entries
		WHERE account_id = $1::uuid
		ORDER BY created_at DESC
		LIMIT $2`, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.WatchEntry{}
	for rows.Next() {
		var e model.WatchEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.VideoID, &e.SecondsCredited, &e.TokensCredited, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
