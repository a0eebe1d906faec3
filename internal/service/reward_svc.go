package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MsRupa/vidlook-app/internal/metrics"
	"github.com/MsRupa/vidlook-app/internal/model"
)

// Reward policy. Seconds unless noted.
const (
	MaxClaimSeconds      = 65
	MinRewardInterval    = 55 * time.Second
	ElapsedBuffer        = 5 * time.Second
	PerVideoDailyCap     = 1800
	DailyCap             = 21600
	HourlyCap            = 4200
	TokensPerMinute      = 2
	SponsoredPerMinute   = 5
	DefaultLedgerTimeout = 3 * time.Second
)

// Result messages returned to the client.
const (
	MsgFlagged       = "Account flagged for review"
	MsgPleaseWait    = "Please wait before recording again"
	MsgInvalidWatch  = "Invalid watch time"
	MsgVideoLimit    = "Video limit reached. Watch a different video!"
	MsgDailyLimit    = "Daily watch limit reached (6 hours). Come back tomorrow!"
	MsgHourlyLimit   = "Hourly limit reached. Take a short break!"
	MsgKeepWatching  = "Keep watching to earn tokens!"
	msgEarnedPattern = "Earned %d VIDEO tokens!"
)

// Ledger is the account ledger the reward validator reads and commits to.
// Balance changes go through CommitWatch only, which must apply them as
// atomic increments.
type Ledger interface {
	GetAccount(ctx context.Context, accountID string) (*model.Account, error)
	// SumWatchedSeconds totals credited seconds since the given time. An
	// empty videoID sums across all videos.
	SumWatchedSeconds(ctx context.Context, accountID, videoID string, since time.Time) (int64, error)
	// CommitWatch appends entry and credits its seconds and tokens in one
	// transaction, setting last_rewarded_at to at. The credit applies only if
	// last_rewarded_at still equals prev, the value the checks ran against;
	// otherwise it returns model.ErrConcurrentReward. It returns the new
	// balance or model.ErrWatchExceedsAge when the credit would outrun
	// account age.
	CommitWatch(ctx context.Context, entry model.WatchEntry, at time.Time, prev *time.Time) (int64, error)
	TouchLastRewarded(ctx context.Context, accountID string, at time.Time) error
}

// RewardService decides how many tokens a reported watch interval is worth.
type RewardService struct {
	ledger  Ledger
	timeout time.Duration
	now     func() time.Time
	locks   *keyedMutex
}

type RewardOption func(*RewardService)

// WithRewardClock replaces time.Now, for tests.
func WithRewardClock(now func() time.Time) RewardOption {
	return func(s *RewardService) { s.now = now }
}

func NewRewardService(ledger Ledger, timeout time.Duration, opts ...RewardOption) *RewardService {
	if timeout <= 0 {
		timeout = DefaultLedgerTimeout
	}
	s := &RewardService{
		ledger:  ledger,
		timeout: timeout,
		now:     time.Now,
		locks:   newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClampClaim floors a client-reported duration and bounds it to one
// reporting interval.
func ClampClaim(claimed float64) int64 {
	if math.IsNaN(claimed) || claimed <= 0 {
		return 0
	}
	if claimed >= MaxClaimSeconds {
		return MaxClaimSeconds
	}
	return int64(math.Floor(claimed))
}

// TokensFor converts credited seconds into tokens. Sub-minute leftovers earn
// nothing.
func TokensFor(seconds int64, sponsored bool) int64 {
	rate := int64(TokensPerMinute)
	if sponsored {
		rate = SponsoredPerMinute
	}
	return (seconds / 60) * rate
}

// RecordWatch validates a watch report and credits the account. Malformed
// ids, missing accounts and ledger failures are returned as errors; every
// business-rule rejection is a zero-token result.
func (s *RewardService) RecordWatch(ctx context.Context, req model.WatchRequest) (*model.WatchResult, error) {
	if !model.ValidAccountID(req.AccountID) {
		return nil, model.ErrInvalidAccountID
	}
	if !model.ValidVideoID(req.VideoID) {
		return nil, model.ErrInvalidVideoID
	}

	if req.ClaimedSeconds == nil {
		return nil, model.ErrMissingClaim
	}
	clamped := ClampClaim(*req.ClaimedSeconds)

	unlock := s.locks.Lock(req.AccountID)
	defer unlock()

	now := s.now().UTC()
	logger := log.With().Str("account_id", req.AccountID).Str("video_id", req.VideoID).Logger()

	acct, err := s.getAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	zero := func(outcome, msg string) *model.WatchResult {
		metrics.RewardOutcomes.WithLabelValues(outcome).Inc()
		return &model.WatchResult{TokensAwarded: 0, NewBalance: acct.TokenBalance, Message: msg}
	}

	if acct.ExceedsAge(now) {
		logger.Warn().
			Int64("total_watched_seconds", acct.TotalWatchedSeconds).
			Int64("age_seconds", acct.AgeSeconds(now)).
			Msg("reward: account exceeds age invariant")
		return zero("flagged", MsgFlagged), nil
	}

	if acct.LastRewardedAt != nil {
		elapsed := now.Sub(*acct.LastRewardedAt)
		if elapsed < MinRewardInterval {
			logger.Debug().Dur("elapsed", elapsed).Msg("reward: paced")
			return zero("paced", MsgPleaseWait), nil
		}
		if time.Duration(clamped)*time.Second > elapsed+ElapsedBuffer {
			logger.Warn().Int64("claimed", clamped).Dur("elapsed", elapsed).Msg("reward: claim exceeds elapsed time")
			return zero("invalid_claim", MsgInvalidWatch), nil
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	videoToday, err := s.sum(ctx, req.AccountID, req.VideoID, dayStart)
	if err != nil {
		return nil, err
	}
	if videoToday >= PerVideoDailyCap {
		logger.Debug().Int64("seconds_today", videoToday).Msg("reward: video cap reached")
		return zero("video_cap", MsgVideoLimit), nil
	}

	allToday, err := s.sum(ctx, req.AccountID, "", dayStart)
	if err != nil {
		return nil, err
	}
	if allToday >= DailyCap {
		logger.Debug().Int64("seconds_today", allToday).Msg("reward: daily cap reached")
		return zero("daily_cap", MsgDailyLimit), nil
	}

	lastHour, err := s.sum(ctx, req.AccountID, "", now.Add(-time.Hour))
	if err != nil {
		return nil, err
	}
	if lastHour >= HourlyCap {
		logger.Debug().Int64("seconds_last_hour", lastHour).Msg("reward: hourly cap reached")
		return zero("hourly_cap", MsgHourlyLimit), nil
	}

	final := min(
		clamped,
		PerVideoDailyCap-videoToday,
		DailyCap-allToday,
		HourlyCap-lastHour,
		acct.AgeSeconds(now)-acct.TotalWatchedSeconds,
	)
	tokens := TokensFor(final, req.IsSponsored)

	// Past this point the outcome is decided; finish even if the caller left.
	commitCtx := context.WithoutCancel(ctx)

	if tokens == 0 {
		if err := s.touch(commitCtx, req.AccountID, now); err != nil {
			return nil, err
		}
		return zero("sub_minute", MsgKeepWatching), nil
	}

	balance, err := s.commit(commitCtx, model.WatchEntry{
		AccountID:       req.AccountID,
		VideoID:         req.VideoID,
		SecondsCredited: final,
		TokensCredited:  tokens,
		CreatedAt:       now,
	}, now, acct.LastRewardedAt)
	if errors.Is(err, model.ErrConcurrentReward) {
		logger.Debug().Msg("reward: account rewarded concurrently")
		return zero("paced", MsgPleaseWait), nil
	}
	if errors.Is(err, model.ErrWatchExceedsAge) {
		logger.Warn().Int64("seconds", final).Msg("reward: ledger refused credit past account age")
		return zero("flagged", MsgFlagged), nil
	}
	if err != nil {
		return nil, err
	}

	metrics.RewardOutcomes.WithLabelValues("credited").Inc()
	metrics.TokensAwarded.WithLabelValues(strconv.FormatBool(req.IsSponsored)).Add(float64(tokens))
	logger.Info().Int64("seconds", final).Int64("tokens", tokens).Int64("balance", balance).Msg("reward: credited")

	return &model.WatchResult{
		TokensAwarded: tokens,
		NewBalance:    balance,
		Message:       fmt.Sprintf(msgEarnedPattern, tokens),
	}, nil
}

func (s *RewardService) getAccount(ctx context.Context, id string) (*model.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	acct, err := s.ledger.GetAccount(ctx, id)
	if err != nil {
		return nil, ledgerErr("get account", err)
	}
	return acct, nil
}

func (s *RewardService) sum(ctx context.Context, accountID, videoID string, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	n, err := s.ledger.SumWatchedSeconds(ctx, accountID, videoID, since)
	if err != nil {
		return 0, ledgerErr("sum watched seconds", err)
	}
	return n, nil
}

func (s *RewardService) touch(ctx context.Context, accountID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.ledger.TouchLastRewarded(ctx, accountID, at); err != nil {
		return ledgerErr("touch last rewarded", err)
	}
	return nil
}

func (s *RewardService) commit(ctx context.Context, entry model.WatchEntry, at time.Time, prev *time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	balance, err := s.ledger.CommitWatch(ctx, entry, at, prev)
	if err != nil {
		return 0, ledgerErr("commit watch", err)
	}
	return balance, nil
}

// ledgerErr keeps domain errors intact and tags timeouts as unavailability.
func ledgerErr(op string, err error) error {
	switch {
	case errors.Is(err, model.ErrAccountNotFound), errors.Is(err, model.ErrWatchExceedsAge),
		errors.Is(err, model.ErrConcurrentReward):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, model.ErrLedgerUnavailable):
		return fmt.Errorf("%w: %s: %w", model.ErrLedgerUnavailable, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
