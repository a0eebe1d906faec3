package admission

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gate:"

// hitScript increments a fixed window counter, arming its expiry on the
// first hit. Returns {count, pttl}.
var hitScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`)

// violationScript increments an IP's violation count and writes the block
// key once the threshold is reached. ARGV: threshold, block ms, cooldown ms,
// now ms. Returns {violations, blockedUntilMs}.
var violationScript = redis.NewScript(`
local v = redis.call('INCR', KEYS[1])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
if v >= tonumber(ARGV[1]) then
	local untilMs = tonumber(ARGV[4]) + tonumber(ARGV[2])
	redis.call('SET', KEYS[2], untilMs, 'PX', ARGV[2])
	return {v, untilMs}
end
return {v, 0}
`)

// RedisStore shares gate state between instances. Keys carry TTLs, so Sweep
// has nothing to do.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) BlockedUntil(ctx context.Context, ip string, _ time.Time) (time.Time, error) {
	ms, err := s.rdb.Get(ctx, blockKey(ip)).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get block: %w", err)
	}
	return time.UnixMilli(ms), nil
}

func (s *RedisStore) Hit(ctx context.Context, key string, now time.Time, window time.Duration) (Window, error) {
	res, err := hitScript.Run(ctx, s.rdb, []string{windowKey(key)}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Window{}, fmt.Errorf("hit window: %w", err)
	}
	if len(res) != 2 {
		return Window{}, fmt.Errorf("hit window: unexpected reply %v", res)
	}

	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = window
	}
	return Window{
		Count: int(res[0]),
		Start: now.Add(ttl - window),
	}, nil
}

func (s *RedisStore) RecordViolation(ctx context.Context, ip string, now time.Time, policy AbusePolicy) (AbuseRecord, error) {
	res, err := violationScript.Run(ctx, s.rdb,
		[]string{violationKey(ip), blockKey(ip)},
		policy.Threshold,
		policy.Block.Milliseconds(),
		policy.Cooldown.Milliseconds(),
		strconv.FormatInt(now.UnixMilli(), 10),
	).Int64Slice()
	if err != nil {
		return AbuseRecord{}, fmt.Errorf("record violation: %w", err)
	}
	if len(res) != 2 {
		return AbuseRecord{}, fmt.Errorf("record violation: unexpected reply %v", res)
	}

	rec := AbuseRecord{Violations: int(res[0]), LastViolation: now}
	if res[1] > 0 {
		rec.BlockedUntil = time.UnixMilli(res[1])
	}
	return rec, nil
}

func (s *RedisStore) Sweep(context.Context, time.Time, time.Duration, time.Duration) error {
	return nil
}

func windowKey(key string) string   { return redisKeyPrefix + "win:" + key }
func violationKey(ip string) string { return redisKeyPrefix + "abuse:" + ip }
func blockKey(ip string) string     { return redisKeyPrefix + "block:" + ip }
