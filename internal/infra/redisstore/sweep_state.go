// Package redisstore keeps reminder sweep state in Redis so several instances share one schedule.
package redisstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"aura-inn/internal/infra"
	"aura-inn/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lastRunKey   = "aura-inn:sweep:last-run"
	sweepLockKey = "aura-inn:sweep:lock"
)

// Only the holder's token may delete the lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type SweepState struct {
	client  *redis.Client
	slogger *slog.Logger
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewSweepState(client *redis.Client, slogger *slog.Logger) *SweepState {
	return &SweepState{
		client:  client,
		slogger: slogger,
	}
}

func (s *SweepState) LastRun(ctx context.Context) (time.Time, bool, error) {
	v, err := s.client.Get(ctx, lastRunKey).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, infra.WrapRepoErr(s.slogger, infra.KindStoreFailure, "failed to read sweep state", err)
	}
	at, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, false, infra.WrapRepoErr(s.slogger, infra.KindDecodeFailure, "failed to parse sweep state", err)
	}
	return at, true, nil
}

func (s *SweepState) SetLastRun(ctx context.Context, at time.Time) error {
	if err := s.client.Set(ctx, lastRunKey, at.UTC().Format(time.RFC3339Nano), 0).Err(); err != nil {
		return infra.WrapRepoErr(s.slogger, infra.KindStoreFailure, "failed to write sweep state", err)
	}
	return nil
}

// TryLock takes the sweep lock with SET NX and a TTL, so a crashed holder cannot keep it.
func (s *SweepState) TryLock(ctx context.Context, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, sweepLockKey, token, ttl).Result()
	if err != nil {
		return nil, false, infra.WrapRepoErr(s.slogger, infra.KindStoreFailure, "failed to acquire sweep lock", err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		// the caller's context may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, s.client, []string{sweepLockKey}, token).Err(); err != nil {
			s.slogger.Warn("failed to release sweep lock", "error", err)
		}
	}
	return release, true, nil
}

func (s *SweepState) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
