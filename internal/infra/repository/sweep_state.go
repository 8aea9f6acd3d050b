package repository

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"aura-inn/internal/infra"
	"aura-inn/internal/infra/jsonstore"
	"aura-inn/internal/pkg/clock"
)

type sweepStateRecord struct {
	LastRun time.Time `json:"lastRun"`
}

// FileSweepState keeps the last completed reminder sweep in the data directory. Its lock only
// covers a single process.
type FileSweepState struct {
	store   *jsonstore.Store
	clock   clock.Clock
	slogger *slog.Logger

	mu          sync.Mutex
	lockedUntil time.Time
}

func NewFileSweepState(store *jsonstore.Store, clk clock.Clock, slogger *slog.Logger) *FileSweepState {
	return &FileSweepState{
		store:   store,
		clock:   clk,
		slogger: slogger,
	}
}

func (s *FileSweepState) LastRun(ctx context.Context) (time.Time, bool, error) {
	rec, err := jsonstore.Get[sweepStateRecord](s.store, CollectionSweepState)
	if err != nil {
		return time.Time{}, false, infra.WrapRepoErr(s.slogger, infra.KindStoreFailure, "failed to read sweep state", err)
	}
	return rec.LastRun, !rec.LastRun.IsZero(), nil
}

func (s *FileSweepState) SetLastRun(ctx context.Context, at time.Time) error {
	if err := s.store.Save(CollectionSweepState, sweepStateRecord{LastRun: at}); err != nil {
		return infra.WrapRepoErr(s.slogger, infra.KindStoreFailure, "failed to write sweep state", err)
	}
	return nil
}

// TryLock grants the lock when it is free or its previous holder's ttl has run out.
func (s *FileSweepState) TryLock(ctx context.Context, ttl time.Duration) (func(), bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if now.Before(s.lockedUntil) {
		return nil, false, nil
	}
	until := now.Add(ttl)
	s.lockedUntil = until

	release := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.lockedUntil.Equal(until) {
			s.lockedUntil = time.Time{}
		}
	}
	return release, true, nil
}
