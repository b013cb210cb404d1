package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleStore is a session store that can drop sessions untouched since a
// given time.
type IdleStore interface {
	DeleteIdle(ctx context.Context, before time.Time) ([]int64, error)
}

// Sweeper periodically removes idle sessions. OnRemoved, when set, is called
// with the chat ids that were dropped.
type Sweeper struct {
	store     IdleStore
	ttl       time.Duration
	schedule  string
	logger    *zap.Logger
	now       func() time.Time
	OnRemoved func(chatIDs []int64)
}

func NewSweeper(store IdleStore, ttl time.Duration, schedule string, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the sweep on the cron schedule until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("failed to sweep idle sessions", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add sweep job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("session sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("ttl", s.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

// Sweep removes every session idle for longer than the ttl and returns how
// many were dropped.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.ttl)

	removed, err := s.store.DeleteIdle(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete idle sessions: %w", err)
	}

	if len(removed) > 0 {
		s.logger.Info("idle sessions removed",
			zap.Int("count", len(removed)),
			zap.Time("cutoff", cutoff),
		)
		if s.OnRemoved != nil {
			s.OnRemoved(removed)
		}
	}

	return len(removed), nil
}
