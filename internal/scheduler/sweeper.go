// Package scheduler runs periodic maintenance for the session store.
// Today that is a single job: dropping sessions that have been idle for
// longer than the configured TTL.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pillgame/apps/go-server/internal/metrics"
	"github.com/robalobadob/pillgame/apps/go-server/internal/store"
)

// Sweeper evicts idle sessions on a fixed interval.
type Sweeper struct {
	store     store.Store
	every     time.Duration
	ttl       time.Duration
	scheduler *gocron.Scheduler
}

// NewSweeper creates a sweeper that runs every interval and removes
// sessions idle for longer than ttl.
func NewSweeper(st store.Store, every, ttl time.Duration) *Sweeper {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Sweeper{store: st, every: every, ttl: ttl, scheduler: s}
}

// Start schedules the sweep job and returns immediately.
func (s *Sweeper) Start() error {
	if _, err := s.scheduler.Every(s.every).WaitForSchedule().Do(s.Sweep); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	s.scheduler.StartAsync()
	log.Info().Dur("every", s.every).Dur("ttl", s.ttl).Msg("session sweeper started")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.scheduler.Stop()
}

// Sweep runs one pass and reports how many sessions were removed.
func (s *Sweeper) Sweep() int {
	n := s.store.SweepIdle(context.Background(), s.ttl)
	metrics.SessionsSwept.Add(float64(n))
	metrics.SessionsActive.Set(float64(s.store.Len()))
	if n > 0 {
		log.Info().Int("removed", n).Int("remaining", s.store.Len()).Msg("idle sessions swept")
	}
	return n
}
