// Package scheduler runs the recurring transaction sweep on an interval.
package scheduler

import (
	"context"
	"log"
	"time"
)

// Sweeper processes everything due at now and reports how many it handled.
type Sweeper interface {
	ProcessDue(ctx context.Context, now time.Time) (int, error)
}

type Recurring struct {
	sweeper  Sweeper
	interval time.Duration
	now      func() time.Time
}

func NewRecurring(sweeper Sweeper, interval time.Duration) *Recurring {
	return &Recurring{sweeper: sweeper, interval: interval, now: time.Now}
}

// Run sweeps once immediately and then on every tick until ctx is done.
// Sweeps never overlap. A failed sweep is logged and retried on the next tick.
func (s *Recurring) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Recurring) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	n, err := s.sweeper.ProcessDue(ctx, s.now().UTC())
	if err != nil {
		log.Printf("recurring sweep: %v", err)
		return
	}
	if n > 0 {
		log.Printf("recurring sweep: processed %d transactions", n)
	}
}
