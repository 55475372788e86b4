// Package sweeper runs the periodic pass that expires lapsed reservations and
// returns their stock. UI layers never reimplement this; they share the same
// SweepExpired entry point.
package sweeper

import (
	"context"
	"log"
	"time"
)

// ExpiredSweeper is the single entry point for terminating lapsed
// reservations.
type ExpiredSweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

const defaultInterval = 60 * time.Second

type Sweeper struct {
	svc      ExpiredSweeper
	interval time.Duration
	logger   *log.Logger
}

func New(svc ExpiredSweeper, interval time.Duration, logger *log.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Sweeper{
		svc:      svc,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on every tick until ctx is cancelled. The sweep itself is
// idempotent, so overlapping with on-demand sweeps is safe.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := s.svc.SweepExpired(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Printf("sweep expired: %v", err)
				continue
			}
			if count > 0 {
				s.logger.Printf("sweep expired: released %d reservations", count)
			}
		}
	}
}
