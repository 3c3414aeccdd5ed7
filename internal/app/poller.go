package app

import (
	"context"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/logger"
)

const (
	defaultPollInterval = 15 * time.Second
	maxBackoff          = 30 * time.Second
)

// Poller refreshes the selected day in the background.
type Poller struct {
	kick chan struct{}
}

// StartPoller launches a background goroutine that refreshes the store's
// selected day at a fixed cadence, backing off exponentially after failures.
// Polling pauses after an Unauthenticated failure until Trigger is called.
// It returns immediately.
func StartPoller(ctx context.Context, r *Refresher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	p := &Poller{kick: make(chan struct{}, 1)}
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		failures := 0
		paused := false
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.kick:
				paused = false
			case <-timer.C:
				if paused {
					continue
				}
			}

			err := r.Refresh(ctx, r.Store.Date())
			switch {
			case err == nil:
				failures = 0
			case ctx.Err() != nil:
				return
			case api.IsUnauthenticated(err):
				paused = true
				logger.Warn("polling paused until login", "error", err)
			default:
				failures++
				logger.Warn("refresh failed", "error", err, "failures", failures)
			}

			if paused {
				timer.Stop()
				continue
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
	return p
}

// Trigger requests an immediate refresh and resumes a paused poller. It never
// blocks; triggers that arrive while one is pending are coalesced.
func (p *Poller) Trigger() {
	if p == nil {
		return
	}
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff. A base at or above the cap is never shortened.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 || base >= maxBackoff {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
