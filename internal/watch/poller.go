package watch

import (
	"context"
	"time"

	"github.com/camaragestao/gestao/internal/logging"
)

// Clock abstracts the interval timer so tests can drive polls directly.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// RealClock is the production Clock.
type RealClock struct{}

func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// PollFunc is one poll cycle. The Watcher's Poll method satisfies it.
type PollFunc func(ctx context.Context) error

// Poller runs a PollFunc at a fixed interval until its context is
// canceled. A failed poll is logged and the loop keeps going; the backend
// being briefly unreachable must not kill live refresh.
type Poller struct {
	poll     PollFunc
	interval time.Duration
	clock    Clock
	log      *logging.Logger
}

// NewPoller creates a Poller.
func NewPoller(poll PollFunc, interval time.Duration, clock Clock, log *logging.Logger) *Poller {
	if clock == nil {
		clock = RealClock{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Poller{poll: poll, interval: interval, clock: clock, log: log}
}

// Start blocks, polling on each interval tick, until ctx is canceled. The
// caller's initial data load stands in for the first cycle, so Start does
// not poll immediately.
func (p *Poller) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.clock.After(p.interval):
			if err := p.poll(ctx); err != nil {
				p.log.Warn("poll failed", "error", err)
			}
		}
	}
}
