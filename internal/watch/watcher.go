// Package watch implements the live-refresh poller and the new-ticket
// detector behind the dashboard's notification chime.
package watch

import (
	"context"
	"sync"

	"github.com/camaragestao/gestao/internal/event"
	"github.com/camaragestao/gestao/internal/logging"
	"github.com/camaragestao/gestao/internal/notify"
)

// FetchFunc returns the ids of the tickets currently visible to the user.
type FetchFunc func(ctx context.Context) ([]int, error)

// Watcher detects new tickets across polls by tracking the highest ticket
// id it has seen. The first successful poll only establishes the baseline;
// alerts start from the second poll on. The baseline is carried for the
// whole session and never reset, so a ticket is announced at most once.
type Watcher struct {
	fetch    FetchFunc
	notifier notify.Notifier
	bus      *event.Bus
	log      *logging.Logger

	mu            sync.Mutex
	lastSeenMaxID int
}

// NewWatcher creates a Watcher. The bus is optional; when present a
// TicketNewEvent is published alongside each alert.
func NewWatcher(fetch FetchFunc, notifier notify.Notifier, bus *event.Bus, log *logging.Logger) *Watcher {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Watcher{fetch: fetch, notifier: notifier, bus: bus, log: log}
}

// Poll fetches the current ticket ids and alerts if a ticket newer than
// the baseline appeared. An empty result is skipped entirely: the baseline
// keeps its value so a transiently empty list cannot re-arm old alerts.
func (w *Watcher) Poll(ctx context.Context) error {
	ids, err := w.fetch(ctx)
	if err != nil {
		return err
	}
	w.Observe(ids)
	return nil
}

// Observe applies the detection logic to an id list the caller already
// has, for views that fetch tickets themselves. Returns whether an alert
// fired.
func (w *Watcher) Observe(ids []int) bool {
	if len(ids) == 0 {
		return false
	}

	latest := ids[0]
	for _, id := range ids[1:] {
		if id > latest {
			latest = id
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	alerted := w.lastSeenMaxID > 0 && latest > w.lastSeenMaxID
	if alerted {
		w.log.Debug("new ticket detected", "latest", latest, "last_seen", w.lastSeenMaxID)
		w.notifier.Alert()
		if w.bus != nil {
			w.bus.Publish(event.NewTicketNewEvent(latest))
		}
	}
	w.lastSeenMaxID = latest
	return alerted
}

// LastSeenMaxID returns the current baseline. Zero means no poll has
// returned tickets yet.
func (w *Watcher) LastSeenMaxID() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeenMaxID
}
