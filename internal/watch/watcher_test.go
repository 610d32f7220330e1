package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/camaragestao/gestao/internal/event"
	"github.com/camaragestao/gestao/internal/notify"
)

// scriptedFetch returns one canned result per call.
type scriptedFetch struct {
	results [][]int
	errs    []error
	calls   int
}

func (s *scriptedFetch) fetch(context.Context) ([]int, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var ids []int
	if i < len(s.results) {
		ids = s.results[i]
	}
	return ids, err
}

func TestWatcher_FirstPollEstablishesBaselineWithoutAlert(t *testing.T) {
	rec := &notify.Recorder{}
	fetch := &scriptedFetch{results: [][]int{{3, 1, 2}}}
	w := NewWatcher(fetch.fetch, rec, nil, nil)

	if err := w.Poll(context.Background()); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}

	if rec.Count() != 0 {
		t.Error("First poll must not alert")
	}
	if w.LastSeenMaxID() != 3 {
		t.Errorf("Expected baseline 3, got %d", w.LastSeenMaxID())
	}
}

func TestWatcher_AlertsOnceForNewTicket(t *testing.T) {
	rec := &notify.Recorder{}
	fetch := &scriptedFetch{results: [][]int{
		{1, 2},
		{1, 2, 3},
		{1, 2, 3},
	}}
	w := NewWatcher(fetch.fetch, rec, nil, nil)

	for i := 0; i < 3; i++ {
		if err := w.Poll(context.Background()); err != nil {
			t.Fatalf("Poll %d failed: %v", i, err)
		}
	}

	if rec.Count() != 1 {
		t.Errorf("Ticket 3 should be announced exactly once, got %d alerts", rec.Count())
	}
}

// TestWatcher_EmptyFetchSkipped covers the startup sequence where the
// first fetches return nothing: the empty poll is skipped, the first
// non-empty poll sets the baseline silently, and only a later id alerts.
func TestWatcher_EmptyFetchSkipped(t *testing.T) {
	rec := &notify.Recorder{}
	fetch := &scriptedFetch{results: [][]int{
		{},
		{1, 2},
		{1, 2},
		{1, 2, 3},
	}}
	w := NewWatcher(fetch.fetch, rec, nil, nil)

	ctx := context.Background()

	w.Poll(ctx)
	if w.LastSeenMaxID() != 0 {
		t.Errorf("Empty poll must not touch the baseline, got %d", w.LastSeenMaxID())
	}

	w.Poll(ctx)
	if rec.Count() != 0 {
		t.Error("Baseline poll must not alert")
	}

	w.Poll(ctx)
	if rec.Count() != 0 {
		t.Error("Unchanged list must not alert")
	}

	w.Poll(ctx)
	if rec.Count() != 1 {
		t.Errorf("Expected exactly one alert for ticket 3, got %d", rec.Count())
	}
	if w.LastSeenMaxID() != 3 {
		t.Errorf("Expected baseline 3, got %d", w.LastSeenMaxID())
	}
}

func TestWatcher_ShrinkingListDoesNotRearm(t *testing.T) {
	rec := &notify.Recorder{}
	fetch := &scriptedFetch{results: [][]int{
		{1, 2, 3},
		{1},
		{1, 3},
	}}
	w := NewWatcher(fetch.fetch, rec, nil, nil)
	ctx := context.Background()

	w.Poll(ctx)
	w.Poll(ctx)
	// Baseline follows the visible list down to 1.
	if w.LastSeenMaxID() != 1 {
		t.Errorf("Baseline should track the latest poll, got %d", w.LastSeenMaxID())
	}

	w.Poll(ctx)
	if rec.Count() != 1 {
		t.Errorf("Reappearing ticket 3 alerts once against the lowered baseline, got %d", rec.Count())
	}
}

func TestWatcher_FetchErrorPropagatesWithoutStateChange(t *testing.T) {
	rec := &notify.Recorder{}
	fetch := &scriptedFetch{
		results: [][]int{{5}, nil},
		errs:    []error{nil, errors.New("connection refused")},
	}
	w := NewWatcher(fetch.fetch, rec, nil, nil)
	ctx := context.Background()

	w.Poll(ctx)
	if err := w.Poll(ctx); err == nil {
		t.Fatal("Expected the fetch error to propagate")
	}
	if w.LastSeenMaxID() != 5 {
		t.Errorf("Failed poll must not touch the baseline, got %d", w.LastSeenMaxID())
	}
	if rec.Count() != 0 {
		t.Error("Failed poll must not alert")
	}
}

func TestWatcher_PublishesTicketNewEvent(t *testing.T) {
	bus := event.NewBus()
	var got []int
	bus.Subscribe("ticket.new", func(e event.Event) {
		got = append(got, e.(event.TicketNewEvent).MaxID)
	})

	fetch := &scriptedFetch{results: [][]int{{1}, {1, 4}}}
	w := NewWatcher(fetch.fetch, &notify.Recorder{}, bus, nil)
	ctx := context.Background()

	w.Poll(ctx)
	w.Poll(ctx)

	if len(got) != 1 || got[0] != 4 {
		t.Errorf("Expected one ticket.new event for id 4, got %v", got)
	}
}

// fakeClock hands out a shared channel so the test controls every tick.
type fakeClock struct {
	ch chan time.Time
}

func (f *fakeClock) After(time.Duration) <-chan time.Time { return f.ch }

func TestPoller_PollsOnTickAndStopsOnCancel(t *testing.T) {
	clock := &fakeClock{ch: make(chan time.Time)}

	var mu sync.Mutex
	polls := 0
	polled := make(chan struct{}, 8)
	poll := func(context.Context) error {
		mu.Lock()
		polls++
		mu.Unlock()
		polled <- struct{}{}
		return nil
	}

	p := NewPoller(poll, 15*time.Second, clock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		clock.ch <- time.Now()
		select {
		case <-polled:
		case <-time.After(time.Second):
			t.Fatal("Poller did not poll on tick")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poller did not stop on cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if polls != 2 {
		t.Errorf("Expected 2 polls, got %d", polls)
	}
}

func TestPoller_ContinuesAfterPollError(t *testing.T) {
	clock := &fakeClock{ch: make(chan time.Time)}

	polled := make(chan error, 8)
	calls := 0
	poll := func(context.Context) error {
		calls++
		var err error
		if calls == 1 {
			err = errors.New("backend down")
		}
		polled <- err
		return err
	}

	p := NewPoller(poll, time.Second, clock, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Start(ctx)

	clock.ch <- time.Now()
	if err := <-polled; err == nil {
		t.Fatal("First poll should have failed")
	}

	// The loop must survive the failure and poll again.
	clock.ch <- time.Now()
	if err := <-polled; err != nil {
		t.Fatalf("Second poll should succeed, got %v", err)
	}
}
