package weather

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"krishi-sakhi-backend/internal/models"
	logx "krishi-sakhi-backend/pkg/logger"
)

func init() {
	logx.Disable()
}

type fetchResult struct {
	reading Reading
	err     error
}

// scriptedFetcher returns queued results in order, repeating the last one.
// When gate is set, every fetch waits for a value on it first.
type scriptedFetcher struct {
	mu      sync.Mutex
	results []fetchResult
	calls   int
	started chan struct{}
	gate    chan struct{}
}

func (f *scriptedFetcher) Fetch(ctx context.Context) (Reading, error) {
	f.mu.Lock()
	f.calls++
	var res fetchResult
	if len(f.results) > 0 {
		res = f.results[0]
		if len(f.results) > 1 {
			f.results = f.results[1:]
		}
	}
	started, gate := f.started, f.gate
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return res.reading, res.err
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitSnapshot(t *testing.T, p *Poller, cond func(models.WeatherSnapshot) bool) models.WeatherSnapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s := p.Snapshot(); cond(s) {
			return s
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("snapshot condition not met, last: %+v", p.Snapshot())
	return models.WeatherSnapshot{}
}

func TestPollerInitialSnapshotIsLoading(t *testing.T) {
	p := NewPoller(&scriptedFetcher{})
	s := p.Snapshot()
	if !s.Loading || s.Error != nil || s.Temperature != 0 {
		t.Fatalf("unexpected initial snapshot: %+v", s)
	}
}

func TestPollerSuccessFromSource(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"main":{"temp":301.2,"humidity":55}}`)
	p := NewPoller(NewClient(srv.URL+"/?q=", "key", "Delhi", srv.Client()), WithInterval(time.Hour))

	p.Start(context.Background())
	defer p.Stop()

	s := waitSnapshot(t, p, func(s models.WeatherSnapshot) bool { return !s.Loading })
	if s.Temperature != 301 || s.Humidity != 55 || s.Rainfall != 0 || s.Error != nil {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
}

func TestPollerFailureKeepsLastNumbers(t *testing.T) {
	f := &scriptedFetcher{results: []fetchResult{
		{reading: Reading{Temperature: 301, Humidity: 55, Rainfall: 1.5}},
		{err: errors.New("network down")},
	}}
	p := NewPoller(f, WithInterval(20*time.Millisecond))

	p.Start(context.Background())
	defer p.Stop()

	s := waitSnapshot(t, p, func(s models.WeatherSnapshot) bool { return s.Error != nil && !s.Loading })
	if *s.Error != FetchErrorMessage {
		t.Fatalf("expected %q, got %q", FetchErrorMessage, *s.Error)
	}
	if s.Temperature != 301 || s.Humidity != 55 || s.Rainfall != 1.5 {
		t.Fatalf("expected last known numbers to be kept, got %+v", s)
	}
}

func TestPollerFailureBeforeAnySuccess(t *testing.T) {
	f := &scriptedFetcher{results: []fetchResult{{err: ErrNotConfigured}}}
	p := NewPoller(f, WithInterval(time.Hour))

	p.Start(context.Background())
	defer p.Stop()

	s := waitSnapshot(t, p, func(s models.WeatherSnapshot) bool { return !s.Loading })
	if s.Error == nil || *s.Error != FetchErrorMessage {
		t.Fatalf("expected error state, got %+v", s)
	}
	if s.Temperature != 0 || s.Humidity != 0 || s.Rainfall != 0 {
		t.Fatalf("expected zero numbers, got %+v", s)
	}
}

func TestPollerKeepsPollingAfterFailures(t *testing.T) {
	f := &scriptedFetcher{results: []fetchResult{{err: errors.New("down")}}}
	p := NewPoller(f, WithInterval(10*time.Millisecond))

	p.Start(context.Background())
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for f.callCount() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if f.callCount() < 3 {
		t.Fatalf("expected repeated fetches, got %d", f.callCount())
	}
}

func TestPollerDiscardsResultAfterStop(t *testing.T) {
	f := &scriptedFetcher{
		results: []fetchResult{{reading: Reading{Temperature: 305, Humidity: 40}}},
		started: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	var notified int
	var mu sync.Mutex
	p := NewPoller(f, WithInterval(time.Hour), WithListener(func(models.WeatherSnapshot) {
		mu.Lock()
		notified++
		mu.Unlock()
	}))

	p.Start(context.Background())
	<-f.started

	before := p.Snapshot()
	mu.Lock()
	notifiedBefore := notified
	mu.Unlock()

	p.Stop()
	close(f.gate)
	time.Sleep(50 * time.Millisecond)

	after := p.Snapshot()
	if after != before {
		t.Fatalf("expected snapshot to be unchanged after stop, before %+v after %+v", before, after)
	}
	mu.Lock()
	defer mu.Unlock()
	if notified != notifiedBefore {
		t.Fatal("expected no listener call after stop")
	}
}

func TestPollerStopHaltsTicker(t *testing.T) {
	f := &scriptedFetcher{results: []fetchResult{{reading: Reading{Temperature: 300}}}}
	p := NewPoller(f, WithInterval(10*time.Millisecond))

	p.Start(context.Background())
	p.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	p.Stop()
	p.Stop()

	time.Sleep(20 * time.Millisecond)
	calls := f.callCount()
	time.Sleep(50 * time.Millisecond)
	if f.callCount() != calls {
		t.Fatalf("expected no fetches after stop, got %d more", f.callCount()-calls)
	}
}

func TestPollerNotifiesListeners(t *testing.T) {
	f := &scriptedFetcher{results: []fetchResult{{reading: Reading{Temperature: 299, Humidity: 70}}}}
	got := make(chan models.WeatherSnapshot, 4)
	p := NewPoller(f, WithInterval(time.Hour), WithListener(func(s models.WeatherSnapshot) { got <- s }))

	p.Start(context.Background())
	defer p.Stop()

	first := <-got
	if !first.Loading {
		t.Fatalf("expected loading snapshot first, got %+v", first)
	}
	second := <-got
	if second.Loading || second.Temperature != 299 || second.Humidity != 70 {
		t.Fatalf("unexpected second snapshot: %+v", second)
	}
}

func TestPollerStopWaitsForListener(t *testing.T) {
	f := &scriptedFetcher{results: []fetchResult{{reading: Reading{Temperature: 300}}}}
	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	p := NewPoller(f, WithInterval(time.Hour), WithListener(func(s models.WeatherSnapshot) {
		mu.Lock()
		calls++
		mu.Unlock()
		if !s.Loading {
			close(entered)
			<-release
		}
	}))

	p.Start(context.Background())
	<-entered

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("expected Stop to wait for the running listener")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Fatalf("expected exactly the loading and success notifications, got %d", calls)
	}
}
