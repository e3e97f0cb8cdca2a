package weather

import (
	"context"
	"sync"
	"time"

	"krishi-sakhi-backend/internal/models"
	logx "krishi-sakhi-backend/pkg/logger"
)

const (
	// DefaultInterval is the fixed refresh interval. There is no backoff.
	DefaultInterval = 5 * time.Minute
	// FetchErrorMessage is what clients see when a fetch fails.
	FetchErrorMessage = "Failed to fetch weather data"
)

// Listener receives every snapshot the poller applies.
type Listener func(snapshot models.WeatherSnapshot)

// Option configures the poller.
type Option func(*Poller)

// WithInterval sets the refresh interval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// WithListener adds a snapshot listener.
func WithListener(l Listener) Option {
	return func(p *Poller) { p.listeners = append(p.listeners, l) }
}

// Poller owns the single current WeatherSnapshot. Results of fetches that
// started before Stop are discarded by comparing generation tokens.
type Poller struct {
	fetcher   Fetcher
	interval  time.Duration
	listeners []Listener

	// notifyMu serializes snapshot updates with their listener calls and with Stop.
	notifyMu sync.Mutex

	mu         sync.Mutex
	snapshot   models.WeatherSnapshot
	generation uint64
	running    bool
	cancel     context.CancelFunc
}

func NewPoller(fetcher Fetcher, opts ...Option) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		interval: DefaultInterval,
		snapshot: models.WeatherSnapshot{Loading: true},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Snapshot returns the current snapshot.
func (p *Poller) Snapshot() models.WeatherSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Start fetches once immediately and then on every tick until Stop. Non-blocking.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		logx.Warn().Msg("weather poller already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true
	p.generation++

	go p.loop(childCtx, p.generation)

	logx.Info().Dur("interval", p.interval).Msg("weather poller started")
}

// Stop cancels the timer and any in-flight fetch. It waits for a listener
// call in progress; no snapshot change or listener call happens after Stop
// returns, even if a fetch completes later. Listeners must not call Stop.
func (p *Poller) Stop() {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.cancel()
	p.running = false
	p.generation++
	logx.Info().Msg("weather poller stopped")
}

func (p *Poller) loop(ctx context.Context, gen uint64) {
	p.cycle(ctx, gen)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cycle(ctx, gen)
		}
	}
}

// cycle runs one fetch. Failures keep the last known numbers.
func (p *Poller) cycle(ctx context.Context, gen uint64) {
	if !p.apply(gen, func(s *models.WeatherSnapshot) {
		s.Loading = true
		s.Error = nil
	}) {
		return
	}

	reading, err := p.fetcher.Fetch(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("weather fetch failed")
		msg := FetchErrorMessage
		p.apply(gen, func(s *models.WeatherSnapshot) {
			s.Loading = false
			s.Error = &msg
		})
		return
	}

	p.apply(gen, func(s *models.WeatherSnapshot) {
		s.Temperature = reading.Temperature
		s.Humidity = reading.Humidity
		s.Rainfall = reading.Rainfall
		s.Loading = false
		s.Error = nil
		s.UpdatedAt = time.Now().UTC()
	})
}

// apply mutates the snapshot only if gen is still current, then notifies listeners.
func (p *Poller) apply(gen uint64, mutate func(*models.WeatherSnapshot)) bool {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if !p.running || gen != p.generation {
		p.mu.Unlock()
		logx.Debug().Uint64("generation", gen).Msg("discarding stale weather update")
		return false
	}
	mutate(&p.snapshot)
	snapshot := p.snapshot
	p.mu.Unlock()

	for _, l := range p.listeners {
		l(snapshot)
	}
	return true
}
