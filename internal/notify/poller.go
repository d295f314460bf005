package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval matches the web client's refresh period.
const DefaultInterval = 30 * time.Second

// FetchFunc returns the current unread count.
type FetchFunc func(ctx context.Context) (int64, error)

// Poller periodically refreshes a Counter.
type Poller struct {
	Fetch    FetchFunc
	Counter  *Counter
	Logger   *slog.Logger
	Interval time.Duration

	// OnChange, if set, is called from the poll goroutine whenever a fetch
	// yields a value different from the previous one.
	OnChange func(unread int64)

	ctx       context.Context
	cancel    context.CancelFunc
	stopCh    chan struct{}
	doneCh    chan struct{}
	stopOnce  sync.Once
	startOnce sync.Once
	started   atomic.Bool
}

// NewPoller creates a poller. If interval is 0 or negative, defaults to
// DefaultInterval.
func NewPoller(fetch FetchFunc, counter *Counter, logger *slog.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	if counter == nil {
		counter = &Counter{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		Fetch:    fetch,
		Counter:  counter,
		Logger:   logger,
		Interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background loop. The first fetch happens immediately.
func (p *Poller) Start() {
	p.startOnce.Do(func() {
		p.started.Store(true)
		go p.run()
		p.Logger.Debug("notification poller started", "interval", p.Interval)
	})
}

// Stop cancels any in-flight fetch and blocks until the loop has exited.
// Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		close(p.stopCh)
		if p.started.Load() {
			<-p.doneCh
		}
		p.Logger.Debug("notification poller stopped")
	})
}

func (p *Poller) run() {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	last := int64(-1)
	p.poll(&last)

	for {
		select {
		case <-ticker.C:
			p.poll(&last)
		case <-p.stopCh:
			return
		}
	}
}

// poll performs one fetch. Failures are logged and the previous count kept.
func (p *Poller) poll(last *int64) {
	n, err := p.Fetch(p.ctx)
	if err != nil {
		if p.ctx.Err() == nil {
			p.Logger.Warn("failed to fetch unread count", "error", err)
		}
		return
	}

	p.Counter.Set(n)
	if n != *last {
		*last = n
		if p.OnChange != nil {
			p.OnChange(p.Counter.Value())
		}
	}
}
