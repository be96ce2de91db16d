// Package scanstatus tracks whether the backend is currently running a scan.
package scanstatus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jimezsa/jobscan/internal/models"
	"github.com/rs/zerolog"
)

const DefaultInterval = 2 * time.Second

var ErrAlreadyStarted = errors.New("scan status poller already started")

// Fetcher returns the backend's current scan flag.
type Fetcher interface {
	ScanStatus(ctx context.Context) (models.ScanStatus, error)
}

type Option func(*Poller)

func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// Poller asks the backend for its scan flag on a fixed period and publishes
// changes. Ticks are not chained to responses: each tick issues its own
// request, so a slow request never delays the next one.
type Poller struct {
	fetcher  Fetcher
	logger   zerolog.Logger
	interval time.Duration

	mu       sync.Mutex
	started  bool
	stopped  bool
	scanning bool
	issued   uint64
	applied  uint64
	subs     map[chan bool]struct{}

	ready     chan struct{}
	readyOnce sync.Once
	done      chan struct{}
	inflight  sync.WaitGroup
}

func New(fetcher Fetcher, logger zerolog.Logger, opts ...Option) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		logger:   logger,
		interval: DefaultInterval,
		subs:     map[chan bool]struct{}{},
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start issues one request immediately and then one per interval until Stop
// is called or ctx is done. A poller can be started once.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.started = true
	p.mu.Unlock()

	p.poll(ctx)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.done:
				return
			case <-ctx.Done():
				p.Stop()
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
	return nil
}

// Stop ends polling. Responses that arrive afterwards are dropped. Requests
// already in flight are left to finish on their own. Safe to call repeatedly.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	close(p.done)
	for ch := range p.subs {
		close(ch)
	}
	p.subs = map[chan bool]struct{}{}
	p.readyOnce.Do(func() { close(p.ready) })
}

// IsScanning reports the last known-good scan flag. It is false until the
// first successful response.
func (p *Poller) IsScanning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scanning
}

// Ready is closed once the first request has settled, or on Stop.
func (p *Poller) Ready() <-chan struct{} {
	return p.ready
}

// Subscribe returns a channel that receives the scan flag each time it
// changes. A slow reader only ever sees the latest value. The channel is
// closed on Stop.
func (p *Poller) Subscribe() <-chan bool {
	ch := make(chan bool, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		close(ch)
		return ch
	}
	p.subs[ch] = struct{}{}
	return ch
}

func (p *Poller) Unsubscribe(ch <-chan bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for sub := range p.subs {
		if sub == ch {
			delete(p.subs, sub)
			close(sub)
			return
		}
	}
}

// Done is closed once the poller has stopped.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until every request issued so far has settled.
func (p *Poller) Wait() {
	p.inflight.Wait()
}

func (p *Poller) poll(ctx context.Context) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.issued++
	seq := p.issued
	p.inflight.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.inflight.Done()
		status, err := p.fetcher.ScanStatus(ctx)
		p.settle(seq, status, err)
	}()
}

func (p *Poller) settle(seq uint64, status models.ScanStatus, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	defer p.readyOnce.Do(func() { close(p.ready) })

	if err != nil {
		p.logger.Warn().Err(err).Uint64("seq", seq).Msg("scan status request failed")
		return
	}
	if seq < p.applied {
		p.logger.Debug().Uint64("seq", seq).Uint64("applied", p.applied).Msg("stale scan status dropped")
		return
	}
	p.applied = seq

	if status.IsScanning == p.scanning {
		return
	}
	p.scanning = status.IsScanning
	p.logger.Debug().Bool("scanning", p.scanning).Msg("scan status changed")

	for ch := range p.subs {
		select {
		case ch <- p.scanning:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- p.scanning
		}
	}
}
