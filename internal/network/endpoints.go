package network

import (
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"
)

var ErrNoEndpoints = errors.New("no API endpoints configured")

// Endpoints rotates across API base URLs. An endpoint that answers 5xx or
// fails at transport level is skipped until its cool-off expires. When every
// endpoint is cooling off, the primary is returned anyway.
type Endpoints struct {
	urls      []*url.URL
	coolOff   time.Duration
	downUntil map[string]time.Time
	index     int
	mu        sync.Mutex
	now       func() time.Time
}

func NewEndpoints(raw []string, coolOff time.Duration) (*Endpoints, error) {
	e := &Endpoints{
		coolOff:   coolOff,
		downUntil: map[string]time.Time{},
		now:       time.Now,
	}

	for _, base := range raw {
		base = strings.TrimRight(strings.TrimSpace(base), "/")
		if base == "" {
			continue
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.New("invalid API endpoint: " + base)
		}
		e.urls = append(e.urls, u)
	}
	if len(e.urls) == 0 {
		return nil, ErrNoEndpoints
	}

	return e, nil
}

// Current returns the endpoint requests should go to right now.
func (e *Endpoints) Current() *url.URL {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := 0; i < len(e.urls); i++ {
		candidate := e.urls[(e.index+i)%len(e.urls)]
		if !e.isDown(candidate) {
			e.index = (e.index + i) % len(e.urls)
			return candidate
		}
	}
	e.index = 0
	return e.urls[0]
}

// All returns every configured endpoint in priority order.
func (e *Endpoints) All() []*url.URL {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*url.URL{}, e.urls...)
}

// Report records the outcome of a request sent to endpoint. status is 0 when
// the request failed before a response arrived.
func (e *Endpoints) Report(endpoint *url.URL, status int) {
	if endpoint == nil {
		return
	}
	if status != 0 && status < 500 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.downUntil[endpoint.String()] = e.now().Add(e.coolOff)
	if len(e.urls) > 1 && e.urls[e.index].String() == endpoint.String() {
		e.index = (e.index + 1) % len(e.urls)
	}
}

func (e *Endpoints) isDown(endpoint *url.URL) bool {
	until, ok := e.downUntil[endpoint.String()]
	if !ok {
		return false
	}
	if e.now().After(until) {
		delete(e.downUntil, endpoint.String())
		return false
	}
	return true
}
