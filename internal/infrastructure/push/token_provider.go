package push

import (
	"context"
	"sync"
)

// FetchFunc performs the actual credential acquisition against the push
// provider. It is expensive and must not run more than once.
type FetchFunc func(ctx context.Context) (string, error)

// TokenProvider memoizes one credential fetch for the process lifetime.
// The first caller arms the fetch; every caller, concurrent or later,
// receives the same result. The lock is held only to install the pending
// cell, never while the fetch itself is in flight.
type TokenProvider struct {
	fetch FetchFunc

	mu      sync.Mutex
	started bool
	done    chan struct{}
	token   string
	err     error
}

func NewTokenProvider(fetch FetchFunc) *TokenProvider {
	return &TokenProvider{fetch: fetch}
}

func (p *TokenProvider) Get(ctx context.Context) (string, error) {
	p.mu.Lock()
	if !p.started {
		p.started = true
		p.done = make(chan struct{})
		go p.run()
	}
	done := p.done
	p.mu.Unlock()

	select {
	case <-done:
		return p.token, p.err
	case <-ctx.Done():
		// the fetch keeps running for the callers still waiting on it
		return "", ctx.Err()
	}
}

func (p *TokenProvider) run() {
	// background context: the fetch outcome is shared process-wide and must
	// not be cancelled by whichever request happened to trigger it
	token, err := p.fetch(context.Background())

	p.mu.Lock()
	p.token = token
	p.err = err
	p.mu.Unlock()

	close(p.done)
}
