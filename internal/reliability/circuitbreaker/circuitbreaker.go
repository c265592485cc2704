// Package circuitbreaker provides fast-fail protection for a flaky remote
// dependency. The mail relay is its only consumer, so the API is a single
// Do wrapper rather than a record/allow pair.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Do without invoking the wrapped call while the
// breaker is open.
var ErrOpen = errors.New("circuit breaker open")

type state int

const (
	closed state = iota
	open
	halfOpen
)

// Breaker trips open after a run of consecutive failures and probes the
// dependency again once the cooldown elapses.
type Breaker struct {
	mu          sync.Mutex
	state       state
	failures    int
	threshold   int
	cooldown    time.Duration
	lastFailure time.Time
}

// New creates a breaker that opens after threshold consecutive failures
// and allows a probe call after cooldown.
func New(threshold int, cooldown time.Duration) *Breaker {
	if threshold < 1 {
		threshold = 1
	}
	return &Breaker{threshold: threshold, cooldown: cooldown}
}

// Do runs fn unless the breaker is open. A nil Breaker always runs fn.
func (b *Breaker) Do(fn func() error) error {
	if b == nil {
		return fn()
	}
	if !b.allow() {
		return ErrOpen
	}
	err := fn()
	b.record(err)
	return err
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case closed, halfOpen:
		return true
	default:
		if time.Since(b.lastFailure) > b.cooldown {
			b.state = halfOpen
			return true
		}
		return false
	}
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		b.state = closed
		b.failures = 0
		return
	}
	b.lastFailure = time.Now()
	if b.state == halfOpen {
		b.state = open
		b.failures = 0
		return
	}
	b.failures++
	if b.failures >= b.threshold {
		b.state = open
		b.failures = 0
	}
}

// Open reports whether the breaker currently rejects calls.
func (b *Breaker) Open() bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == open && time.Since(b.lastFailure) <= b.cooldown
}
