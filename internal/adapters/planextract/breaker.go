package planextract

import (
	"errors"
	"sync"
	"time"

	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// BreakerState is the position of the circuit breaker
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// ErrCircuitOpen is returned without calling the service while the breaker is open
var ErrCircuitOpen = errors.New("plan extraction circuit breaker open")

// Breaker stops calling the extraction service after consecutive failures
// and lets a single trial call through once the cool-down has passed.
type Breaker struct {
	threshold   int
	coolDown    time.Duration
	clock       shared.Clock
	mu          sync.Mutex
	state       BreakerState
	failures    int
	lastFailure time.Time
}

// NewBreaker creates a closed breaker. A nil clock uses the real clock.
func NewBreaker(threshold int, coolDown time.Duration, clock shared.Clock) *Breaker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if threshold < 1 {
		threshold = 1
	}
	return &Breaker{threshold: threshold, coolDown: coolDown, clock: clock}
}

// Do runs fn unless the breaker is open. fn runs without the lock held.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	if b.state == BreakerOpen {
		if b.clock.Now().Sub(b.lastFailure) < b.coolDown {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		b.state = BreakerHalfOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		b.failures = 0
		b.state = BreakerClosed
		return nil
	}

	b.failures++
	b.lastFailure = b.clock.Now()
	if b.state == BreakerHalfOpen || b.failures >= b.threshold {
		b.state = BreakerOpen
	}
	return err
}

// State returns the current state
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Failures returns the consecutive failure count
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}
