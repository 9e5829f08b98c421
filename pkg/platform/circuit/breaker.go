// Package circuit tracks consecutive failures of a remote dependency.
package circuit

import (
	"errors"
	"sync"
)

// ErrOpen is returned by Do while the circuit is open.
var ErrOpen = errors.New("circuit open")

// State is the circuit state.
type State int

const (
	StateClosed State = iota
	StateOpen
	// StateProbing lets a single call through after the circuit opened.
	StateProbing
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateProbing:
		return "probing"
	default:
		return "closed"
	}
}

// Breaker opens after FailureThreshold consecutive failures. While open,
// every ProbeEvery-th call is let through; a successful probe closes it.
type Breaker struct {
	mu               sync.Mutex
	name             string
	state            State
	failures         int
	skipped          int
	failureThreshold int
	probeEvery       int
	onChange         func(name string, from, to State)
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithFailureThreshold sets the consecutive failures that open the circuit.
// Default is 5.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithProbeEvery sets how many calls are rejected between probes while open.
// Default is 10.
func WithProbeEvery(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.probeEvery = n
		}
	}
}

// WithStateChange registers a callback run on every transition, outside the lock.
func WithStateChange(fn func(name string, from, to State)) Option {
	return func(b *Breaker) { b.onChange = fn }
}

func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		failureThreshold: 5,
		probeEvery:       10,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *Breaker) Name() string {
	return b.name
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Do runs fn unless the circuit is open and records its outcome.
// Errors for which ignore returns true count as successes; pass nil to
// count every error.
func (b *Breaker) Do(fn func() error, ignore func(error) bool) error {
	if !b.admit() {
		return ErrOpen
	}
	err := fn()
	b.record(err == nil || (ignore != nil && ignore(err)))
	return err
}

func (b *Breaker) admit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case StateOpen:
		b.skipped++
		if b.skipped < b.probeEvery {
			return false
		}
		b.skipped = 0
		b.state = StateProbing
		return true
	case StateProbing:
		return false
	default:
		return true
	}
}

func (b *Breaker) record(ok bool) {
	b.mu.Lock()
	from := b.state
	switch {
	case ok:
		b.failures = 0
		b.state = StateClosed
	case b.state == StateProbing:
		b.state = StateOpen
	default:
		b.failures++
		if b.failures >= b.failureThreshold {
			b.state = StateOpen
			b.skipped = 0
		}
	}
	to := b.state
	onChange := b.onChange
	b.mu.Unlock()

	if from != to && onChange != nil {
		onChange(b.name, from, to)
	}
}

// Reset closes the circuit and clears counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.skipped = 0
}
