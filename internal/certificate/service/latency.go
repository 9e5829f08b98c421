package service

import (
	"context"
	"time"
)

// Latency holds the simulated network delays of each ledger phase.
type Latency struct {
	Submission time.Duration // issue: before the confirmation prompt
	Block      time.Duration // issue: after acceptance, before the write
	Query      time.Duration // verify
	List       time.Duration // list by owner
	Revoke     time.Duration // revoke: before the confirmation prompt
}

// DefaultLatency mirrors the delays of the demo ledger.
func DefaultLatency() Latency {
	return Latency{
		Submission: 2 * time.Second,
		Block:      3 * time.Second,
		Query:      time.Second,
		List:       800 * time.Millisecond,
		Revoke:     1500 * time.Millisecond,
	}
}

// NoLatency disables every delay.
func NoLatency() Latency {
	return Latency{}
}

// Scale multiplies every delay by factor. Factors at or below zero disable delays.
func (l Latency) Scale(factor float64) Latency {
	if factor <= 0 {
		return NoLatency()
	}
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * factor)
	}
	return Latency{
		Submission: scale(l.Submission),
		Block:      scale(l.Block),
		Query:      scale(l.Query),
		List:       scale(l.List),
		Revoke:     scale(l.Revoke),
	}
}

// wait sleeps for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
