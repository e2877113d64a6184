// Package poller watches a checkout session until it settles. It only reads
// payment state; durably settling records is the webhook reconciler's job.
package poller

import (
	"context"
	"time"

	"gift-registry-service/internal/model"
)

type State string

const (
	StateInitiating State = "initiating"
	StatePending    State = "pending"
	StateApproved   State = "approved"
	StateFailed     State = "failed"
	StateTimeout    State = "timeout"
)

// Terminal reports whether the poller stops scheduling further checks.
func (s State) Terminal() bool {
	return s == StateApproved || s == StateFailed || s == StateTimeout
}

const (
	DefaultInterval    = 5 * time.Second
	DefaultMaxAttempts = 12
)

// StatusChecker is one status read for a preference id. client.StatusClient
// implements it over the service's status endpoint.
type StatusChecker interface {
	CheckStatus(ctx context.Context, preferenceID string) (string, error)
}

type Poller struct {
	checker     StatusChecker
	interval    time.Duration
	maxAttempts int
	onState     func(State)
}

// New builds a poller. Non-positive interval or attempts fall back to the
// defaults; onState may be nil.
func New(checker StatusChecker, interval time.Duration, maxAttempts int, onState func(State)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Poller{
		checker:     checker,
		interval:    interval,
		maxAttempts: maxAttempts,
		onState:     onState,
	}
}

// Run polls on a fixed interval until the payment settles or the attempt cap
// is reached. Reaching the cap while still pending yields StateTimeout, which
// is distinct from StateFailed: the payment may still settle server-side, so
// the caller should offer a manual re-check rather than a new payment.
// Errors from individual checks are treated as transient and consume an
// attempt. Cancelling the context stops further scheduling.
func (p *Poller) Run(ctx context.Context, preferenceID string) (State, error) {
	p.report(StateInitiating)

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return StatePending, ctx.Err()
		case <-time.After(p.interval):
		}

		status, err := p.checker.CheckStatus(ctx, preferenceID)
		if err != nil {
			if ctx.Err() != nil {
				return StatePending, ctx.Err()
			}
			// transient; stay on schedule
			p.report(StatePending)
			continue
		}

		state := stateFor(status)
		p.report(state)
		if state.Terminal() {
			return state, nil
		}
	}

	p.report(StateTimeout)
	return StateTimeout, nil
}

// CheckOnce is the manual re-check: a single status query with no retry,
// for use after Run ended in StateFailed or StateTimeout.
func (p *Poller) CheckOnce(ctx context.Context, preferenceID string) (State, error) {
	status, err := p.checker.CheckStatus(ctx, preferenceID)
	if err != nil {
		return "", err
	}

	state := stateFor(status)
	p.report(state)
	return state, nil
}

func stateFor(status string) State {
	switch status {
	case model.PaymentStatusApproved:
		return StateApproved
	case model.PaymentStatusRejected, model.PaymentStatusCancelled:
		return StateFailed
	default:
		return StatePending
	}
}

func (p *Poller) report(state State) {
	if p.onState != nil {
		p.onState(state)
	}
}
