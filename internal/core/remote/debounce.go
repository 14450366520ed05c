// internal/core/remote/debounce.go
package remote

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/routegate/routegate/internal/types"
)

/*
 * Debounced authoritative checks.
 *
 * Rapid successive edits must not each trigger a remote call, and a late
 * response for an old edit must never overwrite the result for a newer one.
 * Each trigger takes a monotonically increasing sequence number; when a
 * response arrives, it is applied only if its sequence number is still the
 * latest issued. Timer cancellation alone is not enough: Stop() cannot recall
 * a request already in flight, so supersession is decided by sequence
 * comparison, not by timing. The network call itself is never cancelled.
 *
 * The staleness decision and the apply run as one critical section under a
 * dedicated mutex, and applied sequence numbers are recorded. Checking alone
 * would leave a window where a superseded response passes the check, loses
 * the CPU, and applies after the newer result has already landed.
 */

// CheckFunc performs one remote check.
type CheckFunc func(ctx context.Context) (*types.RemoteResult, error)

// ApplyFunc receives the outcome of the latest check. Called from the timer
// goroutine; stale outcomes are dropped before apply is reached.
type ApplyFunc func(result *types.RemoteResult, err error)

// Debouncer coalesces triggers into one trailing-edge check per quiet window.
type Debouncer struct {
	window time.Duration
	log    zerolog.Logger

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer

	// applyMu serializes the staleness decision with the apply itself
	applyMu     sync.Mutex
	lastApplied uint64
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(window time.Duration, log zerolog.Logger) *Debouncer {
	return &Debouncer{
		window: window,
		log:    log.With().Str("component", "debounce").Logger(),
	}
}

// Trigger schedules a check after the quiet window, superseding any pending
// trigger. Returns the sequence number issued for this edit.
func (d *Debouncer) Trigger(ctx context.Context, check CheckFunc, apply ApplyFunc) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		result, err := check(ctx)

		d.applyMu.Lock()
		defer d.applyMu.Unlock()

		d.mu.Lock()
		stale := seq != d.seq || seq <= d.lastApplied
		if !stale {
			d.lastApplied = seq
		}
		d.mu.Unlock()
		if stale {
			// A newer edit was issued or applied while this request was in flight
			d.log.Debug().Uint64("seq", seq).Msg("discarding superseded result")
			return
		}
		apply(result, err)
	})
	return seq
}

// Latest returns the most recently issued sequence number.
func (d *Debouncer) Latest() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq
}

// Stop cancels any pending trigger and invalidates in-flight checks.
// The sequence bump makes any request already past its timer stale, so its
// response is discarded on arrival.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Checker pairs a client with per-kind debouncers, one editing surface each
// for expressions and templates.
type Checker struct {
	client *Client
	expr   *Debouncer
	tmpl   *Debouncer
}

// NewChecker creates a debounced checker over a remote client.
func NewChecker(client *Client, window time.Duration, log zerolog.Logger) *Checker {
	return &Checker{
		client: client,
		expr:   NewDebouncer(window, log),
		tmpl:   NewDebouncer(window, log),
	}
}

// CheckExpression schedules a debounced authoritative expression check.
func (c *Checker) CheckExpression(ctx context.Context, src string, sample types.SampleContext, apply ApplyFunc) uint64 {
	return c.expr.Trigger(ctx, func(ctx context.Context) (*types.RemoteResult, error) {
		return c.client.ValidateExpression(ctx, src, sample)
	}, apply)
}

// CheckTemplate schedules a debounced authoritative template check.
func (c *Checker) CheckTemplate(ctx context.Context, src string, sample types.SampleContext, apply ApplyFunc) uint64 {
	return c.tmpl.Trigger(ctx, func(ctx context.Context) (*types.RemoteResult, error) {
		return c.client.ValidateTemplate(ctx, src, sample)
	}, apply)
}

// Stop cancels pending checks on both debouncers.
func (c *Checker) Stop() {
	c.expr.Stop()
	c.tmpl.Stop()
}
