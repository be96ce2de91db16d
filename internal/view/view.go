// Package view holds the state behind each console view: the fetched list,
// its filter, and the scan poller that gates mutations. Every view owns its
// poller and must be closed.
package view

import (
	"context"
	"errors"
	"time"

	"github.com/jimezsa/jobscan/internal/gate"
	"github.com/jimezsa/jobscan/internal/scanstatus"
	"github.com/rs/zerolog"
)

var (
	ErrCancelled = errors.New("cancelled")
	// ErrClosed is returned when a result arrives after the view was closed.
	// The result is dropped.
	ErrClosed    = errors.New("view closed")
)

// Confirmer asks the operator to approve a destructive action.
type Confirmer func(prompt string) (bool, error)

// AlwaysConfirm approves every prompt; used for --yes.
func AlwaysConfirm(string) (bool, error) { return true, nil }

type Options struct {
	PollInterval time.Duration
	Confirm      Confirmer
	Logger       zerolog.Logger
}

type base struct {
	poller  *scanstatus.Poller
	confirm Confirmer
	logger  zerolog.Logger
}

func newBase(ctx context.Context, fetcher scanstatus.Fetcher, opts Options) (base, error) {
	confirm := opts.Confirm
	if confirm == nil {
		confirm = func(string) (bool, error) { return false, nil }
	}
	poller := scanstatus.New(fetcher, opts.Logger, scanstatus.WithInterval(opts.PollInterval))
	if err := poller.Start(ctx); err != nil {
		return base{}, err
	}
	return base{poller: poller, confirm: confirm, logger: opts.Logger}, nil
}

// Capabilities reflects the latest scan flag.
func (b base) Capabilities() gate.Capabilities {
	return gate.For(b.poller.IsScanning())
}

func (b base) IsScanning() bool {
	return b.poller.IsScanning()
}

// WaitReady blocks until the first scan status request has settled.
func (b base) WaitReady(ctx context.Context) error {
	select {
	case <-b.poller.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ScanUpdates delivers scan flag changes until the view is closed.
func (b base) ScanUpdates() <-chan bool {
	return b.poller.Subscribe()
}

func (b base) Close() {
	b.poller.Stop()
}

func (b base) closed() bool {
	select {
	case <-b.poller.Done():
		return true
	default:
		return false
	}
}

// mutate runs one gated mutation and then refresh. The list is only
// replaced when both the mutation and the refresh succeed.
func (b base) mutate(ctx context.Context, action gate.Action, prompt string, send func(context.Context) error, refresh func(context.Context) error) error {
	if err := gate.Check(b.Capabilities(), action); err != nil {
		return err
	}
	if gate.RequiresConfirmation(action) {
		ok, err := b.confirm(prompt)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}
	if err := send(ctx); err != nil {
		b.logger.Debug().Err(err).Str("action", string(action)).Msg("mutation failed")
		return err
	}
	if b.closed() {
		return ErrClosed
	}
	return refresh(ctx)
}
