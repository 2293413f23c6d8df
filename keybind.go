// Package keybind triggers a callback whenever a specific key combination is pressed.
//
// A Keybind periodically polls a Source for the set of currently pressed keys.
// The callback fires once each time the pressed keys become exactly the target combination.
// Holding the combination does not fire it again, and pressing any additional key prevents a trigger.
//
// Because the state is polled, a combination pressed and released within a single interval may go unnoticed.
package keybind

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Source provides the set of keys pressed at the moment of the call.
type Source interface {
	Keys() ([]Key, error)
}

// SourceFunc implements Source using a function
type SourceFunc func() ([]Key, error)

// Keys calls f
func (f SourceFunc) Keys() ([]Key, error) {
	return f()
}

// DefaultInterval is the default polling interval of a Keybind
const DefaultInterval = 10 * time.Millisecond

// Keybind monitors a Source for a specific combination of keys.
type Keybind struct {
	// Interval is the time between two polls of the source.
	// When zero or negative, DefaultInterval is used.
	Interval time.Duration

	source Source
	target KeySet

	satisfied bool // protected by tick

	tick sync.Mutex // held during a single poll

	l        sync.Mutex // protects callback
	callback func()
}

// New creates a new Keybind that triggers when exactly keys are pressed on source.
//
// An empty set of keys is permitted, but never triggers.
func New(source Source, keys ...Key) *Keybind {
	if source == nil {
		panic("keybind.New: source is nil")
	}
	return &Keybind{
		source: source,
		target: NewKeySet(keys...),
	}
}

// Target returns a copy of the combination this Keybind waits for
func (kb *Keybind) Target() KeySet {
	return kb.target.Clone()
}

// OnTrigger sets the callback to invoke when the combination is pressed.
// It replaces any previously set callback; nil removes it.
//
// OnTrigger may be called concurrently with Wait.
func (kb *Keybind) OnTrigger(callback func()) {
	kb.l.Lock()
	defer kb.l.Unlock()

	kb.callback = callback
}

// Triggered polls the source once and reports if the combination has just been pressed.
// It does not invoke the callback.
func (kb *Keybind) Triggered() (bool, error) {
	kb.tick.Lock()
	defer kb.tick.Unlock()

	pressed, err := kb.source.Keys()
	if err != nil {
		return false, errors.Wrap(err, "Keybind: unable to read pressed keys")
	}

	// the empty combination never triggers
	matches := len(kb.target) > 0 && kb.target.Equal(NewKeySet(pressed...))

	edge := matches && !kb.satisfied
	kb.satisfied = matches
	return edge, nil
}

// Wait polls the source and invokes the callback each time the combination is pressed.
// The callback is called on the goroutine calling Wait.
//
// Wait returns nil once ctx is cancelled.
// When the source returns an error, Wait stops and returns it.
func (kb *Keybind) Wait(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("combination", kb.target.String()).Logger()

	interval := kb.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", interval).Msg("waiting for combination")
	for {
		// check for cancellation before polling
		if ctx.Err() != nil {
			logger.Info().Msg("stopped waiting for combination")
			return nil
		}

		triggered, err := kb.Triggered()
		if err != nil {
			logger.Error().Err(err).Msg("polling failed")
			return err
		}
		if triggered {
			logger.Debug().Msg("combination triggered")
			kb.trigger()
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}
}

func (kb *Keybind) trigger() {
	kb.l.Lock()
	callback := kb.callback
	kb.l.Unlock()

	if callback != nil {
		callback()
	}
}
