// Package devicestate provides the set of currently pressed keys of the system keyboard.
package devicestate

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	hook "github.com/robotn/gohook"
	"github.com/tkw1536/keybind"
	"github.com/tkw1536/keybind/logging"
)

var stateLogger zerolog.Logger

func init() {
	logging.ComponentLogger("devicestate.State", &stateLogger)
}

// hookStart and hookEnd start and end the global keyboard hook
var hookStart = hook.Start
var hookEnd = hook.End

// ErrStopped is returned by State.Keys once the keyboard hook has stopped
var ErrStopped = errors.New("State: keyboard hook stopped")

// ErrAlreadyActive is returned by Start when another State is still active
var ErrAlreadyActive = errors.New("Start: keyboard hook already active")

// active indicates if a State is currently running.
// The underlying hook is global, so only one may exist at a time.
var active struct {
	sync.Mutex
	running bool
}

// State tracks the keys currently pressed on the system keyboard.
// It implements keybind.Source.
type State struct {
	l       sync.Mutex
	pressed pressed
	stopped bool

	done chan struct{}
}

// Start starts tracking the system keyboard.
// Tracking stops as soon as ctx is cancelled, after which Keys returns ErrStopped.
//
// Only one State can be active at the same time, globally.
func Start(ctx context.Context) (*State, error) {
	active.Lock()
	defer active.Unlock()

	if active.running {
		return nil, ErrAlreadyActive
	}
	active.running = true

	state := &State{
		pressed: make(pressed),
		done:    make(chan struct{}),
	}

	stateLogger.Info().Msg("starting keyboard hook")
	events := hookStart()

	go state.consume(events)
	go func() {
		select {
		case <-ctx.Done():
			state.stop()
			hookEnd()
		case <-state.done:
		}

		active.Lock()
		defer active.Unlock()
		active.running = false
	}()

	return state, nil
}

// consume applies events until the channel is closed
func (state *State) consume(events <-chan hook.Event) {
	defer close(state.done)
	defer state.stop()

	for event := range events {
		state.l.Lock()
		changed := state.pressed.apply(event)
		state.l.Unlock()

		if changed {
			stateLogger.Trace().Uint16("keycode", event.Keycode).Uint8("kind", event.Kind).Msg("key state changed")
		}
	}
}

func (state *State) stop() {
	state.l.Lock()
	defer state.l.Unlock()

	if state.stopped {
		return
	}
	state.stopped = true
	stateLogger.Info().Msg("keyboard hook stopped")
}

// Done returns a channel that is closed once the hook no longer delivers events
func (state *State) Done() <-chan struct{} {
	return state.done
}

// Keys returns the keys currently pressed.
// Once the hook has stopped, returns ErrStopped.
func (state *State) Keys() ([]keybind.Key, error) {
	state.l.Lock()
	defer state.l.Unlock()

	if state.stopped {
		return nil, ErrStopped
	}
	return state.pressed.keys(), nil
}

var _ keybind.Source = (*State)(nil)
