package devicestate

import (
	"context"
	"testing"
	"time"

	hook "github.com/robotn/gohook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkw1536/keybind"
)

func TestPressedApply(t *testing.T) {
	p := make(pressed)

	assert.True(t, p.apply(hook.Event{Kind: hook.KeyHold, Keycode: 29}), "press ctrl")
	assert.True(t, p.apply(hook.Event{Kind: hook.KeyHold, Keycode: 34}), "press g")
	assert.False(t, p.apply(hook.Event{Kind: hook.KeyHold, Keycode: 34}), "auto-repeat g")
	assert.False(t, p.apply(hook.Event{Kind: hook.KeyDown, Keychar: 'g'}), "typed character")
	assert.Equal(t, []keybind.Key{29, 34}, p.keys())

	assert.True(t, p.apply(hook.Event{Kind: hook.KeyUp, Keycode: 29}), "release ctrl")
	assert.False(t, p.apply(hook.Event{Kind: hook.KeyUp, Keycode: 29}), "release ctrl twice")
	assert.Equal(t, []keybind.Key{34}, p.keys())

	assert.False(t, p.apply(hook.Event{Kind: hook.MouseDown, Keycode: 1}), "mouse event")
	assert.Equal(t, []keybind.Key{34}, p.keys())
}

// fakeHook replaces the system hook with a channel for the duration of a test
func fakeHook(t *testing.T) chan hook.Event {
	events := make(chan hook.Event)

	oldStart, oldEnd := hookStart, hookEnd
	hookStart = func() chan hook.Event { return events }
	hookEnd = func() { close(events) }
	t.Cleanup(func() {
		hookStart, hookEnd = oldStart, oldEnd
	})

	return events
}

func TestState(t *testing.T) {
	events := fakeHook(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	state, err := Start(ctx)
	require.NoError(t, err)

	keys, err := state.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	// unbuffered sends are only received once the previous event has been applied
	events <- hook.Event{Kind: hook.KeyHold, Keycode: 29}
	events <- hook.Event{Kind: hook.KeyHold, Keycode: 34}
	events <- hook.Event{Kind: hook.KeyUp, Keycode: 29}
	events <- hook.Event{Kind: hook.KeyHold, Keycode: 42}

	require.Eventually(t, func() bool {
		keys, err := state.Keys()
		return err == nil && len(keys) == 2 && keys[0] == 34 && keys[1] == 42
	}, time.Second, time.Millisecond)

	cancel()
	<-state.Done()

	_, err = state.Keys()
	assert.Equal(t, ErrStopped, err)
}

func TestStateAlreadyActive(t *testing.T) {
	fakeHook(t)

	ctx, cancel := context.WithCancel(context.Background())

	state, err := Start(ctx)
	require.NoError(t, err)

	_, err = Start(ctx)
	assert.Equal(t, ErrAlreadyActive, err)

	cancel()
	<-state.Done()

	// once the first state has released the hook, a new one may be started
	fakeHook(t)
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()

	require.Eventually(t, func() bool {
		state2, err := Start(ctx2)
		if err != nil {
			return false
		}
		cancel2()
		<-state2.Done()
		return true
	}, time.Second, time.Millisecond)
}

func TestStateHookClosed(t *testing.T) {
	events := fakeHook(t)

	state, err := Start(context.Background())
	require.NoError(t, err)

	close(events)
	<-state.Done()

	_, err = state.Keys()
	assert.Equal(t, ErrStopped, err)

	// the hook is released without cancelling the context
	require.Eventually(t, func() bool {
		active.Lock()
		defer active.Unlock()
		return !active.running
	}, time.Second, time.Millisecond)
}
