package devicestate

import (
	hook "github.com/robotn/gohook"
	"github.com/tkw1536/keybind"
)

// pressed holds the keys currently held down
type pressed map[keybind.Key]struct{}

// apply updates the pressed keys with the given event and reports if they changed.
//
// Press events add a key, release events remove it.
// Events without a keycode, such as typed characters, are ignored.
func (p pressed) apply(event hook.Event) bool {
	if event.Keycode == 0 {
		return false
	}

	key := keybind.Key(event.Keycode)
	_, held := p[key]

	switch event.Kind {
	case hook.KeyHold, hook.KeyDown:
		if held {
			return false
		}
		p[key] = struct{}{}
		return true
	case hook.KeyUp:
		if !held {
			return false
		}
		delete(p, key)
		return true
	}
	return false
}

// keys returns the pressed keys in ascending order
func (p pressed) keys() []keybind.Key {
	return keybind.KeySet(p).Keys()
}
