package keybind

import (
	"sort"
	"strings"
)

// KeySet is an unordered set of keys
type KeySet map[Key]struct{}

// NewKeySet creates a new KeySet containing the given keys.
// Duplicates are collapsed.
func NewKeySet(keys ...Key) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Has checks if key is contained in this set
func (set KeySet) Has(key Key) bool {
	_, ok := set[key]
	return ok
}

// Len returns the number of keys in this set
func (set KeySet) Len() int {
	return len(set)
}

// Equal checks if set and other contain exactly the same keys.
// The order in which keys were added does not matter.
func (set KeySet) Equal(other KeySet) bool {
	if len(set) != len(other) {
		return false
	}
	for k := range set {
		if _, ok := other[k]; !ok {
			return false
		}
	}
	return true
}

// Keys returns the keys in this set in ascending order
func (set KeySet) Keys() []Key {
	keys := make([]Key, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Clone returns a copy of this set
func (set KeySet) Clone() KeySet {
	clone := make(KeySet, len(set))
	for k := range set {
		clone[k] = struct{}{}
	}
	return clone
}

// String formats this set as a combination, e.g. "ctrl+g".
// Names are sorted, so the result is independent of insertion order.
func (set KeySet) String() string {
	names := make([]string, 0, len(set))
	for k := range set {
		names = append(names, k.String())
	}
	sort.Strings(names)
	return strings.Join(names, "+")
}
