package keybind

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"
	hook "github.com/robotn/gohook"
)

// Key identifies a physical keyboard key.
// Values are the virtual key codes reported by the system keyboard hook.
type Key uint16

var (
	keyNames   map[Key]string // canonical name for each known code
	allNames   []string       // every name in the catalog, sorted
	keysByName = make(map[string]Key)
)

func init() {
	keyNames = make(map[Key]string, len(hook.Keycode))
	for name, code := range hook.Keycode {
		name = strings.ToLower(name)
		keysByName[name] = Key(code)
		allNames = append(allNames, name)

		// several names may share a code, pick the smallest one
		if old, ok := keyNames[Key(code)]; !ok || name < old {
			keyNames[Key(code)] = name
		}
	}
	sort.Strings(allNames)
}

// KeyByName looks up a key by its (case-insensitive) name.
func KeyByName(name string) (Key, bool) {
	key, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	return key, ok
}

// String returns the canonical name of this key
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", uint16(k))
}

// ErrUnknownKey is returned by ParseCombination for key names not in the catalog
var ErrUnknownKey = errors.New("ParseCombination: unknown key")

// ParseCombination parses a key combination such as "ctrl+g".
// Names are case-insensitive and may be surrounded by whitespace.
//
// The empty string parses into the empty set.
func ParseCombination(value string) (KeySet, error) {
	set := make(KeySet)
	if strings.TrimSpace(value) == "" {
		return set, nil
	}

	for _, name := range strings.Split(value, "+") {
		key, ok := KeyByName(name)
		if !ok {
			return nil, unknownKey(strings.ToLower(strings.TrimSpace(name)))
		}
		set[key] = struct{}{}
	}
	return set, nil
}

// maxSuggestions is the maximal number of suggestions for an unknown key
const maxSuggestions = 3

func unknownKey(name string) error {
	ranks := fuzzy.RankFindFold(name, allNames)
	if len(ranks) == 0 {
		return errors.Wrapf(ErrUnknownKey, "%q", name)
	}
	sort.Sort(ranks)

	suggestions := make([]string, 0, maxSuggestions)
	for _, rank := range ranks {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, rank.Target)
	}
	return errors.Wrapf(ErrUnknownKey, "%q (did you mean %s?)", name, strings.Join(suggestions, ", "))
}
