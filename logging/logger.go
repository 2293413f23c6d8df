// Package logging provides per-component loggers for keybind
package logging

import (
	"sync"

	"github.com/rs/zerolog"
)

var globalMutex sync.Mutex
var globalLogger *zerolog.Logger
var pending = make(map[string]*zerolog.Logger)

// Init configures the global logger and all component loggers registered so far.
// It should be called exactly once, from a main package.
func Init(global *zerolog.Logger) {
	globalMutex.Lock()
	defer globalMutex.Unlock()

	if globalLogger != nil {
		panic("logging.Init: Already called")
	}

	globalLogger = global
	for name, logger := range pending {
		writeLogger(name, logger)
	}
	pending = nil
}

func writeLogger(name string, logger *zerolog.Logger) {
	*logger = globalLogger.With().Str("component", name).Logger()
}

// ComponentLogger registers logger to be a logger for the given component.
//
// Until Init is called, the logger is left untouched.
// Loggers registered after Init are configured immediately.
func ComponentLogger(component string, logger *zerolog.Logger) {
	globalMutex.Lock()
	defer globalMutex.Unlock()

	if globalLogger == nil {
		pending[component] = logger
		return
	}

	writeLogger(component, logger)
}

// reset undoes Init, for use in tests only
func reset() {
	globalMutex.Lock()
	defer globalMutex.Unlock()

	globalLogger = nil
	pending = make(map[string]*zerolog.Logger)
}
