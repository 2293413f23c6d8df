// Command keybind waits for a key combination and reports every time it is pressed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tkw1536/keybind"
	"github.com/tkw1536/keybind/devicestate"
	"github.com/tkw1536/keybind/logging"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := context.WithCancel(globalContext)
	defer cancel()

	state, err := devicestate.Start(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Unable to start keyboard hook")
	}

	kb, err := config.Keybind(state)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid combination")
	}

	triggers := 0
	kb.OnTrigger(func() {
		triggers++
		fmt.Printf("%s pressed (%d)\n", kb.Target(), triggers)
		if config.Once {
			cancel()
		}
	})

	eg, egCtx := errgroup.WithContext(logger.WithContext(ctx))
	eg.Go(func() error {
		err := kb.Wait(egCtx)

		// the hook stops on its own during shutdown
		if ctx.Err() != nil && errors.Cause(err) == devicestate.ErrStopped {
			return nil
		}
		return err
	})
	eg.Go(func() error {
		<-state.Done()
		return nil
	})

	if err := eg.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Stopped waiting for combination")
	}
}

//
// ctrl+c
//

var globalContext context.Context

func init() {
	var cancel context.CancelFunc
	globalContext, cancel = context.WithCancel(context.Background())

	cancelChan := make(chan os.Signal, 1)
	signal.Notify(cancelChan, os.Interrupt)

	go func() {
		<-cancelChan
		cancel()
	}()
}

//
// command line flags
//

var logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
var config = keybind.DefaultConfig()

func init() {
	config.AddFlagsTo(nil)
	flag.Parse()

	if config.Quiet {
		logger = logger.Level(zerolog.Disabled)
	}
	logging.Init(&logger)
}
