// Package app runs the rainbow loop against a display gamma sink.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dariost/XRainbow/internal/config"
	"github.com/dariost/XRainbow/internal/rainbow"
)

// Sink applies gamma triples to a display. Close must restore neutral gamma
// before releasing the underlying connection; it is called exactly once per
// Run, on every exit path.
type Sink interface {
	SetGamma(rainbow.Triple) error
	Close() error
}

// Clock is the loop's time source. The default implementation uses the
// runtime's monotonic clock; tests substitute a fake to control elapsed
// time deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// App owns the sink for the duration of a run and coordinates the loop with
// signal-driven shutdown.
type App struct {
	cfg    config.Config
	sink   Sink
	clock  Clock
	logger *slog.Logger
	stop   atomic.Bool
}

// New creates an App. If logger is nil, logs are discarded.
func New(cfg config.Config, sink Sink, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &App{cfg: cfg, sink: sink, clock: systemClock{}, logger: logger}
}

// SetClock replaces the time source. For tests; must be called before Run.
func (a *App) SetClock(c Clock) { a.clock = c }

// Stop requests a graceful stop. It only flips an atomic flag, so it is
// safe to call from any goroutine at any time; the loop observes it once
// per iteration.
func (a *App) Stop() { a.stop.Store(true) }

// Run drives the sample-apply loop until the time limit elapses, Stop is
// called, or the sink fails. The sink is reset and released before Run
// returns, on every path. A stop request or an elapsed time limit is a
// normal completion, not an error.
func (a *App) Run() (err error) {
	defer func() {
		if cerr := a.sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	a.logger.Debug("loop starting",
		"time_limit", a.cfg.TimeLimit, "speed", a.cfg.Speed, "luminosity", a.cfg.Luminosity)

	start := a.clock.Now()
	for {
		elapsed := a.clock.Now().Sub(start).Seconds()
		if a.cfg.TimeLimit >= 0 && elapsed > a.cfg.TimeLimit {
			a.logger.Debug("time limit reached", "elapsed", elapsed)
			return nil
		}
		if err := a.sink.SetGamma(rainbow.At(elapsed*a.cfg.Speed, a.cfg.Luminosity)); err != nil {
			return fmt.Errorf("apply gamma: %w", err)
		}
		// Yield instead of sleeping: the loop stays tight so the fade is as
		// smooth as the display connection allows.
		runtime.Gosched()
		if a.stop.Load() {
			a.logger.Debug("stop requested", "elapsed", elapsed)
			return nil
		}
	}
}
