package app

import (
	"errors"
	"testing"
	"time"

	"github.com/dariost/XRainbow/internal/config"
	"github.com/dariost/XRainbow/internal/rainbow"
)

// fakeClock advances by step on every Now call, so each loop iteration
// observes a fixed amount of simulated elapsed time.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

// fakeSink records applied triples and teardown calls. onSet, if not nil,
// runs after each successful SetGamma.
type fakeSink struct {
	applied []rainbow.Triple
	closes  int
	setErr  error
	onSet   func(n int)
}

func (s *fakeSink) SetGamma(c rainbow.Triple) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.applied = append(s.applied, c)
	if s.onSet != nil {
		s.onSet(len(s.applied))
	}
	return nil
}

func (s *fakeSink) Close() error {
	s.closes++
	s.applied = append(s.applied, rainbow.Neutral)
	return nil
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Luminosity = 0.5
	return cfg
}

func TestRun_TimeLimit(t *testing.T) {
	cfg := testConfig()
	cfg.TimeLimit = 2.0

	sink := &fakeSink{}
	a := New(cfg, sink, nil)
	a.SetClock(&fakeClock{step: 500 * time.Millisecond})

	if err := a.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	// One Now call per iteration plus one for the start time: samples at
	// 0.5, 1.0, 1.5, and 2.0 simulated seconds are applied; the next
	// iteration sees 2.5 > 2.0 and stops.
	if got := len(sink.applied); got != 5 { // 4 samples + final reset
		t.Fatalf("applied %d triples, want 4 samples and a reset", got)
	}
	if sink.closes != 1 {
		t.Fatalf("sink closed %d times, want 1", sink.closes)
	}
	if last := sink.applied[len(sink.applied)-1]; last != rainbow.Neutral {
		t.Fatalf("final triple = %v, want neutral reset", last)
	}
}

func TestRun_StopRequest(t *testing.T) {
	cfg := testConfig() // unbounded time limit

	var a *App
	sink := &fakeSink{onSet: func(n int) {
		if n == 3 {
			a.Stop() // as the signal goroutine would, mid-loop
		}
	}}
	a = New(cfg, sink, nil)
	a.SetClock(&fakeClock{step: 100 * time.Millisecond})

	if err := a.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil on stop request", err)
	}
	if got := len(sink.applied); got != 4 { // 3 samples + final reset
		t.Fatalf("applied %d triples, want 3 samples and a reset", got)
	}
	if sink.closes != 1 {
		t.Fatalf("sink closed %d times, want exactly 1", sink.closes)
	}
	if last := sink.applied[len(sink.applied)-1]; last != rainbow.Neutral {
		t.Fatalf("final triple = %v, want neutral reset", last)
	}
}

func TestRun_SinkErrorIsFatalButStillTearsDown(t *testing.T) {
	cfg := testConfig()

	sink := &fakeSink{setErr: errors.New("connection lost")}
	a := New(cfg, sink, nil)
	a.SetClock(&fakeClock{step: 100 * time.Millisecond})

	err := a.Run()
	if err == nil || !errors.Is(err, sink.setErr) {
		t.Fatalf("Run() = %v, want wrapped sink error", err)
	}
	if sink.closes != 1 {
		t.Fatalf("sink closed %d times, want 1 even on failure", sink.closes)
	}
}

func TestRun_ShortTimeLimitAppliesAtLeastOnce(t *testing.T) {
	cfg := testConfig()
	cfg.TimeLimit = 0.5

	sink := &fakeSink{}
	a := New(cfg, sink, nil)
	a.SetClock(&fakeClock{step: 250 * time.Millisecond})

	if err := a.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if len(sink.applied) < 2 { // at least one sample before the reset
		t.Fatalf("applied %d triples, want at least one sample", len(sink.applied))
	}
}
