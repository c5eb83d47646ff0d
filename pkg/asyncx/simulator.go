// Package asyncx simulates the latency and failure of remote mutations so
// callers can exercise busy and error states without a real backend.
package asyncx

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("ACTION")

var (
	CodeSimulatedFailure = ErrRegistry.Register("SIMULATED_FAILURE", errx.TypeExternal, http.StatusServiceUnavailable, "Action failed, please try again")
	CodeCancelled        = ErrRegistry.Register("CANCELLED", errx.TypeExternal, http.StatusRequestTimeout, "Action cancelled")
)

func ErrSimulatedFailure() *errx.Error {
	return ErrRegistry.New(CodeSimulatedFailure)
}

func ErrCancelled() *errx.Error {
	return ErrRegistry.New(CodeCancelled)
}

const DefaultLatency = 1500 * time.Millisecond

// Sleeper waits for d or until ctx is done
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper
type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// RealSleeper sleeps on the wall clock
var RealSleeper Sleeper = SleeperFunc(func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
})

// NoSleep returns immediately
var NoSleep Sleeper = SleeperFunc(func(ctx context.Context, _ time.Duration) error { return ctx.Err() })

// Outcome decides whether the action for key fails
type Outcome func(key string) (fail bool)

// AlwaysSucceed never fails
func AlwaysSucceed(string) bool { return false }

// AlwaysFail always fails
func AlwaysFail(string) bool { return true }

// Simulator runs mutations behind an artificial delay
type Simulator struct {
	Latency time.Duration
	Sleeper Sleeper
	Outcome Outcome
	// OnDone, when set, is called after every action with its result
	OnDone func(key string, elapsed time.Duration, err error)
	// Clock measures elapsed time for OnDone. Defaults to time.Now.
	Clock func() time.Time

	mu       sync.Mutex
	inflight map[string]int
	apply    sync.Mutex
}

// NewSimulator creates a simulator that succeeds after latency
func NewSimulator(latency time.Duration, fail bool) *Simulator {
	s := &Simulator{
		Latency: latency,
		Sleeper: RealSleeper,
		Outcome: AlwaysSucceed,
	}
	if fail {
		s.Outcome = AlwaysFail
	}
	return s
}

// Run marks key busy, waits the latency, then either applies mutation or
// returns ACTION.SIMULATED_FAILURE without applying it. Delays overlap but
// mutations are applied one at a time; the last one to complete wins.
func (s *Simulator) Run(ctx context.Context, key string, mutation func(ctx context.Context) error) error {
	start := s.now()
	s.acquire(key)
	defer s.release(key)

	err := s.run(ctx, key, mutation)
	if s.OnDone != nil {
		s.OnDone(key, s.now().Sub(start), err)
	}
	return err
}

func (s *Simulator) run(ctx context.Context, key string, mutation func(ctx context.Context) error) error {
	sleeper := s.Sleeper
	if sleeper == nil {
		sleeper = RealSleeper
	}
	if err := sleeper.Sleep(ctx, s.Latency); err != nil {
		return ErrCancelled().WithCause(err).WithDetail("key", key)
	}
	if s.Outcome != nil && s.Outcome(key) {
		return ErrSimulatedFailure().WithDetail("key", key)
	}
	s.apply.Lock()
	defer s.apply.Unlock()
	return mutation(ctx)
}

// Busy reports whether an action for key is in flight
func (s *Simulator) Busy(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[key] > 0
}

// InFlight returns the number of running actions
func (s *Simulator) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.inflight {
		n += c
	}
	return n
}

func (s *Simulator) acquire(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight == nil {
		s.inflight = make(map[string]int)
	}
	s.inflight[key]++
}

func (s *Simulator) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[key]--
	if s.inflight[key] <= 0 {
		delete(s.inflight, key)
	}
}

func (s *Simulator) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
