package firhw

import (
	"fmt"
	"time"
)

// WaitPolicy polls until poll returns true or an error. Policies decide how
// often to poll and when to give up.
type WaitPolicy func(poll func() (bool, error)) error

// Spin polls forever with no delay. A device that never answers hangs the
// caller.
func Spin() WaitPolicy {
	return func(poll func() (bool, error)) error {
		for {
			ok, err := poll()
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
	}
}

// Bounded polls at most n times before returning ErrNotResponding. It always
// polls at least once.
func Bounded(n int) WaitPolicy {
	if n < 1 {
		n = 1
	}
	return func(poll func() (bool, error)) error {
		for i := 0; i < n; i++ {
			ok, err := poll()
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
		return fmt.Errorf("firhw: gave up after %d polls: %w", n, ErrNotResponding)
	}
}

// Clock sleeps. It can be replaced in tests.
type Clock interface {
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock is the wall clock.
var RealClock Clock = realClock{}

// Interval sleeps for period between polls. If limit is positive, it returns
// ErrNotResponding once limit has elapsed.
func Interval(period, limit time.Duration, clk Clock) WaitPolicy {
	if clk == nil {
		clk = RealClock
	}
	return func(poll func() (bool, error)) error {
		var waited time.Duration
		for {
			ok, err := poll()
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
			if limit > 0 && waited >= limit {
				return fmt.Errorf("firhw: gave up after %v: %w", waited, ErrNotResponding)
			}
			clk.Sleep(period)
			waited += period
		}
	}
}
