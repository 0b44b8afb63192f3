package core

import (
	"context"
	"time"
)

// Drive steps sim until it reports finished or ctx is cancelled. A positive
// interval paces the steps with a ticker; zero runs them back to back. The
// observe callback, when set, runs after every step. Drive returns the
// number of steps taken and ctx.Err() if it stopped early. Sims that do not
// implement Finisher run until ctx is done.
func Drive(ctx context.Context, sim Sim, interval time.Duration, observe func(step int)) (int, error) {
	finished := func() bool {
		f, ok := sim.(Finisher)
		return ok && f.IsFinished()
	}

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	steps := 0
	for !finished() {
		if tick != nil {
			select {
			case <-ctx.Done():
				return steps, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return steps, err
		}
		sim.Step()
		steps++
		if observe != nil {
			observe(steps)
		}
	}
	return steps, nil
}
