package main

import (
	"time"

	"glmesh/internal/config"
)

// spinWindow is how close to the deadline the pacer stops sleeping and
// polls the clock instead. Sleep overshoots by about this much.
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces the render loop to config.GetFPSLimit frames per second.
// Deadlines advance by a fixed period so short frames make up for long
// ones; after a stall of more than a period the schedule restarts.
type FPSLimiter struct {
	deadline time.Time
	limit    func() int
	now      func() time.Time
	sleep    func(time.Duration)
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{limit: config.GetFPSLimit, now: time.Now, sleep: time.Sleep}
}

// Wait blocks until the current frame's deadline and returns how long it
// waited. With no limit it returns at once.
func (f *FPSLimiter) Wait() time.Duration {
	fps := f.limit()
	if fps <= 0 {
		f.deadline = time.Time{}
		return 0
	}
	period := time.Second / time.Duration(fps)

	start := f.now()
	if f.deadline.IsZero() {
		f.deadline = start
	}
	f.deadline = f.deadline.Add(period)

	for {
		left := f.deadline.Sub(f.now())
		if left <= 0 {
			break
		}
		if left > spinWindow {
			f.sleep(left - spinWindow)
		}
	}

	end := f.now()
	if end.Sub(f.deadline) > period {
		f.deadline = end
	}
	return end.Sub(start)
}
