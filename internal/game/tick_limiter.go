package game

import "time"

// spinWindow is how close to the deadline Wait stops sleeping and starts polling.
const spinWindow = 200 * time.Microsecond

// TickLimiter paces a tick loop to a fixed rate.
type TickLimiter struct {
	interval time.Duration
	next     time.Time
}

// NewTickLimiter creates a limiter for rate ticks per second. A rate of 0 or less disables
// limiting.
func NewTickLimiter(rate int) *TickLimiter {
	l := &TickLimiter{}
	if rate > 0 {
		l.interval = time.Second / time.Duration(rate)
	}
	return l
}

// Interval returns the target time between ticks, or 0 when unlimited.
func (l *TickLimiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the next tick is due. It returns how long it waited.
func (l *TickLimiter) Wait() time.Duration {
	if l.interval <= 0 {
		return 0
	}
	start := time.Now()
	if l.next.IsZero() {
		l.next = start.Add(l.interval)
	} else {
		l.next = l.next.Add(l.interval)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
		if time.Until(l.next) <= 0 {
			break
		}
	}

	// Resync after a hitch so a slow tick doesn't cause a burst of catch-up ticks.
	if late := -time.Until(l.next); late > l.interval {
		l.next = time.Now().Add(l.interval)
	}
	return time.Since(start)
}
