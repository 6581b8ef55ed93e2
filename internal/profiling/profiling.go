package profiling

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-frame duration totals for tick-level insight. Safe for use from mesh workers.

type entry struct {
	total time.Duration
	calls int
}

var (
	mu     sync.Mutex
	frame  = make(map[string]entry)
	frames int
)

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		e := frame[name]
		e.total += d
		e.calls++
		frame[name] = e
		mu.Unlock()
	}
}

// ResetFrame clears the current totals. Call once at the start of every tick.
func ResetFrame() {
	mu.Lock()
	clear(frame)
	frames++
	mu.Unlock()
}

// Frames returns how many times ResetFrame has been called.
func Frames() int {
	mu.Lock()
	defer mu.Unlock()
	return frames
}

// Snapshot returns a copy of the current per-name totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frame))
	for k, e := range frame {
		out[k] = e.total
	}
	return out
}

// Calls returns how many times name was tracked this frame.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return frame[name].calls
}

// TopN formats the n slowest names of the current frame, slowest first.
// Example: "game.meshPhase:4.2ms(12), game.terrainPhase:2.1ms(10)"
func TopN(n int) string {
	type item struct {
		name string
		entry
	}
	mu.Lock()
	list := make([]item, 0, len(frame))
	for k, e := range frame {
		list = append(list, item{name: k, entry: e})
	}
	mu.Unlock()

	slices.SortFunc(list, func(a, b item) int {
		if r := cmp.Compare(b.total, a.total); r != 0 {
			return r
		}
		return strings.Compare(a.name, b.name)
	})
	n = min(n, len(list))

	var sb strings.Builder
	for i := range n {
		if i > 0 {
			sb.WriteString(", ")
		}
		ms := float64(list[i].total.Microseconds()) / 1000.0
		sb.WriteString(list[i].name)
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(ms, 'f', 1, 64))
		sb.WriteString("ms(")
		sb.WriteString(strconv.Itoa(list[i].calls))
		sb.WriteByte(')')
	}
	return sb.String()
}
