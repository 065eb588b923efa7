// Package profiling accumulates named wall-clock timings over one frame.
package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Stat is the time spent under one name during the frame.
type Stat struct {
	Total time.Duration
	Calls int
}

var (
	mu    sync.Mutex
	frame = make(map[string]Stat)
)

// Track starts a timer for name and returns the function that stops it.
//
//	defer profiling.Track("mesh.Draw")()
func Track(name string) func() {
	start := time.Now()
	return func() { Add(name, time.Since(start)) }
}

// Add records one call of duration d under name.
func Add(name string, d time.Duration) {
	mu.Lock()
	s := frame[name]
	s.Total += d
	s.Calls++
	frame[name] = s
	mu.Unlock()
}

// ResetFrame drops the stats of the previous frame.
func ResetFrame() {
	mu.Lock()
	clear(frame)
	mu.Unlock()
}

// Snapshot copies the stats of the current frame.
func Snapshot() map[string]Stat {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Stat, len(frame))
	for k, v := range frame {
		out[k] = v
	}
	return out
}

// TopN lists the n most expensive names of the frame as
// "name:total(xcalls)", most expensive first. Single calls omit the count.
func TopN(n int) string {
	type entry struct {
		name string
		Stat
	}
	snap := Snapshot()
	entries := make([]entry, 0, len(snap))
	for name, s := range snap {
		entries = append(entries, entry{name, s})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].name < entries[j].name
	})

	var b strings.Builder
	for i, e := range entries[:min(n, len(entries))] {
		if i > 0 {
			b.WriteString(", ")
		}
		ms := float64(e.Total.Microseconds()) / 1000
		b.WriteString(e.name)
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(ms, 'f', -1, 64))
		b.WriteString("ms")
		if e.Calls > 1 {
			b.WriteString("(x")
			b.WriteString(strconv.Itoa(e.Calls))
			b.WriteByte(')')
		}
	}
	return b.String()
}
