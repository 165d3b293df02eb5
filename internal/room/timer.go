package room

import (
	"sync"
	"time"
)

const (
	tickInterval = time.Second
	advanceDelay = 5 * time.Second
)

// Clock abstracts timer scheduling so tests can drive ticks by hand instead
// of sleeping through wall-clock rounds.
type Clock interface {
	// Ticker returns a tick channel and a function that releases it.
	Ticker(d time.Duration) (<-chan time.Time, func())
	// AfterFunc runs fn after d on its own goroutine and returns a cancel.
	AfterFunc(d time.Duration, fn func()) func()
}

type systemClock struct{}

func (systemClock) Ticker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

func (systemClock) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// SystemClock is the wall-clock implementation used in production.
func SystemClock() Clock { return systemClock{} }

type roundTimer struct {
	stop chan struct{}
}

// RoundTimers runs at most one countdown per room. Start replaces any
// existing countdown; Stop and natural expiry race for the same map entry
// under the mutex, so exactly one of them ends a given round.
type RoundTimers struct {
	clock  Clock
	mu     sync.Mutex
	active map[string]*roundTimer
}

func NewRoundTimers(clock Clock) *RoundTimers {
	return &RoundTimers{
		clock:  clock,
		active: make(map[string]*roundTimer),
	}
}

// Start begins a countdown of the given number of seconds for the room,
// cancelling any countdown already running for it. onTick fires every second
// with the time remaining (including the final zero); onExpire fires once
// when the countdown reaches zero, unless Stop won the race first.
func (rt *RoundTimers) Start(roomID string, seconds int, onTick func(remaining int), onExpire func()) {
	rt.Stop(roomID)

	t := &roundTimer{stop: make(chan struct{})}
	rt.mu.Lock()
	rt.active[roomID] = t
	rt.mu.Unlock()

	go rt.run(roomID, t, seconds, onTick, onExpire)
}

func (rt *RoundTimers) run(roomID string, t *roundTimer, seconds int, onTick func(int), onExpire func()) {
	tick, cancel := rt.clock.Ticker(tickInterval)
	defer cancel()

	remaining := seconds
	for {
		select {
		case <-t.stop:
			return
		case <-tick:
			if !rt.owns(roomID, t) {
				return
			}
			remaining--
			onTick(remaining)
			if remaining <= 0 {
				if rt.release(roomID, t) {
					onExpire()
				}
				return
			}
		}
	}
}

// Stop cancels the room's countdown if one is running. Safe to call when
// none is; reports whether a countdown was actually cancelled.
func (rt *RoundTimers) Stop(roomID string) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	t, ok := rt.active[roomID]
	if !ok {
		return false
	}
	delete(rt.active, roomID)
	close(t.stop)
	return true
}

// ScheduleAdvance runs fn after the fixed round-end grace period, giving
// clients time to show the results before the next turn begins.
func (rt *RoundTimers) ScheduleAdvance(roomID string, fn func()) {
	rt.clock.AfterFunc(advanceDelay, fn)
}

func (rt *RoundTimers) owns(roomID string, t *roundTimer) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.active[roomID] == t
}

// release removes the timer's claim on the room; only the claim holder may
// fire the expiry path.
func (rt *RoundTimers) release(roomID string, t *roundTimer) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.active[roomID] != t {
		return false
	}
	delete(rt.active, roomID)
	return true
}
