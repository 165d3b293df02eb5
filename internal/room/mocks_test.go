package room

import (
	"slices"
	"sync"
	"time"

	"github.com/ntammineni5/pictionary/internal/words"
)

// stubWordSource hands out a fixed word set so tests are deterministic.
type stubWordSource struct {
	choices []words.Word
}

func newStubWordSource() *stubWordSource {
	return &stubWordSource{choices: []words.Word{
		{Text: "cat", Difficulty: words.DifficultyEasy, Points: 10},
		{Text: "castle", Difficulty: words.DifficultyMedium, Points: 50},
		{Text: "silhouette", Difficulty: words.DifficultyHard, Points: 100},
	}}
}

func (s *stubWordSource) DrawThree() []words.Word {
	return slices.Clone(s.choices)
}

// fakeClock lets tests hand-feed ticks and run grace delays on demand. Every
// Ticker call gets its own channel so a superseded timer goroutine cannot
// steal a tick meant for its replacement.
type fakeClock struct {
	mu      sync.Mutex
	tickers []chan time.Time
	afters  []func()
}

func newFakeClock() *fakeClock {
	return &fakeClock{}
}

func (f *fakeClock) Ticker(d time.Duration) (<-chan time.Time, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan time.Time)
	f.tickers = append(f.tickers, ch)
	return ch, func() {}
}

func (f *fakeClock) AfterFunc(d time.Duration, fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.afters = append(f.afters, fn)
	return func() {}
}

// tickerAt waits for the i-th Ticker call to happen, since timer goroutines
// register their tickers asynchronously.
func (f *fakeClock) tickerAt(i int) chan time.Time {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f.mu.Lock()
		if len(f.tickers) > i {
			ch := f.tickers[i]
			f.mu.Unlock()
			return ch
		}
		f.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
	return nil
}

func (f *fakeClock) afterCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.afters)
}

// runAfters executes and clears every scheduled delay callback.
func (f *fakeClock) runAfters() {
	f.mu.Lock()
	pending := f.afters
	f.afters = nil
	f.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}
