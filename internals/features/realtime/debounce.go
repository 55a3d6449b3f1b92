package realtime

import (
	"sync"
	"time"
)

// Debouncer trailing-edge: fn jalan sekali setelah tidak ada Trigger selama d.
type Debouncer struct {
	mu      sync.Mutex
	d       time.Duration
	fn      func()
	timer   *time.Timer
	gen     uint64 // naik setiap Trigger; timer lama tidak boleh jalan
	stopped bool
}

func NewDebouncer(d time.Duration, fn func()) *Debouncer {
	return &Debouncer{d: d, fn: fn}
}

func (db *Debouncer) Trigger() {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.stopped {
		return
	}
	if db.timer != nil {
		db.timer.Stop()
	}
	db.gen++
	gen := db.gen
	db.timer = time.AfterFunc(db.d, func() { db.fire(gen) })
}

func (db *Debouncer) fire(gen uint64) {
	db.mu.Lock()
	if db.stopped || gen != db.gen {
		db.mu.Unlock()
		return
	}
	db.timer = nil
	db.mu.Unlock()
	db.fn()
}

// Stop membatalkan panggilan yang tertunda; Trigger setelahnya diabaikan.
func (db *Debouncer) Stop() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.stopped = true
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}
