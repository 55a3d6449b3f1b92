// Package realtime: kanal notifikasi perubahan per tabel. Subscriber selalu
// melakukan fetch ulang penuh; event tidak membawa diff.
package realtime

import (
	"log"
	"sync"
	"time"
)

const (
	Wildcard = "*"

	TableUsers         = "users"
	TableStudents      = "students"
	TableTeachers      = "teachers"
	TableAttendances   = "teacher_attendances"
	TableMemorization  = "memorization_records"
	TableSchedules     = "class_schedules"
	TableTargetConfigs = "target_configurations"
)

type Event struct {
	Table string    `json:"table"`
	Type  string    `json:"type"` // INSERT | UPDATE | DELETE | *
	At    time.Time `json:"at"`
}

type Hub struct {
	mu   sync.RWMutex
	next uint64
	subs map[string]map[uint64]func(Event)
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[uint64]func(Event))}
}

// Subscribe mendaftarkan callback untuk satu tabel (atau Wildcard untuk semua).
// Callback dipanggil sinkron dari Publish, jadi tidak boleh blocking.
func (h *Hub) Subscribe(table string, fn func(Event)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	id := h.next
	if h.subs[table] == nil {
		h.subs[table] = make(map[uint64]func(Event))
	}
	h.subs[table][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[table], id)
			if len(h.subs[table]) == 0 {
				delete(h.subs, table)
			}
		})
	}
}

func (h *Hub) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	if ev.Type == "" {
		ev.Type = Wildcard
	}

	h.mu.RLock()
	fns := make([]func(Event), 0, len(h.subs[ev.Table])+len(h.subs[Wildcard]))
	for _, fn := range h.subs[ev.Table] {
		fns = append(fns, fn)
	}
	if ev.Table != Wildcard {
		for _, fn := range h.subs[Wildcard] {
			fns = append(fns, fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		safeCall(fn, ev)
	}
}

// Notify cocok dengan gateway.Notifier.
func (h *Hub) Notify(table, event string) {
	h.Publish(Event{Table: table, Type: event})
}

func (h *Hub) SubscriberCount(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[table])
}

func safeCall(fn func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[REALTIME] subscriber panic table=%s: %v", ev.Table, r)
		}
	}()
	fn(ev)
}
