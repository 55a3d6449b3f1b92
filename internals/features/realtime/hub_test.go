package realtime

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SubscribeAndWildcard(t *testing.T) {
	h := NewHub()
	var mu sync.Mutex
	var students, all []Event

	unsubStudents := h.Subscribe(TableStudents, func(ev Event) {
		mu.Lock()
		students = append(students, ev)
		mu.Unlock()
	})
	h.Subscribe(Wildcard, func(ev Event) {
		mu.Lock()
		all = append(all, ev)
		mu.Unlock()
	})

	h.Publish(Event{Table: TableStudents, Type: "INSERT"})
	h.Notify(TableTeachers, "DELETE")

	require.Len(t, students, 1)
	assert.Equal(t, "INSERT", students[0].Type)
	assert.False(t, students[0].At.IsZero())
	require.Len(t, all, 2)
	assert.Equal(t, TableTeachers, all[1].Table)

	unsubStudents()
	unsubStudents() // idempotent
	h.Publish(Event{Table: TableStudents})
	assert.Len(t, students, 1)
	assert.Len(t, all, 3)
	assert.Equal(t, Wildcard, all[2].Type)
	assert.Equal(t, 0, h.SubscriberCount(TableStudents))
}

func TestHub_PanickingSubscriberIsIsolated(t *testing.T) {
	h := NewHub()
	var called int32
	h.Subscribe(TableMemorization, func(Event) { panic("boom") })
	h.Subscribe(TableMemorization, func(Event) { atomic.AddInt32(&called, 1) })

	assert.NotPanics(t, func() { h.Publish(Event{Table: TableMemorization}) })
	assert.Equal(t, int32(1), atomic.LoadInt32(&called))
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var calls int32
	d := NewDebouncer(80*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 10*time.Millisecond)

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	d.Trigger()
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 2 }, time.Second, 10*time.Millisecond)
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var calls int32
	d := NewDebouncer(30*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
	d.Trigger()
	d.Stop()
	d.Trigger()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestDebouncer_OutdatedTimerDoesNotFire(t *testing.T) {
	var calls int32
	d := NewDebouncer(50*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })

	d.Trigger()
	d.mu.Lock()
	old := d.gen
	d.mu.Unlock()
	d.Trigger()

	// timer pertama sudah lewat tapi baru dapat lock setelah Trigger kedua
	d.fire(old)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	d.mu.Lock()
	assert.NotNil(t, d.timer)
	d.mu.Unlock()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestParsePayload(t *testing.T) {
	ev, err := ParsePayload(`{"table":"students","op":"insert"}`)
	require.NoError(t, err)
	assert.Equal(t, Event{Table: "students", Type: "INSERT"}, ev)

	ev, err = ParsePayload(`{"table":"memorization_records","op":"TRUNCATE"}`)
	require.NoError(t, err)
	assert.Equal(t, Wildcard, ev.Type)

	_, err = ParsePayload(`{"op":"INSERT"}`)
	assert.Error(t, err)

	_, err = ParsePayload(`not json`)
	assert.Error(t, err)
}
