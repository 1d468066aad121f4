// Package scheduler holds armed reminder triggers in a time-ordered queue
// and emits each one on its channel when its fire time arrives.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidFireTime = errors.New("scheduler: invalid fire time")
	ErrStopped         = errors.New("scheduler: engine stopped")
)

// Trigger is a one-shot reminder registration. It does not repeat and the
// engine keeps no record of it after emission.
type Trigger struct {
	ID         string
	ActivityID string
	Title      string
	Body       string
	FireAt     time.Time
}

type triggerHeap []Trigger

func (q triggerHeap) Len() int           { return len(q) }
func (q triggerHeap) Less(i, j int) bool { return q[i].FireAt.Before(q[j].FireAt) }
func (q triggerHeap) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *triggerHeap) Push(x any)        { *q = append(*q, x.(Trigger)) }

func (q *triggerHeap) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   triggerHeap
	out     chan Trigger
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(triggerHeap, 0),
		out:    make(chan Trigger, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// C is the channel due triggers are emitted on. It closes when the engine
// stops.
func (e *Engine) C() <-chan Trigger {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Arm queues a trigger for emission at its fire time.
func (e *Engine) Arm(tr Trigger) error {
	if tr.FireAt.IsZero() {
		return ErrInvalidFireTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	heap.Push(&e.queue, tr)
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
	return nil
}

// Dropped counts triggers discarded because the consumer was not keeping
// up with the output channel.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, ok := e.peek()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.FireAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, tr := range e.popDue(time.Now()) {
				select {
				case e.out <- tr:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				drainTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) peek() (Trigger, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Trigger{}, false
	}
	return e.queue[0], true
}

func (e *Engine) popDue(now time.Time) []Trigger {
	e.mu.Lock()
	defer e.mu.Unlock()

	due := make([]Trigger, 0)
	for len(e.queue) > 0 && !e.queue[0].FireAt.After(now) {
		due = append(due, heap.Pop(&e.queue).(Trigger))
	}
	return due
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	drainTimer(timer)
	timer.Reset(d)
	return timer
}

func drainTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
