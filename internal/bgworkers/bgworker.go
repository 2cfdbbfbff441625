// Package bgworkers implements the background worker harness that
// drains flush, index and compaction tasks off the write path (spec
// §4.7). Grounded on original_source/src/bgworkers/bgworker.rs: a
// crossbeam_channel unbounded work channel plus a bounded(1) stop
// channel, serviced by a select loop on a dedicated goroutine —
// translated here to native Go channels and select, logging via
// stdlib log as the teacher does (SPEC_FULL.md §10.1).
package bgworkers

import (
	"log"
	"sync"
)

// Worker runs fn against every task sent to Send, on its own
// goroutine, until Stop is called. T is typically a codec.Record or a
// small task tuple; see FlushWorker, IndexWorker and CompactionWorker.
//
// The task queue is a growable slice guarded by mu, not a fixed-size
// buffered channel: spec §4.7/§5 requires the work channel to be
// genuinely unbounded ("backpressure is explicitly absent on the work
// channel; if callers out-produce workers, memory grows"), so Send
// must never block waiting for the worker to catch up. notify is a
// capacity-1 channel used purely as a wakeup signal, never to carry
// the task itself.
type Worker[T any] struct {
	name string

	mu     sync.Mutex
	queue  []T
	notify chan struct{}
	stop   chan struct{}
	fn     func(T) error
}

// NewWorker starts a worker named name running fn for every task
// handed to Send. The stop channel is capacity 1 so a single Stop
// call always succeeds without waiting on the worker.
func NewWorker[T any](name string, fn func(T) error) *Worker[T] {
	w := &Worker[T]{
		name:   name,
		notify: make(chan struct{}, 1),
		stop:   make(chan struct{}, 1),
		fn:     fn,
	}
	go w.run()
	return w
}

func (w *Worker[T]) run() {
	for {
		if task, ok := w.dequeue(); ok {
			if err := w.fn(task); err != nil {
				log.Printf("%s: task failed: %v", w.name, err)
			}
			continue
		}

		select {
		case <-w.notify:
		case <-w.stop:
			log.Printf("%s: stopping", w.name)
			return
		}
	}
}

func (w *Worker[T]) dequeue() (T, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.queue) == 0 {
		var zero T
		return zero, false
	}
	task := w.queue[0]
	w.queue = w.queue[1:]
	return task, true
}

// Send appends task to the unbounded queue. It never blocks on worker
// progress; a caller only observes backpressure if the process itself
// runs out of memory for the queue.
func (w *Worker[T]) Send(task T) {
	w.mu.Lock()
	w.queue = append(w.queue, task)
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// Stop signals the worker to exit after draining whatever is already
// queued is not guaranteed — Stop races the select the same way the
// original crossbeam_channel select does. Callers that need every
// queued task to have run should drain Send themselves before
// calling Stop.
func (w *Worker[T]) Stop() {
	select {
	case w.stop <- struct{}{}:
	default:
	}
}
