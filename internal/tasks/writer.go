package tasks

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/worktravel/internal/store"
)

type write struct {
	key   string
	value string
}

// writer applies store writes on its own goroutine in enqueue order.
// enqueue never blocks; failed writes are logged and dropped.
type writer struct {
	ctx   context.Context
	store store.Store
	log   *log.Logger

	mu     sync.Mutex
	queue  []write
	closed bool

	wake    chan struct{}
	stop    chan struct{}
	done    chan struct{}
	pending sync.WaitGroup
	once    sync.Once
}

func newWriter(ctx context.Context, st store.Store, logger *log.Logger) *writer {
	w := &writer{
		ctx:   ctx,
		store: st,
		log:   logger,
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) enqueue(key, value string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Warn("write after close dropped", "key", key)
		return
	}
	w.pending.Add(1)
	w.queue = append(w.queue, write{key: key, value: value})
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.stop:
			w.drain()
			return
		}
	}
}

func (w *writer) drain() {
	for {
		w.mu.Lock()
		if len(w.queue) == 0 {
			w.mu.Unlock()
			return
		}
		next := w.queue[0]
		w.queue = w.queue[1:]
		w.mu.Unlock()

		if err := w.store.Set(w.ctx, next.key, next.value); err != nil {
			w.log.Warn("persist failed", "key", next.key, "err", err)
		} else {
			w.log.Debug("persisted", "key", next.key, "bytes", len(next.value))
		}
		w.pending.Done()
	}
}

// flush blocks until every write enqueued so far has been attempted.
func (w *writer) flush() {
	w.pending.Wait()
}

func (w *writer) close() {
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.stop)
		<-w.done
	})
}
