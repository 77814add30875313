package game

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Queue depth and retry posture for the background writer.
const (
	writebackDepth    = 16
	writebackAttempts = 5
	writebackBackoff  = 100 * time.Millisecond
)

// writeback flushes session snapshots to the store off the interaction
// path. Snapshots are full copies of the session, so when the queue backs
// up the oldest pending one can be dropped: whatever replaced it already
// contains its data. Store failures never reach the caller; memory stays
// authoritative and the writer retries with backoff.
type writeback struct {
	identity string
	store    Store
	logger   *log.Logger

	ch   chan SessionSnapshot
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

func newWriteback(identity string, store Store, logger *log.Logger) *writeback {
	w := &writeback{
		identity: identity,
		store:    store,
		logger:   logger,
		ch:       make(chan SessionSnapshot, writebackDepth),
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

// enqueue hands a snapshot to the writer without blocking. A full queue
// drops its oldest pending snapshot to make room.
func (w *writeback) enqueue(snap SessionSnapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	for {
		select {
		case w.ch <- snap:
			return
		default:
		}
		select {
		case <-w.ch: // superseded by the snapshot being queued
		default:
		}
	}
}

// close flushes whatever is queued and stops the writer. Safe to call more
// than once.
func (w *writeback) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	close(w.ch)
	w.mu.Unlock()
	<-w.done
}

func (w *writeback) run() {
	defer close(w.done)
	for snap := range w.ch {
		w.save(w.coalesce(snap))
	}
}

// coalesce swallows snapshots that queued up behind the current one and
// keeps the newest. Writes stay ordered: the worker never emits an older
// snapshot after a newer one.
func (w *writeback) coalesce(snap SessionSnapshot) SessionSnapshot {
	for {
		select {
		case next, ok := <-w.ch:
			if !ok {
				return snap
			}
			snap = next
		default:
			return snap
		}
	}
}

// save writes one snapshot, retrying with backoff. Between attempts it
// picks up a newer snapshot if one arrived while the store was failing.
func (w *writeback) save(snap SessionSnapshot) {
	for attempt := 1; ; attempt++ {
		err := w.store.Save(w.identity, snap)
		if err == nil {
			return
		}
		w.logger.Error("cannot persist progress",
			"identity", w.identity,
			"attempt", attempt,
			"err", err)
		if attempt >= writebackAttempts {
			w.logger.Error("giving up on snapshot after repeated store failures",
				"identity", w.identity,
				"score", snap.Score)
			return
		}
		time.Sleep(writebackBackoff * time.Duration(1<<(attempt-1)))
		snap = w.coalesce(snap)
	}
}
