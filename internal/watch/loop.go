// Package watch runs the watch face: one goroutine owns the dial, the
// overlay sequencer and the settings, and every event is posted to it.
package watch

import (
	"context"
	"sync"
	"time"

	"arc-touch-go/internal/logging"
	"arc-touch-go/internal/sequencer"
)

// postTimeout bounds how long Post waits on a full queue.
const postTimeout = 150 * time.Millisecond

// Loop serialises events onto the goroutine that calls Run.
type Loop struct {
	events chan func()
	fired  chan func() // timer continuations, never dropped
	done   chan struct{}
	once   sync.Once
}

// NewLoop returns a loop whose queue holds size pending events.
func NewLoop(size int) *Loop {
	return &Loop{
		events: make(chan func(), size),
		fired:  make(chan func()),
		done:   make(chan struct{}),
	}
}

// Post enqueues f for the loop goroutine. It gives up after a short wait on
// a full queue and reports whether f was queued.
func (l *Loop) Post(f func()) bool {
	select {
	case l.events <- f:
		return true
	case <-time.After(postTimeout):
		logging.Logger().Warn("event queue full, dropping event")
		return false
	}
}

// AfterFunc runs f on the loop goroutine once d has passed. Unlike Post,
// the continuation waits for the loop however busy it is; it is only
// abandoned once Run has returned.
func (l *Loop) AfterFunc(d time.Duration, f func()) sequencer.Timer {
	t := &loopTimer{}
	t.t = time.AfterFunc(d, func() {
		select {
		case l.fired <- func() {
			if !t.stopped {
				f()
			}
		}:
		case <-l.done:
		}
	})
	return t
}

// loopTimer suppresses callbacks already queued when Stop is called.
// stopped is only touched on the loop goroutine.
type loopTimer struct {
	t       *time.Timer
	stopped bool
}

func (t *loopTimer) Stop() bool {
	t.stopped = true
	return t.t.Stop()
}

// Run executes queued events until ctx is done. After each burst of events
// it calls idle, which is where the face redraws.
func (l *Loop) Run(ctx context.Context, idle func()) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		var f func()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f = <-l.events:
		case f = <-l.fired:
		}
		f()
		l.drain()
		if idle != nil {
			idle()
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case f := <-l.events:
			f()
		case f := <-l.fired:
			f()
		default:
			return
		}
	}
}
