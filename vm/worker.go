package vm

import (
	"fmt"
	"sync"
)

// sessionRequest represents a unit of work to be executed on the session
// goroutine.
type sessionRequest struct {
	fn   func(*Session) any
	done chan sessionResult
}

// sessionResult holds the return value from a session operation.
type sessionResult struct {
	value any
	err   error
}

// SessionWorker serializes all access to one Session through a single
// goroutine. A Session is single-threaded; hosts with concurrent callers
// must go through the worker to avoid data races.
type SessionWorker struct {
	session  *Session
	requests chan sessionRequest
	quit     chan struct{}
	stopOnce sync.Once
}

// NewSessionWorker creates a worker for s and starts the processing
// goroutine.
func NewSessionWorker(s *Session) *SessionWorker {
	w := &SessionWorker{
		session:  s,
		requests: make(chan sessionRequest, 64),
		quit:     make(chan struct{}),
	}
	go w.loop()
	return w
}

// loop processes session requests sequentially on a dedicated goroutine.
func (w *SessionWorker) loop() {
	for {
		select {
		case req := <-w.requests:
			req.done <- w.execute(req.fn)
		case <-w.quit:
			return
		}
	}
}

// execute runs a function on the session, recovering from panics.
func (w *SessionWorker) execute(fn func(*Session) any) sessionResult {
	var result sessionResult
	func() {
		defer func() {
			if r := recover(); r != nil {
				result.err = fmt.Errorf("%v", r)
			}
		}()
		result.value = fn(w.session)
	}()
	return result
}

// Do submits a function for execution on the session goroutine and blocks
// until it completes. Returns the result and any error (including panics).
func (w *SessionWorker) Do(fn func(*Session) any) (any, error) {
	req := sessionRequest{
		fn:   fn,
		done: make(chan sessionResult, 1),
	}
	w.requests <- req
	result := <-req.done
	return result.value, result.err
}

// Stop shuts down the worker goroutine. Safe to call more than once.
func (w *SessionWorker) Stop() {
	w.stopOnce.Do(func() { close(w.quit) })
}
