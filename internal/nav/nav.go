// Package nav serializes navigation so that requests raised while a
// screen transition is in flight run afterwards, in order, instead of
// recursing into the renderer.
//
// The queue lives on the UI goroutine and is not safe for concurrent
// use. Re-entrancy is the case it exists for: an executor callback may
// Submit more requests, and they are queued behind the current drain.
package nav

import "log/slog"

// RequestType identifies a navigation operation.
type RequestType int

const (
	// RequestGoto replaces the current screen.
	RequestGoto RequestType = iota
	// RequestPush pushes a screen onto the stack.
	RequestPush
	// RequestPop pops the stack.
	RequestPop
	// RequestShowModal overlays a modal component.
	RequestShowModal
	// RequestCloseModal removes the topmost modal.
	RequestCloseModal
)

// String returns a short name for logging.
func (t RequestType) String() string {
	switch t {
	case RequestGoto:
		return "goto"
	case RequestPush:
		return "push"
	case RequestPop:
		return "pop"
	case RequestShowModal:
		return "show_modal"
	case RequestCloseModal:
		return "close_modal"
	}
	return "unknown"
}

// Request is one pending navigation operation. Arg is the target
// screen or component name; empty for pop and close_modal.
type Request struct {
	Type RequestType
	Arg  string
}

// Executor performs the actual transition for a request. An error
// discards the rest of the queue.
type Executor interface {
	ExecuteNavigation(req Request) error
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(req Request) error

// ExecuteNavigation calls f.
func (f ExecutorFunc) ExecuteNavigation(req Request) error { return f(req) }

// Queue defers navigation requests raised during rendering.
type Queue struct {
	exec      Executor
	pending   []Request
	rendering bool
	draining  bool
	log       *slog.Logger
}

// Option configures a Queue.
type Option func(*Queue)

// WithLogger routes queue logging to log.
func WithLogger(log *slog.Logger) Option {
	return func(q *Queue) { q.log = log }
}

// NewQueue builds a queue that hands requests to exec.
func NewQueue(exec Executor, opts ...Option) *Queue {
	q := &Queue{exec: exec, log: slog.Default()}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Submit executes req immediately when the queue is idle and empty,
// otherwise appends it behind whatever is already pending.
func (q *Queue) Submit(req Request) error {
	if !q.rendering && !q.draining && len(q.pending) == 0 {
		return q.exec.ExecuteNavigation(req)
	}
	q.pending = append(q.pending, req)
	q.log.Debug("navigation deferred", "type", req.Type.String(), "arg", req.Arg, "depth", len(q.pending))
	return nil
}

// BeginRender marks a transition in flight. Submitting during the
// render queues instead of executing.
func (q *Queue) BeginRender() error {
	if q.rendering {
		return &InvalidStateError{Op: "BeginRender"}
	}
	q.rendering = true
	return nil
}

// EndRender ends the in-flight transition and, when it succeeded,
// drains the pending queue in FIFO order. A failing request discards
// everything still queued. The drain stops early if an executed
// request re-enters rendering; EndRender for that render picks the
// queue back up.
func (q *Queue) EndRender(success bool) error {
	if !q.rendering {
		return &InvalidStateError{Op: "EndRender"}
	}
	q.rendering = false

	if !success {
		if n := len(q.pending); n > 0 {
			q.log.Warn("discarding queued navigation after failed render", "count", n)
		}
		q.pending = nil
		return nil
	}
	if q.draining {
		// A nested render finished inside a drain; the outer drain
		// loop resumes with the rest of the queue.
		return nil
	}

	q.draining = true
	defer func() { q.draining = false }()

	for len(q.pending) > 0 && !q.rendering {
		req := q.pending[0]
		q.pending = q.pending[1:]
		if err := q.exec.ExecuteNavigation(req); err != nil {
			if n := len(q.pending); n > 0 {
				q.log.Warn("discarding queued navigation after failure", "count", n, "error", err)
			}
			q.pending = nil
			return err
		}
	}
	return nil
}

// Depth returns how many requests are waiting.
func (q *Queue) Depth() int { return len(q.pending) }

// Rendering reports whether a transition is in flight.
func (q *Queue) Rendering() bool { return q.rendering }

// Reset drops all pending requests and clears the rendering flag.
func (q *Queue) Reset() {
	q.pending = nil
	q.rendering = false
	q.draining = false
}
