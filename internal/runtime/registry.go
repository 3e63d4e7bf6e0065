// Package runtime connects the action system to the embedding host:
// native function calls, emitted events, and the navigation queue.
package runtime

import (
	"log/slog"

	"github.com/roach88/yamui/internal/nav"
)

// NativeFunc is a host function callable from call() actions.
type NativeFunc func(args []string) error

// EventFunc receives events raised by emit() actions, with the
// evaluated payload arguments in order.
type EventFunc func(name string, args []string)

// ListenerHandle identifies a registered event listener. Zero is never
// issued.
type ListenerHandle uint64

type native struct {
	name string
	fn   NativeFunc
}

type listener struct {
	id    ListenerHandle
	event string
	fn    EventFunc
}

// Registry holds the host's native functions and event listeners.
// Registration order is preserved for listener delivery. Not safe for
// concurrent use; register before the engine starts or from the UI
// goroutine.
type Registry struct {
	funcs     []native
	listeners []listener
	nextID    ListenerHandle
	log       *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger routes registry logging to log.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// NewRegistry builds an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterFunction makes fn callable as name. Registering an existing
// name replaces it in place.
func (r *Registry) RegisterFunction(name string, fn NativeFunc) {
	for i := range r.funcs {
		if r.funcs[i].name == name {
			r.funcs[i].fn = fn
			return
		}
	}
	r.funcs = append(r.funcs, native{name: name, fn: fn})
}

// UnregisterFunction removes name. Unknown names return a
// *NotFoundError.
func (r *Registry) UnregisterFunction(name string) error {
	for i := range r.funcs {
		if r.funcs[i].name == name {
			r.funcs = append(r.funcs[:i], r.funcs[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "function", Name: name}
}

// CallFunction invokes the native function registered as name.
func (r *Registry) CallFunction(name string, args []string) error {
	for _, n := range r.funcs {
		if n.name == name {
			return n.fn(args)
		}
	}
	r.log.Warn("native function not registered", "name", name)
	return &NotFoundError{Kind: "function", Name: name}
}

// AddListener subscribes fn to events named event; an empty event
// subscribes to every event. The returned handle removes it.
func (r *Registry) AddListener(event string, fn EventFunc) ListenerHandle {
	r.nextID++
	r.listeners = append(r.listeners, listener{id: r.nextID, event: event, fn: fn})
	return r.nextID
}

// RemoveListener drops the listener h. Unknown handles are a no-op.
func (r *Registry) RemoveListener(h ListenerHandle) {
	for i := range r.listeners {
		if r.listeners[i].id == h {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// EmitEvent delivers the event to every matching listener in
// registration order. Events with no listener are not an error.
func (r *Registry) EmitEvent(name string, args []string) {
	for _, l := range r.listeners {
		if l.event == "" || l.event == name {
			l.fn(name, args)
		}
	}
}

// Host adapts a navigation queue and a registry into the runtime
// surface actions dispatch against.
type Host struct {
	Nav      *nav.Queue
	Registry *Registry
}

// NewHost wires q and r together.
func NewHost(q *nav.Queue, r *Registry) *Host {
	return &Host{Nav: q, Registry: r}
}

func (h *Host) GotoScreen(name string) error {
	return h.Nav.Submit(nav.Request{Type: nav.RequestGoto, Arg: name})
}

func (h *Host) PushScreen(name string) error {
	return h.Nav.Submit(nav.Request{Type: nav.RequestPush, Arg: name})
}

func (h *Host) PopScreen() error {
	return h.Nav.Submit(nav.Request{Type: nav.RequestPop})
}

func (h *Host) ShowModal(name string) error {
	return h.Nav.Submit(nav.Request{Type: nav.RequestShowModal, Arg: name})
}

func (h *Host) CloseModal() error {
	return h.Nav.Submit(nav.Request{Type: nav.RequestCloseModal})
}

func (h *Host) CallNative(name string, args []string) error {
	return h.Registry.CallFunction(name, args)
}

func (h *Host) EmitEvent(name string, args []string) error {
	h.Registry.EmitEvent(name, args)
	return nil
}
