// Package testutil provides shared test doubles for engine packages.
package testutil

import (
	"fmt"
	"strings"

	"github.com/roach88/yamui/internal/nav"
)

// RecordingExecutor captures navigation requests for assertion.
//
// Fail, when set, makes the matching request return an error, which
// exercises queue-discard behavior.
type RecordingExecutor struct {
	Requests []nav.Request
	Fail     func(req nav.Request) error
	// OnExecute runs after a request is recorded, before Fail is
	// consulted. Tests use it to re-enter the queue.
	OnExecute func(req nav.Request)
}

// ExecuteNavigation records req and applies the configured hooks.
func (r *RecordingExecutor) ExecuteNavigation(req nav.Request) error {
	r.Requests = append(r.Requests, req)
	if r.OnExecute != nil {
		r.OnExecute(req)
	}
	if r.Fail != nil {
		return r.Fail(req)
	}
	return nil
}

// Trace renders recorded requests as "type:arg" strings for compact
// assertions.
func (r *RecordingExecutor) Trace() []string {
	out := make([]string, 0, len(r.Requests))
	for _, req := range r.Requests {
		if req.Arg == "" {
			out = append(out, req.Type.String())
			continue
		}
		out = append(out, req.Type.String()+":"+req.Arg)
	}
	return out
}

// RecordingRuntime captures the runtime surface calls actions make.
// It satisfies action.Runtime.
type RecordingRuntime struct {
	Calls []string
	// Err, when set, is returned by every call after recording.
	Err error
}

func (r *RecordingRuntime) record(format string, args ...any) error {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
	return r.Err
}

func (r *RecordingRuntime) GotoScreen(name string) error { return r.record("goto(%s)", name) }
func (r *RecordingRuntime) PushScreen(name string) error { return r.record("push(%s)", name) }
func (r *RecordingRuntime) PopScreen() error             { return r.record("pop") }
func (r *RecordingRuntime) ShowModal(name string) error  { return r.record("modal(%s)", name) }
func (r *RecordingRuntime) CloseModal() error            { return r.record("close_modal") }

func (r *RecordingRuntime) CallNative(name string, args []string) error {
	return r.record("call(%s)[%s]", name, strings.Join(args, ","))
}

func (r *RecordingRuntime) EmitEvent(name string, args []string) error {
	return r.record("emit(%s)[%s]", name, strings.Join(args, ","))
}
