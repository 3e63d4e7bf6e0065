package action

import (
	"log/slog"
	"strings"

	"github.com/roach88/yamui/internal/expr"
	"github.com/roach88/yamui/internal/state"
)

// Runtime is the host surface actions drive. The engine owns state
// writes itself; everything with a visible side effect outside the
// state store goes through here.
type Runtime interface {
	GotoScreen(name string) error
	PushScreen(name string) error
	PopScreen() error
	ShowModal(name string) error
	CloseModal() error
	CallNative(name string, args []string) error
	EmitEvent(name string, args []string) error
}

// NopRuntime refuses every capability. Useful as a base for hosts that
// only implement part of the surface.
type NopRuntime struct{}

func (NopRuntime) GotoScreen(string) error { return &NotSupportedError{Capability: "goto"} }
func (NopRuntime) PushScreen(string) error { return &NotSupportedError{Capability: "push"} }
func (NopRuntime) PopScreen() error        { return &NotSupportedError{Capability: "pop"} }
func (NopRuntime) ShowModal(string) error  { return &NotSupportedError{Capability: "modal"} }
func (NopRuntime) CloseModal() error       { return &NotSupportedError{Capability: "close_modal"} }
func (NopRuntime) CallNative(string, []string) error {
	return &NotSupportedError{Capability: "call"}
}
func (NopRuntime) EmitEvent(string, []string) error {
	return &NotSupportedError{Capability: "emit"}
}

// Dispatcher executes parsed actions against a store and a host
// runtime. Resolver, when set, supplies scope-aware identifier lookup
// for {{ }} arguments; otherwise the store resolves them.
type Dispatcher struct {
	Store    *state.Store
	Runtime  Runtime
	Resolver expr.Resolver
	Log      *slog.Logger
}

// NewDispatcher builds a dispatcher over store and rt.
func NewDispatcher(store *state.Store, rt Runtime) *Dispatcher {
	return &Dispatcher{Store: store, Runtime: rt}
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return slog.Default()
}

// Execute runs every action in order. A failing action does not stop
// the ones after it; the first error is returned once all have run.
func (d *Dispatcher) Execute(actions []Action) error {
	var first error
	for _, a := range actions {
		if err := d.execute(a); err != nil {
			d.logger().Warn("action failed", "verb", a.Verb.String(), "error", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (d *Dispatcher) execute(a Action) error {
	switch a.Verb {
	case VerbSet:
		if len(a.Args) == 0 {
			return &InvalidArgumentError{Verb: VerbSet, Reason: "missing key"}
		}
		key := d.evalArg(a.Arg(0))
		if key == "" {
			return &InvalidArgumentError{Verb: VerbSet, Reason: "key resolved empty"}
		}
		// An omitted value writes the empty string.
		d.Store.Set(key, d.evalArg(a.Arg(1)))
		return nil
	case VerbGoto:
		return d.Runtime.GotoScreen(d.evalArg(a.Arg(0)))
	case VerbPush:
		return d.Runtime.PushScreen(d.evalArg(a.Arg(0)))
	case VerbPop:
		return d.Runtime.PopScreen()
	case VerbModal:
		name := d.evalArg(a.Arg(0))
		if name == "" {
			return &InvalidArgumentError{Verb: VerbModal, Reason: "missing component"}
		}
		return d.Runtime.ShowModal(name)
	case VerbCloseModal:
		return d.Runtime.CloseModal()
	case VerbCall:
		if len(a.Args) == 0 {
			return &InvalidArgumentError{Verb: VerbCall, Reason: "missing function name"}
		}
		name := d.evalArg(a.Arg(0))
		if name == "" {
			return &InvalidArgumentError{Verb: VerbCall, Reason: "function name resolved empty"}
		}
		return d.Runtime.CallNative(name, d.evalTail(a))
	case VerbEmit:
		if len(a.Args) == 0 {
			return &InvalidArgumentError{Verb: VerbEmit, Reason: "missing event name"}
		}
		name := d.evalArg(a.Arg(0))
		if name == "" {
			return &InvalidArgumentError{Verb: VerbEmit, Reason: "event name resolved empty"}
		}
		return d.Runtime.EmitEvent(name, d.evalTail(a))
	default:
		return &InvalidArgumentError{Verb: a.Verb, Reason: "unhandled verb"}
	}
}

// evalTail evaluates every argument after the first.
func (d *Dispatcher) evalTail(a Action) []string {
	args := make([]string, 0, len(a.Args)-1)
	for _, raw := range a.Args[1:] {
		args = append(args, d.evalArg(raw))
	}
	return args
}

// evalArg evaluates a whole-argument {{ }} template at dispatch time.
// Literal arguments pass through untouched. Evaluation errors render
// as "" with a warning, matching template substitution elsewhere.
func (d *Dispatcher) evalArg(raw string) string {
	inner, ok := placeholderBody(raw)
	if !ok {
		return raw
	}
	v, err := expr.Eval(inner, d.resolver())
	if err != nil {
		d.logger().Warn("action argument failed to evaluate", "expr", inner, "error", err)
		return ""
	}
	return v.AsString()
}

func (d *Dispatcher) resolver() expr.Resolver {
	if d.Resolver != nil {
		return d.Resolver
	}
	return d.Store.Resolver()
}

// placeholderBody unwraps an argument of the exact form "{{ expr }}".
func placeholderBody(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "{{") || !strings.HasSuffix(raw, "}}") || len(raw) < 4 {
		return "", false
	}
	return strings.TrimSpace(raw[2 : len(raw)-2]), true
}
