package harness

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/yamui/internal/action"
	"github.com/roach88/yamui/internal/document"
	"github.com/roach88/yamui/internal/nav"
	"github.com/roach88/yamui/internal/runtime"
	"github.com/roach88/yamui/internal/schema"
	"github.com/roach88/yamui/internal/state"
	"github.com/roach88/yamui/internal/trace"
)

// Result is the outcome of one scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool

	// Trace lists observed events in order, one line each:
	// "state key=value", "nav push:settings", "emit name=args",
	// followed by the journal read-back as "journal seq kind
	// subject=detail" lines.
	Trace []string

	// Errors holds assertion failures. Empty when Pass is true.
	Errors []string

	// State is the final store contents.
	State map[string]string

	// Session is the journal session token the run recorded under.
	Session string
}

func (r *Result) fail(format string, args ...any) {
	r.Pass = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Run executes a scenario end to end: parse the document, seed state,
// dispatch the actions journaled under the scenario's session token,
// then check assertions against the live trace and the journal
// read-back.
func Run(s *Scenario) (*Result, error) {
	ctx := context.Background()
	res := &Result{Pass: true}

	store := state.New()
	store.Seed(s.Seed)

	session := s.Session
	if session == "" {
		session = "test-session"
	}
	journal, err := trace.Open(":memory:", trace.NewFixedGenerator(session))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	defer journal.Close()
	res.Session = journal.Session()

	var sch *schema.Schema
	if s.Document != "" {
		root, err := document.Parse(s.Document)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		if root.Child("app") != nil {
			sch, err = schema.Load(root)
			if err != nil {
				return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
			}
			if err := sch.SeedState(store); err != nil {
				return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
			}
		} else if st := root.Child("state"); st != nil {
			if err := store.SeedFromDocument(st); err != nil {
				return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
			}
		}
	}

	store.Watch("", func(key, value string) {
		res.Trace = append(res.Trace, fmt.Sprintf("state %s=%s", key, value))
	})
	journal.Attach(store)

	queue := nav.NewQueue(nav.ExecutorFunc(func(req nav.Request) error {
		line := "nav " + req.Type.String()
		if req.Arg != "" {
			line += ":" + req.Arg
		}
		res.Trace = append(res.Trace, line)
		if err := journal.RecordNavigation(ctx, req.Type.String(), req.Arg); err != nil {
			return err
		}
		if sch != nil && (req.Type == nav.RequestGoto || req.Type == nav.RequestPush) {
			if _, ok := sch.Screen(req.Arg); !ok {
				return fmt.Errorf("unknown screen %q", req.Arg)
			}
		}
		return nil
	}))

	registry := runtime.NewRegistry()
	registry.AddListener("", func(name string, args []string) {
		res.Trace = append(res.Trace, fmt.Sprintf("emit %s=%s", name, strings.Join(args, ",")))
	})
	host := runtime.NewHost(queue, registry)
	dispatcher := action.NewDispatcher(store, host)

	for _, text := range s.Actions {
		a, err := action.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		if err := journal.RecordAction(ctx, a.Verb.String(), strings.Join(a.Args, ", ")); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		if err := dispatcher.Execute([]action.Action{a}); err != nil {
			res.Trace = append(res.Trace, fmt.Sprintf("error %v", err))
		}
	}

	events, err := journal.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	for _, ev := range events {
		line := fmt.Sprintf("journal %d %s %s", ev.Seq, ev.Kind, ev.Subject)
		if ev.Detail != "" {
			line += "=" + ev.Detail
		}
		res.Trace = append(res.Trace, line)
	}

	res.State = finalState(store)
	checkAssertions(s, res)
	return res, nil
}

func finalState(store *state.Store) map[string]string {
	out := map[string]string{}
	keys := store.Keys()
	sort.Strings(keys)
	for _, k := range keys {
		out[k] = store.Get(k, "")
	}
	return out
}

func checkAssertions(s *Scenario, res *Result) {
	for key, want := range s.Assertions.State {
		got, ok := res.State[key]
		if !ok {
			res.fail("state %q: key absent, want %q", key, want)
			continue
		}
		if got != want {
			res.fail("state %q: got %q, want %q", key, got, want)
		}
	}

	if len(s.Assertions.Trace) > 0 {
		if len(res.Trace) != len(s.Assertions.Trace) {
			res.fail("trace: got %d events, want %d", len(res.Trace), len(s.Assertions.Trace))
			return
		}
		for i, want := range s.Assertions.Trace {
			if res.Trace[i] != want {
				res.fail("trace[%d]: got %q, want %q", i, res.Trace[i], want)
			}
		}
	}
}
