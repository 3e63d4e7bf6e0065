package runtime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/yamui/internal/nav"
	"github.com/roach88/yamui/internal/testutil"
)

func TestRegistry_CallFunction(t *testing.T) {
	r := NewRegistry()

	var got []string
	r.RegisterFunction("beep", func(args []string) error {
		got = args
		return nil
	})

	require.NoError(t, r.CallFunction("beep", []string{"1", "loud"}))
	assert.Equal(t, []string{"1", "loud"}, got)
}

func TestRegistry_CallUnknownFunctionIsNotFound(t *testing.T) {
	r := NewRegistry()
	err := r.CallFunction("ghost", nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRegistry_RegisterReplacesExistingName(t *testing.T) {
	r := NewRegistry()
	calls := ""
	r.RegisterFunction("fn", func([]string) error { calls += "old"; return nil })
	r.RegisterFunction("fn", func([]string) error { calls += "new"; return nil })

	require.NoError(t, r.CallFunction("fn", nil))
	assert.Equal(t, "new", calls)
}

func TestRegistry_UnregisterFunction(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunction("fn", func([]string) error { return nil })

	require.NoError(t, r.UnregisterFunction("fn"))
	assert.True(t, IsNotFound(r.UnregisterFunction("fn")))
	assert.True(t, IsNotFound(r.CallFunction("fn", nil)))
}

func TestRegistry_FunctionErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	r.RegisterFunction("fn", func([]string) error { return boom })

	assert.ErrorIs(t, r.CallFunction("fn", nil), boom)
}

func TestRegistry_EmitEventDeliversInRegistrationOrder(t *testing.T) {
	r := NewRegistry()

	var order []string
	r.AddListener("saved", func(name string, args []string) { order = append(order, "first:"+args[0]) })
	r.AddListener("other", func(name string, args []string) { order = append(order, "wrong") })
	r.AddListener("saved", func(name string, args []string) { order = append(order, "second:"+args[0]) })

	r.EmitEvent("saved", []string{"ok"})
	assert.Equal(t, []string{"first:ok", "second:ok"}, order)
}

func TestRegistry_EmptyEventNameIsWildcardListener(t *testing.T) {
	r := NewRegistry()

	var got []string
	r.AddListener("", func(name string, args []string) { got = append(got, name) })

	r.EmitEvent("a", nil)
	r.EmitEvent("b", nil)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestRegistry_RemoveListener(t *testing.T) {
	r := NewRegistry()

	calls := 0
	h := r.AddListener("ev", func(name string, args []string) { calls++ })
	r.EmitEvent("ev", nil)
	r.RemoveListener(h)
	r.EmitEvent("ev", nil)

	assert.Equal(t, 1, calls)
}

func TestRegistry_EmitWithoutListenersIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.EmitEvent("nobody", []string{"home"})
}

func TestHost_RoutesNavigationThroughQueue(t *testing.T) {
	rec := &testutil.RecordingExecutor{}
	q := nav.NewQueue(rec)
	h := NewHost(q, NewRegistry())

	require.NoError(t, h.GotoScreen("home"))
	require.NoError(t, h.PushScreen("detail"))
	require.NoError(t, h.PopScreen())
	require.NoError(t, h.ShowModal("confirm"))
	require.NoError(t, h.CloseModal())

	assert.Equal(t, []string{
		"goto:home", "push:detail", "pop", "show_modal:confirm", "close_modal",
	}, rec.Trace())
}

func TestHost_DefersNavigationDuringRender(t *testing.T) {
	rec := &testutil.RecordingExecutor{}
	q := nav.NewQueue(rec)
	h := NewHost(q, NewRegistry())

	require.NoError(t, q.BeginRender())
	require.NoError(t, h.PushScreen("a"))
	require.NoError(t, h.PushScreen("b"))
	assert.Empty(t, rec.Requests)

	require.NoError(t, q.EndRender(true))
	assert.Equal(t, []string{"push:a", "push:b"}, rec.Trace())
}

func TestHost_CallAndEmitUseRegistry(t *testing.T) {
	r := NewRegistry()
	called := false
	r.RegisterFunction("beep", func([]string) error { called = true; return nil })

	var events []string
	r.AddListener("saved", func(name string, args []string) { events = append(events, args...) })

	h := NewHost(nav.NewQueue(nav.ExecutorFunc(func(nav.Request) error { return nil })), r)

	require.NoError(t, h.CallNative("beep", nil))
	require.NoError(t, h.EmitEvent("saved", []string{"ok"}))
	assert.True(t, called)
	assert.Equal(t, []string{"ok"}, events)
}
