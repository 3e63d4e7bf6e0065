package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/yamui/internal/document"
)

func TestParse_BareVerb(t *testing.T) {
	a, err := Parse("pop")
	require.NoError(t, err)
	assert.Equal(t, VerbPop, a.Verb)
	assert.Empty(t, a.Args)
}

func TestParse_VerbWithArgs(t *testing.T) {
	a, err := Parse("set(count, 0)")
	require.NoError(t, err)
	assert.Equal(t, VerbSet, a.Verb)
	assert.Equal(t, []string{"count", "0"}, a.Args)
}

func TestParse_AllVerbs(t *testing.T) {
	cases := map[string]Verb{
		"set(k, v)":     VerbSet,
		"goto(home)":    VerbGoto,
		"push(detail)":  VerbPush,
		"pop":           VerbPop,
		"modal(confirm)": VerbModal,
		"close_modal":   VerbCloseModal,
		"call(beep)":    VerbCall,
		"emit(saved)":   VerbEmit,
	}
	for text, want := range cases {
		a, err := Parse(text)
		require.NoError(t, err, "text: %s", text)
		assert.Equal(t, want, a.Verb, "text: %s", text)
	}
}

func TestParse_CaseInsensitiveVerb(t *testing.T) {
	a, err := Parse("SET(k, v)")
	require.NoError(t, err)
	assert.Equal(t, VerbSet, a.Verb)
}

func TestParse_QuotedArgumentKeepsComma(t *testing.T) {
	a, err := Parse(`set(msg, "hello, world")`)
	require.NoError(t, err)
	assert.Equal(t, []string{"msg", "hello, world"}, a.Args)
}

func TestParse_TemplateArgumentKeptVerbatim(t *testing.T) {
	a, err := Parse("set(count, {{ count + 1 }})")
	require.NoError(t, err)
	assert.Equal(t, []string{"count", "{{ count + 1 }}"}, a.Args)
}

func TestParse_CommaInsideTemplateNotSplit(t *testing.T) {
	a, err := Parse(`set(msg, {{ greeting + ", " + name }})`)
	require.NoError(t, err)
	assert.Equal(t, []string{"msg", `{{ greeting + ", " + name }}`}, a.Args)
}

func TestParse_ExtraArgsDropped(t *testing.T) {
	a, err := Parse("call(fn, a, b, c, d)")
	require.NoError(t, err)
	assert.Equal(t, []string{"fn", "a", "b"}, a.Args)
}

func TestParse_UnknownVerb(t *testing.T) {
	_, err := Parse("teleport(away)")
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CodeUnknownVerb, pe.Code)
}

func TestParse_EmptyText(t *testing.T) {
	_, err := Parse("   ")
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestListFromNode_Scalar(t *testing.T) {
	root, err := document.Parse("on_click: pop\n")
	require.NoError(t, err)

	actions, err := ListFromNode(root.Child("on_click"))
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, VerbPop, actions[0].Verb)
}

func TestListFromNode_Sequence(t *testing.T) {
	doc := "on_click:\n  - set(count, 0)\n  - goto(home)\n"
	root, err := document.Parse(doc)
	require.NoError(t, err)

	actions, err := ListFromNode(root.Child("on_click"))
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, VerbSet, actions[0].Verb)
	assert.Equal(t, VerbGoto, actions[1].Verb)
}

func TestListFromNode_Nil(t *testing.T) {
	actions, err := ListFromNode(nil)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestListFromNode_BadSequenceEntry(t *testing.T) {
	doc := "on_click:\n  - set: nested\n"
	root, err := document.Parse(doc)
	require.NoError(t, err)

	_, err = ListFromNode(root.Child("on_click"))
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CodeBadNode, pe.Code)
}
