package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/roach88/yamui/internal/action"
	"github.com/roach88/yamui/internal/document"
	"github.com/roach88/yamui/internal/state"
)

const sampleDoc = `
app:
  initial_screen: home
  locale: en-US

state:
  count: 0
  wifi.status: down

styles:
  card:
    bg_color: "#1e1e2e"
    text_color: "#cdd6f4"
    radius: 8

components:
  stat_card:
    props:
      - label
      - value
    layout:
      type: column

screens:
  home:
    title: Home
    widgets:
      - type: button
        label: "Count: {{ count }}"
        on_click: set(count, {{ count + 1 }})
  settings:
    title: Settings
    style: card
`

func load(t *testing.T, doc string) *Schema {
	t.Helper()
	root, err := document.Parse(doc)
	require.NoError(t, err)
	s, err := Load(root)
	require.NoError(t, err)
	return s
}

func TestLoad_Sample(t *testing.T) {
	s := load(t, sampleDoc)

	assert.Equal(t, "home", s.InitialScreen().Name)
	assert.Equal(t, []string{"home", "settings"}, s.Screens())
	assert.Equal(t, language.MustParse("en-US"), s.Locale())

	settings, ok := s.Screen("settings")
	require.True(t, ok)
	assert.Equal(t, "card", settings.Style())

	_, ok = s.Screen("missing")
	assert.False(t, ok)
}

func TestLoad_Styles(t *testing.T) {
	s := load(t, sampleDoc)

	card := s.Style("card")
	assert.Equal(t, "#1e1e2e", card.Background)
	assert.Equal(t, "#cdd6f4", card.TextColor)
	assert.Equal(t, 8, card.Radius)
	assert.Equal(t, 12, card.Padding, "unset padding falls back to default")

	missing := s.Style("missing")
	assert.Equal(t, 16, missing.Radius)
	assert.Equal(t, 12, missing.Padding)
}

func TestLoad_Components(t *testing.T) {
	s := load(t, sampleDoc)

	c, ok := s.Component("stat_card")
	require.True(t, ok)
	assert.Equal(t, []string{"label", "value"}, c.Props)
	require.NotNil(t, c.Layout)
	assert.Equal(t, "column", c.Layout.ChildScalar("type", ""))

	_, ok = s.Component("missing")
	assert.False(t, ok)
}

func TestLoad_SeedState(t *testing.T) {
	s := load(t, sampleDoc)

	store := state.New()
	store.Seed(map[string]string{"count": "9"})
	require.NoError(t, s.SeedState(store))

	assert.Equal(t, "9", store.Get("count", ""), "host seed wins")
	assert.Equal(t, "down", store.Get("wifi.status", ""))
}

func TestLoad_UnparseableLocaleIgnored(t *testing.T) {
	doc := strings.Replace(sampleDoc, "locale: en-US", "locale: not!a!tag", 1)
	s := load(t, doc)
	assert.Equal(t, language.Und, s.Locale())
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		code LoadCode
	}{
		{"missing app", "screens:\n  home:\n    title: Home\n", CodeMissingApp},
		{"missing initial screen", "app:\n  locale: en\nscreens:\n  home:\n    title: Home\n", CodeMissingInitialScreen},
		{"no screens", "app:\n  initial_screen: home\n", CodeNoScreens},
		{"unknown initial screen", "app:\n  initial_screen: ghost\nscreens:\n  home:\n    title: Home\n", CodeUnknownScreen},
		{"bad props", "app:\n  initial_screen: home\ncomponents:\n  c:\n    props:\n      label: x\nscreens:\n  home:\n    title: Home\n", CodeBadProps},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := document.Parse(tc.doc)
			require.NoError(t, err)

			_, err = Load(root)
			require.Error(t, err)

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tc.code, le.Code)
		})
	}
}

func TestActionsFor_ParsesBoundSlot(t *testing.T) {
	s := load(t, sampleDoc)

	home, _ := s.Screen("home")
	widgets := home.Node().Child("widgets")
	require.NotNil(t, widgets)
	button := widgets.ChildAt(0)

	actions, err := ActionsFor(button, EventClick)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, action.VerbSet, actions[0].Verb)
	assert.Equal(t, "count", actions[0].Arg(0))
	assert.Equal(t, "{{ count + 1 }}", actions[0].Arg(1))
}

func TestActionsFor_AbsentSlotIsEmpty(t *testing.T) {
	s := load(t, sampleDoc)
	home, _ := s.Screen("home")

	actions, err := ActionsFor(home.Node(), EventBlur)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestEvents_ReportsBoundSlotsInFixedOrder(t *testing.T) {
	doc := "w:\n  on_load: pop\n  on_click: pop\n"
	root, err := document.Parse(doc)
	require.NoError(t, err)

	bound := Events(root.Child("w"))
	assert.Equal(t, []EventType{EventClick, EventLoad}, bound)
}
