// Package schema interprets a parsed document as a UI definition: the
// app block, seed state, named styles, reusable components, and
// screens. It is a thin typed view over document nodes; the node tree
// stays the source of truth and widget subtrees are handed out as-is.
package schema

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/roach88/yamui/internal/document"
	"github.com/roach88/yamui/internal/state"
)

// Style is a resolved style block with defaults applied.
type Style struct {
	Name        string
	Background  string
	TextColor   string
	AccentColor string
	Radius      int
	Padding     int
}

// Component is a reusable subtree with declared props.
type Component struct {
	Name   string
	Props  []string
	Layout *document.Node
	node   *document.Node
}

// Node returns the component's definition subtree.
func (c *Component) Node() *document.Node { return c.node }

// Screen is one named screen definition.
type Screen struct {
	Name string
	node *document.Node
}

// Node returns the screen's definition subtree.
func (s *Screen) Node() *document.Node { return s.node }

// Style returns the screen's style reference, empty when unset.
func (s *Screen) Style() string { return s.node.ChildScalar("style", "") }

// Schema is the typed view over a full UI document.
type Schema struct {
	doc           *document.Node
	initialScreen string
	locale        language.Tag
	stateNode     *document.Node
	styles        map[string]*Style
	components    map[string]*Component
	screens       map[string]*Screen
	screenOrder   []string
	log           *slog.Logger
}

// Option configures schema loading.
type Option func(*Schema)

// WithLogger routes schema logging to log.
func WithLogger(log *slog.Logger) Option {
	return func(s *Schema) { s.log = log }
}

// Load builds a schema from the document root. The root must be a
// mapping with at least an app block naming an initial screen, and a
// screens mapping defining it.
func Load(root *document.Node, opts ...Option) (*Schema, error) {
	if root.Kind() != document.KindMapping {
		return nil, &LoadError{Code: CodeBadRoot, Detail: root.Kind().String()}
	}

	s := &Schema{
		doc:        root,
		locale:     language.Und,
		styles:     map[string]*Style{},
		components: map[string]*Component{},
		screens:    map[string]*Screen{},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	app := root.Child("app")
	if app == nil {
		return nil, &LoadError{Code: CodeMissingApp}
	}
	s.initialScreen = app.ChildScalar("initial_screen", "")
	if s.initialScreen == "" {
		return nil, &LoadError{Code: CodeMissingInitialScreen}
	}
	if loc := app.ChildScalar("locale", ""); loc != "" {
		tag, err := language.Parse(loc)
		if err != nil {
			s.log.Warn("ignoring unparseable locale", "locale", loc, "error", err)
		} else {
			s.locale = tag
		}
	}

	s.stateNode = root.Child("state")

	if styles := root.Child("styles"); styles != nil {
		for node := styles.ChildAt(0); node != nil; node = node.Next() {
			s.styles[node.Key()] = loadStyle(node)
		}
	}

	if comps := root.Child("components"); comps != nil {
		for node := comps.ChildAt(0); node != nil; node = node.Next() {
			c, err := loadComponent(node)
			if err != nil {
				return nil, err
			}
			s.components[c.Name] = c
		}
	}

	screens := root.Child("screens")
	if screens == nil || screens.Len() == 0 {
		return nil, &LoadError{Code: CodeNoScreens}
	}
	for node := screens.ChildAt(0); node != nil; node = node.Next() {
		s.screens[node.Key()] = &Screen{Name: node.Key(), node: node}
		s.screenOrder = append(s.screenOrder, node.Key())
	}

	if _, ok := s.screens[s.initialScreen]; !ok {
		return nil, &LoadError{Code: CodeUnknownScreen, Detail: s.initialScreen}
	}
	return s, nil
}

// Default visual constants applied when a style omits a value.
const (
	defaultRadius  = 16
	defaultPadding = 12
)

func loadStyle(node *document.Node) *Style {
	st := &Style{
		Name:        node.Key(),
		Background:  node.ChildScalar("bg_color", ""),
		TextColor:   node.ChildScalar("text_color", ""),
		AccentColor: node.ChildScalar("accent_color", ""),
		Radius:      defaultRadius,
		Padding:     defaultPadding,
	}
	if v := node.Child("radius"); v != nil {
		st.Radius = scalarInt(v, defaultRadius)
	}
	if v := node.Child("padding"); v != nil {
		st.Padding = scalarInt(v, defaultPadding)
	}
	return st
}

func loadComponent(node *document.Node) (*Component, error) {
	c := &Component{Name: node.Key(), node: node}
	if props := node.Child("props"); props != nil {
		if props.Kind() != document.KindSequence {
			return nil, &LoadError{Code: CodeBadProps, Detail: node.Key()}
		}
		for p := props.ChildAt(0); p != nil; p = p.Next() {
			c.Props = append(c.Props, p.Scalar())
		}
	}
	c.Layout = node.Child("layout")
	return c, nil
}

// InitialScreen returns the screen shown at startup.
func (s *Schema) InitialScreen() *Screen { return s.screens[s.initialScreen] }

// Screen returns a screen by name.
func (s *Schema) Screen(name string) (*Screen, bool) {
	sc, ok := s.screens[name]
	return sc, ok
}

// Screens returns screen names in document order.
func (s *Schema) Screens() []string { return s.screenOrder }

// Component returns a reusable component by name.
func (s *Schema) Component(name string) (*Component, bool) {
	c, ok := s.components[name]
	return c, ok
}

// Style returns a named style; absent names return a default style.
func (s *Schema) Style(name string) *Style {
	if st, ok := s.styles[name]; ok {
		return st
	}
	return &Style{Name: name, Radius: defaultRadius, Padding: defaultPadding}
}

// Locale returns the app locale, language.Und when unset.
func (s *Schema) Locale() language.Tag { return s.locale }

// SeedState loads the document's state block into store without
// notifying watchers. Keys the host pre-seeded win.
func (s *Schema) SeedState(store *state.Store) error {
	if s.stateNode == nil {
		return nil
	}
	return store.SeedFromDocument(s.stateNode)
}

func scalarInt(node *document.Node, def int) int {
	n := 0
	text := node.Scalar()
	if text == "" {
		return def
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c < '0' || c > '9' {
			return def
		}
		n = n*10 + int(c-'0')
	}
	return n
}
