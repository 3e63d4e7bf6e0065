package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPlaceholder(t *testing.T) {
	assert.True(t, HasPlaceholder("{{ count }}"))
	assert.True(t, HasPlaceholder("Count: {{ count }}"))
	assert.False(t, HasPlaceholder("plain text"))
	assert.False(t, HasPlaceholder("{ not } a placeholder"))
}

func TestFormat_SubstitutesPlaceholders(t *testing.T) {
	r := mapResolver(map[string]string{"count": "4", "name": "dev"})

	cases := []struct {
		template string
		want     string
	}{
		{"plain", "plain"},
		{"{{ count }}", "4"},
		{"Count: {{ count }}", "Count: 4"},
		{"{{ count + 1 }} items", "5 items"},
		{"{{ name }}: {{ count * 2 }}", "dev: 8"},
		{"{{ missing }}", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(tc.template, r), "template: %s", tc.template)
	}
}

func TestFormat_ErrorRendersEmpty(t *testing.T) {
	r := mapResolver(nil)
	assert.Equal(t, "value: ", Format("value: {{ 1 / 0 }}", r))
	assert.Equal(t, "", Format("{{ 1 + }}", r))
}

func TestFormat_UnterminatedPlaceholderKeptLiterally(t *testing.T) {
	r := mapResolver(map[string]string{"count": "4"})
	assert.Equal(t, "a {{ count", Format("a {{ count", r))
}

func TestCollectBindings_DedupesInOrder(t *testing.T) {
	deps := CollectBindings("{{ a + b }} and {{ b ? c : a }}")
	assert.Equal(t, []string{"a", "b", "c"}, deps)
}

func TestCollectBindings_NoPlaceholders(t *testing.T) {
	assert.Empty(t, CollectBindings("static text"))
}

func TestCollectBindings_InvalidPlaceholderSkipped(t *testing.T) {
	deps := CollectBindings("{{ a @ b }} then {{ c }}")
	assert.Equal(t, []string{"c"}, deps)
}
