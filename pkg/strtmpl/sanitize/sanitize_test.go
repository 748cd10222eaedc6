package sanitize

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl"
)

func TestStrict(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "Alice", "Alice"},
		{"strips tags", "<b>Alice</b>", "Alice"},
		{"drops script", "Bob<script>alert(1)</script>", "Bob"},
		{"trims", "  <i>Carol</i>  ", "Carol"},
	}

	slot := Strict()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := slot.Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestUGC_KeepsSafeMarkup(t *testing.T) {
	out, err := UGC().Resolve(`<a href="https://example.com" onclick="x()">link</a>`)
	require.NoError(t, err)
	assert.Contains(t, out, `href="https://example.com"`)
	assert.NotContains(t, out, "onclick")
}

func TestHTML_InTemplate(t *testing.T) {
	tmpl := strtmpl.New("<p>Hello ", Strict(), "</p>")

	out, err := tmpl.Compile("<em>World</em>")
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello World</p>", out)

	t.Run("fully stripped value is missing", func(t *testing.T) {
		_, err := tmpl.Compile("<script></script>")
		assert.ErrorIs(t, err, strtmpl.ErrMissingValue)

		var mv *strtmpl.MissingValueError
		require.ErrorAs(t, err, &mv)
		assert.Equal(t, "html", mv.Label)
		assert.Equal(t, 0, mv.Index)
	})
}

func TestHTML_Label(t *testing.T) {
	for _, slot := range []strtmpl.Slot[string]{Strict(), UGC(), HTML(bluemonday.NewPolicy())} {
		assert.Equal(t, "html", slot.Label())
		assert.Equal(t, strtmpl.KindComputed, slot.Kind())
	}
}

func TestHTML_NilPolicy(t *testing.T) {
	assert.Panics(t, func() { HTML(nil) })
}

func TestPolicies_AreShared(t *testing.T) {
	assert.Same(t, StrictPolicy(), StrictPolicy())
	assert.Same(t, UGCPolicy(), UGCPolicy())
	assert.IsType(t, &bluemonday.Policy{}, StrictPolicy())
}
