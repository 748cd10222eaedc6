package strtmpl

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStr(t *testing.T) {
	t.Run("without default", func(t *testing.T) {
		s := Str()
		def, ok := s.Default()
		assert.False(t, ok)
		assert.Nil(t, def)
		assert.Equal(t, KindPrimitive, s.Kind())
		assert.Equal(t, reflect.TypeFor[string](), s.ValueType())
	})

	t.Run("with default", func(t *testing.T) {
		def, ok := Str("foo").Default()
		assert.True(t, ok)
		assert.Equal(t, "foo", def)
	})

	t.Run("empty default is still a default", func(t *testing.T) {
		_, ok := Str("").Default()
		assert.True(t, ok)
	})
}

func TestNum(t *testing.T) {
	_, ok := Num[int]().Default()
	assert.False(t, ok)

	def, ok := Num(42).Default()
	assert.True(t, ok)
	assert.Equal(t, 42, def)
	assert.Equal(t, "num", Num(42).Label())

	out, err := Num[float64]().Resolve(1.5)
	require.NoError(t, err)
	assert.Equal(t, "1.5", out)
}

func TestCond(t *testing.T) {
	c := Cond("foo", "bar")
	assert.Equal(t, KindComputed, c.Kind())

	out, err := c.Resolve(true)
	require.NoError(t, err)
	assert.Equal(t, "foo", out)

	out, err = c.Resolve(false)
	require.NoError(t, err)
	assert.Equal(t, "bar", out)

	_, ok := c.Default()
	assert.False(t, ok)
}

func TestTuple(t *testing.T) {
	values := []string{"foo", "bar", "baz"}
	tuple := Tuple[int](values...)

	for i, want := range values {
		out, err := tuple.Resolve(i)
		require.NoError(t, err)
		assert.Equal(t, want, out)
	}

	t.Run("copies its input", func(t *testing.T) {
		values[0] = "changed"
		out, err := tuple.Resolve(0)
		require.NoError(t, err)
		assert.Equal(t, "foo", out)
	})

	t.Run("out of range", func(t *testing.T) {
		for _, idx := range []int{-1, 3} {
			_, err := tuple.Resolve(idx)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
		}
	})
}

func TestEnum(t *testing.T) {
	vec := Enum[int]([]string{"hoge", "huga", "piyo"}, "fallback")

	tests := []struct {
		index    int
		expected string
	}{
		{0, "hoge"},
		{2, "piyo"},
		{3, "fallback"},
		{100, "fallback"},
		{-1, "fallback"},
	}
	for _, tt := range tests {
		out, err := vec.Resolve(tt.index)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, out, "index %d", tt.index)
	}
}

func TestRecord(t *testing.T) {
	weather := Record(map[string]string{"sunny": "S", "rainy": "R"})

	out, err := weather.Resolve("sunny")
	require.NoError(t, err)
	assert.Equal(t, "S", out)

	out, err = weather.Resolve("rainy")
	require.NoError(t, err)
	assert.Equal(t, "R", out)
}

func TestLines(t *testing.T) {
	lines := Lines()
	assert.Equal(t, "lines", lines.Label())

	out, err := lines.Resolve([]string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc", out)

	out, err = lines.Resolve([]string{})
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = lines.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestJoined(t *testing.T) {
	out, err := Joined(", ").Resolve([]string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "x, y", out)
}

func TestComputed(t *testing.T) {
	double := Computed(func(n int) string { return string(rune('a' + n*2)) })
	out, err := double.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, "c", out)

	assert.Panics(t, func() { Computed[int](nil) })
	assert.Panics(t, func() { ComputedErr[int](nil) })
}

func TestLabeled(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{"custom label", "upper", "upper"},
		{"empty label", "", "computed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := Labeled(tt.label, func(s string) (string, error) {
				return strings.ToUpper(s), nil
			})
			assert.Equal(t, KindComputed, slot.Kind())
			assert.Equal(t, tt.expected, slot.Label())

			out, err := New(slot).Compile("abc")
			require.NoError(t, err)
			assert.Equal(t, "ABC", out)

			_, err = New(slot).Compile("")
			var mv *MissingValueError
			require.ErrorAs(t, err, &mv)
			assert.Equal(t, tt.expected, mv.Label)
		})
	}

	t.Run("resolver error carries label", func(t *testing.T) {
		slot := Labeled("lookup", func(int) (string, error) {
			return "", errors.New("not found")
		})
		_, err := New(slot).Compile(1)
		var re *ResolveError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "lookup", re.Label)
	})

	assert.Panics(t, func() { Labeled[int]("x", nil) })
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "primitive", KindPrimitive.String())
	assert.Equal(t, "computed", KindComputed.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestPlaceholder_ZeroValue(t *testing.T) {
	var p Placeholder
	assert.Equal(t, KindPrimitive, p.Kind())
	assert.Equal(t, "primitive", p.Label())
	assert.Nil(t, p.ValueType())

	assert.Equal(t, "[1 2]", New(p).MustCompile([]int{1, 2}))
}
