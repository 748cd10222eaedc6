package benchmarks

import (
	"fmt"
	"testing"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl"
)

// buildTemplate creates a template with n string slots separated by text.
func buildTemplate(n int) (*strtmpl.Template, []any) {
	parts := make([]any, 0, 2*n)
	values := make([]any, 0, n)
	for i := range n {
		parts = append(parts, fmt.Sprintf("part %d: ", i), strtmpl.Str())
		values = append(values, fmt.Sprintf("value-%d", i))
	}
	return strtmpl.New(parts...), values
}

// BenchmarkNew_10 measures template construction with 10 slots.
func BenchmarkNew_10(b *testing.B) {
	parts := make([]any, 0, 20)
	for range 10 {
		parts = append(parts, "text ", strtmpl.Str())
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		strtmpl.New(parts...)
	}
}

// BenchmarkCompile_1 compiles a single-slot template.
func BenchmarkCompile_1(b *testing.B) {
	tmpl, values := buildTemplate(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tmpl.Compile(values...)
	}
}

// BenchmarkCompile_10 compiles a 10-slot template.
func BenchmarkCompile_10(b *testing.B) {
	tmpl, values := buildTemplate(10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tmpl.Compile(values...)
	}
}

// BenchmarkCompile_100 compiles a 100-slot template.
func BenchmarkCompile_100(b *testing.B) {
	tmpl, values := buildTemplate(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tmpl.Compile(values...)
	}
}

// BenchmarkCompile_Defaults compiles a template where every slot uses its default.
func BenchmarkCompile_Defaults(b *testing.B) {
	tmpl := strtmpl.New("Hello ", strtmpl.Str("World"), ", you are ", strtmpl.Num(18))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tmpl.Compile()
	}
}

// BenchmarkCompile_Computed compiles a template of computed slots.
func BenchmarkCompile_Computed(b *testing.B) {
	tmpl := strtmpl.New(
		strtmpl.Cond("on", "off"), " ",
		strtmpl.Tuple[int]("a", "b", "c"), " ",
		strtmpl.Record(map[string]string{"k": "v"}), " ",
		strtmpl.Lines(),
	)
	lines := []string{"one", "two", "three"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tmpl.Compile(true, 2, "k", lines)
	}
}

// BenchmarkCompile_Coerce compiles with values that need numeric conversion.
func BenchmarkCompile_Coerce(b *testing.B) {
	tmpl := strtmpl.New(strtmpl.Num[int64](), "/", strtmpl.Num[float64]())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tmpl.Compile(int32(i), i)
	}
}
